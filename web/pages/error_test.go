package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, props ErrorPageProps) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ErrorPage(props).Render(context.Background(), &buf))
	return buf.String()
}

func TestErrorPageEscapesAndDefaults(t *testing.T) {
	html := render(t, ErrorPageProps{
		Code:         404,
		ErrorTitle:   "Page Not Found",
		ErrorMessage: "<script>alert(1)</script>",
	})

	assert.Contains(t, html, "<title>404 Page Not Found</title>")
	assert.Contains(t, html, "<h1>404</h1>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, `<a href="/">返回首页</a>`)
	assert.NotContains(t, html, "request-id")
}

func TestErrorPageShowsRequestIDAndBackLink(t *testing.T) {
	html := render(t, ErrorPageProps{
		Code:       500,
		ErrorTitle: "Internal Server Error",
		RequestID:  "abc123",
		BackLink:   "/dev/base64",
		BackText:   "Back",
	})

	assert.Contains(t, html, "Request ID: <code>abc123</code>")
	assert.Contains(t, html, `<a href="/dev/base64">Back</a>`)
}
