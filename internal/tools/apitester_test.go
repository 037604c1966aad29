package tools

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClientSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Method", r.Method)
		w.Header().Set("X-Echo", r.Header.Get("X-Test"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	client, err := NewAPIClient(APIClientOptions{Timeout: 5 * time.Second, RatePerSecond: 100})
	require.NoError(t, err)

	resp, err := client.Send(context.Background(), APIRequest{
		Method:  "post",
		URL:     srv.URL + "/items",
		Headers: map[string]string{"X-Test": "yes"},
		Body:    `{"a":1}`,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `{"a":1}`, resp.Body)
	assert.Equal(t, []string{"POST"}, resp.Headers["X-Method"])
	assert.Equal(t, []string{"yes"}, resp.Headers["X-Echo"])
	assert.False(t, resp.Truncated)
}

func TestAPIClientTruncatesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	client, err := NewAPIClient(APIClientOptions{MaxBodyBytes: 10})
	require.NoError(t, err)

	resp, err := client.Send(context.Background(), APIRequest{URL: srv.URL})
	require.NoError(t, err)
	assert.True(t, resp.Truncated)
	assert.Equal(t, strings.Repeat("x", 10), resp.Body)
}

func TestAPIClientRejectsBadRequests(t *testing.T) {
	client, err := NewAPIClient(APIClientOptions{})
	require.NoError(t, err)

	tests := []APIRequest{
		{URL: "ftp://example.com"},
		{URL: "http://"},
		{Method: "TRACE", URL: "http://example.com"},
		{URL: "::not a url"},
	}
	for _, req := range tests {
		_, err := client.Send(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput, "request %+v", req)
	}
}

func TestParseHeaderLines(t *testing.T) {
	got, err := ParseHeaderLines("content-type: application/json\n\n# comment\nAuthorization: Bearer a:b")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer a:b",
	}, got)

	_, err = ParseHeaderLines("no colon here")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormatHeaders(t *testing.T) {
	got := FormatHeaders(map[string][]string{"B": {"2"}, "A": {"1", "3"}})
	assert.Equal(t, "A: 1\nA: 3\nB: 2\n", got)
}
