package services

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveToolCountsOutcomes(t *testing.T) {
	m := NewMetrics()

	m.ObserveTool("base64", "encode", time.Millisecond, nil)
	m.ObserveTool("base64", "encode", time.Millisecond, nil)
	m.ObserveTool("base64", "decode", time.Millisecond, errors.New("bad input"))
	m.ObserveTool("qrcode", "", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.invocations.WithLabelValues("base64", "encode", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invocations.WithLabelValues("base64", "decode", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invocations.WithLabelValues("qrcode", "default", "ok")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := NewMetrics()
	m.ObserveViewLoad("crypto")
	m.ObserveRequest("GET", "200")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `devtoolbox_view_loads_total{view="crypto"} 1`))
	assert.True(t, strings.Contains(body, `devtoolbox_http_requests_total{code="200",method="GET"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
