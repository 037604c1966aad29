package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtoolbox_echo/internal/config"
	"devtoolbox_echo/internal/middleware"
	"devtoolbox_echo/internal/notify"
	"devtoolbox_echo/internal/router"
	"devtoolbox_echo/internal/services"
	"devtoolbox_echo/internal/tools"
	"devtoolbox_echo/internal/views"
	"devtoolbox_echo/web"
)

type testServer struct {
	e       *echo.Echo
	router  *router.Router
	metrics *services.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	renderer, err := NewTemplateRenderer(web.FS)
	require.NoError(t, err)

	client, err := tools.NewAPIClient(tools.APIClientOptions{})
	require.NoError(t, err)

	r, err := router.New(router.DefaultRoutes(views.DefaultRegistry(), views.Deps{APIClient: client}, ""))
	require.NoError(t, err)

	static, err := fs.Sub(web.FS, "static")
	require.NoError(t, err)

	metrics := services.NewMetrics()
	menu := config.Menu()

	e := echo.New()
	e.Renderer = renderer
	e.HTTPErrorHandler = middleware.CustomErrorHandler
	e.Use(middleware.Metrics(metrics))
	e.Use(middleware.Notifications())
	RegisterRoutes(e, NewToolHandler(r, menu, metrics, 1<<20), NewMetaHandler(r, menu, nil), metrics, static)

	return &testServer{e: e, router: r, metrics: metrics}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestRootRedirectsToJSONFormatter(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, router.DevJSONFormatter, rec.Header().Get(echo.HeaderLocation))
}

func TestToolPageRendersMenuAndForm(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, router.DevJSONFormatter, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	for _, want := range []string{"开发工具", "常用工具", "图片工具", "JSON 格式化", `name="input"`, `value="format"`} {
		assert.Contains(t, body, want)
	}
	assert.Contains(t, body, `href="/dev/json-formatter" class="active"`)
	assert.NotContains(t, body, "notification-")
}

func TestSubmitShowsOutputAndSuccess(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(formRequest(router.DevBase64, url.Values{"action": {"encode"}, "input": {"hello"}, "variant": {"std"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "aGVsbG8=")
	assert.Contains(t, body, "notification-success")
	assert.Contains(t, body, "Encoded 5 bytes from text")
}

func TestSubmitInvalidInputShowsError(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(formRequest(router.DevJSONFormatter, url.Values{"action": {"format"}, "input": {`{"a": }`}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "notification-error")
	assert.NotContains(t, body, "notification-success")
	// the submitted text is kept in the form
	assert.Contains(t, body, "{&#34;a&#34;: }")
}

func TestMissingUploadRedirectsWithFlash(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(formRequest(router.ImageConverter, url.Values{"format": {"png"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, router.ImageConverter, rec.Header().Get(echo.HeaderLocation))

	var flash *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == notify.CookieName {
			flash = cookie
		}
	}
	require.NotNil(t, flash)

	req := httptest.NewRequest(http.MethodGet, router.ImageConverter, nil)
	req.AddCookie(flash)
	page := s.do(req)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "notification-error")
	assert.Contains(t, page.Body.String(), "choose an image to upload")
}

func TestMultipartUploadIsEncoded(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("action", "encode"))
	require.NoError(t, mw.WriteField("variant", "std"))
	part, err := mw.CreateFormFile("file", "hello.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, router.DevBase64, &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := s.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aGk=")
	assert.Contains(t, rec.Body.String(), "from hello.txt")
}

func TestToolAPI(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/tools/base64",
		strings.NewReader(`{"action":"encode","values":{"input":"hi","variant":"std"}}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := s.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "aGk=", resp.Output.Text)
	assert.Equal(t, notify.TypeSuccess, resp.Notification.Type)
	assert.Equal(t, resp.Output.Message, resp.Notification.Message)
}

func TestToolAPIErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"unknown tool", "/api/tools/nope", `{}`, http.StatusNotFound},
		{"unknown action", "/api/tools/jsonValidator", `{"action":"bogus"}`, http.StatusBadRequest},
		{"invalid input", "/api/tools/jsonValidator", `{"action":"query","values":{"input":"[1,","path":"0"}}`, http.StatusBadRequest},
		{"malformed body", "/api/tools/base64", `not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := s.do(req)
			assert.Equal(t, tt.code, rec.Code)

			var body middleware.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, notify.TypeError, body.Notification.Type)
		})
	}
}

func TestMenuAndRoutesAPI(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/menu", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var menu []struct {
		Key      string `json:"key"`
		Children []struct {
			Path string `json:"path"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &menu))
	require.Len(t, menu, 3)
	assert.Equal(t, "devtools", menu[0].Key)
	assert.Len(t, menu[0].Children, 6)

	s.do(httptest.NewRequest(http.MethodGet, router.DevBase64, nil))

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/routes", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var routes []RouteInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &routes))
	require.Len(t, routes, 13)
	assert.Equal(t, "/", routes[0].Path)
	assert.Equal(t, router.DevJSONFormatter, routes[0].Redirect)

	for _, route := range routes {
		assert.Equal(t, route.Path == router.DevBase64, route.Loaded, route.Path)
	}
}

func TestHealthWithoutCache(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","cache":"disabled"}`, rec.Body.String())
}

func TestUnknownPageRendersErrorPage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/dev/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}

func TestMetricsRecordLoadsAndRequests(t *testing.T) {
	s := newTestServer(t)

	s.do(httptest.NewRequest(http.MethodGet, router.DevCrypto, nil))
	s.do(httptest.NewRequest(http.MethodGet, router.DevCrypto, nil))

	rec := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `devtoolbox_view_loads_total{view="crypto"} 1`)
	assert.Contains(t, body, `devtoolbox_http_requests_total{code="200",method="GET"} 2`)
}

func TestStaticAssetsAreServed(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".sidebar")
}

func TestUndeclaredActionsShareOneMetricSeries(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/tools/base64",
			strings.NewReader(fmt.Sprintf(`{"action":"junk-%d"}`, i)))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		require.Equal(t, http.StatusBadRequest, s.do(req).Code)
	}
	s.do(formRequest(router.DevBase64, url.Values{"action": {"encode"}, "input": {"x"}}))

	body := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil)).Body.String()
	assert.NotContains(t, body, "junk-")
	assert.Contains(t, body, `devtoolbox_tool_invocations_total{action="unknown",outcome="error",view="base64"} 20`)
	assert.Contains(t, body, `devtoolbox_tool_invocations_total{action="encode",outcome="ok",view="base64"} 1`)
}

func TestActionLabel(t *testing.T) {
	form := views.Form{Actions: []views.Option{{Value: "encode"}, {Value: "decode"}}}

	assert.Equal(t, "encode", actionLabel(form, "encode"))
	assert.Equal(t, "", actionLabel(form, ""))
	assert.Equal(t, "unknown", actionLabel(form, "DROP TABLE"))
}
