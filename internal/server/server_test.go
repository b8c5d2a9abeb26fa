package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"detention/internal/errors"
	"detention/internal/testutil"
	"detention/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *testutil.MockInstanceClient) {
	t.Helper()

	client := testutil.NewMockInstanceClient()
	cfg := DefaultConfig()
	cfg.AbsoluteURL = "runnable.io"
	cfg.Version = "1.2.3"

	s, err := New(cfg, client)
	require.NoError(t, err)
	return s, client
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresFetcher(t *testing.T) {
	_, err := New(DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestSignin_NoLookup(t *testing.T) {
	s, client := newTestServer(t)

	rec := serve(s, testutil.NewPageRequest("/", map[string]string{
		"type":        "signin",
		"redirectUrl": "http://api-staging-casey.runnable.io/",
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	client.AssertNotCalled(t, "FetchInstance", mock.Anything, mock.Anything)
}

func TestNotRunning_Statuses(t *testing.T) {
	tests := []struct {
		status types.Status
		text   string
	}{
		{types.StatusBuildFailed, "api build failed"},
		{types.StatusNeverStarted, "api build failed"},
		{types.StatusStopped, "api is stopped"},
		{types.StatusStopping, "api is stopping"},
		{types.StatusCrashed, "api crashed"},
		{types.StatusBuilding, "api is building"},
		{types.StatusStarting, "api is starting"},
		{types.StatusRunning, "api is running"},
		{types.StatusUnknown, "api is in an unknown state"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			s, client := newTestServer(t)
			client.On("FetchInstance", mock.Anything, "axcde").Return(testutil.NewInstance(tt.status), nil)

			rec := serve(s, testutil.NewPageRequest("/", map[string]string{
				"type":      "not_running",
				"shortHash": "axcde",
			}))

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, tt.text)
			assert.Contains(t, body, "master")
			assert.Contains(t, body, "casey")
			client.AssertExpectations(t)
		})
	}
}

func TestSignin_IgnoresShortHashShape(t *testing.T) {
	s, client := newTestServer(t)

	rec := serve(s, testutil.NewPageRequest("/", map[string]string{
		"type":      "signin",
		"shortHash": "a-b_c",
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in")
	client.AssertNotCalled(t, "FetchInstance", mock.Anything, mock.Anything)
}

func TestNotRunning_VisitorPathHealth(t *testing.T) {
	s, client := newTestServer(t)
	client.On("FetchInstance", mock.Anything, "axcde").Return(testutil.NewInstance(types.StatusStopped), nil)

	rec := serve(s, testutil.NewPageRequest("/health", map[string]string{
		"type":      "not_running",
		"shortHash": "axcde",
	}))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "api is stopped")
	assert.NotContains(t, rec.Body.String(), "healthy")
	client.AssertExpectations(t)
}

func TestNotRunning_Migrating(t *testing.T) {
	s, client := newTestServer(t)
	instance := testutil.NewInstance(types.StatusRunning)
	instance.Container.DockRemoved = true
	client.On("FetchInstance", mock.Anything, "axcde").Return(instance, nil)

	rec := serve(s, testutil.NewPageRequest("/any/path", map[string]string{
		"type":      "not_running",
		"shortHash": "axcde",
	}))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "api is migrating")
}

func TestUnresponsive(t *testing.T) {
	s, client := newTestServer(t)
	client.On("FetchInstance", mock.Anything, "axcde").Return(testutil.NewInstance(types.StatusRunning), nil)

	rec := serve(s, testutil.NewPageRequest("/", map[string]string{
		"type":      "unresponsive",
		"shortHash": "axcde",
	}))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "<code>80</code>")
}

func TestPorts_NotFound(t *testing.T) {
	s, client := newTestServer(t)
	client.On("FetchInstance", mock.Anything, "axcde").Return(testutil.NewInstance(types.StatusRunning), nil)

	rec := serve(s, testutil.NewPageRequest("/", map[string]string{
		"type":      "ports",
		"shortHash": "axcde",
	}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing to see here")
}

func TestFetchFailure_InvalidPageWithoutInstanceFields(t *testing.T) {
	s, client := newTestServer(t)
	client.On("FetchInstance", mock.Anything, "axcde").
		Return(nil, errors.APICallError("GET", "http://api/instances", fmt.Errorf("connection refused")))

	rec := serve(s, testutil.NewPageRequest("/", map[string]string{
		"type":         "not_running",
		"shortHash":    "axcde",
		"branchName":   "leaked-branch",
		"instanceName": "leaked-name",
	}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Nothing to see here")
	assert.Contains(t, body, "runnable.io")
	assert.NotContains(t, body, "axcde")
	assert.NotContains(t, body, "leaked-branch")
	assert.NotContains(t, body, "leaked-name")
	assert.NotContains(t, body, "connection refused")
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		query map[string]string
	}{
		{name: "missing shortHash", query: map[string]string{"type": "not_running"}},
		{name: "missing type", query: map[string]string{"shortHash": "axcde"}},
		{name: "unknown type", query: map[string]string{"type": "bogus", "shortHash": "axcde"}},
		{name: "bad shortHash", query: map[string]string{"type": "not_running", "shortHash": "a-b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, client := newTestServer(t)

			rec := serve(s, testutil.NewPageRequest("/", tt.query))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Nothing to see here")
			client.AssertNotCalled(t, "FetchInstance", mock.Anything, mock.Anything)
		})
	}
}

func TestHead_NoBody(t *testing.T) {
	s, _ := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodHead, "/?type=signin", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestStaticAssets(t *testing.T) {
	s, client := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/stylesheets/error.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	client.AssertNotCalled(t, "FetchInstance", mock.Anything, mock.Anything)
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := serve(s, testutil.NewPageRequest("/", map[string]string{"type": "signin"}))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := testutil.NewPageRequest("/", map[string]string{"type": "signin"})
	req.Header.Set("X-Request-ID", "from-navi")
	rec = serve(s, req)
	assert.Equal(t, "from-navi", rec.Header().Get("X-Request-ID"))
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := serve(s, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
}
