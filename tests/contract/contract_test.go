// Package contract validates API responses against the OpenAPI document.
//
// By default the tests run against an in-process router backed by the
// in-memory store. Set API_BASE_URL to check a running server instead.
package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memore/memore/internal/auth"
	"github.com/memore/memore/internal/metrics"
	"github.com/memore/memore/internal/server"
	"github.com/memore/memore/internal/service"
	"github.com/memore/memore/internal/testutil"
	"github.com/memore/memore/internal/testutil/memstore"
)

// testConfig holds test configuration.
type testConfig struct {
	BaseURL  string
	Token    string
	SpecPath string
}

// getConfig returns test configuration from environment, starting a local
// server when no base URL is given.
func getConfig(t *testing.T) *testConfig {
	t.Helper()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		srv := httptest.NewServer(newLocalRouter())
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}

	specPath := os.Getenv("OPENAPI_SPEC_PATH")
	if specPath == "" {
		wd, _ := os.Getwd()
		specPath = filepath.Join(wd, "..", "..", "docs", "api", "openapi.yaml")
	}

	return &testConfig{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Token:    os.Getenv("TEST_TOKEN"),
		SpecPath: specPath,
	}
}

type fixedSummarizer string

func (s fixedSummarizer) Summarize(context.Context, string) (string, error) {
	return string(s), nil
}

func newLocalRouter() http.Handler {
	store := memstore.New()
	rec := metrics.NewNoop()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenIssuer([]byte("contract-secret-contract-secret-32"), time.Hour)

	return server.NewRouter(server.RouterConfig{
		Logger: logger,
		Accounts: service.NewAccountService(service.AccountConfig{
			Users:                store,
			Hasher:               auth.NewHasher(auth.Params{Time: 1, Memory: 8 * 1024, Threads: 1, KeyLen: 16, SaltLen: 8}),
			Tokens:               tokens,
			Metrics:              rec,
			Logger:               logger,
			AllowUnverifiedReset: true,
		}),
		Boards:    service.NewBoardService(store, rec, logger),
		Memos:     service.NewMemoService(store, store, rec, logger),
		Summaries: service.NewSummaryService(store, store, fixedSummarizer("세 줄 요약"), time.Second, rec, logger),
		Tokens:    tokens,
		Users:     store,
		DB:        store,
		Metrics:   metrics.NewInMemory(),
	})
}

// loadSpec loads and validates the OpenAPI document.
func loadSpec(t *testing.T, path string) (*openapi3.T, routers.Router) {
	t.Helper()

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	spec, err := loader.LoadFromFile(path)
	require.NoError(t, err, "load OpenAPI document from %s", path)
	require.NoError(t, spec.Validate(context.Background()), "OpenAPI document is invalid")

	router, err := gorillamux.NewRouter(spec)
	require.NoError(t, err)

	return spec, router
}

// client sends requests and checks every response against the document.
type client struct {
	t      *testing.T
	cfg    *testConfig
	router routers.Router
	http   *http.Client
}

func newClient(t *testing.T) *client {
	t.Helper()
	cfg := getConfig(t)
	_, router := loadSpec(t, cfg.SpecPath)
	return &client{t: t, cfg: cfg, router: router, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *client) do(method, path, token string, body any) (*http.Response, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.cfg.BaseURL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Skipf("Server not available: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)

	c.validate(req, resp, raw)
	return resp, raw
}

func (c *client) validate(req *http.Request, resp *http.Response, body []byte) {
	c.t.Helper()

	route, pathParams, err := c.router.FindRoute(req)
	require.NoError(c.t, err, "%s %s is not documented", req.Method, req.URL.Path)

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   io.NopCloser(bytes.NewReader(body)),
	}
	assert.NoError(c.t, openapi3filter.ValidateResponse(context.Background(), input),
		"%s %s -> %d: %s", req.Method, req.URL.Path, resp.StatusCode, body)
}

// session returns TEST_TOKEN or signs up a throwaway user.
func (c *client) session() string {
	c.t.Helper()
	if c.cfg.Token != "" {
		return c.cfg.Token
	}

	username := "contract" + testutil.UniqueSuffix()
	password := "contract-pass-1"
	resp, body := c.do(http.MethodPost, "/api/signup", "", map[string]string{
		"username": username,
		"password": password,
		"nickname": username,
		"email":    username + "@example.com",
	})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = c.do(http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	require.Equal(c.t, http.StatusOK, resp.StatusCode, string(body))

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(body, &login))
	return login.Token
}

func decodeID(t *testing.T, body []byte) string {
	t.Helper()
	var v struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	require.NotEmpty(t, v.ID)
	return v.ID
}

func TestOpenAPISpecValid(t *testing.T) {
	cfg := getConfig(t)
	spec, _ := loadSpec(t, cfg.SpecPath)
	t.Logf("%s %s", spec.Info.Title, spec.Info.Version)
}

func TestDocumentedPaths(t *testing.T) {
	cfg := getConfig(t)
	spec, _ := loadSpec(t, cfg.SpecPath)

	expectedPaths := []string{
		"/api/signup",
		"/api/login",
		"/api/reset-password",
		"/api/me",
		"/api/users",
		"/api/users/{id}",
		"/api/boards",
		"/api/boards/{id}",
		"/api/boards/{id}/summarize",
		"/api/memos",
		"/api/memos/{id}",
		"/healthz",
		"/readyz",
	}
	for _, path := range expectedPaths {
		assert.NotNil(t, spec.Paths.Find(path), "expected path %s in document", path)
	}
}

func TestProbes(t *testing.T) {
	c := newClient(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		path := path
		t.Run(path, func(t *testing.T) {
			resp, _ := c.do(http.MethodGet, path, "", nil)
			assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
			assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestErrorResponseSchema(t *testing.T) {
	c := newClient(t)
	token := c.session()

	errorCases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
	}{
		{"Unauthorized", http.MethodGet, "/api/boards", "", nil, http.StatusUnauthorized},
		{"BoardNotFound", http.MethodGet, "/api/boards/nonexistent-id-12345", token, nil, http.StatusNotFound},
		{"MemoNotFound", http.MethodDelete, "/api/memos/nonexistent-id-12345", token, nil, http.StatusNotFound},
		{"MissingFields", http.MethodPost, "/api/signup", "", map[string]string{"username": "x"}, http.StatusBadRequest},
		{"UnknownUser", http.MethodPost, "/api/login", "", map[string]string{"username": "nobody-" + testutil.UniqueSuffix(), "password": "whatever1"}, http.StatusUnauthorized},
		{"AlarmNotImplemented", http.MethodPost, "/api/boards/any/set-alarm", token, nil, http.StatusNotImplemented},
	}

	for _, tc := range errorCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			resp, body := c.do(tc.method, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(body))

			var errResp struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(body, &errResp), string(body))
			assert.NotEmpty(t, errResp.Error)
			assert.NotEmpty(t, errResp.Code)
		})
	}
}

func TestBoardAndMemoResponses(t *testing.T) {
	c := newClient(t)
	token := c.session()

	resp, body := c.do(http.MethodPost, "/api/boards", token, map[string]any{"title": "장보기", "category": "home"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	boardID := decodeID(t, body)

	resp, body = c.do(http.MethodPost, "/api/boards/"+boardID+"/summarize", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = c.do(http.MethodPost, "/api/memos", token, map[string]any{"board": boardID, "content": "우유 사기"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	memoID := decodeID(t, body)

	steps := []struct {
		method string
		path   string
		body   any
		status int
	}{
		{http.MethodGet, "/api/boards", nil, http.StatusOK},
		{http.MethodGet, "/api/boards?category=home&limit=5", nil, http.StatusOK},
		{http.MethodGet, "/api/boards/" + boardID, nil, http.StatusOK},
		{http.MethodPatch, "/api/boards/" + boardID, map[string]any{"is_completed": true}, http.StatusOK},
		{http.MethodGet, "/api/memos?board=" + boardID, nil, http.StatusOK},
		{http.MethodGet, "/api/memos/" + memoID, nil, http.StatusOK},
		{http.MethodPatch, "/api/memos/" + memoID, map[string]any{"summary": "우유"}, http.StatusOK},
		{http.MethodPost, "/api/boards/" + boardID + "/summarize", nil, http.StatusOK},
		{http.MethodGet, "/api/me", nil, http.StatusOK},
		{http.MethodGet, "/api/users", nil, http.StatusOK},
		{http.MethodDelete, "/api/memos/" + memoID, nil, http.StatusNoContent},
		{http.MethodDelete, "/api/boards/" + boardID, nil, http.StatusNoContent},
	}

	for _, s := range steps {
		s := s
		t.Run(fmt.Sprintf("%s %s", s.method, s.path), func(t *testing.T) {
			resp, body := c.do(s.method, s.path, token, s.body)
			assert.Equal(t, s.status, resp.StatusCode, string(body))
		})
	}
}
