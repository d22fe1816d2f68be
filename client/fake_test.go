package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

type recordedRequest struct {
	Method   string
	Endpoint string
	Body     map[string]interface{}
}

type cannedResponse struct {
	status int
	body   string
}

// fakeController answers API requests from canned responses keyed by method and
// endpoint, and records every request it sees.
type fakeController struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]cannedResponse
	requests []recordedRequest
}

func newFakeController(t *testing.T) *fakeController {
	f := &fakeController{
		t:      t,
		routes: make(map[string]cannedResponse),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeController) serve(w http.ResponseWriter, r *http.Request) {
	prefix := apiPath + testToken + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	endpoint := strings.TrimPrefix(r.URL.Path, prefix)

	var body map[string]interface{}
	data, _ := io.ReadAll(r.Body)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Endpoint: endpoint, Body: body})
	resp, ok := f.routes[r.Method+" "+endpoint]
	f.mu.Unlock()

	if !ok {
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		resp = cannedResponse{status: http.StatusNoContent}
	}
	if resp.body != "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeController) handle(method, endpoint string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+endpoint] = cannedResponse{status: status, body: body}
}

func (f *fakeController) get(endpoint, body string) {
	f.handle(http.MethodGet, endpoint, http.StatusOK, body)
}

func (f *fakeController) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

// writes returns the requests that were not GETs.
func (f *fakeController) writes() []recordedRequest {
	var out []recordedRequest
	for _, r := range f.recorded() {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeController) host() (string, int) {
	u, err := url.Parse(f.server.URL)
	require.NoError(f.t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(f.t, err)
	return u.Hostname(), port
}

func (f *fakeController) client() *Aurora {
	host, port := f.host()
	return New(Config{Address: host, Token: testToken}, WithPort(port))
}
