package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/inkling/pkg/adapters/memory"
	"github.com/aretw0/inkling/pkg/observability"
	"github.com/aretw0/inkling/pkg/ports"
)

const storyDoc = `
content:
  - name: A
    visits: true
    turns: true
    content:
      - 5
      - name: B
        content: ["hi"]
`

func newTestServer(t *testing.T) (*httptest.Server, *memory.Loader) {
	t.Helper()
	loader := memory.NewLoader(map[string]string{"scenario": storyDoc})
	srv := httptest.NewServer(NewHandler(Config{Loader: loader}))
	t.Cleanup(srv.Close)
	return srv, loader
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, "GET", srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]string](t, resp)["status"])

	resp = do(t, "GET", srv.URL+"/info", "")
	assert.Equal(t, "inkling-http", decode[map[string]string](t, resp)["app"])
}

func TestServer_Stories(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, "GET", srv.URL+"/stories", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"scenario"}, decode[map[string][]string](t, resp)["stories"])

	resp = do(t, "GET", srv.URL+"/stories/scenario", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, "GET", srv.URL+"/stories/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Resolve(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantPath   string
		wantKind   string
		wantValue  string
		wantApprox bool
	}{
		{"exact leaf", "/stories/scenario/resolve?path=A.B.0", 200, "A.B.0", "String", "hi", false},
		{"container", "/stories/scenario/resolve?path=A", 200, "A", "container", "", false},
		{"approximate", "/stories/scenario/resolve?path=A.zzz", 200, "A", "container", "", true},
		{"leaf descends", "/stories/scenario/leaf?path=A", 200, "A.0", "Int", "5", false},
		{"bad path", "/stories/scenario/resolve?path=a..b", 400, "", "", "", false},
		{"unknown story", "/stories/nope/resolve?path=A", 404, "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, "GET", srv.URL+tt.url, "")
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}
			body := decode[ResolveResponse](t, resp)
			require.NotNil(t, body.Object)
			assert.Equal(t, tt.wantPath, body.Object.Path)
			assert.Equal(t, tt.wantKind, body.Object.Kind)
			assert.Equal(t, tt.wantValue, body.Object.Value)
			assert.Equal(t, tt.wantApprox, body.Approximate)
		})
	}
}

func TestServer_Hierarchy(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, "GET", srv.URL+"/stories/scenario/hierarchy?point=A.B.0", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sb strings.Builder
	_, err := bufio.NewReader(resp.Body).WriteTo(&sb)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), `"hi"  <---`)
}

func TestServer_VisitsAndTurns(t *testing.T) {
	srv, _ := newTestServer(t)
	base := srv.URL + "/stories/scenario"

	resp := do(t, "POST", base+"/visits", `{"path": "A", "at_start": true}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, "POST", base+"/turns", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[map[string]int](t, resp)["turn"])

	resp = do(t, "GET", base+"/visits?path=A", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decode[VisitsResponse](t, resp)
	require.NotNil(t, v.Visits)
	require.NotNil(t, v.TurnsSince)
	assert.Equal(t, 1, *v.Visits)
	assert.Equal(t, 1, *v.TurnsSince)

	resp = do(t, "GET", base+"/visits?path=A.B", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v = decode[VisitsResponse](t, resp)
	assert.Nil(t, v.Visits, "B does not count visits")

	resp = do(t, "GET", base+"/visits?path=A.0", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "not a container")

	resp = do(t, "POST", base+"/visits", `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_PutStory(t *testing.T) {
	srv, loader := newTestServer(t)

	resp := do(t, "PUT", srv.URL+"/stories/scenario", "content: [\"changed\"]")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	data, err := loader.LoadStory(context.Background(), "scenario")
	require.NoError(t, err)
	assert.Contains(t, string(data), "changed")

	// The cached story must be replaced.
	resp = do(t, "GET", srv.URL+"/stories/scenario/resolve?path=0", "")
	body := decode[ResolveResponse](t, resp)
	assert.Equal(t, "changed", body.Object.Value)

	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "content: ["},
		{"empty document", ""},
		{"unknown key", "content: []\ncolour: red"},
		{"invalid name", "content:\n  - name: a.b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, "PUT", srv.URL+"/stories/scenario", tt.doc)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		})
	}

	// Rejected documents leave the stored one alone.
	data, err = loader.LoadStory(context.Background(), "scenario")
	require.NoError(t, err)
	assert.Contains(t, string(data), "changed")
}

type readOnlyLoader struct{ ports.StoryLoader }

func TestServer_PutStoryReadOnly(t *testing.T) {
	loader := readOnlyLoader{memory.NewLoader(map[string]string{"s": storyDoc})}
	srv := httptest.NewServer(NewHandler(Config{Loader: loader}))
	defer srv.Close()

	resp := do(t, "PUT", srv.URL+"/stories/s", storyDoc)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	loader := memory.NewLoader(map[string]string{"scenario": storyDoc})
	srv := httptest.NewServer(NewHandler(Config{Loader: loader, Hooks: m.Hooks(), Gatherer: reg}))
	defer srv.Close()

	do(t, "GET", srv.URL+"/stories/scenario/resolve?path=A", "")

	resp := do(t, "GET", srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sb strings.Builder
	_, err = bufio.NewReader(resp.Body).WriteTo(&sb)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), `inkling_content_lookups_total{approximate="false",story="scenario"} 1`)
}

func TestServer_SubscribeEvents(t *testing.T) {
	srv, _ := newTestServer(t)
	base := srv.URL + "/stories/scenario"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", base+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	// Subscription is registered before the ping is flushed.
	do(t, "POST", base+"/visits", `{"path": "A", "at_start": true}`)

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: {") {
			break
		}
	}
	assert.Contains(t, line, `"path":"A"`)
	assert.Contains(t, line, `"visits":1`)
}
