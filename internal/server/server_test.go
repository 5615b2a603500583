package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/algoviz/pkg/anim"
	"github.com/matzehuels/algoviz/pkg/cache"
	"github.com/matzehuels/algoviz/pkg/config"
	verrors "github.com/matzehuels/algoviz/pkg/errors"
	"github.com/matzehuels/algoviz/pkg/observability"
	"github.com/matzehuels/algoviz/pkg/trace"
)

// blockingClock never finishes a step until the run is cancelled.
var blockingClock = anim.ClockFunc(func(ctx context.Context, _ time.Duration) error {
	<-ctx.Done()
	return ctx.Err()
})

func newTestServer(t *testing.T, clock anim.Clock) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	logger := log.New(io.Discard)
	s := New(Options{
		Config: cfg,
		Logger: logger,
		Runner: trace.NewRunner(cache.NewNullCache(), nil, logger),
		Clock:  clock,
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	out := map[string]any{}
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode, out
}

func newSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	status, body := call(t, ts, http.MethodPost, "/api/sessions", "")
	if status != http.StatusCreated {
		t.Fatalf("create session: %d %v", status, body)
	}
	return body["id"].(string)
}

func ints(v any) []int {
	var out []int
	for _, x := range v.([]any) {
		out = append(out, int(x.(float64)))
	}
	return out
}

func TestHealthAndCatalog(t *testing.T) {
	ts := newTestServer(t, anim.Instant)

	status, body := call(t, ts, http.MethodGet, "/healthz", "")
	if status != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v", status, body)
	}

	status, body = call(t, ts, http.MethodGet, "/api/catalog", "")
	if status != http.StatusOK {
		t.Fatalf("catalog = %d", status)
	}
	for _, cat := range []string{"sorting", "search", "graph", "tree"} {
		if _, ok := body[cat]; !ok {
			t.Errorf("catalog lacks %q", cat)
		}
	}
	if n := len(body["sorting"].([]any)); n != 6 {
		t.Errorf("sorting has %d algorithms, want 6", n)
	}
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t, anim.Instant)
	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	page, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(page), "EventSource") {
		t.Errorf("index = %d, %d bytes", resp.StatusCode, len(page))
	}
}

func TestSessionLifecycle(t *testing.T) {
	ts := newTestServer(t, anim.Instant)
	id := newSession(t, ts)

	status, snap := call(t, ts, http.MethodGet, "/api/sessions/"+id, "")
	if status != http.StatusOK {
		t.Fatalf("snapshot = %d", status)
	}
	if n := len(snap["sort"].([]any)); n != 50 {
		t.Errorf("sort has %d values, want 50", n)
	}
	if n := len(snap["tree"].([]any)); n != 11 {
		t.Errorf("tree has %d nodes, want the 11 sample nodes", n)
	}

	if status, _ := call(t, ts, http.MethodDelete, "/api/sessions/"+id, ""); status != http.StatusNoContent {
		t.Errorf("delete = %d", status)
	}
	status, body := call(t, ts, http.MethodGet, "/api/sessions/"+id, "")
	if status != http.StatusNotFound || body["code"] != "SESSION_NOT_FOUND" {
		t.Errorf("deleted session = %d %v", status, body)
	}
}

func TestSortRun(t *testing.T) {
	ts := newTestServer(t, anim.Instant)
	id := newSession(t, ts)
	base := "/api/sessions/" + id + "/sort/"

	if status, body := call(t, ts, http.MethodPost, base+"values", `{"values":[5,3,8,1]}`); status != http.StatusOK {
		t.Fatalf("values = %d %v", status, body)
	}
	status, body := call(t, ts, http.MethodPost, base+"start?wait=1", `{"algorithm":"merge"}`)
	if status != http.StatusOK {
		t.Fatalf("start = %d %v", status, body)
	}
	if got := ints(body["values"]); !slices.Equal(got, []int{1, 3, 5, 8}) {
		t.Errorf("sorted = %v", got)
	}

	status, body = call(t, ts, http.MethodPost, base+"start", `{"algorithm":"bogo"}`)
	if status != http.StatusBadRequest {
		t.Errorf("unknown algorithm = %d %v", status, body)
	}
	status, body = call(t, ts, http.MethodPost, base+"speed", `{"speed":11}`)
	if status != http.StatusBadRequest || body["code"] != "INVALID_SPEED" {
		t.Errorf("speed 11 = %d %v", status, body)
	}
}

func TestBusyRun(t *testing.T) {
	ts := newTestServer(t, blockingClock)
	id := newSession(t, ts)
	base := "/api/sessions/" + id + "/sort/"

	if status, body := call(t, ts, http.MethodPost, base+"start", `{"algorithm":"bubble"}`); status != http.StatusOK || body["started"] != true {
		t.Fatalf("start = %d %v", status, body)
	}
	status, body := call(t, ts, http.MethodPost, base+"start", `{"algorithm":"quick"}`)
	if status != http.StatusConflict || body["code"] != "BUSY" {
		t.Errorf("second start = %d %v", status, body)
	}
	if status, body := call(t, ts, http.MethodPost, base+"generate", ""); status != http.StatusConflict {
		t.Errorf("generate while running = %d %v", status, body)
	}

	if status, body := call(t, ts, http.MethodPost, base+"reset", ""); status != http.StatusOK {
		t.Fatalf("reset = %d %v", status, body)
	}
	if status, body := call(t, ts, http.MethodPost, base+"generate", ""); status != http.StatusOK {
		t.Errorf("generate after reset = %d %v", status, body)
	}

	// Other engines are independent.
	status, body = call(t, ts, http.MethodPost, "/api/sessions/"+id+"/stack/push", `{"value":"1"}`)
	if status != http.StatusOK || body["added"] != true {
		t.Errorf("push = %d %v", status, body)
	}
}

func TestSearch(t *testing.T) {
	ts := newTestServer(t, anim.Instant)
	id := newSession(t, ts)
	base := "/api/sessions/" + id + "/search/"

	status, body := call(t, ts, http.MethodPost, base+"start", `{"algorithm":"linear","target":"abc"}`)
	if status != http.StatusBadRequest || body["message"] != "Please enter a valid target value" {
		t.Errorf("bad target = %d %v", status, body)
	}

	call(t, ts, http.MethodPost, base+"values", `{"values":[4,8,15,16,23,42]}`)
	status, body = call(t, ts, http.MethodPost, base+"start?wait=1", `{"algorithm":"binary","target":23}`)
	if status != http.StatusOK || body["index"] != float64(4) {
		t.Errorf("binary search = %d %v", status, body)
	}
}

func TestGridAndTree(t *testing.T) {
	ts := newTestServer(t, anim.Instant)
	id := newSession(t, ts)
	base := "/api/sessions/" + id

	status, body := call(t, ts, http.MethodPost, base+"/grid/wall", `{"row":0,"col":0}`)
	if status != http.StatusOK || body["wall"] != true {
		t.Errorf("wall = %d %v", status, body)
	}
	status, body = call(t, ts, http.MethodPost, base+"/grid/wall", `{"row":30,"col":0}`)
	if status != http.StatusBadRequest || body["code"] != "INVALID_CELL" {
		t.Errorf("out of range wall = %d %v", status, body)
	}
	status, body = call(t, ts, http.MethodPost, base+"/grid/start?wait=1", `{"algorithm":"bfs"}`)
	if status != http.StatusOK || body["state"] != "found" {
		t.Errorf("bfs = %d %v", status, body)
	}

	status, body = call(t, ts, http.MethodPost, base+"/tree/insert", `{"value":"55"}`)
	if status != http.StatusOK || body["inserted"] != true {
		t.Errorf("insert = %d %v", status, body)
	}
	status, body = call(t, ts, http.MethodPost, base+"/tree/insert", `{"value":"x"}`)
	if status != http.StatusOK || body["inserted"] != false {
		t.Errorf("insert x = %d %v", status, body)
	}
	status, body = call(t, ts, http.MethodPost, base+"/tree/start?wait=1", `{"order":"inorder"}`)
	if status != http.StatusOK {
		t.Fatalf("traverse = %d %v", status, body)
	}
	seq := ints(body["sequence"])
	if len(seq) != 12 || !slices.IsSorted(seq) || !slices.Contains(seq, 55) {
		t.Errorf("inorder = %v", seq)
	}
}

func TestStructures(t *testing.T) {
	ts := newTestServer(t, anim.Instant)
	id := newSession(t, ts)
	base := "/api/sessions/" + id

	call(t, ts, http.MethodPost, base+"/stack/push", `{"value":"7"}`)
	call(t, ts, http.MethodPost, base+"/stack/push", `{"value":3}`)
	if _, body := call(t, ts, http.MethodPost, base+"/stack/pop", ""); body["value"] != float64(3) {
		t.Errorf("pop = %v", body)
	}
	if _, body := call(t, ts, http.MethodPost, base+"/queue/dequeue", ""); body["empty"] != true {
		t.Errorf("dequeue empty = %v", body)
	}
	if _, body := call(t, ts, http.MethodPost, base+"/list/delete", `{"value":"9"}`); body["deleted"] != false {
		t.Errorf("delete missing = %v", body)
	}

	_, snap := call(t, ts, http.MethodGet, base, "")
	if got := ints(snap["stack"]); !slices.Equal(got, []int{7}) {
		t.Errorf("stack = %v", got)
	}

	status, body := call(t, ts, http.MethodPost, base+"/stack/enqueue", "")
	if status != http.StatusNotFound {
		t.Errorf("stack/enqueue = %d %v", status, body)
	}
	status, _ = call(t, ts, http.MethodPost, base+"/stack/push", `{"bogus":1}`)
	if status != http.StatusBadRequest {
		t.Errorf("unknown field = %d", status)
	}
}

func TestTrace(t *testing.T) {
	ts := newTestServer(t, anim.Instant)

	resp, err := ts.Client().Get(ts.URL + "/api/trace/sort/bubble?values=3,1,2")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("X-Cache") != "MISS" {
		t.Fatalf("trace = %d cache %q", resp.StatusCode, resp.Header.Get("X-Cache"))
	}
	var tr trace.Trace
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(tr.Result.Values, []int{1, 2, 3}) || len(tr.Events) == 0 {
		t.Errorf("trace result %v with %d events", tr.Result.Values, len(tr.Events))
	}

	status, body := call(t, ts, http.MethodGet, "/api/trace/search/linear?values=1,2", "")
	if status != http.StatusBadRequest || body["code"] != "INVALID_INPUT" {
		t.Errorf("search without target = %d %v", status, body)
	}
	status, _ = call(t, ts, http.MethodGet, "/api/trace/heap/x", "")
	if status != http.StatusBadRequest {
		t.Errorf("unknown engine = %d", status)
	}
}

func TestEventStream(t *testing.T) {
	ts := newTestServer(t, anim.Instant)
	id := newSession(t, ts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/sessions/"+id+"/events", nil)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	next := func() (string, string) {
		var name string
		for sc.Scan() {
			line := sc.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				return name, strings.TrimPrefix(line, "data: ")
			}
		}
		t.Fatalf("stream ended: %v", sc.Err())
		return "", ""
	}

	if name, _ := next(); name != "snapshot" {
		t.Fatalf("first event %q, want snapshot", name)
	}

	call(t, ts, http.MethodPost, "/api/sessions/"+id+"/stack/push", `{"value":"42"}`)
	name, data := next()
	if name != "render" || !strings.Contains(data, `"scope":"stack"`) || !strings.Contains(data, "42") {
		t.Errorf("event %s %s", name, data)
	}
}

func TestEventStreamKeepsSessionAlive(t *testing.T) {
	cfg := config.Default()
	cfg.Server.SessionTTL.Duration = 200 * time.Millisecond
	s := New(Options{Config: cfg, Logger: log.New(io.Discard), Clock: anim.Instant})
	s.keepAlive = 20 * time.Millisecond
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	id := newSession(t, ts)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/sessions/"+id+"/events", nil)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	go io.Copy(io.Discard, resp.Body)

	// Several TTLs pass with no command; keep-alives must hold the session.
	time.Sleep(600 * time.Millisecond)
	if n := s.sessions.Cleanup(ctx); n != 0 {
		t.Errorf("Cleanup removed %d sessions with an open stream", n)
	}
	if code, body := call(t, ts, http.MethodGet, "/api/sessions/"+id, ""); code != http.StatusOK {
		t.Errorf("snapshot = %d %v, want 200", code, body)
	}

	cancel()
	time.Sleep(500 * time.Millisecond)
	if n := s.sessions.Cleanup(context.Background()); n != 1 {
		t.Errorf("Cleanup removed %d, want the abandoned session", n)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := observability.NewPrometheusHooks(reg)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	logger := log.New(io.Discard)
	s := New(Options{Config: config.Default(), Logger: logger, Gatherer: reg, Clock: anim.Instant})
	defer s.Close()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `algoviz_http_requests_total{method="GET",route="/healthz",status="200"} 1`) {
		t.Errorf("metrics missing healthz request:\n%s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trace/sort/bubble", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("trace without runner = %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"BUSY", http.StatusConflict},
		{"SESSION_NOT_FOUND", http.StatusNotFound},
		{"INVALID_SIZE", http.StatusBadRequest},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(verrors.Code(tt.code)); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
