package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backend-citywalk/internal/config"
	"backend-citywalk/internal/model"
	"backend-citywalk/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(config.Config{ServiceName: "citywalk-api", ServerPort: ":0"}, store.New(store.DefaultSeed(time.Now())), nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func do(t *testing.T, s *Server, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func detail(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode error body %q: %v", body, err)
	}
	return out.Detail
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 status")
	}
	var health model.HealthStatus
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Service != "citywalk-api" || health.Status != "ok" {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestRootRoute(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 status")
	}
	if !strings.Contains(string(body), `"message":"Citywalk API is running"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestContentPointLookupScenario(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/content-points/cp-001", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var cp model.ContentPoint
	if err := json.Unmarshal(body, &cp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cp.Title != "老城街角的咖啡馆" {
		t.Fatalf("unexpected title %q", cp.Title)
	}
	if !strings.Contains(string(body), `"audio_url":null`) {
		t.Fatalf("expected explicit null audio_url: %s", body)
	}

	resp, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/content-points/does-not-exist", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if got := detail(t, body); got != "Content point not found" {
		t.Fatalf("unexpected detail %q", got)
	}
}

func TestRouteNotFoundDetail(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/routes/nope", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if got := detail(t, body); got != "Route not found" {
		t.Fatalf("unexpected detail %q", got)
	}
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestTrackIngestScenario(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, postJSON("/api/tracks?user_id=demo-user", `{"user_id":"demo-user","points":[]}`))
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", resp.StatusCode, body)
	}
	var ingest model.TrackIngestResponse
	if err := json.Unmarshal(body, &ingest); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ingest.ReceivedPoints != 0 || ingest.UserID != "demo-user" {
		t.Fatalf("unexpected response: %+v", ingest)
	}
	if !strings.Contains(ingest.Message, "demo-user") {
		t.Fatalf("expected message to name the user: %q", ingest.Message)
	}
}

func TestTrackIdentityMismatchScenario(t *testing.T) {
	s := newTestServer(t)
	before := s.Store.TrackCount()

	payload := `{"user_id":"bob","points":[{"latitude":31.23,"longitude":121.47,"recorded_at":"2026-05-01T09:00:00Z"}]}`
	resp, body := do(t, s, postJSON("/api/tracks?user_id=alice", payload))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := detail(t, body); !strings.Contains(got, "alice") || !strings.Contains(got, "bob") {
		t.Fatalf("expected detail naming both identities, got %q", got)
	}
	if s.Store.TrackCount() != before {
		t.Fatalf("expected track collection unchanged")
	}
}

func TestTrackValidationDetail(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, postJSON("/api/tracks", `{"user_id":"","points":[]}`))
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if got := detail(t, body); !strings.Contains(got, "user_id is required") {
		t.Fatalf("unexpected detail %q", got)
	}
}

func TestTrackListAfterSeedScenario(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/tracks?user_id=demo-user", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var tracks []model.Track
	if err := json.Unmarshal(body, &tracks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tracks) != 1 || tracks[0].UserID != "demo-user" {
		t.Fatalf("expected exactly the seeded demo-user track, got %+v", tracks)
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tracks", nil)
	req.Header.Set("Origin", "https://map.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type,X-Client-Version")
	resp, _ := do(t, s, req)

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected preflight 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-Client-Version") {
		t.Fatalf("expected requested headers allowed, got %q", got)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	resp, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer(t)
	do(t, s, postJSON("/api/tracks", `{"user_id":"metrics-user","points":[]}`))

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "citywalk_tracks_ingested_total") {
		t.Fatalf("expected track metrics exposed")
	}
}

func TestUnknownRouteDetail(t *testing.T) {
	s := newTestServer(t)

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if detail(t, body) == "" {
		t.Fatalf("expected detail on unknown route")
	}
}

func TestServerWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	s := NewServer(config.Config{}, store.New(store.Seed{}), rdb)
	defer s.Close()

	client := s.Stream.Register("redis-user")
	defer s.Stream.Unregister(client)

	resp, _ := do(t, s, postJSON("/api/tracks", `{"user_id":"redis-user","points":[]}`))
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.StatusCode)
	}

	select {
	case msg := <-client.Send:
		if !strings.Contains(string(msg), `"user_id":"redis-user"`) {
			t.Fatalf("unexpected feed message %s", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected track on live feed via redis")
	}

	resp, body := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "citywalk-api") {
		t.Fatalf("expected default service name in health: %s", body)
	}
}
