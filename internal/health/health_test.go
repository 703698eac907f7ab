package health_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora/backend/core/logger"
	"github.com/fixora/backend/integration/database/mongo"
	"github.com/fixora/backend/internal/health"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubDB struct{ ready atomic.Bool }

func (s *stubDB) Ready() bool { return s.ready.Load() }

func newRouter(db health.StateReader, cfg health.Config, opts ...health.Option) *gin.Engine {
	r := gin.New()
	r.GET("/api/health", health.Handler(db, cfg, opts...))
	return r
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, health.Snapshot) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var s health.Snapshot
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	}
	return w, s
}

func TestHandler_Connected(t *testing.T) {
	t.Parallel()

	db := &stubDB{}
	db.ready.Store(true)
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

	r := newRouter(db, health.Config{Environment: "production", Version: "1.0.0"},
		health.WithClock(func() time.Time { return now }),
		health.WithStartTime(now.Add(-90*time.Second)),
	)

	w, s := get(t, r, "/api/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, health.Snapshot{
		Status:      "OK",
		Uptime:      90,
		Timestamp:   now.UnixMilli(),
		Database:    "connected",
		Environment: "production",
		Version:     "1.0.0",
	}, s)
}

func TestHandler_NotReady(t *testing.T) {
	t.Parallel()

	tracker := mongo.NewTracker()
	for _, state := range []mongo.State{mongo.Disconnected, mongo.Connecting, mongo.Disconnecting} {
		tracker.Set(state)
		w, s := get(t, newRouter(tracker, health.Config{Version: "1.0.0"}), "/api/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code, state.String())
		assert.Equal(t, "disconnected", s.Database)
		assert.Equal(t, "degraded", s.Status)
		assert.Equal(t, "development", s.Environment)
	}

	tracker.Set(mongo.Connected)
	w, s := get(t, newRouter(tracker, health.Config{}), "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "connected", s.Database)
}

func TestHandler_NilDatabase(t *testing.T) {
	t.Parallel()

	var tracker *mongo.Tracker
	w, s := get(t, newRouter(tracker, health.Config{}), "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "disconnected", s.Database)

	w, _ = get(t, newRouter(nil, health.Config{}), "/api/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandler_UptimeNonDecreasing(t *testing.T) {
	t.Parallel()

	r := newRouter(&stubDB{}, health.Config{})

	_, first := get(t, r, "/api/health")
	time.Sleep(5 * time.Millisecond)
	_, second := get(t, r, "/api/health")

	assert.GreaterOrEqual(t, first.Uptime, 0.0)
	assert.GreaterOrEqual(t, second.Uptime, first.Uptime)
	assert.GreaterOrEqual(t, second.Timestamp, first.Timestamp)
}

func TestHandler_UptimeNeverNegative(t *testing.T) {
	t.Parallel()

	now := time.Now()
	r := newRouter(&stubDB{}, health.Config{},
		health.WithClock(func() time.Time { return now }),
		health.WithStartTime(now.Add(time.Hour)),
	)

	_, s := get(t, r, "/api/health")
	assert.Zero(t, s.Uptime)
}

func TestHandler_JSONShape(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	newRouter(&stubDB{}, health.Config{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.ElementsMatch(t,
		[]string{"status", "uptime", "timestamp", "database", "environment", "version"},
		keys(raw))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	db := &stubDB{}
	db.ready.Store(true)

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())
	failing := func(context.Context) error { return errors.New("ping timeout") }

	r := gin.New()
	health.Register(r, db, health.Config{}, log, failing)

	w, _ := get(t, r, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = get(t, r, "/api/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())

	w, _ = get(t, r, "/api/health/ping")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w, _ = get(t, r, "/api/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, buf.String(), "readiness check failed")

	ok := gin.New()
	health.Register(ok, db, health.Config{}, log, func(context.Context) error { return nil })
	w, _ = get(t, ok, "/api/health/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "READY", w.Body.String())
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
