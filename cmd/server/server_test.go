package main

import (
	"context"
	"database/sql"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/peakseason/planner/internal/installers"
	"github.com/peakseason/planner/internal/workforce"

	_ "modernc.org/sqlite"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		);
		CREATE TABLE installers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			experience_level TEXT NOT NULL,
			committed_days TEXT NOT NULL DEFAULT '[]',
			date_added TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active'
		);
		CREATE TABLE revenue_goals (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			worst_case REAL NOT NULL,
			base_case REAL NOT NULL,
			best_case REAL NOT NULL,
			updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		t.Fatalf("failed creating test schema: %v", err)
	}

	store := installers.NewStore(db)
	return &server{
		auth:    newAuthService(db, "test-secret"),
		db:      db,
		store:   store,
		tracker: installers.NewTracker(store),
		planner: workforce.NewDefaultPlanner(),
	}
}

// withURLParams attaches chi route parameters so handlers can be called
// without a full router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	ctx := chi.NewRouteContext()
	for key, value := range params {
		ctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, ctx))
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	if body == nil {
		return httptest.NewRequest(method, target, nil)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	r := httptest.NewRequest(method, target, strings.NewReader(string(raw)))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// decodeEnvelope unpacks the response envelope, failing the test if the
// success flag does not match want.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, wantSuccess bool, data any) string {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response envelope: %v (body %q)", err, rec.Body.String())
	}
	if envelope.Success != wantSuccess {
		t.Fatalf("success = %v, want %v (body %q)", envelope.Success, wantSuccess, rec.Body.String())
	}
	if data != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, data); err != nil {
			t.Fatalf("decode response data: %v", err)
		}
	}
	return envelope.Error
}

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}
