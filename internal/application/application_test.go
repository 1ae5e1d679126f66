package application

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/scrapbin/internal/config"
)

func resolveTestConfig(t *testing.T, inputs map[string]string) config.Config {
	t.Helper()

	merged := map[string]string{
		config.VarBaseURL: "https://paste.test",
	}
	for name, value := range inputs {
		merged[name] = value
	}

	cfg, err := config.New(config.MapProvider(merged)).Resolve()
	if err != nil {
		t.Fatalf("resolve configuration: %v", err)
	}
	return cfg
}

func TestNewWiresMemoryStore(t *testing.T) {
	cfg := resolveTestConfig(t, nil)
	app, err := New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if app.Server().Addr != "0.0.0.0:8088" {
		t.Fatalf("unexpected server address %s", app.Server().Addr)
	}

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthy app, got %d", rec.Code)
	}
}

func TestNewWiresFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pastes.json")
	cfg := resolveTestConfig(t, map[string]string{config.VarDatabasePath: path})

	app, err := New(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if app.store == nil {
		t.Fatalf("expected store to be wired")
	}
}

func TestNewFailsOnUnreadableStoreFile(t *testing.T) {
	// A directory path cannot be read as a paste file.
	cfg := resolveTestConfig(t, map[string]string{config.VarDatabasePath: t.TempDir()})

	if _, err := New(cfg, zaptest.NewLogger(t)); err == nil {
		t.Fatalf("expected error for unreadable paste file")
	}
}
