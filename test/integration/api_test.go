package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/lets-plot-settings/internal/application"
	"github.com/eugenenazirov/lets-plot-settings/internal/config"
	"github.com/eugenenazirov/lets-plot-settings/internal/settings"
)

func newRouter(t *testing.T, cfg config.Config, env map[string]string) http.Handler {
	t.Helper()

	logger := zaptest.NewLogger(t)
	resolver := application.NewResolver(cfg, logger,
		settings.WithVersion("4.1.0"),
		settings.WithLookupEnv(func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		}),
	)
	app := application.New(cfg, resolver, logger)
	return app.Server().Handler
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationFlow(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlConfig := `
enable_request_logging: false
rate_limit:
  rps: 0
settings:
  maptiles_kind: raster_zxy
  maptiles_url: https://tile.example.org/{z}/{x}/{y}.png
  maptiles_max_zoom: 17
`
	if err := os.WriteFile(path, []byte(yamlConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(&config.CLIOverrides{ConfigFile: path, Settings: []string{"offline=1"}})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	handler := newRouter(t, cfg, map[string]string{
		"LETS_PLOT_OFFLINE":       "0",
		"LETS_PLOT_GEOCODING_URL": "http://localhost:3020",
	})

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/settings/offline?type=bool", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from settings lookup, got %d", rec.Code)
	}
	var setting struct {
		Value bool `json:"value"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&setting); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !setting.Value {
		t.Fatalf("expected explicit offline=1 to win over LETS_PLOT_OFFLINE=0")
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/frontend", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from frontend, got %d", rec.Code)
	}
	var front struct {
		Context struct {
			Mode string `json:"mode"`
		} `json:"context"`
		Maptiles  map[string]any `json:"maptiles"`
		Geocoding map[string]any `json:"geocoding"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&front); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if front.Context.Mode != "embedded" {
		t.Fatalf("expected embedded mode, got %s", front.Context.Mode)
	}
	if front.Maptiles["maptiles_kind"] != "raster_zxy" || front.Maptiles["maptiles_max_zoom"] != float64(17) {
		t.Fatalf("unexpected maptiles %v", front.Maptiles)
	}
	if front.Geocoding["url"] != "http://localhost:3020" {
		t.Fatalf("unexpected geocoding %v", front.Geocoding)
	}

	spec := []byte(`{"kind":"plot","layers":[{"geom":"livemap"}]}`)
	rec = performRequest(t, handler, http.MethodPost, "/api/spec/livemap", spec, map[string]string{"Content-Type": "application/json"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from livemap, got %d", rec.Code)
	}
	var patched struct {
		Layers []struct {
			Tiles map[string]any `json:"tiles"`
		} `json:"layers"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&patched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(patched.Layers) != 1 || patched.Layers[0].Tiles["maptiles_url"] != "https://tile.example.org/{z}/{x}/{y}.png" {
		t.Fatalf("unexpected patched spec %+v", patched)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/settings/max_width", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for undefined setting, got %d", rec.Code)
	}
}
