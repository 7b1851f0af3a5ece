package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eugenenazirov/lets-plot-settings/internal/frontend"
	"github.com/eugenenazirov/lets-plot-settings/internal/settings"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const maxSpecBytes = 4 << 20

// Resolver is the settings surface exposed over HTTP.
type Resolver interface {
	frontend.Resolver
	Mode() settings.Namespace
	Slot(name string) settings.Slot
	Value(name string) (settings.Value, error)
	Entries() []settings.Entry
}

// Handler wires the settings resolver into HTTP handlers.
type Handler struct {
	resolver Resolver

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(resolver Resolver, opts ...HandlerOption) *Handler {
	h := &Handler{
		resolver: resolver,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
		Mode:      h.resolver.Mode().String(),
		Version:   h.resolver.Version(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListSettings(w http.ResponseWriter, r *http.Request) {
	_ = r
	entries := h.resolver.Entries()
	resp := settingsResponse{
		Mode:     h.resolver.Mode().String(),
		Settings: make([]settingResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		resp.Settings = append(resp.Settings, settingResponse{
			Name:      entry.Name,
			Namespace: entry.Namespace.String(),
			Kind:      entry.Value.Kind().String(),
			Value:     entry.Value.Interface(),
			Present:   entry.Value.Present(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "setting name is required")
		return
	}

	valueType := r.URL.Query().Get("type")
	if valueType == "" {
		valueType = "any"
	}

	slot := h.resolver.Slot(name)
	resp := settingResponse{
		Name:       name,
		ActualName: slot.ActualName(),
		Namespace:  slot.Namespace.String(),
		Present:    true,
	}

	var err error
	switch valueType {
	case "any":
		var value settings.Value
		value, err = h.resolver.Value(name)
		resp.Kind = value.Kind().String()
		resp.Value = value.Interface()
	case "string":
		resp.Kind = settings.KindText.String()
		resp.Value, err = h.resolver.String(name)
	case "bool":
		resp.Kind = settings.KindBool.String()
		resp.Value, err = h.resolver.Bool(name)
	case "int":
		resp.Kind = "int"
		resp.Value, err = h.resolver.Int(name)
	default:
		writeError(w, http.StatusBadRequest, "Invalid request", fmt.Sprintf("unknown type %q, expected any, string, bool or int", valueType))
		return
	}

	if err != nil {
		writeSettingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleFrontend(w http.ResponseWriter, r *http.Request) {
	_ = r
	ctx, err := frontend.NewContext(h.resolver)
	if err != nil {
		writeSettingError(w, err)
		return
	}

	tiles, err := frontend.MaptilesSpec(h.resolver)
	if err != nil {
		writeSettingError(w, err)
		return
	}

	geocoding, err := frontend.GeocodingSpec(h.resolver)
	if err != nil {
		writeSettingError(w, err)
		return
	}

	resp := frontendResponse{
		Context:   ctx,
		ScriptTag: ctx.ScriptTag(),
		Maptiles:  tiles,
		Geocoding: geocoding,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleApplyLivemap(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSpecBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to read request body")
		return
	}
	if len(body) > maxSpecBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "Invalid request", "plot spec is too large")
		return
	}

	out, err := frontend.ApplyLivemapOptions(body, h.resolver)
	if err != nil {
		if errors.Is(err, frontend.ErrInvalidSpec) {
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		writeSettingError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type settingResponse struct {
	Name       string `json:"name"`
	ActualName string `json:"actualName,omitempty"`
	Namespace  string `json:"namespace"`
	Kind       string `json:"kind"`
	Value      any    `json:"value"`
	Present    bool   `json:"present"`
}

type settingsResponse struct {
	Mode     string            `json:"mode"`
	Settings []settingResponse `json:"settings"`
}

type frontendResponse struct {
	Context   frontend.Context `json:"context"`
	ScriptTag string           `json:"scriptTag,omitempty"`
	Maptiles  map[string]any   `json:"maptiles"`
	Geocoding map[string]any   `json:"geocoding"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Mode      string    `json:"mode"`
	Version   string    `json:"version"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeSettingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settings.ErrNotDefined):
		writeError(w, http.StatusNotFound, "Setting not defined", err.Error(),
			"Set it with a LETS_PLOT_* environment variable or the settings section of the config file")
	case errors.Is(err, settings.ErrTypeMismatch):
		writeError(w, http.StatusConflict, "Setting type mismatch", err.Error())
	case errors.Is(err, settings.ErrBoolParse):
		writeError(w, http.StatusUnprocessableEntity, "Malformed boolean", err.Error(),
			"Use one of true, 1, t, y, yes, false, 0, f, n, no")
	case errors.Is(err, frontend.ErrUnsupportedTiles):
		writeError(w, http.StatusUnprocessableEntity, "Unsupported map tiles", err.Error())
	default:
		writeInternalError(w, err)
	}
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
