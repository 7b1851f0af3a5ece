package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/eugenenazirov/lets-plot-settings/internal/settings"
)

func newResolver(t *testing.T, v string, env map[string]string, explicit ...settings.Assignment) *settings.Resolver {
	t.Helper()

	lookup := func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
	return settings.New(
		settings.WithVersion(v),
		settings.WithLookupEnv(lookup),
		settings.WithExplicit(explicit...),
	)
}

func TestNewContextModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		version  string
		env      map[string]string
		wantMode Mode
		wantURL  string
	}{
		{
			name:     "ProductionLoadsFromCDN",
			version:  "4.1.0",
			wantMode: ModeRemote,
			wantURL:  "https://dl.bintray.com/jetbrains/lets-plot/lets-plot-4.1.0.min.js",
		},
		{
			name:     "DevelopmentEmbeds",
			version:  "4.1.0.dev1",
			wantMode: ModeEmbedded,
		},
		{
			name:     "DevelopmentOnlineUsesLocalServer",
			version:  "4.1.0.dev1",
			env:      map[string]string{"LETS_PLOT_DEV_OFFLINE": "no"},
			wantMode: ModeRemote,
			wantURL:  "http://0.0.0.0:8080/lets-plot-4.1.0.dev1.js",
		},
		{
			name:     "NoJSWinsOverOffline",
			version:  "4.1.0",
			env:      map[string]string{"LETS_PLOT_NO_JS": "true", "LETS_PLOT_OFFLINE": "true"},
			wantMode: ModeStatic,
		},
		{
			name:     "OfflineProduction",
			version:  "4.1.0",
			env:      map[string]string{"LETS_PLOT_OFFLINE": "Y"},
			wantMode: ModeEmbedded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := NewContext(newResolver(t, tt.version, tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, ctx.Mode)
			assert.Equal(t, tt.wantURL, ctx.ScriptURL)
			assert.Nil(t, ctx.IsolatedFrame)
		})
	}
}

func TestNewContextPropagatesParseErrors(t *testing.T) {
	t.Parallel()

	_, err := NewContext(newResolver(t, "4.1.0", map[string]string{"LETS_PLOT_NO_JS": "sometimes"}))
	assert.ErrorIs(t, err, settings.ErrBoolParse)

	_, err = NewContext(newResolver(t, "4.1.0", map[string]string{"LETS_PLOT_HTML_ISOLATED_FRAME": "perhaps"}))
	assert.ErrorIs(t, err, settings.ErrBoolParse)
}

func TestNewContextIsolatedFrame(t *testing.T) {
	t.Parallel()

	ctx, err := NewContext(newResolver(t, "4.1.0", map[string]string{"LETS_PLOT_HTML_ISOLATED_FRAME": "1"}))
	require.NoError(t, err)
	require.NotNil(t, ctx.IsolatedFrame)
	assert.True(t, *ctx.IsolatedFrame)
}

func TestScriptURLUsesExplicitName(t *testing.T) {
	t.Parallel()

	r := newResolver(t, "4.1.0", nil,
		settings.Assign(settings.JSBaseURL, settings.Text("https://cdn.example.org/lp/")),
		settings.Assign(settings.JSName, settings.Text("lets-plot.js")),
	)

	url, err := ScriptURL(r)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/lp/lets-plot.js", url)
}

func TestScriptURLRequiresBase(t *testing.T) {
	t.Parallel()

	r := newResolver(t, "4.1.0", nil, settings.Assign(settings.JSBaseURL, settings.Text("")))

	_, err := ScriptURL(r)
	assert.ErrorIs(t, err, settings.ErrNotDefined)
}

func TestScriptTag(t *testing.T) {
	t.Parallel()

	remote := Context{Mode: ModeRemote, ScriptURL: "https://cdn.example.org/a.js?x=1&y=2"}
	assert.Equal(t,
		`<script type="text/javascript" data-lets-plot-script="library" src="https://cdn.example.org/a.js?x=1&amp;y=2"></script>`,
		remote.ScriptTag())

	assert.Empty(t, Context{Mode: ModeEmbedded}.ScriptTag())
	assert.Empty(t, Context{Mode: ModeStatic}.ScriptTag())
}

func TestMaptilesSpecVector(t *testing.T) {
	t.Parallel()

	spec, err := MaptilesSpec(newResolver(t, "4.1.0", nil))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		settings.MaptilesKind:        settings.TilesVectorLetsPlot,
		settings.MaptilesURL:         "wss://tiles.datalore.jetbrains.com",
		settings.MaptilesTheme:       "color",
		settings.MaptilesAttribution: settings.DefaultTilesAttribution,
	}, spec)
}

func TestMaptilesSpecRaster(t *testing.T) {
	t.Parallel()

	r := newResolver(t, "4.1.0",
		map[string]string{"LETS_PLOT_MAPTILES_MAX_ZOOM": "15"},
		settings.Assign(settings.MaptilesKind, settings.Text(settings.TilesRasterZXY)),
		settings.Assign(settings.MaptilesURL, settings.Text("https://tile.example.org/{z}/{x}/{y}.png")),
		settings.Assign(settings.MaptilesAttribution, settings.Text("")),
	)

	spec, err := MaptilesSpec(r)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		settings.MaptilesKind:    settings.TilesRasterZXY,
		settings.MaptilesURL:     "https://tile.example.org/{z}/{x}/{y}.png",
		settings.MaptilesMaxZoom: 15,
	}, spec)
}

func TestMaptilesSpecErrors(t *testing.T) {
	t.Parallel()

	_, err := MaptilesSpec(newResolver(t, "4.1.0", map[string]string{"LETS_PLOT_MAPTILES_KIND": "solid"}))
	assert.ErrorIs(t, err, ErrUnsupportedTiles)

	_, err = MaptilesSpec(newResolver(t, "4.1.0", nil,
		settings.Assign(settings.MaptilesKind, settings.Text(settings.TilesRasterZXY)),
		settings.Assign(settings.MaptilesMinZoom, settings.Text("low")),
	))
	assert.ErrorIs(t, err, settings.ErrTypeMismatch)

	_, err = MaptilesSpec(newResolver(t, "4.1.0", nil, settings.Assign(settings.MaptilesURL, settings.Bool(true))))
	assert.ErrorIs(t, err, settings.ErrTypeMismatch)
}

func TestGeocodingSpec(t *testing.T) {
	t.Parallel()

	spec, err := GeocodingSpec(newResolver(t, "4.1.0", map[string]string{"LETS_PLOT_GEOCODING_URL": "http://localhost:3020"}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"url": "http://localhost:3020"}, spec)

	spec, err = GeocodingSpec(newResolver(t, "4.1.0", nil, settings.Assign(settings.GeocodingURL, settings.Text(" "))))
	require.NoError(t, err)
	assert.Empty(t, spec)
}

func TestApplyLivemapOptions(t *testing.T) {
	t.Parallel()

	spec := []byte(`{
		"kind": "plot",
		"layers": [
			{"geom": "point"},
			{"geom": "livemap"},
			{"geom": "livemap", "tiles": {"maptiles_kind": "raster_zxy", "maptiles_url": "https://t/{z}/{x}/{y}.png"}}
		]
	}`)

	out, err := ApplyLivemapOptions(spec, newResolver(t, "4.1.0", nil))
	require.NoError(t, err)

	assert.False(t, gjson.GetBytes(out, "layers.0.tiles").Exists())
	assert.False(t, gjson.GetBytes(out, "layers.0.geocoding").Exists())
	assert.Equal(t, settings.TilesVectorLetsPlot, gjson.GetBytes(out, "layers.1.tiles.maptiles_kind").String())
	assert.Equal(t, "color", gjson.GetBytes(out, "layers.1.tiles.maptiles_theme").String())
	assert.Equal(t, "http://3.86.228.157:3025", gjson.GetBytes(out, "layers.1.geocoding.url").String())
	assert.Equal(t, settings.TilesRasterZXY, gjson.GetBytes(out, "layers.2.tiles.maptiles_kind").String())
	assert.Equal(t, "http://3.86.228.157:3025", gjson.GetBytes(out, "layers.2.geocoding.url").String())
	assert.Equal(t, "plot", gjson.GetBytes(out, "kind").String())
}

func TestApplyLivemapOptionsWithoutLayers(t *testing.T) {
	t.Parallel()

	spec := []byte(`{"kind":"plot"}`)
	out, err := ApplyLivemapOptions(spec, newResolver(t, "4.1.0", nil))
	require.NoError(t, err)
	assert.JSONEq(t, string(spec), string(out))
}

func TestApplyLivemapOptionsRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := ApplyLivemapOptions([]byte(`{"layers": [`), newResolver(t, "4.1.0", nil))
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestApplyLivemapOptionsSurfacesTileErrors(t *testing.T) {
	t.Parallel()

	r := newResolver(t, "4.1.0", map[string]string{"LETS_PLOT_MAPTILES_KIND": "bogus"})
	_, err := ApplyLivemapOptions([]byte(`{"layers":[{"geom":"livemap"}]}`), r)
	assert.ErrorIs(t, err, ErrUnsupportedTiles)
}
