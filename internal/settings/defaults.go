package settings

// Setting names.
const (
	HTMLIsolatedFrame   = "html_isolated_frame"
	Offline             = "offline"
	NoJS                = "no_js"
	JSBaseURL           = "js_base_url"
	JSName              = "js_name"
	MaxWidth            = "max_width"
	MaxHeight           = "max_height"
	MaptilesKind        = "maptiles_kind"
	MaptilesURL         = "maptiles_url"
	MaptilesTheme       = "maptiles_theme"
	MaptilesAttribution = "maptiles_attribution"
	MaptilesMinZoom     = "maptiles_min_zoom"
	MaptilesMaxZoom     = "maptiles_max_zoom"
	GeocodingURL        = "geocoding_url"
)

// Tile kinds accepted by maptiles_kind.
const (
	TilesVectorLetsPlot = "vector_lets_plot"
	TilesRasterZXY      = "raster_zxy"
)

const (
	defaultJSBaseURL    = "https://dl.bintray.com/jetbrains/lets-plot"
	devJSBaseURL        = "http://0.0.0.0:8080"
	defaultTilesService = "wss://tiles.datalore.jetbrains.com"
	defaultTilesTheme   = "color"
	defaultGeocoding    = "http://3.86.228.157:3025"

	DefaultTilesAttribution = `Map: <a href="https://github.com/JetBrains/lets-plot">© Lets-Plot</a>, map data: <a href="https://www.openstreetmap.org/copyright">© OpenStreetMap contributors</a>.`
)

// defaultEntry is a compiled-in table row. Seeded rows take a non-empty
// environment value over the default when the table is built.
type defaultEntry struct {
	slot   Slot
	value  Value
	seeded bool
}

func defaultEntries() []defaultEntry {
	entries := make([]defaultEntry, 0, 18)
	add := func(ns Namespace, key string, value Value, seeded bool) {
		entries = append(entries, defaultEntry{
			slot:   Slot{Namespace: ns, Key: key},
			value:  value,
			seeded: seeded,
		})
	}

	// production: fetch the library from the CDN
	add(Production, Offline, Bool(false), true)
	add(Production, NoJS, Bool(false), true)
	add(Production, JSBaseURL, Text(defaultJSBaseURL), false)
	add(Production, JSName, Text(""), false)

	// development: embed the library
	add(Development, Offline, Bool(true), true)
	add(Development, NoJS, Bool(false), true)
	add(Development, JSBaseURL, Text(devJSBaseURL), false)
	add(Development, JSName, Text(""), false)

	for _, ns := range []Namespace{Production, Development} {
		add(ns, GeocodingURL, Text(defaultGeocoding), true)
		add(ns, MaptilesKind, Text(TilesVectorLetsPlot), true)
		add(ns, MaptilesURL, Text(defaultTilesService), true)
		add(ns, MaptilesAttribution, Text(DefaultTilesAttribution), true)
		add(ns, MaptilesTheme, Text(defaultTilesTheme), true)
	}

	return entries
}
