package frontend

import (
	"errors"
	"fmt"

	"github.com/eugenenazirov/lets-plot-settings/internal/settings"
)

// ErrUnsupportedTiles is returned when maptiles_kind names an unknown provider.
var ErrUnsupportedTiles = errors.New("unsupported maptiles kind")

// MaptilesSpec builds the tiles option of a livemap layer from the
// maptiles_* settings.
func MaptilesSpec(r Resolver) (map[string]any, error) {
	kind, err := r.String(settings.MaptilesKind)
	if err != nil {
		return nil, fmt.Errorf("resolve tiles kind: %w", err)
	}
	url, err := r.String(settings.MaptilesURL)
	if err != nil {
		return nil, fmt.Errorf("resolve tiles url: %w", err)
	}

	spec := map[string]any{
		settings.MaptilesKind: kind,
		settings.MaptilesURL:  url,
	}

	var optional []string
	switch kind {
	case settings.TilesVectorLetsPlot:
		optional = []string{settings.MaptilesTheme, settings.MaptilesAttribution}
	case settings.TilesRasterZXY:
		optional = []string{settings.MaptilesAttribution}
		for _, name := range []string{settings.MaptilesMinZoom, settings.MaptilesMaxZoom} {
			if !r.HasValue(name) {
				continue
			}
			zoom, err := r.Int(name)
			if err != nil {
				return nil, err
			}
			spec[name] = zoom
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTiles, kind)
	}

	for _, name := range optional {
		if !r.HasValue(name) {
			continue
		}
		value, err := r.String(name)
		if err != nil {
			return nil, err
		}
		spec[name] = value
	}

	return spec, nil
}

// GeocodingSpec builds the geocoding option of a livemap layer. It is empty
// when geocoding_url is not set.
func GeocodingSpec(r Resolver) (map[string]any, error) {
	if !r.HasValue(settings.GeocodingURL) {
		return map[string]any{}, nil
	}
	url, err := r.String(settings.GeocodingURL)
	if err != nil {
		return nil, err
	}
	return map[string]any{"url": url}, nil
}
