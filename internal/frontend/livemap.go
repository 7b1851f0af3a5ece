package frontend

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidSpec is returned when a plot spec is not valid JSON.
var ErrInvalidSpec = errors.New("plot spec is not valid JSON")

const livemapGeom = "livemap"

// ApplyLivemapOptions fills the tiles and geocoding options of every livemap
// layer that does not set them already. Other layers are left as they are.
func ApplyLivemapOptions(spec []byte, r Resolver) ([]byte, error) {
	if !gjson.ValidBytes(spec) {
		return nil, ErrInvalidSpec
	}

	layers := gjson.GetBytes(spec, "layers")
	if !layers.IsArray() {
		return spec, nil
	}

	var (
		tiles     map[string]any
		geocoding map[string]any
		err       error
	)
	out := spec
	for i, layer := range layers.Array() {
		if layer.Get("geom").String() != livemapGeom {
			continue
		}

		if !layer.Get("tiles").Exists() {
			if tiles == nil {
				if tiles, err = MaptilesSpec(r); err != nil {
					return nil, err
				}
			}
			if out, err = sjson.SetBytes(out, fmt.Sprintf("layers.%d.tiles", i), tiles); err != nil {
				return nil, fmt.Errorf("set tiles of layer %d: %w", i, err)
			}
		}

		if !layer.Get("geocoding").Exists() {
			if geocoding == nil {
				if geocoding, err = GeocodingSpec(r); err != nil {
					return nil, err
				}
			}
			if len(geocoding) == 0 {
				continue
			}
			if out, err = sjson.SetBytes(out, fmt.Sprintf("layers.%d.geocoding", i), geocoding); err != nil {
				return nil, fmt.Errorf("set geocoding of layer %d: %w", i, err)
			}
		}
	}

	return out, nil
}
