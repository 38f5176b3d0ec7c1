package mapquiz

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FeatureCollection is the subset of GeoJSON this package consumes.
// Only the geometry and the `name`/`color` properties are interpreted;
// everything else in the properties bag is carried but ignored.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string          `json:"type"`
	Properties map[string]any  `json:"properties"`
	Geometry   GeoJSONGeometry `json:"geometry"`
}

// GeoJSONGeometry keeps the coordinate payload raw so it can be decoded
// per geometry type. GeoJSON nests coordinates differently for Polygon
// ([][][]) and MultiPolygon ([][][][]), which a single typed field
// cannot represent.
type GeoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// DecodeFeatureCollection parses a GeoJSON FeatureCollection from r.
func DecodeFeatureCollection(r io.Reader) (*FeatureCollection, error) {
	var fc FeatureCollection
	dec := json.NewDecoder(r)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding feature collection: %w", err)
	}
	if !strings.EqualFold(fc.Type, "FeatureCollection") {
		return nil, fmt.Errorf("unexpected GeoJSON type %q, want FeatureCollection", fc.Type)
	}
	return &fc, nil
}

// Name returns the feature's `name` property trimmed of surrounding
// whitespace. Missing or non-string names yield "".
func (f Feature) Name() string {
	return strings.TrimSpace(f.stringProp("name"))
}

// Color returns the feature's `color` display property, or "" when unset.
func (f Feature) Color() string {
	return f.stringProp("color")
}

func (f Feature) stringProp(key string) string {
	if v, ok := f.Properties[key].(string); ok {
		return v
	}
	return ""
}

// polygonRings decodes a Polygon coordinate payload: a list of rings,
// ring 0 the outer boundary, the rest holes.
func (g GeoJSONGeometry) polygonRings() ([][][]float64, error) {
	var rings [][][]float64
	if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
		return nil, fmt.Errorf("decoding polygon coordinates: %w", err)
	}
	return rings, nil
}

// multiPolygonRings decodes a MultiPolygon coordinate payload: a list of
// polygons, each a list of rings.
func (g GeoJSONGeometry) multiPolygonRings() ([][][][]float64, error) {
	var polys [][][][]float64
	if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
		return nil, fmt.Errorf("decoding multipolygon coordinates: %w", err)
	}
	return polys, nil
}

// lineStrings decodes a LineString or MultiLineString payload into one
// coordinate sequence per line part.
func (g GeoJSONGeometry) lineStrings() ([][][]float64, error) {
	switch strings.ToLower(g.Type) {
	case "linestring":
		var pts [][]float64
		if err := json.Unmarshal(g.Coordinates, &pts); err != nil {
			return nil, fmt.Errorf("decoding linestring coordinates: %w", err)
		}
		return [][][]float64{pts}, nil
	case "multilinestring":
		var parts [][][]float64
		if err := json.Unmarshal(g.Coordinates, &parts); err != nil {
			return nil, fmt.Errorf("decoding multilinestring coordinates: %w", err)
		}
		return parts, nil
	default:
		return nil, fmt.Errorf("unsupported line geometry type %q", g.Type)
	}
}
