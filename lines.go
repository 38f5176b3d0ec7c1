package mapquiz

import (
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
)

// ReferenceLine is a display-only overlay the presentation layer draws
// under the quiz polygons (rivers, railways, district borders). The core
// only carries the label, the display color, and the path.
type ReferenceLine struct {
	Name  string
	Color string
	Path  *s2.Polyline
}

// LoadReferenceLines builds the overlay set from a decoded feature
// collection. A MultiLineString feature yields one ReferenceLine per
// part, all sharing the feature's name and color. Name and color are
// optional display properties; geometry that is not a line fails the
// load.
func LoadReferenceLines(fc *FeatureCollection) ([]ReferenceLine, error) {
	var lines []ReferenceLine
	for i, f := range fc.Features {
		parts, err := f.Geometry.lineStrings()
		if err != nil {
			return nil, fmt.Errorf("line feature %d: %w", i, err)
		}
		for _, pts := range parts {
			path, err := polylineFromCoords(pts)
			if err != nil {
				return nil, fmt.Errorf("line feature %d: %w", i, err)
			}
			lines = append(lines, ReferenceLine{
				Name:  f.Name(),
				Color: strings.TrimSpace(f.Color()),
				Path:  path,
			})
		}
	}
	return lines, nil
}

func polylineFromCoords(pts [][]float64) (*s2.Polyline, error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("line has %d vertices, need at least 2", len(pts))
	}
	lls := make([]s2.LatLng, 0, len(pts))
	for i, pos := range pts {
		if len(pos) < 2 {
			return nil, fmt.Errorf("vertex %d has %d ordinates, need lng and lat", i, len(pos))
		}
		ll := s2.LatLngFromDegrees(pos[1], pos[0])
		if !ll.IsValid() {
			return nil, fmt.Errorf("vertex %d is not a valid coordinate: %v", i, pos)
		}
		lls = append(lls, ll)
	}
	return s2.PolylineFromLatLngs(lls), nil
}
