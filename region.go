package mapquiz

import (
	"math"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"
)

// Coordinate is a geographic point in degrees (WGS84). It is the
// transient value a drop interaction produces; nothing stores it.
type Coordinate struct {
	Lat float64
	Lng float64
}

// valid rejects the float values that would make the containment
// predicate undefined.
func (c Coordinate) valid() bool {
	return !math.IsNaN(c.Lat) && !math.IsNaN(c.Lng) &&
		!math.IsInf(c.Lat, 0) && !math.IsInf(c.Lng, 0) &&
		math.Abs(c.Lat) <= 90 && math.Abs(c.Lng) <= 180
}

func (c Coordinate) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lng)
}

// geohashPrecision gives ~±19m cells, enough to key a neighborhood
// centroid for map deep-links without pretending survey accuracy.
const geohashPrecision = 8

// Region is a named quiz target area. Immutable once loaded.
type Region struct {
	Name     string
	geom     *Geometry
	centroid Coordinate
}

func newRegion(name string, geom *Geometry) Region {
	ll := geom.centroid()
	return Region{
		Name: name,
		geom: geom,
		centroid: Coordinate{
			Lat: ll.Lat.Degrees(),
			Lng: ll.Lng.Degrees(),
		},
	}
}

// Kind reports whether the region was authored as a polygon or a
// multi-polygon.
func (r Region) Kind() GeometryKind { return r.geom.Kind() }

// Contains reports whether the coordinate falls inside the region.
// Invalid coordinates are never inside.
func (r Region) Contains(c Coordinate) bool {
	if !c.valid() {
		return false
	}
	return r.geom.Contains(c.latLng())
}

// Centroid returns a representative point for the region, useful for
// centering the map or anchoring tooltips.
func (r Region) Centroid() Coordinate { return r.centroid }

// Geohash returns the geohash of the region centroid, a stable string
// key the presentation layer can use for zoom targets and deep-links.
func (r Region) Geohash() string {
	return geohash.EncodeWithPrecision(r.centroid.Lat, r.centroid.Lng, geohashPrecision)
}
