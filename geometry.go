package mapquiz

import (
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
)

// GeometryKind tags the shape variant a region was loaded from.
type GeometryKind int

const (
	KindPolygon GeometryKind = iota
	KindMultiPolygon
)

func (k GeometryKind) String() string {
	if k == KindMultiPolygon {
		return "MultiPolygon"
	}
	return "Polygon"
}

// surface is one polygon part: an outer ring and zero or more holes,
// each held as an s2 loop, with a bounding rect for cheap rejection.
type surface struct {
	outer *s2.Loop
	holes []*s2.Loop
	bound s2.Rect
}

// Geometry is a tagged polygon or multi-polygon. It is the single seam
// through which the geometry library is consumed: containment questions
// go through Contains and nowhere else.
//
// Boundary policy: containment delegates to s2.Loop.ContainsPoint, so a
// drop exactly on an edge resolves by s2's edge-crossing rule. The
// answer for a given point and geometry never changes between calls.
type Geometry struct {
	kind     GeometryKind
	surfaces []surface
	bound    s2.Rect
}

// GeometryFromGeoJSON builds a Geometry from a GeoJSON Polygon or
// MultiPolygon geometry. Other geometry types are an error.
func GeometryFromGeoJSON(g GeoJSONGeometry) (*Geometry, error) {
	switch strings.ToLower(g.Type) {
	case "polygon":
		rings, err := g.polygonRings()
		if err != nil {
			return nil, err
		}
		s, err := newSurface(rings)
		if err != nil {
			return nil, err
		}
		return newGeometry(KindPolygon, []surface{s}), nil
	case "multipolygon":
		polys, err := g.multiPolygonRings()
		if err != nil {
			return nil, err
		}
		if len(polys) == 0 {
			return nil, fmt.Errorf("multipolygon has no parts")
		}
		surfaces := make([]surface, 0, len(polys))
		for i, rings := range polys {
			s, err := newSurface(rings)
			if err != nil {
				return nil, fmt.Errorf("part %d: %w", i, err)
			}
			surfaces = append(surfaces, s)
		}
		return newGeometry(KindMultiPolygon, surfaces), nil
	default:
		return nil, fmt.Errorf("unsupported region geometry type %q", g.Type)
	}
}

func newGeometry(kind GeometryKind, surfaces []surface) *Geometry {
	bound := s2.EmptyRect()
	for _, s := range surfaces {
		bound = bound.Union(s.bound)
	}
	return &Geometry{kind: kind, surfaces: surfaces, bound: bound}
}

func newSurface(rings [][][]float64) (surface, error) {
	if len(rings) == 0 {
		return surface{}, fmt.Errorf("polygon has no rings")
	}
	outer, err := loopFromRing(rings[0])
	if err != nil {
		return surface{}, fmt.Errorf("outer ring: %w", err)
	}
	var holes []*s2.Loop
	for i, ring := range rings[1:] {
		hole, err := loopFromRing(ring)
		if err != nil {
			return surface{}, fmt.Errorf("hole ring %d: %w", i, err)
		}
		holes = append(holes, hole)
	}
	return surface{outer: outer, holes: holes, bound: outer.RectBound()}, nil
}

// loopFromRing converts a GeoJSON ring (lng,lat pairs, first vertex
// repeated last) into a normalized s2 loop. Normalizing makes the loop
// enclose the smaller of the two sphere regions, so authoring winding
// order does not matter.
func loopFromRing(ring [][]float64) (*s2.Loop, error) {
	// Drop the closing vertex GeoJSON requires; s2 loops are implicitly closed.
	if n := len(ring); n > 1 {
		first, last := ring[0], ring[n-1]
		if len(first) >= 2 && len(last) >= 2 && first[0] == last[0] && first[1] == last[1] {
			ring = ring[:n-1]
		}
	}
	if len(ring) < 3 {
		return nil, fmt.Errorf("ring has %d distinct vertices, need at least 3", len(ring))
	}
	pts := make([]s2.Point, 0, len(ring))
	for i, pos := range ring {
		if len(pos) < 2 {
			return nil, fmt.Errorf("vertex %d has %d ordinates, need lng and lat", i, len(pos))
		}
		ll := s2.LatLngFromDegrees(pos[1], pos[0])
		if !ll.IsValid() {
			return nil, fmt.Errorf("vertex %d is not a valid coordinate: %v", i, pos)
		}
		pts = append(pts, s2.PointFromLatLng(ll))
	}
	loop := s2.LoopFromPoints(pts)
	loop.Normalize()
	return loop, nil
}

// Kind reports the tagged geometry variant.
func (g *Geometry) Kind() GeometryKind { return g.kind }

// Contains reports whether the point lies within the geometry: inside
// any part's outer ring and inside none of that part's holes.
func (g *Geometry) Contains(ll s2.LatLng) bool {
	if !g.bound.ContainsLatLng(ll) {
		return false
	}
	p := s2.PointFromLatLng(ll)
	for _, s := range g.surfaces {
		if s.contains(p, ll) {
			return true
		}
	}
	return false
}

func (s surface) contains(p s2.Point, ll s2.LatLng) bool {
	if !s.bound.ContainsLatLng(ll) {
		return false
	}
	if !s.outer.ContainsPoint(p) {
		return false
	}
	for _, h := range s.holes {
		if h.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// centroid returns a representative interior-ish point: the normalized
// sum of the outer-loop centroids. Falls back to the bound center for
// degenerate input.
func (g *Geometry) centroid() s2.LatLng {
	var sum s2.Point
	for _, s := range g.surfaces {
		c := s.outer.Centroid()
		sum = s2.Point{Vector: sum.Add(c.Vector)}
	}
	if sum.Norm() == 0 {
		return g.bound.Center()
	}
	return s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
}
