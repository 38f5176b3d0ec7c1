package mapquiz

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

// Unit squares in lng/lat degrees. "Sul" is a two-part multipolygon,
// "  Leste  " exercises name trimming, the unnamed feature is skipped,
// and "Dupla" appears twice to pin down last-wins behavior.
const regionsJSON = `{
	"type": "FeatureCollection",
	"features": [
		{"type": "Feature", "properties": {"name": "Centro"},
		 "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,1],[0,0]]]}},
		{"type": "Feature", "properties": {"name": "Norte"},
		 "geometry": {"type": "Polygon", "coordinates": [[[0,2],[1,2],[1,3],[0,3],[0,2]]]}},
		{"type": "Feature", "properties": {"name": "Sul"},
		 "geometry": {"type": "MultiPolygon", "coordinates": [
			[[[0,-2],[1,-2],[1,-1],[0,-1],[0,-2]]],
			[[[0,-4],[1,-4],[1,-3],[0,-3],[0,-4]]]
		 ]}},
		{"type": "Feature", "properties": {"name": "  Leste  "},
		 "geometry": {"type": "Polygon", "coordinates": [[[2,0],[3,0],[3,1],[2,1],[2,0]]]}},
		{"type": "Feature", "properties": {"name": "   "},
		 "geometry": {"type": "Polygon", "coordinates": [[[4,0],[5,0],[5,1],[4,1],[4,0]]]}},
		{"type": "Feature", "properties": {"name": "Dupla"},
		 "geometry": {"type": "Polygon", "coordinates": [[[5,0],[6,0],[6,1],[5,1],[5,0]]]}},
		{"type": "Feature", "properties": {"name": "Dupla"},
		 "geometry": {"type": "Polygon", "coordinates": [[[7,0],[8,0],[8,1],[7,1],[7,0]]]}}
	]
}`

func loadTestRegistry(c *C) *Registry {
	fc, err := DecodeFeatureCollection(strings.NewReader(regionsJSON))
	c.Assert(err, IsNil)
	reg, err := LoadRegions(fc, zerolog.Nop())
	c.Assert(err, IsNil)
	return reg
}

type RegistrySuite struct {
	reg *Registry
}

var _ = Suite(&RegistrySuite{})

func (s *RegistrySuite) SetUpSuite(c *C) {
	s.reg = loadTestRegistry(c)
}

func (s *RegistrySuite) TestLoadSkipsAndCollapses(c *C) {
	// 7 features: one unnamed (skipped), two "Dupla" (collapsed).
	c.Assert(s.reg.Count(), Equals, 5)

	names := map[string]bool{}
	for _, n := range s.reg.Names() {
		names[n] = true
	}
	c.Assert(names, DeepEquals, map[string]bool{
		"Centro": true, "Norte": true, "Sul": true, "Leste": true, "Dupla": true,
	})
}

func (s *RegistrySuite) TestNameTrimming(c *C) {
	r, ok := s.reg.Get("Leste")
	c.Assert(ok, Equals, true)
	c.Assert(r.Name, Equals, "Leste")

	// Lookup input is trimmed the same way.
	_, ok = s.reg.Get("  Centro ")
	c.Assert(ok, Equals, true)

	// No case folding: names match exactly as authored.
	_, ok = s.reg.Get("centro")
	c.Assert(ok, Equals, false)
}

func (s *RegistrySuite) TestGetUnknown(c *C) {
	_, ok := s.reg.Get("Oeste")
	c.Assert(ok, Equals, false)
}

func (s *RegistrySuite) TestDuplicateLastWins(c *C) {
	r, ok := s.reg.Get("Dupla")
	c.Assert(ok, Equals, true)
	// The second feature's square (lng 7..8) won.
	c.Assert(r.Contains(Coordinate{Lat: 0.5, Lng: 7.5}), Equals, true)
	c.Assert(r.Contains(Coordinate{Lat: 0.5, Lng: 5.5}), Equals, false)
}

func (s *RegistrySuite) TestGeometryImmutable(c *C) {
	// Repeated lookups answer identically; Get hands out the same
	// loaded geometry every time.
	for i := 0; i < 3; i++ {
		r, ok := s.reg.Get("Centro")
		c.Assert(ok, Equals, true)
		c.Assert(r.Contains(Coordinate{Lat: 0.5, Lng: 0.5}), Equals, true)
		c.Assert(r.Contains(Coordinate{Lat: 2.5, Lng: 0.5}), Equals, false)
		c.Assert(r.Geohash(), Not(Equals), "")
		c.Assert(r.Geohash(), Equals, mustGet(c, s.reg, "Centro").Geohash())
	}
}

func mustGet(c *C, reg *Registry, name string) Region {
	r, ok := reg.Get(name)
	c.Assert(ok, Equals, true)
	return r
}

func (s *RegistrySuite) TestKindTags(c *C) {
	c.Assert(mustGet(c, s.reg, "Centro").Kind(), Equals, KindPolygon)
	c.Assert(mustGet(c, s.reg, "Sul").Kind(), Equals, KindMultiPolygon)
}

func (s *RegistrySuite) TestMultiPolygonContains(c *C) {
	sul := mustGet(c, s.reg, "Sul")
	c.Assert(sul.Contains(Coordinate{Lat: -1.5, Lng: 0.5}), Equals, true)
	c.Assert(sul.Contains(Coordinate{Lat: -3.5, Lng: 0.5}), Equals, true)
	// The gap between the two parts is outside.
	c.Assert(sul.Contains(Coordinate{Lat: -2.5, Lng: 0.5}), Equals, false)
}

func (s *RegistrySuite) TestFindContaining(c *C) {
	r, ok := s.reg.FindContaining(Coordinate{Lat: 2.5, Lng: 0.5})
	c.Assert(ok, Equals, true)
	c.Assert(r.Name, Equals, "Norte")

	r, ok = s.reg.FindContaining(Coordinate{Lat: -3.5, Lng: 0.5})
	c.Assert(ok, Equals, true)
	c.Assert(r.Name, Equals, "Sul")

	_, ok = s.reg.FindContaining(Coordinate{Lat: 45, Lng: 45})
	c.Assert(ok, Equals, false)

	_, ok = s.reg.FindContaining(Coordinate{Lat: 200, Lng: 0})
	c.Assert(ok, Equals, false)
}

func (s *RegistrySuite) TestLoadRejectsBadGeometry(c *C) {
	const badJSON = `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"name": "Quebrado"},
			 "geometry": {"type": "Point", "coordinates": [0, 0]}}
		]
	}`
	fc, err := DecodeFeatureCollection(strings.NewReader(badJSON))
	c.Assert(err, IsNil)
	_, err = LoadRegions(fc, zerolog.Nop())
	c.Assert(err, Not(IsNil))
	c.Assert(strings.Contains(err.Error(), "Quebrado"), Equals, true)
}
