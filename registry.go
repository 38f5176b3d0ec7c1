package mapquiz

import (
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/rs/zerolog"
)

// Cell covering bounds for the registry's spatial index.
//
// Level 6 cells are ~100km across, level 16 ~150m. Neighborhood polygons
// land somewhere in between, and capping the covering at 16 cells keeps
// the index small for the few hundred regions a quiz board carries.
const (
	coverMinLevel = 6
	coverMaxLevel = 16
	coverMaxCells = 16
)

// Registry maps region names to their polygons. Built once from a
// feature collection and immutable afterwards; safe for concurrent reads.
type Registry struct {
	regions   map[string]Region
	cellIndex map[s2.CellID][]string
	log       zerolog.Logger
}

// LoadRegions builds a Registry from a decoded feature collection.
//
// The `name` property is trimmed of surrounding whitespace and matched
// exactly as authored otherwise (no case folding). Features whose name
// is empty after trimming are skipped. A duplicate name overwrites the
// earlier feature (last wins) with a logged warning. Any feature with a
// name but unusable geometry fails the whole load: a partially built
// board is worse than no board.
func LoadRegions(fc *FeatureCollection, log zerolog.Logger) (*Registry, error) {
	reg := &Registry{
		regions:   make(map[string]Region, len(fc.Features)),
		cellIndex: make(map[s2.CellID][]string),
		log:       log,
	}

	coverer := &s2.RegionCoverer{
		MinLevel: coverMinLevel,
		MaxLevel: coverMaxLevel,
		LevelMod: 1,
		MaxCells: coverMaxCells,
	}

	for i, f := range fc.Features {
		name := f.Name()
		if name == "" {
			log.Debug().Int("feature", i).Msg("skipping feature without a name")
			continue
		}
		geom, err := GeometryFromGeoJSON(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", name, err)
		}
		if _, dup := reg.regions[name]; dup {
			log.Warn().Str("name", name).Msg("duplicate region name, keeping the later feature")
		}
		reg.regions[name] = newRegion(name, geom)

		for _, cell := range coverer.Covering(geom.bound) {
			reg.cellIndex[cell] = append(reg.cellIndex[cell], name)
		}
	}
	return reg, nil
}

// Get looks up a region by name. The input is trimmed the same way
// names were at load.
func (reg *Registry) Get(name string) (Region, bool) {
	r, ok := reg.regions[strings.TrimSpace(name)]
	return r, ok
}

// Names returns all registered names in undefined order. Consumers that
// need an order (card decks, sorted lists) shuffle or sort the result
// themselves.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.regions))
	for name := range reg.regions {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered regions.
func (reg *Registry) Count() int { return len(reg.regions) }

// FindContaining returns the region whose polygon contains the
// coordinate, if any. Candidates come from the cell index; exact
// containment decides. With last-wins duplicate handling regions do not
// overlap in practice, so the first containment match is returned.
func (reg *Registry) FindContaining(c Coordinate) (Region, bool) {
	if !c.valid() {
		return Region{}, false
	}
	cid := s2.CellIDFromLatLng(c.latLng())

	seen := make(map[string]struct{})
	for level := coverMinLevel; level <= coverMaxLevel; level++ {
		for _, name := range reg.cellIndex[cid.Parent(level)] {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			if r := reg.regions[name]; r.Contains(c) {
				return r, true
			}
		}
	}
	return Region{}, false
}
