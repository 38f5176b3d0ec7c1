package mapquiz

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog"
)

// Outcome is the result of evaluating one placement.
type Outcome string

const (
	// OutcomeHit: the drop point is inside the named region.
	OutcomeHit Outcome = "hit"
	// OutcomeMiss: the drop point is outside the named region.
	OutcomeMiss Outcome = "miss"
	// OutcomeAlreadySolved: the name was solved earlier; nothing counted.
	OutcomeAlreadySolved Outcome = "already_solved"
	// OutcomeUnknownName: the name is not in the registry, or the
	// coordinate was malformed. A data-integrity signal, not a player
	// miss; nothing counted.
	OutcomeUnknownName Outcome = "unknown_name"
)

// maxSuggestDistance caps the edit distance for unknown-name
// suggestions; beyond two edits a "did you mean" is noise.
const maxSuggestDistance = 2

// Evaluator decides placements. It holds no quiz state of its own; the
// registry and state are passed per call so multiple boards can share
// one evaluator.
type Evaluator struct {
	log zerolog.Logger
}

// NewEvaluator returns an evaluator that reports data-integrity
// problems through log.
func NewEvaluator(log zerolog.Logger) *Evaluator {
	return &Evaluator{log: log}
}

// Evaluate scores one placement: the card named name dropped at coord.
//
// An already-solved name is a no-op (stale drag handles must not double
// count). An unknown name or a malformed coordinate is reported and
// leaves every counter untouched. Otherwise the attempt is recorded,
// and a containment test decides hit or miss.
func (e *Evaluator) Evaluate(name string, coord Coordinate, reg *Registry, st *QuizState) Outcome {
	name = strings.TrimSpace(name)

	if st.IsSolved(name) {
		return OutcomeAlreadySolved
	}

	region, ok := reg.Get(name)
	if !ok {
		e.log.Error().
			Str("name", name).
			Str("suggestion", closestName(reg.Names(), name)).
			Msg("placement evaluated for a name missing from the registry")
		return OutcomeUnknownName
	}

	if !coord.valid() {
		e.log.Error().
			Str("name", name).
			Float64("lat", coord.Lat).
			Float64("lng", coord.Lng).
			Msg("placement with malformed coordinate")
		return OutcomeUnknownName
	}

	st.RecordAttempt()
	if region.Contains(coord) {
		st.RecordHit(name)
		return OutcomeHit
	}
	return OutcomeMiss
}

// closestName returns the registered name nearest to q by edit
// distance, or "" when nothing is within maxSuggestDistance. Ties break
// lexically so the suggestion is deterministic.
func closestName(candidates []string, q string) string {
	sort.Strings(candidates)
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, cand := range candidates {
		if dist := levenshtein.ComputeDistance(q, cand); dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}
