package mapquiz

import "sync"

// QuizState is the bookkeeping for one quiz session: how many placements
// were evaluated, and which names have been solved. Hits are defined as
// the size of the solved set, so the hits==|solved| invariant holds by
// construction.
//
// Mutation contract: the evaluator is the single writer; each evaluation
// runs to completion before the next starts. The mutex makes the
// counters safe anyway when a consumer reads them from another
// goroutine.
type QuizState struct {
	mu       sync.Mutex
	attempts int
	solved   map[string]struct{}
}

// NewQuizState returns an empty session state.
func NewQuizState() *QuizState {
	return &QuizState{solved: make(map[string]struct{})}
}

// RecordAttempt counts one evaluated placement. Callers only invoke this
// for names that exist in the registry; unknown names are a data bug,
// not a player miss.
func (s *QuizState) RecordAttempt() {
	s.mu.Lock()
	s.attempts++
	s.mu.Unlock()
}

// RecordHit marks a name solved. Idempotent: re-recording a solved name
// changes nothing.
func (s *QuizState) RecordHit(name string) {
	s.mu.Lock()
	s.solved[name] = struct{}{}
	s.mu.Unlock()
}

// IsSolved reports whether the name has been solved this session.
func (s *QuizState) IsSolved(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.solved[name]
	return ok
}

// Attempts returns the number of evaluated placements so far.
func (s *QuizState) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Hits returns the number of solved names.
func (s *QuizState) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.solved)
}

// Solved returns a copy of the solved names, order undefined.
func (s *QuizState) Solved() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.solved))
	for name := range s.solved {
		names = append(names, name)
	}
	return names
}

// Remaining returns how many of total names are still unsolved, never
// negative.
func (s *QuizState) Remaining(total int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rem := total - len(s.solved); rem > 0 {
		return rem
	}
	return 0
}

// Reset returns the session to its initial empty state.
func (s *QuizState) Reset() {
	s.mu.Lock()
	s.attempts = 0
	s.solved = make(map[string]struct{})
	s.mu.Unlock()
}
