package mapquiz

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
)

// DataLoadError reports that one of the startup collections could not
// be read or parsed. It is fatal to initialization: callers must not
// build a quiz board from a partial load.
type DataLoadError struct {
	Source string // path of the collection that failed
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// QuizConfig contains configuration options for quiz initialization.
type QuizConfig struct {
	RegionsPath string // GeoJSON file with the quiz region polygons
	LinesPath   string // GeoJSON file with reference lines; "" disables the overlay
	FS          fs.FS  // filesystem the paths are resolved against; nil means the OS
	Logger      zerolog.Logger
}

// Option is a functional option for configuring a quiz.
type Option func(*QuizConfig)

// WithRegionsPath sets the region collection path.
func WithRegionsPath(path string) Option {
	return func(c *QuizConfig) { c.RegionsPath = path }
}

// WithLinesPath sets the reference-line collection path. An empty path
// skips the overlay entirely.
func WithLinesPath(path string) Option {
	return func(c *QuizConfig) { c.LinesPath = path }
}

// WithFS resolves the data paths against fsys instead of the OS
// filesystem (embedded data, test fixtures).
func WithFS(fsys fs.FS) Option {
	return func(c *QuizConfig) { c.FS = fsys }
}

// WithLogger sets the logger for load warnings and evaluator
// diagnostics. Defaults to a disabled logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *QuizConfig) { c.Logger = log }
}

func defaultQuizConfig() *QuizConfig {
	return &QuizConfig{
		RegionsPath: "data/neighborhoods.geojson",
		LinesPath:   "data/reference-lines.geojson",
		Logger:      zerolog.Nop(),
	}
}

// Quiz bundles one board: the immutable region registry, the overlay
// lines, the session state, and the evaluator. The presentation layer
// reads Registry and Lines to render, calls Evaluate on each drop, and
// reads State for the scoreboard.
type Quiz struct {
	Registry  *Registry
	Lines     []ReferenceLine
	State     *QuizState
	Evaluator *Evaluator
}

// NewQuiz loads the region and reference-line collections and returns a
// ready board with empty session state. Any load failure returns a
// *DataLoadError and no board (fail closed).
func NewQuiz(opts ...Option) (*Quiz, error) {
	cfg := defaultQuizConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	regionFC, err := cfg.decodeCollection(cfg.RegionsPath)
	if err != nil {
		return nil, err
	}
	registry, err := LoadRegions(regionFC, cfg.Logger)
	if err != nil {
		return nil, &DataLoadError{Source: cfg.RegionsPath, Err: err}
	}

	var lines []ReferenceLine
	if cfg.LinesPath != "" {
		lineFC, err := cfg.decodeCollection(cfg.LinesPath)
		if err != nil {
			return nil, err
		}
		lines, err = LoadReferenceLines(lineFC)
		if err != nil {
			return nil, &DataLoadError{Source: cfg.LinesPath, Err: err}
		}
	}

	return &Quiz{
		Registry:  registry,
		Lines:     lines,
		State:     NewQuizState(),
		Evaluator: NewEvaluator(cfg.Logger),
	}, nil
}

func (c *QuizConfig) decodeCollection(path string) (*FeatureCollection, error) {
	rd, err := c.open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer rd.Close()

	fc, err := DecodeFeatureCollection(rd)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	return fc, nil
}

func (c *QuizConfig) open(path string) (io.ReadCloser, error) {
	if c.FS != nil {
		return c.FS.Open(path)
	}
	return os.Open(path)
}

// Evaluate scores one placement against this board. See
// Evaluator.Evaluate for the outcome semantics.
func (q *Quiz) Evaluate(name string, coord Coordinate) Outcome {
	return q.Evaluator.Evaluate(name, coord, q.Registry, q.State)
}

// Remaining returns how many regions are still unsolved.
func (q *Quiz) Remaining() int {
	return q.State.Remaining(q.Registry.Count())
}

// Reset discards the session state for a full restart. The registry and
// overlay are untouched; they are immutable for the process lifetime.
func (q *Quiz) Reset() { q.State.Reset() }

// Validate runs integrity checks over the loaded board: a usable quiz
// needs at least one region, every name must round-trip through the
// registry, and every region must contain its own representative point
// or at least be findable through the spatial index.
func (q *Quiz) Validate() error {
	if q.Registry.Count() == 0 {
		return fmt.Errorf("no regions loaded")
	}
	for _, name := range q.Registry.Names() {
		r, ok := q.Registry.Get(name)
		if !ok {
			return fmt.Errorf("region %q does not round-trip through the registry", name)
		}
		if r.Geohash() == "" {
			return fmt.Errorf("region %q has no centroid geohash", name)
		}
		// Concave shapes may not contain their own centroid; only
		// insist that a centroid inside some region resolves via the
		// index to a region at all.
		if r.Contains(r.Centroid()) {
			if _, ok := q.Registry.FindContaining(r.Centroid()); !ok {
				return fmt.Errorf("region %q is invisible to the spatial index", name)
			}
		}
	}
	return nil
}
