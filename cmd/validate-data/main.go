// Command validate-data loads the quiz GeoJSON inputs and runs the
// board integrity checks.
//
// Usage:
//
//	go run ./cmd/validate-data -regions data/neighborhoods.geojson -lines data/reference-lines.geojson
//
// Exits non-zero when the data would not produce a playable board.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mapquiz/mapquiz"
	"github.com/rs/zerolog"
)

func main() {
	regions := flag.String("regions", "data/neighborhoods.geojson", "region polygon collection")
	lines := flag.String("lines", "data/reference-lines.geojson", "reference line collection (empty to skip)")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	quiz, err := mapquiz.NewQuiz(
		mapquiz.WithRegionsPath(*regions),
		mapquiz.WithLinesPath(*lines),
		mapquiz.WithLogger(log),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Regions: %d\n", quiz.Registry.Count())
	fmt.Printf("Reference lines: %d\n", len(quiz.Lines))

	if err := quiz.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Board data OK.")
}
