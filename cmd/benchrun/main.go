// Command benchrun runs the bench/ benchmarks followed by the perft and
// search drivers, printing a timing line after each step.
//
// Usage: go run ./cmd/benchrun
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

const midgameFEN = "B:W18,19,21,23,24,26,29,30,31,32:B1,2,3,5,6,8,9,11,12,14"

type step struct {
	label string
	args  []string // arguments to the go tool
	fatal bool     // stop the run when this step fails
}

var steps = []step{
	{"benchmarks", []string{"test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"}, true},
	{"perft startpos d6", []string{"run", "./cmd/perft", "-depth", "6", "-label", "Initial"}, false},
	{"perft startpos d8", []string{"run", "./cmd/perft", "-depth", "8", "-label", "Initial"}, false},
	{"perft startpos d10", []string{"run", "./cmd/perft", "-depth", "10", "-label", "Initial"}, false},
	{"perft startpos d10 x4", []string{"run", "./cmd/perft", "-depth", "10", "-parallel", "4", "-label", "Initial/4"}, false},
	{"perft midgame d8", []string{"run", "./cmd/perft", "-fen", midgameFEN, "-depth", "8", "-label", "Midgame"}, false},
	{"search startpos d8", []string{"run", "./cmd/searchbench", "-depth", "8"}, false},
}

// run streams the step's output and returns its exit status with the
// wall time it took.
func (s step) run(log zerolog.Logger) (int, time.Duration) {
	cmd := exec.Command("go", s.args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, elapsed
	case errors.As(err, &exitErr):
		return exitErr.ExitCode(), elapsed
	}
	log.Error().Err(err).Str("step", s.label).Msg("start-failed")
	return 1, elapsed
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	failed := 0
	for _, s := range steps {
		fmt.Printf("== %s\n", s.label)
		code, elapsed := s.run(log)
		fmt.Printf("== %s: exit %d in %s\n\n", s.label, code, elapsed.Round(time.Millisecond))
		if code == 0 {
			continue
		}
		if s.fatal {
			log.Fatal().Int("exit", code).Str("step", s.label).Msg("benchmarks-failed")
		}
		failed++
	}
	if failed > 0 {
		log.Error().Int("failed", failed).Int("steps", len(steps)).Msg("benchrun")
		os.Exit(1)
	}
}
