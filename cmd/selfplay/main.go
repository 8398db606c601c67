package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	cm "checkers-engine/checkersmg"
	"checkers-engine/engine"
)

func main() {
	blackSpec := flag.String("black", "search", "Black agent: search[:depth], random or first")
	whiteSpec := flag.String("white", "random", "White agent: search[:depth], random or first")
	depth := flag.Int("depth", 6, "Default search depth")
	threads := flag.Int("threads", 1, "Root search workers per search agent")
	weights := flag.String("weights", "", "JSON weight override file")
	fen := flag.String("fen", "", "Start position (defaults to initial position)")
	maxPlies := flag.Int("maxplies", 400, "Stop an unfinished game after N plies")
	games := flag.Int("games", 1, "Number of games to play")
	verbose := flag.Bool("v", false, "Log every move")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	fs := engine.NewFeatureSet()
	w := engine.DefaultWeights()
	if *weights != "" {
		var err error
		if w, err = engine.LoadWeightsFile(*weights, fs); err != nil {
			log.Fatal().Err(err).Msg("load-weights")
		}
	}

	var start *cm.Board
	if *fen != "" {
		var err error
		if start, err = cm.ParseFEN(*fen); err != nil {
			log.Fatal().Err(err).Msg("parse-fen")
		}
	}

	newAgent := func(spec string) engine.Agent {
		a, err := parseAgent(spec, *depth, *threads, fs, w, log)
		if err != nil {
			log.Fatal().Err(err).Str("agent", spec).Msg("bad-agent")
		}
		return a
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tally := map[engine.Outcome]int{}
	for g := 0; g < *games; g++ {
		m := engine.Match{
			Black:    newAgent(*blackSpec),
			White:    newAgent(*whiteSpec),
			MaxPlies: *maxPlies,
			Start:    start,
			Logger:   &log,
		}
		res, err := m.Play(ctx)
		if err != nil {
			log.Error().Err(err).Int("game", g+1).Msg("match-aborted")
			os.Exit(1)
		}
		tally[res.Outcome]++
		fmt.Printf("game %d: %s in %d plies\n%s\n", g+1, res.Outcome, len(res.Moves), res.Transcript())
		if *verbose {
			fmt.Println(res.Final)
		}
	}
	if *games > 1 {
		fmt.Printf("black %d white %d unfinished %d\n",
			tally[engine.BlackWins], tally[engine.WhiteWins], tally[engine.Unfinished])
	}
}

// parseAgent builds an agent from a command line spec.
func parseAgent(spec string, depth, threads int, fs *engine.FeatureSet, w engine.Weights, log zerolog.Logger) (engine.Agent, error) {
	name, arg, _ := strings.Cut(spec, ":")
	switch name {
	case "random":
		return engine.NewRandomAgent(nil), nil
	case "first":
		return engine.FirstMoveAgent{}, nil
	case "search":
		if arg != "" {
			d, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("search depth %q: %w", arg, err)
			}
			depth = d
		}
		s := engine.NewSearcher(engine.NewEvaluator(fs, w),
			engine.WithThreads(threads),
			engine.WithLogger(log.With().Str("agent", spec).Logger()))
		return &engine.SearchAgent{Searcher: s, Depth: engine.Clamp(depth, 0, engine.MaxPly/2)}, nil
	}
	return nil, fmt.Errorf("unknown agent %q", spec)
}
