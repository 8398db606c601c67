package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	cm "checkers-engine/checkersmg"
	"checkers-engine/engine"
)

func main() {
	depthFlag := flag.Int("depth", 8, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	threadsFlag := flag.Int("threads", 1, "root search workers")
	fenFlag := flag.String("fen", "", "PDN FEN to search (empty = startpos)")
	weightsFlag := flag.String("weights", "", "JSON weight override file")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("create-cpuprofile")
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatal().Err(err).Msg("start-cpuprofile")
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := cm.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	fs := engine.NewFeatureSet()
	w := engine.DefaultWeights()
	if *weightsFlag != "" {
		var err error
		if w, err = engine.LoadWeightsFile(*weightsFlag, fs); err != nil {
			log.Fatal().Err(err).Msg("load-weights")
		}
	}

	depth := *depthFlag
	repeat := *repeatFlag
	fmt.Printf("searchbench: fen=%q depth=%d threads=%d repeat=%d\n", fen, depth, *threadsFlag, repeat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var total engine.SearchStats
	startAll := time.Now()
	for i := 0; i < repeat; i++ {
		// Fresh position and caches for each run.
		board, err := cm.ParseFEN(fen)
		if err != nil {
			log.Fatal().Err(err).Msg("parse-fen")
		}
		s := engine.NewSearcher(engine.NewEvaluator(fs, w), engine.WithThreads(*threadsFlag))

		res, err := s.SearchContext(ctx, board, depth)
		if err != nil {
			log.Fatal().Err(err).Msg("search")
		}
		total.Add(res.Stats)
		fmt.Printf("iteration %d: bestmove %v score %d nodes %d time=%v pv %s\n",
			i+1, res.Best, res.Score, res.Stats.Nodes, res.Time, res.PV)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nps: %.0f\n", totalElapsed, float64(total.Nodes)/totalElapsed.Seconds())
	total.Dump(os.Stdout)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("create-memprofile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("write-memprofile")
		}
	}
}
