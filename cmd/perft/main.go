package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/rs/zerolog"

	cm "checkers-engine/checkersmg"
)

func main() {
	fen := flag.String("fen", cm.FENStartPos, "PDN FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	parallel := flag.Int("parallel", 0, "Split root moves over N workers (0 = sequential)")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *depth <= 0 {
		log.Fatal().Int("depth", *depth).Msg("depth must be positive")
	}

	board, err := cm.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("parse-fen")
	}

	if *divide {
		var div map[cm.Move]uint64
		if *parallel > 0 {
			div, err = cm.PerftParallel(context.Background(), board, *depth, *parallel)
			if err != nil {
				log.Fatal().Err(err).Msg("perft")
			}
		} else {
			div = cm.PerftDivide(board, *depth)
		}
		type kv struct {
			m cm.Move
			n uint64
		}
		arr := make([]kv, 0, len(div))
		var sum uint64
		for m, n := range div {
			arr = append(arr, kv{m, n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool {
			if arr[i].m.From() != arr[j].m.From() {
				return arr[i].m.From() < arr[j].m.From()
			}
			return arr[i].m.To() < arr[j].m.To()
		})
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatal().Err(err).Msg("create-cpuprofile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("start-cpuprofile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		if *parallel > 0 {
			div, err := cm.PerftParallel(context.Background(), board, *depth, *parallel)
			if err != nil {
				log.Fatal().Err(err).Msg("perft")
			}
			for _, n := range div {
				totalNodes += n
			}
			continue
		}
		totalNodes += cm.Perft(board, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: label, depth, nodes, time, nodes per second.
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Fatal().Err(err).Msg("create-memprofile")
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("write-memprofile")
		}
		_ = f.Close()
	}
}
