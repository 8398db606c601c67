package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	cm "checkers-engine/checkersmg"
	"checkers-engine/engine"
)

const (
	engineName    = "checkers-engine 0.1"
	defaultDepth  = 8
	maxPerftDepth = 12
)

func main() {
	verbose := flag.Bool("v", false, "Debug logging on stderr")
	weights := flag.String("weights", "", "JSON weight override file")
	threads := flag.Int("threads", 1, "Root search workers")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	s := newSession(os.Stdout, log)
	if *weights != "" {
		if err := s.loadWeights(*weights); err != nil {
			log.Fatal().Err(err).Msg("load-weights")
		}
	}
	s.setThreads(*threads)
	s.run(os.Stdin)
}

// session is the state of one protocol conversation.
type session struct {
	out      io.Writer
	log      zerolog.Logger
	board    *cm.Board
	features *engine.FeatureSet
	weights  engine.Weights
	threads  int
	searcher *engine.Searcher
	last     engine.SearchStats
}

func newSession(out io.Writer, log zerolog.Logger) *session {
	s := &session{
		out:      out,
		log:      log,
		board:    cm.NewGame(),
		features: engine.NewFeatureSet(),
		weights:  engine.DefaultWeights(),
		threads:  1,
	}
	s.rebuild()
	return s
}

// rebuild replaces the searcher after a weight or thread change.
func (s *session) rebuild() {
	eval := engine.NewEvaluator(s.features, s.weights)
	s.searcher = engine.NewSearcher(eval, engine.WithThreads(s.threads), engine.WithLogger(s.log))
}

func (s *session) setThreads(n int) {
	s.threads = engine.Clamp(n, 1, 4*runtime.NumCPU())
	s.rebuild()
}

func (s *session) loadWeights(path string) error {
	w, err := engine.LoadWeightsFile(path, s.features)
	if err != nil {
		return err
	}
	s.weights = w
	s.rebuild()
	return nil
}

func (s *session) println(a ...any) { fmt.Fprintln(s.out, a...) }

func (s *session) printf(format string, a ...any) { fmt.Fprintf(s.out, format, a...) }

// run reads commands from r until EOF or quit.
func (s *session) run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "hello", "checkers":
			s.println("id name", engineName)
			s.println("option name threads type spin default 1")
			s.println("option name weights type string")
			s.println("checkersok")
		case "isready":
			s.println("readyok")
		case "newgame":
			s.board = cm.NewGame()
			s.rebuild()
		case "quit":
			return
		case "position":
			s.position(tokens[1:])
		case "go":
			s.search(tokens[1:])
		case "moves":
			s.println(engine.PVLine{Moves: s.board.LegalMoves()}.String())
		case "eval":
			s.eval()
		case "print", "d":
			s.println(s.board.String())
			s.println("fen", s.board.ToFEN())
		case "perft":
			s.perft(tokens[1:])
		case "stats":
			s.last.Dump(s.out)
		case "setoption":
			s.setOption(tokens[1:])
		default:
			s.println("info string Unknown command:", line)
		}
	}
}

// position handles "startpos|fen <fen> [moves ...]".
func (s *session) position(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}
	var rest []string
	switch strings.ToLower(args[0]) {
	case "startpos":
		s.board = cm.NewGame()
		rest = args[1:]
	case "fen":
		if len(args) < 2 {
			s.println("info string Invalid fen position")
			return
		}
		b, err := cm.ParseFEN(args[1])
		if err != nil {
			s.println("info string", err)
			return
		}
		s.board = b
		rest = args[2:]
	default:
		s.println("info string Invalid position subcommand")
		return
	}
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, moveStr := range rest[1:] {
		m, err := cm.ParseMove(moveStr)
		if err != nil {
			s.println("info string", err)
			return
		}
		if err := s.board.Apply(m); err != nil {
			s.println("info string Move", moveStr, "not legal in", s.board.ToFEN())
			return
		}
	}
}

// search handles "go [depth N]".
func (s *session) search(args []string) {
	depth := defaultDepth
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				s.println("info string Malformed go command option depth")
				return
			}
			d, err := strconv.Atoi(args[i+1])
			if err != nil {
				s.println("info string Malformed go command option; could not convert depth")
				return
			}
			depth = d
			i++
		default:
			s.println("info string Unknown go subcommand", args[i])
		}
	}

	res, err := s.searcher.Search(s.board, depth)
	if err != nil {
		s.println("info string", err)
		s.println("bestmove", cm.NoMove)
		return
	}
	s.last = res.Stats
	s.printf("info depth %d score %s nodes %d time %d pv %s\n",
		res.Depth, scoreString(res.Score), res.Stats.Nodes, res.Time.Milliseconds(), res.PV)
	s.println("bestmove", res.Best)
}

func scoreString(v int64) string {
	switch {
	case v >= engine.WinScore:
		return "win"
	case v <= -engine.WinScore:
		return "loss"
	}
	return strconv.FormatInt(v, 10)
}

// eval prints the evaluation breakdown of every legal move.
func (s *session) eval() {
	e := s.searcher.Evaluator()
	for _, m := range s.board.LegalMoves() {
		after := s.board.Peek(m)
		s.printf("info string %s %s\n", m, e.Evaluate(s.board, &after).Format(s.features))
	}
}

func (s *session) perft(args []string) {
	depth := 1
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 0 {
			s.println("info string Malformed perft depth")
			return
		}
		depth = engine.Min(d, maxPerftDepth)
	}
	s.printf("perft %d %d\n", depth, cm.Perft(s.board, depth))
}

// setOption handles "name <id> value <x>".
func (s *session) setOption(args []string) {
	if len(args) < 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		s.println("info string Malformed setoption command")
		return
	}
	value := strings.Join(args[3:], " ")
	switch strings.ToLower(args[1]) {
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			s.println("info string Malformed threads value", value)
			return
		}
		s.setThreads(n)
	case "weights":
		if err := s.loadWeights(value); err != nil {
			s.println("info string", err)
		}
	default:
		s.println("info string Unknown option", args[1])
	}
}
