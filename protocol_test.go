package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func runScript(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	s := newSession(&out, zerolog.Nop())
	s.run(strings.NewReader(script))
	return out.String()
}

func TestHandshake(t *testing.T) {
	out := runScript(t, "checkers\nisready\nquit\nisready\n")
	if !strings.Contains(out, "checkersok") {
		t.Fatalf("no handshake in %q", out)
	}
	if strings.Count(out, "readyok") != 1 {
		t.Fatalf("commands after quit were processed: %q", out)
	}
}

func TestGoDepthZero(t *testing.T) {
	out := runScript(t, "position startpos\ngo depth 0\n")
	if !strings.Contains(out, "bestmove 9-13") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPositionWithMoves(t *testing.T) {
	out := runScript(t, "position startpos moves 9-13 24-20\nprint\n")
	if !strings.Contains(out, "fen B:W20,21,22,23,25,26,27,28,29,30,31,32:B1,2,3,4,5,6,7,8,10,11,12,13") {
		t.Fatalf("unexpected position %q", out)
	}
}

func TestIllegalMoveIsReported(t *testing.T) {
	out := runScript(t, "position startpos moves 9-14 22-18 1-5\nmoves\n")
	if !strings.Contains(out, "info string Move 1-5 not legal") {
		t.Fatalf("illegal move accepted: %q", out)
	}
}

func TestGoFindsWin(t *testing.T) {
	out := runScript(t, "position fen W:W22:B18\ngo depth 3\nstats\n")
	if !strings.Contains(out, "score win") || !strings.Contains(out, "bestmove 22x15") {
		t.Fatalf("win not found: %q", out)
	}
	if !strings.Contains(out, "info string Search statistics:") {
		t.Fatalf("stats missing: %q", out)
	}
}

func TestGoOnFinishedGame(t *testing.T) {
	out := runScript(t, "position fen B:W5,6,10:B1\ngo depth 2\n")
	if !strings.Contains(out, "bestmove 0000") || !strings.Contains(out, "game over") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEvalAndPerft(t *testing.T) {
	out := runScript(t, "eval\nperft 3\nperft x\n")
	if strings.Count(out, "info string ") != 8 {
		t.Fatalf("expected seven move lines and one error: %q", out)
	}
	if !strings.Contains(out, "perft 3 302") {
		t.Fatalf("perft missing: %q", out)
	}
}

func TestSetOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.json")
	if err := os.WriteFile(path, []byte(`{"material": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	s := newSession(&out, zerolog.Nop())
	s.run(strings.NewReader(strings.Join([]string{
		"setoption name threads value 3",
		"setoption name weights value " + path,
		"setoption name colour value red",
		"setoption name weights value " + filepath.Join(t.TempDir(), "none.json"),
	}, "\n")))

	if s.threads != 3 || s.searcher.Threads() != 3 {
		t.Fatalf("threads %d", s.threads)
	}
	if s.weights.Material != 1 || s.searcher.Evaluator().Weights().Material != 1 {
		t.Fatalf("weights not applied")
	}
	if strings.Count(out.String(), "info string") != 2 {
		t.Fatalf("expected two errors: %q", out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	out := runScript(t, "fly\n")
	if !strings.HasPrefix(out, "info string Unknown command: fly") {
		t.Fatalf("unexpected output %q", out)
	}
}
