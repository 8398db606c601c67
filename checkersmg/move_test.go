package checkersmg

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want string
		jump bool
	}{
		{"11-15", "11-15", false},
		{"15x22", "15x22", true},
		{"14 to 23", "14x23", true},
		{" 9-13 ", "9-13", false},
	}
	for _, tt := range tests {
		m, err := ParseMove(tt.in)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", tt.in, err)
		}
		if m.String() != tt.want || m.IsJump() != tt.jump {
			t.Fatalf("ParseMove(%q) = %s (jump %v), want %s (jump %v)", tt.in, m, m.IsJump(), tt.want, tt.jump)
		}
	}

	for _, bad := range []string{"", "11", "0-4", "1-33", "a-b", "1-2"} {
		if _, err := ParseMove(bad); !errors.Is(err, ErrBadMove) {
			t.Fatalf("ParseMove(%q) error %v, want ErrBadMove", bad, err)
		}
	}
}

func TestJumpCapturedSquare(t *testing.T) {
	m, _ := ParseMove("14x23")
	if m.Captured().Number() != 18 {
		t.Fatalf("captured %s, want 18", m.Captured())
	}
	s, _ := ParseMove("9-13")
	if s.Captured() != NoSquare {
		t.Fatalf("simple move reports a capture")
	}
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range []string{
		FENStartPos,
		"W:W18,K31:BK2,14",
		"B:W:B1",
	} {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if b.ToFEN() != fen {
			t.Fatalf("round trip %q -> %q", fen, b.ToFEN())
		}
	}

	b, err := ParseFEN("B:W21-32:B1-12")
	if err != nil {
		t.Fatalf("range FEN: %v", err)
	}
	if b.ToFEN() != FENStartPos {
		t.Fatalf("range FEN parsed to %q", b.ToFEN())
	}

	for _, bad := range []string{"", "X:W1:B2", "B:W1:B1", "B:W40:B1", "B:Q1:B2"} {
		if _, err := ParseFEN(bad); !errors.Is(err, ErrBadFEN) {
			t.Fatalf("ParseFEN(%q) error %v, want ErrBadFEN", bad, err)
		}
	}
}
