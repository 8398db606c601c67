package checkersmg

import (
	"fmt"
	"strings"
)

// String draws the board with square 1 in the bottom right corner, as seen
// from White's side. Men are b/w, kings B/W, followed by the square number.
func (b *Board) String() string {
	var grid [8][8]string
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = "   "
		}
	}
	for n := 1; n <= 32; n++ {
		sq, _ := SquareFromNumber(n)
		row, col := cellOf(n)
		grid[row][col] = fmt.Sprintf("%s%-2d", b.symbolAt(sq), n)
	}

	var sb strings.Builder
	sep := strings.Repeat("+---", 8) + "+\n"
	for _, row := range grid {
		sb.WriteString(sep)
		for _, cell := range row {
			sb.WriteString("|")
			sb.WriteString(cell)
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(sep)
	return sb.String()
}

// cellOf maps a square number to its row (0 = top) and column in the
// diagram. Squares 1-4 fill the bottom row from the right.
func cellOf(n int) (row, col int) {
	i := n - 1
	pair, j := i/8, i%8
	if j < 4 {
		return 7 - 2*pair, 6 - 2*j
	}
	return 6 - 2*pair, 7 - 2*(j-4)
}

func (b *Board) symbolAt(sq Square) string {
	m := bit(sq)
	switch {
	case b.Kings(Black)&m != 0:
		return "B"
	case b.Kings(White)&m != 0:
		return "W"
	case b.pieces[Black]&m != 0:
		return "b"
	case b.pieces[White]&m != 0:
		return "w"
	}
	return " "
}
