package checkersmg

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the PDN FEN of the opening position.
const FENStartPos = "B:W21,22,23,24,25,26,27,28,29,30,31,32:B1,2,3,4,5,6,7,8,9,10,11,12"

// ParseFEN reads a PDN FEN such as "W:W18,K31:B14,K2". Ranges like "B1-12"
// are accepted. A parsed position never starts inside a capture chain.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Split(strings.TrimSuffix(strings.TrimSpace(fen), "."), ":")
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: expected 3 fields, got %d", ErrBadFEN, len(fields))
	}

	b := &Board{}
	switch strings.ToUpper(strings.TrimSpace(fields[0])) {
	case "B":
		b.active = Black
	case "W":
		b.active = White
	default:
		return nil, fmt.Errorf("%w: invalid side to move %q", ErrBadFEN, fields[0])
	}

	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, fmt.Errorf("%w: empty piece field", ErrBadFEN)
		}
		var c Color
		switch f[0] {
		case 'B', 'b':
			c = Black
		case 'W', 'w':
			c = White
		default:
			return nil, fmt.Errorf("%w: invalid colour in %q", ErrBadFEN, f)
		}
		if err := b.placeList(c, f[1:]); err != nil {
			return nil, err
		}
	}

	b.updateEmpty()
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	return b, nil
}

func (b *Board) placeList(c Color, list string) error {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		king := false
		if strings.HasPrefix(tok, "K") || strings.HasPrefix(tok, "k") {
			king = true
			tok = tok[1:]
		}
		lo, hi := tok, tok
		if i := strings.IndexByte(tok, '-'); i >= 0 {
			lo, hi = tok[:i], tok[i+1:]
		}
		first, err1 := strconv.Atoi(lo)
		last, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil || first > last {
			return fmt.Errorf("%w: invalid square %q", ErrBadFEN, tok)
		}
		for n := first; n <= last; n++ {
			sq, ok := SquareFromNumber(n)
			if !ok {
				return fmt.Errorf("%w: square %d out of range", ErrBadFEN, n)
			}
			if (b.pieces[Black]|b.pieces[White])&bit(sq) != 0 {
				return fmt.Errorf("%w: square %d listed twice", ErrBadFEN, n)
			}
			b.place(c, sq, king)
		}
	}
	return nil
}

// place puts a piece of c on sq. Men that already stand on their crowning
// row are placed as kings.
func (b *Board) place(c Color, sq Square, king bool) {
	m := bit(sq)
	if c == Black && m&blackKingRow != 0 || c == White && m&whiteKingRow != 0 {
		king = true
	}
	b.pieces[c] |= m
	if king || c == Black {
		b.forward[c] |= m
	}
	if king || c == White {
		b.backward[c] |= m
	}
}

// ToFEN renders the position as a PDN FEN. A capture chain in progress is
// not represented.
func (b *Board) ToFEN() string {
	var sb strings.Builder
	if b.active == Black {
		sb.WriteString("B")
	} else {
		sb.WriteString("W")
	}
	for _, c := range [2]Color{White, Black} {
		sb.WriteString(":")
		if c == Black {
			sb.WriteString("B")
		} else {
			sb.WriteString("W")
		}
		kings := b.Kings(c)
		for i, sq := range SquaresOf(b.pieces[c]) {
			if i > 0 {
				sb.WriteString(",")
			}
			if kings&bit(sq) != 0 {
				sb.WriteString("K")
			}
			sb.WriteString(strconv.Itoa(sq.Number()))
		}
	}
	return sb.String()
}
