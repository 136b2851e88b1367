// Package position holds the Position snapshot: piece placement plus the
// two castle-move counters, together with Zobrist hashing (zobrist.go)
// since both operate over the same data.
package position

import (
	"fmt"
	"strings"

	"github.com/hailam/camelot/internal/board"
	"github.com/hailam/camelot/internal/piece"
)

const numSlots = board.FileCount * board.RankCount

// Position is a value-type snapshot of piece placement plus castle-move
// counters. External callers see pure value semantics: copying a Position
// (the Squares array included) is a plain Go value copy, no aliasing.
type Position struct {
	Squares     [numSlots]piece.Piece
	CastleMoves [2]int // indexed by piece.Color; caller-maintained
}

// New returns an empty board with no castle-move history.
func New() *Position {
	pos := &Position{}
	for i := range pos.Squares {
		pos.Squares[i] = piece.Empty
	}
	return pos
}

// At returns the piece on sq, or piece.Empty if vacant or off-board.
func (p *Position) At(sq board.Square) piece.Piece {
	if !sq.IsValid() {
		return piece.Empty
	}
	return p.Squares[sq]
}

// Set places pc on sq. sq must be addressable.
func (p *Position) Set(sq board.Square, pc piece.Piece) {
	p.Squares[sq] = pc
}

// Clear empties sq.
func (p *Position) Clear(sq board.Square) {
	p.Squares[sq] = piece.Empty
}

// Copy returns an independent snapshot.
func (p *Position) Copy() *Position {
	cp := *p
	return &cp
}

// CountPieces returns how many pieces of c remain on the board.
func (p *Position) CountPieces(c piece.Color) int {
	n := 0
	for _, sq := range board.AddressableSquares() {
		if pc := p.Squares[sq]; !pc.IsEmpty() && pc.Color == c {
			n++
		}
	}
	return n
}

// CastleOf returns the two squares of color's own castle.
func CastleOf(c piece.Color) [2]board.Square {
	if c == piece.White {
		return board.WhiteCastle
	}
	return board.BlackCastle
}

// EnemyCastleOf returns the two squares of the castle color must enter to
// win by castle occupation.
func EnemyCastleOf(c piece.Color) [2]board.Square {
	return CastleOf(c.Other())
}

// NewInitial returns the starting position.
func NewInitial() *Position {
	pos := New()

	whiteMen := []string{"D6", "E6", "F6", "G6", "H6", "I6", "E7", "F7", "G7", "H7"}
	whiteKnights := []string{"C6", "J6", "D7", "I7"}

	place := func(squares []string, kind piece.Kind, color piece.Color, mirror bool) {
		for _, s := range squares {
			sq, err := board.ParseSquare(s)
			if err != nil {
				panic(fmt.Sprintf("position: bad initial square %q: %v", s, err))
			}
			if mirror {
				sq = mirrorRank(sq)
			}
			pos.Set(sq, piece.Piece{Kind: kind, Color: color})
		}
	}

	place(whiteMen, piece.Man, piece.White, false)
	place(whiteKnights, piece.Knight, piece.White, false)
	place(whiteMen, piece.Man, piece.Black, true)
	place(whiteKnights, piece.Knight, piece.Black, true)

	return pos
}

// mirrorRank reflects a square across the board's rank axis (rank r <->
// rank 17-r), used to derive Black's initial setup from White's.
func mirrorRank(sq board.Square) board.Square {
	mirrored, ok := board.NewSquare(sq.File(), board.RankCount-1-sq.Rank())
	if !ok {
		panic("position: mirrorRank produced an off-board square")
	}
	return mirrored
}

// Layout renders pos as a compact, parseable text format: one
// "SQUARE:CODE" token per occupied square (CODE is "WM"/"WN"/"BM"/"BN" for
// White/Black Man/Knight), space-separated, square-ascending. Used by
// cmd/camelot-cli's "position layout" command and by tests that want a
// readable fixture format instead of a sequence of Set calls.
func (p *Position) Layout() string {
	var b strings.Builder
	first := true
	for _, sq := range board.AddressableSquares() {
		pc := p.At(sq)
		if pc.IsEmpty() {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%s:%s", sq.String(), pieceCode(pc))
	}
	return b.String()
}

// ParseLayout parses the text format Layout produces.
func ParseLayout(s string) (*Position, error) {
	pos := New()
	s = strings.TrimSpace(s)
	if s == "" {
		return pos, nil
	}
	for _, tok := range strings.Fields(s) {
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("position: malformed layout token %q", tok)
		}
		sq, err := board.ParseSquare(parts[0])
		if err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
		pc, err := parsePieceCode(parts[1])
		if err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
		pos.Set(sq, pc)
	}
	return pos, nil
}

func pieceCode(pc piece.Piece) string {
	code := "M"
	if pc.Kind == piece.Knight {
		code = "N"
	}
	if pc.Color == piece.Black {
		return "B" + code
	}
	return "W" + code
}

func parsePieceCode(s string) (piece.Piece, error) {
	if len(s) != 2 {
		return piece.Empty, fmt.Errorf("bad piece code %q", s)
	}
	var c piece.Color
	switch s[0] {
	case 'W':
		c = piece.White
	case 'B':
		c = piece.Black
	default:
		return piece.Empty, fmt.Errorf("bad piece color in code %q", s)
	}
	var k piece.Kind
	switch s[1] {
	case 'M':
		k = piece.Man
	case 'N':
		k = piece.Knight
	default:
		return piece.Empty, fmt.Errorf("bad piece kind in code %q", s)
	}
	return piece.Piece{Kind: k, Color: c}, nil
}

// String renders a human-readable grid, rank 16 at top.
func (p *Position) String() string {
	var b strings.Builder
	for rank := board.RankCount - 1; rank >= 0; rank-- {
		fmt.Fprintf(&b, "%2d ", rank+1)
		for file := 0; file < board.FileCount; file++ {
			sq, ok := board.NewSquare(file, rank)
			if !ok {
				b.WriteString("  ")
				continue
			}
			b.WriteString(p.At(sq).String())
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	b.WriteString("   A B C D E F G H I J K L\n")
	return b.String()
}

// Validate checks invariants a caller-supplied position must satisfy; the
// core trusts callers but this helper is offered for tests and defensive
// callers.
func (p *Position) Validate() error {
	for _, sq := range board.AddressableSquares() {
		pc := p.At(sq)
		_ = pc // every addressable square holds at most one piece by construction
	}
	for c := piece.White; c <= piece.Black; c++ {
		if p.CastleMoves[c] < 0 {
			return fmt.Errorf("position: negative castle-move counter for %s", c)
		}
	}
	return nil
}
