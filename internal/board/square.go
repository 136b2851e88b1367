// Package board implements Camelot's cross-shaped 160-square board geometry:
// square identifiers, addressability, offsets and directions. It has no
// notion of pieces or turns; those live in sibling packages.
package board

import (
	"fmt"
)

// Square identifies a cell on the 12-file by 16-rank grid. Not every Square
// value is addressable; see IsAddressable and AddressableSquares.
// Encoded as rank*FileCount+file so zero-value Square is A1.
type Square uint8

const (
	FileCount = 12
	RankCount = 16

	// NoSquare is the sentinel for "no square" (off-board / absent).
	NoSquare Square = FileCount * RankCount
)

// rankBounds[rank] gives the inclusive [minFile, maxFile] addressable range
// for that rank, encoding the board's cross shape:
//
//	rank 1  {F..G}; rank 2 {C..J}; rank 3 {B..K}; ranks 4-13 {A..L};
//	rank 14 {B..K}; rank 15 {C..J}; rank 16 {F..G}.
var rankBounds = [RankCount][2]int{
	{5, 6}, {2, 9}, {1, 10}, {0, 11}, {0, 11}, {0, 11}, {0, 11}, {0, 11},
	{0, 11}, {0, 11}, {0, 11}, {0, 11}, {0, 11}, {1, 10}, {2, 9}, {5, 6},
}

// IsAddressable reports whether (file, rank), both 0-indexed, is one of the
// 160 playable squares.
func IsAddressable(file, rank int) bool {
	if rank < 0 || rank >= RankCount || file < 0 || file >= FileCount {
		return false
	}
	b := rankBounds[rank]
	return file >= b[0] && file <= b[1]
}

// NewSquare builds a Square from 0-indexed file and rank, reporting false if
// the coordinate is not addressable.
func NewSquare(file, rank int) (Square, bool) {
	if !IsAddressable(file, rank) {
		return NoSquare, false
	}
	return Square(rank*FileCount + file), true
}

// File returns the 0-indexed file (0=A .. 11=L).
func (sq Square) File() int { return int(sq) % FileCount }

// Rank returns the 0-indexed rank (0=rank1 .. 15=rank16).
func (sq Square) Rank() int { return int(sq) / FileCount }

// IsValid reports whether sq is an addressable square.
func (sq Square) IsValid() bool {
	if sq >= NoSquare {
		return false
	}
	return IsAddressable(sq.File(), sq.Rank())
}

// String renders algebraic notation, e.g. "E6", "F16".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'A'+sq.File(), sq.Rank()+1)
}

// ParseSquare parses algebraic notation such as "E6" or "F16".
func ParseSquare(s string) (Square, error) {
	if len(s) < 2 {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	file := int(s[0]) - int('A')
	if file < 0 || file >= FileCount {
		file = int(s[0]) - int('a')
	}
	var rank int
	if _, err := fmt.Sscanf(s[1:], "%d", &rank); err != nil {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	sq, ok := NewSquare(file, rank-1)
	if !ok {
		return NoSquare, fmt.Errorf("invalid square: %q", s)
	}
	return sq, nil
}

// Offset returns the square reached by stepping (df, dr) files/ranks from
// sq, or false if that lands off the addressable board.
func (sq Square) Offset(df, dr int) (Square, bool) {
	return NewSquare(sq.File()+df, sq.Rank()+dr)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction returns the unit step (each component in {-1,0,1}) from "from"
// toward "to". ok is false only when the two squares coincide.
func Direction(from, to Square) (dfx, dry int, ok bool) {
	df := to.File() - from.File()
	dr := to.Rank() - from.Rank()
	if df == 0 && dr == 0 {
		return 0, 0, false
	}
	return sign(df), sign(dr), true
}

// ChebyshevDistance returns max(|file diff|, |rank diff|), the king-move
// distance between two squares.
func ChebyshevDistance(a, b Square) int {
	df := abs(a.File() - b.File())
	dr := abs(a.Rank() - b.Rank())
	if df > dr {
		return df
	}
	return dr
}

// IsOneStep reports whether to is a single king-like step from from.
func IsOneStep(from, to Square) bool {
	return from != to && ChebyshevDistance(from, to) == 1
}

// IsTwoStep reports whether to is exactly two squares from from along one
// of the eight unit directions (as opposed to, say, a knight-shaped leap).
func IsTwoStep(from, to Square) bool {
	df := abs(to.File() - from.File())
	dr := abs(to.Rank() - from.Rank())
	if df == 0 && dr == 0 {
		return false
	}
	return (df == 0 || df == 2) && (dr == 0 || dr == 2)
}

// Directions lists the eight unit vectors: four rook directions then four
// diagonals.
var Directions = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// addressableSquares is the fixed ordered list of all 160 playable squares,
// rank-major (rank 1 first) then file-minor (A first).
var addressableSquares []Square

func init() {
	for rank := 0; rank < RankCount; rank++ {
		b := rankBounds[rank]
		for file := b[0]; file <= b[1]; file++ {
			sq, _ := NewSquare(file, rank)
			addressableSquares = append(addressableSquares, sq)
		}
	}
	if len(addressableSquares) != 160 {
		panic(fmt.Sprintf("board: expected 160 addressable squares, got %d", len(addressableSquares)))
	}
}

// AddressableSquares returns the fixed ordered list of all 160 playable
// squares. Callers must not mutate the returned slice.
func AddressableSquares() []Square {
	return addressableSquares
}

// Castle squares, one pair per color.
var (
	WhiteCastle = [2]Square{mustSquare(5, 0), mustSquare(6, 0)}   // F1, G1
	BlackCastle = [2]Square{mustSquare(5, 15), mustSquare(6, 15)} // F16, G16
)

func mustSquare(file, rank int) Square {
	sq, ok := NewSquare(file, rank)
	if !ok {
		panic("board: invalid castle square constant")
	}
	return sq
}

// IsCastleSquare reports whether sq is one of the two squares of castle.
func IsCastleSquare(sq Square, castle [2]Square) bool {
	return sq == castle[0] || sq == castle[1]
}

// ManhattanDistance returns |file diff| + |rank diff| between two squares.
func ManhattanDistance(a, b Square) int {
	return abs(a.File()-b.File()) + abs(a.Rank()-b.Rank())
}
