// Package rules implements the pure move-legality primitives: PlainMove,
// Canter, and Jump, plus the AnyJumpAvailable scan used to enforce mandatory
// capture. These are pure predicates over (from, to, position, side); they
// never mutate a Position and never know about turns or chains.
// internal/turngen composes them into full turns.
package rules

import (
	"github.com/hailam/camelot/internal/board"
	"github.com/hailam/camelot/internal/piece"
	"github.com/hailam/camelot/internal/position"
)

// PlainMove reports whether moving the side's piece from "from" to the
// adjacent empty square "to" is legal: Chebyshev distance 1, destination
// empty. No captures, no middle square.
func PlainMove(from, to board.Square, pos *position.Position, side piece.Color) bool {
	if !board.IsOneStep(from, to) {
		return false
	}
	mover := pos.At(from)
	if mover.IsEmpty() || mover.Color != side {
		return false
	}
	return pos.At(to).IsEmpty()
}

// Canter reports whether "from" to "to" is a legal canter: Chebyshev
// distance 2 along a single unit direction, the middle square holds a
// friendly piece (left in place), and the destination is empty.
func Canter(from, to board.Square, pos *position.Position, side piece.Color) bool {
	if !board.IsTwoStep(from, to) {
		return false
	}
	mover := pos.At(from)
	if mover.IsEmpty() || mover.Color != side {
		return false
	}
	middle := middleSquare(from, to)
	midPiece := pos.At(middle)
	if midPiece.IsEmpty() || midPiece.Color != side {
		return false
	}
	return pos.At(to).IsEmpty()
}

// Jump reports whether "from" to "to" is a legal jump: same geometry as
// Canter, but the middle square holds an enemy piece. The caller is
// responsible for removing the captured piece.
func Jump(from, to board.Square, pos *position.Position, side piece.Color) bool {
	if !board.IsTwoStep(from, to) {
		return false
	}
	mover := pos.At(from)
	if mover.IsEmpty() || mover.Color != side {
		return false
	}
	middle := middleSquare(from, to)
	midPiece := pos.At(middle)
	if midPiece.IsEmpty() || midPiece.Color == side {
		return false
	}
	return pos.At(to).IsEmpty()
}

// MiddleSquare returns the square jumped/cantered over between from and to.
// Callers must already know from/to form a valid two-step (Canter or Jump
// having returned true); behavior on other inputs is undefined.
func MiddleSquare(from, to board.Square) board.Square {
	return middleSquare(from, to)
}

func middleSquare(from, to board.Square) board.Square {
	dx, dy, _ := board.Direction(from, to)
	mid, _ := from.Offset(dx, dy)
	return mid
}

// AnyJumpAvailable scans every friendly piece and every direction, and
// returns true iff at least one single-step jump is legal for side. This
// drives the mandatory-capture rule.
func AnyJumpAvailable(pos *position.Position, side piece.Color) bool {
	for _, sq := range board.AddressableSquares() {
		pc := pos.At(sq)
		if pc.IsEmpty() || pc.Color != side {
			continue
		}
		for _, d := range board.Directions {
			to, ok := sq.Offset(d[0]*2, d[1]*2)
			if !ok {
				continue
			}
			if Jump(sq, to, pos, side) {
				return true
			}
		}
	}
	return false
}
