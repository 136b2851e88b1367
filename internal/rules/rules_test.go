package rules

import (
	"testing"

	"github.com/hailam/camelot/internal/board"
	"github.com/hailam/camelot/internal/piece"
	"github.com/hailam/camelot/internal/position"
)

func sq(t *testing.T, s string) board.Square {
	t.Helper()
	square, err := board.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return square
}

func TestPlainMoveToEmptySquare(t *testing.T) {
	pos := position.New()
	from := sq(t, "E6")
	to := sq(t, "E7")
	pos.Set(from, piece.Piece{Kind: piece.Man, Color: piece.White})

	if !PlainMove(from, to, pos, piece.White) {
		t.Error("plain move onto an empty adjacent square should be legal")
	}
}

func TestPlainMoveBlockedByOccupant(t *testing.T) {
	pos := position.New()
	from := sq(t, "E6")
	to := sq(t, "E7")
	pos.Set(from, piece.Piece{Kind: piece.Man, Color: piece.White})
	pos.Set(to, piece.Piece{Kind: piece.Man, Color: piece.Black})

	if PlainMove(from, to, pos, piece.White) {
		t.Error("plain move onto an occupied square should be illegal")
	}
}

func TestCanterOverFriendlyOntoEmpty(t *testing.T) {
	pos := position.New()
	from := sq(t, "E6")
	mid := sq(t, "E7")
	to := sq(t, "E8")
	pos.Set(from, piece.Piece{Kind: piece.Man, Color: piece.White})
	pos.Set(mid, piece.Piece{Kind: piece.Man, Color: piece.White})

	if !Canter(from, to, pos, piece.White) {
		t.Error("canter over a friendly piece onto an empty square should be legal")
	}
}

func TestCanterOverEnemyIsIllegal(t *testing.T) {
	pos := position.New()
	from := sq(t, "E6")
	mid := sq(t, "E7")
	to := sq(t, "E8")
	pos.Set(from, piece.Piece{Kind: piece.Man, Color: piece.White})
	pos.Set(mid, piece.Piece{Kind: piece.Man, Color: piece.Black})

	if Canter(from, to, pos, piece.White) {
		t.Error("canter requires a friendly middle piece, not an enemy one")
	}
}

func TestJumpOverEnemyOntoEmpty(t *testing.T) {
	pos := position.New()
	from := sq(t, "E6")
	mid := sq(t, "E7")
	to := sq(t, "E8")
	pos.Set(from, piece.Piece{Kind: piece.Man, Color: piece.White})
	pos.Set(mid, piece.Piece{Kind: piece.Man, Color: piece.Black})

	if !Jump(from, to, pos, piece.White) {
		t.Error("jump over an enemy piece onto an empty square should be legal")
	}
}

func TestJumpOverFriendlyIsIllegal(t *testing.T) {
	pos := position.New()
	from := sq(t, "E6")
	mid := sq(t, "E7")
	to := sq(t, "E8")
	pos.Set(from, piece.Piece{Kind: piece.Man, Color: piece.White})
	pos.Set(mid, piece.Piece{Kind: piece.Man, Color: piece.White})

	if Jump(from, to, pos, piece.White) {
		t.Error("jump requires an enemy middle piece, not a friendly one")
	}
}

func TestAnyJumpAvailable(t *testing.T) {
	pos := position.New()
	from := sq(t, "E6")
	mid := sq(t, "E7")
	pos.Set(from, piece.Piece{Kind: piece.Man, Color: piece.White})
	pos.Set(mid, piece.Piece{Kind: piece.Man, Color: piece.Black})
	// E5 is occupied, so Black's jump back over E6 has nowhere to land.
	pos.Set(sq(t, "E5"), piece.Piece{Kind: piece.Man, Color: piece.White})

	if !AnyJumpAvailable(pos, piece.White) {
		t.Error("a capturable enemy piece should make a jump available")
	}
	if AnyJumpAvailable(pos, piece.Black) {
		t.Error("black has no piece positioned to jump in this setup")
	}
}

func TestMiddleSquare(t *testing.T) {
	from := sq(t, "E6")
	to := sq(t, "E8")
	want := sq(t, "E7")
	if got := MiddleSquare(from, to); got != want {
		t.Errorf("MiddleSquare(E6, E8) = %s, want %s", got, want)
	}
}
