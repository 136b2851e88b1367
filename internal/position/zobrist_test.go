package position

import (
	"testing"

	"github.com/hailam/camelot/internal/board"
	"github.com/hailam/camelot/internal/piece"
)

func TestHashDeterministic(t *testing.T) {
	pos := NewInitial()
	a := Hash(pos, piece.White)
	b := Hash(pos, piece.White)
	if a != b {
		t.Fatalf("Hash must be deterministic: got %x then %x", a, b)
	}
}

func TestHashDiffersBySideToMove(t *testing.T) {
	pos := NewInitial()
	white := Hash(pos, piece.White)
	black := Hash(pos, piece.Black)
	if white == black {
		t.Error("hash should depend on side to move")
	}
}

func TestHashDiffersAfterMove(t *testing.T) {
	pos := NewInitial()
	before := Hash(pos, piece.White)

	from, _ := board.ParseSquare("E6")
	to, _ := board.ParseSquare("E7")
	// E7 is occupied in the initial position; clear it first to isolate the
	// piece-movement effect on the hash.
	pos.Clear(to)
	pc := pos.At(from)
	pos.Clear(from)
	pos.Set(to, pc)

	after := Hash(pos, piece.White)
	if before == after {
		t.Error("hash should change after a piece moves")
	}
}

func TestHashDistinctAcrossManyRandomPositions(t *testing.T) {
	seen := make(map[uint64]bool)
	pos := NewInitial()
	seen[Hash(pos, piece.White)] = true

	squares := board.AddressableSquares()
	for i := 0; i < 200 && i+1 < len(squares); i++ {
		from, to := squares[i], squares[i+1]
		pc := pos.At(from)
		if pc.IsEmpty() {
			continue
		}
		pos.Clear(from)
		pos.Set(to, pc)
		h := Hash(pos, piece.White)
		if seen[h] {
			t.Fatalf("hash collision detected at step %d", i)
		}
		seen[h] = true
	}
}
