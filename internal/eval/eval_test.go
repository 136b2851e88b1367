package eval

import (
	"testing"

	"github.com/hailam/camelot/internal/board"
	"github.com/hailam/camelot/internal/piece"
	"github.com/hailam/camelot/internal/position"
	"golang.org/x/exp/rand"
)

func zeroRNG() *rand.Rand {
	// A seeded source still produces jitter; tests that need an
	// approximately symmetric evaluation tolerate the resulting noise
	// rather than depending on exact values.
	return rand.New(rand.NewSource(1))
}

func TestInitialPositionIsApproximatelyBalanced(t *testing.T) {
	pos := position.NewInitial()
	score := Evaluate(pos, zeroRNG())
	if score < -50 || score > 50 {
		t.Errorf("initial position should evaluate near zero modulo jitter, got %d", score)
	}
}

func TestMaterialAdvantageFavorsWhite(t *testing.T) {
	pos := position.New()
	pos.Set(mustSquare(t, "E8"), piece.Piece{Kind: piece.Man, Color: piece.White})
	pos.Set(mustSquare(t, "F8"), piece.Piece{Kind: piece.Man, Color: piece.White})
	pos.Set(mustSquare(t, "G8"), piece.Piece{Kind: piece.Man, Color: piece.Black})

	score := Evaluate(pos, zeroRNG())
	if score <= 0 {
		t.Errorf("white is up a man, expected a positive score, got %d", score)
	}
}

func TestCastleOccupationWinIsDetected(t *testing.T) {
	pos := position.New()
	pos.Set(board.WhiteCastle[0], piece.Piece{Kind: piece.Man, Color: piece.Black})
	pos.Set(board.WhiteCastle[1], piece.Piece{Kind: piece.Man, Color: piece.Black})
	// White keeps a piece elsewhere so the position is not also a
	// capture_all win for Black, though the castle check does not need it.
	pos.Set(mustSquare(t, "E8"), piece.Piece{Kind: piece.Man, Color: piece.White})

	if result := CheckCastleOrCaptureWin(pos, piece.Black); result != "castle_occupation" {
		t.Errorf("expected castle_occupation, got %q", result)
	}
}

func TestCaptureAllWinIsDetected(t *testing.T) {
	pos := position.New()
	pos.Set(mustSquare(t, "E8"), piece.Piece{Kind: piece.Man, Color: piece.White})
	pos.Set(mustSquare(t, "F8"), piece.Piece{Kind: piece.Man, Color: piece.White})

	if result := CheckCastleOrCaptureWin(pos, piece.White); result != "capture_all" {
		t.Errorf("expected capture_all, got %q", result)
	}
}

// mirrorPosition reflects pos across the rank axis and swaps every piece's
// color, the transform under which Evaluate should negate its result.
func mirrorPosition(t *testing.T, pos *position.Position) *position.Position {
	t.Helper()
	mirrored := position.New()
	for _, sq := range board.AddressableSquares() {
		pc := pos.At(sq)
		if pc.IsEmpty() {
			continue
		}
		mirroredSq, ok := board.NewSquare(sq.File(), board.RankCount-1-sq.Rank())
		if !ok {
			t.Fatalf("mirrorPosition: %s has no rank-mirrored square", sq)
		}
		swapped := piece.White
		if pc.Color == piece.White {
			swapped = piece.Black
		}
		mirrored.Set(mirroredSq, piece.Piece{Kind: pc.Kind, Color: swapped})
	}
	return mirrored
}

func TestEvaluateIsApproximatelySymmetricUnderColorSwapAndMirror(t *testing.T) {
	pos := position.NewInitial()
	// Advance one white man so the position is no longer symmetric on its
	// own; a genuinely asymmetric position exercises the mirror transform.
	pos.Clear(mustSquare(t, "E7"))
	pos.Set(mustSquare(t, "E8"), piece.Piece{Kind: piece.Man, Color: piece.White})

	mirrored := mirrorPosition(t, pos)

	original := Evaluate(pos, zeroRNG())
	flipped := Evaluate(mirrored, zeroRNG())

	// Both calls draw the same jitter value from identically seeded sources,
	// so the sum is twice that value: tolerate up to twice the jitter
	// amplitude on top of exact negation.
	tolerance := int(2 * jitterAmplitude)
	if sum := original + flipped; sum < -tolerance || sum > tolerance {
		t.Errorf("evaluate of a color-swapped, rank-mirrored position should negate the original within jitter, got %d and %d (sum %d)", original, flipped, sum)
	}
}

func mustSquare(t *testing.T, s string) board.Square {
	t.Helper()
	sq, err := board.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return sq
}
