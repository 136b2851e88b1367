// Package eval implements the static position evaluator: material, castle
// occupation/proximity, center-file control, forward progress, mobility,
// terminal-state recognition, and a seedable jitter term. Scores are signed
// from White's perspective; callers negate for Black.
package eval

import (
	"github.com/hailam/camelot/internal/board"
	"github.com/hailam/camelot/internal/piece"
	"github.com/hailam/camelot/internal/position"
	"github.com/hailam/camelot/internal/rules"
	"github.com/hailam/camelot/internal/turngen"
	"golang.org/x/exp/rand"
)

// CheckmateScore is the sentinel magnitude for a forced win.
const CheckmateScore = 100000

const (
	castleOccupationBonus = 80.0
	centerMainFileBonus   = 3.0
	centerWingFileBonus   = 1.5
	forwardProgressWeight = 12.0
	mobilityBonusPerMove  = 3.0
	jitterAmplitude       = 10.0
)

// proximityStages maps a Manhattan distance-to-enemy-castle threshold to a
// bonus: ≤2 -> 40, ≤4 -> 26, ≤6 -> 13, ≤8 -> 6, else 0.
var proximityStages = []struct {
	maxDistance int
	bonus       float64
}{
	{2, 40}, {4, 26}, {6, 13}, {8, 6},
}

// centerFiles gives the per-file bonus for files A(0)..L(11); zero for
// files outside D..I.
var centerFiles = map[int]float64{
	3: centerWingFileBonus, // D
	4: centerMainFileBonus, // E
	5: centerMainFileBonus, // F
	6: centerMainFileBonus, // G
	7: centerMainFileBonus, // H
	8: centerWingFileBonus, // I
}

// Evaluate returns the signed scalar evaluation of pos from White's
// perspective. rng supplies the jitter term and must be the engine's own
// owned, seedable source, never the package-global math/rand.
func Evaluate(pos *position.Position, rng *rand.Rand) int {
	if result := CheckWinCondition(pos, piece.White); result != "" {
		return CheckmateScore
	}
	if result := CheckWinCondition(pos, piece.Black); result != "" {
		return -CheckmateScore
	}

	score := 0.0
	for _, sq := range board.AddressableSquares() {
		pc := pos.At(sq)
		if pc.IsEmpty() {
			continue
		}
		sign := 1.0
		if pc.Color == piece.Black {
			sign = -1.0
		}

		score += sign * float64(pc.Kind.Value())
		score += sign * castleTerm(pc, sq)
		score += sign * centerFiles[sq.File()]
		score += sign * forwardProgress(pc.Color, sq)
	}

	score += mobilityBonusPerMove * 0.5 * float64(countInitialMoves(pos, piece.White))
	score -= mobilityBonusPerMove * 0.5 * float64(countInitialMoves(pos, piece.Black))

	score += rng.Float64()*2*jitterAmplitude - jitterAmplitude

	return int(score)
}

func castleTerm(pc piece.Piece, sq board.Square) float64 {
	enemyCastle := position.EnemyCastleOf(pc.Color)
	if board.IsCastleSquare(sq, enemyCastle) {
		return castleOccupationBonus
	}
	best := 0
	for _, c := range enemyCastle {
		d := board.ManhattanDistance(sq, c)
		if best == 0 || d < best {
			best = d
		}
	}
	for _, stage := range proximityStages {
		if best <= stage.maxDistance {
			return stage.bonus
		}
	}
	return 0
}

func forwardProgress(c piece.Color, sq board.Square) float64 {
	rank := sq.Rank() + 1 // 1-indexed, matching spec's rank numbers
	if c == piece.White {
		return float64(rank-6) * forwardProgressWeight
	}
	return float64(11-rank) * forwardProgressWeight
}

// countInitialMoves counts legal single first-steps (plain moves, canters,
// jumps) available to side, a cheap mobility proxy that does not require
// enumerating full turns.
func countInitialMoves(pos *position.Position, side piece.Color) int {
	n := 0
	for _, sq := range board.AddressableSquares() {
		pc := pos.At(sq)
		if pc.IsEmpty() || pc.Color != side {
			continue
		}
		for _, d := range board.Directions {
			if to, ok := sq.Offset(d[0], d[1]); ok && rules.PlainMove(sq, to, pos, side) {
				n++
			}
			if to, ok := sq.Offset(d[0]*2, d[1]*2); ok {
				if rules.Canter(sq, to, pos, side) {
					n++
				}
				if rules.Jump(sq, to, pos, side) {
					n++
				}
			}
		}
	}
	return n
}

// CheckCastleOrCaptureWin reports the cheap, generation-free win checks:
// "castle_occupation" (two of color's pieces on the enemy castle) or
// "capture_all" (opponent has none left, color retains at least two).
// Stalemate detection needs full turn generation; see CheckWinCondition.
func CheckCastleOrCaptureWin(pos *position.Position, color piece.Color) string {
	enemyCastle := position.EnemyCastleOf(color)
	occupying := 0
	for _, sq := range enemyCastle {
		if pc := pos.At(sq); !pc.IsEmpty() && pc.Color == color {
			occupying++
		}
	}
	if occupying >= 2 {
		return "castle_occupation"
	}

	mine := pos.CountPieces(color)
	theirs := pos.CountPieces(color.Other())
	if theirs == 0 && mine >= 2 {
		return "capture_all"
	}
	return ""
}

// CheckWinCondition reports whether color has won: "castle_occupation",
// "capture_all", "stalemate" (the opponent has no legal turn and color
// retains at least two pieces), or "" if the game is not over for color.
func CheckWinCondition(pos *position.Position, color piece.Color) string {
	if result := CheckCastleOrCaptureWin(pos, color); result != "" {
		return result
	}
	if pos.CountPieces(color) < 2 {
		return ""
	}
	opponent := color.Other()
	if len(turngen.Generate(pos, opponent)) == 0 {
		return "stalemate"
	}
	return ""
}
