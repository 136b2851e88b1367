package position

import (
	"github.com/hailam/camelot/internal/board"
	"github.com/hailam/camelot/internal/piece"
)

// Zobrist key tables, generated once at init from a fixed seed so hashes
// are reproducible across runs and processes.
var (
	zobristPiece  [2][2][board.FileCount * board.RankCount]uint64 // [Color][Kind][Square]
	zobristSide   uint64
	zobristCastle [2][3]uint64 // [Color][counter value 0..2]
)

func init() {
	initZobrist()
}

// prng is a small xorshift64* generator, used only to seed the Zobrist
// tables deterministically (not a source of gameplay randomness).
type prng struct{ state uint64 }

func newPRNG(seed uint64) *prng { return &prng{state: seed} }

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0xCA3E107B00D1CE)

	for c := piece.White; c <= piece.Black; c++ {
		for k := piece.Man; k <= piece.Knight; k++ {
			for sq := range zobristPiece[c][k] {
				zobristPiece[c][k][sq] = rng.next()
			}
		}
	}
	zobristSide = rng.next()
	for c := piece.White; c <= piece.Black; c++ {
		for i := range zobristCastle[c] {
			zobristCastle[c][i] = rng.next()
		}
	}
}

// Hash computes the Zobrist fingerprint of pos with side to move. It is the
// XOR of the keys of every present piece, XOR'd with the side key iff Black
// is to move, XOR'd with the castle-counter keys when non-zero.
func Hash(pos *Position, side piece.Color) uint64 {
	var h uint64
	for _, sq := range board.AddressableSquares() {
		pc := pos.At(sq)
		if pc.IsEmpty() {
			continue
		}
		h ^= zobristPiece[pc.Color][pc.Kind][sq]
	}
	if side == piece.Black {
		h ^= zobristSide
	}
	for c := piece.White; c <= piece.Black; c++ {
		n := pos.CastleMoves[c]
		if n <= 0 {
			continue
		}
		if n > 2 {
			n = 2
		}
		h ^= zobristCastle[c][n]
	}
	return h
}
