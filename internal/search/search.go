// Package search implements alpha-beta negamax: iterative deepening driven
// from the engine façade, a negamax node recipe for the main search, a
// separate capture-only quiescence search with a stand-pat bound, TT-backed
// cutoffs, and cooperative deadline abort.
// Single-threaded and fully synchronous: one Searcher call monopolizes the
// caller's goroutine until it returns.
package search

import (
	"sort"
	"time"

	"github.com/hailam/camelot/internal/eval"
	"github.com/hailam/camelot/internal/piece"
	"github.com/hailam/camelot/internal/position"
	"github.com/hailam/camelot/internal/tt"
	"github.com/hailam/camelot/internal/turngen"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Search constants.
const (
	Infinity  = eval.CheckmateScore + 1000
	MateScore = eval.CheckmateScore

	// MateThreshold is the magnitude above which a score is treated as a
	// forced mate rather than a large positional evaluation.
	MateThreshold = MateScore / 2
)

// Searcher owns one alpha-beta search over one transposition table and one
// random source, shared between the evaluator's jitter and this package's
// root randomization.
type Searcher struct {
	tt       *tt.Table
	rng      *rand.Rand
	logger   zerolog.Logger
	deadline time.Time
	aborted  bool
	nodes    uint64
}

// NewSearcher builds a Searcher over table, using rng for evaluator jitter
// and root randomization.
func NewSearcher(table *tt.Table, rng *rand.Rand, logger zerolog.Logger) *Searcher {
	return &Searcher{tt: table, rng: rng, logger: logger}
}

// Nodes returns the number of nodes visited by the most recent search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// Aborted reports whether the most recent search hit its deadline.
func (s *Searcher) Aborted() bool { return s.aborted }

func (s *Searcher) shouldAbort() bool {
	if s.aborted {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.aborted = true
	}
	return s.aborted
}

// RootResult is the outcome of one depth of root search: the chosen turn
// (nil if none exists), its score, and whether the search was cut short by
// the deadline before fully exploring this depth.
type RootResult struct {
	Best    *turngen.CompleteTurn
	Score   int
	Partial bool
}

// SearchRoot performs one depth of negamax from pos for side, retaining the
// actual chosen turn object (not just its score), and applies root
// stochasticity: with 20% probability, and only when multiple turns were
// explored, the engine's own random source substitutes a uniform pick among
// the top three scoring turns.
func (s *Searcher) SearchRoot(pos *position.Position, side piece.Color, depth int, deadline time.Time) RootResult {
	s.deadline = deadline
	s.aborted = false
	s.nodes = 0

	turns := turngen.Generate(pos, side)
	if len(turns) == 0 {
		return RootResult{Best: nil, Score: -MateScore}
	}
	turngen.OrderTurns(turns, side)

	type scored struct {
		turn  *turngen.CompleteTurn
		score int
	}
	results := make([]scored, 0, len(turns))

	alpha, beta := -Infinity, Infinity
	for i := range turns {
		t := &turns[i]
		if s.shouldAbort() {
			break
		}
		s.nodes++
		score := -s.negamax(t.Result, side.Other(), depth-1, -beta, -alpha, 1)
		results = append(results, scored{t, score})
		if score > alpha {
			alpha = score
		}
	}

	if len(results) == 0 {
		return RootResult{Best: nil, Score: 0, Partial: true}
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	best := results[0]

	if len(results) > 1 && s.rng.Float64() < 0.2 {
		top := 3
		if top > len(results) {
			top = len(results)
		}
		pick := s.rng.Intn(top)
		best = results[pick]
		s.logger.Debug().Str("chosen", best.turn.Notation()).Msg("root stochastic pick among top turns")
	}

	if s.aborted {
		return RootResult{Partial: true}
	}

	hash := position.Hash(pos, side)
	s.tt.Store(hash, depth, best.score, tt.Exact, best.turn.Notation())

	return RootResult{Best: best.turn, Score: best.score}
}

// negamax is the shared node recipe: TT probe, terminal check, depth-0
// handoff to quiescence, move generation, ordering, and the negated
// recursive search with alpha-beta cutoff.
func (s *Searcher) negamax(pos *position.Position, side piece.Color, depth, alpha, beta, ply int) int {
	if s.shouldAbort() {
		return 0
	}
	s.nodes++

	hash := position.Hash(pos, side)
	if entry, ok := s.tt.Probe(hash); ok && entry.Depth >= depth {
		switch entry.Flag {
		case tt.Exact:
			return entry.Score
		case tt.LowerBound:
			if entry.Score > alpha {
				alpha = entry.Score
			}
		case tt.UpperBound:
			if entry.Score < beta {
				beta = entry.Score
			}
		}
		if alpha >= beta {
			return entry.Score
		}
	}

	if eval.CheckCastleOrCaptureWin(pos, side) != "" {
		return MateScore - depth
	}
	if eval.CheckCastleOrCaptureWin(pos, side.Other()) != "" {
		return -MateScore + depth
	}

	if depth == 0 {
		return s.quiescence(pos, side, alpha, beta, ply)
	}

	turns := turngen.Generate(pos, side)
	if len(turns) == 0 {
		return -MateScore + depth
	}
	turngen.OrderTurns(turns, side)

	best := -Infinity
	var bestNotation string
	flag := tt.UpperBound
	origAlpha := alpha

	for i := range turns {
		if s.shouldAbort() {
			break
		}
		t := &turns[i]
		score := -s.negamax(t.Result, side.Other(), depth-1, -beta, -alpha, ply+1)
		if score > best {
			best = score
			bestNotation = t.Notation()
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			flag = tt.LowerBound
			break
		}
	}
	if flag != tt.LowerBound {
		if best > origAlpha {
			flag = tt.Exact
		} else {
			flag = tt.UpperBound
		}
	}
	if !s.aborted {
		s.tt.Store(hash, depth, best, flag, bestNotation)
	}
	return best
}

// quiescence extends the search over captures only, using a stand-pat bound
// from the static evaluation to avoid the horizon effect this game's
// chained jumps would otherwise cause.
func (s *Searcher) quiescence(pos *position.Position, side piece.Color, alpha, beta, ply int) int {
	if s.shouldAbort() {
		return 0
	}
	s.nodes++

	standPat := eval.Evaluate(pos, s.rng)
	if side == piece.Black {
		standPat = -standPat
	}
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	captures := turngen.GenerateCaptures(pos, side)
	turngen.OrderTurns(captures, side)

	for i := range captures {
		if s.shouldAbort() {
			break
		}
		t := &captures[i]
		score := -s.quiescence(t.Result, side.Other(), -beta, -alpha, ply+1)
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return alpha
}
