// Package engine is the façade exposed to external callers: a
// difficulty-driven, iterative-deepening analysis over one owned
// transposition table and one owned random source. Each depth searches the
// full window rather than an aspiration window narrowed around the previous
// depth's score, since Camelot's small evaluation range doesn't reward the
// extra bookkeeping.
package engine

import (
	"time"

	"github.com/hailam/camelot/internal/eval"
	"github.com/hailam/camelot/internal/piece"
	"github.com/hailam/camelot/internal/position"
	"github.com/hailam/camelot/internal/search"
	"github.com/hailam/camelot/internal/tt"
	"github.com/hailam/camelot/internal/turngen"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Difficulty selects a preset (depth, time, table size).
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// Config bundles one difficulty preset's parameters.
type Config struct {
	MaxDepth  int
	TimeLimit time.Duration
	TTSizeMB  int
}

// Presets maps each Difficulty to its configuration.
var Presets = map[Difficulty]Config{
	Easy:   {MaxDepth: 3, TimeLimit: 500 * time.Millisecond, TTSizeMB: 32},
	Medium: {MaxDepth: 5, TimeLimit: 2 * time.Second, TTSizeMB: 64},
	Hard:   {MaxDepth: 8, TimeLimit: 5 * time.Second, TTSizeMB: 128},
	Expert: {MaxDepth: 12, TimeLimit: 10 * time.Second, TTSizeMB: 256},
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return "unknown"
	}
}

// AnalysisResult is the per-analysis report returned to a caller.
type AnalysisResult struct {
	BestMove           string
	EvaluationCP       int
	DepthReached       int
	PrincipalVariation []string
	NodesSearched      uint64
	NodesPerSecond     float64
	TimeMs             int64
	IsMate             bool
	MateInMoves        int
}

// Engine is one owned search instance: a transposition table, a searcher, a
// seeded random source (shared by the evaluator's jitter and the searcher's
// root randomization), and the active difficulty preset.
type Engine struct {
	table      *tt.Table
	searcher   *search.Searcher
	rng        *rand.Rand
	difficulty Difficulty
	config     Config
	logger     zerolog.Logger
}

// NewEngine builds an Engine at Medium difficulty, seeded by seed. The
// engine owns its randomness rather than touching math/rand's global source,
// so a given seed reproduces a given game deterministically.
func NewEngine(seed uint64, logger zerolog.Logger) *Engine {
	e := &Engine{
		rng:        rand.New(rand.NewSource(seed)),
		difficulty: Medium,
		config:     Presets[Medium],
		logger:     logger,
	}
	e.table = tt.New(e.config.TTSizeMB)
	e.searcher = search.NewSearcher(e.table, e.rng, logger)
	return e
}

// MaxDepth returns the active configuration's maximum search depth, the
// depth a completed Analyze call settles at absent an early deadline cutoff
// or a mate score.
func (e *Engine) MaxDepth() int {
	return e.config.MaxDepth
}

// SetDifficulty switches the active preset and resizes the transposition
// table accordingly.
func (e *Engine) SetDifficulty(d Difficulty) {
	cfg, ok := Presets[d]
	if !ok {
		return
	}
	e.difficulty = d
	e.config = cfg
	e.table = tt.New(cfg.TTSizeMB)
	e.searcher = search.NewSearcher(e.table, e.rng, e.logger)
	e.logger.Info().Str("difficulty", d.String()).Int("depth", cfg.MaxDepth).
		Dur("time_limit", cfg.TimeLimit).Msg("difficulty changed")
}

// OverrideLimits replaces individual fields of the active configuration,
// leaving any zero-valued argument at its current setting. A non-zero
// ttSizeMB reallocates the transposition table. Lets a caller (e.g. the CLI)
// tune a difficulty preset without defining a new one.
func (e *Engine) OverrideLimits(maxDepth int, timeLimit time.Duration, ttSizeMB int) {
	if maxDepth > 0 {
		e.config.MaxDepth = maxDepth
	}
	if timeLimit > 0 {
		e.config.TimeLimit = timeLimit
	}
	if ttSizeMB > 0 {
		e.config.TTSizeMB = ttSizeMB
		e.table = tt.New(ttSizeMB)
		e.searcher = search.NewSearcher(e.table, e.rng, e.logger)
	}
}

// Analyze runs iterative deepening from depth 1 up to the active preset's
// MaxDepth, bounded by the active preset's TimeLimit, and returns the
// analysis report for side to move in pos. A depth that is cut short by the
// deadline is discarded entirely; Analyze always reports the most recently
// completed depth's result, never a partial one.
func (e *Engine) Analyze(pos *position.Position, side piece.Color) AnalysisResult {
	start := time.Now()
	deadline := start.Add(e.config.TimeLimit)

	var best *turngen.CompleteTurn
	var bestScore int
	var depthReached int

	for depth := 1; depth <= e.config.MaxDepth; depth++ {
		if time.Now().After(deadline) {
			break
		}
		result := e.searcher.SearchRoot(pos, side, depth, deadline)
		if !result.Partial {
			best = result.Best
			bestScore = result.Score
			depthReached = depth
		}
		e.logger.Debug().Int("depth", depth).Int("score", bestScore).
			Bool("partial", result.Partial).Uint64("nodes", e.searcher.Nodes()).
			Msg("iterative deepening step")

		if bestScore > search.MateThreshold || bestScore < -search.MateThreshold {
			break
		}
		if e.searcher.Aborted() {
			break
		}
	}

	elapsed := time.Since(start)
	nodes := e.searcher.Nodes()
	nps := 0.0
	if elapsed.Seconds() > 0 {
		nps = float64(nodes) / elapsed.Seconds()
	}

	result := AnalysisResult{
		EvaluationCP:   bestScore,
		DepthReached:   depthReached,
		NodesSearched:  nodes,
		NodesPerSecond: nps,
		TimeMs:         elapsed.Milliseconds(),
	}
	if best != nil {
		result.BestMove = best.Notation()
		result.PrincipalVariation = []string{best.Notation()}
	}
	if bestScore > search.MateThreshold {
		result.IsMate = true
		result.MateInMoves = (search.MateScore - bestScore + 1) / 2
	} else if bestScore < -search.MateThreshold {
		result.IsMate = true
		result.MateInMoves = -((search.MateScore + bestScore + 1) / 2)
	}
	return result
}

// Evaluate returns the static evaluation of pos from White's perspective,
// using the engine's own random source for the jitter term.
func (e *Engine) Evaluate(pos *position.Position) int {
	return eval.Evaluate(pos, e.rng)
}

// Clear empties the transposition table, as required at the start of a new
// game.
func (e *Engine) Clear() {
	e.table.Clear()
}

// ScoreToString renders score as pawn units with a leading sign, or "Mn" for
// a forced mate in n turns.
func ScoreToString(score int) string {
	if score > search.MateThreshold {
		n := (search.MateScore - score + 1) / 2
		return "M" + itoa(n)
	}
	if score < -search.MateThreshold {
		n := (search.MateScore + score + 1) / 2
		return "-M" + itoa(n)
	}
	sign := "+"
	if score < 0 {
		sign = "-"
		score = -score
	}
	return sign + itoa(score/100) + "." + pad2(score%100)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	s := ""
	for n > 0 {
		s = string('0'+byte(n%10)) + s
		n /= 10
	}
	return s
}

func pad2(n int) string {
	s := itoa(n)
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
