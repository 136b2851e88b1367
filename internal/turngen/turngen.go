// Package turngen enumerates every legal complete turn from a position,
// this engine's most intricate component. A turn is a plain move, a chain
// of canters, a chain of jumps, or a knight's charge (canters then jumps),
// subject to mandatory capture, no-revisit, and castle-entry rules.
package turngen

import (
	"sort"
	"strings"

	"github.com/hailam/camelot/internal/board"
	"github.com/hailam/camelot/internal/piece"
	"github.com/hailam/camelot/internal/position"
	"github.com/hailam/camelot/internal/rules"
)

// maxTurnLength is the hard recursion-depth cap (path length, origin
// included, at least 15); reaching it emits the turn as-is rather than
// recursing further.
const maxTurnLength = 16

// CompleteTurn is one fully-formed turn: the path of squares visited, the
// squares cleared by capture, and the resulting position.
type CompleteTurn struct {
	Origin   board.Square
	Terminal board.Square
	Path     []board.Square
	Captured []board.Square
	Result   *position.Position
}

// Notation joins the visited path with "-" if no captures occurred, "x"
// otherwise.
func (t CompleteTurn) Notation() string {
	sep := "-"
	if len(t.Captured) > 0 {
		sep = "x"
	}
	parts := make([]string, len(t.Path))
	for i, sq := range t.Path {
		parts[i] = sq.String()
	}
	return strings.Join(parts, sep)
}

// Generate enumerates every legal complete turn for side from pos.
func Generate(pos *position.Position, side piece.Color) []CompleteTurn {
	g := &generator{pos: pos, side: side, seen: make(map[string]bool)}
	jumpMandatory := rules.AnyJumpAvailable(pos, side)

	for _, sq := range board.AddressableSquares() {
		pc := pos.At(sq)
		if pc.IsEmpty() || pc.Color != side {
			continue
		}
		if jumpMandatory {
			g.startJumps(sq)
			continue
		}
		g.startPlainMoves(sq)
		g.startCanters(sq, pc.Kind)
	}
	return g.turns
}

// GenerateCaptures returns only the turns among Generate's output whose
// captured set is non-empty, the quiescence search's move set.
func GenerateCaptures(pos *position.Position, side piece.Color) []CompleteTurn {
	all := Generate(pos, side)
	out := all[:0:0]
	for _, t := range all {
		if len(t.Captured) > 0 {
			out = append(out, t)
		}
	}
	return out
}

// OrderTurns stably sorts turns in place for search move ordering: larger
// capture count first, then turns ending in the opponent's castle, then
// greater forward progress.
func OrderTurns(turns []CompleteTurn, side piece.Color) {
	enemyCastle := position.EnemyCastleOf(side)
	sort.SliceStable(turns, func(i, j int) bool {
		a, b := turns[i], turns[j]
		if len(a.Captured) != len(b.Captured) {
			return len(a.Captured) > len(b.Captured)
		}
		aCastle := board.IsCastleSquare(a.Terminal, enemyCastle)
		bCastle := board.IsCastleSquare(b.Terminal, enemyCastle)
		if aCastle != bCastle {
			return aCastle
		}
		return forwardProgress(a.Terminal, side) > forwardProgress(b.Terminal, side)
	})
}

func forwardProgress(sq board.Square, side piece.Color) int {
	if side == piece.White {
		return sq.Rank()
	}
	return -sq.Rank()
}

type generator struct {
	pos   *position.Position
	side  piece.Color
	seen  map[string]bool
	turns []CompleteTurn
}

func (g *generator) emit(path, captured []board.Square, result *position.Position) {
	t := CompleteTurn{
		Origin:   path[0],
		Terminal: path[len(path)-1],
		Path:     append([]board.Square(nil), path...),
		Captured: append([]board.Square(nil), captured...),
		Result:   result,
	}
	notation := t.Notation()
	if g.seen[notation] {
		return
	}
	g.seen[notation] = true
	g.turns = append(g.turns, t)
}

func (g *generator) startPlainMoves(sq board.Square) {
	for _, d := range board.Directions {
		to, ok := sq.Offset(d[0], d[1])
		if !ok {
			continue
		}
		if !rules.PlainMove(sq, to, g.pos, g.side) {
			continue
		}
		next := applyPlain(g.pos, sq, to)
		g.emit([]board.Square{sq, to}, nil, next)
	}
}

func (g *generator) startCanters(sq board.Square, kind piece.Kind) {
	ownCastle := position.CastleOf(g.side)
	visited := map[board.Square]bool{sq: true}
	for _, d := range board.Directions {
		to, ok := sq.Offset(d[0]*2, d[1]*2)
		if !ok || !rules.Canter(sq, to, g.pos, g.side) {
			continue
		}
		if board.IsCastleSquare(to, ownCastle) {
			continue // canters may not land on the own castle
		}
		next := applyPlain(g.pos, sq, to)
		g.canterChain(kind, next, []board.Square{sq, to}, withVisited(visited, to))
	}
}

func (g *generator) canterChain(kind piece.Kind, pos *position.Position, path []board.Square, visited map[board.Square]bool) {
	g.emit(path, nil, pos) // "stop here" after this canter
	if len(path) >= maxTurnLength {
		return
	}
	current := path[len(path)-1]
	ownCastle := position.CastleOf(g.side)

	for _, d := range board.Directions {
		to, ok := current.Offset(d[0]*2, d[1]*2)
		if !ok || visited[to] || !rules.Canter(current, to, pos, g.side) {
			continue
		}
		if board.IsCastleSquare(to, ownCastle) {
			continue
		}
		next := applyPlain(pos, current, to)
		g.canterChain(kind, next, appendSquare(path, to), withVisited(visited, to))
	}

	if !kind.CanCharge() {
		return
	}
	for _, d := range board.Directions {
		to, ok := current.Offset(d[0]*2, d[1]*2)
		if !ok || visited[to] || !rules.Jump(current, to, pos, g.side) {
			continue
		}
		mid := rules.MiddleSquare(current, to)
		next := applyJump(pos, current, to, mid)
		g.jumpChain(next, appendSquare(path, to), []board.Square{mid}, withVisited(visited, to))
	}
}

func (g *generator) startJumps(sq board.Square) {
	visited := map[board.Square]bool{sq: true}
	for _, d := range board.Directions {
		to, ok := sq.Offset(d[0]*2, d[1]*2)
		if !ok || !rules.Jump(sq, to, g.pos, g.side) {
			continue
		}
		mid := rules.MiddleSquare(sq, to)
		next := applyJump(g.pos, sq, to, mid)
		g.jumpChain(next, []board.Square{sq, to}, []board.Square{mid}, withVisited(visited, to))
	}
}

func (g *generator) jumpChain(pos *position.Position, path, captured []board.Square, visited map[board.Square]bool) {
	current := path[len(path)-1]
	enemyCastle := position.EnemyCastleOf(g.side)

	if board.IsCastleSquare(current, enemyCastle) {
		g.emit(path, captured, pos) // ends immediately, even if further jumps exist
		return
	}
	if len(path) >= maxTurnLength {
		g.emit(path, captured, pos)
		return
	}

	any := false
	for _, d := range board.Directions {
		to, ok := current.Offset(d[0]*2, d[1]*2)
		if !ok || visited[to] || !rules.Jump(current, to, pos, g.side) {
			continue
		}
		any = true
		mid := rules.MiddleSquare(current, to)
		next := applyJump(pos, current, to, mid)
		g.jumpChain(next, appendSquare(path, to), appendSquare(captured, mid), withVisited(visited, to))
	}
	if !any {
		g.emit(path, captured, pos)
	}
}

func applyPlain(pos *position.Position, from, to board.Square) *position.Position {
	next := pos.Copy()
	pc := next.At(from)
	next.Clear(from)
	next.Set(to, pc)
	return next
}

func applyJump(pos *position.Position, from, to, mid board.Square) *position.Position {
	next := pos.Copy()
	pc := next.At(from)
	next.Clear(from)
	next.Clear(mid)
	next.Set(to, pc)
	return next
}

func withVisited(v map[board.Square]bool, sq board.Square) map[board.Square]bool {
	out := make(map[board.Square]bool, len(v)+1)
	for k := range v {
		out[k] = true
	}
	out[sq] = true
	return out
}

func appendSquare(path []board.Square, sq board.Square) []board.Square {
	out := make([]board.Square, len(path)+1)
	copy(out, path)
	out[len(path)] = sq
	return out
}
