// Command camelot-cli is the external interface: a line-oriented REPL for
// driving one Engine from stdin, using a small command set in place of the
// full UCI protocol.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/hailam/camelot/internal/cache"
	"github.com/hailam/camelot/internal/engine"
	"github.com/hailam/camelot/internal/piece"
	"github.com/hailam/camelot/internal/position"
	"github.com/rs/zerolog"
)

var (
	depth      = flag.Int("depth", 0, "override max search depth (0 = use difficulty preset)")
	timeMs     = flag.Int("time-ms", 0, "override time budget in milliseconds (0 = use difficulty preset)")
	ttMB       = flag.Int("tt-mb", 0, "override transposition table size in MB (0 = use difficulty preset)")
	difficulty = flag.String("difficulty", "medium", "easy, medium, hard, or expert")
	useCache   = flag.Bool("cache", false, "persist analysis results across runs in a local BadgerDB cache")
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to this file")
	jsonLog    = flag.Bool("json", false, "emit logs as JSON instead of console-formatted")
	seed       = flag.Uint64("seed", 0x5EED, "seed for the engine's owned random source")
)

func main() {
	flag.Parse()

	var logger zerolog.Logger
	if *jsonLog {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		logger.Info().Str("path", *cpuprofile).Msg("CPU profiling enabled")
	}

	eng := engine.NewEngine(*seed, logger)
	if d, ok := parseDifficulty(*difficulty); ok {
		eng.SetDifficulty(d)
	} else {
		logger.Warn().Str("difficulty", *difficulty).Msg("unrecognized difficulty, using medium")
	}
	eng.OverrideLimits(*depth, time.Duration(*timeMs)*time.Millisecond, *ttMB)

	var analysisCache *cache.Cache
	if *useCache {
		c, err := cache.NewCache(logger)
		if err != nil {
			logger.Warn().Err(err).Msg("analysis cache unavailable, continuing without it")
		} else {
			analysisCache = c
			defer analysisCache.Close()
		}
	}

	repl := &repl{
		engine: eng,
		pos:    position.NewInitial(),
		side:   piece.White,
		cache:  analysisCache,
		logger: logger,
	}
	repl.run()
}

func parseDifficulty(s string) (engine.Difficulty, bool) {
	switch strings.ToLower(s) {
	case "easy":
		return engine.Easy, true
	case "medium":
		return engine.Medium, true
	case "hard":
		return engine.Hard, true
	case "expert":
		return engine.Expert, true
	default:
		return engine.Medium, false
	}
}

// repl holds the command loop's mutable state: the live position, whose
// turn it is, and the engine instance commands are dispatched to.
type repl struct {
	engine *engine.Engine
	pos    *position.Position
	side   piece.Color
	cache  *cache.Cache
	logger zerolog.Logger
}

func (r *repl) run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "position":
			r.handlePosition(args)
		case "go":
			r.handleGo(args)
		case "stop":
			// no concurrent search is in flight in this single-threaded engine
		case "d":
			fmt.Println(r.pos.String())
			fmt.Printf("side to move: %s\n", r.side)
		case "quit":
			return
		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}
	}
}

func (r *repl) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "start":
		r.pos = position.NewInitial()
		r.side = piece.White
		r.engine.Clear()
	case "side":
		if len(args) >= 2 {
			if strings.EqualFold(args[1], "black") {
				r.side = piece.Black
			} else {
				r.side = piece.White
			}
		}
	case "layout":
		pos, err := position.ParseLayout(strings.Join(args[1:], " "))
		if err != nil {
			fmt.Printf("info string %v\n", err)
			return
		}
		r.pos = pos
		r.engine.Clear()
	}
}

func (r *repl) handleGo(args []string) {
	var result engine.AnalysisResult
	hash := position.Hash(r.pos, r.side)
	maxDepth := r.engine.MaxDepth()

	if r.cache != nil {
		if rec, ok := r.cache.Load(hash, int(r.side), maxDepth); ok {
			r.logger.Debug().Uint64("hash", hash).Msg("analysis cache hit, skipping search")
			result = engine.AnalysisResult{
				BestMove:      rec.BestMove,
				EvaluationCP:  rec.Score,
				DepthReached:  rec.Depth,
				NodesSearched: rec.NodesSearched,
			}
		}
	}

	if result.DepthReached == 0 {
		result = r.engine.Analyze(r.pos, r.side)
		if r.cache != nil {
			r.cache.Save(hash, int(r.side), result.DepthReached, cache.Record{
				Score:         result.EvaluationCP,
				BestMove:      result.BestMove,
				Depth:         result.DepthReached,
				NodesSearched: result.NodesSearched,
			})
		}
	}

	fmt.Printf("info depth %d score %s nodes %d nps %.0f time %d\n",
		result.DepthReached, engine.ScoreToString(result.EvaluationCP),
		result.NodesSearched, result.NodesPerSecond, result.TimeMs)
	if result.BestMove == "" {
		fmt.Println("bestmove none")
		return
	}
	fmt.Printf("bestmove %s\n", result.BestMove)
}
