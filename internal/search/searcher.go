// Package search picks moves with a fixed-depth minimax search and
// alpha-beta pruning, scoring leaves with the static evaluator.
package search

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/rules"
)

// Evaluator scores a position from White's point of view.
type Evaluator interface {
	Evaluate(pos rules.Position) int
}

type Result struct {
	Move  domain.Move
	Score int
	Depth int
	Nodes int
	Found bool
}

// Searcher keeps no state between calls other than its random source, so one
// instance can serve several sessions.
type Searcher struct {
	engine    rules.Engine
	evaluator Evaluator
	logger    *zap.Logger

	randMu sync.Mutex
	rand   *rand.Rand
}

type Option func(*Searcher)

func WithRand(r *rand.Rand) Option {
	return func(s *Searcher) {
		if r != nil {
			s.rand = r
		}
	}
}

func WithSeed(seed int64) Option {
	return func(s *Searcher) { s.rand = rand.New(rand.NewSource(seed)) }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(engine rules.Engine, evaluator Evaluator, opts ...Option) *Searcher {
	s := &Searcher{
		engine:    engine,
		evaluator: evaluator,
		logger:    zap.NewNop(),
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Searcher) SetRandomSeed(seed int64) {
	s.randMu.Lock()
	s.rand = rand.New(rand.NewSource(seed))
	s.randMu.Unlock()
}

// random derives a private source per call so concurrent searches do not
// share a *rand.Rand.
func (s *Searcher) random() *rand.Rand {
	s.randMu.Lock()
	seed := s.rand.Int63()
	s.randMu.Unlock()
	return rand.New(rand.NewSource(seed))
}

// BestMove returns false only when the side to move has no legal moves.
func (s *Searcher) BestMove(pos rules.Position, depth int) (domain.Move, bool) {
	res := s.Search(pos, depth)
	return res.Move, res.Found
}

func (s *Searcher) Search(pos rules.Position, depth int) Result {
	if depth < 1 {
		depth = 1
	}
	started := time.Now()
	work := s.engine.Clone(pos)
	moves := s.engine.LegalMoves(work)
	if len(moves) == 0 {
		s.logger.Debug("search_no_moves", zap.String("fen", work.FEN()))
		return Result{Depth: depth}
	}

	// equal-valued moves are resolved by this order
	r := s.random()
	r.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })

	t := &tree{engine: s.engine, evaluator: s.evaluator}
	maximizing := work.Turn() == domain.White
	res := Result{Depth: depth, Score: worstFor(maximizing)}
	alpha, beta := math.MinInt, math.MaxInt

	for _, mv := range moves {
		child, applied, err := s.engine.Apply(work, mv)
		if err != nil {
			s.logger.Warn("search_apply_failed", zap.String("move", mv.UCI()), zap.Error(err))
			continue
		}
		t.nodes++
		value := t.alphaBeta(child, depth-1, alpha, beta)
		if maximizing {
			if value > res.Score {
				res.Score, res.Move, res.Found = value, applied, true
			}
			alpha = max(alpha, res.Score)
		} else {
			if value < res.Score {
				res.Score, res.Move, res.Found = value, applied, true
			}
			beta = min(beta, res.Score)
		}
	}
	res.Nodes = t.nodes

	s.logger.Debug("search_done",
		zap.Int("depth", depth),
		zap.Int("nodes", res.Nodes),
		zap.Int("score", res.Score),
		zap.String("move", res.Move.UCI()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res
}

func worstFor(maximizing bool) int {
	if maximizing {
		return math.MinInt
	}
	return math.MaxInt
}

// tree holds the per-call counters; positions are immutable so there is
// nothing to take back after each child.
type tree struct {
	engine    rules.Engine
	evaluator Evaluator
	nodes     int
}

func (t *tree) alphaBeta(pos rules.Position, depth, alpha, beta int) int {
	if depth <= 0 || t.engine.Status(pos).Terminal() {
		return t.evaluator.Evaluate(pos)
	}
	moves := t.engine.LegalMoves(pos)
	if len(moves) == 0 {
		return t.evaluator.Evaluate(pos)
	}

	if pos.Turn() == domain.White {
		best := math.MinInt
		for _, mv := range moves {
			child, _, err := t.engine.Apply(pos, mv)
			if err != nil {
				continue
			}
			t.nodes++
			if v := t.alphaBeta(child, depth-1, alpha, beta); v > best {
				best = v
			}
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, mv := range moves {
		child, _, err := t.engine.Apply(pos, mv)
		if err != nil {
			continue
		}
		t.nodes++
		if v := t.alphaBeta(child, depth-1, alpha, beta); v < best {
			best = v
		}
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
