package chess

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/eval"
	"github.com/park285/chesscore/internal/game"
	"github.com/park285/chesscore/internal/rules"
	"github.com/park285/chesscore/internal/search"
	"github.com/park285/chesscore/pkg/chessdto"
)

var (
	ErrInvalidMove      = errors.New("invalid chess move")
	ErrUndoNotAvailable = errors.New("no moves available to undo")
	ErrEngineTimeout    = errors.New("chess engine timeout")
	ErrNoMove           = errors.New("chess engine found no move")
	ErrNotConfigured    = errors.New("chess service not configured")
	ErrReplyPending     = errors.New("computer reply pending")
)

const (
	engineEvaluationFallbackTimeout = 8 * time.Second
	assistDifficulty                = domain.Hard
)

type Config struct {
	// SearchTimeout bounds how long a caller waits for a search; zero picks a
	// default from the depth.
	SearchTimeout time.Duration
}

// Service runs a human-versus-computer match on one session. Like the
// session it wraps, it is meant to be driven from a single goroutine.
type Service struct {
	engine    rules.Engine
	session   *game.Session
	searcher  *search.Searcher
	estimator *eval.WinProbability
	cfg       Config
	logger    *zap.Logger
}

func NewService(engine rules.Engine, session *game.Session, searcher *search.Searcher, estimator *eval.WinProbability, cfg Config, logger *zap.Logger) (*Service, error) {
	if engine == nil || session == nil || searcher == nil || estimator == nil {
		return nil, ErrNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		engine:    engine,
		session:   session,
		searcher:  searcher,
		estimator: estimator,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

func (s *Service) Session() *game.Session { return s.session }

// Start begins a new game. When the human plays Black the computer opens.
func (s *Service) Start(ctx context.Context, difficulty domain.Difficulty, color domain.Side) (*chessdto.SessionState, error) {
	s.session.Reset()
	s.session.SetDifficulty(difficulty)
	s.session.SetPlayerColor(color)
	s.logger.Info("chess session started",
		zap.String("session_id", s.session.ID()),
		zap.String("difficulty", difficulty.String()),
		zap.String("player_color", color.String()),
	)
	if _, err := s.replyIfNeeded(ctx); err != nil {
		return s.State(), err
	}
	return s.State(), nil
}

// Load replaces the position; the computer replies if it is now its turn.
func (s *Service) Load(ctx context.Context, fen string) (*chessdto.SessionState, error) {
	if err := s.session.LoadPosition(fen); err != nil {
		return nil, err
	}
	if _, err := s.replyIfNeeded(ctx); err != nil {
		return s.State(), err
	}
	return s.State(), nil
}

// Play applies the human move given as UCI or SAN text and lets the
// computer answer.
func (s *Service) Play(ctx context.Context, moveInput string) (*chessdto.MoveSummary, error) {
	if s.session.IsGameOver() {
		return nil, game.ErrGameOver
	}
	if s.session.ComputerToMove() {
		// an earlier reply timed out; Resume plays it
		return nil, ErrReplyPending
	}
	from, to, promo, err := s.resolveMove(moveInput)
	if err != nil {
		return nil, err
	}
	played, err := s.session.ApplyMove(from, to, promo)
	if err != nil {
		return nil, err
	}
	s.logOpeningLabel(played, "player")

	summary := &chessdto.MoveSummary{
		PlayerSAN: played.SAN,
		PlayerUCI: played.UCI(),
	}
	reply, err := s.replyIfNeeded(ctx)
	return s.summarize(summary, reply), err
}

// Resume lets the computer play a reply that an earlier timeout left pending.
// It is a no-op when the player is to move.
func (s *Service) Resume(ctx context.Context) (*chessdto.MoveSummary, error) {
	if s.session.IsGameOver() {
		return nil, game.ErrGameOver
	}
	reply, err := s.replyIfNeeded(ctx)
	return s.summarize(&chessdto.MoveSummary{}, reply), err
}

func (s *Service) summarize(summary *chessdto.MoveSummary, reply *EngineReply) *chessdto.MoveSummary {
	if reply != nil {
		summary.EngineSAN = reply.Move.SAN
		summary.EngineUCI = reply.Move.UCI()
		summary.EngineScore = reply.Result.Score
		summary.EngineLatency = reply.Latency
	}
	summary.State = s.State()
	summary.Finished = summary.State.Finished
	return summary
}

// EngineReply is the computer's applied move with its search details.
type EngineReply struct {
	Move    domain.Move
	Result  search.Result
	Latency time.Duration
}

func (s *Service) replyIfNeeded(ctx context.Context) (*EngineReply, error) {
	if !s.session.ComputerToMove() {
		return nil, nil
	}
	return s.ComputerMove(ctx)
}

// ComputerMove searches at the session's difficulty and applies the result.
func (s *Service) ComputerMove(ctx context.Context) (*EngineReply, error) {
	if s.session.IsGameOver() {
		return nil, game.ErrGameOver
	}
	depth := search.DepthFor(s.session.Difficulty())
	started := time.Now()
	res, err := s.search(ctx, depth)
	if err != nil {
		return nil, err
	}
	applied, err := s.session.ApplyMove(res.Move.From, res.Move.To, res.Move.Promotion)
	if err != nil {
		return nil, fmt.Errorf("apply engine move %s: %w", res.Move.UCI(), err)
	}
	reply := &EngineReply{Move: applied, Result: res, Latency: time.Since(started)}
	s.logger.Info("chess engine move",
		zap.String("session_id", s.session.ID()),
		zap.String("move_uci", applied.UCI()),
		zap.String("move_san", applied.SAN),
		zap.Int("depth", depth),
		zap.Int("score", res.Score),
		zap.Int("nodes", res.Nodes),
		zap.Duration("latency", reply.Latency),
	)
	s.logOpeningLabel(applied, "engine")
	return reply, nil
}

// search runs the blocking search on its own goroutine over a private copy
// of the position. On ctx expiry the result is abandoned; the goroutine
// finishes on its own.
func (s *Service) search(ctx context.Context, depth int) (search.Result, error) {
	timeout := s.searchTimeout(depth)
	if err := ctx.Err(); err != nil {
		return search.Result{}, fmt.Errorf("%w: %v", ErrEngineTimeout, err)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	work := s.engine.Clone(s.session.Position())
	done := make(chan search.Result, 1)
	go func() {
		done <- s.searcher.Search(work, depth)
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("chess engine timeout",
			zap.String("session_id", s.session.ID()),
			zap.Int("depth", depth),
			zap.Duration("timeout", timeout),
			zap.Error(ctx.Err()),
		)
		return search.Result{}, fmt.Errorf("%w: %v", ErrEngineTimeout, ctx.Err())
	case res := <-done:
		if !res.Found {
			return res, ErrNoMove
		}
		return res, nil
	}
}

func (s *Service) searchTimeout(depth int) time.Duration {
	if s.cfg.SearchTimeout > 0 {
		return s.cfg.SearchTimeout
	}
	base := time.Duration(depth) * 3 * time.Second
	if base < engineEvaluationFallbackTimeout {
		return engineEvaluationFallbackTimeout
	}
	return base
}

// Assist suggests a move for the side to move without playing it.
func (s *Service) Assist(ctx context.Context) (*chessdto.AssistSuggestion, error) {
	if s.session.IsGameOver() {
		return nil, game.ErrGameOver
	}
	depth := search.DepthFor(assistDifficulty)
	started := time.Now()
	res, err := s.search(ctx, depth)
	if err != nil {
		return nil, err
	}
	return &chessdto.AssistSuggestion{
		MoveUCI:      res.Move.UCI(),
		MoveSAN:      res.Move.SAN,
		EvaluationCP: res.Score,
		Depth:        res.Depth,
		Nodes:        res.Nodes,
		Duration:     time.Since(started),
	}, nil
}

// Undo takes back the player's last move together with the computer's reply.
// A single ply is removed when the player's move ended the game or was not
// answered yet.
func (s *Service) Undo() (*chessdto.SessionState, error) {
	plies := 2
	if s.session.Position().Turn() != s.session.PlayerColor() {
		plies = 1
	}
	if len(s.session.History()) < plies {
		return nil, ErrUndoNotAvailable
	}
	for i := 0; i < plies; i++ {
		s.session.Undo()
	}
	return s.State(), nil
}

func (s *Service) SetDifficulty(d domain.Difficulty) *chessdto.SessionState {
	s.session.SetDifficulty(d)
	return s.State()
}

// SetPlayerColor switches sides; the computer moves at once if the switch
// hands it the turn.
func (s *Service) SetPlayerColor(ctx context.Context, c domain.Side) (*chessdto.SessionState, error) {
	s.session.SetPlayerColor(c)
	if _, err := s.replyIfNeeded(ctx); err != nil {
		return s.State(), err
	}
	return s.State(), nil
}

func (s *Service) State() *chessdto.SessionState {
	return s.stateFromSession(s.session.CurrentState())
}

func (s *Service) logOpeningLabel(mv domain.Move, source string) {
	namer, ok := s.engine.(rules.OpeningNamer)
	if !ok {
		return
	}
	code, title := namer.Opening(s.session.Position())
	if code == "" {
		return
	}
	s.logger.Debug("chess opening label",
		zap.String("eco_code", code),
		zap.String("eco_title", title),
		zap.String("source", source),
		zap.Int("ply", len(s.session.History())),
		zap.String("move_uci", mv.UCI()),
	)
}

// ToDomainError maps service and session errors to their outward form.
func ToDomainError(err error) chessdto.DomainError {
	var de chessdto.DomainError
	switch {
	case err == nil:
		return de
	case errors.As(err, &de):
		return de
	case errors.Is(err, ErrInvalidMove):
		return chessdto.DomainError{Code: chessdto.CodeInvalidMove, Message: err.Error(), Retryable: true}
	case errors.Is(err, game.ErrGameOver):
		return chessdto.DomainError{Code: chessdto.CodeGameOver, Message: err.Error()}
	case errors.Is(err, game.ErrIllegalMove):
		return chessdto.DomainError{Code: chessdto.CodeIllegalMove, Message: err.Error(), Retryable: true}
	case errors.Is(err, game.ErrInvalidPosition):
		return chessdto.DomainError{Code: chessdto.CodeInvalidPosition, Message: err.Error(), Retryable: true}
	case errors.Is(err, ErrUndoNotAvailable):
		return chessdto.DomainError{Code: chessdto.CodeNothingToUndo, Message: err.Error()}
	case errors.Is(err, ErrReplyPending):
		return chessdto.DomainError{Code: chessdto.CodeReplyPending, Message: err.Error(), Retryable: true}
	case errors.Is(err, ErrEngineTimeout):
		return chessdto.DomainError{Code: chessdto.CodeEngineTimeout, Message: err.Error(), Retryable: true}
	default:
		return chessdto.DomainError{Code: chessdto.CodeInternal, Message: err.Error()}
	}
}
