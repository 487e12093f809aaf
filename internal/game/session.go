// Package game holds the authoritative state of one match: the current
// position, the move history, captured pieces and the terminal status.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/rules"
)

var (
	ErrIllegalMove     = rules.ErrIllegalMove
	ErrInvalidPosition = rules.ErrInvalidPosition
	ErrGameOver        = fmt.Errorf("%w: game is over", rules.ErrIllegalMove)
)

// Session is not safe for concurrent use; callers serialize mutations and
// must not mutate while a search is still reading Position().
type Session struct {
	id     string
	engine rules.Engine
	logger *zap.Logger

	difficulty  domain.Difficulty
	playerColor domain.Side

	// positions[0] is where the history starts; positions[i+1] follows history[i].
	positions []rules.Position
	history   []domain.Move
	captured  Captured
	status    domain.Status
	check     bool
}

type Option func(*Session)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithDifficulty(d domain.Difficulty) Option {
	return func(s *Session) { s.difficulty = d }
}

func WithPlayerColor(c domain.Side) Option {
	return func(s *Session) { s.playerColor = c }
}

func New(engine rules.Engine, opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		engine:      engine,
		logger:      zap.NewNop(),
		difficulty:  domain.Medium,
		playerColor: domain.White,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session_id", s.id))
	s.start(engine.StartPosition())
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) start(pos rules.Position) {
	s.positions = []rules.Position{pos}
	s.history = nil
	s.captured = Captured{}
	s.refresh()
}

func (s *Session) refresh() {
	pos := s.Position()
	s.status = s.engine.Status(pos)
	s.check = s.engine.InCheck(pos)
}

func (s *Session) Reset() {
	s.start(s.engine.StartPosition())
	s.logger.Info("session_reset")
}

// LoadPosition replaces the position and clears history. On error nothing changes.
func (s *Session) LoadPosition(serialized string) error {
	pos, err := s.engine.Import(serialized)
	if err != nil {
		s.logger.Warn("position_rejected", zap.Error(err))
		if errors.Is(err, ErrInvalidPosition) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	s.start(pos)
	s.logger.Info("position_loaded",
		zap.String("fen", pos.FEN()),
		zap.String("status", s.status.String()),
	)
	return nil
}

// Position returns the current immutable position.
func (s *Session) Position() rules.Position {
	return s.positions[len(s.positions)-1]
}

func (s *Session) Status() domain.Status { return s.status }
func (s *Session) IsGameOver() bool      { return s.status.Terminal() }

// ApplyMove plays from->to. A pawn reaching the last rank without an explicit
// promotion becomes a queen.
func (s *Session) ApplyMove(from, to domain.Square, promotion domain.PieceKind) (domain.Move, error) {
	if s.status.Terminal() {
		return domain.Move{}, ErrGameOver
	}
	pos := s.Position()
	candidate, ok := s.match(pos, from, to, promotion)
	if !ok {
		err := fmt.Errorf("%w: %s%s%s", ErrIllegalMove, from, to, promotion.Letter())
		s.logger.Debug("move_rejected", zap.String("from", from.String()), zap.String("to", to.String()))
		return domain.Move{}, err
	}
	next, applied, err := s.engine.Apply(pos, candidate)
	if err != nil {
		return domain.Move{}, err
	}

	s.positions = append(s.positions, next)
	s.history = append(s.history, applied)
	if applied.IsCapture() {
		s.captured.add(applied.Color.Opponent(), applied.Captured)
	}
	s.refresh()

	s.logger.Info("move_applied",
		zap.Int("ply", len(s.history)),
		zap.String("color", applied.Color.String()),
		zap.String("uci", applied.UCI()),
		zap.String("san", applied.SAN),
		zap.String("status", s.status.String()),
	)
	return applied, nil
}

func (s *Session) match(pos rules.Position, from, to domain.Square, promotion domain.PieceKind) (domain.Move, bool) {
	var queen domain.Move
	hasQueen := false
	for _, mv := range s.engine.LegalMovesFrom(pos, from) {
		if mv.To != to {
			continue
		}
		if mv.Promotion == promotion {
			return mv, true
		}
		if promotion == domain.NoPieceKind && mv.Promotion == domain.Queen {
			queen, hasQueen = mv, true
		}
	}
	return queen, hasQueen
}

// Undo removes the last move. It reports false, changing nothing, when the
// history is empty.
func (s *Session) Undo() (domain.Move, bool) {
	n := len(s.history)
	if n == 0 {
		return domain.Move{}, false
	}
	last := s.history[n-1]
	s.history = s.history[:n-1]
	s.positions = s.positions[:len(s.positions)-1]
	if last.IsCapture() {
		s.captured.dropLast(last.Color.Opponent())
	}
	s.refresh()

	s.logger.Info("move_undone",
		zap.Int("ply", n),
		zap.String("uci", last.UCI()),
	)
	return last, true
}

// History returns a copy of the applied moves.
func (s *Session) History() []domain.Move {
	return append([]domain.Move(nil), s.history...)
}

// Origin is the position the history is replayed from.
func (s *Session) Origin() rules.Position { return s.positions[0] }

func (s *Session) LegalMoves(from domain.Square) []domain.Move {
	if s.status.Terminal() {
		return nil
	}
	return s.engine.LegalMovesFrom(s.Position(), from)
}

// ComputerToMove reports whether the side to move is the one not assigned to
// the human player.
func (s *Session) ComputerToMove() bool {
	return !s.status.Terminal() && s.Position().Turn() != s.playerColor
}

func (s *Session) CurrentState() State {
	pos := s.Position()
	return State{
		SessionID:   s.id,
		Position:    pos,
		FEN:         s.engine.Export(pos),
		Turn:        pos.Turn(),
		Status:      s.status,
		IsCheck:     s.check,
		IsCheckmate: s.status == domain.Checkmate,
		IsStalemate: s.status == domain.Stalemate,
		IsDraw:      s.status == domain.Draw,
		IsGameOver:  s.status.Terminal(),
		MoveHistory: s.History(),
		Captured:    s.captured.clone(),
	}
}

func (s *Session) SetDifficulty(d domain.Difficulty) { s.difficulty = d }
func (s *Session) Difficulty() domain.Difficulty     { return s.difficulty }

func (s *Session) SetPlayerColor(c domain.Side) { s.playerColor = c }
func (s *Session) PlayerColor() domain.Side     { return s.playerColor }
