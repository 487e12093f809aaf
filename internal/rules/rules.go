// Package rules defines the capability set the core consumes from a chess
// rules implementation and provides the default one.
package rules

import (
	"errors"

	"github.com/park285/chesscore/internal/domain"
)

var (
	ErrIllegalMove     = errors.New("illegal move")
	ErrInvalidPosition = errors.New("invalid position")
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is an opaque, immutable board state. Applying a move never
// modifies the receiver; implementations return a fresh value instead.
type Position interface {
	Turn() domain.Side
	FEN() string
}

// Engine is the rules collaborator. The core never derives legality itself.
type Engine interface {
	StartPosition() Position
	Import(serialized string) (Position, error)
	Export(pos Position) string
	// Clone returns a copy safe to use from another goroutine.
	Clone(pos Position) Position

	LegalMoves(pos Position) []domain.Move
	LegalMovesFrom(pos Position, from domain.Square) []domain.Move
	// Apply returns the successor position together with the fully
	// annotated move (color, captured piece, SAN).
	Apply(pos Position, mv domain.Move) (Position, domain.Move, error)

	PieceAt(pos Position, sq domain.Square) (domain.Piece, bool)
	InCheck(pos Position) bool
	Status(pos Position) domain.Status
}

// OpeningNamer is implemented by engines that can label the opening reached
// by a position's move sequence.
type OpeningNamer interface {
	Opening(pos Position) (code, title string)
}

// BoardDrawer is implemented by engines that can print a position as text,
// seen from the given side.
type BoardDrawer interface {
	Draw(pos Position, perspective domain.Side) string
}
