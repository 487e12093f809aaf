// Package eval scores positions from White's point of view and turns those
// scores into win percentages.
package eval

import (
	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/rules"
)

// MateScore is the magnitude returned for a checkmate. It is finite so it
// survives the integer arithmetic of the search, and far above any reachable
// material+positional sum (about 40k).
const MateScore = 1_000_000_000

const DrawScore = 0

var pieceValues = [7]int{
	domain.NoPieceKind: 0,
	domain.Pawn:        100,
	domain.Knight:      320,
	domain.Bishop:      330,
	domain.Rook:        500,
	domain.Queen:       900,
	domain.King:        20000,
}

// Indexed [rank][file] from White's side, rank 0 being the first rank.
var pawnTable = [8][8]int{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{5, 10, 10, -20, -20, 10, 10, 5},
	{5, -5, -10, 0, 0, -10, -5, 5},
	{0, 0, 0, 20, 20, 0, 0, 0},
	{5, 5, 10, 25, 25, 10, 5, 5},
	{10, 10, 20, 30, 30, 20, 10, 10},
	{50, 50, 50, 50, 50, 50, 50, 50},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

var knightTable = [8][8]int{
	{-50, -40, -30, -30, -30, -30, -40, -50},
	{-40, -20, 0, 5, 5, 0, -20, -40},
	{-30, 5, 10, 15, 15, 10, 5, -30},
	{-30, 0, 15, 20, 20, 15, 0, -30},
	{-30, 5, 15, 20, 20, 15, 5, -30},
	{-30, 0, 10, 15, 15, 10, 0, -30},
	{-40, -20, 0, 0, 0, 0, -20, -40},
	{-50, -40, -30, -30, -30, -30, -40, -50},
}

// Evaluator is stateless apart from the rules engine it reads boards through.
type Evaluator struct {
	engine rules.Engine
}

func New(engine rules.Engine) *Evaluator {
	return &Evaluator{engine: engine}
}

// Evaluate returns the static score of pos; positive favours White.
func (e *Evaluator) Evaluate(pos rules.Position) int {
	switch e.engine.Status(pos) {
	case domain.Checkmate:
		// the side to move is the one mated
		if pos.Turn() == domain.White {
			return -MateScore
		}
		return MateScore
	case domain.Stalemate, domain.Draw:
		return DrawScore
	}
	return e.Material(pos)
}

// Material is the non-terminal part of Evaluate: material plus the pawn and
// knight square bonuses.
func (e *Evaluator) Material(pos rules.Position) int {
	score := 0
	for sq := domain.Square(0); sq < 64; sq++ {
		pc, ok := e.engine.PieceAt(pos, sq)
		if !ok {
			continue
		}
		v := pieceValues[pc.Kind] + squareBonus(pc, sq)
		if pc.Side == domain.Black {
			score -= v
		} else {
			score += v
		}
	}
	return score
}

func squareBonus(pc domain.Piece, sq domain.Square) int {
	rank, file := sq.Rank(), sq.File()
	if pc.Side == domain.Black {
		rank = 7 - rank
	}
	switch pc.Kind {
	case domain.Pawn:
		return pawnTable[rank][file]
	case domain.Knight:
		return knightTable[rank][file]
	default:
		return 0
	}
}
