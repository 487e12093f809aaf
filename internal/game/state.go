package game

import (
	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/rules"
)

// Captured holds lost pieces per owner: White lists White pieces taken by
// Black, in the order they were taken.
type Captured struct {
	White []domain.PieceKind
	Black []domain.PieceKind
}

func (c Captured) clone() Captured {
	return Captured{
		White: append([]domain.PieceKind(nil), c.White...),
		Black: append([]domain.PieceKind(nil), c.Black...),
	}
}

func (c *Captured) add(owner domain.Side, kind domain.PieceKind) {
	if owner == domain.White {
		c.White = append(c.White, kind)
	} else {
		c.Black = append(c.Black, kind)
	}
}

func (c *Captured) dropLast(owner domain.Side) {
	list := &c.Black
	if owner == domain.White {
		list = &c.White
	}
	if n := len(*list); n > 0 {
		*list = (*list)[:n-1]
	}
}

// State is a snapshot; its slices are copies and Position is immutable.
type State struct {
	SessionID   string
	Position    rules.Position
	FEN         string
	Turn        domain.Side
	Status      domain.Status
	IsCheck     bool
	IsCheckmate bool
	IsStalemate bool
	IsDraw      bool
	IsGameOver  bool
	MoveHistory []domain.Move
	Captured    Captured
}
