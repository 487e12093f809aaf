package chesspresenter

import (
	"fmt"

	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/rules"
)

// RenderBoard draws the position in fen from perspective's side of the board.
func RenderBoard(fen string, perspective domain.Side) (string, error) {
	var engine rules.Standard
	pos, err := engine.Import(fen)
	if err != nil {
		return "", fmt.Errorf("render board: %w", err)
	}
	return engine.Draw(pos, perspective), nil
}
