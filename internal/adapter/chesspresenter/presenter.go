package chesspresenter

import (
	"fmt"
	"io"
	"strings"

	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/pkg/chessdto"
)

// Presenter writes formatted messages and the text board without coupling to the command layer.
type Presenter struct {
	out       io.Writer
	showBoard bool
}

func NewPresenter(out io.Writer, showBoard bool) *Presenter {
	return &Presenter{
		out:       out,
		showBoard: showBoard,
	}
}

// Message writes a non-empty message followed by a newline.
func (p *Presenter) Message(message string) error {
	if p == nil || p.out == nil {
		return nil
	}
	text := strings.TrimRight(message, "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_, err := fmt.Fprintln(p.out, text)
	return err
}

// Board writes message and, when enabled or forced, the board drawn from state.
func (p *Presenter) Board(message string, state *chessdto.SessionState, force bool) error {
	if p == nil {
		return nil
	}
	if err := p.Message(message); err != nil {
		return err
	}
	if state == nil || (!p.showBoard && !force) {
		return nil
	}
	perspective := domain.White
	if state.PlayerColor == domain.Black.String() {
		perspective = domain.Black
	}
	board, err := RenderBoard(state.FEN, perspective)
	if err != nil {
		return err
	}
	return p.Message(board)
}
