package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/park285/chesscore/internal/adapter/chesspresenter"
	"github.com/park285/chesscore/internal/chessbuilder"
	"github.com/park285/chesscore/internal/config"
	"github.com/park285/chesscore/internal/domain"
	"go.uber.org/zap"
)

func newTestConsole(t *testing.T, cfg *config.AppConfig) (*console, *bytes.Buffer) {
	t.Helper()
	deps, err := chessbuilder.New(cfg, nil)
	if err != nil {
		t.Fatalf("chessbuilder.New: %v", err)
	}
	var out bytes.Buffer
	return &console{
		chess:     deps.Service,
		formatter: chesspresenter.NewFormatter(deps.Catalog),
		presenter: chesspresenter.NewPresenter(&out, false),
		logger:    zap.NewNop(),
	}, &out
}

func TestConsoleScript(t *testing.T) {
	c, out := newTestConsole(t, &config.AppConfig{DefaultDifficulty: domain.Easy, PlayerColor: domain.White, RandomSeed: 1})
	script := strings.Join([]string{
		"help",
		"e2e4",
		"status",
		"board",
		"undo",
		"level hard",
		"level nonsense",
		"zz9",
		"quit",
		"e2e4",
	}, "\n")
	if err := c.run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("run: %v", err)
	}
	text := out.String()
	for _, want := range []string{"New game", "Commands", "You: e4", "Computer:", "Turn:", "A B C D E F G H", "Taken back", "Difficulty set to hard", "unknown difficulty", "Could not read", "Bye."} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in output:\n%s", want, text)
		}
	}
	if got := len(c.chess.Session().History()); got != 0 {
		t.Fatalf("lines after quit must not run, history has %d plies", got)
	}
}

func TestConsoleComputerOpensAsWhite(t *testing.T) {
	c, out := newTestConsole(t, &config.AppConfig{DefaultDifficulty: domain.Easy, PlayerColor: domain.Black, RandomSeed: 3})
	if err := c.run(context.Background(), strings.NewReader("")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := len(c.chess.Session().History()); got != 1 {
		t.Fatalf("computer should have opened, history has %d plies", got)
	}
	if !strings.Contains(out.String(), "Computer:") {
		t.Fatalf("missing engine move in %q", out.String())
	}
}

func TestConsoleLoadAndGameOver(t *testing.T) {
	c, out := newTestConsole(t, &config.AppConfig{DefaultDifficulty: domain.Easy, PlayerColor: domain.White})
	if !c.handle(context.Background(), "fen 7k/5Q2/6K1/8/8/8/8/8 b - - 0 1") {
		t.Fatalf("fen should not stop the loop")
	}
	if !strings.Contains(out.String(), "Stalemate") {
		t.Fatalf("expected stalemate notice, got %q", out.String())
	}
	out.Reset()
	c.handle(context.Background(), "a1a2")
	if !strings.Contains(out.String(), "game is over") {
		t.Fatalf("expected game over error, got %q", out.String())
	}
	out.Reset()
	c.handle(context.Background(), "fen garbage")
	if !strings.Contains(out.String(), "could not be loaded") {
		t.Fatalf("expected invalid position error, got %q", out.String())
	}
}

func TestConsoleGoPlaysPendingReply(t *testing.T) {
	c, out := newTestConsole(t, &config.AppConfig{DefaultDifficulty: domain.Easy, PlayerColor: domain.White, RandomSeed: 5})
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	c.handle(cancelled, "e2e4")
	if !strings.Contains(out.String(), "took too long") {
		t.Fatalf("expected timeout notice, got %q", out.String())
	}
	out.Reset()
	c.handle(context.Background(), "d2d4")
	if !strings.Contains(out.String(), "still owes a move") {
		t.Fatalf("expected pending notice, got %q", out.String())
	}
	out.Reset()
	c.handle(context.Background(), "go")
	if !strings.Contains(out.String(), "Computer:") {
		t.Fatalf("expected engine move, got %q", out.String())
	}
	if got := len(c.chess.Session().History()); got != 2 {
		t.Fatalf("expected 2 plies, got %d", got)
	}
}
