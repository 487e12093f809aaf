package main

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/park285/chesscore/internal/adapter/chesspresenter"
	"github.com/park285/chesscore/internal/chessbuilder"
	appcfg "github.com/park285/chesscore/internal/config"
	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/obslog"
	svcchess "github.com/park285/chesscore/internal/service/chess"
	"github.com/park285/chesscore/pkg/chessdto"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("chess-cli: ")
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	deps, err := chessbuilder.New(cfg, logger)
	if err != nil {
		log.Fatalf("chess init error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli := &console{
		chess:     deps.Service,
		formatter: chesspresenter.NewFormatter(deps.Catalog),
		presenter: chesspresenter.NewPresenter(os.Stdout, cfg.ShowBoard),
		logger:    logger,
	}
	if err := cli.run(ctx, os.Stdin); err != nil {
		logger.Error("console stopped", zap.Error(err))
		os.Exit(1)
	}
}

type console struct {
	chess     *svcchess.Service
	formatter *chesspresenter.Formatter
	presenter *chesspresenter.Presenter
	logger    *zap.Logger
}

// run reads one command per line until quit, EOF or cancellation.
func (c *console) run(ctx context.Context, in io.Reader) error {
	state := c.chess.State()
	_ = c.presenter.Board(c.formatter.Start(state), state, false)
	if c.chess.Session().ComputerToMove() {
		c.report(c.chess.SetPlayerColor(ctx, c.chess.Session().PlayerColor()))
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if !c.handle(ctx, scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// handle runs one command line and reports whether the loop should continue.
func (c *console) handle(ctx context.Context, line string) bool {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return true
	}
	parts := strings.Fields(raw)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "quit", "exit":
		_ = c.presenter.Message(c.formatter.Bye())
		return false
	case "help", "?":
		_ = c.presenter.Message(c.formatter.Help())
	case "new", "start":
		color := c.chess.Session().PlayerColor()
		if len(args) >= 1 {
			parsed, err := domain.ParseSide(args[0])
			if err != nil {
				c.badArgument(err)
				return true
			}
			color = parsed
		}
		state, err := c.chess.Start(ctx, c.chess.Session().Difficulty(), color)
		if state != nil {
			_ = c.presenter.Board(c.formatter.Start(state), state, false)
		}
		if err != nil {
			c.fail(err)
		}
	case "fen", "load":
		if len(args) == 0 {
			_ = c.presenter.Message(c.chess.State().FEN)
			return true
		}
		state, err := c.chess.Load(ctx, strings.Join(args, " "))
		if err != nil {
			c.fail(err)
			return true
		}
		_ = c.presenter.Board(c.formatter.Loaded(state), state, false)
	case "level", "difficulty":
		if len(args) == 0 {
			_ = c.presenter.Message(c.formatter.Difficulty(c.chess.State()))
			return true
		}
		d, err := domain.ParseDifficulty(args[0])
		if err != nil {
			c.badArgument(err)
			return true
		}
		_ = c.presenter.Message(c.formatter.Difficulty(c.chess.SetDifficulty(d)))
	case "color", "side":
		if len(args) == 0 {
			_ = c.presenter.Message(c.formatter.Color(c.chess.State()))
			return true
		}
		side, err := domain.ParseSide(args[0])
		if err != nil {
			c.badArgument(err)
			return true
		}
		c.report(c.chess.SetPlayerColor(ctx, side))
	case "undo", "takeback":
		state, err := c.chess.Undo()
		if err != nil {
			c.fail(err)
			return true
		}
		_ = c.presenter.Board(c.formatter.Undo(state), state, false)
	case "hint", "assist":
		suggestion, err := c.chess.Assist(ctx)
		if err != nil {
			c.fail(err)
			return true
		}
		_ = c.presenter.Message(c.formatter.Assist(suggestion))
	case "go", "resume":
		summary, err := c.chess.Resume(ctx)
		if summary != nil {
			_ = c.presenter.Board(c.formatter.Move(summary), summary.State, false)
		}
		if err != nil {
			c.fail(err)
		}
	case "status":
		state := c.chess.State()
		_ = c.presenter.Board(c.formatter.Status(state), state, false)
	case "board":
		_ = c.presenter.Board("", c.chess.State(), true)
	case "move", "m":
		if len(args) == 0 {
			_ = c.presenter.Message(c.formatter.Help())
			return true
		}
		c.play(ctx, strings.Join(args, " "))
	default:
		// Treat as a move
		c.play(ctx, raw)
	}
	return true
}

func (c *console) play(ctx context.Context, input string) {
	summary, err := c.chess.Play(ctx, input)
	if summary != nil {
		_ = c.presenter.Board(c.formatter.Move(summary), summary.State, false)
	}
	if err != nil {
		c.fail(err)
	}
}

// report prints a color change, including the computer's move if it took the turn.
func (c *console) report(state *chessdto.SessionState, err error) {
	if state != nil {
		_ = c.presenter.Board(c.formatter.Color(state), state, false)
	}
	if err != nil {
		c.fail(err)
	}
}

// badArgument reports a command argument that could not be parsed.
func (c *console) badArgument(err error) {
	c.fail(chessdto.DomainError{Code: chessdto.CodeInvalidArgument, Message: err.Error(), Retryable: true})
}

func (c *console) fail(err error) {
	de := svcchess.ToDomainError(err)
	c.logger.Debug("command_failed", zap.String("code", de.Code), zap.Error(err))
	_ = c.presenter.Message(c.formatter.Error(de))
}
