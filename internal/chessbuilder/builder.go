package chessbuilder

import (
	"fmt"
	"time"

	"github.com/park285/chesscore/internal/config"
	"github.com/park285/chesscore/internal/eval"
	"github.com/park285/chesscore/internal/game"
	"github.com/park285/chesscore/internal/msgcat"
	"github.com/park285/chesscore/internal/rules"
	"github.com/park285/chesscore/internal/search"
	svcchess "github.com/park285/chesscore/internal/service/chess"
	"go.uber.org/zap"
)

type Deps struct {
	Service   *svcchess.Service
	Engine    rules.Engine
	Evaluator *eval.Evaluator
	Searcher  *search.Searcher
	Session   *game.Session
	Catalog   *msgcat.Catalog
}

func New(cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := rules.Standard{}
	evaluator := eval.New(engine)

	// Searcher: a nonzero seed makes tie-breaking reproducible
	searchOpts := []search.Option{search.WithLogger(logger)}
	if cfg.RandomSeed != 0 {
		searchOpts = append(searchOpts, search.WithSeed(cfg.RandomSeed))
	}
	searcher := search.New(engine, evaluator, searchOpts...)

	session := game.New(engine,
		game.WithLogger(logger),
		game.WithDifficulty(cfg.DefaultDifficulty),
		game.WithPlayerColor(cfg.PlayerColor),
	)
	if cfg.StartFEN != "" {
		if err := session.LoadPosition(cfg.StartFEN); err != nil {
			return nil, fmt.Errorf("load start position: %w", err)
		}
	}

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("init messages: %w", err)
	}

	svcCfg := svcchess.Config{
		SearchTimeout: time.Duration(cfg.SearchTimeoutSec) * time.Second,
	}
	service, err := svcchess.NewService(engine, session, searcher, eval.NewWinProbability(engine, evaluator), svcCfg, logger)
	if err != nil {
		return nil, err
	}

	return &Deps{
		Service:   service,
		Engine:    engine,
		Evaluator: evaluator,
		Searcher:  searcher,
		Session:   session,
		Catalog:   catalog,
	}, nil
}
