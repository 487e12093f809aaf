package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/park285/chesscore/internal/domain"
)

type AppConfig struct {
	DefaultDifficulty domain.Difficulty
	PlayerColor       domain.Side

	// RandomSeed fixes move ordering among equal moves; zero means time-based.
	RandomSeed int64
	StartFEN   string

	MessagesDir      string
	SearchTimeoutSec int

	// ShowBoard prints the board after every state change.
	ShowBoard bool
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		DefaultDifficulty: domain.Medium,
		PlayerColor:       domain.White,
		SearchTimeoutSec:  0,
	}

	if v := strings.TrimSpace(os.Getenv("CHESS_DEFAULT_DIFFICULTY")); v != "" {
		d, err := domain.ParseDifficulty(v)
		if err != nil {
			return nil, fmt.Errorf("CHESS_DEFAULT_DIFFICULTY: %w", err)
		}
		cfg.DefaultDifficulty = d
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_PLAYER_COLOR")); v != "" {
		c, err := domain.ParseSide(v)
		if err != nil {
			return nil, fmt.Errorf("CHESS_PLAYER_COLOR: %w", err)
		}
		cfg.PlayerColor = c
	}
	if v := strings.TrimSpace(os.Getenv("CHESS_RANDOM_SEED")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("CHESS_RANDOM_SEED: %w", err)
		}
		cfg.RandomSeed = n
	}
	cfg.StartFEN = strings.TrimSpace(os.Getenv("CHESS_START_FEN"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("CHESS_MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("CHESS_SEARCH_TIMEOUT_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SearchTimeoutSec = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("CHESS_SHOW_BOARD")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CHESS_SHOW_BOARD: %w", err)
		}
		cfg.ShowBoard = b
	}

	return cfg, nil
}
