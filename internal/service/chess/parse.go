package chess

import (
	"fmt"
	"strings"

	"github.com/park285/chesscore/internal/domain"
)

// resolveMove accepts "e2e4", "e2 e4", "e2-e4", "e7e8q" or SAN such as "Nf3".
func (s *Service) resolveMove(input string) (domain.Square, domain.Square, domain.PieceKind, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return domain.NoSquare, domain.NoSquare, domain.NoPieceKind, ErrInvalidMove
	}
	if from, to, promo, ok := parseCoordinate(text); ok {
		return from, to, promo, nil
	}
	if mv, ok := s.matchSAN(text); ok {
		return mv.From, mv.To, mv.Promotion, nil
	}
	return domain.NoSquare, domain.NoSquare, domain.NoPieceKind, fmt.Errorf("%w: %q", ErrInvalidMove, text)
}

func parseCoordinate(text string) (domain.Square, domain.Square, domain.PieceKind, bool) {
	compact := strings.NewReplacer(" ", "", "-", "", "=", "").Replace(strings.ToLower(text))
	if len(compact) != 4 && len(compact) != 5 {
		return domain.NoSquare, domain.NoSquare, domain.NoPieceKind, false
	}
	from, err := domain.ParseSquare(compact[0:2])
	if err != nil {
		return domain.NoSquare, domain.NoSquare, domain.NoPieceKind, false
	}
	to, err := domain.ParseSquare(compact[2:4])
	if err != nil {
		return domain.NoSquare, domain.NoSquare, domain.NoPieceKind, false
	}
	promo := domain.NoPieceKind
	if len(compact) == 5 {
		switch compact[4] {
		case 'q', 'r', 'b', 'n':
			promo, _ = domain.ParsePieceKind(compact[4:])
		default:
			return domain.NoSquare, domain.NoSquare, domain.NoPieceKind, false
		}
	}
	return from, to, promo, true
}

// matchSAN compares the input with the SAN of every legal move, ignoring
// check marks and annotations.
func (s *Service) matchSAN(text string) (domain.Move, bool) {
	want := normalizeSAN(text)
	pos := s.session.Position()
	for _, mv := range s.engine.LegalMoves(pos) {
		_, applied, err := s.engine.Apply(pos, mv)
		if err != nil {
			continue
		}
		if normalizeSAN(applied.SAN) == want {
			return applied, true
		}
	}
	return domain.Move{}, false
}

func normalizeSAN(san string) string {
	v := strings.TrimRight(strings.TrimSpace(san), "+#!?")
	return strings.ReplaceAll(v, "0", "O")
}
