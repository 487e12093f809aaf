package chess

import (
	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/game"
	"github.com/park285/chesscore/internal/rules"
	"github.com/park285/chesscore/pkg/chessdto"
)

var materialPoints = map[domain.PieceKind]int{
	domain.Pawn:   1,
	domain.Knight: 3,
	domain.Bishop: 3,
	domain.Rook:   5,
	domain.Queen:  9,
}

func (s *Service) stateFromSession(st game.State) *chessdto.SessionState {
	movesSAN := make([]string, len(st.MoveHistory))
	movesUCI := make([]string, len(st.MoveHistory))
	for i, mv := range st.MoveHistory {
		movesSAN[i] = mv.SAN
		movesUCI[i] = mv.UCI()
	}
	prob := s.estimator.Estimate(st.Position)

	state := &chessdto.SessionState{
		SessionUUID: st.SessionID,
		Difficulty:  s.session.Difficulty().String(),
		PlayerColor: s.session.PlayerColor().String(),
		Turn:        st.Turn.String(),
		FEN:         st.FEN,
		MovesSAN:    movesSAN,
		MovesUCI:    movesUCI,
		MoveCount:   len(st.MoveHistory),
		InCheck:     st.IsCheck,
		Status:      st.Status.String(),
		Outcome:     outcome(st),
		Finished:    st.IsGameOver,
		Material:    s.material(st.Position),
		Captured: chessdto.CapturedPieces{
			White: pieceTokens(st.Captured.White),
			Black: pieceTokens(st.Captured.Black),
		},
		WinProbability: chessdto.WinProbability{White: prob.White, Black: prob.Black},
	}
	if namer, ok := s.engine.(rules.OpeningNamer); ok && len(st.MoveHistory) > 0 {
		state.OpeningCode, state.OpeningName = namer.Opening(st.Position)
	}
	return state
}

func (s *Service) material(pos rules.Position) chessdto.MaterialScore {
	var score chessdto.MaterialScore
	for sq := domain.Square(0); sq < 64; sq++ {
		pc, ok := s.engine.PieceAt(pos, sq)
		if !ok {
			continue
		}
		if pc.Side == domain.White {
			score.White += materialPoints[pc.Kind]
		} else {
			score.Black += materialPoints[pc.Kind]
		}
	}
	return score
}

func outcome(st game.State) string {
	switch {
	case st.IsCheckmate && st.Turn == domain.White:
		return "0-1"
	case st.IsCheckmate:
		return "1-0"
	case st.IsStalemate, st.IsDraw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

func pieceTokens(list []domain.PieceKind) []string {
	tokens := make([]string, 0, len(list))
	for _, k := range list {
		tokens = append(tokens, k.String())
	}
	return tokens
}
