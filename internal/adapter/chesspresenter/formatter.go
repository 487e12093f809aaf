package chesspresenter

import (
	"strings"

	"github.com/park285/chesscore/internal/msgcat"
	"github.com/park285/chesscore/pkg/chessdto"
)

const recentMovesLimit = 6

// Formatter renders chess DTOs into terminal text through the message catalog.
type Formatter struct {
	catalog *msgcat.Catalog
}

func NewFormatter(catalog *msgcat.Catalog) *Formatter {
	return &Formatter{catalog: catalog}
}

func (f *Formatter) text(key string, data any, fallback string) string {
	if f == nil || f.catalog == nil {
		return fallback
	}
	return f.catalog.Text(key, data, fallback)
}

func (f *Formatter) Start(state *chessdto.SessionState) string {
	if state == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(f.text("chess.start", state, "New game."))
	if state.MoveCount > 0 {
		sb.WriteString("\n")
		sb.WriteString(f.text("chess.engine_move", map[string]any{
			"EngineSAN":     lastOf(state.MovesSAN),
			"EngineUCI":     lastOf(state.MovesUCI),
			"EngineLatency": "-",
		}, lastOf(state.MovesSAN)))
	}
	return sb.String()
}

func (f *Formatter) Loaded(state *chessdto.SessionState) string {
	if state == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(f.text("chess.loaded", state, "Position loaded."))
	if state.MoveCount > 0 {
		sb.WriteString("\n")
		sb.WriteString(f.text("chess.engine_move", map[string]any{
			"EngineSAN":     lastOf(state.MovesSAN),
			"EngineUCI":     lastOf(state.MovesUCI),
			"EngineLatency": "-",
		}, lastOf(state.MovesSAN)))
	}
	appendOutcome(&sb, f, state)
	return sb.String()
}

func (f *Formatter) Move(summary *chessdto.MoveSummary) string {
	if summary == nil {
		return ""
	}
	var lines []string
	if summary.PlayerUCI != "" {
		lines = append(lines, f.text("chess.player_move", summary, summary.PlayerSAN))
	}
	if summary.EngineUCI != "" {
		lines = append(lines, f.text("chess.engine_move", summary, summary.EngineSAN))
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(lines, "\n"))
	appendOutcome(&sb, f, summary.State)
	return sb.String()
}

func (f *Formatter) Assist(suggestion *chessdto.AssistSuggestion) string {
	if suggestion == nil || strings.TrimSpace(suggestion.MoveUCI) == "" {
		return ""
	}
	return f.text("chess.assist", suggestion, suggestion.MoveUCI)
}

func (f *Formatter) Undo(state *chessdto.SessionState) string {
	if state == nil {
		return ""
	}
	return f.text("chess.undo", state, "Taken back.")
}

func (f *Formatter) Difficulty(state *chessdto.SessionState) string {
	return f.text("chess.difficulty", state, "")
}

func (f *Formatter) Color(state *chessdto.SessionState) string {
	var sb strings.Builder
	sb.WriteString(f.text("chess.color", state, ""))
	if state != nil && state.MoveCount > 0 && state.Turn == state.PlayerColor {
		sb.WriteString("\n")
		sb.WriteString(f.text("chess.engine_move", map[string]any{
			"EngineSAN":     lastOf(state.MovesSAN),
			"EngineUCI":     lastOf(state.MovesUCI),
			"EngineLatency": "-",
		}, lastOf(state.MovesSAN)))
	}
	return sb.String()
}

func (f *Formatter) Status(state *chessdto.SessionState) string {
	if state == nil {
		return f.Help()
	}
	var sb strings.Builder
	sb.WriteString(f.text("chess.status", state, "Status"))
	if len(state.MovesSAN) > 0 {
		sb.WriteString("\n")
		sb.WriteString(f.text("chess.recent", formatRecentMoves(state.MovesSAN), ""))
	}
	if !state.Captured.IsEmpty() {
		sb.WriteString("\n")
		sb.WriteString(f.text("chess.captured", map[string]any{
			"White": formatCapturedSequence(state.Captured.White),
			"Black": formatCapturedSequence(state.Captured.Black),
		}, ""))
	}
	if state.OpeningCode != "" {
		sb.WriteString("\n")
		sb.WriteString(f.text("chess.opening", state, ""))
	}
	sb.WriteString("\n")
	sb.WriteString(f.text("chess.fen", state.FEN, state.FEN))
	appendOutcome(&sb, f, state)
	return sb.String()
}

func (f *Formatter) Help() string {
	return f.text("chess.help", nil, "Commands: <move>, undo, hint, go, new, fen, level, color, status, board, quit")
}

func (f *Formatter) Unknown(command string) string {
	return f.text("chess.unknown_command", command, "Unknown command.")
}

func (f *Formatter) Bye() string {
	return f.text("chess.bye", nil, "Bye.")
}

// Error renders a domain error; unknown codes fall back to the internal template.
func (f *Formatter) Error(de chessdto.DomainError) string {
	key := "errors." + de.Code
	if f != nil && f.catalog != nil && f.catalog.Has(key) {
		return f.text(key, de, de.Error())
	}
	return f.text("errors.internal", de, de.Error())
}

func appendOutcome(sb *strings.Builder, f *Formatter, state *chessdto.SessionState) {
	if state == nil || !state.Finished {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(f.text(outcomeKey(state), nil, state.Outcome))
}

func outcomeKey(state *chessdto.SessionState) string {
	switch state.Status {
	case "checkmate":
		if state.Outcome == "1-0" {
			return "chess.outcome.white_mates"
		}
		return "chess.outcome.black_mates"
	case "stalemate":
		return "chess.outcome.stalemate"
	default:
		return "chess.outcome.draw"
	}
}

func formatRecentMoves(moves []string) string {
	if len(moves) == 0 {
		return "-"
	}
	if len(moves) <= recentMovesLimit {
		return strings.Join(moves, " ")
	}
	return "… " + strings.Join(moves[len(moves)-recentMovesLimit:], " ")
}

func formatCapturedSequence(order []string) string {
	if len(order) == 0 {
		return ""
	}
	tokens := make([]string, 0, len(order))
	for _, token := range order {
		if symbol := capturedSymbol(token); symbol != "" {
			tokens = append(tokens, symbol)
		}
	}
	return strings.Join(tokens, " ")
}

func capturedSymbol(piece string) string {
	switch strings.ToLower(strings.TrimSpace(piece)) {
	case "queen", "q":
		return "Q"
	case "rook", "r":
		return "R"
	case "bishop", "b":
		return "B"
	case "knight", "n":
		return "N"
	case "pawn", "p":
		return "P"
	default:
		if piece == "" {
			return ""
		}
		return strings.ToUpper(string([]rune(piece)[0]))
	}
}

func lastOf(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[len(list)-1]
}
