package chesspresenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/msgcat"
	"github.com/park285/chesscore/pkg/chessdto"
)

func newTestFormatter(t *testing.T) *Formatter {
	t.Helper()
	catalog, err := msgcat.New("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewFormatter(catalog)
}

func TestFormatRecentMoves(t *testing.T) {
	if got := formatRecentMoves(nil); got != "-" {
		t.Fatalf("empty = %q", got)
	}
	short := []string{"e4", "e5"}
	if got := formatRecentMoves(short); got != "e4 e5" {
		t.Fatalf("short = %q", got)
	}
	long := []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "Nf6"}
	if got := formatRecentMoves(long); got != "… Nf3 Nc6 Bb5 a6 Ba4 Nf6" {
		t.Fatalf("long = %q", got)
	}
}

func TestCapturedSymbol(t *testing.T) {
	cases := map[string]string{"queen": "Q", "N": "N", " pawn ": "P", "": "", "king": "K"}
	for in, want := range cases {
		if got := capturedSymbol(in); got != want {
			t.Fatalf("capturedSymbol(%q) = %q, want %q", in, got, want)
		}
	}
	if got := formatCapturedSequence([]string{"pawn", "knight", "queen"}); got != "P N Q" {
		t.Fatalf("sequence = %q", got)
	}
}

func TestMoveIncludesReplyAndOutcome(t *testing.T) {
	f := newTestFormatter(t)
	summary := &chessdto.MoveSummary{
		PlayerSAN: "Qh5",
		PlayerUCI: "d1h5",
		EngineSAN: "Qxf7#",
		EngineUCI: "h5f7",
		State: &chessdto.SessionState{
			Status:   "checkmate",
			Outcome:  "1-0",
			Finished: true,
		},
	}
	out := f.Move(summary)
	for _, want := range []string{"Qh5", "Qxf7#", "White wins"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestStatusSections(t *testing.T) {
	f := newTestFormatter(t)
	state := &chessdto.SessionState{
		Turn:        "white",
		FEN:         "fen-here",
		MovesSAN:    []string{"e4", "d5", "exd5"},
		MoveCount:   3,
		Captured:    chessdto.CapturedPieces{Black: []string{"pawn"}},
		OpeningCode: "B01",
		OpeningName: "Scandinavian Defense",
		Material:    chessdto.MaterialScore{White: 39, Black: 38},
	}
	out := f.Status(state)
	for _, want := range []string{"e4 d5 exd5", "black [P]", "B01", "fen-here", "39"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "Checkmate") {
		t.Fatalf("unfinished game must not print an outcome: %q", out)
	}
}

func TestErrorFallsBackToInternal(t *testing.T) {
	f := newTestFormatter(t)
	if got := f.Error(chessdto.DomainError{Code: chessdto.CodeIllegalMove}); !strings.Contains(got, "not legal") {
		t.Fatalf("illegal move text = %q", got)
	}
	got := f.Error(chessdto.DomainError{Code: "mystery", Message: "boom"})
	if !strings.Contains(got, "boom") {
		t.Fatalf("fallback text = %q", got)
	}
}

func TestNilCatalogUsesFallbacks(t *testing.T) {
	f := NewFormatter(nil)
	if got := f.Bye(); got != "Bye." {
		t.Fatalf("Bye = %q", got)
	}
	if got := f.Assist(&chessdto.AssistSuggestion{MoveUCI: "e2e4"}); got != "e2e4" {
		t.Fatalf("Assist = %q", got)
	}
}

func TestRenderBoard(t *testing.T) {
	const fen = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	out, err := RenderBoard(fen, domain.White)
	if err != nil {
		t.Fatalf("RenderBoard: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 9 || lines[0] != " A B C D E F G H" {
		t.Fatalf("unexpected board %q", lines)
	}
	if lines[5] != "4- - - - ♙ - - - " {
		t.Fatalf("fourth rank = %q", lines[5])
	}

	flipped, err := RenderBoard(fen, domain.Black)
	if err != nil {
		t.Fatalf("RenderBoard flipped: %v", err)
	}
	if !strings.HasPrefix(flipped, " H G F E D C B A\n1♖ ♘ ♗ ♔ ♕ ♗ ♘ ♖ ") {
		t.Fatalf("flipped board = %q", flipped)
	}

	for _, bad := range []string{"", "8/8/8", "9/8/8/8/8/8/8/8 w - - 0 1", "x7/8/8/8/8/8/8/8 w - - 0 1"} {
		if _, err := RenderBoard(bad, domain.White); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestPresenterBoard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, false)
	state := &chessdto.SessionState{FEN: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", PlayerColor: "white"}
	if err := p.Board("hello", state, false); err != nil {
		t.Fatalf("Board: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Fatalf("board should be hidden, got %q", buf.String())
	}
	buf.Reset()
	if err := p.Board("", state, true); err != nil {
		t.Fatalf("Board forced: %v", err)
	}
	if !strings.Contains(buf.String(), "8- - - - ♚ - - - ") {
		t.Fatalf("board missing: %q", buf.String())
	}
	var nilPresenter *Presenter
	if err := nilPresenter.Message("x"); err != nil {
		t.Fatalf("nil presenter: %v", err)
	}
}
