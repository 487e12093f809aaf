package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/park285/chesscore/internal/domain"
)

func sq(t *testing.T, raw string) domain.Square {
	t.Helper()
	s, err := domain.ParseSquare(raw)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", raw, err)
	}
	return s
}

func play(t *testing.T, eng Engine, pos Position, uci ...string) (Position, []domain.Move) {
	t.Helper()
	applied := make([]domain.Move, 0, len(uci))
	for _, raw := range uci {
		mv := domain.Move{From: sq(t, raw[0:2]), To: sq(t, raw[2:4])}
		if len(raw) == 5 {
			kind, err := domain.ParsePieceKind(raw[4:])
			if err != nil {
				t.Fatalf("promotion %q: %v", raw, err)
			}
			mv.Promotion = kind
		}
		next, done, err := eng.Apply(pos, mv)
		if err != nil {
			t.Fatalf("Apply(%s): %v", raw, err)
		}
		pos = next
		applied = append(applied, done)
	}
	return pos, applied
}

func TestStartPosition(t *testing.T) {
	eng := Standard{}
	pos := eng.StartPosition()
	if pos.Turn() != domain.White {
		t.Fatalf("expected white to move")
	}
	if got := len(eng.LegalMoves(pos)); got != 20 {
		t.Fatalf("legal moves = %d, want 20", got)
	}
	if got := len(eng.LegalMovesFrom(pos, sq(t, "g1"))); got != 2 {
		t.Fatalf("knight moves = %d, want 2", got)
	}
	if eng.Status(pos) != domain.InProgress || eng.InCheck(pos) {
		t.Fatalf("start position should be quiet")
	}
	pc, ok := eng.PieceAt(pos, sq(t, "e1"))
	if !ok || pc.Kind != domain.King || pc.Side != domain.White {
		t.Fatalf("e1 = %+v (%v), want white king", pc, ok)
	}
	if _, ok := eng.PieceAt(pos, sq(t, "e4")); ok {
		t.Fatalf("e4 should be empty")
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	eng := Standard{}
	start := eng.StartPosition()
	before := start.FEN()
	next, mv, err := eng.Apply(start, domain.Move{From: sq(t, "e2"), To: sq(t, "e4")})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if start.FEN() != before {
		t.Fatalf("source position changed: %s", start.FEN())
	}
	if next.Turn() != domain.Black {
		t.Fatalf("expected black to move after e4")
	}
	if mv.SAN != "e4" || mv.Color != domain.White || mv.IsCapture() {
		t.Fatalf("unexpected annotated move: %+v", mv)
	}
}

func TestApplyIllegal(t *testing.T) {
	eng := Standard{}
	start := eng.StartPosition()
	cases := []domain.Move{
		{From: sq(t, "e2"), To: sq(t, "e5")},
		{From: sq(t, "e7"), To: sq(t, "e5")},
		{From: sq(t, "e4"), To: sq(t, "e5")},
		{From: domain.NoSquare, To: sq(t, "e4")},
	}
	for _, mv := range cases {
		if _, _, err := eng.Apply(start, mv); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("Apply(%s) err = %v, want ErrIllegalMove", mv.UCI(), err)
		}
	}
}

func TestCaptureAnnotations(t *testing.T) {
	eng := Standard{}
	_, moves := play(t, eng, eng.StartPosition(), "e2e4", "d7d5", "e4d5")
	last := moves[len(moves)-1]
	if last.Captured != domain.Pawn || last.SAN != "exd5" {
		t.Fatalf("capture = %+v, want pawn exd5", last)
	}
}

func TestEnPassantCapture(t *testing.T) {
	eng := Standard{}
	pos, moves := play(t, eng, eng.StartPosition(), "e2e4", "a7a6", "e4e5", "d7d5", "e5d6")
	last := moves[len(moves)-1]
	if last.Captured != domain.Pawn {
		t.Fatalf("en passant captured = %v, want pawn", last.Captured)
	}
	if _, ok := eng.PieceAt(pos, sq(t, "d5")); ok {
		t.Fatalf("captured pawn still on d5")
	}
}

func TestPromotion(t *testing.T) {
	eng := Standard{}
	pos, err := eng.Import("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	next, moves := play(t, eng, pos, "a7a8q")
	if moves[0].Promotion != domain.Queen {
		t.Fatalf("promotion = %v, want queen", moves[0].Promotion)
	}
	pc, ok := eng.PieceAt(next, sq(t, "a8"))
	if !ok || pc.Kind != domain.Queen {
		t.Fatalf("a8 = %+v, want queen", pc)
	}
}

func TestStatus(t *testing.T) {
	eng := Standard{}

	mated, _ := play(t, eng, eng.StartPosition(), "f2f3", "e7e5", "g2g4", "d8h4")
	if eng.Status(mated) != domain.Checkmate || !eng.InCheck(mated) {
		t.Fatalf("fool's mate not detected")
	}
	if len(eng.LegalMoves(mated)) != 0 {
		t.Fatalf("mated side should have no moves")
	}

	stale, err := eng.Import("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("Import stalemate: %v", err)
	}
	if eng.Status(stale) != domain.Stalemate || eng.InCheck(stale) {
		t.Fatalf("stalemate not detected")
	}

	bare, err := eng.Import("8/8/8/4k3/8/8/3r4/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	drawn, _ := play(t, eng, bare, "e1d2")
	if eng.Status(drawn) != domain.Draw {
		t.Fatalf("bare kings status = %v, want draw", eng.Status(drawn))
	}
}

func TestImportRejectsInvalid(t *testing.T) {
	eng := Standard{}
	for _, raw := range []string{
		"",
		"   ",
		"not a fen",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2r b - - 0 1",
		"4k3/4p3/8/8/8/8/8/R3K3 w KQ - 0 1",
		"r3k3/8/8/8/8/8/8/R3K3 w Qk - 0 1",
		"4k3/8/8/8/8/8/8/R2K3R w K - 0 1",
		"P3k3/8/8/8/8/8/8/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/8/p3K3 b - - 0 1",
	} {
		if _, err := eng.Import(raw); !errors.Is(err, ErrInvalidPosition) {
			t.Fatalf("Import(%q) err = %v, want ErrInvalidPosition", raw, err)
		}
	}
}

func TestImportAcceptsMatchingCastlingRights(t *testing.T) {
	eng := Standard{}
	pos, err := eng.Import("r3k2r/8/8/8/8/8/8/R3K3 w Qkq - 0 1")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	for _, mv := range eng.LegalMovesFrom(pos, domain.NewSquare(4, 0)) {
		if mv.UCI() == "e1g1" {
			t.Fatalf("king side castling offered without a rook on h1")
		}
	}
}

func TestDrawPerspective(t *testing.T) {
	eng := Standard{}
	pos, err := eng.Import("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	white := strings.Split(eng.Draw(pos, domain.White), "\n")
	if len(white) != 9 || white[0] != " A B C D E F G H" {
		t.Fatalf("white view = %q", white)
	}
	if white[1] != "8♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜ " || white[5] != "4- - - - ♙ - - - " {
		t.Fatalf("white ranks = %q / %q", white[1], white[5])
	}
	black := strings.Split(eng.Draw(pos, domain.Black), "\n")
	if len(black) != 9 || black[0] != " H G F E D C B A" || black[1] != "1♖ ♘ ♗ ♔ ♕ ♗ ♘ ♖ " {
		t.Fatalf("black view = %q", black)
	}
	if got := eng.Draw(nil, domain.White); got != "" {
		t.Fatalf("nil position drew %q", got)
	}
}

func TestExportRoundTrip(t *testing.T) {
	eng := Standard{}
	pos, err := eng.Import(StartFEN)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got := eng.Export(pos); got != StartFEN {
		t.Fatalf("Export = %q, want %q", got, StartFEN)
	}
}

func TestOpeningName(t *testing.T) {
	eng := Standard{}
	pos, _ := play(t, eng, eng.StartPosition(), "e2e4", "e7e5", "g1f3", "b8c6", "f1b5")
	code, title := eng.Opening(pos)
	if code == "" || title == "" {
		t.Fatalf("expected an ECO label for the Ruy Lopez, got %q %q", code, title)
	}
}
