package rules

import (
	"fmt"
	"strings"
	"sync"

	nchess "github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"

	"github.com/park285/chesscore/internal/domain"
)

// Standard implements Engine on top of corentings/chess. Each position owns
// its own *chess.Game, so the library's draw bookkeeping (repetition, move
// rules, insufficient material) follows the line that produced it.
type Standard struct{}

var (
	_ Engine       = Standard{}
	_ OpeningNamer = Standard{}
	_ BoardDrawer  = Standard{}
)

type position struct {
	game *nchess.Game
}

func (p *position) Turn() domain.Side { return sideFrom(p.game.Position().Turn()) }
func (p *position) FEN() string       { return p.game.FEN() }

func asPosition(pos Position) *position {
	p, ok := pos.(*position)
	if !ok || p == nil || p.game == nil {
		return nil
	}
	return p
}

func (Standard) StartPosition() Position {
	return &position{game: nchess.NewGame()}
}

func (s Standard) Import(serialized string) (Position, error) {
	raw := strings.TrimSpace(serialized)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidPosition)
	}
	if raw == "startpos" {
		return s.StartPosition(), nil
	}
	opt, err := nchess.FEN(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	game := nchess.NewGame(opt)
	if err := validateBoard(game.Position()); err != nil {
		return nil, err
	}
	return &position{game: game}, nil
}

func (Standard) Export(pos Position) string {
	p := asPosition(pos)
	if p == nil {
		return ""
	}
	return p.game.FEN()
}

// Clone returns a working copy that shares no mutable state with pos.
func (Standard) Clone(pos Position) Position {
	p := asPosition(pos)
	if p == nil {
		return pos
	}
	return &position{game: p.game.Clone()}
}

func (Standard) LegalMoves(pos Position) []domain.Move {
	p := asPosition(pos)
	if p == nil {
		return nil
	}
	src := p.game.Position()
	board := src.Board()
	mover := sideFrom(src.Turn())
	valid := p.game.ValidMoves()
	out := make([]domain.Move, 0, len(valid))
	for i := range valid {
		mv := valid[i]
		from := squareFrom(mv.S1())
		to := squareFrom(mv.S2())
		out = append(out, domain.Move{
			From:      from,
			To:        to,
			Promotion: kindFrom(mv.Promo()),
			Color:     mover,
			Captured:  capturedKind(board, from, to),
		})
	}
	return out
}

func (s Standard) LegalMovesFrom(pos Position, from domain.Square) []domain.Move {
	all := s.LegalMoves(pos)
	out := make([]domain.Move, 0, 8)
	for _, mv := range all {
		if mv.From == from {
			out = append(out, mv)
		}
	}
	return out
}

func (Standard) Apply(pos Position, mv domain.Move) (Position, domain.Move, error) {
	p := asPosition(pos)
	if p == nil {
		return nil, domain.Move{}, fmt.Errorf("%w: unknown position type", ErrIllegalMove)
	}
	if !mv.From.Valid() || !mv.To.Valid() {
		return nil, domain.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, mv.UCI())
	}
	src := p.game.Position()
	decoded, err := nchess.UCINotation{}.Decode(src, mv.UCI())
	if err != nil {
		return nil, domain.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, mv.UCI())
	}
	next := p.game.Clone()
	if err := next.Move(decoded, nil); err != nil {
		return nil, domain.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, mv.UCI())
	}
	played := decoded
	if moves := next.Moves(); len(moves) > 0 {
		played = moves[len(moves)-1]
	}
	applied := domain.Move{
		From:      mv.From,
		To:        mv.To,
		Promotion: kindFrom(played.Promo()),
		Color:     sideFrom(src.Turn()),
		Captured:  capturedKind(src.Board(), mv.From, mv.To),
		SAN:       nchess.AlgebraicNotation{}.Encode(src, played),
	}
	return &position{game: next}, applied, nil
}

func (Standard) PieceAt(pos Position, sq domain.Square) (domain.Piece, bool) {
	p := asPosition(pos)
	if p == nil || !sq.Valid() {
		return domain.Piece{}, false
	}
	pc := p.game.Position().Board().Piece(squareTo(sq))
	if pc == nchess.NoPiece {
		return domain.Piece{}, false
	}
	return domain.Piece{Kind: kindFrom(pc.Type()), Side: sideFrom(pc.Color())}, true
}

func (Standard) InCheck(pos Position) bool {
	p := asPosition(pos)
	if p == nil {
		return false
	}
	return inCheck(p.game.Position())
}

func (Standard) Status(pos Position) domain.Status {
	p := asPosition(pos)
	if p == nil {
		return domain.InProgress
	}
	switch p.game.Outcome() {
	case nchess.WhiteWon, nchess.BlackWon:
		if p.game.Method() == nchess.Checkmate {
			return domain.Checkmate
		}
	case nchess.Draw:
		if p.game.Method() == nchess.Stalemate {
			return domain.Stalemate
		}
		return domain.Draw
	}
	// positions imported from FEN may not carry a computed outcome yet
	if len(p.game.ValidMoves()) == 0 {
		if inCheck(p.game.Position()) {
			return domain.Checkmate
		}
		return domain.Stalemate
	}
	return domain.InProgress
}

var (
	ecoOnce sync.Once
	ecoBook *opening.BookECO
)

func (Standard) Opening(pos Position) (string, string) {
	p := asPosition(pos)
	if p == nil {
		return "", ""
	}
	ecoOnce.Do(func() { ecoBook = opening.NewBookECO() })
	if ecoBook == nil {
		return "", ""
	}
	if eco := ecoBook.Find(p.game.Moves()); eco != nil {
		return eco.Code(), eco.Title()
	}
	return "", ""
}

// Draw prints the board with the library's unicode glyphs, perspective's
// back rank at the bottom.
func (Standard) Draw(pos Position, perspective domain.Side) string {
	p := asPosition(pos)
	if p == nil {
		return ""
	}
	return strings.Trim(p.game.Position().Board().Draw2(colorTo(perspective), false), "\n")
}

// castleHomes lists the squares each castling flag depends on.
var castleHomes = []struct {
	color nchess.Color
	side  nchess.Side
	king  nchess.Square
	rook  nchess.Square
	flag  string
}{
	{nchess.White, nchess.KingSide, nchess.E1, nchess.H1, "K"},
	{nchess.White, nchess.QueenSide, nchess.E1, nchess.A1, "Q"},
	{nchess.Black, nchess.KingSide, nchess.E8, nchess.H8, "k"},
	{nchess.Black, nchess.QueenSide, nchess.E8, nchess.A8, "q"},
}

func validateBoard(pos *nchess.Position) error {
	if pos == nil {
		return fmt.Errorf("%w: no position", ErrInvalidPosition)
	}
	board := pos.Board()
	kings := map[nchess.Color]int{}
	for sq := domain.Square(0); sq < 64; sq++ {
		pc := board.Piece(squareTo(sq))
		if pc == nchess.NoPiece {
			continue
		}
		switch pc.Type() {
		case nchess.King:
			kings[pc.Color()]++
		case nchess.Pawn:
			if sq.Rank() == 0 || sq.Rank() == 7 {
				return fmt.Errorf("%w: pawn on %s", ErrInvalidPosition, sq)
			}
		}
	}
	if kings[nchess.White] != 1 || kings[nchess.Black] != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidPosition)
	}
	rights := pos.CastleRights()
	for _, home := range castleHomes {
		if !rights.CanCastle(home.color, home.side) {
			continue
		}
		king := board.Piece(home.king)
		rook := board.Piece(home.rook)
		if king == nchess.NoPiece || king.Type() != nchess.King || king.Color() != home.color ||
			rook == nchess.NoPiece || rook.Type() != nchess.Rook || rook.Color() != home.color {
			return fmt.Errorf("%w: castling right %s without king and rook at home", ErrInvalidPosition, home.flag)
		}
	}
	waiting := nchess.Black
	if pos.Turn() == nchess.Black {
		waiting = nchess.White
	}
	if kingAttacked(board, waiting) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidPosition)
	}
	return nil
}

func capturedKind(board *nchess.Board, from, to domain.Square) domain.PieceKind {
	if victim := board.Piece(squareTo(to)); victim != nchess.NoPiece {
		return kindFrom(victim.Type())
	}
	mover := board.Piece(squareTo(from))
	if mover != nchess.NoPiece && mover.Type() == nchess.Pawn && from.File() != to.File() {
		// en passant: the diagonal target square is empty
		return domain.Pawn
	}
	return domain.NoPieceKind
}

func squareTo(sq domain.Square) nchess.Square {
	return nchess.NewSquare(nchess.File(sq.File()), nchess.Rank(sq.Rank()))
}

func squareFrom(sq nchess.Square) domain.Square {
	return domain.NewSquare(int(sq.File()), int(sq.Rank()))
}

func sideFrom(c nchess.Color) domain.Side {
	if c == nchess.Black {
		return domain.Black
	}
	return domain.White
}

func colorTo(s domain.Side) nchess.Color {
	if s == domain.Black {
		return nchess.Black
	}
	return nchess.White
}

func kindFrom(pt nchess.PieceType) domain.PieceKind {
	switch pt {
	case nchess.Pawn:
		return domain.Pawn
	case nchess.Knight:
		return domain.Knight
	case nchess.Bishop:
		return domain.Bishop
	case nchess.Rook:
		return domain.Rook
	case nchess.Queen:
		return domain.Queen
	case nchess.King:
		return domain.King
	default:
		return domain.NoPieceKind
	}
}
