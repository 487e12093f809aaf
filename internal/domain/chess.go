package domain

import (
	"fmt"
	"strings"
)

// Side identifies the player owning a piece or holding the move.
type Side int

const (
	White Side = iota
	Black
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	default:
		return White, fmt.Errorf("unknown side %q", raw)
	}
}

type PieceKind int

const (
	NoPieceKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Letter returns the lowercase piece letter used by UCI promotion suffixes.
func (k PieceKind) Letter() string {
	switch k {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return ""
	}
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

func ParsePieceKind(raw string) (PieceKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return NoPieceKind, nil
	case "p", "pawn":
		return Pawn, nil
	case "n", "knight":
		return Knight, nil
	case "b", "bishop":
		return Bishop, nil
	case "r", "rook":
		return Rook, nil
	case "q", "queen":
		return Queen, nil
	case "k", "king":
		return King, nil
	default:
		return NoPieceKind, fmt.Errorf("unknown piece kind %q", raw)
	}
}

type Piece struct {
	Kind PieceKind
	Side Side
}

// Square indexes the board from a1 (0) to h8 (63), file-major within a rank.
type Square int

const NoSquare Square = -1

func NewSquare(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}

func (s Square) File() int { return int(s) % 8 }
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) Valid() bool { return s >= 0 && s < 64 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

func ParseSquare(raw string) (Square, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if len(v) != 2 || v[0] < 'a' || v[0] > 'h' || v[1] < '1' || v[1] > '8' {
		return NoSquare, fmt.Errorf("invalid square %q", raw)
	}
	return NewSquare(int(v[0]-'a'), int(v[1]-'1')), nil
}

// Move is produced by the rules engine and is not mutated afterwards.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
	Color     Side
	Captured  PieceKind
	SAN       string
}

func (m Move) UCI() string {
	return m.From.String() + m.To.String() + m.Promotion.Letter()
}

func (m Move) IsCapture() bool { return m.Captured != NoPieceKind }

// Same reports whether both moves describe the same from/to/promotion triple.
func (m Move) Same(other Move) bool {
	return m.From == other.From && m.To == other.To && m.Promotion == other.Promotion
}

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "medium"
	}
}

func ParseDifficulty(raw string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy", "1":
		return Easy, nil
	case "medium", "2":
		return Medium, nil
	case "hard", "3":
		return Hard, nil
	default:
		return Medium, fmt.Errorf("unknown difficulty %q", raw)
	}
}

// Status is the terminal classification of a position.
type Status int

const (
	InProgress Status = iota
	Checkmate
	Stalemate
	Draw
)

func (s Status) Terminal() bool { return s != InProgress }

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}
