package rules

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/park285/chesscore/internal/domain"
)

var (
	knightSteps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	rookRays    = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopRays  = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func inCheck(pos *nchess.Position) bool {
	if pos == nil {
		return false
	}
	return kingAttacked(pos.Board(), pos.Turn())
}

// kingAttacked reports whether the king of side is attacked by the other side.
func kingAttacked(board *nchess.Board, side nchess.Color) bool {
	king, ok := findKing(board, sideFrom(side))
	if !ok {
		return false
	}
	by := colorTo(sideFrom(side).Opponent())
	return squareAttacked(board, king, by)
}

func findKing(board *nchess.Board, side domain.Side) (domain.Square, bool) {
	want := colorTo(side)
	for sq := domain.Square(0); sq < 64; sq++ {
		pc := board.Piece(squareTo(sq))
		if pc != nchess.NoPiece && pc.Type() == nchess.King && pc.Color() == want {
			return sq, true
		}
	}
	return domain.NoSquare, false
}

func squareAttacked(board *nchess.Board, target domain.Square, by nchess.Color) bool {
	tf, tr := target.File(), target.Rank()

	at := func(f, r int) nchess.Piece {
		if f < 0 || f > 7 || r < 0 || r > 7 {
			return nchess.NoPiece
		}
		return board.Piece(nchess.NewSquare(nchess.File(f), nchess.Rank(r)))
	}
	owned := func(pc nchess.Piece, kinds ...nchess.PieceType) bool {
		if pc == nchess.NoPiece || pc.Color() != by {
			return false
		}
		for _, k := range kinds {
			if pc.Type() == k {
				return true
			}
		}
		return false
	}

	// pawns attack toward the opponent, so look one rank behind the target
	pawnRank := tr - 1
	if by == nchess.Black {
		pawnRank = tr + 1
	}
	if owned(at(tf-1, pawnRank), nchess.Pawn) || owned(at(tf+1, pawnRank), nchess.Pawn) {
		return true
	}
	for _, d := range knightSteps {
		if owned(at(tf+d[0], tr+d[1]), nchess.Knight) {
			return true
		}
	}
	for _, d := range kingSteps {
		if owned(at(tf+d[0], tr+d[1]), nchess.King) {
			return true
		}
	}
	slide := func(rays [4][2]int, kinds ...nchess.PieceType) bool {
		for _, d := range rays {
			for f, r := tf+d[0], tr+d[1]; f >= 0 && f < 8 && r >= 0 && r < 8; f, r = f+d[0], r+d[1] {
				pc := at(f, r)
				if pc == nchess.NoPiece {
					continue
				}
				if owned(pc, kinds...) {
					return true
				}
				break
			}
		}
		return false
	}
	return slide(rookRays, nchess.Rook, nchess.Queen) || slide(bishopRays, nchess.Bishop, nchess.Queen)
}
