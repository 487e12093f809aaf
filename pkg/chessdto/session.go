package chessdto

// MaterialScore sums the pieces still on the board (pawn 1, minor 3, rook 5, queen 9).
type MaterialScore struct {
	White int
	Black int
}

func (m MaterialScore) Diff() int { return m.White - m.Black }

// CapturedPieces lists lost pieces per owner, oldest first.
type CapturedPieces struct {
	White []string
	Black []string
}

func (c CapturedPieces) IsEmpty() bool { return len(c.White) == 0 && len(c.Black) == 0 }

type WinProbability struct {
	White int
	Black int
}

type SessionState struct {
	SessionUUID    string
	Difficulty     string
	PlayerColor    string
	Turn           string
	FEN            string
	MovesSAN       []string
	MovesUCI       []string
	MoveCount      int
	InCheck        bool
	Status         string
	Outcome        string
	Finished       bool
	Material       MaterialScore
	Captured       CapturedPieces
	WinProbability WinProbability
	OpeningCode    string
	OpeningName    string
}
