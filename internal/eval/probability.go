package eval

import (
	"math"

	"github.com/park285/chesscore/internal/domain"
	"github.com/park285/chesscore/internal/rules"
)

// Probability is a percentage split; White+Black is always 100.
type Probability struct {
	White int `json:"white"`
	Black int `json:"black"`
}

var even = Probability{White: 50, Black: 50}

type WinProbability struct {
	engine    rules.Engine
	evaluator *Evaluator
}

func NewWinProbability(engine rules.Engine, evaluator *Evaluator) *WinProbability {
	if evaluator == nil {
		evaluator = New(engine)
	}
	return &WinProbability{engine: engine, evaluator: evaluator}
}

func (w *WinProbability) Estimate(pos rules.Position) Probability {
	switch w.engine.Status(pos) {
	case domain.Checkmate:
		if pos.Turn() == domain.White {
			return Probability{White: 0, Black: 100}
		}
		return Probability{White: 100, Black: 0}
	case domain.Stalemate, domain.Draw:
		return even
	}
	return EstimateScore(w.evaluator.Material(pos))
}

// EstimateScore maps a centipawn score through a logistic curve with scale 400.
func EstimateScore(score int) Probability {
	white := int(math.Round(100 / (1 + math.Pow(10, -float64(score)/400))))
	return Probability{White: white, Black: 100 - white}
}
