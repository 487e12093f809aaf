package chessdto

import "time"

// AssistSuggestion is a hint computed for the human side.
type AssistSuggestion struct {
	MoveUCI      string
	MoveSAN      string
	EvaluationCP int
	Depth        int
	Nodes        int
	Duration     time.Duration
}

// MoveSummary describes one turn: the player's move and, if any, the reply.
type MoveSummary struct {
	State         *SessionState
	PlayerSAN     string
	PlayerUCI     string
	EngineSAN     string
	EngineUCI     string
	EngineScore   int
	EngineLatency time.Duration
	Finished      bool
}
