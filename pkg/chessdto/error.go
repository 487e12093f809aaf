package chessdto

// Error codes carried by DomainError.
const (
	CodeInvalidMove     = "invalid_move"
	CodeIllegalMove     = "illegal_move"
	CodeGameOver        = "game_over"
	CodeInvalidPosition = "invalid_position"
	CodeNothingToUndo   = "nothing_to_undo"
	CodeEngineTimeout   = "engine_timeout"
	CodeReplyPending    = "reply_pending"
	CodeInvalidArgument = "invalid_argument"
	CodeInternal        = "internal"
)

type DomainError struct {
	Code      string
	Message   string
	Retryable bool
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "chess core error"
}
