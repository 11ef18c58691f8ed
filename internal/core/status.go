package core

// Status classifies a position for the side to move. It is recomputed
// after every applied move, never stored apart from the board it
// describes.
type Status int

const (
	StatusInProgress Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

func (s Status) String() string {
	switch s {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	default:
		return "in_progress"
	}
}

// Terminal reports whether the game permits further play.
func (s Status) Terminal() bool {
	return s == StatusCheckmate || s == StatusStalemate
}
