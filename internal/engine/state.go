package engine

// ItemState is the answered/unanswered lifecycle of one gradable item.
// Transitions: Unanswered -> Correct | Incorrect on the first submission,
// and back to Unanswered only through Session.Reset.
type ItemState int

const (
	StateUnanswered ItemState = iota
	StateCorrect
	StateIncorrect
)

func (s ItemState) String() string {
	switch s {
	case StateCorrect:
		return "correct"
	case StateIncorrect:
		return "incorrect"
	default:
		return "unanswered"
	}
}

// Answered reports whether the item is locked against further submissions.
func (s ItemState) Answered() bool {
	return s == StateCorrect || s == StateIncorrect
}
