package session

// State is the position of a session in its attempt lifecycle.
type State int

const (
	StateShuffled  State = iota // Blocks shuffled, learner arranging
	StateChecking               // Validation in progress
	StateCorrect                // Solved; terminal until reset or acknowledgment
	StateIncorrect              // Last check failed
)

func (s State) String() string {
	switch s {
	case StateShuffled:
		return "shuffled"
	case StateChecking:
		return "checking"
	case StateCorrect:
		return "correct"
	case StateIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Outcome is the result of the most recent check.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeCorrect   Outcome = "correct"
	OutcomeIncorrect Outcome = "incorrect"
)

// CheckResult is what a learner sees after checking a solution.
type CheckResult struct {
	Outcome           Outcome `json:"outcome"`
	Output            string  `json:"output"`
	MatchingPositions []int   `json:"matchingPositions"`
	HintsExhausted    bool    `json:"hintsExhausted"`

	// Completed is true only for the check that first solved the
	// challenge. Repeated checks of a solved session report false.
	Completed bool `json:"completed"`
}
