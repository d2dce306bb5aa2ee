package progression

import (
	"github.com/abhisek/codekitchen/internal/challenge"
	"github.com/abhisek/codekitchen/internal/session"
)

// View is a snapshot of the active session for presentation.
type View struct {
	Handle      string               `json:"handle"`
	ChallengeID string               `json:"challengeId"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Instruction string               `json:"instruction"`
	Difficulty  challenge.Difficulty `json:"difficulty"`
	Concept     string               `json:"concept"`
	Reward      int                  `json:"coinsReward"`

	Blocks           []challenge.CodeBlock `json:"blocks"`
	CorrectPositions []int                 `json:"correctPositions"`
	Hints            []HintView            `json:"hints"`
	HintCost         int                   `json:"hintCost"`

	State          string          `json:"state"`
	Outcome        session.Outcome `json:"outcome"`
	Output         string          `json:"output"`
	HintsExhausted bool            `json:"hintsExhausted"`
	Solved         bool            `json:"solved"`
	AwaitingAck    bool            `json:"awaitingAck"`

	Moves   int `json:"moves"`
	Checks  int `json:"checks"`
	Balance int `json:"balance"`
}

// IsCorrectAt reports whether block i sits in its canonical position.
func (v View) IsCorrectAt(i int) bool {
	for _, p := range v.CorrectPositions {
		if p == i {
			return true
		}
	}
	return false
}

// HintView is one hint slot. Text is only filled in once purchased.
type HintView struct {
	Index     int    `json:"index"`
	Purchased bool   `json:"purchased"`
	Text      string `json:"text,omitempty"`
}

// ConceptView is the concept help offered after a learner has bought
// every hint and still failed a check.
type ConceptView struct {
	Available   bool   `json:"available"`
	Concept     string `json:"concept,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// WalletView summarizes the learner's coins and catalog progress.
type WalletView struct {
	Balance     int `json:"balance"`
	TotalEarned int `json:"totalEarned"`
	TotalSpent  int `json:"totalSpent"`
	HintCost    int `json:"hintCost"`
	Completed   int `json:"completed"`
	Challenges  int `json:"challenges"`
}

// Acknowledgement is published when the celebration delay after a solve
// has elapsed and the session has been discarded.
type Acknowledgement struct {
	Handle      string `json:"handle"`
	ChallengeID string `json:"challengeId"`
	Title       string `json:"title"`
	Reward      int    `json:"coinsReward"`
	NextID      string `json:"nextId,omitempty"`
}

func buildView(a *active, hintCost, balance int) View {
	s := a.sess
	ch := s.Challenge()

	hints := make([]HintView, len(ch.Hints))
	for i, text := range ch.Hints {
		hints[i] = HintView{Index: i}
		if s.HasHint(i) {
			hints[i].Purchased = true
			hints[i].Text = text
		}
	}

	return View{
		Handle:           a.handle,
		ChallengeID:      ch.ID,
		Title:            ch.Title,
		Description:      ch.Description,
		Instruction:      ch.Instruction,
		Difficulty:       ch.Difficulty,
		Concept:          ch.Concept,
		Reward:           ch.CoinsReward,
		Blocks:           s.Blocks(),
		CorrectPositions: s.CorrectPositions(),
		Hints:            hints,
		HintCost:         hintCost,
		State:            s.State().String(),
		Outcome:          s.Outcome(),
		Output:           s.Output(),
		HintsExhausted:   s.HintsExhausted(),
		Solved:           s.Solved(),
		AwaitingAck:      a.timer != nil,
		Moves:            s.Moves(),
		Checks:           s.Checks(),
		Balance:          balance,
	}
}
