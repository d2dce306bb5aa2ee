package challenge

import "strings"

// BlockType distinguishes executable lines from commentary.
type BlockType string

const (
	BlockCode    BlockType = "code"
	BlockComment BlockType = "comment"
)

// Difficulty is the tier a challenge belongs to.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// AllDifficulties returns all tiers in display order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced}
}

// DisplayName returns a human-readable label for the tier.
func (d Difficulty) DisplayName() string {
	switch d {
	case Beginner:
		return "Beginner"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	default:
		return string(d)
	}
}

// Icon returns the display icon for the tier.
func (d Difficulty) Icon() string {
	switch d {
	case Beginner:
		return "🥄"
	case Intermediate:
		return "🍳"
	case Advanced:
		return "👨‍🍳"
	default:
		return "•"
	}
}

// ParseDifficulty maps a case-insensitive tier name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range AllDifficulties() {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// CodeBlock is one draggable fragment of a challenge.
type CodeBlock struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Type    BlockType `json:"type"`
}

// Challenge is a single reorder exercise. Locked and Completed are
// populated by the catalog when a copy is handed out; the definition
// itself never changes.
type Challenge struct {
	ID                 string
	Title              string
	Description        string
	Difficulty         Difficulty
	EstimatedTime      string
	Instruction        string
	Blocks             []CodeBlock
	CanonicalOrder     []string
	ExpectedOutput     string
	Hints              []string
	CoinsReward        int
	Concept            string
	ConceptExplanation string
	DifficultyLevel    int

	Locked    bool
	Completed bool
}

// Block returns the block with the given id.
func (c *Challenge) Block(id string) (CodeBlock, bool) {
	for _, b := range c.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return CodeBlock{}, false
}

// BlockIDs returns the block ids in definition order.
func (c *Challenge) BlockIDs() []string {
	ids := make([]string, len(c.Blocks))
	for i, b := range c.Blocks {
		ids[i] = b.ID
	}
	return ids
}

// Clone returns a deep copy so callers cannot mutate catalog-owned slices.
func (c Challenge) Clone() Challenge {
	c.Blocks = append([]CodeBlock(nil), c.Blocks...)
	c.CanonicalOrder = append([]string(nil), c.CanonicalOrder...)
	c.Hints = append([]string(nil), c.Hints...)
	return c
}

// Summary is the catalog listing view of a challenge.
type Summary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Difficulty    Difficulty `json:"difficulty"`
	EstimatedTime string     `json:"estimatedTime"`
	Concept       string     `json:"concept"`
	Level         int        `json:"level"`
	CoinsReward   int        `json:"coinsReward"`
	Completed     bool       `json:"completed"`
	Locked        bool       `json:"locked"`
}

// Summarize builds the listing view of c.
func (c *Challenge) Summarize() Summary {
	return Summary{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Difficulty:    c.Difficulty,
		EstimatedTime: c.EstimatedTime,
		Concept:       c.Concept,
		Level:         c.DifficultyLevel,
		CoinsReward:   c.CoinsReward,
		Completed:     c.Completed,
		Locked:        c.Locked,
	}
}
