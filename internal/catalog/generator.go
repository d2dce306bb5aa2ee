package catalog

import (
	"fmt"
	"strconv"

	"github.com/abhisek/codekitchen/internal/challenge"
)

// tier describes one band of procedural challenges.
type tier struct {
	difficulty challenge.Difficulty
	first      int
	last       int
	build      func(i int) challenge.Challenge
}

var tiers = []tier{
	{challenge.Beginner, 7, 20, beginnerTask},
	{challenge.Intermediate, 22, 40, intermediateRecipe},
	{challenge.Advanced, 41, 60, masterChef},
}

// Generate returns the procedural entries of every tier, skipping ids
// present in skip. Each entry has one comment block followed by code
// blocks in a single valid order.
func Generate(skip map[string]bool) []challenge.Challenge {
	var out []challenge.Challenge
	for _, t := range tiers {
		for i := t.first; i <= t.last; i++ {
			if skip[strconv.Itoa(i)] {
				continue
			}
			ch := t.build(i)
			ch.ID = strconv.Itoa(i)
			ch.Difficulty = t.difficulty
			ch.DifficultyLevel = i
			ch.CanonicalOrder = ch.BlockIDs()
			out = append(out, ch)
		}
	}
	return out
}

// Reward returns the procedural coin reward for level i.
func Reward(i int) int {
	switch {
	case i <= 20:
		return 50 + i*5
	case i <= 40:
		return 100 + (i-20)*10
	default:
		return 200 + (i-40)*15
	}
}

// estimatedMinutes spreads estimates over the same band the tier would
// draw from, deterministically.
func estimatedMinutes(i int) int {
	switch {
	case i <= 20:
		return 6 + i%5
	case i <= 40:
		return 10 + i%8
	default:
		return 15 + i%10
	}
}

func beginnerTask(i int) challenge.Challenge {
	concept := "Variables"
	if i <= 10 {
		concept = "Output"
	}
	return challenge.Challenge{
		Title:         fmt.Sprintf("Kitchen Task %d", i),
		Description:   fmt.Sprintf("Learn basic programming concept %d", i),
		EstimatedTime: fmt.Sprintf("%d min", estimatedMinutes(i)),
		Concept:       concept,
		Instruction:   fmt.Sprintf("Complete this beginner-level coding task %d.", i),
		Blocks: []challenge.CodeBlock{
			{ID: fmt.Sprintf("task-%d-1", i), Content: fmt.Sprintf("// Task %d comment", i), Type: challenge.BlockComment},
			{ID: fmt.Sprintf("task-%d-2", i), Content: fmt.Sprintf("variable%d = %d", i, i), Type: challenge.BlockCode},
			{ID: fmt.Sprintf("task-%d-3", i), Content: fmt.Sprintf("print(\"Task %d complete\")", i), Type: challenge.BlockCode},
		},
		ExpectedOutput:     fmt.Sprintf("Task %d complete", i),
		Hints:              []string{fmt.Sprintf("Hint 1 for task %d", i), fmt.Sprintf("Hint 2 for task %d", i)},
		CoinsReward:        Reward(i),
		ConceptExplanation: fmt.Sprintf("This task teaches you about programming concept %d. Practice makes perfect!", i),
	}
}

func intermediateRecipe(i int) challenge.Challenge {
	n := i - 20
	return challenge.Challenge{
		Title:         fmt.Sprintf("Intermediate Recipe %d", n),
		Description:   "Master intermediate cooking concepts",
		EstimatedTime: fmt.Sprintf("%d min", estimatedMinutes(i)),
		Concept:       "Functions",
		Instruction:   "Solve this intermediate-level function challenge.",
		Blocks: []challenge.CodeBlock{
			{ID: fmt.Sprintf("inter-%d-1", i), Content: fmt.Sprintf("// Intermediate function %d", n), Type: challenge.BlockComment},
			{ID: fmt.Sprintf("inter-%d-2", i), Content: fmt.Sprintf("function cook%d() {", i), Type: challenge.BlockCode},
			{ID: fmt.Sprintf("inter-%d-3", i), Content: fmt.Sprintf("  return \"Cooking task %d\"", n), Type: challenge.BlockCode},
			{ID: fmt.Sprintf("inter-%d-4", i), Content: "}", Type: challenge.BlockCode},
			{ID: fmt.Sprintf("inter-%d-5", i), Content: fmt.Sprintf("print(cook%d())", i), Type: challenge.BlockCode},
		},
		ExpectedOutput:     fmt.Sprintf("Cooking task %d", n),
		Hints:              []string{"Functions must be defined before calling", "Return statements provide output"},
		CoinsReward:        Reward(i),
		ConceptExplanation: "Functions with return values allow you to create reusable code that produces results.",
	}
}

func masterChef(i int) challenge.Challenge {
	n := i - 40
	return challenge.Challenge{
		Title:         fmt.Sprintf("Master Chef %d", n),
		Description:   "Advanced programming mastery",
		EstimatedTime: fmt.Sprintf("%d min", estimatedMinutes(i)),
		Concept:       "Loops",
		Instruction:   "Master this advanced loop-based challenge.",
		Blocks: []challenge.CodeBlock{
			{ID: fmt.Sprintf("adv-%d-1", i), Content: fmt.Sprintf("// Advanced loop %d", n), Type: challenge.BlockComment},
			{ID: fmt.Sprintf("adv-%d-2", i), Content: fmt.Sprintf("for (let i = 0; i < %d; i++) {", i-35), Type: challenge.BlockCode},
			{ID: fmt.Sprintf("adv-%d-3", i), Content: "  print(\"Iteration:\", i)", Type: challenge.BlockCode},
			{ID: fmt.Sprintf("adv-%d-4", i), Content: "}", Type: challenge.BlockCode},
		},
		ExpectedOutput:     "Iteration: 0\nIteration: 1\n...",
		Hints:              []string{"Loops repeat code multiple times", "Initialize counter before loop"},
		CoinsReward:        Reward(i),
		ConceptExplanation: "Loops allow you to repeat code efficiently. For loops are great when you know how many times to repeat.",
	}
}
