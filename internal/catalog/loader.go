package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/codekitchen/internal/challenge"
)

//go:embed challenges.yaml
var builtinYAML []byte

// File is the YAML layout of a catalog document.
type File struct {
	Version    int             `yaml:"version"`
	Generate   bool            `yaml:"generate"`
	Challenges []ChallengeFile `yaml:"challenges"`
}

// ChallengeFile is one challenge entry of a catalog document.
type ChallengeFile struct {
	ID            string      `yaml:"id"`
	Title         string      `yaml:"title"`
	Description   string      `yaml:"description"`
	Difficulty    string      `yaml:"difficulty"`
	EstimatedTime string      `yaml:"estimated_time"`
	Concept       string      `yaml:"concept"`
	Level         int         `yaml:"level"`
	Reward        int         `yaml:"reward"`
	Instruction   string      `yaml:"instruction"`
	Blocks        []BlockFile `yaml:"blocks"`
	Order         []string    `yaml:"order"`
	Output        string      `yaml:"output"`
	Hints         []string    `yaml:"hints"`
	Explanation   string      `yaml:"explanation"`
}

// BlockFile is one code block of a challenge entry.
type BlockFile struct {
	ID      string `yaml:"id"`
	Type    string `yaml:"type"`
	Content string `yaml:"content"`
}

// Parse validates and decodes a catalog document. When the document asks
// for procedural entries they are merged in by level; hand-written entries
// keep their authored order.
func Parse(data []byte) ([]challenge.Challenge, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	defs := make([]challenge.Challenge, 0, len(f.Challenges))
	for _, cf := range f.Challenges {
		defs = append(defs, cf.toChallenge())
	}
	if f.Generate {
		defs = mergeByLevel(defs, Generate(idSet(defs)))
	}
	return defs, nil
}

// LoadFile reads and parses the catalog document at path.
func LoadFile(path string) ([]challenge.Challenge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Builtin returns the embedded catalog definitions.
func Builtin() ([]challenge.Challenge, error) {
	return Parse(builtinYAML)
}

func (cf ChallengeFile) toChallenge() challenge.Challenge {
	diff, _ := challenge.ParseDifficulty(cf.Difficulty)
	ch := challenge.Challenge{
		ID:                 cf.ID,
		Title:              cf.Title,
		Description:        cf.Description,
		Difficulty:         diff,
		EstimatedTime:      cf.EstimatedTime,
		Instruction:        cf.Instruction,
		Blocks:             make([]challenge.CodeBlock, len(cf.Blocks)),
		CanonicalOrder:     append([]string(nil), cf.Order...),
		ExpectedOutput:     cf.Output,
		Hints:              append([]string(nil), cf.Hints...),
		CoinsReward:        cf.Reward,
		Concept:            cf.Concept,
		ConceptExplanation: cf.Explanation,
		DifficultyLevel:    cf.Level,
	}
	for i, b := range cf.Blocks {
		ch.Blocks[i] = challenge.CodeBlock{
			ID:      b.ID,
			Content: b.Content,
			Type:    challenge.BlockType(b.Type),
		}
	}
	return ch
}

func idSet(defs []challenge.Challenge) map[string]bool {
	ids := make(map[string]bool, len(defs))
	for _, d := range defs {
		ids[d.ID] = true
	}
	return ids
}

// mergeByLevel interleaves generated entries into the authored list. A
// generated entry goes before the first authored entry with a higher level.
func mergeByLevel(authored, generated []challenge.Challenge) []challenge.Challenge {
	out := make([]challenge.Challenge, 0, len(authored)+len(generated))
	g := 0
	for _, a := range authored {
		for g < len(generated) && generated[g].DifficultyLevel < a.DifficultyLevel {
			out = append(out, generated[g])
			g++
		}
		out = append(out, a)
	}
	return append(out, generated[g:]...)
}
