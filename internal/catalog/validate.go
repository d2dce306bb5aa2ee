package catalog

import (
	"fmt"
	"strings"

	"github.com/abhisek/codekitchen/internal/challenge"
)

// validateChallenges performs the structural checks on a definition set.
// Returns a combined error describing all problems found, or nil if valid.
func validateChallenges(defs []challenge.Challenge) error {
	var errs []string

	if len(defs) == 0 {
		errs = append(errs, "catalog has no challenges")
	}

	idSet := make(map[string]bool, len(defs))
	for _, c := range defs {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("challenge %q has an empty id", c.Title))
			continue
		}
		if idSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate challenge ID: %q", c.ID))
		}
		idSet[c.ID] = true
	}

	for _, c := range defs {
		prefix := fmt.Sprintf("challenge %q", c.ID)

		blockSet := make(map[string]bool, len(c.Blocks))
		for _, b := range c.Blocks {
			if blockSet[b.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate block ID %q", prefix, b.ID))
			}
			blockSet[b.ID] = true
			if b.Type != challenge.BlockCode && b.Type != challenge.BlockComment {
				errs = append(errs, fmt.Sprintf("%s: block %q has unknown type %q", prefix, b.ID, b.Type))
			}
		}

		// Canonical order must be a bijection onto the block ids.
		if len(c.CanonicalOrder) != len(c.Blocks) {
			errs = append(errs, fmt.Sprintf("%s: canonical order has %d entries for %d blocks",
				prefix, len(c.CanonicalOrder), len(c.Blocks)))
		}
		seen := make(map[string]bool, len(c.CanonicalOrder))
		for _, id := range c.CanonicalOrder {
			if !blockSet[id] {
				errs = append(errs, fmt.Sprintf("%s: canonical order references unknown block %q", prefix, id))
			}
			if seen[id] {
				errs = append(errs, fmt.Sprintf("%s: canonical order repeats block %q", prefix, id))
			}
			seen[id] = true
		}

		if c.CoinsReward < 0 {
			errs = append(errs, fmt.Sprintf("%s: CoinsReward must be >= 0, got %d", prefix, c.CoinsReward))
		}
		if c.Difficulty == "" {
			errs = append(errs, fmt.Sprintf("%s: missing difficulty", prefix))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(errs, "\n  "))
	}
	return nil
}
