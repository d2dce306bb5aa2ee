package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codekitchen/internal/ui/theme"
)

// MascotVariant selects which chef art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // waiting for the next order
	MascotCelebrating                      // every dish cooked
	MascotBroke                            // cannot afford a hint
)

const mascotIdle = ` .-===-.
 |_____|
 ( ^ ^ )
  \ ▽ /
  /|{}|\`

const mascotCelebrating = ` .-===-.
 |_____|
 ( ★ ★ )
  \ ◡ / ✓
  /|{}|\`

const mascotBroke = ` .-===-.
 |_____|
 ( o o ) ?
  \ ~ /
  /|  |\`

// pickMascot chooses the variant for the learner's current state.
func pickMascot(completed, total, balance, hintCost int) MascotVariant {
	switch {
	case total > 0 && completed == total:
		return MascotCelebrating
	case balance < hintCost:
		return MascotBroke
	default:
		return MascotIdle
	}
}

// RenderMascot returns the chef art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Coin
	case MascotBroke:
		art = mascotBroke
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
