// Package scoring turns a single observation into a 0-100 quality score.
package scoring

import (
	"errors"
	"fmt"

	"github.com/julianstephens/plop/internal/models"
)

// ErrInvalidInput is returned for texture, effort or color values outside
// their documented ranges.
var ErrInvalidInput = errors.New("invalid input")

const (
	MaxScore = 100

	textureIdeal = 40
	textureNear  = 30
	textureOther = 10

	effortBase = 44
	effortStep = 4

	colorHealthy = 20
	colorGreen   = 10
	colorWarning = 0
)

// Breakdown holds the three additive components of a score
type Breakdown struct {
	Texture int
	Effort  int
	Color   int
}

// Total sums the components and clamps to MaxScore. The components top out at
// exactly 100 today, so the clamp never triggers on valid input.
func (b Breakdown) Total() int {
	return min(MaxScore, b.Texture+b.Effort+b.Color)
}

// Explain returns the per-component values for the given observation
func Explain(textureClass, effort int, color models.Color) (Breakdown, error) {
	if err := validate(textureClass, effort, color); err != nil {
		return Breakdown{}, err
	}
	return Breakdown{
		Texture: texturePoints(textureClass),
		Effort:  effortPoints(effort),
		Color:   colorPoints(color),
	}, nil
}

// Compute returns the quality score for an observation
func Compute(textureClass, effort int, color models.Color) (int, error) {
	b, err := Explain(textureClass, effort, color)
	if err != nil {
		return 0, err
	}
	return b.Total(), nil
}

func validate(textureClass, effort int, color models.Color) error {
	if textureClass < models.MinTexture || textureClass > models.MaxTexture {
		return fmt.Errorf("%w: texture class %d not in [%d,%d]", ErrInvalidInput, textureClass, models.MinTexture, models.MaxTexture)
	}
	if effort < models.MinEffort || effort > models.MaxEffort {
		return fmt.Errorf("%w: effort %d not in [%d,%d]", ErrInvalidInput, effort, models.MinEffort, models.MaxEffort)
	}
	if !color.Valid() {
		return fmt.Errorf("%w: unknown color %q", ErrInvalidInput, color)
	}
	return nil
}

func texturePoints(class int) int {
	switch class {
	case 4:
		return textureIdeal
	case 3, 5:
		return textureNear
	default:
		return textureOther
	}
}

// effortPoints is inverse: 1 (easy) -> 40, 10 (hard) -> 4
func effortPoints(effort int) int {
	return max(0, effortBase-effort*effortStep)
}

func colorPoints(c models.Color) int {
	switch c {
	case models.ColorBrown, models.ColorLight:
		return colorHealthy
	case models.ColorGreen:
		return colorGreen
	default:
		return colorWarning
	}
}
