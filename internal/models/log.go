package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/plop/internal/constants"
)

// Color is the observed stool color
type Color string

const (
	ColorBrown Color = "Brown"
	ColorLight Color = "Light"
	ColorGreen Color = "Green"
	ColorRed   Color = "Red"
	ColorBlack Color = "Black"
)

// Colors lists every selectable color in display order
var Colors = []Color{ColorBrown, ColorLight, ColorGreen, ColorRed, ColorBlack}

var colorHex = map[Color]string{
	ColorBrown: "#5D4037",
	ColorLight: "#8D6E63",
	ColorGreen: "#15803D",
	ColorRed:   "#B91C1C",
	ColorBlack: "#111827",
}

// Valid reports whether c is one of the enumerated colors
func (c Color) Valid() bool {
	_, ok := colorHex[c]
	return ok
}

// Hex returns the swatch color used when rendering c
func (c Color) Hex() string {
	return colorHex[c]
}

// ParseColor matches a color name case-insensitively
func ParseColor(s string) (Color, error) {
	for _, c := range Colors {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid color %q (expected one of Brown, Light, Green, Red, Black)", s)
}

const (
	MinTexture = 1
	MaxTexture = 7
	MinEffort  = 1
	MaxEffort  = 10
)

// BristolType describes one class of the Bristol stool scale
type BristolType struct {
	Class int
	Emoji string
	Label string
}

var bristolScale = [...]BristolType{
	{1, "🌑", "Hard Rocks"},
	{2, "🍇", "Lumpy Log"},
	{3, "🌽", "Cracked Log"},
	{4, "🐍", "Perfect Snake"},
	{5, "🍦", "Soft Blobs"},
	{6, "🥣", "Mushy"},
	{7, "🌊", "Waterfall"},
}

// Bristol returns the catalog entry for a texture class. Unknown classes
// get the generic poop emoji and an empty label.
func Bristol(class int) BristolType {
	if class < MinTexture || class > MaxTexture {
		return BristolType{Class: class, Emoji: "💩"}
	}
	return bristolScale[class-1]
}

// BristolScale returns all texture classes in order
func BristolScale() []BristolType {
	return bristolScale[:]
}

// Log is a single recorded observation. Logs are immutable once saved.
type Log struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	Date            time.Time  `json:"date"`
	DurationSeconds int        `json:"duration_seconds"`
	Score           int        `json:"score"`
	TextureClass    int        `json:"bristol_type"`
	Effort          int        `json:"effort"`
	Color           Color      `json:"color"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// Duration renders the timing session as MM:SS
func (l Log) Duration() string {
	return FormatDuration(l.DurationSeconds)
}

// Validate checks the log against the observation ranges
func (l *Log) Validate() error {
	if l.UserID == "" {
		return fmt.Errorf("log user cannot be empty")
	}
	if l.TextureClass < MinTexture || l.TextureClass > MaxTexture {
		return fmt.Errorf("texture class %d out of range [%d,%d]", l.TextureClass, MinTexture, MaxTexture)
	}
	if l.Effort < MinEffort || l.Effort > MaxEffort {
		return fmt.Errorf("effort %d out of range [%d,%d]", l.Effort, MinEffort, MaxEffort)
	}
	if !l.Color.Valid() {
		return fmt.Errorf("invalid color %q", l.Color)
	}
	if l.Score < 0 || l.Score > 100 {
		return fmt.Errorf("score %d out of range [0,100]", l.Score)
	}
	if l.DurationSeconds < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if l.Date.IsZero() {
		return fmt.Errorf("log date cannot be empty")
	}
	return nil
}

// FormatDuration renders seconds as MM:SS. Minutes are not wrapped at 60.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf(constants.DurationFormat, seconds/60, seconds%60)
}

// ParseDuration accepts either MM:SS or a plain number of seconds
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return 0, fmt.Errorf("invalid duration %q (expected MM:SS)", s)
		}
		m, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q (expected MM:SS): %w", s, err)
		}
		sec, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q (expected MM:SS): %w", s, err)
		}
		if m < 0 || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid duration %q (expected MM:SS)", s)
		}
		return m*60 + sec, nil
	}
	sec, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if sec < 0 {
		return 0, fmt.Errorf("duration cannot be negative")
	}
	return sec, nil
}
