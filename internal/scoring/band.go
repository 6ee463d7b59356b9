package scoring

// Band is a coarse classification of a score used for coloring
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// BandFor classifies a score: >=80 good, >=50 fair, otherwise poor
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandGood
	case score >= 50:
		return BandFair
	default:
		return BandPoor
	}
}

// EffortLabel describes the strain level shown next to the effort slider
func EffortLabel(effort int) string {
	switch effort {
	case 1:
		return "Walk in the park"
	case 10:
		return "Fighting demons"
	default:
		return "Normal"
	}
}
