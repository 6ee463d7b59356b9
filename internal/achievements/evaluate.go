package achievements

import (
	"time"

	"github.com/julianstephens/plop/internal/models"
)

// Result is the outcome of evaluating a history against a user's set
type Result struct {
	Updated       Set
	NewlyUnlocked []ID
}

// Evaluate checks every rule against the full history and returns the grown
// set along with the achievements that were not held before. The input set is
// never modified. Calendar days are taken in loc; a nil loc means time.Local.
func Evaluate(history []models.Log, current Set, loc *time.Location) Result {
	updated := current.Clone()
	var unlocked []ID

	unlock := func(id ID) {
		updated.add(id)
		unlocked = append(unlocked, id)
	}

	if !updated.Has(FirstDrop) && len(history) > 0 {
		unlock(FirstDrop)
	}

	if !updated.Has(Streak7) && HasStreak(DistinctDays(history, loc), StreakLength) {
		unlock(Streak7)
	}

	return Result{Updated: updated, NewlyUnlocked: unlocked}
}
