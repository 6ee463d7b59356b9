// Package achievements holds the fixed achievement catalog and decides which
// achievements a log history unlocks.
package achievements

// ID identifies an achievement in the catalog
type ID string

const (
	FirstDrop ID = "first_drop"
	Streak7   ID = "streak_7"
)

// StreakLength is the number of consecutive calendar days streak_7 requires
const StreakLength = 7

// Definition is the display data for an achievement
type Definition struct {
	ID          ID
	Icon        string
	Title       string
	Description string
}

var catalog = []Definition{
	{ID: FirstDrop, Icon: "🥇", Title: "黄金开局", Description: "完成第一次排便记录"},
	{ID: Streak7, Icon: "🏆", Title: "肠道劳模", Description: "连续七天坚持打卡"},
}

// Catalog returns every definition in display order
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the definition for id
func Lookup(id ID) (Definition, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Known reports whether id is in the catalog
func Known(id ID) bool {
	_, ok := Lookup(id)
	return ok
}

func catalogIndex(id ID) int {
	for i, d := range catalog {
		if d.ID == id {
			return i
		}
	}
	return len(catalog)
}
