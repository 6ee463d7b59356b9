package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/plop/internal/achievements"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/scoring"
)

// ConflictType represents the type of integrity problem
type ConflictType string

const (
	ConflictDuplicateUserID     ConflictType = "duplicate_user_id"
	ConflictUnknownFriend       ConflictType = "unknown_friend"
	ConflictUnknownAchievement  ConflictType = "unknown_achievement"
	ConflictUnearnedNameplate   ConflictType = "unearned_nameplate"
	ConflictInvalidLog          ConflictType = "invalid_log"
	ConflictScoreMismatch       ConflictType = "score_mismatch"
	ConflictInvalidNotification ConflictType = "invalid_notification"
	ConflictSelfAddressed       ConflictType = "self_addressed"
)

// Conflict is one problem found in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	IDs         []string // records involved
}

type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Err returns nil when there are no conflicts, otherwise an error carrying the report
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	return fmt.Errorf("%d conflict(s)\n%s", len(vr.Conflicts), strings.TrimSuffix(vr.FormatReport(), "\n"))
}

func (vr *ValidationResult) add(t ConflictType, ids []string, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		IDs:         ids,
	})
}

// Validator checks stored users, logs and notifications for integrity problems
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateUsers checks ids are unique, friend lists point at known users and
// every equipped nameplate has been earned.
func (v *Validator) ValidateUsers(users []models.User) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ids := make(map[string]bool, len(users))
	for _, u := range users {
		if ids[u.ID] {
			result.add(ConflictDuplicateUserID, []string{u.ID}, "Duplicate user ID: %s", u.ID)
		}
		ids[u.ID] = true
	}

	for _, u := range users {
		for _, f := range u.Friends {
			if !ids[f] {
				result.add(ConflictUnknownFriend, []string{u.ID, f}, "User %s lists unknown friend %s", u.ID, f)
			}
		}
		for _, a := range u.Achievements {
			if !achievements.Known(achievements.ID(a)) {
				result.add(ConflictUnknownAchievement, []string{u.ID}, "User %s holds unknown achievement %q", u.ID, a)
			}
		}
		if u.SelectedAchievementID != "" && !u.HasAchievement(u.SelectedAchievementID) {
			result.add(ConflictUnearnedNameplate, []string{u.ID}, "User %s equips unearned achievement %q", u.ID, u.SelectedAchievementID)
		}
	}
	return result
}

// ValidateLogs checks every log is well formed and that its stored score
// matches what its observation scores today.
func (v *Validator) ValidateLogs(logs []models.Log) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for i := range logs {
		l := &logs[i]
		if err := l.Validate(); err != nil {
			result.add(ConflictInvalidLog, []string{l.ID}, "Log %s: %v", l.ID, err)
			continue
		}
		want, err := scoring.Compute(l.TextureClass, l.Effort, l.Color)
		if err != nil {
			result.add(ConflictInvalidLog, []string{l.ID}, "Log %s: %v", l.ID, err)
			continue
		}
		if want != l.Score {
			result.add(ConflictScoreMismatch, []string{l.ID}, "Log %s has score %d, expected %d", l.ID, l.Score, want)
		}
	}
	return result
}

func (v *Validator) ValidateNotifications(notifications []models.Notification) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, n := range notifications {
		if !n.Status.Valid() {
			result.add(ConflictInvalidNotification, []string{n.ID}, "Notification %s has invalid status %q", n.ID, n.Status)
		}
		if n.FromUserID == n.ToUserID {
			result.add(ConflictSelfAddressed, []string{n.ID}, "Notification %s is addressed to its sender", n.ID)
		}
	}
	return result
}
