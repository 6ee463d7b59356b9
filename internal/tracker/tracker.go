// Package tracker records observations and keeps achievements and leaderboard
// snapshots in step with a user's history.
package tracker

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/plop/internal/achievements"
	"github.com/julianstephens/plop/internal/leaderboard"
	"github.com/julianstephens/plop/internal/logger"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/scoring"
	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/utils"
)

// ErrProfileNotUpdated means the log was stored but the user's achievements
// and snapshot were not. The next Record re-evaluates the full history.
var ErrProfileNotUpdated = errors.New("log saved but profile not updated")

// Notifier delivers unlock announcements. *notifier.Notifier satisfies it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Observation struct {
	TextureClass    int
	Effort          int
	Color           models.Color
	DurationSeconds int
	At              time.Time // zero means now
}

type Outcome struct {
	Log           models.Log
	Breakdown     scoring.Breakdown
	NewlyUnlocked []achievements.Definition
}

type Service struct {
	store    storage.Provider
	notifier Notifier
	now      func() time.Time
	loc      *time.Location
}

// New creates a tracker. notifier may be nil.
func New(store storage.Provider, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock replaces the service clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithLocation pins the timezone used for calendar days instead of the
// timezone setting
func (s *Service) WithLocation(loc *time.Location) *Service {
	s.loc = loc
	return s
}

func (s *Service) location(settings models.Settings) *time.Location {
	if s.loc != nil {
		return s.loc
	}
	return utils.LocationFromSettings(settings)
}

// Record scores the observation, stores it, and re-evaluates achievements
// against the full history. Everything is read before the log is inserted. When
// only the user update fails the stored log is returned with ErrProfileNotUpdated.
func (s *Service) Record(ctx context.Context, userID string, obs Observation) (Outcome, error) {
	breakdown, err := scoring.Explain(obs.TextureClass, obs.Effort, obs.Color)
	if err != nil {
		return Outcome{}, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return Outcome{}, err
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to get settings: %w", err)
	}

	now := s.now()
	at := obs.At
	if at.IsZero() {
		at = now
	}
	log := models.Log{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            at,
		DurationSeconds: obs.DurationSeconds,
		Score:           breakdown.Total(),
		TextureClass:    obs.TextureClass,
		Effort:          obs.Effort,
		Color:           obs.Color,
	}

	history, err := s.store.GetLogs(ctx, userID, false)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load history: %w", err)
	}
	history = withLog(history, log)

	result := achievements.Evaluate(history, achievements.NewSet(user.Achievements...), s.location(settings))
	user.Achievements = result.Updated.Strings()
	user.LastActive = now
	refreshSnapshot(&user, history, settings.WeeklyWindow)

	if err := s.store.AddLog(ctx, log); err != nil {
		return Outcome{}, err
	}
	outcome := Outcome{Log: log, Breakdown: breakdown}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		logger.Error("Log stored without profile update", "user", userID, "log", log.ID, "error", err)
		return outcome, fmt.Errorf("%w: %w", ErrProfileNotUpdated, err)
	}
	for _, id := range result.NewlyUnlocked {
		if def, ok := achievements.Lookup(id); ok {
			outcome.NewlyUnlocked = append(outcome.NewlyUnlocked, def)
		}
	}
	logger.Info("Recorded log", "user", userID, "score", log.Score, "unlocked", len(outcome.NewlyUnlocked))

	if settings.NotificationsEnabled {
		s.announce(ctx, outcome.NewlyUnlocked)
	}
	return outcome, nil
}

// announce is best effort; the tray app is optional
func (s *Service) announce(ctx context.Context, unlocked []achievements.Definition) {
	if s.notifier == nil {
		return
	}
	for _, def := range unlocked {
		text := fmt.Sprintf("%s Achievement unlocked: %s", def.Icon, def.Title)
		if err := s.notifier.Notify(ctx, text); err != nil {
			logger.Debug("Unlock notification not delivered", "achievement", def.ID, "error", err)
		}
	}
}

// withLog adds l to a newest-first history, keeping the store's ordering
func withLog(history []models.Log, l models.Log) []models.Log {
	history = append(history, l)
	slices.SortStableFunc(history, func(a, b models.Log) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return history
}

func refreshSnapshot(user *models.User, history []models.Log, window int) {
	user.WeeklyScore = leaderboard.WeeklyScore(history, window)
	user.TotalLogs = len(history)
}

// History returns the user's logs, newest first
func (s *Service) History(ctx context.Context, userID string) ([]models.Log, error) {
	return s.store.GetLogs(ctx, userID, false)
}

// ClearHistory soft-deletes every log of the user. Earned achievements stay.
func (s *Service) ClearHistory(ctx context.Context, userID string) (int, error) {
	return s.rewriteHistory(ctx, userID, s.store.DeleteLogs)
}

// RestoreHistory brings back logs removed by ClearHistory
func (s *Service) RestoreHistory(ctx context.Context, userID string) (int, error) {
	return s.rewriteHistory(ctx, userID, s.store.RestoreLogs)
}

func (s *Service) rewriteHistory(ctx context.Context, userID string, op func(context.Context, string) (int, error)) (int, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	n, err := op(ctx, userID)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	history, err := s.store.GetLogs(ctx, userID, false)
	if err != nil {
		return n, fmt.Errorf("failed to load history: %w", err)
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return n, fmt.Errorf("failed to get settings: %w", err)
	}
	refreshSnapshot(&user, history, settings.WeeklyWindow)
	return n, s.store.UpdateUser(ctx, user)
}

type Bar struct {
	Label string
	Score int
	Band  scoring.Band
	Log   models.Log
}

// ChartData returns the most recent ChartWindow logs as bars, oldest first
func (s *Service) ChartData(ctx context.Context, userID string) ([]Bar, error) {
	history, err := s.store.GetLogs(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return Chart(history, settings.ChartWindow, s.location(settings)), nil
}

// Chart turns newest-first logs into at most window bars, oldest first
func Chart(history []models.Log, window int, loc *time.Location) []Bar {
	recent := history[:min(len(history), max(window, 0))]
	bars := make([]Bar, len(recent))
	for i, l := range recent {
		bars[len(recent)-1-i] = Bar{
			Label: utils.WeekdayLabel(l.Date, loc),
			Score: l.Score,
			Band:  scoring.BandFor(l.Score),
			Log:   l,
		}
	}
	return bars
}

type Stats struct {
	TotalLogs     int
	AverageScore  int
	BestScore     int
	CurrentStreak int
	LongestStreak int
}

// Stats summarizes the user's visible history
func (s *Service) Stats(ctx context.Context, userID string) (Stats, error) {
	history, err := s.store.GetLogs(ctx, userID, false)
	if err != nil {
		return Stats{}, err
	}
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get settings: %w", err)
	}
	loc := s.location(settings)

	st := Stats{TotalLogs: len(history)}
	if len(history) == 0 {
		return st, nil
	}
	sum := 0
	for _, l := range history {
		sum += l.Score
		st.BestScore = max(st.BestScore, l.Score)
	}
	st.AverageScore = sum / len(history)

	days := achievements.DistinctDays(history, loc)
	st.LongestStreak = achievements.LongestStreak(days)
	st.CurrentStreak = achievements.CurrentStreak(days, achievements.DayOf(s.now(), loc))
	return st, nil
}
