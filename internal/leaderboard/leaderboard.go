// Package leaderboard ranks the signed-in user against their friends.
package leaderboard

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/plop/internal/achievements"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/utils"
)

const lastActiveNow = "Now"

type Entry struct {
	Rank       int
	UserID     string
	Username   string
	Avatar     string
	Score      int
	TotalLogs  int
	LastActive string
	Nameplate  *achievements.Definition
	IsMe       bool
}

// WeeklyScore sums the scores of the window most recent logs. logs must be
// newest first.
func WeeklyScore(logs []models.Log, window int) int {
	total := 0
	for _, l := range logs[:min(len(logs), max(window, 0))] {
		total += l.Score
	}
	return total
}

// Build ranks me and my friends by score, highest first. My numbers are
// computed from myLogs; friends use their stored snapshots. Ties keep friends
// ahead of me.
func Build(me models.User, myLogs []models.Log, friends []models.User, window int, now time.Time) []Entry {
	entries := make([]Entry, 0, len(friends)+1)
	for _, f := range friends {
		entries = append(entries, Entry{
			UserID:     f.ID,
			Username:   f.Username,
			Avatar:     f.Avatar,
			Score:      f.WeeklyScore,
			TotalLogs:  f.TotalLogs,
			LastActive: utils.FormatLastActive(f.LastActive, now),
			Nameplate:  nameplate(f),
		})
	}
	entries = append(entries, Entry{
		UserID:     me.ID,
		Username:   me.Username,
		Avatar:     me.Avatar,
		Score:      WeeklyScore(myLogs, window),
		TotalLogs:  len(myLogs),
		LastActive: lastActiveNow,
		Nameplate:  nameplate(me),
		IsMe:       true,
	})

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func nameplate(u models.User) *achievements.Definition {
	if u.SelectedAchievementID == "" {
		return nil
	}
	def, ok := achievements.Lookup(achievements.ID(u.SelectedAchievementID))
	if !ok {
		return nil
	}
	return &def
}

// Summary is the subtitle shown above the board
func Summary(friendCount int) string {
	switch friendCount {
	case 0:
		return "You're all alone here! Add friends to compete."
	case 1:
		return "Competing against 1 friend"
	default:
		return fmt.Sprintf("Competing against %d friends", friendCount)
	}
}

// Load builds the board for userID from the store. Friends that no longer
// exist are skipped.
func Load(ctx context.Context, store storage.Provider, userID string, now time.Time) ([]Entry, error) {
	me, err := store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	logs, err := store.GetLogs(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load logs: %w", err)
	}
	settings, err := store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	friends := make([]models.User, 0, len(me.Friends))
	for _, id := range me.Friends {
		f, err := store.GetUser(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}

	return Build(me, logs, friends, settings.WeeklyWindow, now), nil
}
