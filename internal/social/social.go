// Package social handles friend search, friend requests and the inbox.
package social

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/julianstephens/plop/internal/logger"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/storage"
)

var (
	ErrAlreadyFriends   = errors.New("already friends")
	ErrDuplicateRequest = errors.New("friend request already pending")
	ErrSelfRequest      = errors.New("cannot send a friend request to yourself")
	ErrNotRecipient     = errors.New("notification belongs to another user")
)

type Service struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *Service {
	return &Service{store: store, now: time.Now}
}

// Search matches term against usernames, ignoring case. The caller and
// their friends are excluded; a blank term matches nobody.
func (s *Service) Search(ctx context.Context, me models.User, term string) ([]models.User, error) {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(term))
	if needle == "" {
		return []models.User{}, nil
	}

	users, err := s.store.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	results := []models.User{}
	for _, u := range users {
		if u.ID == me.ID || me.IsFriend(u.ID) {
			continue
		}
		if strings.Contains(folder.String(u.Username), needle) {
			results = append(results, u)
		}
	}
	return results, nil
}

// SendRequest leaves a pending friend request in the target's inbox. A pending
// request in either direction is reported as ErrDuplicateRequest.
func (s *Service) SendRequest(ctx context.Context, me models.User, toUserID string) (models.Notification, error) {
	if toUserID == me.ID {
		return models.Notification{}, ErrSelfRequest
	}
	if me.IsFriend(toUserID) {
		return models.Notification{}, fmt.Errorf("%s: %w", toUserID, ErrAlreadyFriends)
	}
	if _, err := s.store.GetUser(ctx, toUserID); err != nil {
		return models.Notification{}, err
	}

	pending, err := s.store.GetNotifications(ctx, toUserID, models.StatusPending)
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to load inbox: %w", err)
	}
	if slices.ContainsFunc(pending, func(n models.Notification) bool {
		return n.Type == models.NotificationFriendRequest && n.FromUserID == me.ID
	}) {
		return models.Notification{}, fmt.Errorf("%s: %w", toUserID, ErrDuplicateRequest)
	}

	// One pending request per pair, whichever way it was sent
	mine, err := s.store.GetNotifications(ctx, me.ID, models.StatusPending)
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to load inbox: %w", err)
	}
	if i := slices.IndexFunc(mine, func(n models.Notification) bool {
		return n.Type == models.NotificationFriendRequest && n.FromUserID == toUserID
	}); i >= 0 {
		return models.Notification{}, fmt.Errorf("%s already asked you, accept request %s from your inbox: %w", toUserID, mine[i].ID, ErrDuplicateRequest)
	}

	n := models.Notification{
		ID:           uuid.NewString(),
		Type:         models.NotificationFriendRequest,
		ToUserID:     toUserID,
		FromUserID:   me.ID,
		FromUsername: me.Username,
		FromAvatar:   me.Avatar,
		Date:         s.now(),
		Status:       models.StatusPending,
	}
	if err := s.store.AddNotification(ctx, n); err != nil {
		return models.Notification{}, err
	}
	logger.Info("Sent friend request", "from", me.ID, "to", toUserID)
	return n, nil
}

// Inbox returns pending requests addressed to userID, newest first
func (s *Service) Inbox(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.store.GetNotifications(ctx, userID, models.StatusPending)
}

func (s *Service) PendingCount(ctx context.Context, userID string) (int, error) {
	inbox, err := s.Inbox(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(inbox), nil
}

// Accept befriends both sides and marks the request accepted
func (s *Service) Accept(ctx context.Context, userID, notificationID string) (models.User, error) {
	n, err := s.pending(ctx, userID, notificationID, models.StatusAccepted)
	if err != nil {
		return models.User{}, err
	}

	me, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if me.AddFriend(n.FromUserID) {
		if err := s.store.UpdateUser(ctx, me); err != nil {
			return models.User{}, err
		}
	}

	sender, err := s.store.GetUser(ctx, n.FromUserID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Warn("Friend request sender no longer exists", "user", n.FromUserID)
	case err != nil:
		return models.User{}, err
	case sender.AddFriend(userID):
		if err := s.store.UpdateUser(ctx, sender); err != nil {
			return models.User{}, err
		}
	}

	if err := s.store.UpdateNotification(ctx, n); err != nil {
		return models.User{}, err
	}
	return me, nil
}

func (s *Service) Decline(ctx context.Context, userID, notificationID string) error {
	n, err := s.pending(ctx, userID, notificationID, models.StatusDeclined)
	if err != nil {
		return err
	}
	return s.store.UpdateNotification(ctx, n)
}

// pending loads a notification addressed to userID and moves it to next
func (s *Service) pending(ctx context.Context, userID, id string, next models.NotificationStatus) (models.Notification, error) {
	n, err := s.store.GetNotification(ctx, id)
	if err != nil {
		return models.Notification{}, err
	}
	if n.ToUserID != userID {
		return models.Notification{}, fmt.Errorf("notification %s: %w", id, ErrNotRecipient)
	}
	if err := n.Transition(next); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// Friends returns the user's friends in friend-list order, skipping missing users
func (s *Service) Friends(ctx context.Context, me models.User) ([]models.User, error) {
	friends := make([]models.User, 0, len(me.Friends))
	for _, id := range me.Friends {
		u, err := s.store.GetUser(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		friends = append(friends, u)
	}
	return friends, nil
}
