package models

import (
	"errors"
	"fmt"
	"time"
)

// NotificationType identifies the kind of inbox item
type NotificationType string

// NotificationStatus is the lifecycle state of an inbox item
type NotificationStatus string

const (
	NotificationFriendRequest NotificationType = "FRIEND_REQUEST"

	StatusPending  NotificationStatus = "PENDING"
	StatusAccepted NotificationStatus = "ACCEPTED"
	StatusDeclined NotificationStatus = "DECLINED"
)

// ErrInvalidTransition is returned when a status change is not allowed
var ErrInvalidTransition = errors.New("invalid notification status transition")

// Valid reports whether s is a known status
func (s NotificationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// CanTransition reports whether s may move to next.
// Only PENDING->ACCEPTED and PENDING->DECLINED are allowed.
func (s NotificationStatus) CanTransition(next NotificationStatus) bool {
	return s == StatusPending && (next == StatusAccepted || next == StatusDeclined)
}

// Notification is an inbox item addressed to ToUserID
type Notification struct {
	ID           string             `json:"id"`
	Type         NotificationType   `json:"type"`
	ToUserID     string             `json:"to_user_id"`
	FromUserID   string             `json:"from_user_id"`
	FromUsername string             `json:"from_username"`
	FromAvatar   string             `json:"from_avatar"`
	Date         time.Time          `json:"date"`
	Status       NotificationStatus `json:"status"`
}

// Transition moves the notification to next, enforcing the status machine
func (n *Notification) Transition(next NotificationStatus) error {
	if !n.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, n.Status, next)
	}
	n.Status = next
	return nil
}

// IsPending reports whether the notification still awaits a response
func (n *Notification) IsPending() bool {
	return n.Status == StatusPending
}
