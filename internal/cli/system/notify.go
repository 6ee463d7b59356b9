package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/plop/internal/auth"
	"github.com/julianstephens/plop/internal/cli"
)

// NotifyCmd sends a tray notification. Without text it announces pending
// friend requests, which suits a cron entry.
type NotifyCmd struct {
	Text   string `arg:"" optional:"" help:"Message to send."`
	DryRun bool   `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		if c.DryRun {
			ctx.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	msg := c.Text
	if msg == "" {
		msg, err = pendingMessage(ctx)
		if err != nil {
			return err
		}
		if msg == "" {
			if c.DryRun {
				ctx.Println("No pending friend requests.")
			}
			return nil
		}
	}

	if c.DryRun {
		ctx.Println("[DryRun] " + msg)
		return nil
	}
	if ctx.Notifier == nil {
		return errors.New("no notifier configured")
	}
	if err := ctx.Notifier.Notify(ctx.Context(), msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

func pendingMessage(ctx *cli.Context) (string, error) {
	user, err := ctx.CurrentUser()
	if errors.Is(err, auth.ErrNotLoggedIn) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	n, err := ctx.Social().PendingCount(ctx.Context(), user.ID)
	if err != nil {
		return "", err
	}
	switch n {
	case 0:
		return "", nil
	case 1:
		return "📬 You have 1 pending friend request", nil
	default:
		return fmt.Sprintf("📬 You have %d pending friend requests", n), nil
	}
}
