package social

import (
	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/utils"
)

type InboxCmd struct {
	List    InboxListCmd    `cmd:"" default:"1" help:"Show pending friend requests."`
	Accept  InboxAcceptCmd  `cmd:"" help:"Accept a friend request."`
	Decline InboxDeclineCmd `cmd:"" help:"Decline a friend request."`
}

type InboxListCmd struct{}

func (c *InboxListCmd) Run(ctx *cli.Context) error {
	me, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	inbox, err := ctx.Social().Inbox(ctx.Context(), me.ID)
	if err != nil {
		return err
	}
	if len(inbox) == 0 {
		ctx.Println("No new notifications")
		return nil
	}

	now := ctx.Now()
	for _, n := range inbox {
		ctx.Printf("%s  %s wants to be your friend (%s)\n", n.ID, n.FromUsername, utils.FormatLastActive(n.Date, now))
	}
	return nil
}

type InboxAcceptCmd struct {
	ID string `arg:"" help:"Notification ID."`
}

func (c *InboxAcceptCmd) Run(ctx *cli.Context) error {
	me, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	n, err := ctx.Store.GetNotification(ctx.Context(), c.ID)
	if err != nil {
		return err
	}
	if _, err := ctx.Social().Accept(ctx.Context(), me.ID, c.ID); err != nil {
		return err
	}
	ctx.Printf("✓ You and %s are now friends\n", n.FromUsername)
	return nil
}

type InboxDeclineCmd struct {
	ID string `arg:"" help:"Notification ID."`
}

func (c *InboxDeclineCmd) Run(ctx *cli.Context) error {
	me, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	if err := ctx.Social().Decline(ctx.Context(), me.ID, c.ID); err != nil {
		return err
	}
	ctx.Println("✓ Request declined")
	return nil
}
