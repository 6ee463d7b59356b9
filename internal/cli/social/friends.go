package social

import (
	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/utils"
)

type FriendsCmd struct {
	List    FriendListCmd    `cmd:"" default:"1" help:"List your friends."`
	Search  FriendSearchCmd  `cmd:"" help:"Find people by username."`
	Request FriendRequestCmd `cmd:"" help:"Send a friend request."`
}

type FriendListCmd struct{}

func (c *FriendListCmd) Run(ctx *cli.Context) error {
	me, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	friends, err := ctx.Social().Friends(ctx.Context(), me)
	if err != nil {
		return err
	}
	if len(friends) == 0 {
		ctx.Println("No friends yet. Try 'plop friends search <name>'.")
		return nil
	}

	now := ctx.Now()
	for _, f := range friends {
		ctx.Printf("%-16s %-20s weekly %4d  logs %3d  %s\n",
			f.ID, f.Username, f.WeeklyScore, f.TotalLogs, utils.FormatLastActive(f.LastActive, now))
	}
	return nil
}

type FriendSearchCmd struct {
	Term string `arg:"" help:"Part of a username."`
}

func (c *FriendSearchCmd) Run(ctx *cli.Context) error {
	me, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	results, err := ctx.Social().Search(ctx.Context(), me, c.Term)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		ctx.Printf("No users matching %q\n", c.Term)
		return nil
	}
	for _, u := range results {
		ctx.Printf("%-16s %s\n", u.ID, u.Username)
	}
	ctx.Println()
	ctx.Println("Send a request with 'plop friends request <id>'.")
	return nil
}

type FriendRequestCmd struct {
	UserID string `arg:"" help:"ID of the user to befriend."`
}

func (c *FriendRequestCmd) Run(ctx *cli.Context) error {
	me, err := ctx.CurrentUser()
	if err != nil {
		return err
	}
	n, err := ctx.Social().SendRequest(ctx.Context(), me, c.UserID)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Friend request sent to %s (%s)\n", c.UserID, n.ID)
	return nil
}
