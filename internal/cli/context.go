package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/plop/internal/auth"
	"github.com/julianstephens/plop/internal/backup"
	"github.com/julianstephens/plop/internal/logger"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/profile"
	"github.com/julianstephens/plop/internal/social"
	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/storage/postgres"
	"github.com/julianstephens/plop/internal/tracker"
	"github.com/julianstephens/plop/internal/utils"
)

// Context is handed to every command's Run method
type Context struct {
	Store    storage.Provider
	Notifier tracker.Notifier

	// Timezone overrides the stored timezone setting when set
	Timezone string

	Out io.Writer
	In  io.Reader
	Now func() time.Time

	base context.Context
}

// NewContext wires a command context writing to stdout
func NewContext(base context.Context, store storage.Provider, notifier tracker.Notifier) *Context {
	return &Context{
		Store:    store,
		Notifier: notifier,
		Out:      os.Stdout,
		In:       os.Stdin,
		Now:      time.Now,
		base:     base,
	}
}

// Context returns the context for repository calls
func (c *Context) Context() context.Context {
	if c.base == nil {
		return context.Background()
	}
	return c.base
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on In. Anything but y/yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func (c *Context) clock() func() time.Time {
	if c.Now == nil {
		return time.Now
	}
	return c.Now
}

func (c *Context) Tracker() *tracker.Service {
	svc := tracker.New(c.Store, c.Notifier).WithClock(c.clock())
	if c.Timezone != "" {
		svc.WithLocation(c.Location())
	}
	return svc
}

func (c *Context) Social() *social.Service {
	return social.New(c.Store)
}

func (c *Context) Profile() *profile.Service {
	return profile.New(c.Store)
}

func (c *Context) Auth() *auth.Service {
	return auth.New(c.Store)
}

// CurrentUser returns the signed-in user or auth.ErrNotLoggedIn
func (c *Context) CurrentUser() (models.User, error) {
	return c.Auth().Current(c.Context())
}

// Location is the timezone used for calendar days and chart labels
func (c *Context) Location() *time.Location {
	if c.Timezone != "" {
		if loc, err := utils.LoadLocation(c.Timezone); err == nil {
			return loc
		}
		logger.Warn("Ignoring invalid timezone override", "timezone", c.Timezone)
	}
	settings, err := c.Store.GetSettings(c.Context())
	if err != nil {
		return time.Local
	}
	return utils.LocationFromSettings(settings)
}

// PerformAutomaticBackup snapshots file-backed stores and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*postgres.Store); ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
