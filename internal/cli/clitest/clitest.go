// Package clitest builds command contexts over throwaway stores.
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/storage/sqlite"
)

// Now is the fixed clock of every test context, a Monday
var Now = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

type Env struct {
	Ctx *cli.Context
	Out *bytes.Buffer
	Dir string
}

// Output returns everything written so far and resets the buffer
func (e *Env) Output() string {
	s := e.Out.String()
	e.Out.Reset()
	return s
}

// Input feeds answers to Confirm prompts
func (e *Env) Input(lines ...string) {
	e.Ctx.In = strings.NewReader(strings.Join(lines, "\n") + "\n")
}

// New returns a context over an initialized sqlite store in UTC
func New(t *testing.T) *Env {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "plop.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	settings, err := store.GetSettings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(context.Background(), settings); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	ctx := cli.NewContext(context.Background(), store, nil)
	ctx.Out = out
	ctx.In = strings.NewReader("")
	ctx.Now = func() time.Time { return Now }
	return &Env{Ctx: ctx, Out: out, Dir: dir}
}

// LoggedIn is New plus the seeded community and a signed-in email user
func LoggedIn(t *testing.T) *Env {
	t.Helper()
	env := New(t)
	bg := context.Background()
	if _, err := storage.SeedMockUsers(bg, env.Ctx.Store, Now); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Ctx.Auth().Login(bg, "email", "me@plop.io", "secret1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return env
}
