package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/plop/internal/cli"
	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing database before initializing."`
	Source string `help:"Database path or connection string to copy data from."`
	NoSeed bool   `help:"Skip creating the demo community."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	_, remote := ctx.Store.(*postgres.Store)

	if c.Force && !remote {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" && samePath(c.Source, dbPath) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized plop storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.copyFrom(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
		return nil
	}

	if !c.NoSeed {
		n, err := storage.SeedMockUsers(ctx.Context(), ctx.Store, ctx.Now())
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		if n > 0 {
			ctx.Printf("Added %d demo users. Find them with 'plop friends search'.\n", n)
		}
	}
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context) error {
	src, err := cli.OpenStore(c.Source, false)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	_, err = storage.Copy(ctx.Context(), src, ctx.Store, func(msg string) { ctx.Println(msg) })
	return err
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
