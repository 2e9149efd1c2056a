// Package cli implements the knotwork command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mgeier/knotwork/pkg/buildinfo"
	"github.com/mgeier/knotwork/pkg/cache"
	"github.com/mgeier/knotwork/pkg/config"
	"github.com/mgeier/knotwork/pkg/errors"
	"github.com/mgeier/knotwork/pkg/pipeline"
	"github.com/mgeier/knotwork/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "knotwork"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// Execute runs the knotwork CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	c := &CLI{Logger: newLogger(os.Stderr, log.InfoLevel), Config: config.Default()}
	return c.RootCommand().ExecuteContext(ctx)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Knotwork catalogs knot diagrams and their invariants",
		Long:         `Knotwork is a catalog for knot diagrams given as Gauss codes. It computes diagram invariants (crossing number, writhe, canonical form), checks diagrams for equivalence, and stores named diagrams for querying.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			c.Logger.SetLevel(level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))

			var err error
			if configPath != "" {
				c.Config, err = config.LoadFile(configPath)
			} else {
				c.Config, err = config.Load()
			}
			return err
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/knotwork/config.toml)")

	root.AddCommand(c.addCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.simplifyCommand())
	root.AddCommand(c.canonicalCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Backend Factories
// =============================================================================

// openStore opens the configured store backend. The caller must Close it.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch c.Config.Store.Backend {
	case config.StoreMongo:
		c.Logger.Debug("connecting to mongo", "uri", c.Config.Store.MongoURI, "db", c.Config.Store.Database)
		st, err = store.NewMongo(ctx, c.Config.Store.MongoURI, c.Config.Store.Database)
	default:
		st = store.NewMemory()
	}
	if err != nil {
		return nil, err
	}
	if c.Config.Store.ReadOnly {
		return store.NewReadOnly(st), nil
	}
	return st, nil
}

// warnEphemeralStore warns when a mutating command targets the memory
// backend, whose contents vanish when the process exits. Commands that only
// read stay quiet.
func (c *CLI) warnEphemeralStore() {
	if c.Config.Store.Backend == config.StoreMemory {
		c.Logger.Warn("memory store holds nothing past this command; configure the mongo backend to persist",
			"backend", c.Config.Store.Backend)
	}
}

// newCache opens the configured cache backend, falling back to the null
// cache when the backend is unavailable.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	switch c.Config.Cache.Backend {
	case config.CacheNull:
		return cache.NewNullCache()
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
		if err != nil {
			c.Logger.Debug("redis unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		dir, err := c.Config.CacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Debug("file cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// newRunner creates a pipeline runner over the configured backends.
// The caller must Close the returned store.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, store.Store, error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return pipeline.NewRunner(st, c.newCache(ctx, noCache), c.Logger), st, nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// parseMetaFlags parses repeated --meta key=value flags into a map.
func parseMetaFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "bad metadata flag %q, want key=value", pair)
		}
		out[k] = v
	}
	return out, nil
}
