// Package cli implements the musicbox command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/musicbox/pkg/buildinfo"
	"github.com/matzehuels/musicbox/pkg/cache"
	"github.com/matzehuels/musicbox/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is used for the cache directory and display.
	appName = "musicbox"

	// redisKeyPrefix scopes keys in a shared Redis instance.
	redisKeyPrefix = "musicbox:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), out: os.Stdout}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Lay out MIDI songs as music box punch tape",
		Long: `musicbox turns a track of a MIDI file into cut files for a music box
punch tape: strips of tape with a hole for every note, packed onto pages and
joined end to end.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.tracksCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend of a command.
type cacheFlags struct {
	noCache bool
	url     string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.url, "cache-url", os.Getenv("MUSICBOX_CACHE_URL"),
		"redis://host:port/db to share a cache (default: local directory)")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	backend, keyer, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, cache.Keyer, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil, nil
	case f.url != "":
		rc, err := cache.NewRedisCache(ctx, f.url)
		if err != nil {
			return nil, nil, fmt.Errorf("connect cache: %w", err)
		}
		c.Logger.Debug("using redis cache", "url", f.url)
		return rc, cache.NewScopedKeyer(nil, redisKeyPrefix), nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("caching disabled", "err", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/musicbox/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string. Empty input yields
// nil so that the format can be inferred from the output path.
func parseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// trimInputExt strips the extension of a MIDI or layout file name.
func trimInputExt(path string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return strings.TrimSuffix(base, ".layout")
}
