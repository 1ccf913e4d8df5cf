package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/musicbox/pkg/cache"
	"github.com/matzehuels/musicbox/pkg/io"
	"github.com/matzehuels/musicbox/pkg/observability"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

// Runner executes the pipeline with caching. It holds no per-run state and
// may be shared between goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// means [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs MIDI → layout → render.
func (r *Runner) Execute(ctx context.Context, midi []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	start := time.Now()
	l, hit, err := r.GenerateLayoutWithCacheInfo(ctx, midi, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.LayoutHash = layoutHash(l)
	result.CacheInfo.LayoutHit = hit
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.Strips = l.StripCount
	result.Stats.Pages = len(l.Pages)
	result.Stats.Holes = l.HoleCount()

	r.Logger.Info("computed layout",
		"strips", l.StripCount,
		"pages", len(l.Pages),
		"holes", result.Stats.Holes,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo decodes midi and lays out opts.Track, using
// the cache when possible. The bool reports a cache hit.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, midi []byte, opts Options) (*layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.LayoutKey(cache.Hash(midi), opts.LayoutKeyOpts())
	if !opts.Refresh {
		if data, ok := r.lookup(ctx, "layout", key); ok {
			if l, err := io.ReadLayout(bytes.NewReader(data)); err == nil {
				return l, true, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "key", key)
		}
	}

	src, err := Parse(ctx, midi)
	if err != nil {
		return nil, false, err
	}
	l, err := GenerateLayout(ctx, src, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(l); err == nil {
		r.store(ctx, "layout", key, data, cache.LayoutTTL)
	}
	return l, false, nil
}

// GenerateLayout is GenerateLayoutWithCacheInfo without the hit flag.
func (r *Runner) GenerateLayout(ctx context.Context, midi []byte, opts Options) (*layout.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, midi, opts)
	return l, err
}

// RenderWithCacheInfo renders every requested format of l. Formats found in
// the cache are not re-rendered; the bool reports whether all of them were.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, opts Options) (map[string][][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hash := layoutHash(l)
	artifacts := make(map[string][][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			if data, ok := r.lookup(ctx, "artifact", key); ok {
				var pages [][]byte
				if json.Unmarshal(data, &pages) == nil {
					artifacts[format] = pages
					continue
				}
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, l, sub)
	if err != nil {
		return nil, false, err
	}
	for format, pages := range rendered {
		artifacts[format] = pages
		if data, err := json.Marshal(pages); err == nil {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
			r.store(ctx, "artifact", key, data, cache.ArtifactTTL)
		}
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads key and reports hooks. Backend errors count as misses.
func (r *Runner) lookup(ctx context.Context, kind, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", kind, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return data, true
}

func (r *Runner) store(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func layoutHash(l *layout.Layout) string {
	data, _ := json.Marshal(l)
	return cache.Hash(data)
}
