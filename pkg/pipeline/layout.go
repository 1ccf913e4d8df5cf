package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/musicbox/pkg/notes"
	"github.com/matzehuels/musicbox/pkg/observability"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

// GenerateLayout lays out opts.Track of src. It does not consult a cache.
func GenerateLayout(ctx context.Context, src notes.Source, opts Options) (*layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg, _ := opts.LayoutConfig()

	ns, err := notes.Normalize(src, opts.Track)
	if err != nil {
		return nil, err
	}

	var buildOpts []layout.Option
	if opts.Parallel {
		buildOpts = append(buildOpts, layout.WithParallelPages())
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(ns))
	start := time.Now()
	l, err := layout.Build(ns, src.Division, cfg, buildOpts...)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLayoutComplete(ctx, l.StripCount, len(l.Pages), time.Since(start), nil)

	opts.Logger.Debug("built layout",
		"notes", len(ns),
		"strips", l.StripCount,
		"pages", len(l.Pages),
		"duration", time.Since(start))
	return l, nil
}
