package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/musicbox/pkg/observability"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
	"github.com/matzehuels/musicbox/pkg/tape/sink"
)

// Render generates every requested format for l. It does not consult a
// cache.
func Render(ctx context.Context, l *layout.Layout, opts Options) (map[string][][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	sinkOpts, _ := opts.SinkOptions()

	artifacts := make(map[string][][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages, err := renderFormat(ctx, l, format, sinkOpts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = pages
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, l *layout.Layout, format string, opts []sink.Option) ([][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	var pages [][]byte
	var err error
	switch format {
	case FormatSVG:
		pages, err = sink.RenderSVG(l, opts...)
	case FormatPNG:
		pages, err = sink.RenderPNG(l, opts...)
	case FormatPDF:
		var data []byte
		data, err = sink.RenderPDF(l, opts...)
		pages = [][]byte{data}
	case FormatJSON:
		var data []byte
		data, err = sink.RenderJSON(l, opts...)
		pages = [][]byte{data}
	default:
		err = ValidateFormat(format)
	}

	hooks.OnRenderComplete(ctx, format, totalSize(pages), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func totalSize(pages [][]byte) int {
	n := 0
	for _, p := range pages {
		n += len(p)
	}
	return n
}
