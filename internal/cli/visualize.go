package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/musicbox/pkg/io"
	"github.com/matzehuels/musicbox/pkg/pipeline"
)

// visualizeCommand renders a saved layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output string
		cf     cacheFlags
	)
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "visualize LAYOUT [OUTPUT]",
		Short: "Render a saved layout to SVG, PDF or PNG",
		Long: `Render a layout.json file produced by 'musicbox layout'.

Only styling options apply here; the geometry is fixed by the layout.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				output = args[1]
			}
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], output, opts, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path; % is replaced by the page number")
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "read options from a .toml, .yaml or .json file")
	cf.register(cmd)
	flags.registerRender(cmd)

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input, output string, opts pipeline.Options, cf cacheFlags) error {
	if len(opts.Formats) == 0 && output == "" {
		opts.Formats = []string{pipeline.FormatSVG}
	}
	targets, err := resolveOutputs(input, output, opts.Formats)
	if err != nil {
		return err
	}
	opts.Formats = targets.formats

	l, err := io.ImportLayout(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	sp := startSpinner(ctx, os.Stderr, "Rendering "+input)
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		sp.fail("Rendering failed")
		return err
	}
	sp.stop()

	printSuccess("Rendered %d page(s)", len(l.Pages))
	if err := writeArtifacts(artifacts, targets); err != nil {
		return err
	}
	printStats(l.StripCount, len(l.Pages), l.HoleCount(), hit)
	return nil
}
