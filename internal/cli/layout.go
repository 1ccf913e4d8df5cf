package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/musicbox/pkg/io"
	"github.com/matzehuels/musicbox/pkg/pipeline"
)

// layoutCommand creates the layout command: MIDI in, layout JSON out.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		cf     cacheFlags
	)
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "layout INPUT",
		Short: "Compute the tape layout of a MIDI track",
		Long: `Compute the tape layout of a MIDI track and save it as JSON.

The layout holds every strip outline, hole and label in mm. Render it later
with 'musicbox visualize', possibly several times with different colors or
formats, without laying the song out again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], output, opts, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cf.register(cmd)
	flags.registerLayout(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, cf cacheFlags) error {
	midi, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	p := newProgress(c.Logger)
	sp := startSpinner(ctx, os.Stderr, "Laying out "+input)
	l, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, midi, opts)
	if err != nil {
		sp.fail("Layout failed")
		return err
	}
	sp.stop()
	p.done("Laid out " + input)

	if output == "" {
		output = trimInputExt(input) + ".layout.json"
	}
	if err := io.ExportLayout(l, output); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(l.StripCount, len(l.Pages), l.HoleCount(), hit)
	printNewline()
	printNextStep("Render", appName+" visualize "+output+" -f svg")
	return nil
}
