package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/pipeline"
)

// renderCommand creates the render command: MIDI in, cut files out.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		pick   bool
		cf     cacheFlags
	)
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "render INPUT [OUTPUT]",
		Short: "Lay out a MIDI track and write cut files",
		Long: `Lay out one track of a MIDI file and write the cut files.

The output format is taken from --format or the output extension (.svg, .pdf,
.png, .json). A % in the output path is replaced with the page number; SVG
and PNG outputs of multi-page layouts without a % get -1, -2, ... appended.
Without an output path the layout is printed to stdout as JSON.

  musicbox render song.mid song-%.svg
  musicbox render song.mid -f pdf,png --title "Für Elise"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				output = args[1]
			}
			opts, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if pick {
				track, err := c.pickTrack(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				opts.Track = track
			}
			return c.runRender(cmd.Context(), args[0], output, opts, cf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path; % is replaced by the page number")
	cmd.Flags().BoolVar(&pick, "pick-track", false, "choose the track interactively")
	cf.register(cmd)
	flags.registerLayout(cmd)
	flags.registerRender(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, cf cacheFlags) error {
	targets, err := resolveOutputs(input, output, opts.Formats)
	if err != nil {
		return err
	}
	opts.Formats = targets.formats

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

	sp := startSpinner(ctx, os.Stderr, "Laying out "+input)
	res, err := runner.Execute(ctx, midi, opts)
	if err != nil {
		sp.fail("Layout failed")
		return err
	}
	sp.stop()

	if targets.stdout {
		_, err := c.out.Write(res.Artifacts[pipeline.FormatJSON][0])
		return err
	}

	printSuccess("Layout complete")
	if err := writeArtifacts(res.Artifacts, targets); err != nil {
		return err
	}
	printStats(res.Stats.Strips, res.Stats.Pages, res.Stats.Holes, res.CacheInfo.LayoutHit)
	return nil
}

// outputTargets says where each format goes.
type outputTargets struct {
	formats  []string
	patterns map[string]string
	stdout   bool // a single JSON layout printed to stdout
}

// resolveOutputs picks formats and output patterns from the flags. An
// explicit format list wins over the output extension; with several formats
// each gets the output path with its own extension.
func resolveOutputs(input, output string, formats []string) (outputTargets, error) {
	if len(formats) == 0 {
		switch f := pipeline.FormatFromPath(output); {
		case output == "":
			return outputTargets{formats: []string{pipeline.FormatJSON}, stdout: true}, nil
		case f == "":
			return outputTargets{}, errors.New(errors.ErrCodeInvalidFormat,
				"cannot infer format from %q; use --format", output)
		default:
			formats = []string{f}
		}
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return outputTargets{}, err
	}

	multi := len(formats) > 1
	if output == "" {
		output = trimInputExt(input) + ".out"
		multi = true
	}
	if err := errors.ValidateOutputPattern(output); err != nil {
		return outputTargets{}, err
	}

	t := outputTargets{formats: formats, patterns: make(map[string]string, len(formats))}
	for _, f := range formats {
		t.patterns[f] = pipeline.OutputPath(output, f, multi)
	}
	return t, nil
}

func writeArtifacts(artifacts map[string][][]byte, t outputTargets) error {
	for _, f := range t.formats {
		paths, err := pipeline.WriteArtifact(t.patterns[f], artifacts[f])
		for _, p := range paths {
			printFile(p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s does not exist", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}
