package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/notes"
	"github.com/matzehuels/musicbox/pkg/pipeline"
	"github.com/matzehuels/musicbox/pkg/tape/layout"
)

// tracksCommand lists the tracks of a MIDI file.
func (c *CLI) tracksCommand() *cobra.Command {
	var (
		pitches bool
		pick    bool
		track   int
	)

	cmd := &cobra.Command{
		Use:   "tracks INPUT",
		Short: "List the tracks of a MIDI file",
		Long: `List the tracks of a MIDI file with their note counts.

The "off box" column counts the distinct pitches a track plays that the
default 30-note music box cannot. With --pitches the pitches used by one
track are printed as a ready-made --notes value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := c.loadTracks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if pick {
				sel, err := runTrackPicker(infos)
				if err != nil {
					return err
				}
				track = sel
				pitches = true
			}
			if pitches {
				if track < 0 || track >= len(infos) {
					return errors.New(errors.ErrCodeTrackNotFound,
						"track %d not found (file has %d tracks)", track, len(infos))
				}
				fmt.Fprintln(c.out, infos[track].Pitches.String())
				return nil
			}
			fmt.Fprintln(c.out, trackTable(infos))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pitches, "pitches", false, "print the pitches used by --track-num as a --notes list")
	cmd.Flags().IntVarP(&track, "track-num", "t", pipeline.DefaultTrack, "track for --pitches")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose the track interactively")

	return cmd
}

func (c *CLI) loadTracks(ctx context.Context, input string) ([]pipeline.TrackInfo, error) {
	midi, err := readInput(input)
	if err != nil {
		return nil, err
	}
	src, err := pipeline.Parse(ctx, midi)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("parsed midi", "tracks", len(src.Tracks), "division", src.Division)
	return pipeline.Tracks(src), nil
}

// pickTrack lets the user choose a track of input.
func (c *CLI) pickTrack(ctx context.Context, input string) (int, error) {
	infos, err := c.loadTracks(ctx, input)
	if err != nil {
		return 0, err
	}
	return runTrackPicker(infos)
}

// offBox counts the pitches of ps that have no row on the default box.
func offBox(ps notes.PitchList) int {
	n := 0
	for _, p := range ps {
		if _, ok := layout.DefaultPitches.Row(p); !ok {
			n++
		}
	}
	return n
}

func pitchRange(ps notes.PitchList) string {
	if len(ps) == 0 {
		return "—"
	}
	return fmt.Sprintf("%d–%d", ps[0], ps[len(ps)-1])
}

func trackTable(infos []pipeline.TrackInfo) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, len(infos))
	for i, t := range infos {
		name := t.Name
		if name == "" {
			name = "—"
		}
		rows[i] = []string{
			strconv.Itoa(t.Index),
			name,
			strconv.Itoa(t.Notes),
			pitchRange(t.Pitches),
			strconv.Itoa(offBox(t.Pitches)),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Name", "Notes", "Pitches", "Off box").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < len(infos) && infos[row].Notes == 0 {
				return base.Foreground(colorDim)
			}
			if col == 4 && row < len(infos) && offBox(infos[row].Pitches) > 0 {
				return base.Foreground(colorYellow)
			}
			return base
		}).
		Render()
}
