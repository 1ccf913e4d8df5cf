package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/musicbox/pkg/errors"
	"github.com/matzehuels/musicbox/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// errPickCancelled is returned when the user quits the picker.
var errPickCancelled = errors.New(errors.ErrCodeInvalidInput, "no track selected")

// trackPicker is the bubbletea model for interactive track selection.
// Tracks without notes are shown but cannot be chosen.
type trackPicker struct {
	tracks   []pipeline.TrackInfo
	cursor   int
	offset   int
	height   int
	selected int // -1 until chosen
}

func newTrackPicker(tracks []pipeline.TrackInfo) trackPicker {
	m := trackPicker{tracks: tracks, height: 12, selected: -1}
	// Start on the first playable track.
	for i, t := range tracks {
		if t.Notes > 0 {
			m.cursor = i
			break
		}
	}
	m.scroll()
	return m
}

func (m trackPicker) Init() tea.Cmd { return nil }

func (m trackPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tracks)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.tracks) > 0 && m.tracks[m.cursor].Notes > 0 {
				m.selected = m.cursor
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 3)
	}
	m.scroll()
	return m, nil
}

func (m *trackPicker) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m trackPicker) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Select Track"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.tracks))
	for i := m.offset; i < end; i++ {
		t := m.tracks[i]
		name := t.Name
		if name == "" {
			name = "(unnamed)"
		}
		line := fmt.Sprintf("%2d  %-24s %4d notes  %s", t.Index, name, t.Notes, pitchRange(t.Pitches))

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		case t.Notes == 0:
			b.WriteString(listDimStyle.Render("  " + line))
		default:
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.tracks))))
	return b.String()
}

// runTrackPicker shows the picker and returns the chosen track index.
func runTrackPicker(tracks []pipeline.TrackInfo) (int, error) {
	final, err := tea.NewProgram(newTrackPicker(tracks)).Run()
	if err != nil {
		return 0, err
	}
	if m, ok := final.(trackPicker); ok && m.selected >= 0 {
		return m.selected, nil
	}
	return 0, errPickCancelled
}
