package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/happeytunes/internal/download"
	"github.com/handiism/happeytunes/internal/library"
	"github.com/handiism/happeytunes/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1B1B1B")).
			Background(lipgloss.Color("#F8B500")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 HappeyTunes"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.opts.Settings.RepositoryName() + "@" + m.opts.Settings.Branch))
	b.WriteString("\n\n")

	switch m.state {
	case library.StateIdle, library.StateLoading:
		b.WriteString(m.viewLoading())
	case library.StateError:
		b.WriteString(m.viewError())
	case library.StateEmpty:
		b.WriteString(m.viewEmpty())
	case library.StateLoaded:
		b.WriteString(m.viewLoaded())
	}

	if m.saving {
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(m.savePct))
		b.WriteString("\n")
	}
	if m.status.Message != "" {
		b.WriteString("\n")
		b.WriteString(renderStatus(m.status))
		b.WriteString("\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewLoading() string {
	return m.spinner.View() + " " + subtitleStyle.Render("Loading artists...") + "\n"
}

func (m Model) viewError() string {
	var body string
	if m.result != nil && m.result.Kind == library.ErrorKindRepositoryNotFound {
		body = fmt.Sprintf("Repository %s not found.\n\n%s", m.opts.Settings.RepositoryName(), library.NotFoundHint)
	} else {
		body = "Failed to load artists."
		if m.result != nil && m.result.Err != nil {
			body += "\n\n" + m.result.Err.Error()
		}
	}
	return errorStyle.Render("✗ Error") + "\n\n" + boxStyle.Render(body) + "\n"
}

func (m Model) viewEmpty() string {
	return boxStyle.Render("No artists found") + "\n"
}

func (m Model) viewLoaded() string {
	var b strings.Builder

	artists := m.result.Artists
	b.WriteString(subtitleStyle.Render(m.result.Header()))
	b.WriteString("\n\n")

	from, to := m.window(len(artists))
	for i := from; i < to; i++ {
		b.WriteString(m.renderCard(artists[i], i == m.cursor))
		b.WriteString("\n")
		if i == m.expanded {
			b.WriteString(m.renderSongs(artists[i]))
		}
	}
	if to < len(artists) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(artists)-to)))
		b.WriteString("\n")
	}

	return b.String()
}

// window returns the range of artist cards that fit on screen, keeping the
// cursor visible.
func (m Model) window(n int) (int, int) {
	visible := n
	if m.height > 0 {
		visible = max(m.height-12, 3)
	}
	if m.expanded >= 0 {
		visible = max(visible-len(m.result.Artists[m.expanded].Songs)-1, 1)
	}
	if visible >= n {
		return 0, n
	}
	from := min(max(m.cursor-visible/2, 0), n-visible)
	return from, from + visible
}

func (m Model) renderCard(artist *model.Artist, selected bool) string {
	icon := "♫"
	if !artist.HasIcon() {
		icon = artist.Initial()
	}

	name := artist.DisplayName
	pointer := "  "
	if selected {
		name = selectedStyle.Render(name)
		pointer = selectedStyle.Render("› ")
	}

	return pointer + badgeStyle.Render(icon) + " " + name + " " + dimStyle.Render(artist.SongCountLabel())
}

func (m Model) renderSongs(artist *model.Artist) string {
	if len(artist.Songs) == 0 {
		return dimStyle.Render("      No songs") + "\n"
	}

	var b strings.Builder
	for i, song := range artist.Songs {
		if i == m.songCursor {
			b.WriteString(selectedStyle.Render("    ▶ " + song.Title))
		} else {
			b.WriteString(infoStyle.Render("      " + song.Title))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderStatus(entry LogEntry) string {
	var style lipgloss.Style
	prefix := "•"
	switch entry.Level {
	case download.LevelError:
		style = errorStyle
		prefix = "✗"
	case download.LevelWarning:
		style = warningStyle
		prefix = "!"
	case download.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case download.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}
	return style.Render(prefix + " " + entry.Message)
}

func (m Model) helpText() string {
	switch m.state {
	case library.StateLoaded:
		if m.expanded >= 0 {
			return "↑/↓: song • enter: play • esc: back • s: save • e: export • r: reload • q: quit"
		}
		return "↑/↓: artist • enter: open • s: save • e: export • r: reload • q: quit"
	case library.StateError, library.StateEmpty:
		return "r: retry • q: quit"
	default:
		return "q: quit"
	}
}
