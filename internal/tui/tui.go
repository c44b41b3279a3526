// Package tui provides a Bubble Tea terminal user interface for browsing the
// artists and songs of a music repository.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/handiism/happeytunes/internal/audio"
	"github.com/handiism/happeytunes/internal/config"
	"github.com/handiism/happeytunes/internal/download"
	ioutils "github.com/handiism/happeytunes/internal/io"
	"github.com/handiism/happeytunes/internal/library"
	"github.com/handiism/happeytunes/internal/model"
)

// ProgressFeed forwards save progress events from the download manager to
// the UI. Events are dropped when the UI falls behind.
type ProgressFeed chan download.ProgressEvent

// NewProgressFeed creates a buffered ProgressFeed.
func NewProgressFeed() ProgressFeed {
	return make(ProgressFeed, 64)
}

// Publish sends an event without blocking. Pass it to download.NewManager.
func (f ProgressFeed) Publish(event download.ProgressEvent) {
	select {
	case f <- event:
	default:
	}
}

// Options wires the UI to the rest of the application.
type Options struct {
	// Pipeline loads the artists. Required.
	Pipeline *library.Pipeline

	// Manager saves artists locally; nil disables saving.
	Manager *download.Manager

	// Feed receives the Manager's progress events; may be nil.
	Feed ProgressFeed

	// Player streams songs; nil disables playback.
	Player *audio.Player

	// Settings provide the repository name and playlist options.
	Settings *config.Settings

	// ExportDir is where exported playlists are written.
	ExportDir string

	Logger zerolog.Logger
}

// LogEntry represents a status message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	opts Options

	state  library.State
	result *library.Result
	run    uint64 // token of the most recently requested run

	cursor     int
	expanded   int // index of the expanded artist, -1 if none
	songCursor int

	status LogEntry

	saving    bool
	saveBase  [2]int32 // files saved and total when the save started
	savePct   float64
	spinner   spinner.Model
	progress  progress.Model
	ctx       context.Context
	cancel    context.CancelFunc
	width     int
	height    int
	exportFmt model.PlaylistFormat
}

// NewModel creates a new TUI model in the idle state. It claims the token
// of the first pipeline run, which Init starts.
func NewModel(opts Options) Model {
	if opts.Settings == nil {
		opts.Settings = config.DefaultSettings()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		opts:      opts,
		state:     library.StateIdle,
		run:       opts.Pipeline.Begin(),
		expanded:  -1,
		spinner:   sp,
		progress:  prog,
		ctx:       ctx,
		cancel:    cancel,
		exportFmt: model.ParsePlaylistFormat(opts.Settings.PlaylistFormat),
	}
}

// Init starts the first pipeline run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick, m.listen())
}

// Message types
type (
	// LoadedMsg carries the terminal result of a pipeline run.
	LoadedMsg struct {
		Result *library.Result
	}

	// ProgressMsg is sent when save progress updates.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// SavedMsg is sent when an artist save completes.
	SavedMsg struct {
		Artist string
		Report *download.Report
		Err    error
	}

	// PlayedMsg is sent after the player was started.
	PlayedMsg struct {
		Song string
		Err  error
	}

	// ExportedMsg is sent after a playlist was written.
	ExportedMsg struct {
		Path string
		Err  error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case LoadedMsg:
		// Only the most recently requested run may change the view.
		if msg.Result == nil {
			return m, nil
		}
		if msg.Result.Run != m.run {
			m.opts.Logger.Debug().Uint64("run", msg.Result.Run).Uint64("current", m.run).Msg("Dropped stale pipeline result")
			return m, nil
		}
		m.result = msg.Result
		m.state = msg.Result.State
		m.cursor = 0
		m.expanded = -1
		m.songCursor = 0

	case ProgressMsg:
		if msg.Event.Level != download.LevelVerbose {
			m.status = LogEntry{Message: msg.Event.Message, Level: msg.Event.Level}
		}
		cmds = append(cmds, m.listen())

	case SavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.opts.Logger.Error().Err(msg.Err).Str("artist", msg.Artist).Msg("Save failed")
		}
		switch {
		case msg.Err != nil:
			m.status = LogEntry{Message: fmt.Sprintf("Saving %s failed: %v", msg.Artist, msg.Err), Level: download.LevelError}
		case msg.Report.Failed > 0:
			m.status = LogEntry{Message: fmt.Sprintf("Saved %s to %s, %d songs failed", msg.Artist, msg.Report.Folder, msg.Report.Failed), Level: download.LevelWarning}
		default:
			m.status = LogEntry{Message: fmt.Sprintf("Saved %s to %s", msg.Artist, msg.Report.Folder), Level: download.LevelSuccess}
		}

	case PlayedMsg:
		if msg.Err != nil {
			m.status = LogEntry{Message: fmt.Sprintf("Cannot play %s: %v", msg.Song, msg.Err), Level: download.LevelError}
		} else {
			m.status = LogEntry{Message: "Playing " + msg.Song, Level: download.LevelInfo}
		}

	case ExportedMsg:
		if msg.Err != nil {
			m.status = LogEntry{Message: fmt.Sprintf("Export failed: %v", msg.Err), Level: download.LevelError}
		} else {
			m.status = LogEntry{Message: "Playlist written to " + msg.Path, Level: download.LevelSuccess}
		}

	case TickMsg:
		if m.saving && m.opts.Manager != nil {
			_, saved, total := m.opts.Manager.GetProgress()
			if n := total - m.saveBase[1]; n > 0 {
				m.savePct = float64(saved-m.saveBase[0]) / float64(n)
			}
			cmds = append(cmds, m.progress.SetPercent(m.savePct), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.cancel()
		return m, tea.Quit

	case "r":
		m.state = library.StateLoading
		m.status = LogEntry{}
		m.run = m.opts.Pipeline.Begin()
		return m, tea.Batch(m.load(), m.spinner.Tick)
	}

	if m.state != library.StateLoaded {
		return m, nil
	}

	artists := m.result.Artists
	switch msg.String() {
	case "up", "k":
		if m.expanded >= 0 {
			if m.songCursor > 0 {
				m.songCursor--
			}
		} else if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.expanded >= 0 {
			if m.songCursor < len(artists[m.expanded].Songs)-1 {
				m.songCursor++
			}
		} else if m.cursor < len(artists)-1 {
			m.cursor++
		}

	case "enter":
		if m.expanded != m.cursor {
			m.expanded = m.cursor
			m.songCursor = 0
			return m, nil
		}
		songs := artists[m.cursor].Songs
		if len(songs) > 0 {
			return m, m.play(songs[m.songCursor])
		}

	case "esc":
		m.expanded = -1
		m.songCursor = 0

	case "s":
		if m.opts.Manager == nil {
			m.status = LogEntry{Message: "Saving is disabled", Level: download.LevelWarning}
			return m, nil
		}
		if m.saving {
			return m, nil
		}
		m.saving = true
		m.savePct = 0
		_, saved, total := m.opts.Manager.GetProgress()
		m.saveBase = [2]int32{saved, total}
		return m, tea.Batch(m.save(artists[m.cursor]), m.tickProgress())

	case "e":
		return m, m.export(artists[m.cursor])
	}

	return m, nil
}

// load executes the run claimed by m.run in the background.
func (m Model) load() tea.Cmd {
	pipeline, ctx, run := m.opts.Pipeline, m.ctx, m.run
	return func() tea.Msg {
		return LoadedMsg{Result: pipeline.RunToken(ctx, run)}
	}
}

// listen waits for the next save progress event.
func (m Model) listen() tea.Cmd {
	feed := m.opts.Feed
	if feed == nil {
		return nil
	}
	return func() tea.Msg {
		return ProgressMsg{Event: <-feed}
	}
}

func (m Model) save(artist *model.Artist) tea.Cmd {
	manager, ctx := m.opts.Manager, m.ctx
	return func() tea.Msg {
		report, err := manager.SaveArtist(ctx, artist)
		return SavedMsg{Artist: artist.DisplayName, Report: report, Err: err}
	}
}

func (m Model) play(song *model.Song) tea.Cmd {
	player := m.opts.Player
	return func() tea.Msg {
		if player == nil {
			return PlayedMsg{Song: song.Title, Err: audio.ErrNoPlayer}
		}
		return PlayedMsg{Song: song.Title, Err: player.Play(song.MediaURL)}
	}
}

// export writes a streaming playlist of the artist to ExportDir.
func (m Model) export(artist *model.Artist) tea.Cmd {
	format, extended, dir := m.exportFmt, m.opts.Settings.M3UExtended, m.opts.ExportDir
	return func() tea.Msg {
		paths := artist.Paths(&model.PathConfig{DownloadsPath: dir, PlaylistFormat: format})
		content := audio.NewPlaylistCreator(format, extended).CreatePlaylist(artist, audio.StreamLocator)
		if err := ioutils.WriteFile(paths.PlaylistPath, []byte(content)); err != nil {
			return ExportedMsg{Err: err}
		}
		return ExportedMsg{Path: filepath.Clean(paths.PlaylistPath)}
	}
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// Run starts the TUI application.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
