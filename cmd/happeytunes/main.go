package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"github.com/xeptore/flaw/v8"

	"github.com/handiism/happeytunes/internal/app"
	"github.com/handiism/happeytunes/internal/audio"
	"github.com/handiism/happeytunes/internal/config"
	"github.com/handiism/happeytunes/internal/download"
	ioutils "github.com/handiism/happeytunes/internal/io"
	"github.com/handiism/happeytunes/internal/library"
	"github.com/handiism/happeytunes/internal/log"
	"github.com/handiism/happeytunes/internal/model"
)

const (
	flagConfig  = "config"
	flagOwner   = "owner"
	flagRepo    = "repo"
	flagBranch  = "branch"
	flagVerbose = "verbose"
	flagJSON    = "json"
	flagArtist  = "artist"
	flagFormat  = "format"
	flagOut     = "out"
)

func main() {
	logger := log.NewPretty(os.Stderr).Level(zerolog.InfoLevel)
	if err := godotenv.Load(); nil != err {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Fatal().Err(err).Msg("Failed to load .env file")
		}
	}

	//nolint:exhaustruct
	cliApp := &cli.App{
		Name:    "happeytunes",
		Usage:   "Browse music stored in a GitHub repository",
		Suggest: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagConfig, Aliases: []string{"c"}, Usage: "Config file path (JSON or YAML)", Value: config.DefaultPath()},
			&cli.StringFlag{Name: flagOwner, Usage: "Repository owner"},
			&cli.StringFlag{Name: flagRepo, Usage: "Repository name"},
			&cli.StringFlag{Name: flagBranch, Usage: "Branch holding the music"},
			&cli.BoolFlag{Name: flagVerbose, Aliases: []string{"v"}, Usage: "Show debug logs"},
		},
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List artists and their songs",
				Action:  list,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagJSON, Usage: "Print JSON instead of text"},
				},
			},
			{
				Name:   "playlist",
				Usage:  "Export a streaming playlist of an artist",
				Action: playlist,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagArtist, Aliases: []string{"a"}, Usage: "Artist name or folder", Required: true},
					&cli.StringFlag{Name: flagFormat, Aliases: []string{"f"}, Usage: "m3u, pls, wpl or zpl"},
					&cli.StringFlag{Name: flagOut, Aliases: []string{"o"}, Usage: "Output file (default: stdout)"},
				},
			},
			{
				Name:   "save",
				Usage:  "Save an artist to the downloads folder",
				Action: save,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagArtist, Aliases: []string{"a"}, Usage: "Artist name or folder", Required: true},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); nil != err {
		if errors.Is(err, context.Canceled) {
			logger.Warn().Msg("Interrupted")
			os.Exit(130)
		}
		if flawErr := new(flaw.Flaw); errors.As(err, &flawErr) {
			logger.Fatal().Func(log.Flaw(flawErr)).Msg("Application exited with flaw")
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads settings from the global flags and builds the application.
func setup(cliCtx *cli.Context) (context.Context, context.CancelFunc, *app.App, error) {
	level := zerolog.InfoLevel
	if cliCtx.Bool(flagVerbose) {
		level = zerolog.DebugLevel
	}
	logger := log.NewPretty(os.Stderr).Level(level)

	settings, err := app.LoadSettings(cliCtx.String(flagConfig), app.Overrides{
		Owner:      cliCtx.String(flagOwner),
		Repository: cliCtx.String(flagRepo),
		Branch:     cliCtx.String(flagBranch),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Debug().Str("repository", settings.RepositoryName()).Str("branch", settings.Branch).Msg("Settings loaded")

	ctx, cancel := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
	return ctx, cancel, app.New(settings, logger), nil
}

func list(cliCtx *cli.Context) error {
	ctx, cancel, a, err := setup(cliCtx)
	if err != nil {
		return err
	}
	defer cancel()

	result := a.Pipeline.Run(ctx)
	if err := resultError(a, result); err != nil {
		return err
	}

	if cliCtx.Bool(flagJSON) {
		return writeJSON(cliCtx.App.Writer, result.Artists)
	}
	writeText(cliCtx.App.Writer, result)
	return nil
}

// resultError turns a fatal pipeline result into a user facing error.
func resultError(a *app.App, result *library.Result) error {
	switch result.Kind {
	case library.ErrorKindRepositoryNotFound:
		return fmt.Errorf("repository %s not found. %s", a.Settings.RepositoryName(), library.NotFoundHint)
	case library.ErrorKindListingFailed:
		return fmt.Errorf("failed to load artists: %w", result.Err)
	}
	return nil
}

type songJSON struct {
	Title    string `json:"title"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

type artistJSON struct {
	Name      string     `json:"name"`
	Folder    string     `json:"folder"`
	IconURL   string     `json:"icon_url,omitempty"`
	SongCount int        `json:"song_count"`
	Songs     []songJSON `json:"songs"`
}

func writeJSON(w io.Writer, artists []*model.Artist) error {
	out := make([]artistJSON, len(artists))
	for i, artist := range artists {
		songs := make([]songJSON, len(artist.Songs))
		for j, song := range artist.Songs {
			songs[j] = songJSON{Title: song.Title, Filename: song.Filename, URL: song.MediaURL}
		}
		out[i] = artistJSON{
			Name:      artist.DisplayName,
			Folder:    artist.FolderName,
			IconURL:   artist.IconURL,
			SongCount: artist.SongCount,
			Songs:     songs,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeText(w io.Writer, result *library.Result) {
	if result.State == library.StateEmpty {
		fmt.Fprintln(w, "No artists found")
		return
	}

	fmt.Fprintln(w, result.Header())
	for _, artist := range result.Artists {
		fmt.Fprintf(w, "\n%s (%s)\n", artist.DisplayName, artist.SongCountLabel())
		for _, song := range artist.Songs {
			fmt.Fprintf(w, "  %s\n", song.Title)
		}
	}
}

func playlist(cliCtx *cli.Context) error {
	ctx, cancel, a, err := setup(cliCtx)
	if err != nil {
		return err
	}
	defer cancel()

	artist, err := a.FindArtist(ctx, cliCtx.String(flagArtist))
	if err != nil {
		return err
	}

	formatName := cliCtx.String(flagFormat)
	if formatName == "" {
		formatName = a.Settings.PlaylistFormat
	}
	creator := audio.NewPlaylistCreator(model.ParsePlaylistFormat(formatName), a.Settings.M3UExtended)
	content := creator.CreatePlaylist(artist, audio.StreamLocator)

	out := cliCtx.String(flagOut)
	if out == "" {
		_, err := io.WriteString(cliCtx.App.Writer, content)
		return err
	}
	if err := ioutils.WriteFile(out, []byte(content)); err != nil {
		return err
	}
	a.Logger.Info().Str("artist", artist.DisplayName).Str("path", out).Msg("Playlist written")
	return nil
}

func save(cliCtx *cli.Context) error {
	ctx, cancel, a, err := setup(cliCtx)
	if err != nil {
		return err
	}
	defer cancel()

	artist, err := a.FindArtist(ctx, cliCtx.String(flagArtist))
	if err != nil {
		return err
	}

	verbose := cliCtx.Bool(flagVerbose)
	manager := download.NewManager(a.Settings, a.HTTP, a.Logger.With().Str("module", "download").Logger(), func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !verbose {
			return
		}
		fmt.Fprintln(cliCtx.App.ErrWriter, progressPrefix(event.Level)+event.Message)
	})

	report, err := manager.SaveArtist(ctx, artist)
	if err != nil {
		return err
	}

	received, saved, total := manager.GetProgress()
	fmt.Fprintf(cliCtx.App.Writer, "✨ Saved %d/%d files to %s (%.2f MB)\n", saved, total, report.Folder, float64(received)/1024/1024)
	if report.Failed > 0 {
		return fmt.Errorf("%d songs failed", report.Failed)
	}
	return nil
}

func progressPrefix(level download.ProgressLevel) string {
	switch level {
	case download.LevelError:
		return "❌ "
	case download.LevelWarning:
		return "⚠️  "
	case download.LevelSuccess:
		return "✅ "
	case download.LevelInfo:
		return "ℹ️  "
	default:
		return "   "
	}
}
