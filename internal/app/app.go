// Package app wires settings, HTTP client, GitHub client and pipeline
// together for the happeytunes binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/handiism/happeytunes/internal/config"
	"github.com/handiism/happeytunes/internal/github"
	httpclient "github.com/handiism/happeytunes/internal/http"
	"github.com/handiism/happeytunes/internal/library"
	"github.com/handiism/happeytunes/internal/model"
)

// ErrArtistNotFound is returned by FindArtist when no folder matches.
var ErrArtistNotFound = errors.New("artist not found")

// Overrides are command line values that take precedence over the settings
// file and the environment. Empty fields are ignored.
type Overrides struct {
	Owner      string
	Repository string
	Branch     string
}

// LoadSettings reads the settings file at path, applies HAPPEYTUNES_*
// environment variables and then overrides, and validates the result.
func LoadSettings(path string, overrides Overrides) (*config.Settings, error) {
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}

	if overrides.Owner != "" {
		settings.Owner = overrides.Owner
	}
	if overrides.Repository != "" {
		settings.Repository = overrides.Repository
	}
	if overrides.Branch != "" {
		settings.Branch = overrides.Branch
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// App holds the long-lived components shared by the CLI and the TUI.
type App struct {
	Settings *config.Settings
	HTTP     *httpclient.Client
	GitHub   *github.Client
	Pipeline *library.Pipeline
	Logger   zerolog.Logger
}

// New builds an App from validated settings.
func New(settings *config.Settings, logger zerolog.Logger) *App {
	httpClient := httpclient.NewClient(settings.UserAgent, settings.RequestTimeout.Std())
	gh := github.NewClient(github.RepositoryFromSettings(settings), httpClient, logger.With().Str("module", "github").Logger())

	return &App{
		Settings: settings,
		HTTP:     httpClient,
		GitHub:   gh,
		Pipeline: library.NewPipeline(gh, gh, settings.MaxConcurrentRequests, logger.With().Str("module", "library").Logger()),
		Logger:   logger,
	}
}

// FindArtist runs the pipeline and returns the artist matching name.
//
// A failed run returns the root listing error; an empty repository or a
// missing folder returns ErrArtistNotFound.
func (a *App) FindArtist(ctx context.Context, name string) (*model.Artist, error) {
	result := a.Pipeline.Run(ctx)
	if result.State == library.StateError {
		return nil, result.Err
	}

	artist, ok := model.FindArtist(result.Artists, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrArtistNotFound, name)
	}
	return artist, nil
}
