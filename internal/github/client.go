package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/xeptore/flaw/v8"

	"github.com/handiism/happeytunes/internal/github/dto"
	httpclient "github.com/handiism/happeytunes/internal/http"
	"github.com/handiism/happeytunes/internal/log"
	"github.com/handiism/happeytunes/internal/model"
)

// ErrFolderNotFound is logged when an artist folder disappears between the
// root listing and the folder lookup. FetchArtist never returns it.
var ErrFolderNotFound = errors.New("artist folder not found")

var apiHeaders = map[string]string{
	"Accept":               "application/vnd.github+json",
	"X-GitHub-Api-Version": "2022-11-28",
}

// Client reads artists and songs from a repository through the contents API.
//
// Client implements both halves of the discovery pipeline:
//   - ListArtists lists the repository root and returns folder names
//   - FetchArtist lists one folder and turns it into a model.Artist
//
// Example usage:
//
//	client := NewClient(repo, httpclient.NewClient("HappeyTunes", 30*time.Second), logger)
//
//	folders, err := client.ListArtists(ctx)
//	if errors.Is(err, ErrRepositoryNotFound) {
//	    // check owner, repository and visibility
//	}
//
//	for _, folder := range folders {
//	    artist := client.FetchArtist(ctx, folder)
//	    fmt.Printf("%s (%s)\n", artist.DisplayName, artist.SongCountLabel())
//	}
type Client struct {
	repo       Repository
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// NewClient creates a new Client for the given repository.
func NewClient(repo Repository, httpClient *httpclient.Client, logger zerolog.Logger) *Client {
	return &Client{
		repo:       repo,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Repository returns the repository the client reads from.
func (c *Client) Repository() Repository {
	return c.repo
}

// ListArtists lists the repository root and returns the names of all
// entries whose type is exactly "dir", in API order.
//
// Returns:
//   - ErrRepositoryNotFound if the root listing answers 404
//   - *StatusError for any other non-success status
//   - a wrapped transport or decoding error otherwise
func (c *Client) ListArtists(ctx context.Context) ([]string, error) {
	contentsURL := c.repo.ContentsURL("")

	resp, err := c.httpClient.Fetch(ctx, contentsURL, apiHeaders)
	if err != nil {
		return nil, fmt.Errorf("failed to list repository %s: %w", c.repo, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrRepositoryNotFound
	case !resp.OK():
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(resp.Body, "message").String(),
		}
	}

	entries, err := decodeEntries(contentsURL, resp.Body)
	if err != nil {
		return nil, err
	}

	folders := lo.FilterMap(entries, func(e dto.Entry, _ int) (string, bool) {
		return e.Name, e.IsDir()
	})

	c.logger.Debug().Int("entries", len(entries)).Int("folders", len(folders)).Msg("Listed repository root")
	return folders, nil
}

// FetchArtist lists one artist folder and builds its model.Artist.
//
// FetchArtist never fails: when the folder is missing, the API answers with
// an error status, or the request fails, the cause is logged and an artist
// with no songs and no icon is returned, so one broken folder cannot hide
// the others.
//
// Songs are files with an audio extension; the icon is the first file, in
// API order, that passes model.IsIconFile.
func (c *Client) FetchArtist(ctx context.Context, folder string) *model.Artist {
	entries, err := c.listFolder(ctx, folder)
	if err != nil {
		if errors.Is(err, ErrFolderNotFound) {
			c.logger.Warn().Str("artist", folder).Msg("Artist folder not found")
		} else {
			c.logger.Error().Str("artist", folder).Func(log.Flaw(err)).Msg("Failed to fetch artist folder")
		}
		return model.NewArtist(folder, nil, "")
	}

	songs := lo.FilterMap(entries, func(e dto.Entry, _ int) (*model.Song, bool) {
		if !e.IsFile() || !model.IsAudioFile(e.Name) {
			return nil, false
		}
		return model.NewSong(e.Name, c.repo.RawURL(folder, e.Name)), true
	})

	var iconURL string
	if icon, ok := lo.Find(entries, func(e dto.Entry) bool {
		return e.IsFile() && model.IsIconFile(e.Name)
	}); ok {
		iconURL = c.repo.RawURL(folder, icon.Name)
	}

	artist := model.NewArtist(folder, songs, iconURL)
	c.logger.Debug().Str("artist", folder).Int("songs", artist.SongCount).Bool("icon", artist.HasIcon()).Msg("Fetched artist")
	return artist
}

func (c *Client) listFolder(ctx context.Context, folder string) ([]dto.Entry, error) {
	contentsURL := c.repo.ContentsURL(folder)

	resp, err := c.httpClient.Fetch(ctx, contentsURL, apiHeaders)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrFolderNotFound
	case !resp.OK():
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(resp.Body, "message").String(),
		}
	}

	return decodeEntries(contentsURL, resp.Body)
}

func decodeEntries(contentsURL string, body []byte) ([]dto.Entry, error) {
	var entries []dto.Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		flawP := flaw.P{"url": contentsURL, "response_body": string(body)}
		return nil, flaw.From(fmt.Errorf("failed to decode contents listing: %v", err)).Append(flawP)
	}
	return entries, nil
}
