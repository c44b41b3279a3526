package download

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/happeytunes/internal/audio"
	"github.com/handiism/happeytunes/internal/config"
	httpclient "github.com/handiism/happeytunes/internal/http"
	ioutils "github.com/handiism/happeytunes/internal/io"
	"github.com/handiism/happeytunes/internal/log"
	"github.com/handiism/happeytunes/internal/model"
)

// coverSize is the maximum width and height of cover art embedded in tags.
const coverSize = 500

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a save progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Report summarizes one SaveArtist call.
type Report struct {
	// Folder is the local directory the artist was saved to.
	Folder string

	// Saved counts songs downloaded by this call.
	Saved int

	// Skipped counts songs already on disk with the remote size.
	Skipped int

	// Failed counts songs that could not be downloaded after all retries.
	Failed int

	// IconPath is the saved icon, empty if none was written.
	IconPath string

	// PlaylistPath is the written playlist, empty if none was written.
	PlaylistPath string
}

// Manager saves artists to the local disk.
//
// For each artist it:
//
//  1. Creates the artist folder from settings.DownloadsPath
//  2. Downloads the icon, resized and converted as configured
//  3. Downloads songs concurrently, skipping files already on disk
//  4. Tags MP3 songs with title, artist and cover art
//  5. Writes a playlist of the local files
//
// Failed downloads are retried with exponential backoff. A song that still
// fails is reported and left out of the playlist; it does not stop the
// other songs.
type Manager struct {
	settings   *config.Settings
	pathCfg    *model.PathConfig
	httpClient *httpclient.Client
	tagger     *audio.Tagger
	playlist   *audio.PlaylistCreator
	icons      *ioutils.IconProcessor
	album      string
	logger     zerolog.Logger

	totalFiles    atomic.Int32
	savedFiles    atomic.Int32
	receivedBytes atomic.Int64

	onProgress func(ProgressEvent)
}

// NewManager creates a new save Manager.
//
// onProgress may be nil. It is called from several goroutines at once.
func NewManager(settings *config.Settings, httpClient *httpclient.Client, logger zerolog.Logger, onProgress func(ProgressEvent)) *Manager {
	pathCfg := settings.ToPathConfig()

	tagCfg := audio.DefaultTagConfig()
	tagCfg.ModifyTags = settings.ModifyTags
	tagCfg.Album = audio.TagModify

	return &Manager{
		settings:   settings,
		pathCfg:    pathCfg,
		httpClient: httpClient,
		tagger:     audio.NewTagger(tagCfg),
		playlist:   audio.NewPlaylistCreator(pathCfg.PlaylistFormat, settings.M3UExtended),
		icons:      ioutils.NewIconProcessor(settings.IconMaxSize, settings.ConvertIconToJPG),
		album:      settings.RepositoryName(),
		logger:     logger,
		onProgress: onProgress,
	}
}

// GetProgress returns current save progress across all SaveArtist calls.
func (m *Manager) GetProgress() (received int64, filesSaved, filesTotal int32) {
	return m.receivedBytes.Load(), m.savedFiles.Load(), m.totalFiles.Load()
}

// SaveArtist downloads every song of artist into its local folder.
//
// The returned error is non-nil only when nothing could be saved: the
// folder could not be created or ctx was cancelled. Individual song
// failures are counted in the Report.
func (m *Manager) SaveArtist(ctx context.Context, artist *model.Artist) (*Report, error) {
	paths := artist.Paths(m.pathCfg)
	logger := m.logger.With().Str("artist", artist.FolderName).Str("folder", paths.Folder).Logger()
	report := &Report{Folder: paths.Folder}

	if err := ioutils.EnsureDir(paths.Folder); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating directory: %v", err), Level: LevelError})
		return report, err
	}

	m.totalFiles.Add(int32(len(artist.Songs)))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Saving %s (%s)", artist.DisplayName, artist.SongCountLabel()), Level: LevelInfo})

	var cover []byte
	if artist.HasIcon() && (m.settings.SaveIcon || m.settings.ModifyTags) {
		var err error
		report.IconPath, cover, err = m.saveIcon(ctx, artist, paths)
		if err != nil {
			logger.Warn().Func(log.Flaw(err)).Msg("Failed to save icon")
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading icon for %s: %v", artist.DisplayName, err), Level: LevelWarning})
		}
	}

	outcomes := make([]outcome, len(artist.Songs))

	g, gctx := errgroup.WithContext(ctx)
	if m.settings.MaxConcurrentDownloads > 0 {
		g.SetLimit(m.settings.MaxConcurrentDownloads)
	}

	for i, song := range artist.Songs {
		g.Go(func() error {
			info := audio.TagInfo{
				Path:   paths.SongPath(song),
				Song:   song,
				Artist: artist,
				Album:  m.album,
				Number: i + 1,
			}
			res, err := m.saveSong(gctx, info, cover)
			if err != nil {
				logger.Error().Str("song", song.Filename).Func(log.Flaw(err)).Msg("Failed to save song")
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", song.Title, err), Level: LevelError})
				res = outcomeFailed
			}
			outcomes[i] = res
			// Continue with other songs
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	saved := *artist
	saved.Songs = make([]*model.Song, 0, len(artist.Songs))
	for i, res := range outcomes {
		switch res {
		case outcomeSaved:
			report.Saved++
		case outcomeSkipped:
			report.Skipped++
		default:
			report.Failed++
			continue
		}
		saved.Songs = append(saved.Songs, artist.Songs[i])
	}
	saved.SongCount = len(saved.Songs)

	if m.settings.CreatePlaylist && saved.SongCount > 0 {
		content := m.playlist.CreatePlaylist(&saved, func(song *model.Song) string {
			return filepath.Base(paths.SongPath(song))
		})
		if err := ioutils.WriteFile(paths.PlaylistPath, []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		} else {
			report.PlaylistPath = paths.PlaylistPath
			m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist for %s", artist.DisplayName), Level: LevelSuccess})
		}
	}

	logger.Info().
		Int("saved", report.Saved).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("Artist saved")

	if report.Failed == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Successfully saved %s", artist.DisplayName), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s, %d songs failed", artist.DisplayName, report.Failed), Level: LevelWarning})
	}

	return report, nil
}

type outcome int

const (
	outcomeFailed outcome = iota
	outcomeSaved
	outcomeSkipped
)

func (m *Manager) saveSong(ctx context.Context, info audio.TagInfo, cover []byte) (outcome, error) {
	song := info.Song

	// Check if file already exists with the remote size
	if size, err := m.httpClient.GetFileSize(ctx, song.MediaURL); err == nil {
		same, err := ioutils.SizeMatches(info.Path, size)
		if err != nil {
			return outcomeFailed, err
		}
		if same {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", filepath.Base(info.Path)), Level: LevelVerbose})
			m.savedFiles.Add(1)
			return outcomeSkipped, nil
		}
	}

	part := info.Path + ".part"
	defer os.Remove(part)

	err := m.retry(ctx, song.Title, func() error {
		var last int64
		return m.httpClient.DownloadFile(ctx, song.MediaURL, part, func(written, _ int64) {
			m.receivedBytes.Add(written - last)
			last = written
		})
	})
	if err != nil {
		return outcomeFailed, err
	}
	if err := os.Rename(part, info.Path); err != nil {
		return outcomeFailed, err
	}

	m.savedFiles.Add(1)

	// Tag the file
	if m.settings.ModifyTags || cover != nil {
		if err := m.tagger.SaveTags(info, cover); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", song.Title, err), Level: LevelWarning})
		}
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(info.Path)), Level: LevelVerbose})
	return outcomeSaved, nil
}

// saveIcon downloads the artist icon. It returns the saved path (empty if
// the icon is only used as cover art) and the cover art for tags.
func (m *Manager) saveIcon(ctx context.Context, artist *model.Artist, paths *model.ArtistPaths) (string, []byte, error) {
	var data []byte
	err := m.retry(ctx, "icon", func() error {
		var err error
		data, err = m.httpClient.DownloadBytes(ctx, artist.IconURL)
		return err
	})
	if err != nil {
		return "", nil, err
	}

	var cover []byte
	if m.settings.ModifyTags {
		// Not every icon decodes; tags are then written without cover art.
		cover, _ = m.icons.Thumbnail(data, coverSize)
	}

	if !m.settings.SaveIcon {
		return "", cover, nil
	}

	ext := filepath.Ext(paths.IconPath)
	out, newExt, err := m.icons.Process(data, ext)
	if err != nil {
		// Keep the original bytes when the icon cannot be decoded
		out, newExt = data, ext
	}

	iconPath := strings.TrimSuffix(paths.IconPath, ext) + newExt
	if err := ioutils.WriteFile(iconPath, out); err != nil {
		return "", cover, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded icon for %s", artist.DisplayName), Level: LevelVerbose})
	return iconPath, cover, nil
}

// retry runs op until it succeeds, a permanent error occurs or the
// configured number of retries is exhausted.
//
// Intervals grow as cooldown * exponent^n seconds. Client errors (4xx) are
// permanent: the file will not appear by asking again.
func (m *Manager) retry(ctx context.Context, what string, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(m.settings.DownloadRetryCooldown * float64(time.Second))
	b.Multiplier = m.settings.DownloadRetryExponent
	b.RandomizationFactor = 0
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0

	retries := max(m.settings.DownloadMaxRetries, 0)
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		err := op()
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) && statusErr.Code >= http.StatusBadRequest && statusErr.Code < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		attempt++
		m.logger.Debug().Err(err).Str("file", what).Int("attempt", attempt).Dur("wait", wait).Msg("Retrying download")
		m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s", attempt, retries, what), Level: LevelWarning})
	})
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
