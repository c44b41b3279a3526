package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/handiism/happeytunes/internal/model"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "HAPPEYTUNES_"

// Settings holds all configuration options.
type Settings struct {
	// Repository coordinates
	Owner      string `json:"owner"      yaml:"owner"`
	Repository string `json:"repository" yaml:"repository"`
	Branch     string `json:"branch"     yaml:"branch"`
	APIRoot    string `json:"api_root"   yaml:"api_root"`
	RawRoot    string `json:"raw_root"   yaml:"raw_root"`

	// HTTP settings
	UserAgent             string   `json:"user_agent"              yaml:"user_agent"`
	RequestTimeout        Duration `json:"request_timeout"         yaml:"request_timeout"`
	MaxConcurrentRequests int      `json:"max_concurrent_requests" yaml:"max_concurrent_requests"`

	// Offline save settings
	DownloadsPath          string  `json:"downloads_path"           yaml:"downloads_path"`
	MaxConcurrentDownloads int     `json:"max_concurrent_downloads" yaml:"max_concurrent_downloads"`
	DownloadMaxRetries     int     `json:"download_max_retries"     yaml:"download_max_retries"`
	DownloadRetryCooldown  float64 `json:"download_retry_cooldown"  yaml:"download_retry_cooldown"`
	DownloadRetryExponent  float64 `json:"download_retry_exponent"  yaml:"download_retry_exponent"`

	// Icon settings
	SaveIcon         bool   `json:"save_icon"          yaml:"save_icon"`
	IconFileName     string `json:"icon_file_name"     yaml:"icon_file_name"`
	IconMaxSize      int    `json:"icon_max_size"      yaml:"icon_max_size"`
	ConvertIconToJPG bool   `json:"convert_icon_to_jpg" yaml:"convert_icon_to_jpg"`

	// Tag settings
	ModifyTags bool `json:"modify_tags" yaml:"modify_tags"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist" yaml:"create_playlist"`
	PlaylistFormat string `json:"playlist_format" yaml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"    yaml:"m3u_extended"`

	// Playback
	PlayerCommand string `json:"player_command" yaml:"player_command"`

	// Logging
	LogFile string `json:"log_file" yaml:"log_file"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	return &Settings{
		Owner:      "TotallyNotHappey",
		Repository: "HappeyTunes",
		Branch:     "main",
		APIRoot:    "https://api.github.com/repos",
		RawRoot:    "https://raw.githubusercontent.com",

		UserAgent:             "HappeyTunes",
		RequestTimeout:        Duration(30 * time.Second),
		MaxConcurrentRequests: 0,

		DownloadsPath:          filepath.Join(homeDir, "Music", "HappeyTunes", "{artist}"),
		MaxConcurrentDownloads: 4,
		DownloadMaxRetries:     7,
		DownloadRetryCooldown:  0.2,
		DownloadRetryExponent:  4.0,

		SaveIcon:         true,
		IconFileName:     "cover",
		IconMaxSize:      1000,
		ConvertIconToJPG: true,

		ModifyTags: true,

		CreatePlaylist: true,
		PlaylistFormat: "m3u",
		M3UExtended:    true,

		PlayerCommand: "mpv --no-video",

		LogFile: filepath.Join(cacheDir, "happeytunes", "happeytunes.log"),
	}
}

// DefaultPath returns the default settings file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "happeytunes.json"
	}
	return filepath.Join(dir, "happeytunes", "config.json")
}

// Load reads settings from a JSON or YAML file.
//
// The format is chosen by extension: ".yaml" and ".yml" are parsed as YAML,
// anything else as JSON. Missing fields keep their default values and a
// missing file yields DefaultSettings.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file %q: %v", path, err)
		}
	} else if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %q: %v", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings with HAPPEYTUNES_* environment variables.
//
// Recognized variables: OWNER, REPOSITORY, BRANCH, API_ROOT, RAW_ROOT,
// REQUEST_TIMEOUT (Go duration), DOWNLOADS_PATH, PLAYER_COMMAND, LOG_FILE.
func (s *Settings) ApplyEnv() error {
	strs := map[string]*string{
		"OWNER":          &s.Owner,
		"REPOSITORY":     &s.Repository,
		"BRANCH":         &s.Branch,
		"API_ROOT":       &s.APIRoot,
		"RAW_ROOT":       &s.RawRoot,
		"DOWNLOADS_PATH": &s.DownloadsPath,
		"PLAYER_COMMAND": &s.PlayerCommand,
		"LOG_FILE":       &s.LogFile,
	}
	for name, field := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*field = v
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sREQUEST_TIMEOUT %q: %v", EnvPrefix, v, err)
		}
		s.RequestTimeout = Duration(d)
	}

	if v, ok := os.LookupEnv(EnvPrefix + "MAX_CONCURRENT_REQUESTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_CONCURRENT_REQUESTS %q: %v", EnvPrefix, v, err)
		}
		s.MaxConcurrentRequests = n
	}

	return nil
}

// Validate checks that the repository coordinates are usable.
func (s *Settings) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Owner) == "" {
		errs = append(errs, errors.New("owner is empty"))
	}
	if strings.TrimSpace(s.Repository) == "" {
		errs = append(errs, errors.New("repository is empty"))
	}
	if strings.TrimSpace(s.Branch) == "" {
		errs = append(errs, errors.New("branch is empty"))
	}
	if strings.TrimSpace(s.APIRoot) == "" {
		errs = append(errs, errors.New("api root is empty"))
	}
	if strings.TrimSpace(s.RawRoot) == "" {
		errs = append(errs, errors.New("raw root is empty"))
	}
	if s.MaxConcurrentRequests < 0 {
		errs = append(errs, errors.New("max concurrent requests is negative"))
	}
	return errors.Join(errs...)
}

// RepositoryName returns "owner/repository".
func (s *Settings) RepositoryName() string {
	return s.Owner + "/" + s.Repository
}

// ToPathConfig converts settings to PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		DownloadsPath:  s.DownloadsPath,
		IconFileName:   s.IconFileName,
		PlaylistFormat: model.ParsePlaylistFormat(s.PlaylistFormat),
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
