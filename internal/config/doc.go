// Package config provides configuration management for happeytunes.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Environment variable overrides (HAPPEYTUNES_*)
//   - Conversion to PathConfig for other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Reads TotallyNotHappey/HappeyTunes on branch main
//	// Saves artists to ~/Music/HappeyTunes/{artist}
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//	if err := settings.ApplyEnv(); err != nil { ... }
//	if err := settings.Validate(); err != nil { ... }
//
// # Configuration Options
//
// Settings includes options for:
//   - Repository coordinates (owner, repository, branch, API and raw roots)
//   - Request timeout and fan-out limit
//   - Offline save paths, retries and icon handling
//   - Playlist generation and ID3 tag modification
//   - External player command and log file
package config
