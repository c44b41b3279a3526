package ioutils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile writes data to path through a temporary file in the same
// directory, so readers never observe a partially written file.
//
// The parent directory is created if needed. The final file has mode 0644.
//
// Example:
//
//	playlist := []byte("#EXTM3U\n...")
//	err := WriteFile("/music/Daft Punk/Daft Punk.m3u", playlist)
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// SizeMatches reports whether path exists and is exactly size bytes long.
//
// A non-positive size never matches, since it means the remote size is
// unknown. Used to skip songs that were saved by an earlier run.
func SizeMatches(path string, size int64) (bool, error) {
	if size <= 0 {
		return false, nil
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return info.Mode().IsRegular() && info.Size() == size, nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/music/HappeyTunes/Daft Punk")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
