package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/happeytunes/internal/model"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "TotallyNotHappey", s.Owner)
	assert.Equal(t, "HappeyTunes", s.Repository)
	assert.Equal(t, "main", s.Branch)
	assert.Equal(t, 30*time.Second, s.RequestTimeout.Std())
	assert.NoError(t, s.Validate())
	assert.Equal(t, "TotallyNotHappey/HappeyTunes", s.RepositoryName())
}

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings().Owner, s.Owner)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"owner":"octocat","branch":"master","request_timeout":"5s","max_concurrent_requests":3}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "octocat", s.Owner)
	assert.Equal(t, "HappeyTunes", s.Repository, "unset fields keep defaults")
	assert.Equal(t, "master", s.Branch)
	assert.Equal(t, 5*time.Second, s.RequestTimeout.Std())
	assert.Equal(t, 3, s.MaxConcurrentRequests)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "owner: someone\nrepository: tunes\nrequest_timeout: 2\nplaylist_format: pls\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "someone", s.Owner)
	assert.Equal(t, "tunes", s.Repository)
	assert.Equal(t, 2*time.Second, s.RequestTimeout.Std())
	assert.Equal(t, model.PlaylistFormatPLS, s.ToPathConfig().PlaylistFormat)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"owner":`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			s := DefaultSettings()
			s.Owner = "roundtrip"
			s.RequestTimeout = Duration(1500 * time.Millisecond)
			require.NoError(t, s.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "roundtrip", loaded.Owner)
			assert.Equal(t, 1500*time.Millisecond, loaded.RequestTimeout.Std())
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("HAPPEYTUNES_OWNER", "env-owner")
	t.Setenv("HAPPEYTUNES_BRANCH", "dev")
	t.Setenv("HAPPEYTUNES_REQUEST_TIMEOUT", "10s")
	t.Setenv("HAPPEYTUNES_MAX_CONCURRENT_REQUESTS", "8")

	s := DefaultSettings()
	require.NoError(t, s.ApplyEnv())

	assert.Equal(t, "env-owner", s.Owner)
	assert.Equal(t, "dev", s.Branch)
	assert.Equal(t, 10*time.Second, s.RequestTimeout.Std())
	assert.Equal(t, 8, s.MaxConcurrentRequests)
}

func TestApplyEnv_InvalidTimeout(t *testing.T) {
	t.Setenv("HAPPEYTUNES_REQUEST_TIMEOUT", "soon")

	s := DefaultSettings()
	assert.Error(t, s.ApplyEnv())
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	s.Owner = " "
	s.Branch = ""

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner is empty")
	assert.Contains(t, err.Error(), "branch is empty")
}
