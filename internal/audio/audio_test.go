package audio

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/happeytunes/internal/model"
)

func TestPlayer_Command(t *testing.T) {
	p := NewPlayer("mpv  --no-video", zerolog.Nop())

	got := p.Command("https://raw.example/a.mp3")

	assert.Equal(t, []string{"mpv", "--no-video", "https://raw.example/a.mp3"}, got)
}

func TestPlayer_NoCommand(t *testing.T) {
	p := NewPlayer("   ", zerolog.Nop())

	assert.Nil(t, p.Command("x"))
	assert.ErrorIs(t, p.Play("x"), ErrNoPlayer)
}

func TestPlayer_Play(t *testing.T) {
	bin, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true(1) not available")
	}

	p := NewPlayer(bin, zerolog.Nop())
	assert.NoError(t, p.Play("https://raw.example/a.mp3"))
}

func TestPlayer_PlayMissingBinary(t *testing.T) {
	p := NewPlayer("definitely-not-a-player-binary", zerolog.Nop())
	assert.Error(t, p.Play("https://raw.example/a.mp3"))
}

func TestTagger_SaveTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))

	artist := model.NewArtist("Daft_Punk", nil, "")
	song := model.NewSong("One More Time.mp3", "")

	tagger := NewTagger(nil)
	err := tagger.SaveTags(TagInfo{Path: path, Song: song, Artist: artist, Number: 3}, []byte{0xff, 0xd8})
	require.NoError(t, err)

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()

	assert.Equal(t, "Daft Punk", tag.Artist())
	assert.Equal(t, "One More Time", tag.Title())
	assert.Equal(t, "3", tag.GetTextFrame("TRCK").Text)
	assert.Len(t, tag.GetFrames(tag.CommonID("Attached picture")), 1)
}

func TestTagger_SkipsNonMP3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.ogg")
	require.NoError(t, os.WriteFile(path, []byte("ogg"), 0o644))

	tagger := NewTagger(nil)
	err := tagger.SaveTags(TagInfo{Path: path, Song: model.NewSong("song.ogg", ""), Artist: model.NewArtist("A", nil, "")}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ogg", string(data))
}

func TestTagger_ModifyTagsDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))

	tagger := NewTagger(&TagConfig{ModifyTags: false, TrackTitle: TagModify})
	err := tagger.SaveTags(TagInfo{Path: path, Song: model.NewSong("x.mp3", ""), Artist: model.NewArtist("A", nil, "")}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not really audio", string(data), "nothing to write leaves the file untouched")
}

func TestTagger_ModifyTagsDisabledWithArtwork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))

	tagger := NewTagger(&TagConfig{ModifyTags: false, TrackTitle: TagModify})
	err := tagger.SaveTags(TagInfo{Path: path, Song: model.NewSong("x.mp3", ""), Artist: model.NewArtist("A", nil, "")}, []byte{0xFF, 0xD8, 0xFF})
	require.NoError(t, err)

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()
	assert.Empty(t, tag.Title())
	assert.Len(t, tag.GetFrames(tag.CommonID("Attached picture")), 1)
}
