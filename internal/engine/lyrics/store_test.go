package lyrics

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSongsMissing(t *testing.T) {
	_, err := LoadSongs(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadSongsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := LoadSongs(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode lyrics dataset")
}

func TestSaveSongsNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.json")
	require.NoError(t, SaveSongs(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestSaveSongsNoHTMLEscape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.json")
	require.NoError(t, SaveSongs(path, []Song{{Title: "Rock & Roll <3", Lyrics: "a"}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Rock & Roll <3")
}

func TestFindSong(t *testing.T) {
	songs := []Song{{Title: "Glitter in the Rearview"}, {Title: "Paper Crowns"}}

	s, err := FindSong(songs, "  paper crowns ")
	require.NoError(t, err)
	assert.Equal(t, "Paper Crowns", s.Title)

	_, err = FindSong(songs, "Missing")
	assert.ErrorIs(t, err, ErrSongNotFound)
}
