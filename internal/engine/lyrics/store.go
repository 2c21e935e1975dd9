package lyrics

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrSongNotFound is returned when a title is not in the dataset.
var ErrSongNotFound = errors.New("song not found")

// SaveSongs writes the dataset as indented JSON, creating parent directories.
func SaveSongs(path string, songs []Song) error {
	if songs == nil {
		songs = []Song{}
	}
	return writeJSON(path, songs)
}

// LoadSongs reads a dataset written by SaveSongs. A missing file yields an
// error wrapping fs.ErrNotExist.
func LoadSongs(path string) ([]Song, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("lyrics dataset not found at %s: %w", path, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("read lyrics dataset: %w", err)
	}
	var songs []Song
	if err := json.Unmarshal(data, &songs); err != nil {
		return nil, fmt.Errorf("decode lyrics dataset %s: %w", path, err)
	}
	return songs, nil
}

// FindSong returns the song with the given title, case-insensitively.
func FindSong(songs []Song, title string) (Song, error) {
	title = strings.TrimSpace(title)
	for _, s := range songs {
		if strings.EqualFold(s.Title, title) {
			return s, nil
		}
	}
	return Song{}, fmt.Errorf("%w: %q", ErrSongNotFound, title)
}

// writeJSON writes v with two-space indentation and no HTML escaping.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
