package lyrics

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// QuestionEntry is one logged user question.
type QuestionEntry struct {
	ID        int64  `json:"id,omitempty"`
	SongTitle string `json:"song_title"`
	Excerpt   string `json:"excerpt"`
	Question  string `json:"question"`
	Timestamp string `json:"timestamp"`
}

func newQuestionEntry(songTitle, excerpt, question string, now time.Time) QuestionEntry {
	return QuestionEntry{
		SongTitle: songTitle,
		Excerpt:   strings.TrimSpace(excerpt),
		Question:  strings.TrimSpace(question),
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// QuestionLog stores asked questions in SQLite.
type QuestionLog struct {
	db  *sql.DB
	now func() time.Time
}

// OpenQuestionLog opens (or creates) the question log database at path.
func OpenQuestionLog(path string) (*QuestionLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("questions: mkdir %s: %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("questions: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initQuestionSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("questions: init schema: %w", err)
	}
	return &QuestionLog{db: db, now: time.Now}, nil
}

func initQuestionSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS questions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		song_title TEXT NOT NULL,
		excerpt    TEXT NOT NULL DEFAULT '',
		question   TEXT NOT NULL,
		timestamp  TEXT NOT NULL
	)`)
	return err
}

// Close closes the database.
func (l *QuestionLog) Close() error { return l.db.Close() }

// Append logs a question. Excerpt and question are stored trimmed.
func (l *QuestionLog) Append(ctx context.Context, songTitle, excerpt, question string) (QuestionEntry, error) {
	e := newQuestionEntry(songTitle, excerpt, question, l.now())
	if e.Question == "" {
		return QuestionEntry{}, errors.New("questions: question is required")
	}
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO questions (song_title, excerpt, question, timestamp) VALUES (?, ?, ?, ?)`,
		e.SongTitle, e.Excerpt, e.Question, e.Timestamp,
	)
	if err != nil {
		return QuestionEntry{}, fmt.Errorf("questions: insert: %w", err)
	}
	e.ID, _ = res.LastInsertId()
	return e, nil
}

// List returns logged questions newest first, optionally for one song.
// limit <= 0 or > 500 means 50.
func (l *QuestionLog) List(ctx context.Context, songTitle string, limit int) ([]QuestionEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var (
		rows *sql.Rows
		err  error
	)
	if songTitle != "" {
		rows, err = l.db.QueryContext(ctx,
			`SELECT id, song_title, excerpt, question, timestamp FROM questions
			 WHERE song_title = ? ORDER BY id DESC LIMIT ?`, songTitle, limit)
	} else {
		rows, err = l.db.QueryContext(ctx,
			`SELECT id, song_title, excerpt, question, timestamp FROM questions
			 ORDER BY id DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("questions: query: %w", err)
	}
	defer rows.Close()

	entries := []QuestionEntry{}
	for rows.Next() {
		var e QuestionEntry
		if err := rows.Scan(&e.ID, &e.SongTitle, &e.Excerpt, &e.Question, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("questions: scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LoadQuestionsJSON reads a JSON question log. A missing file is an empty log.
func LoadQuestionsJSON(path string) ([]QuestionEntry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []QuestionEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read question log: %w", err)
	}
	var entries []QuestionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode question log %s: %w", path, err)
	}
	return entries, nil
}

// AppendQuestionJSON appends an entry to a JSON question log, rewriting the file.
func AppendQuestionJSON(path, songTitle, excerpt, question string) (QuestionEntry, error) {
	entries, err := LoadQuestionsJSON(path)
	if err != nil {
		return QuestionEntry{}, err
	}
	e := newQuestionEntry(songTitle, excerpt, question, time.Now())
	entries = append(entries, e)
	if err := writeJSON(path, entries); err != nil {
		return QuestionEntry{}, err
	}
	return e, nil
}
