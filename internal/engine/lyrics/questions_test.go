package lyrics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLog(t *testing.T) *QuestionLog {
	t.Helper()
	l, err := OpenQuestionLog(filepath.Join(t.TempDir(), "db", "questions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestQuestionLogAppendList(t *testing.T) {
	l := openTestLog(t)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }
	ctx := context.Background()

	e, err := l.Append(ctx, "Song A", "  line one ", " what? ")
	require.NoError(t, err)
	assert.NotZero(t, e.ID)
	assert.Equal(t, "line one", e.Excerpt)
	assert.Equal(t, "what?", e.Question)
	assert.Equal(t, "2024-05-01T11:00:00Z", e.Timestamp)

	_, err = l.Append(ctx, "Song B", "", "why?")
	require.NoError(t, err)
	_, err = l.Append(ctx, "Song A", "", "who?")
	require.NoError(t, err)

	all, err := l.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "who?", all[0].Question)

	a, err := l.List(ctx, "Song A", 10)
	require.NoError(t, err)
	require.Len(t, a, 2)
	assert.Equal(t, "who?", a[0].Question)
	assert.Equal(t, "what?", a[1].Question)

	one, err := l.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestQuestionLogRejectsEmpty(t *testing.T) {
	l := openTestLog(t)
	_, err := l.Append(context.Background(), "Song", "x", "   ")
	assert.Error(t, err)
}

func TestQuestionLogEmptyList(t *testing.T) {
	l := openTestLog(t)
	got, err := l.List(context.Background(), "nobody", 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuestionsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")

	got, err := LoadQuestionsJSON(path)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = AppendQuestionJSON(path, "Song A", " ex ", "q1")
	require.NoError(t, err)
	_, err = AppendQuestionJSON(path, "Song B", "", "q2")
	require.NoError(t, err)

	got, err = LoadQuestionsJSON(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ex", got[0].Excerpt)
	assert.Equal(t, "Song B", got[1].SongTitle)
	assert.Zero(t, got[1].ID)
	_, err = time.Parse(time.RFC3339, got[1].Timestamp)
	assert.NoError(t, err)
}
