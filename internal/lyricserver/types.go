package lyricserver

import (
	"github.com/anatolykoptev/go_lyrics/internal/engine"
	"github.com/anatolykoptev/go_lyrics/internal/engine/lyrics"
	"github.com/anatolykoptev/go_lyrics/internal/toolutil"
)

// --- lyrics_list / lyrics_get ---

type ListInput struct{}

type SongSummary struct {
	Title string `json:"title"`
	Theme string `json:"theme"`
	Vibe  string `json:"vibe"`
}

type ListOutput struct {
	Count int           `json:"count"`
	Songs []SongSummary `json:"songs"`
}

type GetInput struct {
	Title string `json:"title" jsonschema:"Song title (case-insensitive)"`
}

// --- lyrics_ask ---

type AskInput struct {
	Title      string `json:"title,omitempty" jsonschema:"Song title from the dataset. Leave empty to ask about an excerpt alone."`
	Excerpt    string `json:"excerpt,omitempty" jsonschema:"Lyric excerpt the question is about"`
	Question   string `json:"question" jsonschema:"The question to answer"`
	AllowWeb   bool   `json:"allow_web,omitempty" jsonschema:"Ground the answer in DuckDuckGo search snippets"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Search results to use (default: 3, max: 5)"`
}

type AskOutput struct {
	Title         string                `json:"title,omitempty"`
	Model         string                `json:"model"`
	Answer        string                `json:"answer"`
	SearchResults []engine.SearchResult `json:"search_results"`
	SearchError   *string               `json:"search_error,omitempty"`
}

// --- lyrics_generate ---

type GenerateInput struct {
	Titles  []string `json:"titles,omitempty" jsonschema:"Catalog titles to generate (default: the whole catalog)"`
	Persist bool     `json:"persist,omitempty" jsonschema:"Write the generated songs to the dataset file"`
}

type GenerateOutput struct {
	Count int           `json:"count"`
	Songs []lyrics.Song `json:"songs"`
	Saved string        `json:"saved,omitempty"`
}

// --- lyrics_scrape ---

type ScrapeInput struct {
	Songs []toolutil.SongRef `json:"songs" jsonschema:"Published songs to fetch lyrics for (max 5)"`
}

type ScrapeOutput struct {
	Items []toolutil.ScrapeItem `json:"items"`
}

// --- lyrics_questions ---

type QuestionsInput struct {
	Title string `json:"title,omitempty" jsonschema:"Only questions about this song"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max entries (default: 50, max: 500)"`
}

type QuestionsOutput struct {
	Count     int                    `json:"count"`
	Questions []lyrics.QuestionEntry `json:"questions"`
}
