package lyricserver

import (
	"github.com/anatolykoptev/go_lyrics/internal/engine/lyrics"
	"github.com/anatolykoptev/go_lyrics/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Service holds the dependencies shared by the lyric tools. Scraper and
// Questions are optional; their tools report an error when unset.
type Service struct {
	DatasetPath string
	Composer    *lyrics.Composer
	Generator   *lyrics.Generator
	Scraper     toolutil.Scraper
	Questions   *lyrics.QuestionLog
}

// RegisterTools registers all lyric tools on the given MCP server:
// lyrics_list, lyrics_get, lyrics_ask, lyrics_generate, lyrics_scrape,
// lyrics_questions.
func RegisterTools(server *mcp.Server, svc *Service) {
	registerList(server, svc)
	registerGet(server, svc)
	registerAsk(server, svc)
	registerGenerate(server, svc)
	registerScrape(server, svc)
	registerQuestions(server, svc)
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 6
