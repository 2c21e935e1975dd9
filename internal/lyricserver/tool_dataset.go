package lyricserver

import (
	"context"
	"errors"

	"github.com/anatolykoptev/go_lyrics/internal/engine/lyrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerList(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "lyrics_list",
		Description: "List the songs in the generated lyrics dataset with their theme and vibe.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ ListInput) (*mcp.CallToolResult, *ListOutput, error) {
		out, err := svc.list()
		if err != nil {
			return nil, nil, err
		}
		return nil, out, nil
	})
}

func registerGet(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "lyrics_get",
		Description: "Get one generated song by title, including theme, vibe, hidden twist and full lyrics.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, *lyrics.Song, error) {
		song, err := svc.get(input.Title)
		if err != nil {
			return nil, nil, err
		}
		return nil, &song, nil
	})
}

func (s *Service) list() (*ListOutput, error) {
	songs, err := lyrics.LoadSongs(s.DatasetPath)
	if err != nil {
		return nil, err
	}
	out := &ListOutput{Count: len(songs), Songs: make([]SongSummary, 0, len(songs))}
	for _, song := range songs {
		out.Songs = append(out.Songs, SongSummary{Title: song.Title, Theme: song.Theme, Vibe: song.Vibe})
	}
	return out, nil
}

func (s *Service) get(title string) (lyrics.Song, error) {
	if title == "" {
		return lyrics.Song{}, errors.New("title is required")
	}
	songs, err := lyrics.LoadSongs(s.DatasetPath)
	if err != nil {
		return lyrics.Song{}, err
	}
	return lyrics.FindSong(songs, title)
}
