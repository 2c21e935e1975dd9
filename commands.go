package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anatolykoptev/go_lyrics/internal/engine"
	"github.com/anatolykoptev/go_lyrics/internal/engine/lyrics"
	"github.com/anatolykoptev/go_lyrics/internal/lyricserver"
	"github.com/spf13/cobra"
)

var (
	generateTitles []string
	generateNoSave bool

	askExcerpt    string
	askQuestion   string
	askWeb        bool
	askMaxResults int
	askJSON       bool
	askJSONLog    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate lyrics for the song catalog",
	Long: `Generate original lyrics for every catalog concept (or only --title ones)
and save them to the dataset file in DATA_DIR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		prompts, err := lyricserver.SelectPrompts(generateTitles)
		if err != nil {
			return err
		}
		songs, err := a.generator.CreateDataset(cmd.Context(), prompts, !generateNoSave)
		if err != nil {
			return err
		}
		for _, s := range songs {
			fmt.Printf("=== %s ===\n%s\n\n", s.Title, s.Lyrics)
		}
		if !generateNoSave {
			fmt.Fprintf(os.Stderr, "Saved %d songs to %s\n", len(songs), a.generator.OutputPath())
		}
		return nil
	},
}

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List songs in the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		songs, err := lyrics.LoadSongs(engine.Cfg.Generation().OutputPath)
		if err != nil {
			return err
		}
		if len(songs) == 0 {
			fmt.Println("No songs in the dataset.")
			return nil
		}
		for _, s := range songs {
			fmt.Printf("%-32s %s | %s\n", s.Title, s.Theme, s.Vibe)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <title>",
	Short: "Show a song's metadata and lyrics",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		songs, err := lyrics.LoadSongs(engine.Cfg.Generation().OutputPath)
		if err != nil {
			return err
		}
		s, err := lyrics.FindSong(songs, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("%s\nTheme: %s\nVibe: %s\nSecret twist: %s\n\n%s\n", s.Title, s.Theme, s.Vibe, s.Twist, s.Lyrics)
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [title]",
	Short: "Answer a question about a lyric excerpt",
	Long: `Answer a question about a lyric excerpt. With --web the answer is grounded
in DuckDuckGo search snippets; search failures are reported but never fail
the answer.

Examples:
  go_lyrics ask "Glitter in the Rearview" --excerpt "..." --question "What is fleet 13?"
  go_lyrics ask --question "What does this line mean?" --excerpt "..." --web`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(askQuestion) == "" {
			return errors.New("--question is required")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var title string
		if len(args) == 1 {
			title = args[0]
		}
		out, err := a.service().Ask(cmd.Context(), lyricserver.AskInput{
			Title:      title,
			Excerpt:    askExcerpt,
			Question:   askQuestion,
			AllowWeb:   askWeb,
			MaxResults: askMaxResults,
		})
		if err != nil {
			return err
		}
		if askJSONLog {
			if _, err := lyrics.AppendQuestionJSON(a.cfg.QuestionsPath, out.Title, askExcerpt, askQuestion); err != nil {
				return err
			}
		}

		if askJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		printAnswer(out)
		return nil
	},
}

func printAnswer(out *lyricserver.AskOutput) {
	fmt.Println(out.Answer)
	if out.SearchError != nil {
		fmt.Printf("\nWeb search failed: %s\n", *out.SearchError)
		return
	}
	if len(out.SearchResults) > 0 {
		fmt.Println("\nSources:")
		for i, r := range out.SearchResults {
			fmt.Printf("  %d. %s\n     %s\n", i+1, r.Title, r.URL)
		}
	}
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <artist> <title>",
	Short: "Fetch published lyrics from lyric sites",
	Long: `Fetch published lyrics: tries the AZLyrics URL built from artist and title,
then DuckDuckGo results on AZLyrics, Lyrics.com and Genius.

Example:
  go_lyrics scrape "Taylor Swift" "Love Story"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.scraper.Scrape(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Source: %s\n", res.Source)
		fmt.Println(res.Lyrics)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringSliceVar(&generateTitles, "title", nil, "Catalog title to generate (repeatable)")
	generateCmd.Flags().BoolVar(&generateNoSave, "no-save", false, "Print lyrics without writing the dataset")

	askCmd.Flags().StringVar(&askExcerpt, "excerpt", "", "Lyric excerpt")
	askCmd.Flags().StringVar(&askQuestion, "question", "", "Question to answer")
	askCmd.Flags().BoolVar(&askWeb, "web", false, "Ground the answer in web search results")
	askCmd.Flags().IntVar(&askMaxResults, "max-results", engine.DefaultMaxResults, "Search results to use (1-5)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the answer as JSON")
	askCmd.Flags().BoolVar(&askJSONLog, "json-log", false, "Also append the question to the JSON question log")

	rootCmd.AddCommand(generateCmd, songsCmd, showCmd, askCmd, scrapeCmd)
}
