// go_lyrics: generate song lyrics with an LLM and answer questions about
// lyric excerpts, optionally grounded in DuckDuckGo search snippets.
//
// Runs as a CLI (generate, songs, show, ask, scrape) or as an MCP server (serve).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_lyrics/internal/engine"
	"github.com/anatolykoptev/go_lyrics/internal/lyricserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "go_lyrics",
	Short: "Generate lyrics and answer questions about them",
	Long: `go_lyrics writes original song lyrics with an LLM, stores them as a
JSON dataset, and answers questions about lyric excerpts. Answers can be
grounded in DuckDuckGo search snippets; a failed search never fails the answer.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
		engine.Init(loadConfig())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		port := env.Str("MCP_PORT", "8893")
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		slog.Info("starting go_lyrics", slog.String("port", port), slog.String("qa_model", a.composer.Model()))

		server := mcp.NewServer(&mcp.Implementation{
			Name:    "go_lyrics",
			Version: version,
		}, nil)
		lyricserver.RegisterTools(server, a.service())
		slog.Info("tools registered", slog.Int("count", lyricserver.ToolCount))

		return mcpserver.Run(server, mcpserver.Config{
			Name:         "go_lyrics",
			Version:      version,
			Port:         port,
			WriteTimeout: 300 * time.Second,
			Metrics:      engine.FormatMetrics,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging configures the default slog logger from LOG_LEVEL and LOG_FORMAT.
func setupLogging() {
	var level slog.Level
	if err := level.UnmarshalText([]byte(env.Str("LOG_LEVEL", "info"))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if strings.EqualFold(env.Str("LOG_FORMAT", "text"), "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
