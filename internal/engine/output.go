package engine

import (
	"fmt"
	"strings"
)

// NoContext is what FormatContext renders for an empty result list.
const NoContext = "None"

// FormatContext renders search results as numbered three-line blocks
// separated by blank lines, in input order.
func FormatContext(results []SearchResult) string {
	if len(results) == 0 {
		return NoContext
	}
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		blocks = append(blocks, fmt.Sprintf("Result %d: %s\nURL: %s\nSnippet: %s", i+1, r.Title, r.URL, r.Snippet))
	}
	return strings.Join(blocks, "\n\n")
}
