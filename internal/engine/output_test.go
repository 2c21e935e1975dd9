package engine

import (
	"fmt"
	"strings"
	"testing"
)

func TestFormatContextEmpty(t *testing.T) {
	if got := FormatContext(nil); got != "None" {
		t.Errorf("FormatContext(nil) = %q, want %q", got, "None")
	}
	if got := FormatContext([]SearchResult{}); got != "None" {
		t.Errorf("FormatContext([]) = %q, want %q", got, "None")
	}
}

func TestFormatContextExact(t *testing.T) {
	results := []SearchResult{
		{Title: "A", URL: "https://a.example", Snippet: "first"},
		{Title: "B", URL: "https://b.example", Snippet: ""},
	}
	want := "Result 1: A\nURL: https://a.example\nSnippet: first\n\n" +
		"Result 2: B\nURL: https://b.example\nSnippet: "
	if got := FormatContext(results); got != want {
		t.Errorf("FormatContext() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatContextNumbering(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			results := make([]SearchResult, n)
			for i := range results {
				results[i] = SearchResult{Title: fmt.Sprintf("title-%d", i), URL: fmt.Sprintf("https://example.com/%d", i)}
			}
			got := FormatContext(results)

			if c := strings.Count(got, "Result "); c != n {
				t.Errorf("found %d occurrences of \"Result \", want %d", c, n)
			}
			last := -1
			for i := range results {
				idx := strings.Index(got, fmt.Sprintf("Result %d: title-%d\n", i+1, i))
				if idx < 0 {
					t.Fatalf("block %d missing", i+1)
				}
				if idx <= last {
					t.Errorf("block %d out of order", i+1)
				}
				last = idx
			}
		})
	}
}
