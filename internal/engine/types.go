package engine

// SearchResult is a single web search hit. Slices of SearchResult keep the
// order the search engine presented them in.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Role names accepted by the completion API.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one entry of a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is what every Completer backend accepts.
type CompletionRequest struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Messages    []Message
}
