package scrape

import (
	"bytes"
	"errors"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/anatolykoptev/go_lyrics/internal/engine"
)

// azMarker is the HTML comment AZLyrics places right before the lyric div.
const azMarker = "Usage of azlyrics.com content"

var errMarkerMissing = errors.New("azlyrics marker comment not found")

// LyricDomains are the sites search candidates are restricted to.
var LyricDomains = []string{"azlyrics.com", "lyrics.com", "genius.com"}

var inlineSpaceRe = regexp.MustCompile(`[ \t\r\n\f]+`)

var blockElements = map[atom.Atom]bool{
	atom.Div: true, atom.P: true, atom.Pre: true, atom.Section: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.Li: true,
}

// ParseCandidateURLs extracts lyric-site links from a DuckDuckGo HTML or lite
// results page, unwrapping redirects, deduplicated in page order.
func ParseCandidateURLs(data []byte, maxURLs int) []string {
	urls := []string{}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return urls
	}
	links := doc.Find("a.result__a")
	if links.Length() == 0 {
		links = doc.Find("a.result-link")
	}
	links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := engine.UnwrapDDGURL(a.AttrOr("href", ""))
		if href != "" && IsLyricURL(href) && !slices.Contains(urls, href) {
			urls = append(urls, href)
		}
		return len(urls) < maxURLs
	})
	return urls
}

// IsLyricURL reports whether u points at one of LyricDomains.
func IsLyricURL(u string) bool {
	host := hostOf(u)
	for _, d := range LyricDomains {
		if matchDomain(host, d) {
			return true
		}
	}
	return false
}

func hostOf(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

func matchDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// ExtractLyrics pulls lyrics out of a page from one of LyricDomains.
// Returns "" when the page layout is not recognised.
func ExtractLyrics(pageURL string, data []byte) string {
	host := hostOf(pageURL)
	switch {
	case matchDomain(host, "azlyrics.com"):
		lyrics, _ := parseAZLyrics(data)
		return lyrics
	case matchDomain(host, "lyrics.com"):
		return parseLyricsCom(data)
	case matchDomain(host, "genius.com"):
		return parseGenius(data)
	}
	return ""
}

func parseLyricsCom(data []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	box := doc.Find("pre#lyric-body-text").First()
	if box.Length() == 0 {
		return ""
	}
	return nodeText(box.Nodes[0])
}

func parseGenius(data []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	var parts []string
	doc.Find(`div[data-lyrics-container="true"]`).Each(func(_ int, s *goquery.Selection) {
		if text := nodeText(s.Nodes[0]); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// parseAZLyrics finds the marker comment and reads the div sibling after it.
func parseAZLyrics(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	marker := findComment(doc.Nodes[0], azMarker)
	if marker == nil {
		return "", errMarkerMissing
	}
	for sib := marker.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode && sib.DataAtom == atom.Div {
			if lyrics := nodeText(sib); lyrics != "" {
				return lyrics, nil
			}
			return "", ErrNotFound
		}
	}
	return "", errors.New("azlyrics lyrics div missing")
}

func findComment(n *html.Node, substr string) *html.Node {
	if n.Type == html.CommentNode && strings.Contains(n.Data, substr) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findComment(c, substr); found != nil {
			return found
		}
	}
	return nil
}

// nodeText renders n as plain text the way a browser lays it out: <br> and
// block elements break lines, whitespace inside <pre> is kept verbatim,
// and runs of blank lines collapse to one.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node, pre bool)
	walk = func(n *html.Node, pre bool) {
		switch n.Type {
		case html.TextNode:
			if pre {
				sb.WriteString(n.Data)
			} else {
				sb.WriteString(inlineSpaceRe.ReplaceAllString(n.Data, " "))
			}
			return
		case html.CommentNode:
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Br:
				sb.WriteByte('\n')
				return
			case atom.Script, atom.Style:
				return
			case atom.Pre:
				pre = true
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.DataAtom]
		if block {
			sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, pre)
		}
		if block {
			sb.WriteByte('\n')
		}
	}
	walk(n, false)
	return tidyLines(sb.String())
}

func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
