package lyrics

import (
	"fmt"
	"strings"
)

// unknownField replaces any song metadata field that is absent.
const unknownField = "Unknown"

// SongMetadata describes a song as handed to the answer composer. Every
// field is optional; nil and blank values count as absent.
type SongMetadata struct {
	Title *string `json:"title,omitempty"`
	Theme *string `json:"theme,omitempty"`
	Vibe  *string `json:"vibe,omitempty"`
	Twist *string `json:"twist,omitempty"` // hidden narrative element
}

// songFields is SongMetadata after fallback substitution.
type songFields struct {
	title, theme, vibe, twist string
	hasTitle                  bool
}

func (m SongMetadata) normalize() songFields {
	title, hasTitle := field(m.Title)
	theme, _ := field(m.Theme)
	vibe, _ := field(m.Vibe)
	twist, _ := field(m.Twist)
	return songFields{title: title, theme: theme, vibe: vibe, twist: twist, hasTitle: hasTitle}
}

func field(p *string) (string, bool) {
	if p == nil || strings.TrimSpace(*p) == "" {
		return unknownField, false
	}
	return *p, true
}

// Str returns a pointer to s. Handy for building SongMetadata literals.
func Str(s string) *string { return &s }

// Song is a generated song as stored in the lyrics dataset.
type Song struct {
	Title  string `json:"title"`
	Theme  string `json:"theme"`
	Vibe   string `json:"vibe"`
	Twist  string `json:"twist"`
	Lyrics string `json:"lyrics"`
}

// Metadata converts the stored record into composer input. Empty strings
// become absent fields.
func (s Song) Metadata() SongMetadata {
	opt := func(v string) *string {
		if v == "" {
			return nil
		}
		return Str(v)
	}
	return SongMetadata{Title: opt(s.Title), Theme: opt(s.Theme), Vibe: opt(s.Vibe), Twist: opt(s.Twist)}
}

// SongPrompt is the template metadata for generating a single song.
type SongPrompt struct {
	Title string `json:"title"`
	Theme string `json:"theme"`
	Vibe  string `json:"vibe"`
	Twist string `json:"twist"`
}

// FormatPrompt renders the songwriting request for the model.
func (p SongPrompt) FormatPrompt() string {
	return fmt.Sprintf(songPromptTemplate, p.Title, p.Theme, p.Vibe, p.Twist)
}

// SongPrompts is the curated catalog of song concepts.
var SongPrompts = []SongPrompt{
	{
		Title: "Glitter in the Rearview",
		Theme: "letting go of a high-profile love story",
		Vibe:  "late-night highway pop ballad",
		Twist: "a hidden reference to a fleet number 13",
	},
	{
		Title: "Static Bouquet",
		Theme: "finding romance through fuzzy radio signals",
		Vibe:  "folktronica confession",
		Twist: "use Morse code imagery without writing actual code",
	},
	{
		Title: "Velvet Algorithm",
		Theme: "love decoded by mathematical metaphors",
		Vibe:  "sleek synth pop",
		Twist: "a password no one else can hack",
	},
	{
		Title: "Parachutes of Honey",
		Theme: "falling for someone who slows down time",
		Vibe:  "acoustic daydream",
		Twist: "gravity becomes a sweet addiction",
	},
	{
		Title: "Paper Planets",
		Theme: "long-distance lovers mapping constellations",
		Vibe:  "cinematic indie ballad",
		Twist: "postcards that orbit in sync",
	},
	{
		Title: "Silver Tongue Graffiti",
		Theme: "graffiti artists writing their history",
		Vibe:  "percussive pop-rap hybrid",
		Twist: "a coded message sprayed at 2:17 AM",
	},
	{
		Title: "Mint Condition Ghosts",
		Theme: "collecting memories like rare vinyl",
		Vibe:  "nostalgic dream pop",
		Twist: "side B hides the secret track",
	},
	{
		Title: "Crimson Parallax",
		Theme: "love across parallel timelines",
		Vibe:  "dark electro ballad",
		Twist: "an eclipse that runs backwards",
	},
	{
		Title: "Hologram Garden",
		Theme: "digital intimacy blooming in augmented reality",
		Vibe:  "airy alt-R&B",
		Twist: "flowers made of cached pixels",
	},
	{
		Title: "Summer Ink in October",
		Theme: "rebellious romance replayed when seasons collide",
		Vibe:  "storytelling folk-pop",
		Twist: "a journal entry on page 108 that predicts the future",
	},
}
