// Package deck models Markdown slide decks: a yaml front-matter block
// followed by slides separated by `---` delimiter lines. Parsing is
// deterministic and Serialize round-trips slide count, order and bodies.
package deck

import (
	"strings"
)

// FrontMatter holds the presentation-wide options from the leading yaml
// block. Unknown keys are retained in Extra so lint can report them.
type FrontMatter struct {
	Theme      string `yaml:"theme"`
	Paginate   bool   `yaml:"paginate"`
	Background string `yaml:"background"`
	Title      string `yaml:"title"`
	Author     string `yaml:"author"`
	Footer     string `yaml:"footer"`

	// Extra holds keys not covered by the fields above.
	Extra map[string]any `yaml:"-"`
}

// KnownKeys lists the front-matter keys decker understands.
var KnownKeys = []string{"theme", "paginate", "background", "title", "author", "footer"}

// Slide is one screen of the deck.
type Slide struct {
	// Index is the zero-based position in the deck.
	Index int

	// Body is the raw Markdown between delimiters, with leading and
	// trailing blank lines removed. Directive and notes comments are
	// still present here so Serialize can reproduce them.
	Body string

	// Directives holds per-slide overrides parsed from
	// `<!-- _key: value -->` comments, keyed without the underscore.
	Directives map[string]string

	// Notes holds the speaker notes from `<!-- notes: ... -->` comments.
	Notes string
}

// Deck is a parsed slide deck.
type Deck struct {
	Front FrontMatter

	// RawFront is the text between the front-matter delimiters, kept
	// verbatim so Serialize preserves key order and formatting. Empty
	// when the document has no front matter.
	RawFront string

	Slides []Slide

	// Path is the source file, when the deck was read from one.
	Path string
}

// SlideCount returns the number of slides.
func (d *Deck) SlideCount() int { return len(d.Slides) }

// Title returns the deck title: the front-matter title when set,
// otherwise the first slide's heading, otherwise "".
func (d *Deck) Title() string {
	if d.Front.Title != "" {
		return d.Front.Title
	}
	if len(d.Slides) > 0 {
		return d.Slides[0].Title()
	}
	return ""
}

// Title returns the text of the slide's first ATX heading, or "".
func (s *Slide) Title() string {
	for _, line := range strings.Split(s.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}

// WordCount counts whitespace-separated words in the slide body,
// excluding directive and notes comments.
func (s *Slide) WordCount() int {
	return len(strings.Fields(StripComments(s.Body)))
}

// Paginated reports whether page numbers apply to this slide, combining
// the deck default with a `_paginate` directive override.
func (d *Deck) Paginated(i int) bool {
	if i < 0 || i >= len(d.Slides) {
		return false
	}
	if v, ok := d.Slides[i].Directives["paginate"]; ok {
		return v == "true"
	}
	return d.Front.Paginate
}
