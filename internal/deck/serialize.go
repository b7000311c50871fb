package deck

import (
	"strings"
)

// Serialize renders the deck back to document form. The front-matter
// block is emitted verbatim from RawFront so key order and formatting
// survive; slide bodies are joined with delimiter lines. Parsing the
// result yields a deck with the same slide count, order and bodies.
func (d *Deck) Serialize() []byte {
	var sb strings.Builder

	if d.RawFront != "" {
		sb.WriteString("---\n")
		sb.WriteString(d.RawFront)
		sb.WriteString("\n---\n\n")
	}

	for i, slide := range d.Slides {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		sb.WriteString(slide.Body)
		sb.WriteString("\n")
	}

	return []byte(sb.String())
}
