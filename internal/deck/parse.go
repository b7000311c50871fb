package deck

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"decker/internal/logging"
)

// ParseFile reads and parses a deck from disk.
func ParseFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, err
	}
	d.Path = path
	return d, nil
}

// Parse parses a deck document. The empty document yields one empty
// slide so callers never deal with a zero-slide deck.
func Parse(data []byte) (*Deck, error) {
	timer := logging.StartTimer(logging.CategoryParser, "parse deck")
	defer timer.Stop()

	src := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(src, "\n")

	d := &Deck{}

	rest, err := d.consumeFrontMatter(lines)
	if err != nil {
		return nil, err
	}

	for i, body := range splitSlides(rest) {
		slide := Slide{Index: i, Body: body}
		slide.Directives = parseDirectives(body)
		slide.Notes = parseNotes(body)
		d.Slides = append(d.Slides, slide)
	}

	logging.Parser("parsed deck: %d slides, front matter: %v", len(d.Slides), d.RawFront != "")
	return d, nil
}

// consumeFrontMatter strips a leading `---` block when its contents
// parse as a yaml mapping. A block that is not valid yaml is left in
// place and treated as slide content, matching Marp.
func (d *Deck) consumeFrontMatter(lines []string) ([]string, error) {
	if len(lines) == 0 || !isDelimiter(lines[0]) {
		return lines, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			end = i
			break
		}
	}
	if end < 0 {
		return lines, nil
	}

	raw := strings.Join(lines[1:end], "\n")

	var generic map[string]any
	if err := yaml.Unmarshal([]byte(raw), &generic); err != nil || generic == nil {
		// Not a yaml mapping; the leading `---` is a slide delimiter.
		return lines, nil
	}
	if err := yaml.Unmarshal([]byte(raw), &d.Front); err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}

	for k, v := range generic {
		if !isKnownKey(k) {
			if d.Front.Extra == nil {
				d.Front.Extra = make(map[string]any)
			}
			d.Front.Extra[k] = v
		}
	}

	d.RawFront = raw
	return lines[end+1:], nil
}

func isKnownKey(k string) bool {
	for _, known := range KnownKeys {
		if k == known {
			return true
		}
	}
	return false
}

// splitSlides splits the document body on delimiter lines, tracking
// fenced code blocks so a `---` inside a fence stays content.
func splitSlides(lines []string) []string {
	var (
		slides  []string
		current []string
		fence   fenceState
	)

	flush := func() {
		slides = append(slides, trimBlankEdges(current))
		current = current[:0]
	}

	for _, line := range lines {
		if !fence.open && isDelimiter(line) {
			flush()
			continue
		}
		fence.observe(line)
		current = append(current, line)
	}
	flush()

	return slides
}

// fenceState tracks whether the scanner is inside a fenced code block.
// A fence closes only on a line of at least as many of the same fence
// characters, per CommonMark. An unclosed fence runs to end of input.
type fenceState struct {
	open bool
	char byte
	size int
}

func (f *fenceState) observe(line string) {
	marker, n := fenceMarker(line)
	if marker == 0 {
		return
	}
	if !f.open {
		f.open = true
		f.char = marker
		f.size = n
		return
	}
	if marker == f.char && n >= f.size && strings.TrimSpace(line) == strings.Repeat(string(marker), len(strings.TrimSpace(line))) {
		f.open = false
	}
}

// fenceMarker returns the fence character (` or ~) and run length when
// the line opens or closes a fence, allowing up to three leading spaces.
func fenceMarker(line string) (byte, int) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || trimmed == "" {
		return 0, 0
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return 0, 0
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return 0, 0
	}
	return c, n
}

// isDelimiter reports whether a line is a slide delimiter: `---` with
// nothing but trailing whitespace.
func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t") == "---"
}

func trimBlankEdges(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// parseDirectives extracts `<!-- _key: value -->` comments. Only
// underscore-prefixed keys are directives; the underscore is dropped.
func parseDirectives(body string) map[string]string {
	var dirs map[string]string
	for _, c := range htmlComments(body) {
		inner := strings.TrimSpace(c)
		if !strings.HasPrefix(inner, "_") {
			continue
		}
		key, value, ok := strings.Cut(inner[1:], ":")
		if !ok {
			continue
		}
		if dirs == nil {
			dirs = make(map[string]string)
		}
		dirs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return dirs
}

// parseNotes extracts `<!-- notes: ... -->` speaker notes. Multiple
// notes comments concatenate in order.
func parseNotes(body string) string {
	var parts []string
	for _, c := range htmlComments(body) {
		inner := strings.TrimSpace(c)
		if rest, ok := strings.CutPrefix(inner, "notes:"); ok {
			parts = append(parts, strings.TrimSpace(rest))
		}
	}
	return strings.Join(parts, "\n")
}

// htmlComments returns the inner text of each `<!-- -->` comment,
// skipping comments inside fenced code.
func htmlComments(body string) []string {
	var (
		comments []string
		fence    fenceState
		inside   bool
		buf      strings.Builder
	)
	for _, line := range strings.Split(body, "\n") {
		fence.observe(line)
		if fence.open {
			continue
		}
		rest := line
		for rest != "" {
			if !inside {
				i := strings.Index(rest, "<!--")
				if i < 0 {
					break
				}
				inside = true
				rest = rest[i+4:]
				continue
			}
			if i := strings.Index(rest, "-->"); i >= 0 {
				buf.WriteString(rest[:i])
				comments = append(comments, buf.String())
				buf.Reset()
				inside = false
				rest = rest[i+3:]
				continue
			}
			buf.WriteString(rest)
			buf.WriteString("\n")
			rest = ""
		}
	}
	return comments
}

// StripComments removes HTML comments outside fenced code blocks, used
// when rendering so directives and notes never show on a slide.
func StripComments(body string) string {
	var (
		out    []string
		fence  fenceState
		inside bool
	)
	for _, line := range strings.Split(body, "\n") {
		fence.observe(line)
		if fence.open {
			out = append(out, line)
			continue
		}
		var sb strings.Builder
		rest := line
		for rest != "" {
			if !inside {
				i := strings.Index(rest, "<!--")
				if i < 0 {
					sb.WriteString(rest)
					break
				}
				sb.WriteString(rest[:i])
				inside = true
				rest = rest[i+4:]
				continue
			}
			if i := strings.Index(rest, "-->"); i >= 0 {
				inside = false
				rest = rest[i+3:]
				continue
			}
			rest = ""
		}
		line = strings.TrimRight(sb.String(), " \t")
		if line == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
