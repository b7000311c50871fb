package deck

import (
	"fmt"
	"sort"
	"strings"
)

// Severity ranks lint problems.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Problem is one lint finding. Slide is the zero-based slide index, or
// -1 for document-level problems.
type Problem struct {
	Rule     string
	Slide    int
	Severity Severity
	Message  string
}

func (p Problem) String() string {
	where := "deck"
	if p.Slide >= 0 {
		where = fmt.Sprintf("slide %d", p.Slide+1)
	}
	return fmt.Sprintf("%s: %s: %s (%s)", where, p.Severity, p.Message, p.Rule)
}

// maxCodeBlockLines is the point past which a code block stops being
// readable on one screen.
const maxCodeBlockLines = 30

// Lint checks deck structure and returns problems in document order.
func Lint(d *Deck) []Problem {
	var problems []Problem

	problems = append(problems, lintFrontMatter(d)...)

	if d.Title() == "" {
		problems = append(problems, Problem{
			Rule:     "missing-title",
			Slide:    -1,
			Severity: SeverityWarning,
			Message:  "deck has no title in front matter or first slide heading",
		})
	}

	seen := make(map[string]int)
	for i := range d.Slides {
		problems = append(problems, lintSlide(d, i, seen)...)
	}

	return problems
}

func lintFrontMatter(d *Deck) []Problem {
	if len(d.Front.Extra) == 0 {
		return nil
	}
	keys := make([]string, 0, len(d.Front.Extra))
	for k := range d.Front.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	problems := make([]Problem, 0, len(keys))
	for _, k := range keys {
		problems = append(problems, Problem{
			Rule:     "unknown-front-matter-key",
			Slide:    -1,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("unknown front-matter key %q", k),
		})
	}
	return problems
}

func lintSlide(d *Deck, i int, seenTitles map[string]int) []Problem {
	var problems []Problem
	slide := &d.Slides[i]

	if strings.TrimSpace(StripComments(slide.Body)) == "" {
		problems = append(problems, Problem{
			Rule:     "empty-slide",
			Slide:    i,
			Severity: SeverityError,
			Message:  "slide has no visible content",
		})
	}

	if title := slide.Title(); title != "" {
		if prev, ok := seenTitles[title]; ok {
			problems = append(problems, Problem{
				Rule:     "duplicate-title",
				Slide:    i,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("title %q already used on slide %d", title, prev+1),
			})
		} else {
			seenTitles[title] = i
		}
	}

	problems = append(problems, lintFences(slide, i)...)
	return problems
}

// lintFences flags unclosed fences and code blocks too long to fit a
// slide.
func lintFences(slide *Slide, i int) []Problem {
	var (
		problems []Problem
		fence    fenceState
		blockLen int
		inBlock  bool
	)

	for _, line := range strings.Split(slide.Body, "\n") {
		wasOpen := fence.open
		fence.observe(line)
		switch {
		case !wasOpen && fence.open:
			inBlock = true
			blockLen = 0
		case wasOpen && !fence.open:
			inBlock = false
			if blockLen > maxCodeBlockLines {
				problems = append(problems, Problem{
					Rule:     "long-code-block",
					Slide:    i,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("code block is %d lines, over the %d-line screen budget", blockLen, maxCodeBlockLines),
				})
			}
		case inBlock:
			blockLen++
		}
	}

	if fence.open {
		problems = append(problems, Problem{
			Rule:     "unclosed-fence",
			Slide:    i,
			Severity: SeverityError,
			Message:  "fenced code block is never closed",
		})
	}
	return problems
}
