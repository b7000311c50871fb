package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"decker/internal/deck"
)

const sampleDeck = `---
theme: default
paginate: true
background: "#141d2b"
title: Sample
footer: guild session
---

# First

intro text

---

<!-- _class: lead -->
## Second

` + "```go\nfunc main() {}\n```" + `

---

<!-- _paginate: false -->
## Third
`

func parseSample(t *testing.T) *deck.Deck {
	t.Helper()
	d, err := deck.Parse([]byte(sampleDeck))
	require.NoError(t, err)
	require.Equal(t, 3, d.SlideCount())
	return d
}

func TestHTML_Structure(t *testing.T) {
	d := parseSample(t)

	var buf bytes.Buffer
	require.NoError(t, HTML(d, &buf))
	out := buf.String()

	assert.Equal(t, 3, strings.Count(out, "<section"), "one section per slide")
	assert.Contains(t, out, "<title>Sample</title>")
	assert.Contains(t, out, "background: #141d2b")
	assert.Contains(t, out, `id="slide-1"`)
	assert.Contains(t, out, "slide lead", "class directive becomes a css class")
	assert.Contains(t, out, "<pre>", "code block renders as pre")
	assert.Contains(t, out, "func main()")
	assert.NotContains(t, out, "_class", "directives must not leak")
}

func TestHTML_Pagination(t *testing.T) {
	d := parseSample(t)

	var buf bytes.Buffer
	require.NoError(t, HTML(d, &buf))
	out := buf.String()

	assert.Contains(t, out, "1 / 3")
	assert.Contains(t, out, "2 / 3")
	assert.NotContains(t, out, "3 / 3", "slide 3 disables pagination via directive")
	assert.Contains(t, out, "guild session")
}

func TestMarkdown_RoundTrips(t *testing.T) {
	d := parseSample(t)

	var buf bytes.Buffer
	require.NoError(t, Markdown(d, &buf))

	again, err := deck.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, d.SlideCount(), again.SlideCount())
	for i := range d.Slides {
		assert.Equal(t, d.Slides[i].Body, again.Slides[i].Body, "slide %d", i)
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("html")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)
	assert.Equal(t, ".html", f.Ext())

	f, err = ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestFiles_Concurrent(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	var paths []string
	for _, name := range []string{"a.md", "b.md", "c.md"} {
		p := filepath.Join(srcDir, name)
		require.NoError(t, os.WriteFile(p, []byte(sampleDeck), 0644))
		paths = append(paths, p)
	}

	outputs, err := Files(context.Background(), paths, outDir, FormatHTML)
	require.NoError(t, err)
	require.Len(t, outputs, 3)

	for _, out := range outputs {
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<section")
	}
}

func TestFiles_MissingInputFails(t *testing.T) {
	outDir := t.TempDir()

	_, err := Files(context.Background(), []string{"does-not-exist.md"}, outDir, FormatMarkdown)
	assert.Error(t, err)
}
