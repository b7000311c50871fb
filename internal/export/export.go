// Package export writes decks out as standalone HTML pages or as
// normalized Markdown.
package export

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/sync/errgroup"

	"decker/internal/deck"
	"decker/internal/logging"
)

// Format selects an export output format.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatHTML, FormatMarkdown:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want html or md)", s)
	}
}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	return "." + string(f)
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

// HTML writes the deck as a single standalone HTML page, one
// <section class="slide"> per slide.
func HTML(d *deck.Deck, w io.Writer) error {
	timer := logging.StartTimer(logging.CategoryExport, "html export")
	defer timer.Stop()

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(pageTitle(d)))
	buf.WriteString("<style>\n")
	buf.WriteString(stylesheet(d))
	buf.WriteString("</style>\n</head>\n<body>\n")

	for i := range d.Slides {
		if err := writeSlide(d, i, &buf); err != nil {
			return err
		}
	}

	buf.WriteString("</body>\n</html>\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeSlide(d *deck.Deck, i int, buf *bytes.Buffer) error {
	slide := &d.Slides[i]

	class := "slide"
	if c, ok := slide.Directives["class"]; ok {
		class += " " + html.EscapeString(c)
	}
	fmt.Fprintf(buf, "<section class=%q id=\"slide-%d\">\n", class, i+1)

	body := deck.StripComments(slide.Body)
	if err := md.Convert([]byte(body), buf); err != nil {
		return fmt.Errorf("slide %d: %w", i+1, err)
	}

	if d.Paginated(i) {
		fmt.Fprintf(buf, "<footer class=\"page-number\">%d / %d</footer>\n", i+1, d.SlideCount())
	}
	if d.Front.Footer != "" {
		fmt.Fprintf(buf, "<footer class=\"deck-footer\">%s</footer>\n", html.EscapeString(d.Front.Footer))
	}
	buf.WriteString("</section>\n")
	return nil
}

func pageTitle(d *deck.Deck) string {
	if t := d.Title(); t != "" {
		return t
	}
	return "decker export"
}

func stylesheet(d *deck.Deck) string {
	background := d.Front.Background
	if background == "" {
		background = "#ffffff"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "body { margin: 0; font-family: sans-serif; background: %s; }\n", background)
	sb.WriteString("section.slide { min-height: 100vh; box-sizing: border-box; padding: 4rem; ")
	sb.WriteString("background: #fff; margin: 1rem auto; max-width: 60rem; position: relative; }\n")
	sb.WriteString("section.slide pre { background: #f4f5f6; padding: 1rem; overflow-x: auto; }\n")
	sb.WriteString("footer.page-number { position: absolute; bottom: 1rem; right: 2rem; color: #888; }\n")
	sb.WriteString("footer.deck-footer { position: absolute; bottom: 1rem; left: 2rem; color: #888; }\n")
	return sb.String()
}

// Markdown writes the deck back out as normalized deck Markdown.
func Markdown(d *deck.Deck, w io.Writer) error {
	_, err := w.Write(d.Serialize())
	return err
}

// write renders d in the given format.
func write(d *deck.Deck, format Format, w io.Writer) error {
	switch format {
	case FormatHTML:
		return HTML(d, w)
	case FormatMarkdown:
		return Markdown(d, w)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// File exports one deck file into outDir, deriving the output name from
// the input name. Returns the output path.
func File(path string, outDir string, format Format) (string, error) {
	d, err := deck.ParseFile(path)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outDir, base+format.Ext())

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := write(d, format, f); err != nil {
		return "", err
	}
	logging.Export("exported %s -> %s (%d slides)", path, outPath, d.SlideCount())
	return outPath, nil
}

// Files exports several decks concurrently. The first failure cancels
// the remaining work.
func Files(ctx context.Context, paths []string, outDir string, format Format) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	outputs := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := File(path, outDir, format)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outputs[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}
