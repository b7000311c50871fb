// Package render turns slide Markdown into styled terminal text.
package render

import (
	"hash/fnv"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"decker/internal/deck"
	"decker/internal/logging"
)

// Renderer renders slide bodies with glamour, caching by body, width
// and theme so paging back and forth through a deck stays instant.
type Renderer struct {
	mu    sync.Mutex
	tr    *glamour.TermRenderer
	theme string // dark, light or auto
	width int
	cache sync.Map // uint64 -> string
}

// New creates a Renderer for the given theme ("dark", "light" or
// "auto") and wrap width.
func New(theme string, width int) (*Renderer, error) {
	tr, err := newTermRenderer(theme, width)
	if err != nil {
		return nil, err
	}
	return &Renderer{tr: tr, theme: theme, width: width}, nil
}

func newTermRenderer(theme string, width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}
	switch theme {
	case "dark":
		opts = append(opts, glamour.WithStandardStyle(styles.DarkStyle))
	case "light":
		opts = append(opts, glamour.WithStandardStyle(styles.LightStyle))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}
	return glamour.NewTermRenderer(opts...)
}

// Resize rebuilds the underlying renderer for a new wrap width and
// drops the cache. No-op when the width is unchanged.
func (r *Renderer) Resize(width int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width == r.width {
		return nil
	}
	tr, err := newTermRenderer(r.theme, width)
	if err != nil {
		return err
	}
	r.tr = tr
	r.width = width
	r.cache = sync.Map{}
	logging.RenderDebug("renderer resized to %d columns", width)
	return nil
}

// Width returns the current wrap width.
func (r *Renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width
}

// Slide renders one slide body, with directive and notes comments
// stripped. Render failures fall back to the plain source text.
func (r *Renderer) Slide(s *deck.Slide) string {
	body := deck.StripComments(s.Body)
	if body == "" {
		return ""
	}

	key := r.cacheKey(body)
	if cached, ok := r.cache.Load(key); ok {
		return cached.(string)
	}

	out := r.safeRender(body)
	r.cache.Store(key, out)
	return out
}

// safeRender renders markdown with panic recovery; glamour can panic
// on pathological input and a presenter must never crash mid-talk.
func (r *Renderer) safeRender(body string) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Get(logging.CategoryRender).Error("glamour panic recovered: %v", rec)
			result = body
		}
	}()

	r.mu.Lock()
	tr := r.tr
	r.mu.Unlock()

	out, err := tr.Render(body)
	if err != nil {
		logging.Get(logging.CategoryRender).Warn("render failed, using plain text: %v", err)
		return body
	}
	return out
}

func (r *Renderer) cacheKey(body string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(body))
	h.Write([]byte(r.theme))
	var b [4]byte
	w := uint32(r.Width())
	b[0] = byte(w)
	b[1] = byte(w >> 8)
	b[2] = byte(w >> 16)
	b[3] = byte(w >> 24)
	h.Write(b[:])
	return h.Sum64()
}
