package render

import (
	"strings"
	"testing"

	"decker/internal/deck"
)

func TestRenderer_Slide(t *testing.T) {
	r, err := New("dark", 80)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s := &deck.Slide{Body: "# Heading\n\nsome body text\n<!-- _class: lead -->"}
	out := r.Slide(s)

	if !strings.Contains(out, "Heading") {
		t.Errorf("rendered output missing heading: %q", out)
	}
	if strings.Contains(out, "_class") {
		t.Errorf("directive comment leaked into output: %q", out)
	}
}

func TestRenderer_EmptySlide(t *testing.T) {
	r, err := New("light", 80)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s := &deck.Slide{Body: "<!-- notes: nothing visible -->"}
	if out := r.Slide(s); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestRenderer_CacheStability(t *testing.T) {
	r, err := New("dark", 80)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s := &deck.Slide{Body: "repeatable *content*"}
	first := r.Slide(s)
	second := r.Slide(s)
	if first != second {
		t.Error("cached render differs from first render")
	}
}

func TestRenderer_Resize(t *testing.T) {
	r, err := New("dark", 80)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := r.Resize(80); err != nil {
		t.Fatalf("same-width resize: %v", err)
	}
	if err := r.Resize(40); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if r.Width() != 40 {
		t.Errorf("expected width 40, got %d", r.Width())
	}

	// Must still render after the rebuild
	out := r.Slide(&deck.Slide{Body: "after resize"})
	if !strings.Contains(out, "after resize") {
		t.Errorf("render broken after resize: %q", out)
	}
}
