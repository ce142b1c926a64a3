package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/rsvp/internal/pace"
)

func TestWordAlignsPivotColumn(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 6, 0)
	if err := r.Word("reading", 3, pace.State{WPM: 250}); err != nil {
		t.Fatalf("word: %v", err)
	}
	want := clearLine + "   " + wordStyle.Render("rea") + pivotStyle.Render("d") + wordStyle.Render("ing") +
		"  " + statusStyle.Render("250 wpm")
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWordSingleRune(t *testing.T) {
	r := New(&bytes.Buffer{}, 2, 0)
	got := r.formatWord("a", 0, pace.State{WPM: 100})
	want := "  " + pivotStyle.Render("a") + "  " + statusStyle.Render("100 wpm")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWordPausedStyle(t *testing.T) {
	r := New(&bytes.Buffer{}, 0, 0)
	got := r.formatWord("fox", 1, pace.State{WPM: 225, Paused: true})
	want := pausedStyle.Render("f") + pivotStyle.Render("o") + pausedStyle.Render("x") + "  " +
		statusStyle.Render("225 wpm · paused")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWordWideRunesPadding(t *testing.T) {
	r := New(&bytes.Buffer{}, 4, 0)
	got := r.formatWord("日本語です", 2, pace.State{WPM: 250})
	if !strings.HasPrefix(got, wordStyle.Render("日本")) {
		t.Fatalf("expected no padding when prefix fills the column, got %q", got)
	}
}

func TestContextHighlightsToken(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 0, 0)
	if err := r.Context("first line", true, "well-known fact here", 2); err != nil {
		t.Fatalf("context: %v", err)
	}
	want := clearLine + "first line\n" + "well-known " + currentTokenStyle.Render("fact") + " here\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
	if r.contextRows != 2 {
		t.Fatalf("expected 2 context rows, got %d", r.contextRows)
	}
}

func TestContextWithoutPrevious(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 0, 0)
	if err := r.Context("", false, "only line", 0); err != nil {
		t.Fatalf("context: %v", err)
	}
	want := clearLine + currentTokenStyle.Render("only") + " line\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestClearContextCountsWrappedRows(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 0, 10)
	long := strings.Repeat("x", 25)
	if err := r.Context(long, true, "short", 0); err != nil {
		t.Fatalf("context: %v", err)
	}
	buf.Reset()
	if err := r.ClearContext(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := strings.Count(buf.String(), cursorUp); got != 4 {
		t.Fatalf("expected 4 cursor-up moves, got %d", got)
	}
	buf.Reset()
	if err := r.ClearContext(); err != nil || buf.Len() != 0 {
		t.Fatalf("expected second clear to be a no-op")
	}
}

func TestHighlightTokenOutOfRange(t *testing.T) {
	if got := highlightToken("a b", 5); got != "a b" {
		t.Fatalf("expected line unchanged, got %q", got)
	}
}
