// Package render draws words and pause context on an inline terminal line.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/rsvp/internal/pace"
	"github.com/verte-zerg/rsvp/internal/text"
)

const (
	clearLine = "\r\x1b[K"
	cursorUp  = "\x1b[1A"
)

var (
	wordStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pivotStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	pausedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	currentTokenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
)

// Renderer writes the word display to a terminal-like sink.
type Renderer struct {
	w           io.Writer
	pivotColumn int
	width       int

	contextRows int
}

// New returns a renderer that aligns the pivot at pivotColumn. width is the
// terminal width used to account for wrapped context lines; 0 means unknown.
func New(w io.Writer, pivotColumn, width int) *Renderer {
	if pivotColumn < 0 {
		pivotColumn = 0
	}
	return &Renderer{w: w, pivotColumn: pivotColumn, width: width}
}

// Word clears the current line and draws word with its pivot rune in the
// accent color, followed by the current pace.
func (r *Renderer) Word(word string, pivot int, st pace.State) error {
	_, err := io.WriteString(r.w, clearLine+r.formatWord(word, pivot, st))
	return err
}

func (r *Renderer) formatWord(word string, pivot int, st pace.State) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	if pivot < 0 || pivot >= len(runes) {
		pivot = 0
	}
	style := wordStyle
	if st.Paused {
		style = pausedStyle
	}
	pre := string(runes[:pivot])
	post := string(runes[pivot+1:])

	var b strings.Builder
	if pad := r.pivotColumn - runewidth.StringWidth(pre); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	if pre != "" {
		b.WriteString(style.Render(pre))
	}
	b.WriteString(pivotStyle.Render(string(runes[pivot])))
	if post != "" {
		b.WriteString(style.Render(post))
	}
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(status(st)))
	return b.String()
}

func status(st pace.State) string {
	if st.Paused {
		return fmt.Sprintf("%d wpm · paused", st.WPM)
	}
	return fmt.Sprintf("%d wpm", st.WPM)
}

// Context prints the previous line (if any) and the last line with the token
// at index token emphasized. The word line is expected to be redrawn after.
func (r *Renderer) Context(prev string, hasPrev bool, last string, token int) error {
	var b strings.Builder
	b.WriteString(clearLine)
	rows := 0
	if hasPrev {
		b.WriteString(prev)
		b.WriteString("\n")
		rows += r.rows(prev)
	}
	b.WriteString(highlightToken(last, token))
	b.WriteString("\n")
	rows += r.rows(last)
	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return err
	}
	r.contextRows = rows
	return nil
}

// ClearContext erases the lines written by Context and leaves the cursor on
// the first of them.
func (r *Renderer) ClearContext() error {
	if r.contextRows == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(clearLine)
	for i := 0; i < r.contextRows; i++ {
		b.WriteString(cursorUp)
		b.WriteString(clearLine)
	}
	r.contextRows = 0
	_, err := io.WriteString(r.w, b.String())
	return err
}

// Finish moves past the word line so later output starts on a fresh line.
func (r *Renderer) Finish() error {
	_, err := io.WriteString(r.w, "\n")
	return err
}

func (r *Renderer) rows(line string) int {
	w := runewidth.StringWidth(line)
	if r.width <= 0 || w <= r.width {
		return 1
	}
	return (w + r.width - 1) / r.width
}

func highlightToken(line string, token int) string {
	spans := text.Spans(line)
	if token < 0 || token >= len(spans) {
		return line
	}
	sp := spans[token]
	return line[:sp.Start] + currentTokenStyle.Render(line[sp.Start:sp.End]) + line[sp.End:]
}
