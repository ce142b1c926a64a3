// Package text splits input lines into display units.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// shortWordLen is the longest token that can be merged with its neighbour.
const shortWordLen = 3

// Word is one display unit. Token is the index of its first source token
// within the line.
type Word struct {
	Text  string
	Token int
}

// Len returns the number of characters in the word.
func (w Word) Len() int {
	return utf8.RuneCountInString(w.Text)
}

// Span is the byte range [Start, End) of a token within its line.
type Span struct {
	Start int
	End   int
}

func isDelimiter(r rune) bool {
	return r == '-' || unicode.IsSpace(r)
}

// Spans returns the byte ranges of the tokens in line, split on runs of
// hyphens and whitespace.
func Spans(line string) []Span {
	spans := []Span{}
	start := -1
	for i, r := range line {
		if isDelimiter(r) {
			if start != -1 {
				spans = append(spans, Span{Start: start, End: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		spans = append(spans, Span{Start: start, End: len(line)})
	}
	return spans
}

// Tokens returns the non-empty tokens of line.
func Tokens(line string) []string {
	return strings.FieldsFunc(line, isDelimiter)
}

// Segment splits line into words. With merge enabled, each pair of adjacent
// tokens of at most three characters becomes one word in a single forward
// pass; a merged pair is never merged again.
func Segment(line string, merge bool) []Word {
	tokens := Tokens(line)
	words := make([]Word, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if merge && i+1 < len(tokens) && isShort(tokens[i]) && isShort(tokens[i+1]) {
			words = append(words, Word{Text: tokens[i] + " " + tokens[i+1], Token: i})
			i++
			continue
		}
		words = append(words, Word{Text: tokens[i], Token: i})
	}
	return words
}

func isShort(token string) bool {
	return utf8.RuneCountInString(token) <= shortWordLen
}
