// Package orp locates the optimal recognition point of a word.
package orp

import (
	"math"
	"strings"
	"unicode"
)

const (
	biasStart = 0.35
	biasMin   = 0.2
	biasMax   = 0.8
)

const vowels = "aeiouyáéíóúýàèìòùâêîôûäëïöüÿěů"

// IsVowel reports whether r belongs to the fixed vowel set. Case is ignored.
func IsVowel(r rune) bool {
	return strings.ContainsRune(vowels, unicode.ToLower(r))
}

// Locate returns the rune index of the pivot character in word.
//
// Long words start at 35% of their length. When that lands on a vowel the
// nearest consonant within [20%, 80%] is preferred, checking the later side
// first at each distance.
func Locate(word string) int {
	runes := []rune(word)
	n := len(runes)
	switch {
	case n <= 1:
		return 0
	case n <= 4:
		return 1
	}

	last := float64(n - 1)
	i := int(math.Ceil(last * biasStart))
	if !IsVowel(runes[i]) {
		return i
	}
	mini := int(math.Floor(last * biasMin))
	maxi := int(math.Ceil(last * biasMax))
	for d := 1; i+d <= maxi || i-d >= mini; d++ {
		if j := i + d; j <= maxi && !IsVowel(runes[j]) {
			return j
		}
		if j := i - d; j >= mini && !IsVowel(runes[j]) {
			return j
		}
	}
	return i
}
