package readability

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	sentencePattern = regexp.MustCompile(`\b[^.!?]+[.!?]*`)
	vowelGroups     = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// stripPunctuation removes everything but word characters, whitespace and
// apostrophes. Typographic apostrophes are folded to ASCII.
func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u2019' || r == '\u2018':
			return '\''
		case r == '\'' || r == '_':
			return r
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), unicode.IsSpace(r):
			return r
		}
		return -1
	}, text)
}

// words returns the lexical tokens of text.
func words(text string) []string {
	return strings.Fields(stripPunctuation(text))
}

// lexiconCount returns the number of words in text.
func lexiconCount(text string) int {
	return len(words(text))
}

// sentenceCount counts terminator-delimited segments, ignoring fragments
// of two words or fewer. It never returns less than 1.
func sentenceCount(text string) int {
	segments := sentencePattern.FindAllString(text, -1)
	n := 0
	for _, s := range segments {
		if lexiconCount(s) > 2 {
			n++
		}
	}
	return max(1, n)
}

// charCount counts non-whitespace characters, punctuation included.
func charCount(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// letterCount counts non-whitespace characters once punctuation is removed.
func letterCount(text string) int {
	return charCount(stripPunctuation(text))
}

// syllables estimates the syllables in a single word. Every word has at
// least one.
func syllables(word string) int {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	w := b.String()
	if len(w) <= 3 {
		return 1
	}

	w = trimSilentEnding(w)
	w = strings.TrimPrefix(w, "y")

	n := len(vowelGroups.FindAllString(w, -1))
	return max(1, n)
}

// trimSilentEnding drops endings that rarely add a syllable: -es and -e
// after a consonant other than l, and -ed unless it follows t or d.
func trimSilentEnding(w string) string {
	n := len(w)
	switch {
	case strings.HasSuffix(w, "ed"):
		if n > 2 && (w[n-3] == 't' || w[n-3] == 'd') {
			return w
		}
		return w[:n-2]
	case strings.HasSuffix(w, "es") && n > 2 && !isVowelOrL(w[n-3]):
		return w[:n-2]
	case strings.HasSuffix(w, "e") && n > 1 && !isVowelOrL(w[n-2]):
		return w[:n-1]
	}
	return w
}

func isVowelOrL(c byte) bool {
	return strings.IndexByte("laeiouy", c) >= 0
}

// normalizeWord lowercases word and drops apostrophes for list lookups and
// syllable counting.
func normalizeWord(word string) string {
	return strings.ToLower(strings.Trim(word, "'"))
}

// syllableCount sums syllables over every word in text.
func syllableCount(text string) int {
	total := 0
	for _, w := range words(text) {
		total += syllables(w)
	}
	return total
}
