// Package normaliser cleans up extracted text before it is scored.
//
// Normalisation is purely about encoding and whitespace: it never changes
// casing, punctuation or word order, so word and sentence boundaries seen
// by the readability formulas are preserved. Normalise is idempotent.
package normaliser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalise returns text with canonical encoding and whitespace:
//
//   - invalid UTF-8 is replaced with U+FFFD and the text is NFC-composed
//   - CR, CRLF, vertical tab, form feed and U+2028/U+2029 become "\n"
//   - other Unicode spaces (NBSP, em space, tabs, ...) become " "
//   - zero-width characters and the BOM are dropped
//   - runs of horizontal whitespace collapse to a single space
//   - each line is trimmed and blank lines are removed
//   - leading and trailing whitespace is removed
func Normalise(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "\uFFFD")
	}
	var b strings.Builder
	b.Grow(len(text))

	// pendingSpace and pendingBreak defer separators so that trailing
	// whitespace on a line and blank lines are never written.
	pendingSpace := false
	pendingBreak := false
	prevCR := false

	for _, r := range text {
		switch {
		case r == '\r':
			pendingBreak = b.Len() > 0
			pendingSpace = false
			prevCR = true
			continue
		case r == '\n' && prevCR:
			prevCR = false
			continue
		case isLineBreak(r):
			pendingBreak = b.Len() > 0
			pendingSpace = false
		case isZeroWidth(r):
			// Dropped without affecting spacing.
		case unicode.IsSpace(r):
			if !pendingBreak {
				pendingSpace = b.Len() > 0
			}
		default:
			if pendingBreak {
				b.WriteByte('\n')
			} else if pendingSpace {
				b.WriteByte(' ')
			}
			pendingBreak = false
			pendingSpace = false
			b.WriteRune(r)
		}
		prevCR = false
	}

	// Composition runs last: a zero-width joiner between a letter and its
	// combining mark blocks NFC until the joiner is gone.
	return norm.NFC.String(b.String())
}

// IsBlank reports whether text has no content after normalisation.
func IsBlank(text string) bool {
	for _, r := range text {
		if !unicode.IsSpace(r) && !isZeroWidth(r) {
			return false
		}
	}
	return true
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\u200D', '\u2060', '\uFEFF', '\u00AD':
		return true
	}
	return false
}
