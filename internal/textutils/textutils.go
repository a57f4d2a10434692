// Package textutils provides text normalization and search helpers for receipt text.
package textutils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultSnippetLength is the number of runes kept by Snippet when no length is given.
const DefaultSnippetLength = 120

var folder = cases.Fold()

// NormalizeLines converts CRLF and CR line endings to LF, trims trailing and leading
// blanks on every line and drops leading and trailing empty lines. Interior empty
// lines are kept so that line grammars spanning two lines stay anchored.
func NormalizeLines(text string) string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

// Fold returns the case-folded form of s, suitable for caseless comparison.
func Fold(s string) string {
	return folder.String(s)
}

// Snippet returns the first n runes of text with newlines flattened, for error messages.
func Snippet(text string, n int) string {
	if n <= 0 {
		n = DefaultSnippetLength
	}
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

// LineAt returns the 0-based line number that contains the byte offset.
func LineAt(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return strings.Count(text[:offset], "\n")
}
