// Package prune shortens text to fit platform and log limits without
// splitting UTF-8 sequences.
package prune

import (
	"fmt"
	"unicode/utf8"
)

const (
	// MaxTextBodyRunes is the longest text body the Cloud API accepts.
	MaxTextBodyRunes = 4096
	// DefaultLogBytes bounds payload excerpts written to logs.
	DefaultLogBytes = 2048

	Ellipsis = "…"
)

// Runes returns s cut to at most maxRunes characters. A cut string ends
// with Ellipsis, counted within the limit.
func Runes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	keep := maxRunes - utf8.RuneCountInString(Ellipsis)
	if keep <= 0 {
		return Ellipsis
	}
	n := 0
	for i := range s {
		if n == keep {
			return s[:i] + Ellipsis
		}
		n++
	}
	return s
}

// Bytes returns an excerpt of b no longer than maxBytes followed by a note
// of the omitted size. maxBytes <= 0 uses DefaultLogBytes.
func Bytes(b []byte, maxBytes int) string {
	if maxBytes <= 0 {
		maxBytes = DefaultLogBytes
	}
	if len(b) <= maxBytes {
		return string(b)
	}
	head := safeUTF8Prefix(b, maxBytes)
	return fmt.Sprintf("%s%s (%d more bytes)", head, Ellipsis, len(b)-len(head))
}

func safeUTF8Prefix(b []byte, maxBytes int) []byte {
	if maxBytes >= len(b) {
		return b
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return b[:cut]
}
