package main

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jilleJr/fuzzytime/pkg/fuzzytime"
)

var unbracketedExcluded = []fuzzytime.Family{fuzzytime.FamilyEpoch}

// processLinePlain rewrites a timestamp at the start of a free-form line.
// A bracketed prefix such as "[Jan 2 15:04:05] msg" is tried first, then
// the longest run of leading words that resolves.
func (n *Normalizer) processLinePlain(s string) (string, bool) {
	if n.opts.MaxPrefixWords <= 0 {
		return "", false
	}
	if inside, _, ok := cutParentheses(s, '[', ']'); ok {
		if ts, ok := n.resolve(inside); ok {
			rest := s[utf8.RuneLen('[')+len(inside)+utf8.RuneLen(']'):]
			return "[" + n.paint(ts) + "]" + rest, true
		}
		return "", false
	}
	// Unix times are only recognized inside brackets.
	ends := wordEnds(s, n.opts.MaxPrefixWords)
	for i := len(ends) - 1; i >= 0; i-- {
		if ts, ok := n.resolveFamilies(s[:ends[i]], unbracketedExcluded); ok {
			return n.paint(ts) + s[ends[i]:], true
		}
	}
	return "", false
}

// wordEnds returns the byte offsets where each of the first max
// space-separated words of s ends.
func wordEnds(s string, max int) []int {
	var ends []int
	inWord := false
	for i, r := range s {
		space := unicode.IsSpace(r)
		if inWord && space {
			ends = append(ends, i)
			if len(ends) == max {
				return ends
			}
		}
		if !inWord && space && i == 0 {
			// Leading whitespace is not part of a timestamp.
			return nil
		}
		inWord = !space
	}
	if inWord {
		ends = append(ends, len(s))
	}
	return ends
}

func cutParentheses(s string, start, end rune) (string, string, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r != start {
		return "", s, false
	}
	for i, r := range s[size:] {
		if r == end {
			return s[size : size+i], strings.TrimPrefix(s[size+i+utf8.RuneLen(r):], " "), true
		}
	}
	return "", s, false
}
