// Package wordgen expands a seed string into candidate password
// variants: case toggling, common leetspeak substitutions and optional
// numeric suffixes.
package wordgen

import (
	"errors"
	"strings"
	"unicode"
)

// ErrStop can be returned by a Generate callback to end generation
// early without reporting an error.
var ErrStop = errors.New("wordgen: stop")

// Numeric suffixes cover every combination of 1 to 4 digits.
const (
	suffixMinLen = 1
	suffixMaxLen = 4
)

var substitutions = map[rune][]string{
	'a': {"a", "A", "@", "4"},
	'b': {"b", "B", "8"},
	'c': {"c", "C", "("},
	'e': {"e", "E", "3"},
	'g': {"g", "G", "9", "6"},
	'i': {"i", "I", "1", "!"},
	'l': {"l", "L", "1", "|"},
	'o': {"o", "O", "0"},
	's': {"s", "S", "$", "5"},
	't': {"t", "T", "7", "+"},
	'z': {"z", "Z", "2"},
}

// Options returns the candidate renderings of a single character,
// deduplicated in order. Letters without a substitution entry toggle
// case, anything else passes through unchanged.
func Options(ch rune) []string {
	var opts []string
	if unicode.IsLetter(ch) {
		lower := unicode.ToLower(ch)
		if subs, ok := substitutions[lower]; ok {
			opts = subs
		} else {
			opts = []string{string(lower), string(unicode.ToUpper(ch))}
		}
	} else {
		opts = []string{string(ch)}
	}

	seen := make(map[string]bool, len(opts))
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	return out
}

// Count returns how many variants Generate would emit for text.
func Count(text string, appendSuffixes bool) uint64 {
	total := uint64(1)
	for _, ch := range text {
		total *= uint64(len(Options(ch)))
	}
	if appendSuffixes {
		total *= suffixCount()
	}
	return total
}

func suffixCount() uint64 {
	var n, pow uint64 = 0, 1
	for l := suffixMinLen; l <= suffixMaxLen; l++ {
		pow *= 10
		n += pow
	}
	return n
}

// Generate calls fn once per variant, base variants in odometer order
// with the rightmost character cycling fastest, suffixes (when
// enabled) grouped per base variant. A callback error stops the run
// and is returned, except ErrStop which Generate passes through for
// the caller to recognize.
func Generate(text string, appendSuffixes bool, fn func(string) error) error {
	perChar := make([][]string, 0, len(text))
	for _, ch := range text {
		perChar = append(perChar, Options(ch))
	}

	emit := fn
	if appendSuffixes {
		emit = func(base string) error {
			return suffixes(func(suffix string) error {
				return fn(base + suffix)
			})
		}
	}
	return product(perChar, emit)
}

func product(perChar [][]string, fn func(string) error) error {
	idx := make([]int, len(perChar))
	var sb strings.Builder
	for {
		sb.Reset()
		for i, opts := range perChar {
			sb.WriteString(opts[idx[i]])
		}
		if err := fn(sb.String()); err != nil {
			return err
		}

		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(perChar[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return nil
		}
	}
}

func suffixes(fn func(string) error) error {
	for length := suffixMinLen; length <= suffixMaxLen; length++ {
		buf := make([]byte, length)
		if err := digits(buf, 0, fn); err != nil {
			return err
		}
	}
	return nil
}

func digits(buf []byte, pos int, fn func(string) error) error {
	if pos == len(buf) {
		return fn(string(buf))
	}
	for d := byte('0'); d <= '9'; d++ {
		buf[pos] = d
		if err := digits(buf, pos+1, fn); err != nil {
			return err
		}
	}
	return nil
}
