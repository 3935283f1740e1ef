// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package natsort orders strings the way a person reading page filenames
// expects: runs of ASCII digits compare by numeric value instead of byte
// order, so "page2.jpg" sorts before "page10.jpg". Everything else compares
// case-insensitively.
package natsort

import (
	"sort"
	"strings"
)

// Split breaks s into alternating non-digit and digit runs. The first run is
// always a non-digit run, possibly empty, so that two split results can be
// compared element by element without ever pairing text against a number.
// Digit runs are ASCII only; digits from other scripts stay in text runs.
func Split(s string) []string {
	runs := []string{}
	start := 0
	inDigits := false
	for i := 0; i < len(s); i++ {
		d := isDigit(s[i])
		if i == 0 {
			if d {
				// Leading digit run needs an empty text run before it.
				runs = append(runs, "")
			}
			inDigits = d
			continue
		}
		if d != inDigits {
			runs = append(runs, s[start:i])
			start = i
			inDigits = d
		}
	}
	if len(s) > 0 {
		runs = append(runs, s[start:])
	}
	return runs
}

// Compare returns -1, 0, or 1 ordering a and b naturally. Digit runs compare
// by numeric value at arbitrary precision; text runs compare after lowercase
// folding; a string whose runs are a prefix of the other's sorts first.
// Strings that differ only in digit padding or letter case compare equal.
func Compare(a, b string) int {
	for a != "" || b != "" {
		at, ad, arest := nextRuns(a)
		bt, bd, brest := nextRuns(b)

		if c := compareFold(at, bt); c != 0 {
			return c
		}
		if c := compareDigits(ad, bd); c != 0 {
			return c
		}
		a, b = arest, brest
	}
	return 0
}

// Less reports whether a orders before b naturally.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Strings sorts s in place in natural order. The sort is stable, so strings
// that compare equal (e.g. "p2" and "p02") keep their input order.
func Strings(s []string) {
	sort.SliceStable(s, func(i, j int) bool {
		return Compare(s[i], s[j]) < 0
	})
}

// nextRuns returns the leading text run, the digit run after it, and the
// unconsumed remainder. An exhausted string yields two empty runs.
func nextRuns(s string) (text, digits, rest string) {
	i := 0
	for i < len(s) && !isDigit(s[i]) {
		i++
	}
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	return s[:i], s[i:j], s[j:]
}

// compareFold compares two text runs after lowercase folding.
func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareDigits compares two digit runs by numeric value. The runs are never
// parsed into machine integers, so arbitrarily long numbers cannot overflow:
// after stripping leading zeros, the longer run is the larger number, and
// equal-length runs compare bytewise. An empty run marks an exhausted string
// and sorts first.
func compareDigits(a, b string) int {
	if a == "" || b == "" {
		return strings.Compare(a, b)
	}
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	return strings.Compare(ta, tb)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
