package lgi

import "strings"

// MaxDegree is the largest vertex degree the alphabet can encode.
const MaxDegree = 6

var degreeChars = [MaxDegree + 1]byte{'@', 'A', 'B', 'C', 'D', 'E', 'F'}

var degreeElements = [MaxDegree + 1]string{"B", "F", "O", "N", "C", "P", "S"}

// elementChar and charElement translate between engine element symbols and
// alphabet characters. Every element in degreeElements is a single letter.
var (
	elementChar = map[byte]byte{}
	charElement = map[byte]byte{}
)

func init() {
	for d, sym := range degreeElements {
		elementChar[sym[0]] = degreeChars[d]
		charElement[degreeChars[d]] = sym[0]
	}
}

// ToChar returns the alphabet character for degree d. It reports false when
// d is outside 0..MaxDegree.
func ToChar(d int) (byte, bool) {
	if d < 0 || d > MaxDegree {
		return 0, false
	}
	return degreeChars[d], true
}

// FromChar returns the degree encoded by c. Only 'A' through 'F' decode;
// '@' and every structural character report false, meaning "not a validated
// degree position".
func FromChar(c byte) (int, bool) {
	if c < 'A' || c > 'F' {
		return 0, false
	}
	return int(c-'A') + 1, true
}

// IsAtomChar reports whether c marks an atom position in an LGI string.
func IsAtomChar(c byte) bool {
	return c == '@' || (c >= 'A' && c <= 'F')
}

// Element returns the substitution element for degree d.
func Element(d int) (string, bool) {
	if d < 0 || d > MaxDegree {
		return "", false
	}
	return degreeElements[d], true
}

// toLGI replaces every substitution element in engine notation with its
// degree character and upper-cases the result.
func toLGI(native string) string {
	out := make([]byte, len(native))
	for i := 0; i < len(native); i++ {
		if c, ok := elementChar[native[i]]; ok {
			out[i] = c
			continue
		}
		out[i] = upper(native[i])
	}
	return string(out)
}

// toNative is the inverse of toLGI. It also returns the expected degree of
// every atom position in string order, -1 marking an unvalidated '@'.
func toNative(lgi string) (string, []int) {
	out := make([]byte, len(lgi))
	var expected []int
	for i := 0; i < len(lgi); i++ {
		c := lgi[i]
		if !IsAtomChar(c) {
			out[i] = c
			continue
		}
		out[i] = charElement[c]
		if d, ok := FromChar(c); ok {
			expected = append(expected, d)
		} else {
			expected = append(expected, -1)
		}
	}
	return string(out), expected
}

// structural lists the non-atom characters an LGI string may contain:
// branches, ring closures, component separators and bond symbols.
const structural = "()%.0123456789-=#$:/\\"

// firstForeign returns the index of the first character in s that is
// neither a degree character nor structural syntax, or -1.
func firstForeign(s string) int {
	for i := 0; i < len(s); i++ {
		if !IsAtomChar(s[i]) && strings.IndexByte(structural, s[i]) < 0 {
			return i
		}
	}
	return -1
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
