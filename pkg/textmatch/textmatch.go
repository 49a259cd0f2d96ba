// Package textmatch provides the literal, case-insensitive term matching used by
// directory filtering and highlighting.
package textmatch

import (
	"regexp"
	"strings"
)

// metaChars are the characters that carry meaning inside a regular expression.
const metaChars = `.*+?^${}()|[]\`

// Matches reports whether needle occurs in haystack, ignoring case.
// An empty needle matches everything. Case folding is the same as Pattern's,
// so whatever Matches accepts can be highlighted.
func Matches(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	re, ok := Pattern(needle)
	return ok && re.MatchString(haystack)
}

// EscapeForPattern backslash-escapes every regular expression metacharacter in term
// so the result only ever matches term literally.
func EscapeForPattern(term string) string {
	var b strings.Builder
	b.Grow(len(term))
	for _, r := range term {
		if strings.ContainsRune(metaChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Pattern compiles a case-insensitive pattern that matches term literally.
// It returns false when term is empty or no pattern could be built; callers
// treat that as "no match".
func Pattern(term string) (*regexp.Regexp, bool) {
	if term == "" {
		return nil, false
	}
	re, err := regexp.Compile("(?i)" + EscapeForPattern(term))
	if err != nil {
		return nil, false
	}
	return re, true
}
