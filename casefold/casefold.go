// Package casefold rewrites mapping keys into a lowercase, separator
// delimited form.
//
// The rule is position based, not a word splitter. Scanning every rune but the last:
//   - a non-separator rune followed by an uppercase rune is kept as is and
//     followed by the separator;
//   - otherwise an uppercase rune is lowercased;
//   - any other rune is kept.
//
// The last rune is always lowercased. Runs of capitals therefore stay
// uppercase, except for the final rune of the string:
//
//	Fold("UserName")   == "user_name"
//	Fold("HTTPServer") == "H_T_T_P_server"
package casefold

import (
	"strings"
	"unicode"
)

// DefaultSeparator is the rune inserted between folded segments.
const DefaultSeparator = '_'

// Folder folds strings with a configurable separator. The zero value uses
// DefaultSeparator.
type Folder struct {
	Separator rune
}

// Fold folds s with the default separator.
func Fold(s string) string {
	return Folder{}.Fold(s)
}

// Fold returns the folded form of s.
func (f Folder) Fold(s string) string {
	runes := []rune(s)
	if len(runes) <= 1 {
		return strings.ToLower(s)
	}

	sep := f.separator()

	var b strings.Builder
	b.Grow(len(s) + len(s)/2)

	last := len(runes) - 1
	for i := range last {
		r, next := runes[i], runes[i+1]

		switch {
		case r != sep && unicode.IsUpper(next):
			b.WriteRune(r)
			b.WriteRune(sep)
		case unicode.IsUpper(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}

	b.WriteRune(unicode.ToLower(runes[last]))

	return b.String()
}

func (f Folder) separator() rune {
	if f.Separator == 0 {
		return DefaultSeparator
	}
	return f.Separator
}
