package match

import "strings"

// NormalizeIdent normalizes an identifier for fuzzy matching: it folds case
// and drops separators, so "e-mail", "E_Mail" and "eMail" compare equal.
func NormalizeIdent(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if isSeparator(r) {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
