package specification

import "strings"

// SearchPattern turns free text into a lower-cased SQL LIKE pattern. The term is trimmed and
// runs of inner whitespace become wildcards, so "foo bar" matches "foo XYZ bar".
// It returns false for a blank term, which disables the text filter.
func SearchPattern(term string) (string, bool) {
	fields := strings.Fields(strings.ToLower(term))
	if len(fields) == 0 {
		return "", false
	}
	return "%" + strings.Join(fields, "%") + "%", true
}
