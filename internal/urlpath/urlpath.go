// Package urlpath normalizes URL paths into a template form so literal and
// parameterized segments compare as equal.
package urlpath

import "strings"

// Normalize collapses every variable-looking segment of a path to the {_}
// placeholder: segments that are bracket-delimited ({id}), purely numeric,
// or that contain anything beyond letters, digits, underscore, or hyphen.
// The mapping is lossy by design: /users/123, /users/{id}, and
// /users/{name} all normalize to /users/{_}. The root path normalizes
// to /.
func Normalize(path string) string {
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimSpace(path), "/") {
		if seg == "" {
			continue
		}
		b.WriteByte('/')
		if isParam(seg) || isNumeric(seg) || !isSafeLiteral(seg) {
			b.WriteString("{_}")
		} else {
			b.WriteString(seg)
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

func isParam(seg string) bool {
	return strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}

func isNumeric(seg string) bool {
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isSafeLiteral(seg string) bool {
	for _, r := range seg {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
