package parser

import "strings"

// parseIncludeDirective recognizes tag content of the form
//
//	include(pathExpr)
//	include(pathExpr, localsExpr)
//
// and returns the two argument expressions verbatim. Recognition works
// on tag boundaries only: the arguments are not parsed beyond the
// top-level comma split, which honors nested brackets and string
// literals so that object-literal locals pass through intact. Content
// that does not match the call shape is not a directive and is left to
// the generator untouched.
func parseIncludeDirective(code string) (pathExpr, localsExpr string, ok bool) {
	s := strings.TrimSpace(code)
	s = strings.TrimSuffix(s, ";")
	s = strings.TrimSpace(s)

	rest, found := strings.CutPrefix(s, "include")
	if !found {
		return "", "", false
	}

	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return "", "", false
	}

	inner := rest[1 : len(rest)-1]

	args, balanced := splitTopLevelArgs(inner)
	if !balanced {
		return "", "", false
	}

	switch len(args) {
	case 1:
		pathExpr = strings.TrimSpace(args[0])
	case 2:
		pathExpr = strings.TrimSpace(args[0])
		localsExpr = strings.TrimSpace(args[1])
	default:
		return "", "", false
	}

	if pathExpr == "" {
		return "", "", false
	}

	return pathExpr, localsExpr, true
}

// splitTopLevelArgs splits s on commas that are not nested inside
// brackets or string literals. It reports failure when brackets or
// quotes are unbalanced, in which case the content cannot be the
// directive's argument list.
func splitTopLevelArgs(s string) (args []string, balanced bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}

	var depth int
	var quote byte
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c

		case '(', '[', '{':
			depth++

		case ')', ']', '}':
			depth--
			if depth < 0 {
				return nil, false
			}

		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}

	if depth != 0 || quote != 0 {
		return nil, false
	}

	return append(args, s[start:]), true
}
