package wisp

import "html"

// Escape HTML-encodes the five significant characters (&, <, >, double
// and single quote) for the escaped-output path. It is applied after
// stringification and is not idempotent: escaping already-escaped text
// double-encodes, matching the tag format's documented behavior.
func Escape(s string) string {
	return html.EscapeString(s)
}
