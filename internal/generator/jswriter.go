package generator

import (
	"fmt"
	"strings"

	"github.com/wisp-lang/wisp/internal/lexer"
)

// origin maps one line of the generated program back to the template
// position and code fragment it came from.
type origin struct {
	loc      lexer.Location
	fragment string
}

// jsWriter assembles the generated JavaScript program line by line,
// recording the template origin of every line so compile errors can be
// reported against template positions.
type jsWriter struct {
	sb      strings.Builder
	origins []origin
}

// writeLine appends a single generated line attributed to loc.
func (w *jsWriter) writeLine(line string, loc lexer.Location, fragment string) {
	w.sb.WriteString(line)
	w.sb.WriteByte('\n')
	w.origins = append(w.origins, origin{loc: loc, fragment: fragment})
}

// writeChunk appends a chunk that may span several lines, attributing
// line i to the fragment's starting line offset by i.
func (w *jsWriter) writeChunk(chunk string, loc lexer.Location, fragment string) {
	lines := strings.Split(chunk, "\n")

	for i, line := range lines {
		lineLoc := loc
		lineLoc.Line += i
		if i > 0 {
			lineLoc.Column = 0
		}

		w.writeLine(line, lineLoc, fragment)
	}
}

func (w *jsWriter) originAt(line int) (origin, bool) {
	if line < 1 || line > len(w.origins) {
		return origin{}, false
	}

	return w.origins[line-1], true
}

func (w *jsWriter) String() string {
	return w.sb.String()
}

// quoteJS renders s as a JavaScript double-quoted string literal that
// reproduces the original text byte-for-byte when evaluated.
func quoteJS(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}

	sb.WriteByte('"')
	return sb.String()
}
