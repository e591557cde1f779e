package lexer

import "fmt"

type TokenType int

const (
	// TokenText is a run of literal template text. The two-character
	// escape sequence "<%%" has already been collapsed to a literal
	// "<%" inside its contents.
	TokenText TokenType = iota

	TokenOpenEscaped
	TokenOpenRaw
	TokenOpenStatement
	TokenOpenComment

	// TokenCode is the verbatim contents of a tag, between the opening
	// marker and the closing "%>".
	TokenCode

	TokenClose

	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "Text"
	case TokenOpenEscaped:
		return "Escaped output open"
	case TokenOpenRaw:
		return "Raw output open"
	case TokenOpenStatement:
		return "Statement open"
	case TokenOpenComment:
		return "Comment open"
	case TokenCode:
		return "Code"
	case TokenClose:
		return "Tag close"
	case TokenEOF:
		return "EOF"
	}

	return "<unknown>"
}

// IsOpen reports whether the token opens a tag of any subtype.
func (t TokenType) IsOpen() bool {
	switch t {
	case TokenOpenEscaped, TokenOpenRaw, TokenOpenStatement, TokenOpenComment:
		return true
	}
	return false
}

type Token struct {
	Type     TokenType
	Start    Location
	Contents string
}

type Location struct {
	File string

	// 0-based
	Line, Column int
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line+1, l.Column+1)
}
