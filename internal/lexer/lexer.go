package lexer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

type Error struct {
	Inner    error
	Location Location
}

func (e *Error) Unwrap() error {
	return e.Inner
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *Error) At() Location {
	return e.Location
}

// ErrUnterminatedTag is returned when the input ends while inside a
// tag, before the closing "%>" is found.
var ErrUnterminatedTag = errors.New("unterminated tag")

type stateFunc func() stateFunc

type state struct {
	str      []rune
	strStart Location

	byteIndex int
	line, col int
}

type Lexer struct {
	filename string
	file     []byte

	tokens chan Token

	// Location of the opening marker of the tag currently being lexed,
	// used to situate ErrUnterminatedTag.
	tagStart Location

	state

	err *Error
}

func New(file []byte, fileName string) *Lexer {
	tks := make(chan Token, 1)

	lexer := &Lexer{
		tokens:   tks,
		file:     file,
		filename: fileName,
	}
	lexer.strStart = Location{File: fileName}

	go func() {
		defer close(tks)

		state := lexer.lexText()
		for state != nil {
			state = state()

			if lexer.err != nil {
				return
			}
		}

		tks <- Token{
			Type: TokenEOF,
			Start: Location{
				File:   lexer.filename,
				Line:   lexer.line,
				Column: lexer.col,
			},
		}
	}()

	return lexer
}

func (l *Lexer) Next() (*Token, error) {
	t, ok := <-l.tokens
	if !ok {
		return nil, l.err
	}

	return &t, nil
}

func (l *Lexer) Collect() ([]Token, error) {
	tks := []Token{}

	for t := range l.tokens {
		tks = append(tks, t)

		if t.Type == TokenEOF {
			break
		}
	}

	if l.err != nil {
		return nil, l.err
	}

	return tks, nil
}

func (l *Lexer) take() (r rune, eof bool) {
	if l.byteIndex >= len(l.file) {
		return 0, true
	}

	r, size := utf8.DecodeRune(l.file[l.byteIndex:])

	l.str = append(l.str, r)

	l.col++
	l.byteIndex += size

	if r == '\n' {
		l.line++
		l.col = 0
	}

	return r, false
}

func (l *Lexer) peek() (r rune, eof bool) {
	if l.byteIndex >= len(l.file) {
		return 0, true
	}

	r, _ = utf8.DecodeRune(l.file[l.byteIndex:])
	return
}

func (l *Lexer) emit(typ TokenType) {
	l.tokens <- Token{
		Type:     typ,
		Start:    l.strStart,
		Contents: string(l.str),
	}

	l.discard()
}

func (l *Lexer) discard() {
	l.strStart = Location{
		File:   l.filename,
		Line:   l.line,
		Column: l.col,
	}
	l.str = l.str[:0]
}

func (l *Lexer) isEmpty() bool {
	return len(l.str) == 0
}

func (l *Lexer) lexErrorAt(err error, loc Location) stateFunc {
	l.err = &Error{
		Inner:    err,
		Location: loc,
	}
	return nil
}

// lexText scans literal template text until an opening marker or the
// end of the input.
func (l *Lexer) lexText() stateFunc {
	for {
		state := l.state

		r, eof := l.take()
		if eof {
			if !l.isEmpty() {
				l.emit(TokenText)
			}
			return nil
		}

		if r != '<' {
			continue
		}

		if r, eof := l.peek(); eof || r != '%' {
			continue
		}

		if l.isLiteralEscape() {
			// "<%%": untake the '<', flush nothing, then consume all
			// three runes and keep a literal "<%" in the text buffer.
			l.state = state
			l.take() // '<'
			l.take() // '%'
			l.take() // '%'
			l.str = l.str[:len(l.str)-1]
			continue
		}

		// Untake the '<' so the pending text token does not include
		// the marker, then flush it.
		l.state = state
		if !l.isEmpty() {
			l.emit(TokenText)
		}

		return l.lexTagOpen
	}
}

// isLiteralEscape reports whether the input at the current '<' starts
// the "<%%" literal-escape form. The '<' has already been taken.
func (l *Lexer) isLiteralEscape() bool {
	// byteIndex sits on the '%' following '<'.
	return l.byteIndex+1 < len(l.file) && l.file[l.byteIndex+1] == '%'
}

func (l *Lexer) lexTagOpen() stateFunc {
	l.tagStart = l.strStart

	l.take() // '<'
	l.take() // '%'

	typ := TokenOpenStatement

	if r, eof := l.peek(); !eof {
		switch r {
		case '=':
			l.take()
			typ = TokenOpenEscaped
		case '-':
			l.take()
			typ = TokenOpenRaw
		case '#':
			l.take()
			typ = TokenOpenComment
		}
	}

	l.emit(typ)
	return l.lexTagContents
}

func (l *Lexer) lexTagContents() stateFunc {
	for {
		state := l.state

		r, eof := l.take()
		if eof {
			return l.lexErrorAt(ErrUnterminatedTag, l.tagStart)
		}

		if r != '%' {
			continue
		}

		if r, eof := l.peek(); eof || r != '>' {
			continue
		}

		// Untake the '%' so the code token stops before the closing
		// marker.
		l.state = state
		l.emit(TokenCode)

		l.take() // '%'
		l.take() // '>'
		l.emit(TokenClose)

		return l.lexText
	}
}
