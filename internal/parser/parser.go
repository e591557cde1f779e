package parser

import (
	"errors"
	"fmt"

	"github.com/wisp-lang/wisp/internal/lexer"
	"github.com/wisp-lang/wisp/internal/parser/ast"
)

var ErrLastTokenEOF = errors.New("last token must be EOF")

type ParserError struct {
	Inner    error
	Location lexer.Location
}

func (e *ParserError) Unwrap() error {
	return e.Inner
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *ParserError) At() lexer.Location {
	return e.Location
}

type UnexpectedTokenError struct {
	Got      *lexer.Token
	Expected string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("expected %s, found %q (%s)", e.Expected, e.Got.Contents, e.Got.Type)
}

type parser struct {
	tokens []lexer.Token
	name   string
	index  int

	errs []*ParserError
}

// Parse consumes a token stream and produces the flat node sequence
// for a template. Comment tags are stripped here; statement and raw
// output content is carried through verbatim except for recognition of
// the include directive.
func Parse(tokens []lexer.Token, name string) (*ast.File, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TokenEOF {
		return nil, ErrLastTokenEOF
	}

	p := parser{
		tokens: tokens,
		name:   name,
	}

	f := p.parseFile()
	if len(p.errs) > 0 {
		return nil, p.errs[0]
	}

	return f, nil
}

func (p *parser) take() (tk *lexer.Token) {
	if p.index >= len(p.tokens) {
		return &p.tokens[len(p.tokens)-1] // Last token should be EOF
	}

	tk = &p.tokens[p.index]
	p.index++

	return tk
}

func (p *parser) mustTake(typ lexer.TokenType) (tk *lexer.Token, found bool) {
	tk = p.take()
	if tk.Type != typ {
		p.addErrorAt(&UnexpectedTokenError{
			Got:      tk,
			Expected: typ.String(),
		}, tk.Start)
		return nil, false
	}

	return tk, true
}

func (p *parser) addErrorAt(err error, pos lexer.Location) {
	p.errs = append(p.errs, &ParserError{
		Inner:    err,
		Location: pos,
	})
}

func (p *parser) parseFile() *ast.File {
	f := ast.File{
		Name: p.name,
	}

	for {
		tk := p.take()
		if tk.Type == lexer.TokenEOF {
			break
		}

		switch tk.Type {
		case lexer.TokenText:
			f.Nodes = append(f.Nodes, &ast.NodeText{
				Pos:  ast.Pos(tk.Start),
				Text: tk.Contents,
			})

		case lexer.TokenOpenEscaped, lexer.TokenOpenRaw, lexer.TokenOpenStatement, lexer.TokenOpenComment:
			if n := p.parseTag(tk); n != nil {
				f.Nodes = append(f.Nodes, n)
			}

		default:
			p.addErrorAt(&UnexpectedTokenError{
				Got:      tk,
				Expected: "literal text or a tag",
			}, tk.Start)
		}
	}

	return &f
}

// parseTag consumes the code and closing tokens following an opening
// marker and produces the node for the tag, or nil for comments.
func (p *parser) parseTag(open *lexer.Token) ast.Node {
	tkCode, ok := p.mustTake(lexer.TokenCode)
	if !ok {
		return nil
	}

	if _, ok := p.mustTake(lexer.TokenClose); !ok {
		return nil
	}

	pos := ast.Pos(open.Start)

	switch open.Type {
	case lexer.TokenOpenComment:
		return nil

	case lexer.TokenOpenEscaped:
		return &ast.NodeExpr{
			Pos:        pos,
			Code:       tkCode.Contents,
			EscapeHTML: true,
		}

	case lexer.TokenOpenRaw:
		if path, locals, ok := parseIncludeDirective(tkCode.Contents); ok {
			return &ast.NodeInclude{
				Pos:        pos,
				PathExpr:   path,
				LocalsExpr: locals,
			}
		}

		return &ast.NodeExpr{
			Pos:  pos,
			Code: tkCode.Contents,
		}

	case lexer.TokenOpenStatement:
		if path, locals, ok := parseIncludeDirective(tkCode.Contents); ok {
			return &ast.NodeInclude{
				Pos:        pos,
				PathExpr:   path,
				LocalsExpr: locals,
			}
		}

		return &ast.NodeStatement{
			Pos:  pos,
			Code: tkCode.Contents,
		}
	}

	p.addErrorAt(&UnexpectedTokenError{
		Got:      open,
		Expected: "a tag opening marker",
	}, open.Start)
	return nil
}
