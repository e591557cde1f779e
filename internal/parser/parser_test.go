package parser

import (
	"reflect"
	"testing"

	"github.com/wisp-lang/wisp/internal/lexer"
	"github.com/wisp-lang/wisp/internal/parser/ast"
)

func assert[T comparable](t *testing.T, expected, got T, msg string) {
	t.Helper()

	if got != expected {
		t.Fatalf("%s: expected %v, got %v", msg, expected, got)
	}
}

func tag(open lexer.TokenType, code string) []lexer.Token {
	return []lexer.Token{
		{Type: open},
		{Type: lexer.TokenCode, Contents: code},
		{Type: lexer.TokenClose, Contents: "%>"},
	}
}

func eof(tks ...[]lexer.Token) []lexer.Token {
	var all []lexer.Token
	for _, t := range tks {
		all = append(all, t...)
	}

	return append(all, lexer.Token{Type: lexer.TokenEOF})
}

func TestParser(t *testing.T) {
	type testCase struct {
		name  string
		tks   []lexer.Token
		nodes []ast.Node
	}

	cases := []testCase{
		{
			name: "text node",
			tks: eof([]lexer.Token{
				{Type: lexer.TokenText, Contents: "hello"},
			}),
			nodes: []ast.Node{
				&ast.NodeText{Text: "hello"},
			},
		},
		{
			name: "escaped expression",
			tks:  eof(tag(lexer.TokenOpenEscaped, " user.name ")),
			nodes: []ast.Node{
				&ast.NodeExpr{Code: " user.name ", EscapeHTML: true},
			},
		},
		{
			name: "raw expression",
			tks:  eof(tag(lexer.TokenOpenRaw, " body ")),
			nodes: []ast.Node{
				&ast.NodeExpr{Code: " body "},
			},
		},
		{
			name: "statement passes through verbatim",
			tks:  eof(tag(lexer.TokenOpenStatement, " if (a) { ")),
			nodes: []ast.Node{
				&ast.NodeStatement{Code: " if (a) { "},
			},
		},
		{
			name:  "comment is dropped",
			tks:   eof(tag(lexer.TokenOpenComment, " ignore me ")),
			nodes: nil,
		},
		{
			name: "include directive from raw output",
			tks:  eof(tag(lexer.TokenOpenRaw, " include('header') ")),
			nodes: []ast.Node{
				&ast.NodeInclude{PathExpr: "'header'"},
			},
		},
		{
			name: "include directive with locals",
			tks:  eof(tag(lexer.TokenOpenStatement, ` include("p", {value: 7, list: [1, 2]}) `)),
			nodes: []ast.Node{
				&ast.NodeInclude{PathExpr: `"p"`, LocalsExpr: "{value: 7, list: [1, 2]}"},
			},
		},
		{
			name: "include-like call in escaped output stays an expression",
			tks:  eof(tag(lexer.TokenOpenEscaped, " include('x') ")),
			nodes: []ast.Node{
				&ast.NodeExpr{Code: " include('x') ", EscapeHTML: true},
			},
		},
		{
			name: "statements around text keep source order",
			tks: eof(
				tag(lexer.TokenOpenStatement, " if (x) { "),
				[]lexer.Token{{Type: lexer.TokenText, Contents: "X"}},
				tag(lexer.TokenOpenStatement, " } "),
			),
			nodes: []ast.Node{
				&ast.NodeStatement{Code: " if (x) { "},
				&ast.NodeText{Text: "X"},
				&ast.NodeStatement{Code: " } "},
			},
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			f, err := Parse(c.tks, "test.wisp")
			if err != nil {
				t.Fatalf("failed to parse tokens: %s", err)
			}

			assert(t, len(c.nodes), len(f.Nodes), "node count")

			for i, want := range c.nodes {
				if !reflect.DeepEqual(want, f.Nodes[i]) {
					t.Fatalf("node %d: expected %#v, got %#v", i, want, f.Nodes[i])
				}
			}
		})
	}
}

func TestParserRequiresEOF(t *testing.T) {
	_, err := Parse([]lexer.Token{{Type: lexer.TokenText, Contents: "x"}}, "test.wisp")
	assert(t, ErrLastTokenEOF, err, "missing EOF")

	_, err = Parse(nil, "test.wisp")
	assert(t, ErrLastTokenEOF, err, "empty stream")
}

func TestParserUnexpectedToken(t *testing.T) {
	// An opening marker must be followed by code and a close.
	_, err := Parse([]lexer.Token{
		{Type: lexer.TokenOpenStatement},
		{Type: lexer.TokenEOF},
	}, "test.wisp")

	if err == nil {
		t.Fatal("expected an error for a dangling open token")
	}
}
