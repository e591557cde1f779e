// Package generator assembles the flat node sequence of a template
// into a single JavaScript program and compiles it.
//
// Control flow inside statement fragments is resolved here, not in the
// parser: fragments are spliced verbatim between the generated append
// calls, so an unbalanced construct (an "if" with no closing brace)
// only surfaces as a syntax error from program compilation.
package generator

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dop251/goja"
	"github.com/wisp-lang/wisp/internal/lexer"
	"github.com/wisp-lang/wisp/internal/parser/ast"
)

// Names of the helper bindings the generated program expects to find
// installed on the runtime it executes on.
const (
	HelperAppend  = "__append"
	HelperEscape  = "__escape"
	HelperString  = "__string"
	HelperInclude = "__include"
)

type CompileError struct {
	Name     string
	Fragment string
	Location lexer.Location

	// Inner is the syntax error raised by compilation of the
	// assembled program.
	Inner error
}

func (e *CompileError) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("compile %s: %s at %s (in %q)", e.Name, e.Inner, &e.Location, e.Fragment)
	}

	return fmt.Sprintf("compile %s: %s", e.Name, e.Inner)
}

func (e *CompileError) Unwrap() error {
	return e.Inner
}

func (e *CompileError) At() lexer.Location {
	return e.Location
}

// Program is an immutable compiled template program, runnable on any
// goja runtime that carries the helper bindings.
type Program struct {
	Name   string
	Source string

	Code *goja.Program
}

// Compile turns a parsed template into an executable program. The
// generated program accumulates output through the append helper and
// yields the rendered string as its completion value.
func Compile(f *ast.File) (*Program, error) {
	var w jsWriter

	header := lexer.Location{File: f.Name}
	w.writeLine(`var __output = ""; function `+HelperAppend+`(s) { __output += s; }`, header, "")

	for _, n := range f.Nodes {
		switch n := n.(type) {
		case *ast.NodeText:
			w.writeLine(HelperAppend+`(`+quoteJS(n.Text)+`);`, n.Position(), "")

		case *ast.NodeExpr:
			helper := HelperString
			if n.EscapeHTML {
				helper = HelperEscape
			}

			w.writeChunk(HelperAppend+`(`+helper+`((`+n.Code+`)));`, n.Position(), n.Code)

		case *ast.NodeStatement:
			w.writeChunk(n.Code, n.Position(), n.Code)

		case *ast.NodeInclude:
			call := HelperInclude + `((` + n.PathExpr + `))`
			if n.LocalsExpr != "" {
				call = HelperInclude + `((` + n.PathExpr + `), (` + n.LocalsExpr + `))`
			}

			w.writeChunk(HelperAppend+`(`+call+`);`, n.Position(), n.PathExpr)

		default:
			return nil, fmt.Errorf("unknown node type %T", n)
		}
	}

	w.writeLine(`__output;`, header, "")

	src := w.String()

	prog, err := goja.Compile(f.Name, src, false)
	if err != nil {
		return nil, compileError(f.Name, err, &w)
	}

	return &Program{
		Name:   f.Name,
		Source: src,
		Code:   prog,
	}, nil
}

// linePosRe matches the "Line L:C" position goja embeds in syntax
// error messages.
var linePosRe = regexp.MustCompile(`Line (\d+):(\d+)`)

// compileError maps a goja syntax error back to the template fragment
// the offending generated line came from.
func compileError(name string, err error, w *jsWriter) *CompileError {
	ce := &CompileError{
		Name:     name,
		Location: lexer.Location{File: name},
		Inner:    err,
	}

	m := linePosRe.FindStringSubmatch(err.Error())
	if m == nil {
		return ce
	}

	line, _ := strconv.Atoi(m[1])

	if o, ok := w.originAt(line); ok {
		ce.Location = o.loc
		ce.Fragment = o.fragment
	}

	return ce
}
