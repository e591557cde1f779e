// Package ast holds the node sequence produced by the tag parser.
//
// The sequence is deliberately flat: control flow is not modelled as
// nested nodes. Consecutive statement fragments, concatenated in
// source order together with the text emitted between them, form the
// executable program only once the generator assembles them, so an
// unbalanced construct surfaces there rather than here.
package ast

import (
	"github.com/wisp-lang/wisp/internal/lexer"
)

type Pos lexer.Location

func (p Pos) Position() lexer.Location {
	return lexer.Location(p)
}

type File struct {
	Name  string
	Nodes []Node
}

type Node interface {
	Position() lexer.Location
}

// NodeText is a run of literal output, reproduced byte-for-byte.
type NodeText struct {
	Pos

	Text string
}

// NodeExpr is an output tag. Its code fragment is evaluated against
// the render context and the result appended, HTML-escaped unless the
// tag was the raw form.
type NodeExpr struct {
	Pos

	Code       string
	EscapeHTML bool
}

// NodeStatement is an opaque code fragment spliced verbatim into the
// generated program at this position. It produces no output by itself.
type NodeStatement struct {
	Pos

	Code string
}

// NodeInclude renders a partial template. PathExpr evaluates to the
// partial's identifier; LocalsExpr, when present, evaluates to an
// object overlaid onto a copy of the caller's context.
type NodeInclude struct {
	Pos

	PathExpr   string
	LocalsExpr string
}
