package wisp

import (
	"errors"
	"fmt"

	"github.com/wisp-lang/wisp/internal/generator"
	"github.com/wisp-lang/wisp/internal/lexer"
)

// SituatedErr is implemented by errors that carry a template source
// position.
type SituatedErr interface {
	Unwrap() error
	At() lexer.Location
}

// ErrUnterminatedTag is reported when a template ends inside a tag,
// before its closing "%>". It is carried inside a situated error.
var ErrUnterminatedTag = lexer.ErrUnterminatedTag

// ErrIncludeDepthExceeded is reported when nested includes pass the
// engine's configured depth cap.
var ErrIncludeDepthExceeded = errors.New("include depth exceeded")

// ErrNoLoader is reported when a template references another file but
// the engine was built without a Loader.
var ErrNoLoader = errors.New("no template loader configured")

// ErrTemplateTooLarge is reported when a template source exceeds
// Options.MaxTemplateSize.
var ErrTemplateTooLarge = errors.New("template source too large")

// CompileError is returned when the concatenated code fragments of a
// template do not form a syntactically valid program, including
// unbalanced control flow split across statement tags.
type CompileError = generator.CompileError

// TemplateNotFoundError is returned when the loader collaborator
// cannot resolve a template path.
type TemplateNotFoundError struct {
	Path  string
	Inner error
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found: %s", e.Path, e.Inner)
}

func (e *TemplateNotFoundError) Unwrap() error {
	return e.Inner
}

// RuntimeError is returned when a template's code raises while
// executing against a given context, such as referencing an undefined
// context key.
type RuntimeError struct {
	Name  string
	Inner error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error in %s: %s", e.Name, e.Inner)
}

func (e *RuntimeError) Unwrap() error {
	return e.Inner
}
