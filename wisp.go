package wisp

import (
	"github.com/wisp-lang/wisp/internal/generator"
	"github.com/wisp-lang/wisp/internal/lexer"
	"github.com/wisp-lang/wisp/internal/parser"
)

// DefaultMaxIncludeDepth caps include recursion when Options leaves it
// unset. The tag format has no native cycle guard, so unbounded
// recursion would otherwise run until the stack gives out.
const DefaultMaxIncludeDepth = 50

// inlineName is the template name used for sources rendered directly
// from a string.
const inlineName = "inline"

type Options struct {
	// Loader resolves template paths for RenderFile and the include
	// directive. Without one, only Render on source strings works.
	Loader Loader

	// Globals are bindings available to every render underneath the
	// per-call context; context keys win on collision.
	Globals map[string]any

	// MaxIncludeDepth caps include nesting. Zero means
	// DefaultMaxIncludeDepth.
	MaxIncludeDepth int

	// MaxTemplateSize rejects template sources larger than this many
	// bytes. Zero means no limit.
	MaxTemplateSize int
}

// Engine compiles and renders templates. Engines are safe for
// concurrent use; each one owns its compiled-template cache.
type Engine struct {
	loader  Loader
	globals map[string]any

	maxDepth int
	maxSize  int

	cache *cache
}

func New(opts Options) *Engine {
	maxDepth := opts.MaxIncludeDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxIncludeDepth
	}

	return &Engine{
		loader:   opts.Loader,
		globals:  opts.Globals,
		maxDepth: maxDepth,
		maxSize:  opts.MaxTemplateSize,
		cache:    newCache(),
	}
}

// Render compiles src and executes it against ctx, returning the
// rendered output. The context is never mutated; includes reached
// during execution see a copy of it extended with their locals.
func (e *Engine) Render(src string, ctx map[string]any) (string, error) {
	prog, err := e.compile(src, inlineName)
	if err != nil {
		return "", err
	}

	return e.execute(prog, ctx, 0)
}

// RenderFile loads path through the engine's Loader, compiles it via
// the cache and executes it against ctx. The cached program is reused
// until the underlying source changes.
func (e *Engine) RenderFile(path string, ctx map[string]any) (string, error) {
	t, err := e.cache.getOrCompile(e, path)
	if err != nil {
		return "", err
	}

	return e.execute(t.prog, ctx, 0)
}

// Compile runs the full pipeline on a source string without executing
// it, reporting the first tokenizer, parser or generation failure.
// This is what the language server calls to produce diagnostics.
func (e *Engine) Compile(src string, name string) error {
	_, err := e.compile(src, name)
	return err
}

func (e *Engine) compile(src string, name string) (*generator.Program, error) {
	if e.maxSize > 0 && len(src) > e.maxSize {
		return nil, ErrTemplateTooLarge
	}

	tokens, err := lexer.New([]byte(src), name).Collect()
	if err != nil {
		return nil, err
	}

	f, err := parser.Parse(tokens, name)
	if err != nil {
		return nil, err
	}

	return generator.Compile(f)
}
