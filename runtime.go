package wisp

import (
	"fmt"

	"github.com/dop251/goja"
	"github.com/wisp-lang/wisp/internal/generator"
	"golang.org/x/exp/maps"
)

// renderState threads engine-level failures out of helper natives.
// Natives abort script execution by throwing inside the runtime; the
// typed Go error is kept here so the caller gets it back intact
// instead of a stringified exception.
type renderState struct {
	err error
}

// execute runs a compiled program against ctx on a fresh runtime.
// Using a new runtime per call keeps renders fully isolated: nothing a
// template does can influence a later render.
func (e *Engine) execute(prog *generator.Program, ctx map[string]any, depth int) (string, error) {
	rt := goja.New()
	st := &renderState{}

	for k, v := range e.globals {
		if err := rt.Set(k, v); err != nil {
			return "", fmt.Errorf("bind global %q: %w", k, err)
		}
	}

	// Context keys become directly-referencable bindings, so fragments
	// can say user.name rather than ctx.user.name. Context wins over
	// engine globals on collision.
	for k, v := range ctx {
		if err := rt.Set(k, v); err != nil {
			return "", fmt.Errorf("bind context key %q: %w", k, err)
		}
	}

	rt.Set(generator.HelperString, func(call goja.FunctionCall) goja.Value {
		return rt.ToValue(stringify(call.Argument(0)))
	})

	rt.Set(generator.HelperEscape, func(call goja.FunctionCall) goja.Value {
		return rt.ToValue(Escape(stringify(call.Argument(0))))
	})

	rt.Set(generator.HelperInclude, e.includeFunc(rt, st, ctx, depth))

	v, err := rt.RunProgram(prog.Code)
	if err != nil {
		if st.err != nil {
			return "", st.err
		}

		return "", &RuntimeError{Name: prog.Name, Inner: err}
	}

	return v.String(), nil
}

// stringify converts an interpolated value to its output form.
// null and undefined become the empty string, never the literal word;
// everything else follows the script language's ToString rules.
func stringify(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}

	return v.String()
}

// includeFunc builds the native backing the include directive for one
// execution. It resolves the partial through the cache, overlays the
// caller-supplied locals onto a copy of the caller's context, and
// renders the partial synchronously.
func (e *Engine) includeFunc(rt *goja.Runtime, st *renderState, caller map[string]any, depth int) func(goja.FunctionCall) goja.Value {
	fail := func(err error) goja.Value {
		st.err = err
		panic(rt.NewGoError(err))
	}

	return func(call goja.FunctionCall) goja.Value {
		path := stringify(call.Argument(0))

		if depth+1 > e.maxDepth {
			return fail(fmt.Errorf("%w: %q nested deeper than %d", ErrIncludeDepthExceeded, path, e.maxDepth))
		}

		child := maps.Clone(caller)
		if child == nil {
			child = make(map[string]any)
		}

		if arg := call.Argument(1); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			locals, ok := arg.Export().(map[string]any)
			if !ok {
				return fail(fmt.Errorf("include %q: locals must be an object, got %s", path, arg))
			}

			for k, v := range locals {
				child[k] = v
			}
		}

		t, err := e.cache.getOrCompile(e, path)
		if err != nil {
			return fail(err)
		}

		out, err := e.execute(t.prog, child, depth+1)
		if err != nil {
			return fail(err)
		}

		return rt.ToValue(out)
	}
}
