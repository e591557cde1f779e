package generator

import (
	"errors"
	"testing"

	"github.com/dop251/goja"
	"github.com/wisp-lang/wisp/internal/lexer"
	"github.com/wisp-lang/wisp/internal/parser"
	"github.com/wisp-lang/wisp/internal/parser/ast"
)

func assert[T comparable](t *testing.T, expected, got T, msg string) {
	t.Helper()

	if got != expected {
		t.Fatalf("%s: expected %v, got %v", msg, expected, got)
	}
}

func compileSource(t *testing.T, src string) (*Program, error) {
	t.Helper()

	tks, err := lexer.New([]byte(src), "test.wisp").Collect()
	if err != nil {
		t.Fatalf("failed to lex %q: %s", src, err)
	}

	f, err := parser.Parse(tks, "test.wisp")
	if err != nil {
		t.Fatalf("failed to parse %q: %s", src, err)
	}

	return Compile(f)
}

func TestCompileTextOnly(t *testing.T) {
	prog, err := compileSource(t, "a \"quoted\"\nline\ttwo\\end")
	if err != nil {
		t.Fatalf("failed to compile: %s", err)
	}

	// Text-only programs need no helper bindings beyond the generated
	// prologue, so they can run on a bare runtime.
	v, err := goja.New().RunProgram(prog.Code)
	if err != nil {
		t.Fatalf("failed to run program: %s", err)
	}

	assert(t, "a \"quoted\"\nline\ttwo\\end", v.String(), "literal output")
}

func TestCompileUnbalancedStatement(t *testing.T) {
	_, err := compileSource(t, "<% if (true) { %>X")

	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompileError, got %v", err)
	}

	assert(t, "test.wisp", cerr.Name, "template name")
}

func TestCompileBadExpression(t *testing.T) {
	_, err := compileSource(t, "ok\n<%= a ++< %>")

	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompileError, got %v", err)
	}

	assert(t, " a ++< ", cerr.Fragment, "offending fragment")
	assert(t, 1, cerr.At().Line, "error line")
}

func TestCompileUnknownNode(t *testing.T) {
	_, err := Compile(&ast.File{
		Name:  "test.wisp",
		Nodes: []ast.Node{nil},
	})

	if err == nil {
		t.Fatal("expected an error for an unknown node type")
	}
}

func TestQuoteJS(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{"a\nb", `"a\nb"`},
		{"a\r\nb", `"a\r\nb"`},
		{"tab\there", `"tab\there"`},
		{`back\slash`, `"back\\slash"`},
		{"nul\x00byte", `"nul\u0000byte"`},
		{"line\u2028sep", `"line\u2028sep"`},
		{"para\u2029sep", `"para\u2029sep"`},
		{"unicode: héllo", `"unicode: héllo"`},
	}

	for _, c := range cases {
		assert(t, c.want, quoteJS(c.in), "quoted form")
	}
}
