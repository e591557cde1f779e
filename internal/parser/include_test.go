package parser

import "testing"

func TestParseIncludeDirective(t *testing.T) {
	cases := []struct {
		name   string
		code   string
		path   string
		locals string
		ok     bool
	}{
		{name: "string path", code: "include('p')", path: "'p'", ok: true},
		{name: "surrounding space", code: "  include( 'p' ) ", path: "'p'", ok: true},
		{name: "trailing semicolon", code: "include('p');", path: "'p'", ok: true},
		{name: "expression path", code: "include(partials[i])", path: "partials[i]", ok: true},
		{name: "with locals", code: "include('p', {a: 1})", path: "'p'", locals: "{a: 1}", ok: true},
		{name: "locals with nested commas", code: "include('p', {a: [1, 2], b: f(x, y)})", path: "'p'", locals: "{a: [1, 2], b: f(x, y)}", ok: true},
		{name: "comma inside path string", code: "include('a,b')", path: "'a,b'", ok: true},

		{name: "not a call", code: "includes('p')", ok: false},
		{name: "other code", code: "var x = 1", ok: false},
		{name: "no arguments", code: "include()", ok: false},
		{name: "too many arguments", code: "include('p', {}, extra)", ok: false},
		{name: "unbalanced locals", code: "include('p', {a: 1)", ok: false},
		{name: "trailing code after call", code: "include('p') + x", ok: false},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			path, locals, ok := parseIncludeDirective(c.code)

			assert(t, c.ok, ok, "recognized")
			if !ok {
				return
			}

			assert(t, c.path, path, "path expression")
			assert(t, c.locals, locals, "locals expression")
		})
	}
}
