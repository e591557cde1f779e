package wisp

import "testing"

func TestEscape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"<script>", "&lt;script&gt;"},
		{`a & b`, "a &amp; b"},
		{`"quoted"`, "&#34;quoted&#34;"},
		{"it's", "it&#39;s"},
		{`&<>"'`, "&amp;&lt;&gt;&#34;&#39;"},
	}

	for _, c := range cases {
		assert(t, c.want, Escape(c.in), "escaped form")
	}
}

func TestEscapeDoubleEncodes(t *testing.T) {
	// Escaping is not idempotent; re-escaping escaped text encodes the
	// ampersands again.
	assert(t, "&amp;lt;b&amp;gt;", Escape(Escape("<b>")), "double-escaped form")
}
