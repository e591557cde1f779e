// Package wisp is a template engine for embedded-code templates:
// literal markup mixed with executable expressions and control flow.
//
// Tag syntax:
//
//	<%= expr %>   escaped output
//	<%- expr %>   raw output
//	<% code %>    statement, no output
//	<%# text %>   comment, discarded
//	<%%           literal "<%"
//
// Code fragments are JavaScript, evaluated against the render context.
// Control flow is written as plain fragments split across tags:
//
//	<% if (loggedIn) { %>Hello, <%= user.name %>!<% } %>
//
// The engine does not pair those fragments structurally; they are
// spliced verbatim into one program, so a missing closing brace fails
// at compilation of the assembled program, not at tag parsing.
//
// Partials are rendered with the include directive, optionally with
// local bindings overlaid on the caller's context:
//
//	<%- include('header', {title: 'Home'}) %>
//
// Template sources are resolved through a caller-supplied Loader, and
// compiled templates are cached per engine, keyed by path and content
// hash.
package wisp
