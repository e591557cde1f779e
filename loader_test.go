package wisp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirLoader(t *testing.T) {
	root := t.TempDir()

	write := func(name, src string) {
		t.Helper()

		full := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("index.wisp", "index")
	write("partials/header.wisp", "header")

	l := DirLoader{Root: root, Ext: ".wisp"}

	t.Run("plain path", func(t *testing.T) {
		src, err := l.Load("index.wisp")
		if err != nil {
			t.Fatalf("failed to load: %s", err)
		}
		assert(t, "index", src, "source")
	})

	t.Run("extension appended", func(t *testing.T) {
		src, err := l.Load("partials/header")
		if err != nil {
			t.Fatalf("failed to load: %s", err)
		}
		assert(t, "header", src, "source")
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := l.Load("ghost"); err == nil {
			t.Fatal("expected an error for a missing template")
		}
	})

	t.Run("path cannot escape root", func(t *testing.T) {
		if _, err := l.Load("../outside"); err == nil {
			t.Fatal("expected an error for a path escaping the root")
		}
	})
}

func TestRenderFileWithDirLoader(t *testing.T) {
	root := t.TempDir()

	page := filepath.Join(root, "page.wisp")
	if err := os.WriteFile(page, []byte("Hello, <%= who %>! <%- include('aside') %>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "aside.wisp"), []byte("(<%= who %>)"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New(Options{Loader: DirLoader{Root: root, Ext: ".wisp"}})

	out, err := e.RenderFile("page.wisp", map[string]any{"who": "world"})
	if err != nil {
		t.Fatalf("failed to render: %s", err)
	}

	assert(t, "Hello, world! (world)", out, "rendered output")
}
