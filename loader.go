package wisp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// A Loader resolves a template path to its source text. The engine
// never touches the filesystem itself; all include and RenderFile
// lookups go through the configured Loader, and its failures surface
// as TemplateNotFoundError.
type Loader interface {
	Load(path string) (string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (string, error)

func (f LoaderFunc) Load(path string) (string, error) {
	return f(path)
}

// DirLoader loads templates from a directory tree rooted at Root.
// Paths are resolved relative to Root and may not escape it. When Ext
// is set, paths without an extension get it appended.
type DirLoader struct {
	Root string
	Ext  string
}

func (l DirLoader) Load(path string) (string, error) {
	name := path
	if l.Ext != "" && filepath.Ext(name) == "" {
		name += l.Ext
	}

	full := filepath.Join(l.Root, filepath.FromSlash(name))

	rel, err := filepath.Rel(l.Root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes template root", path)
	}

	src, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}

	return string(src), nil
}
