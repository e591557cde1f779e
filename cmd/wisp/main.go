package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/natefinch/atomic"
	"github.com/wisp-lang/wisp"
)

var (
	outDir      = kingpin.Flag("out-dir", "Folder to put rendered files on").Short('o').Default(".").String()
	rootDir     = kingpin.Flag("root", "Template root directory used to resolve includes").Default(".").String()
	contextFile = kingpin.Flag("context", "JSON file with the render context").Short('c').ExistingFile()
	configFile  = kingpin.Flag("config", "TOML project file with template root and globals").ExistingFile()
	outExt      = kingpin.Flag("out-ext", "Extension of rendered output files").Default(".html").String()
	watch       = kingpin.Flag("watch", "Watch files for changes and re-render automatically").Short('w').Bool()
	files       = kingpin.Arg("files", "List of template files to render").Required().ExistingFiles()

	errColor = color.New(color.FgRed, color.Bold)

	engine  *wisp.Engine
	context map[string]any
)

// projectConfig is the optional TOML project file.
type projectConfig struct {
	Root    string         `toml:"root"`
	Ext     string         `toml:"ext"`
	Globals map[string]any `toml:"globals"`
}

func main() {
	kingpin.Parse()

	var cfg projectConfig
	if *configFile != "" {
		if _, err := toml.DecodeFile(*configFile, &cfg); err != nil {
			kingpin.Fatalf("failed to read config %q: %s", *configFile, err)
		}
	}

	if cfg.Root != "" {
		*rootDir = cfg.Root
	}

	*outDir, _ = filepath.Abs(*outDir)
	*rootDir, _ = filepath.Abs(*rootDir)

	if *contextFile != "" {
		data, err := os.ReadFile(*contextFile)
		if err != nil {
			kingpin.Fatalf("failed to read context file: %s", err)
		}

		if err := json.Unmarshal(data, &context); err != nil {
			kingpin.Fatalf("failed to parse context file %q: %s", *contextFile, err)
		}
	}

	engine = wisp.New(wisp.Options{
		Loader:  wisp.DirLoader{Root: *rootDir, Ext: cfg.Ext},
		Globals: cfg.Globals,
	})

	if *watch {
		err := watchFiles()
		if err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}
	} else {
		if err := renderAll(); err != nil {
			os.Exit(1)
		}
	}
}

func renderAll() error {
	var failed error

	for _, fname := range *files {
		if _, err := renderFile(fname); err != nil {
			errColor.Fprintf(os.Stderr, "%s: %s\n", fname, err)
			failed = err
		}
	}

	return failed
}

func renderFile(fname string) (outPath string, err error) {
	abs, _ := filepath.Abs(fname)

	rel, err := filepath.Rel(*rootDir, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("file %q is outside the template root %q", fname, *rootDir)
	}

	out, err := engine.RenderFile(filepath.ToSlash(rel), context)
	if err != nil {
		return "", err
	}

	outName := strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname)) + *outExt
	outPath = filepath.Join(*outDir, outName)

	if err := atomic.WriteFile(outPath, bytes.NewReader([]byte(out))); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}

	return outPath, nil
}

func watchFiles() error {
	watcher, err := NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	for _, f := range *files {
		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	renderAll()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	log.Println("watching files for changes...")

	<-ch
	return nil
}
