// Hollow CLI - resolve shape files into block layouts
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/hollow/manifest"
	"github.com/chazu/hollow/shape"
	"github.com/chazu/hollow/store"
	"github.com/chazu/hollow/wire"
)

var log = commonlog.GetLogger("hollow")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	manifestDir := flag.String("manifest", ".", "Directory to search for hollow.toml")
	noCache := flag.Bool("no-cache", false, "Skip the layout cache even if the manifest enables it")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hollow [options] file.shape...\n\n")
		fmt.Fprintf(os.Stderr, "Resolves each shape file into a block layout, or reports why the shape\n")
		fmt.Fprintf(os.Stderr, "cannot use hole-based allocation.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hollow pair.shape            # Resolve one shape\n")
		fmt.Fprintf(os.Stderr, "  hollow -v shapes/*.shape     # Resolve many, show digests\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}
	if *verbose {
		commonlog.Configure(1, nil)
	}
	os.Exit(run(*manifestDir, *noCache, *verbose, flag.Args()))
}

func run(manifestDir string, noCache, verbose bool, paths []string) int {
	st := store.NewStore()
	m, err := manifest.FindAndLoad(manifestDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		return 1
	}
	if m != nil && !noCache {
		if path := m.CachePath(); path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating cache directory: %v\n", err)
				return 1
			}
			if err := st.Open(path); err != nil {
				fmt.Fprintf(os.Stderr, "Error opening layout cache: %v\n", err)
				return 1
			}
			defer st.Close()
			log.Infof("layout cache: %s", path)
		}
	}

	exitCode := 0
	for _, path := range paths {
		if err := resolveFile(st, path, verbose); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
		}
	}
	return exitCode
}

func resolveFile(st *store.Store, path string, verbose bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	expr, err := shape.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	digest := wire.ShapeDigest(expr)
	if verbose {
		fmt.Printf("%s: %x\n", path, digest[:8])
	}

	if l, ok, err := st.Get(digest); err != nil {
		log.Errorf("cache read: %v", err)
	} else if ok {
		log.Infof("cache hit for %s", path)
		printLayout(path, expr, l)
		return nil
	}

	l, rej := shape.Resolve(expr)
	if rej != nil {
		fmt.Printf("%s: rejected: %v\n", path, rej)
		return nil
	}
	if err := st.Put(digest, l); err != nil {
		log.Errorf("cache write: %v", err)
	}
	printLayout(path, expr, l)
	return nil
}

func printLayout(path string, expr shape.Expr, l *shape.Layout) {
	fmt.Printf("%s: %s\n", path, expr)
	printLayoutIndent(l, "  ")
}

func printLayoutIndent(l *shape.Layout, indent string) {
	enc := "boxed"
	if l.Flat {
		enc = "flat"
	}
	tag := fmt.Sprintf("C%d", l.Tag)
	if l.Tag == shape.ArrayTag {
		tag = "array"
	}
	fmt.Printf("%s%s (%s, %d slots, %d holes)\n", indent, tag, enc, len(l.Slots), l.NumHoles())
	for i, s := range l.Slots {
		marks := make([]string, 0, 2)
		marks = append(marks, s.Kind.String())
		if s.Hole {
			marks = append(marks, "hole")
		}
		fmt.Printf("%s  [%d] %s\n", indent, i, strings.Join(marks, " "))
		if s.Child != nil {
			printLayoutIndent(s.Child, indent+"    ")
		}
	}
}
