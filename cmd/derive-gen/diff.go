package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type palette struct {
	header, del, ins func(format string, a ...any) string
}

func newPalette(enabled bool) *palette {
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &palette{
		header: mk(color.Bold),
		del:    mk(color.FgRed),
		ins:    mk(color.FgGreen),
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeDiff writes the changed lines between the file on disk and the
// generated code.
func writeDiff(w io.Writer, pal *palette, path string, from, to []byte) {
	fmt.Fprintln(w, pal.header("--- %s", path))
	fmt.Fprintln(w, pal.header("+++ %s (generated)", path))

	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(string(from), string(to))
	diffs := diffCfg.DiffCharsToLines(diffCfg.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffpatch.DiffDelete:
				fmt.Fprintln(w, pal.del("-%s", line))
			case diffpatch.DiffInsert:
				fmt.Fprintln(w, pal.ins("+%s", line))
			case diffpatch.DiffEqual:
			}
		}
	}
}
