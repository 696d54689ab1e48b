package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, src := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverPackages(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.go":              "package top\n",
		"a_test.go":         "package top\n",
		"sub/b.go":          "package sub\n",
		"sub/deeper/c.go":   "package deeper\n",
		"testdata/d.go":     "package data\n",
		".hidden/e.go":      "package hidden\n",
		"_skip/f.go":        "package skip\n",
		"vendor/x/g.go":     "package x\n",
		"empty/README.md":   "nothing here\n",
	})

	pkgs, err := DiscoverPackages(root, false)
	if err != nil {
		t.Fatalf("DiscoverPackages failed: %v", err)
	}
	if len(pkgs) != 1 || pkgs[0].Name != "top" {
		t.Fatalf("non-recursive discovery = %v", pkgs)
	}
	if diff := cmp.Diff([]string{filepath.Join(root, "a.go")}, pkgs[0].Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}

	pkgs, err = DiscoverPackages(root, true)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range pkgs {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"top", "sub", "deeper"}, names); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
}
