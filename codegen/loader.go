package codegen

import (
	"fmt"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/signadot/derive/debug"
)

// PackageLoader loads and caches type-checked packages by directory.
type PackageLoader struct {
	cache map[string]*packages.Package
	mu    sync.RWMutex
}

// NewPackageLoader creates a new PackageLoader.
func NewPackageLoader() *PackageLoader {
	return &PackageLoader{
		cache: make(map[string]*packages.Package),
	}
}

// LoadDir loads the package in pkg.Dir. The file named skip, normally a
// previously generated output, is replaced by an empty file so stale
// methods do not affect type checking.
func (l *PackageLoader) LoadDir(pkg *PackageInfo, skip string) (*packages.Package, error) {
	l.mu.RLock()
	if p, ok := l.cache[pkg.Dir]; ok {
		l.mu.RUnlock()
		return p, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	if p, ok := l.cache[pkg.Dir]; ok {
		return p, nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes | packages.NeedTypesSizes,
		Dir:  pkg.Dir,
	}
	if skip != "" {
		cfg.Overlay = map[string][]byte{
			skip: []byte("package " + pkg.Name + "\n"),
		}
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %q: %w", pkg.Dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no package in %q", pkg.Dir)
	}

	p := pkgs[0]
	if p.Types == nil {
		return nil, fmt.Errorf("package %q has no type information", p.PkgPath)
	}
	// Partially checked packages still classify the fields that resolved.
	if len(p.Errors) > 0 && debug.Codegen() {
		debug.Logf("codegen: %s loaded with %d errors, first: %v\n", p.PkgPath, len(p.Errors), p.Errors[0])
	}

	l.cache[pkg.Dir] = p
	return p, nil
}
