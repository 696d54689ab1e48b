package codegen

import (
	"context"
	"fmt"
	"go/ast"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/signadot/derive/debug"
)

// Generate discovers the packages under cfg.Dir and generates each of
// them concurrently. Results are in discovery order; nothing is written.
func Generate(ctx context.Context, cfg *Config) ([]*Result, error) {
	pkgs, err := DiscoverPackages(cfg.Dir, cfg.Recursive)
	if err != nil {
		return nil, fmt.Errorf("failed to discover packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in %q", cfg.Dir)
	}

	loader := NewPackageLoader()
	results := make([]*Result, len(pkgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := GeneratePackage(cfg, pkg, loader)
			if err != nil {
				return fmt.Errorf("failed to process package %q: %w", pkg.Path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GeneratePackage generates the derived methods of one package. A nil
// loader is allowed when cfg.UseTypes is unset.
func GeneratePackage(cfg *Config, pkg *PackageInfo, loader *PackageLoader) (*Result, error) {
	output := filepath.Join(pkg.Dir, cfg.OutputName(pkg))
	res := &Result{Package: pkg, OutputFile: output}

	ms := make(methodSet)
	for _, path := range pkg.Files {
		if path == output {
			continue
		}
		file, _, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		if IsGenerated(file) {
			continue
		}
		structs, err := ExtractTypes(file, path)
		if err != nil {
			return nil, fmt.Errorf("failed to extract types from %q: %w", path, err)
		}
		collectMethods(file, ms)
		res.Structs = append(res.Structs, structs...)
	}
	if len(res.Structs) == 0 {
		return res, nil
	}
	if err := resolveMethods(res.Structs, ms); err != nil {
		return nil, err
	}

	if cfg.UseTypes {
		if loader == nil {
			loader = NewPackageLoader()
		}
		p, err := loader.LoadDir(pkg, output)
		if err != nil {
			return nil, err
		}
		if err := ClassifyFields(res.Structs, p.Types); err != nil {
			return nil, fmt.Errorf("failed to classify fields: %w", err)
		}
	}
	if debug.Codegen() {
		for _, s := range res.Structs {
			debug.Logf("codegen: %s.%s ops=%s ptr=%t fields=%d\n", pkg.Name, s.Name, s.Ops, s.Pointer, len(s.Fields))
		}
	}

	code, err := GenerateCode(pkg.Name, res.Structs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}
	res.Code = code
	return res, nil
}

// IsGenerated reports whether file was written by this generator.
func IsGenerated(file *ast.File) bool {
	return len(file.Comments) > 0 && file.Comments[0].Pos() < file.Package &&
		file.Comments[0].List[0].Text == Header
}
