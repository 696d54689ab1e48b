package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/signadot/derive/codegen"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommand("derive-gen").
		WithSynopsis("derive-gen [opts]").
		WithDescription("Generate Hash, Equal, Compare, String and serialization methods for structs carrying a //derive: directive.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	OutputFile string `cli:"name=o desc='name of the generated file in each package (default: <package>_derive.go)'"`
	Dir        string `cli:"name=dir desc='directory to scan for Go files (default: current directory)'"`
	Recursive  bool   `cli:"name=recursive desc='scan subdirectories recursively'"`
	Types      bool   `cli:"name=types desc='type-check packages to classify field types precisely'"`
	Check      bool   `cli:"name=check desc='report out of date generated files without writing them'"`
	Color      bool   `cli:"name=color desc='colorize -check diffs (default: when stdout is a terminal)'"`
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	if cfg.OutputFile != "" && filepath.Base(cfg.OutputFile) != cfg.OutputFile {
		return fmt.Errorf("%w: -o names a file within each package, not a path", cli.ErrUsage)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := codegen.Generate(ctx, &codegen.Config{
		Dir:        dir,
		Recursive:  cfg.Recursive,
		OutputFile: cfg.OutputFile,
		UseTypes:   cfg.Types,
	})
	if err != nil {
		return err
	}

	pal := newPalette(cfg.Color || isTerminal(os.Stdout))
	stale := 0
	for _, res := range results {
		cur, err := current(res)
		if err != nil {
			return err
		}
		if string(cur) == string(res.Code) {
			theLog.Debug("up to date", "package", res.Package.Name)
			continue
		}
		if cfg.Check {
			stale++
			writeDiff(cc.Out, pal, res.OutputFile, cur, res.Code)
			continue
		}
		if err := apply(res); err != nil {
			return err
		}
	}
	if stale > 0 {
		return fmt.Errorf("%d generated file(s) out of date", stale)
	}
	return nil
}
