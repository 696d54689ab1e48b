package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/signadot/derive/codegen"
)

// current returns the generated file res would replace, or nil if there is
// none. A file at the output path not written by derive-gen is an error
// when there is code to write and is otherwise ignored.
func current(res *codegen.Result) ([]byte, error) {
	data, err := os.ReadFile(res.OutputFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, []byte(codegen.Header)) {
		if len(res.Code) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("refusing to overwrite %s: not generated by derive-gen", res.OutputFile)
	}
	return data, nil
}

// apply writes res, or removes a generated file left over from types that
// no longer carry a directive.
func apply(res *codegen.Result) error {
	if len(res.Code) == 0 {
		if err := os.Remove(res.OutputFile); err != nil {
			return fmt.Errorf("failed to remove stale output %q: %w", res.OutputFile, err)
		}
		theLog.Info("removed", "file", res.OutputFile)
		return nil
	}
	if err := os.WriteFile(res.OutputFile, res.Code, 0644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", res.OutputFile, err)
	}
	theLog.Info("wrote", "file", res.OutputFile, "types", len(res.Structs))
	return nil
}
