// Package primegen generates tests for compile-time primality checking of
// typenum integers.
//
// The primality of every integer in [0, Bound] is computed with a sieve of
// Eratosthenes, and for each of them an assertion is emitted that the
// IsPrime type operator agrees. Output is deterministic: the same options
// always produce the same bytes.
package primegen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkch/primegen/internal/render"
	"github.com/mkch/primegen/internal/sieve"
)

// Dialect selects the shape of the generated test source.
type Dialect = render.Dialect

const (
	// Module is a standalone test module, one test function per group.
	Module = render.Module
	// BuildScript is for inclusion from a build script's output directory.
	BuildScript = render.BuildScript
)

// Errors returned by [Generate] for options that can't be rendered.
var (
	ErrNegativeBound      = sieve.ErrNegativeBound
	ErrBoundExceedsConsts = render.ErrBoundExceedsConsts
	ErrUnknownDialect     = render.ErrUnknownDialect
)

// Options controls generation.
type Options struct {
	// Bound is the inclusive upper bound of the tested integers.
	Bound   int
	Dialect Dialect
	// License is emitted as line comments at the top of the output.
	License []string
	// Verify cross-checks the sieve with Miller-Rabin before writing.
	Verify bool
}

func (opts *Options) renderOptions() render.Options {
	return render.Options{Dialect: opts.Dialect, License: opts.License}
}

// Generate writes the test source selected by opts to w.
// Nothing is written if opts is invalid or verification fails.
func Generate(w io.Writer, opts Options) (err error) {
	ro := opts.renderOptions()
	if err = render.Check(opts.Bound, ro); err != nil {
		return
	}
	table, err := sieve.New(opts.Bound)
	if err != nil {
		return
	}
	if opts.Verify {
		if err = sieve.Verify(table); err != nil {
			return
		}
	}
	return render.Emit(w, table, ro)
}

// GenerateString is like [Generate] but returns the source as a string.
func GenerateString(opts Options) (s string, err error) {
	var b strings.Builder
	if err = Generate(&b, opts); err != nil {
		return
	}
	return b.String(), nil
}

func writeFile(filename string, callback func(f *os.File) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return
	}
	defer func() {
		errClose := f.Close()
		if err == nil {
			err = errClose
		}
		if err == nil {
			err = os.Rename(f.Name(), filename)
		}
		if err != nil {
			os.Remove(f.Name())
		}
	}()
	if err = f.Chmod(0644); err != nil {
		return
	}
	return callback(f)
}

// GenerateFile is like [Generate] but writes to a file.
// The file is replaced only if generation succeeds, so a failed run never
// leaves partial output behind.
func GenerateFile(filename string, opts Options) (err error) {
	err = writeFile(filename, func(f *os.File) error {
		return Generate(f, opts)
	})
	if err != nil {
		err = fmt.Errorf("generate %s: %w", filename, err)
	}
	return
}
