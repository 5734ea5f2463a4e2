// Package render turns a primality table into test source for the
// typenum-based IsPrime type operator.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/mkch/primegen/internal/sieve"
)

// MaxConstant is the largest integer typenum names in its consts module
// (U0 through U1024). Generated code can't reference anything above it.
const MaxConstant = 1024

// ErrBoundExceedsConsts is returned when a table reaches past [MaxConstant].
var ErrBoundExceedsConsts = errors.New("bound exceeds typenum constants")

// Group is a set of assertions sharing the same expected primality.
type Group struct {
	Name string
	Want bool
}

var (
	Prime     = Group{"prime", true}
	Composite = Group{"composite", false}
)

// Groups are emitted in this order.
var Groups = []Group{Prime, Composite}

// Options controls the emitted module.
type Options struct {
	Dialect Dialect
	// License lines, emitted as line comments ahead of everything else.
	License []string
}

// Assertions returns one assertion line per index of t whose primality
// equals g.Want, in ascending order.
func Assertions(t *sieve.Table, g Group, d Dialect) iter.Seq[string] {
	return func(yield func(string) bool) {
		for n := range t.Indices(g.Want) {
			if !yield(d.assertion(n, g.Want)) {
				return
			}
		}
	}
}

// Lines returns the complete module, line by line, without line terminators.
func Lines(t *sieve.Table, opts Options) iter.Seq[string] {
	d := opts.Dialect
	return func(yield func(string) bool) {
		for _, line := range licenseLines(opts.License) {
			if !yield(line) {
				return
			}
		}
		for _, line := range d.header() {
			if !yield(line) {
				return
			}
		}
		for i, g := range Groups {
			for _, line := range d.open(g, i) {
				if !yield(line) {
					return
				}
			}
			for line := range Assertions(t, g, d) {
				if !yield(line) {
					return
				}
			}
			for _, line := range d.close(i, len(Groups)) {
				if !yield(line) {
					return
				}
			}
		}
	}
}

func licenseLines(license []string) (lines []string) {
	if len(license) == 0 {
		return
	}
	for _, l := range license {
		if l == "" {
			lines = append(lines, "//")
		} else {
			lines = append(lines, "// "+l)
		}
	}
	return append(lines, "")
}

// Check reports whether a table of the given bound can be rendered with opts.
func Check(bound int, opts Options) error {
	if !opts.Dialect.valid() {
		return fmt.Errorf("%w %q", ErrUnknownDialect, opts.Dialect)
	}
	if bound > MaxConstant {
		return fmt.Errorf("%w: %v > %v", ErrBoundExceedsConsts, bound, MaxConstant)
	}
	return nil
}

// Emit writes the module rendered from t to w.
func Emit(w io.Writer, t *sieve.Table, opts Options) (err error) {
	if err = Check(t.Bound(), opts); err != nil {
		return
	}
	buffered := bufio.NewWriter(w)
	defer func() {
		errFlush := buffered.Flush()
		if err == nil {
			err = errFlush
		}
	}()
	for line := range Lines(t, opts) {
		if _, err = buffered.WriteString(line); err != nil {
			return
		}
		if err = buffered.WriteByte('\n'); err != nil {
			return
		}
	}
	return
}
