package render

import (
	"errors"
	"fmt"
)

// Dialect selects the shape of the emitted module.
type Dialect string

const (
	// Module is a standalone test module with one test function per group,
	// asserting with assert_type_eq!.
	Module Dialect = "module"
	// BuildScript is meant to be written by a build script and pulled in
	// with include!. All groups share one test function.
	BuildScript Dialect = "build-script"
)

// ErrUnknownDialect is returned for a [Dialect] other than [Module] and [BuildScript].
var ErrUnknownDialect = errors.New("unknown dialect")

// Dialects lists the supported dialects.
var Dialects = []Dialect{Module, BuildScript}

// ParseDialect converts s to a [Dialect].
func ParseDialect(s string) (d Dialect, err error) {
	d = Dialect(s)
	if !d.valid() {
		err = fmt.Errorf("%w %q", ErrUnknownDialect, s)
	}
	return
}

func (d Dialect) valid() bool {
	return d == Module || d == BuildScript
}

func (d Dialect) String() string {
	return string(d)
}

const generatedWarning = "// DO NOT EDIT THIS FILE DIRECTLY!"

func (d Dialect) header() []string {
	switch d {
	case BuildScript:
		return []string{
			generatedWarning,
			"// This file is generated by primegen at build time.",
			"#[cfg(test)]",
			"mod generated_tests {",
			"    use typenum::Bit;",
			"    use typenum::consts::*;",
			"    use super::IsPrime;",
			"    #[test]",
			"    fn small_primes() {",
		}
	default:
		return []string{
			generatedWarning,
			"// This file is the output of primegen.",
			"use typenum::*;",
			"use super::*;",
			"",
		}
	}
}

// open returns the lines preceding the assertions of g, the i-th group.
func (d Dialect) open(g Group, i int) []string {
	switch d {
	case BuildScript:
		section := "        // " + g.Name + "s"
		if i == 0 {
			return []string{section}
		}
		return []string{"", section}
	default:
		return []string{"", "#[test]", "fn test_" + g.Name + "() {"}
	}
}

// close returns the lines following the assertions of the i-th of n groups.
func (d Dialect) close(i, n int) []string {
	switch d {
	case BuildScript:
		if i == n-1 {
			return []string{"    }", "}"}
		}
		return nil
	default:
		return []string{"}"}
	}
}

func (d Dialect) assertion(n int, want bool) string {
	switch d {
	case BuildScript:
		not := ""
		if !want {
			not = "!"
		}
		return fmt.Sprintf("        assert!(%s<U%d as IsPrime>::Output::to_bool());", not, n)
	default:
		b := "False"
		if want {
			b = "True"
		}
		return fmt.Sprintf("    assert_type_eq!(<U%d as IsPrime>::Output, %s);", n, b)
	}
}
