// Package sieve computes primality tables with the sieve of Eratosthenes.
package sieve

import (
	"errors"
	"fmt"
	"iter"
)

// MaxBound is the largest bound accepted by [New].
// It keeps 2*n well inside int and the table within a few megabytes.
const MaxBound = 1 << 24

var (
	// ErrNegativeBound is returned by [New] for a bound below zero.
	ErrNegativeBound = errors.New("negative bound")
	// ErrBoundTooLarge is returned by [New] for a bound above [MaxBound].
	ErrBoundTooLarge = errors.New("bound too large")
)

// Table is the primality of every integer in [0, Bound].
// A Table is immutable once returned by [New].
type Table struct {
	isPrime []bool
}

// New sieves [0, n] and returns the resulting table.
func New(n int) (t *Table, err error) {
	return sieve(n, nil)
}

// sieve is New with an optional hook called right before index i is
// struck out. Used to observe marking in tests.
func sieve(n int, mark func(i int)) (t *Table, err error) {
	if n < 0 {
		err = fmt.Errorf("%w %v", ErrNegativeBound, n)
		return
	}
	if n > MaxBound {
		err = fmt.Errorf("%w %v, max %v", ErrBoundTooLarge, n, MaxBound)
		return
	}
	isPrime := make([]bool, n+1)
	for i := range isPrime {
		isPrime[i] = true
	}
	isPrime[0] = false
	if n >= 1 {
		isPrime[1] = false
	}
	for i := 2; i <= n; i++ {
		if !isPrime[i] {
			continue
		}
		for m := 2 * i; m <= n; m += i {
			if mark != nil {
				mark(m)
			}
			isPrime[m] = false
		}
	}
	return &Table{isPrime: isPrime}, nil
}

// Bound returns the inclusive upper bound of t.
func (t *Table) Bound() int {
	return len(t.isPrime) - 1
}

// Len returns the number of entries, Bound()+1.
func (t *Table) Len() int {
	return len(t.isPrime)
}

// IsPrime reports whether i is prime.
// Indices outside [0, Bound] report false.
func (t *Table) IsPrime(i int) bool {
	if i < 0 || i >= len(t.isPrime) {
		return false
	}
	return t.isPrime[i]
}

// Count returns the number of entries equal to want.
func (t *Table) Count(want bool) (n int) {
	for _, p := range t.isPrime {
		if p == want {
			n++
		}
	}
	return
}

// Indices returns the indices whose entry equals want, in ascending order.
func (t *Table) Indices(want bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, p := range t.isPrime {
			if p == want && !yield(i) {
				return
			}
		}
	}
}
