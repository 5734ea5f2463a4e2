package sieve

import (
	"fmt"
	"math/big"
)

// IsPrimeMillerRabin reports whether n is prime using math/big.
func IsPrimeMillerRabin(n int) bool {
	if n < 2 {
		return false // ProbablyPrime panics on negative numbers.
	}
	// https://en.wikipedia.org/wiki/Miller%E2%80%93Rabin_primality_test
	// if n < 2^64 = 18,446,744,073,709,551,616, it is enough to test a = 2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, and 37.
	return big.NewInt(int64(n)).ProbablyPrime(12)
}

// IsPrimeTrialDivision reports whether n >= 2 and no d in [2, sqrt(n)]
// divides n.
func IsPrimeTrialDivision(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d <= n/d; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// MismatchError is returned by [Verify] when a table entry disagrees
// with the reference primality test.
type MismatchError struct {
	Index int
	Got   bool
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("primality of %v is %v in table, want %v", e.Index, e.Got, !e.Got)
}

// Verify checks every entry of t against [IsPrimeMillerRabin].
func Verify(t *Table) (err error) {
	for i, p := range t.isPrime {
		if p != IsPrimeMillerRabin(i) {
			return &MismatchError{Index: i, Got: p}
		}
	}
	return
}
