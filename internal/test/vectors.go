// Package test holds shared known-value tables and helpers used by the
// package tests across the repo.
package test

// EsLucasPseudoprimes are composites accepted by the extra-strong Lucas
// test in isolation (they are all caught by the base-2 Miller-Rabin side of
// the combined test).
var EsLucasPseudoprimes = []uint64{989, 3239, 5777, 429479, 635627}

// CarmichaelNumbers are composites that fool the plain Fermat test for every
// coprime base.
var CarmichaelNumbers = []uint64{561, 1105, 1729, 2465, 2821, 6601, 8911}

// StrongPseudoprimesBase2 are odd composites passing Miller-Rabin with the
// single base 2.
var StrongPseudoprimesBase2 = []uint64{2047, 3277, 4033, 4681, 8321, 15841, 29341}

// Sieve returns a lookup table t of size limit with t[i] true iff i is prime.
func Sieve(limit int) []bool {
	t := make([]bool, limit)
	for i := 2; i < limit; i++ {
		t[i] = true
	}
	for p := 2; p*p < limit; p++ {
		if !t[p] {
			continue
		}
		for i := p * p; i < limit; i += p {
			t[i] = false
		}
	}
	return t
}
