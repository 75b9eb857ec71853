package primes

import (
	"PrimalityEngine/pkg/BigInt"
	"PrimalityEngine/pkg/math/arith"

	gmp "github.com/ncw/gmp"
)

// IsMillerRabinProbablePrime runs the strong-probable-prime test on n for
// every base in bases, short-circuiting on the first witness that proves n
// composite. Bases that reduce to 0 mod n are skipped.
//
// With a deterministic base set (see the threshold table in primes.go) the
// answer is exact below the set's proven limit; with arbitrary bases a true
// result only means "no witness found".
func IsMillerRabinProbablePrime(n *BigInt.Nat, bases []*BigInt.Nat) bool {
	if n.Data.Cmp(two) == 0 {
		return true
	}
	if n.Data.Cmp(two) < 0 || n.Bit(0) == 0 {
		return false
	}

	// n - 1 = d * 2^s with d odd
	nm1 := new(gmp.Int).Sub(n.Data, one)
	d := new(gmp.Int).Set(nm1)
	s := 0
	for isEven(d) {
		d.Rsh(d, 1)
		s++
	}

	dNat := &BigInt.Nat{Data: d}
	nm1Nat := &BigInt.Nat{Data: nm1}
	for _, b := range bases {
		a := new(gmp.Int).Rem(b.Data, n.Data)
		if a.Sign() < 0 {
			a.Add(a, n.Data)
		}
		if a.Sign() == 0 {
			continue
		}
		if !strongProbablePrime(n, nm1Nat, dNat, s, &BigInt.Nat{Data: a}) {
			return false
		}
	}
	return true
}

// strongProbablePrime runs one witness check for base a in [1, n).
func strongProbablePrime(n, nm1, d *BigInt.Nat, s int, a *BigInt.Nat) bool {
	x := arith.ModPow(a, d, n)
	if x.Data.Cmp(one) == 0 || x.Cmp(nm1) == 0 {
		return true
	}
	for i := 0; i < s-1; i++ {
		x.ModMul(x, x, n)
		if x.Cmp(nm1) == 0 {
			return true
		}
		if x.Data.Cmp(one) == 0 {
			return false
		}
	}
	return false
}

var (
	one = new(gmp.Int).SetUint64(1)
	two = new(gmp.Int).SetUint64(2)
)
