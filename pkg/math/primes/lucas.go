package primes

import (
	"PrimalityEngine/pkg/BigInt"

	gmp "github.com/ncw/gmp"
)

// IsExtraStrongLucasProbablePrime runs the extra-strong Lucas probable-prime
// test on n with parameters (P, Q=1, D=P^2-4), P found by the least-P search.
//
// Perfect squares are rejected up front: every odd D is a quadratic residue
// of a square, so the parameter search could never terminate.
func IsExtraStrongLucasProbablePrime(n *BigInt.Nat) bool {
	if n.Data.Cmp(two) == 0 {
		return true
	}
	if n.Data.Cmp(two) < 0 || n.Bit(0) == 0 {
		return false
	}
	if IsPerfectSquare(n) {
		return false
	}

	p, ok := lucasParameter(n)
	if !ok {
		// gcd(D, n) exposed a proper factor of n
		return false
	}
	return extraStrongLucas(n.Data, p)
}

// lucasParameter searches P = 3, 4, 5, ... for the first D = P^2-4 with
// Jacobi symbol (D/n) == -1. A symbol of 0 means gcd(D, n) > 1: a gcd other
// than n itself proves n composite, reported by ok == false.
func lucasParameter(n *BigInt.Nat) (p uint64, ok bool) {
	d := new(gmp.Int)
	g := new(gmp.Int)
	for p = 3; ; p++ {
		d.SetUint64(p*p - 4)
		switch JacobiSymbol(&BigInt.Nat{Data: d}, n) {
		case -1:
			return p, true
		case 0:
			g.GCD(nil, nil, d, n.Data)
			if g.Cmp(one) != 0 && g.Cmp(n.Data) != 0 {
				return 0, false
			}
		}
	}
}

// extraStrongLucas evaluates (U_k, V_k) mod n by a binary ladder over the
// bits of k, where n+1 = k*2^s with k odd, and applies the extra-strong
// acceptance rule. n must be odd, positive and not below 3.
func extraStrongLucas(n *gmp.Int, p uint64) bool {
	pInt := new(gmp.Int).SetUint64(p)
	dInt := new(gmp.Int).SetUint64(p*p - 4)

	// n + 1 = k * 2^s, k odd
	k := new(gmp.Int).Add(n, one)
	s := 0
	for isEven(k) {
		k.Rsh(k, 1)
		s++
	}

	// (U_1, V_1) = (1, P)
	u := new(gmp.Int).SetUint64(1)
	v := new(gmp.Int).Rem(pInt, n)
	t1 := new(gmp.Int)
	t2 := new(gmp.Int)

	kb := k.Bytes()
	for i := k.BitLen() - 2; i >= 0; i-- {
		// index doubling: U <- U*V, V <- V^2 - 2
		t1.Mul(u, v)
		t1.Rem(t1, n)
		v.Mul(v, v)
		v.Sub(v, two)
		modN(v, n)
		u.Set(t1)

		if bitAt(kb, i) == 1 {
			// index + 1: U' = (U*P + V)/2, V' = (V*P + U*D)/2.
			// n is odd, so halving an odd intermediate is a matter of
			// adding n before the shift.
			t1.Mul(u, pInt)
			t1.Add(t1, v)
			halveModN(t1, n)
			t2.Mul(v, pInt)
			t2.Add(t2, new(gmp.Int).Mul(u, dInt))
			halveModN(t2, n)
			u.Set(t1)
			v.Set(t2)
		}
	}

	// U_k == 0 and V_k == +-2 accepts immediately
	if u.Sign() == 0 {
		nm2 := new(gmp.Int).Sub(n, two)
		if v.Cmp(two) == 0 || v.Cmp(nm2) == 0 {
			return true
		}
	}
	// otherwise V_{k*2^r} == 0 for some 0 <= r < s-1 accepts
	for r := 1; r < s; r++ {
		if v.Sign() == 0 {
			return true
		}
		v.Mul(v, v)
		v.Sub(v, two)
		modN(v, n)
	}
	return false
}

// modN reduces x into [0, n) in place; x must be > -n.
func modN(x, n *gmp.Int) {
	x.Rem(x, n)
	if x.Sign() < 0 {
		x.Add(x, n)
	}
}

// halveModN divides x by 2 modulo odd n, in place. x must be non-negative.
func halveModN(x, n *gmp.Int) {
	if !isEven(x) {
		x.Add(x, n)
	}
	x.Rsh(x, 1)
	x.Rem(x, n)
}

// bitAt reads bit i (little-endian order) from big-endian bytes.
func bitAt(b []byte, i int) byte {
	return b[len(b)-1-i/8] >> (uint(i) % 8) & 1
}
