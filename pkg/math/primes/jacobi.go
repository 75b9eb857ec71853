package primes

import (
	"PrimalityEngine/pkg/BigInt"

	gmp "github.com/ncw/gmp"
)

// JacobiSymbol computes the Jacobi symbol (k/n) via quadratic reciprocity,
// returning -1, 0 or 1. n must be positive and odd; anything else is a
// programmer error and panics.
//
// A result of 0 means gcd(k, n) != 1.
func JacobiSymbol(k, n *BigInt.Nat) int {
	if n.GetSign() != 1 {
		panic("primes: JacobiSymbol with non-positive modulus")
	}
	if n.Bit(0) == 0 {
		panic("primes: JacobiSymbol with even modulus")
	}

	// Reduce k into [0, n); n > 0 so the floored result is non-negative.
	kk := new(gmp.Int).Rem(k.Data, n.Data)
	if kk.Sign() < 0 {
		kk.Add(kk, n.Data)
	}
	nn := new(gmp.Int).Set(n.Data)

	one := new(gmp.Int).SetUint64(1)
	if kk.Sign() == 0 {
		if nn.Cmp(one) == 0 {
			return 1
		}
		return 0
	}
	if nn.Cmp(one) == 0 || kk.Cmp(one) == 0 {
		return 1
	}

	sign := 1
	small := new(gmp.Int)
	for kk.Sign() != 0 {
		// Strip factors of two from k; each one flips the sign when
		// n = ±3 (mod 8).
		for isEven(kk) {
			kk.Rsh(kk, 1)
			switch small.Rem(nn, eight).Uint64() {
			case 3, 5:
				sign = -sign
			}
		}
		// Reciprocity: swap, flipping when both are 3 (mod 4).
		kk, nn = nn, kk
		if small.Rem(kk, four).Uint64() == 3 && small.Rem(nn, four).Uint64() == 3 {
			sign = -sign
		}
		kk.Rem(kk, nn)
	}
	if nn.Cmp(one) == 0 {
		return sign
	}
	return 0
}

var (
	four  = new(gmp.Int).SetUint64(4)
	eight = new(gmp.Int).SetUint64(8)
)

func isEven(x *gmp.Int) bool {
	b := x.Bytes()
	if len(b) == 0 {
		return true
	}
	return b[len(b)-1]&1 == 0
}
