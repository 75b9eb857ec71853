package arith

import (
	"PrimalityEngine/pkg/BigInt"

	gmp "github.com/ncw/gmp"
)

// ModPow computes x^y mod z under the floored-modulo convention: the result
// has the sign of z (or is zero), so callers passing a negative modulus get a
// value in (z, 0].
//
// y must be non-negative and z non-zero; both violations are programmer
// errors and panic. The special cases below are checked before the general
// algorithm, in this order:
//
//	z == 1 -> 0
//	y == 0 -> 1
//	x == 0 -> 0
//	x == 1 -> 1, folded into (z, 0] when z < 0
//
// The general case is binary square-and-multiply over |z|.
func ModPow(x, y, z *BigInt.Nat) *BigInt.Nat {
	if y.GetSign() < 0 {
		panic("arith: ModPow with negative exponent")
	}
	if z.EqZero() == 1 {
		panic("arith: ModPow with zero modulus")
	}

	one := new(gmp.Int).SetUint64(1)
	res := new(BigInt.Nat).SetUint64(0)
	if z.Data.Cmp(one) == 0 {
		return res
	}
	if y.GetSign() == 0 {
		return res.SetUint64(1)
	}
	if x.GetSign() == 0 {
		return res
	}
	if x.Data.Cmp(one) == 0 {
		// 1^y is 1, but the result still has to land in (z, 0] when the
		// modulus is negative, same as the fold at the end of the general case.
		res.SetUint64(1)
		if z.GetSign() < 0 {
			res.Data.Add(res.Data, z.Data)
		}
		return res
	}

	m := new(gmp.Int).Abs(z.Data)
	base := new(gmp.Int).Rem(x.Data, m)
	if base.Sign() < 0 {
		base.Add(base, m)
	}

	acc := new(gmp.Int).SetUint64(1)
	e := new(gmp.Int).Set(y.Data)
	two := new(gmp.Int).SetUint64(2)
	bit := new(gmp.Int)
	for e.Sign() > 0 {
		if bit.Rem(e, two).Sign() != 0 {
			acc.Mul(acc, base)
			acc.Rem(acc, m)
		}
		base.Mul(base, base)
		base.Rem(base, m)
		e.Rsh(e, 1)
	}

	// acc is in [0, |z|); fold non-zero results into (z, 0] when z < 0.
	if z.GetSign() < 0 && acc.Sign() != 0 {
		acc.Sub(acc, m)
	}
	res.Data.Set(acc)
	return res
}
