package arith

import (
	"PrimalityEngine/pkg/BigInt"

	gmp "github.com/ncw/gmp"
)

// Sqrt returns floor(sqrt(n)) computed with Newton's method.
// n must not be negative.
func Sqrt(n *BigInt.Nat) *BigInt.Nat {
	if n.GetSign() < 0 {
		panic("arith: Sqrt of negative number")
	}
	res := new(BigInt.Nat).SetUint64(0)
	two := new(gmp.Int).SetUint64(2)
	if n.Data.Cmp(two) < 0 {
		res.Data.Set(n.Data)
		return res
	}

	x := new(gmp.Int).Set(n.Data)
	y := new(gmp.Int).Add(x, new(gmp.Int).SetUint64(1))
	y.Quo(y, two)
	tmp := new(gmp.Int)
	for y.Cmp(x) < 0 {
		x.Set(y)
		tmp.Quo(n.Data, x)
		y.Add(x, tmp)
		y.Quo(y, two)
	}
	res.Data.Set(x)
	return res
}
