package primes

import (
	"sync"

	"PrimalityEngine/pkg/BigInt"
	"PrimalityEngine/pkg/math/arith"

	gmp "github.com/ncw/gmp"
)

// The odd moduli of the residue cascade. Each one divides 2^48-1, so for
// inputs wider than 48 bits a single fold-and-add pass yields every residue
// at once without long division. 256 is handled separately via the low byte.
var squareModuli = [...]uint64{9, 5, 7, 13, 17, 97, 241, 257, 673}

var (
	initSquareResidues sync.Once
	byteSquares        [256]bool
	oddSquares         map[uint64][]bool
)

func computeSquareResidues() {
	for x := uint64(0); x < 256; x++ {
		byteSquares[x*x%256] = true
	}
	oddSquares = make(map[uint64][]bool, len(squareModuli))
	for _, m := range squareModuli {
		table := make([]bool, m)
		for x := uint64(0); x <= m/2; x++ {
			table[x*x%m] = true
		}
		oddSquares[m] = table
	}
}

const foldBits = 48

// fold48 computes n mod 2^48-1 by summing 48-bit chunks of n. n must be
// non-negative.
func fold48(n *gmp.Int) uint64 {
	block := new(gmp.Int).Lsh(new(gmp.Int).SetUint64(1), foldBits)
	acc := new(gmp.Int).Set(n)
	sum := new(gmp.Int)
	chunk := new(gmp.Int)
	for acc.BitLen() > foldBits {
		sum.SetUint64(0)
		for acc.Sign() > 0 {
			acc.QuoRem(acc, block, chunk)
			sum.Add(sum, chunk)
		}
		acc.Set(sum)
	}
	return acc.Uint64() % (uint64(1)<<foldBits - 1)
}

// IsPerfectSquare reports whether n is a perfect square.
// Negative numbers are never squares; 0 and 1 are.
//
// Candidates are first run through a cascade of cheap residue filters: a
// square can only take a small set of residues modulo each of the fixed
// moduli, so one off-table residue rejects immediately. Survivors are
// confirmed by an exact integer square root.
func IsPerfectSquare(n *BigInt.Nat) bool {
	if n.GetSign() < 0 {
		return false
	}
	if n.BitLen() < 2 {
		// 0 and 1
		return true
	}
	initSquareResidues.Do(computeSquareResidues)

	if !byteSquares[n.Byte(0)] {
		return false
	}
	var r uint64
	if n.BitLen() > foldBits {
		r = fold48(n.Data)
	} else {
		r = n.Data.Uint64()
	}
	for _, m := range squareModuli {
		if !oddSquares[m][r%m] {
			return false
		}
	}

	root := arith.Sqrt(n)
	sq := new(BigInt.Nat).Mul(root, root, -1)
	return sq.Eq(n) == 1
}
