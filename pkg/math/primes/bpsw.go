package primes

import (
	"io"

	"PrimalityEngine/internal/params"
	"PrimalityEngine/pkg/BigInt"

	gmp "github.com/ncw/gmp"
)

// IsBailliePSWProbablePrime combines the Miller-Rabin test with the
// extra-strong Lucas test. Below 2^128 the Miller-Rabin side uses base 2
// only; at and above 2^128 one extra uniformly random base in [3, 2^128-1]
// is drawn from rand, strengthening confidence beyond the range for which
// the plain combination has been checked exhaustively.
//
// No composite passing this combination is known, but above the
// deterministic thresholds a true result is probabilistic, not a proof.
func IsBailliePSWProbablePrime(rand io.Reader, n *BigInt.Nat) bool {
	bases := []*BigInt.Nat{{Data: two}}
	if n.BitLen() > params.BPSWExtraBaseBits {
		bases = append(bases, randomWideBase(rand))
	}
	if !IsMillerRabinProbablePrime(n, bases) {
		return false
	}
	return IsExtraStrongLucasProbablePrime(n)
}

// randomWideBase draws a uniform integer in [3, 2^128-1].
func randomWideBase(rand io.Reader) *BigInt.Nat {
	three := new(gmp.Int).SetUint64(3)
	buf := make([]byte, params.BPSWExtraBaseBits/8)
	b := new(gmp.Int)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			panic("primes: random source failed: " + err.Error())
		}
		b.SetBytes(buf)
		if b.Cmp(three) >= 0 {
			return &BigInt.Nat{Data: b}
		}
	}
}
