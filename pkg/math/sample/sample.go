package sample

import (
	"fmt"
	"io"

	"PrimalityEngine/pkg/BigInt"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// UniformInRange draws a uniformly random integer in [lo, hi] from rand,
// by rejection sampling over the width of the range. lo must not exceed hi.
func UniformInRange(rand io.Reader, lo, hi *BigInt.Nat) *BigInt.Nat {
	if lo.Cmp(hi) == 1 {
		panic("sample: UniformInRange with empty range")
	}
	width := new(BigInt.Nat).Sub(hi, lo, -1)
	width.Add(width, new(BigInt.Nat).SetUint64(1), -1)

	bits := width.BitLen()
	buf := make([]byte, (bits+7)/8)
	excess := uint(len(buf)*8 - bits)
	out := new(BigInt.Nat)
	for {
		mustReadBits(rand, buf)
		buf[0] &= byte(0xFF >> excess)
		out.SetBytes(buf)
		if out.CmpMod(width) == -1 {
			return out.Add(out, lo, -1)
		}
	}
}
