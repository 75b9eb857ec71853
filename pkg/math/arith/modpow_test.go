package arith

import (
	"math/rand"
	"testing"

	"PrimalityEngine/pkg/BigInt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nat(x int64) *BigInt.Nat {
	return new(BigInt.Nat).SetInt64(x)
}

func TestModPowSpecialCases(t *testing.T) {
	// modulus 1 always collapses to 0, even with exponent 0
	assert.Equal(t, 0, ModPow(nat(12), nat(0), nat(1)).Cmp(nat(0)))
	assert.Equal(t, 0, ModPow(nat(12), nat(7), nat(1)).Cmp(nat(0)))
	// exponent 0 gives 1 for any other modulus
	assert.Equal(t, 0, ModPow(nat(12), nat(0), nat(35)).Cmp(nat(1)))
	assert.Equal(t, 0, ModPow(nat(0), nat(0), nat(-35)).Cmp(nat(1)))
	// zero and unit bases
	assert.Equal(t, 0, ModPow(nat(0), nat(9), nat(35)).Cmp(nat(0)))
	assert.Equal(t, 0, ModPow(nat(1), nat(9), nat(35)).Cmp(nat(1)))
}

func TestModPowNegativeModulus(t *testing.T) {
	// results with a negative modulus land in (z, 0]
	assert.Equal(t, 0, ModPow(nat(4), nat(13), nat(-497)).Cmp(nat(-52)))
	assert.Equal(t, 0, ModPow(nat(-14), nat(5), nat(-17)).Cmp(nat(-12)))
	assert.Equal(t, 0, ModPow(nat(3), nat(4), nat(-3)).Cmp(nat(0)))

	for i := int64(0); i < 50; i++ {
		got := ModPow(nat(i), nat(13), nat(-97))
		assert.True(t, got.GetSign() <= 0, "result must not be positive")
		assert.Equal(t, -1, got.Abs().Cmp(nat(97)), "|result| must be < 97")
	}
}

func TestModPowUnitBaseNegativeModulus(t *testing.T) {
	// a literal base of 1 folds the same way as any base congruent to 1
	assert.Equal(t, 0, ModPow(nat(1), nat(13), nat(-97)).Cmp(nat(-96)))
	assert.Equal(t, 0, ModPow(nat(98), nat(13), nat(-97)).Cmp(nat(-96)))
	assert.Equal(t, 0, ModPow(nat(1), nat(13), nat(-97)).Cmp(ModPow(nat(98), nat(13), nat(-97))))
	// modulus -1 leaves no non-zero residues at all
	assert.Equal(t, 0, ModPow(nat(1), nat(5), nat(-1)).Cmp(nat(0)))
	// exponent 0 stays 1 regardless of the modulus sign
	assert.Equal(t, 0, ModPow(nat(1), nat(0), nat(-97)).Cmp(nat(1)))
}

func TestModPowMatchesReference(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		x := rnd.Int63n(1 << 30)
		y := rnd.Int63n(1 << 12)
		z := rnd.Int63n(1<<30) + 2

		want := refModPow(x, y, z)
		got := ModPow(nat(x), nat(y), nat(z))
		require.Equal(t, 0, got.Cmp(nat(want)), "ModPow(%d, %d, %d)", x, y, z)
	}
}

// refModPow is an independent small-width implementation used as an oracle.
func refModPow(x, y, z int64) int64 {
	res := int64(1) % z
	base := x % z
	for y > 0 {
		if y&1 == 1 {
			res = res * base % z
		}
		base = base * base % z
		y >>= 1
	}
	return res
}

func TestModPowPanics(t *testing.T) {
	assert.Panics(t, func() { ModPow(nat(2), nat(-1), nat(5)) })
	assert.Panics(t, func() { ModPow(nat(2), nat(3), nat(0)) })
}

func TestSqrtExact(t *testing.T) {
	for i := int64(0); i < 2000; i++ {
		root := Sqrt(nat(i * i))
		require.Equal(t, 0, root.Cmp(nat(i)), "Sqrt(%d^2)", i)
	}
}

func TestSqrtFloor(t *testing.T) {
	cases := []struct{ n, want int64 }{
		{0, 0}, {1, 1}, {2, 1}, {3, 1}, {4, 2}, {8, 2},
		{15, 3}, {16, 4}, {17, 4}, {99, 9}, {100, 10}, {101, 10},
	}
	for _, tc := range cases {
		got := Sqrt(nat(tc.n))
		assert.Equal(t, 0, got.Cmp(nat(tc.want)), "Sqrt(%d)", tc.n)
	}
}

func TestSqrtLarge(t *testing.T) {
	// (2^512 + 3)^2: the root must come back exactly
	r := new(BigInt.Nat).SetUint64(1)
	r.Lsh(r, 512)
	r.Add(r, nat(3), -1)
	sq := new(BigInt.Nat).Mul(r, r, -1)
	assert.Equal(t, 0, Sqrt(sq).Cmp(r))

	// one less than a perfect square floors down
	sq.Sub(sq, nat(1), -1)
	rm1 := new(BigInt.Nat).Sub(r, nat(1), -1)
	assert.Equal(t, 0, Sqrt(sq).Cmp(rm1))
}

func TestSqrtNegativePanics(t *testing.T) {
	assert.Panics(t, func() { Sqrt(nat(-4)) })
}
