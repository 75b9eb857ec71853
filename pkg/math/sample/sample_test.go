package sample

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PrimalityEngine/pkg/BigInt"
)

func TestUniformInRangeStaysInRange(t *testing.T) {
	lo := new(BigInt.Nat).SetUint64(100)
	hi := new(BigInt.Nat).SetUint64(200)
	for i := 0; i < 500; i++ {
		x := UniformInRange(rand.Reader, lo, hi)
		assert.True(t, x.Cmp(lo) >= 0, "sampled %v below lower bound", x)
		assert.True(t, x.Cmp(hi) <= 0, "sampled %v above upper bound", x)
	}
}

func TestUniformInRangeSingleton(t *testing.T) {
	lo := new(BigInt.Nat).SetUint64(42)
	for i := 0; i < 10; i++ {
		x := UniformInRange(rand.Reader, lo, lo)
		require.Equal(t, 1, x.Eq(lo))
	}
}

func TestUniformInRangeHitsEndpoints(t *testing.T) {
	lo := new(BigInt.Nat).SetUint64(0)
	hi := new(BigInt.Nat).SetUint64(3)
	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		seen[UniformInRange(rand.Reader, lo, hi).Uint64()] = true
	}
	for v := uint64(0); v <= 3; v++ {
		assert.True(t, seen[v], "value %d never sampled", v)
	}
}

func TestUniformInRangeEmptyPanics(t *testing.T) {
	lo := new(BigInt.Nat).SetUint64(10)
	hi := new(BigInt.Nat).SetUint64(9)
	assert.Panics(t, func() {
		UniformInRange(rand.Reader, lo, hi)
	})
}

func TestSeededReaderDeterministic(t *testing.T) {
	a := NewSeededReader([]byte("seed"))
	b := NewSeededReader([]byte("seed"))
	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	mustReadBits(a, bufA)
	mustReadBits(b, bufB)
	require.Equal(t, bufA, bufB)

	c := NewSeededReader([]byte("other seed"))
	bufC := make([]byte, 64)
	mustReadBits(c, bufC)
	assert.NotEqual(t, bufA, bufC)
}
