package primes

import (
	"testing"

	"PrimalityEngine/internal/test"
	"PrimalityEngine/pkg/BigInt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrimeAgainstSieve(t *testing.T) {
	// exact agreement with trial division well past the 2809 cutoff,
	// covering the first deterministic witness entries too
	sieve := test.Sieve(100000)
	n := new(BigInt.Nat)
	for v := uint64(0); v < 100000; v++ {
		n.SetUint64(v)
		if got := IsPrime(n); got != sieve[v] {
			t.Fatalf("IsPrime(%d) = %v, want %v", v, got, sieve[v])
		}
	}
}

func TestIsPrimeNegative(t *testing.T) {
	assert.False(t, IsPrime(new(BigInt.Nat).SetInt64(-7)))
	assert.False(t, IsPrime(new(BigInt.Nat).SetInt64(-2)))
}

func TestIsPrimeThresholdEdges(t *testing.T) {
	cases := []struct {
		v     string
		prime bool
	}{
		{"2047", false},                // strong pseudoprime to base 2
		{"2809", false},                // 53^2, first composite past trial division
		{"1373653", false},             // first limit of the {2,3} entry
		{"4759123141", false},          // 48781 * 97561
		{"3215031751", false},          // fools {2,3,5,7}
		{"3825123056546413051", false}, // fools {2,3,5,7,11,13,17,19,23}
		{"2305843009213693951", true},  // 2^61 - 1
		{"618970019642690137449562111", true}, // 2^89 - 1, above the uint64 entries
	}
	for _, tc := range cases {
		n, err := new(BigInt.Nat).SetString(tc.v, 10)
		require.NoError(t, err)
		assert.Equal(t, tc.prime, IsPrime(n), "IsPrime(%s)", tc.v)
	}
}

func TestIsPrimeBeyondTable(t *testing.T) {
	// 2^521 - 1 lies far above the deterministic table and exercises the
	// Baillie-PSW fallback
	m521 := new(BigInt.Nat).SetUint64(1)
	m521.Lsh(m521, 521)
	m521.Sub(m521, new(BigInt.Nat).SetUint64(1), -1)
	assert.True(t, IsPrime(m521))

	even := m521.Clone()
	even.Add(even, new(BigInt.Nat).SetUint64(1), -1)
	assert.False(t, IsPrime(even))
}

func TestIsPrimeAgreesWithGmp(t *testing.T) {
	// gmp's own Miller-Rabin is an independent oracle
	n := new(BigInt.Nat)
	for v := uint64(100001); v < 110000; v += 2 {
		n.SetUint64(v)
		require.Equal(t, n.ProbablyPrime(20), IsPrime(n), "disagreement at %d", v)
	}
}

func TestIsPrimeDeterministic(t *testing.T) {
	// pure function: repeated calls agree
	n, err := new(BigInt.Nat).SetString("170141183460469231731687303715884105727", 10) // 2^127 - 1
	require.NoError(t, err)
	first := IsPrime(n)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsPrime(n))
	}
	assert.True(t, first)
}

func TestThresholdTableAscending(t *testing.T) {
	initThresholds.Do(computeThresholds)
	for i := 1; i < len(thresholdTable); i++ {
		require.Equal(t, -1, thresholdTable[i-1].limit.Cmp(thresholdTable[i].limit),
			"threshold limits must be strictly increasing")
	}
}
