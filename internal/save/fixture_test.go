package save

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"PrimalityEngine/pkg/BigInt"
	"PrimalityEngine/pkg/math/sample"
)

func TestSafePrimeFixtureRoundTrip(t *testing.T) {
	bits := 16
	p := sample.SafePrime(rand.Reader, bits)
	require.NoError(t, SaveSafePrime(p, bits))
	defer func() {
		require.NoError(t, DeleteSafePrime(bits))
	}()

	loadedP, loadedQ, err := LoadSafePrime(bits)
	require.NoError(t, err)
	require.Equal(t, 1, loadedP.Eq(p))

	q := new(BigInt.Nat).Sub(p, new(BigInt.Nat).SetUint64(1), -1)
	q.Rsh(q, 1)
	require.Equal(t, 1, loadedQ.Eq(q))
}

func TestLoadSafePrimeMissing(t *testing.T) {
	_, _, err := LoadSafePrime(12345)
	require.Error(t, err)
}
