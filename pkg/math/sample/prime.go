package sample

import (
	"io"
	"math"
	"sync"

	big "github.com/ncw/gmp"

	"PrimalityEngine/internal/params"
	"PrimalityEngine/pkg/BigInt"
	"PrimalityEngine/pkg/math/primes"
	"PrimalityEngine/pkg/pool"
)

// sievePrimes generates an array containing all the odd prime numbers < below
func sievePrimes(below uint32) []uint32 {
	sieve := make([]bool, below)
	// Initially, all numbers starting from 2 are considered prime
	for i := 2; i < len(sieve); i++ {
		sieve[i] = true
	}
	// Now, we remove the multiples of every prime number we encounter
	for p := 2; p*p < len(sieve); p++ {
		if !sieve[p] {
			continue
		}
		// p itself is prime, so we don't want to exclude it, but every multiple
		// of p, starting from 2 * p isn't, so we exclude those
		for i := p << 1; i < len(sieve); i += p {
			sieve[i] = false
		}
	}
	// It is believed that there are approximately N / log N primes below N, so this
	// bounds is a decent estimate of our output size
	nF := float64(below)
	out := make([]uint32, 0, int(nF/math.Log(nF)))
	for p := uint32(3); p < below; p++ {
		if sieve[p] {
			out = append(out, p)
		}
	}

	return out
}

// The number of numbers to check after our initial prime guess
const sieveSize = 1 << 18

// The upper bound on the prime numbers used for sieving
const primeBound = 1 << 20

// We want to avoid calculating our prime numbers multiple times, but we also
// don't want to waste time sieving them before they're needed. Using sync.Once
// lets us initialize this array of primes only once, the first time we need them.
var thePrimes []uint32
var initPrimes sync.Once

// We use a large buffer for sieving, but we would like to reuse these buffers
// to avoid allocating a bunch of them.
var sievePool = sync.Pool{
	New: func() interface{} {
		sieve := make([]bool, sieveSize)
		return &sieve
	},
}

// Prime returns a random prime of exactly bits bits, drawn from rand.
//
// Each candidate is drawn uniformly with its top and bottom bits forced,
// so the result always has the requested length and is odd, and is kept
// only if it passes the primality check. Every value the check accepts
// is reachable, so rejection sampling preserves uniformity over the
// primes of that length.
func Prime(rand io.Reader, bits int) *BigInt.Nat {
	if bits < params.MinPrimeBits {
		panic("sample.Prime: bits must be at least 2")
	}
	// The only 2-bit candidates are 2 and 3, and both are prime, so forcing
	// the candidate odd would exclude 2. Draw between them directly instead.
	if bits == 2 {
		buf := make([]byte, 1)
		mustReadBits(rand, buf)
		return new(BigInt.Nat).SetUint64(2 + uint64(buf[0]&1))
	}

	bytes := make([]byte, (bits+7)/8)
	excess := uint(len(bytes)*8 - bits)
	candidate := new(BigInt.Nat)
	for {
		mustReadBits(rand, bytes)
		// Mask off the bits above the requested length, then force the top
		// bit so the candidate has exactly bits bits, and the bottom bit so
		// it is odd.
		bytes[0] &= byte(0xFF >> excess)
		bytes[0] |= byte(1 << (7 - excess))
		bytes[len(bytes)-1] |= 1
		candidate.SetBytes(bytes)
		if primes.IsPrimeRand(rand, candidate) {
			return candidate
		}
	}
}

// SafePrime returns a random prime p of exactly bits bits such that
// (p - 1) / 2 is also prime.
//
// This is the plain rejection sampler: it draws primes with Prime and
// keeps the first whose half is also prime. For large bit sizes
// SafePrimeSieved is much faster.
func SafePrime(rand io.Reader, bits int) *BigInt.Nat {
	if bits < params.MinSafePrimeBits {
		panic("sample.SafePrime: bits must be at least 3")
	}
	q := new(BigInt.Nat)
	one := new(BigInt.Nat).SetUint64(1)
	for {
		p := Prime(rand, bits)
		// Since p is odd, (p - 1) / 2 is just a shift.
		q.Sub(p, one, -1)
		q.Rsh(q, 1)
		if primes.IsPrimeRand(rand, q) {
			return p
		}
	}
}

// trySafePrime makes a single sieved attempt at finding a safe prime of
// exactly bits bits, returning nil if the sieved window is exhausted.
func trySafePrime(rand io.Reader, bits int) *BigInt.Nat {
	initPrimes.Do(func() {
		thePrimes = sievePrimes(primeBound)
	})

	bytes := make([]byte, (bits+7)/8)
	excess := uint(len(bytes)*8 - bits)

	_, err := io.ReadFull(rand, bytes)
	if err != nil {
		return nil
	}
	// For both p and (p - 1) / 2 to be prime, it must be the case that p = 3 mod 4

	// Clear low bits to ensure that our number is 3 mod 4
	bytes[len(bytes)-1] |= 3
	// Mask off anything above the requested length, and set the top bit so
	// that the candidates have exactly that length.
	bytes[0] &= byte(0xFF >> excess)
	bytes[0] |= byte(1 << (7 - excess))
	base := new(big.Int).SetBytes(bytes)

	// sieve checks the candidacy of base, base+1, base+2, etc.
	sievePtr := sievePool.Get().(*[]bool)
	sieve := *sievePtr
	defer sievePool.Put(sievePtr)
	for i := 0; i < len(sieve); i++ {
		sieve[i] = true
	}
	// Remove candidates that aren't 3 mod 4
	for i := 1; i+2 < len(sieve); i += 4 {
		sieve[i] = false
		sieve[i+1] = false
		sieve[i+2] = false
	}
	// sieve out primes
	remainder := new(big.Int)
	for _, prime := range thePrimes {
		// We want to eliminate all x = 0, 1 mod r, so we figure out where the
		// next multiple is, relative to base, and eliminate from there.
		//
		// If x = 0 mod r, then x can't be prime. If x = 1 mod r, then (x - 1) / 2
		// can't be prime, so x can't be a safe prime.
		remainder.SetUint64(uint64(prime))
		remainder.Mod(base, remainder)
		r := int(remainder.Uint64())
		primeInt := int(prime)
		firstMultiple := primeInt - r
		if r == 0 {
			firstMultiple = 0
		}
		for i := firstMultiple; i+1 < len(sieve); i += primeInt {
			sieve[i] = false
			sieve[i+1] = false
		}
	}
	p := new(BigInt.Nat)
	q := new(BigInt.Nat)
	for delta := 0; delta < len(sieve); delta++ {
		if !sieve[delta] {
			continue
		}

		p.SetUint64(uint64(delta))
		p.Data.Add(p.Data, base)
		if p.BitLen() > bits {
			return nil
		}
		// Since p is odd, this is equivalent to (p - 1) / 2
		q.Rsh(p, 1)
		// p is likely to be prime already, so let's first do the other check,
		// which is more likely to fail.
		if !primes.IsPrimeRand(rand, q) {
			continue
		}
		if !primes.IsPrimeRand(rand, p) {
			continue
		}
		return p
	}

	return nil
}

// SafePrimeSieved returns a random safe prime of exactly bits bits,
// using a wheel sieve to discard most candidates before any expensive
// primality check runs. bits must be large enough for the sieved window
// to make sense; use SafePrime for small sizes.
func SafePrimeSieved(rand io.Reader, bits int) *BigInt.Nat {
	if bits < 32 {
		return SafePrime(rand, bits)
	}
	for {
		if p := trySafePrime(rand, bits); p != nil {
			return p
		}
	}
}

// SafePrimeConcurrent races pl's workers against each other, each making
// independent sieved attempts from rand, and returns the first safe
// prime found.
func SafePrimeConcurrent(rand io.Reader, bits int, pl *pool.Pool) *BigInt.Nat {
	if bits < 32 {
		return SafePrime(rand, bits)
	}
	reader := pool.NewLockedReader(rand)
	results := pl.Search(1, func() interface{} {
		p := trySafePrime(reader, bits)
		// You have to do this, because of how Go handles nil.
		if p == nil {
			return nil
		}
		return p
	})
	return results[0].(*BigInt.Nat)
}
