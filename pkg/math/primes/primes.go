package primes

import (
	"crypto/rand"
	"io"
	"sync"

	"PrimalityEngine/pkg/BigInt"

	gmp "github.com/ncw/gmp"
)

// trialPrimes are the primes used for trial division after 2, 3 and 5 have
// been ruled out. 47 is the cutoff that makes 2809 = 53^2 the smallest
// composite the division pass can miss.
var trialPrimes = [...]uint64{7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// witnessThresholds pairs each limit with a base set proven in the
// literature to decide primality exactly for every odd composite below that
// limit. Limits are strictly ascending; the two widest do not fit in a
// uint64 and are kept as decimal strings like the rest.
var witnessThresholds = [...]struct {
	limit string
	bases []uint64
}{
	{"2047", []uint64{2}},
	{"1373653", []uint64{2, 3}},
	{"9080191", []uint64{31, 73}},
	{"25326001", []uint64{2, 3, 5}},
	{"3215031751", []uint64{2, 3, 5, 7}},
	{"4759123141", []uint64{2, 7, 61}},
	{"1122004669633", []uint64{2, 13, 23, 1662803}},
	{"2152302898747", []uint64{2, 3, 5, 7, 11}},
	{"3474749660383", []uint64{2, 3, 5, 7, 11, 13}},
	{"341550071728321", []uint64{2, 3, 5, 7, 11, 13, 17}},
	{"3825123056546413051", []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23}},
	{"318665857834031151167461", []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}},
	{"3317044064679887385961981", []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}},
}

type thresholdEntry struct {
	limit *gmp.Int
	bases []*BigInt.Nat
}

var (
	initThresholds  sync.Once
	thresholdTable  []thresholdEntry
	smallCutoff     = new(gmp.Int).SetUint64(49)
	mediumCutoff    = new(gmp.Int).SetUint64(2809)
	three           = new(gmp.Int).SetUint64(3)
	five            = new(gmp.Int).SetUint64(5)
)

func computeThresholds() {
	thresholdTable = make([]thresholdEntry, 0, len(witnessThresholds))
	for _, e := range witnessThresholds {
		limit, ok := new(gmp.Int).SetString(e.limit, 10)
		if !ok {
			panic("primes: bad threshold literal " + e.limit)
		}
		bases := make([]*BigInt.Nat, len(e.bases))
		for i, b := range e.bases {
			bases[i] = new(BigInt.Nat).SetUint64(b)
		}
		thresholdTable = append(thresholdTable, thresholdEntry{limit, bases})
	}
}

// IsPrime reports whether n is prime, drawing any randomness the fallback
// test needs from crypto/rand.
//
// The answer is exact for every n below the top of the deterministic witness
// table (about 3.317e24). Above that the oracle falls back to Baillie-PSW:
// a true result is then "no known counterexample", not a proof.
func IsPrime(n *BigInt.Nat) bool {
	return IsPrimeRand(rand.Reader, n)
}

// IsPrimeRand is IsPrime with an injected random source, for deterministic
// replay under a seeded reader.
func IsPrimeRand(rnd io.Reader, n *BigInt.Nat) bool {
	v := n.Data
	if v.Cmp(two) == 0 || v.Cmp(three) == 0 || v.Cmp(five) == 0 {
		return true
	}
	if v.Cmp(two) < 0 || n.Bit(0) == 0 || divisibleByUint(v, 3) || divisibleByUint(v, 5) {
		return false
	}
	if v.Cmp(smallCutoff) < 0 {
		// everything odd, coprime to 3 and 5, below 49 is prime
		return true
	}
	for _, p := range trialPrimes {
		if divisibleByUint(v, p) {
			return false
		}
	}
	if v.Cmp(mediumCutoff) < 0 {
		// no composite below 53^2 survives the division pass
		return true
	}

	initThresholds.Do(computeThresholds)
	for _, e := range thresholdTable {
		if v.Cmp(e.limit) < 0 {
			return IsMillerRabinProbablePrime(n, e.bases)
		}
	}
	return IsBailliePSWProbablePrime(rnd, n)
}

func divisibleByUint(v *gmp.Int, p uint64) bool {
	t := new(gmp.Int).SetUint64(p)
	t.Rem(v, t)
	return t.Sign() == 0
}
