// Copyright © 2023 Antalpha
//
// This file is part of Antalpha. The full Antalpha copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.
package BigInt

import (
	"encoding/hex"
	"errors"
	"math/big"

	gmp "github.com/ncw/gmp"
)

// Nat wraps a gmp Int.
// Nat can represent positive/negative numbers and 0.
//
// All modular reductions performed through Nat use the floored convention:
// the sign of the result matches the sign of the modulus (or the result is
// zero), and |result| < |modulus|. This differs from gmp's Euclidean Mod and
// from Go's native % operator, so every reduction must go through Nat.Mod.
type Nat struct {
	Data *gmp.Int
}

// init makes sure the receiver owns a gmp Int before any operation touches it.
func (z *Nat) init() *Nat {
	if z.Data == nil {
		z.Data = new(gmp.Int)
	}
	return z
}

// SetBytes interprets a number in big-endian format, stores it in z, and returns z.
func (z *Nat) SetBytes(buf []byte) *Nat {
	z.init().Data.SetBytes(buf)
	return z
}

// SetUint64 sets z to x, and returns z
func (z *Nat) SetUint64(x uint64) *Nat {
	z.init().Data.SetUint64(x)
	return z
}

// SetInt64 sets z to x, and returns z
func (z *Nat) SetInt64(x int64) *Nat {
	z.init().Data.SetInt64(x)
	return z
}

// SetHex modifies the value of z to hold a big-endian hex string, returning z.
// If the string contains characters other than 0..9, a..f, an error is
// returned and z is unchanged.
func (z *Nat) SetHex(s string) (*Nat, error) {
	tmp, ok := new(gmp.Int).SetString(s, 16)
	if !ok {
		return z, errors.New("BigInt: invalid hex string")
	}
	z.init().Data.Set(tmp)
	return z, nil
}

// SetString modifies z to hold a number written in the given base, returning z.
func (z *Nat) SetString(s string, base int) (*Nat, error) {
	tmp, ok := new(gmp.Int).SetString(s, base)
	if !ok {
		return z, errors.New("BigInt: invalid number string")
	}
	z.init().Data.Set(tmp)
	return z, nil
}

// SetNat copies the value of x into z, and returns z
func (z *Nat) SetNat(x *Nat) *Nat {
	z.init().Data.Set(x.Data)
	return z
}

// SetBig copies the value of a math/big Int into z, and returns z
func (z *Nat) SetBig(x *big.Int) *Nat {
	z.init().Data.SetBytes(x.Bytes())
	if x.Sign() < 0 {
		z.Data.Neg(z.Data)
	}
	return z
}

// Big converts z into a math/big Int
func (z *Nat) Big() *big.Int {
	out := new(big.Int).SetBytes(z.init().Data.Bytes())
	if z.Data.Sign() < 0 {
		out.Neg(out)
	}
	return out
}

// Clone returns a copy of this value.
//
// This copy can safely be mutated without affecting the original.
func (z *Nat) Clone() *Nat {
	return new(Nat).SetNat(z)
}

// Uint64 represents this number as uint64
//
// The behavior of this function is undefined if the value does not fit.
func (z *Nat) Uint64() uint64 {
	return z.Data.Uint64()
}

// Bytes creates a slice containing the magnitude of this Nat, in big endian
func (z *Nat) Bytes() []byte {
	return z.init().Data.Bytes()
}

// Byte accesses the ith byte in this Nat, with 0 being the least significant
// byte. It panics if i is out of range.
func (z *Nat) Byte(i int) byte {
	if i < 0 {
		panic("BigInt: negative byte index")
	}
	b := z.Data.Bytes()
	if i >= len(b) {
		panic("BigInt: byte index out of range")
	}
	return b[len(b)-i-1]
}

// Bit returns the value of the i'th bit of z, that is (z>>i)&1.
func (z *Nat) Bit(i uint) uint {
	shifted := new(gmp.Int).Rsh(z.Data, i)
	b := shifted.Bytes()
	if len(b) == 0 {
		return 0
	}
	return uint(b[len(b)-1]) & 1
}

// BitLen return the length of Nat
func (z *Nat) BitLen() int {
	return z.Data.BitLen()
}

// String represents this Nat as a decimal string
func (z *Nat) String() string {
	return z.Data.String()
}

// Hex represents the magnitude of this Nat as a big-endian hex string holding
// a whole number of bytes.
func (z *Nat) Hex() string {
	if z.Data == nil {
		return ""
	}
	return hex.EncodeToString(z.Data.Bytes())
}

// GetSign returns:
//
//	-1 if z <  0
//	 0 if z == 0
//	+1 if z >  0
func (z *Nat) GetSign() int {
	return z.Data.Sign()
}

// Neg sets z to -z and returns z only when doit == 1
func (z *Nat) Neg(doit int) *Nat {
	if doit == 1 {
		z.Data.Neg(z.Data)
	}
	return z
}

// Abs return a new Nat holding the absolute value of z.
func (z *Nat) Abs() *Nat {
	tmp := new(Nat).SetUint64(0)
	tmp.Data.Abs(z.Data)
	return tmp
}

// Add calculates z <- x + y, modulo 2^cap, and return z
// If cap < 0, no reduction is applied.
func (z *Nat) Add(x *Nat, y *Nat, cap int) *Nat {
	z.init().Data.Add(x.Data, y.Data)
	return z.truncate(cap)
}

// Sub calculates z <- x - y, modulo 2^cap, and return z
// If cap < 0, no reduction is applied.
func (z *Nat) Sub(x *Nat, y *Nat, cap int) *Nat {
	z.init().Data.Sub(x.Data, y.Data)
	return z.truncate(cap)
}

// Mul calculates z <- x * y, modulo 2^cap, and return z
// If cap < 0, no reduction is applied.
func (z *Nat) Mul(x *Nat, y *Nat, cap int) *Nat {
	z.init().Data.Mul(x.Data, y.Data)
	return z.truncate(cap)
}

func (z *Nat) truncate(cap int) *Nat {
	if cap < 0 {
		return z
	}
	modulo := new(gmp.Int).Lsh(new(gmp.Int).SetUint64(1), uint(cap))
	r := new(gmp.Int).Rem(z.Data, modulo)
	if r.Sign() < 0 {
		r.Add(r, modulo)
	}
	z.Data.Set(r)
	return z
}

// Lsh calculates z <- x << shift
func (z *Nat) Lsh(x *Nat, shift uint) *Nat {
	z.init().Data.Lsh(x.Data, shift)
	return z
}

// Rsh calculates z <- x >> shift
func (z *Nat) Rsh(x *Nat, shift uint) *Nat {
	z.init().Data.Rsh(x.Data, shift)
	return z
}

// Mod calculates z <- x mod m with the floored convention and returns z.
//
// The result's sign matches the sign of m (or the result is zero), and
// |z| < |m|. Equivalently z = x - m*floor(x/m). m must be non-zero.
func (z *Nat) Mod(x *Nat, m *Nat) *Nat {
	if m.Data.Sign() == 0 {
		panic("BigInt: division by zero")
	}
	q := new(gmp.Int)
	r := new(gmp.Int)
	q.QuoRem(x.Data, m.Data, r)
	// The truncated remainder has the sign of x; fold it over when it
	// disagrees with the sign of m.
	if r.Sign() != 0 && r.Sign() != m.Data.Sign() {
		r.Add(r, m.Data)
	}
	z.init().Data.Set(r)
	return z
}

// Div calculates z <- floor(x / m) and returns z. m must be non-zero.
func (z *Nat) Div(x *Nat, m *Nat) *Nat {
	if m.Data.Sign() == 0 {
		panic("BigInt: division by zero")
	}
	q := new(gmp.Int)
	r := new(gmp.Int)
	q.QuoRem(x.Data, m.Data, r)
	if r.Sign() != 0 && r.Sign() != m.Data.Sign() {
		q.Sub(q, new(gmp.Int).SetUint64(1))
	}
	z.init().Data.Set(q)
	return z
}

// ModAdd calculates z <- x + y mod m and return z
func (z *Nat) ModAdd(x *Nat, y *Nat, m *Nat) *Nat {
	tmp := new(Nat).Add(x, y, -1)
	return z.Mod(tmp, m)
}

// ModSub calculates z <- x - y mod m and return z
func (z *Nat) ModSub(x *Nat, y *Nat, m *Nat) *Nat {
	tmp := new(Nat).Sub(x, y, -1)
	return z.Mod(tmp, m)
}

// ModMul calculates z <- x * y mod m and return z
func (z *Nat) ModMul(x *Nat, y *Nat, m *Nat) *Nat {
	tmp := new(Nat).Mul(x, y, -1)
	return z.Mod(tmp, m)
}

// ModNeg calculates z <- -x mod m and return z
func (z *Nat) ModNeg(x *Nat, m *Nat) *Nat {
	tmp := x.Clone().Neg(1)
	return z.Mod(tmp, m)
}

// ModInverse calculates z <- x^-1 mod m and return z
//
// This will produce nonsense if x is not invertible mod m.
func (z *Nat) ModInverse(x *Nat, m *Nat) *Nat {
	z.init().Data.ModInverse(x.Data, m.Data)
	return z
}

// Cmp compares two Nats, returning:
//
//	-1 if z <  y
//	 0 if z == y
//	+1 if z >  y
func (z *Nat) Cmp(y *Nat) int {
	return z.Data.Cmp(y.Data)
}

// Cmp3 compares two Nats, returning results for (>, =, <) in that order.
//
// Because these relations are mutually exclusive, exactly one of these values
// will be 1.
func (z *Nat) Cmp3(x *Nat) (int, int, int) {
	gt, eq, lt := 0, 0, 0
	switch z.Data.Cmp(x.Data) {
	case -1:
		lt = 1
	case 0:
		eq = 1
	default:
		gt = 1
	}
	return gt, eq, lt
}

// CmpMod compares this Nat with a modulus, returning:
//
//	-1 if z <  y
//	 0 if z == y
//	+1 if z >  y
func (z *Nat) CmpMod(y *Nat) int {
	return z.Data.Cmp(y.Data)
}

// Eq checks if z = y, returning 1 when equal and 0 otherwise
func (z *Nat) Eq(y *Nat) int {
	if z.Data.Cmp(y.Data) == 0 {
		return 1
	}
	return 0
}

// EqZero compares z to 0, returning 1 when equal and 0 otherwise
func (z *Nat) EqZero() int {
	if z.Data.Sign() == 0 {
		return 1
	}
	return 0
}

// CondAssign sets z <- yes ? x : z.
func (z *Nat) CondAssign(yes int, x *Nat) *Nat {
	if yes == 1 {
		return z.SetNat(x)
	}
	return z
}

// GCD calculates z <- gcd(x, y) and returns z. x and y must be positive.
func (z *Nat) GCD(x *Nat, y *Nat) *Nat {
	z.init().Data.GCD(nil, nil, x.Data, y.Data)
	return z
}

// Coprime returns 1 if gcd(x, y) == 1, and 0 otherwise
func (x *Nat) Coprime(y *Nat) int {
	if x.Data == nil || y.Data == nil {
		return 0
	}
	g := new(Nat).GCD(x.Abs(), y.Abs())
	one := new(Nat).SetUint64(1)
	return g.Eq(one)
}

// IsUnit checks if x is a unit, i.e. invertible, mod m.
// This so happens to be when gcd(x, m) == 1.
func (x *Nat) IsUnit(m *Nat) int {
	return x.Coprime(m)
}

// ProbablyPrime performs n Miller-Rabin tests to check whether z is prime.
// If it returns true, z is prime with probability 1 - 1/4^n.
// If it returns false, z is not prime.
func (z *Nat) ProbablyPrime(n int) bool {
	return z.Data.ProbablyPrime(n)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (z *Nat) MarshalBinary() ([]byte, error) {
	if z.Data == nil {
		return nil, errors.New("BigInt: marshal of uninitialized Nat")
	}
	return z.Data.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (z *Nat) UnmarshalBinary(buf []byte) error {
	if buf == nil {
		return errors.New("BigInt: unmarshal of nil buffer")
	}
	z.SetBytes(buf)
	return nil
}

// NatCode carries a Nat through CBOR, which would otherwise
// lose the sign during transmission.
type NatCode struct {
	Sign uint32
	Data []byte
}

// MarshalNat converts Nat Type to NatCode Type
func (z *Nat) MarshalNat() *NatCode {
	m := new(NatCode)
	if z.GetSign() == -1 {
		m.Sign = 1
	}
	m.Data = z.Bytes()
	return m
}

// UnmarshalNat converts NatCode Type to Nat Type
func (z *Nat) UnmarshalNat(a *NatCode) *Nat {
	z.SetBytes(a.Data)
	if a.Sign == 1 {
		z.Neg(1)
	}
	return z
}
