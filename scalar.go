// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"math/big"

	"github.com/cronokirby/safenum"
)

// scalar is an integer modulo a group order n. It is the type used for
// ECDSA private keys, nonces, and the r/s components of a signature.
type scalar struct {
	n   safenum.Nat
	mod *safenum.Modulus
}

func newScalar(mod *safenum.Modulus) *scalar {
	return &scalar{mod: mod}
}

// Set copies the value of other into s.
func (s *scalar) Set(other *scalar) *scalar {
	s.mod = other.mod
	s.n.SetNat(&other.n)
	return s
}

// SetUint64 sets s to the reduction of v modulo the group order.
func (s *scalar) SetUint64(v uint64) *scalar {
	s.n.SetUint64(v)
	s.n.Mod(&s.n, s.mod)
	return s
}

// SetBytesOverflow interprets buf as a big-endian integer, reduces it
// modulo the group order, and reports whether the raw value was already
// less than the order (overflow == false) or had to be reduced
// (overflow == true). This matches the teacher's ModNScalar.SetByteSlice
// overflow-reporting contract. No code in this package calls it: Verify
// range-checks r and s as big.Int values before converting them.
func (s *scalar) SetBytesOverflow(buf []byte) (overflow bool) {
	s.n.SetBytes(buf)
	overflow = s.n.CmpMod(s.mod) >= 0
	s.n.Mod(&s.n, s.mod)
	return overflow
}

// Bytes returns s as a big-endian byte slice of exactly byteLen bytes,
// left-padded with zeros.
func (s *scalar) Bytes(byteLen int) []byte {
	out := make([]byte, byteLen)
	s.n.FillBytes(out)
	return out
}

// IsZero reports whether s is the additive identity modulo the order.
func (s *scalar) IsZero() bool {
	return s.n.EqZero() == 1
}

// Equal reports whether s and other represent the same residue.
func (s *scalar) Equal(other *scalar) bool {
	return s.n.Eq(&other.n) == 1
}

// Add sets s = a + b mod n and returns s.
func (s *scalar) Add(a, b *scalar) *scalar {
	s.mod = a.mod
	s.n.ModAdd(&a.n, &b.n, s.mod)
	return s
}

// Sub sets s = a - b mod n and returns s.
func (s *scalar) Sub(a, b *scalar) *scalar {
	s.mod = a.mod
	s.n.ModSub(&a.n, &b.n, s.mod)
	return s
}

// Mul sets s = a * b mod n and returns s.
func (s *scalar) Mul(a, b *scalar) *scalar {
	s.mod = a.mod
	s.n.ModMul(&a.n, &b.n, s.mod)
	return s
}

// Inverse sets s = a^-1 mod n using the constant-time modular inverse
// supplied by the big-integer collaborator. This is the inversion spec.md
// §4.7 requires to be blinded before use on secret material; blinding
// itself is applied by the caller (see signature.go's computeS), not here.
func (s *scalar) Inverse(a *scalar) *scalar {
	s.mod = a.mod
	s.n.ModInverse(&a.n, s.mod)
	return s
}

// bitLen returns the number of bits in the minimal big-endian representation
// of s, i.e. floor(log2(s))+1, or 0 if s is zero.
func (s *scalar) bitLen() int {
	return bitLen(s.n.Bytes())
}

// bitLen returns the bit length of the big-endian, leading-zero-trimmed
// representation of a non-negative integer.
func bitLen(buf []byte) int {
	i := 0
	for i < len(buf) && buf[i] == 0 {
		i++
	}
	if i == len(buf) {
		return 0
	}
	top := buf[i]
	bits := (len(buf) - i - 1) * 8
	for top != 0 {
		bits++
		top >>= 1
	}
	return bits
}

// scalarFromBig builds a scalar from the big-endian value of x, reducing it
// modulo mod without reporting whether a reduction took place. Where
// overflow matters the caller range-checks x against the order first
// (Verify does so for r and s before calling this helper); other callers
// pass values already known to be in range (e.g. a freshly sampled nonce
// or blinding factor) or values meant to be reduced.
func scalarFromBig(mod *safenum.Modulus, x *big.Int) *scalar {
	s := newScalar(mod)
	s.n.SetBytes(x.Bytes())
	s.n.Mod(&s.n, mod)
	return s
}

// ToBig renders s as a big.Int in [0, order).
func (s *scalar) ToBig() *big.Int {
	byteLen := (s.mod.BitLen() + 7) / 8
	return new(big.Int).SetBytes(s.Bytes(byteLen))
}

// Zero overwrites s's backing storage with zero. This is used to scrub
// secret nonces and blinding factors on every exit path per spec.md §7.
func (s *scalar) Zero() {
	s.n.SetUint64(0)
}
