// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"crypto/rand"
	"math/big"

	"github.com/cronokirby/safenum"
)

// fieldElement is a single element of the field GF(p) for some curve's
// modulus p. It wraps safenum.Nat, the constant-time arbitrary-precision
// integer type this engine treats as its big-integer collaborator (see
// spec.md §6 and SPEC_FULL.md's DOMAIN STACK section), reducing every result
// modulo the field's modulus so that a fieldElement is always the unique
// representative in [0, p).
//
// A fieldElement carries a pointer to the modulus it was created against
// rather than to the owning Curve directly so that field elements can be
// constructed and manipulated (including under coordinate blinding) without
// needing a full Curve value on hand.
type fieldElement struct {
	n   safenum.Nat
	mod *safenum.Modulus
}

func newFieldElement(mod *safenum.Modulus) *fieldElement {
	return &fieldElement{mod: mod}
}

// Set copies the value of other into f.
func (f *fieldElement) Set(other *fieldElement) *fieldElement {
	f.mod = other.mod
	f.n.SetNat(&other.n)
	return f
}

// SetUint64 sets f to the reduction of v modulo the field's modulus.
func (f *fieldElement) SetUint64(v uint64) *fieldElement {
	f.n.SetUint64(v)
	f.n.Mod(&f.n, f.mod)
	return f
}

// SetBytes interprets buf as a big-endian integer and reduces it modulo the
// field's modulus.
func (f *fieldElement) SetBytes(buf []byte) *fieldElement {
	f.n.SetBytes(buf)
	f.n.Mod(&f.n, f.mod)
	return f
}

// Bytes returns f as a big-endian byte slice of exactly byteLen bytes,
// left-padded with zeros.
func (f *fieldElement) Bytes(byteLen int) []byte {
	out := make([]byte, byteLen)
	f.n.FillBytes(out)
	return out
}

// Clone returns a fresh fieldElement with the same value and modulus as f.
func (f *fieldElement) Clone() *fieldElement {
	return new(fieldElement).Set(f)
}

// IsZero reports whether f is the additive identity.
func (f *fieldElement) IsZero() bool {
	return f.n.EqZero() == 1
}

// IsOdd reports whether the least-significant bit of f's canonical
// representative is set. This is the y-bit used by SEC1 compressed and
// hybrid point encodings.
func (f *fieldElement) IsOdd() bool {
	buf := f.n.Bytes()
	if len(buf) == 0 {
		return false
	}
	return buf[len(buf)-1]&1 == 1
}

// Equal reports whether f and other represent the same field element. Both
// must be reduced modulo the same modulus.
func (f *fieldElement) Equal(other *fieldElement) bool {
	return f.n.Eq(&other.n) == 1
}

// Add sets f = a + b mod p and returns f.
func (f *fieldElement) Add(a, b *fieldElement) *fieldElement {
	f.mod = a.mod
	f.n.ModAdd(&a.n, &b.n, f.mod)
	return f
}

// Sub sets f = a - b mod p and returns f.
func (f *fieldElement) Sub(a, b *fieldElement) *fieldElement {
	f.mod = a.mod
	f.n.ModSub(&a.n, &b.n, f.mod)
	return f
}

// Mul sets f = a * b mod p and returns f.
func (f *fieldElement) Mul(a, b *fieldElement) *fieldElement {
	f.mod = a.mod
	f.n.ModMul(&a.n, &b.n, f.mod)
	return f
}

// Square sets f = a * a mod p and returns f.
func (f *fieldElement) Square(a *fieldElement) *fieldElement {
	return f.Mul(a, a)
}

// MulInt sets f = a * s mod p for a small positive integer s and returns f.
func (f *fieldElement) MulInt(a *fieldElement, s uint64) *fieldElement {
	var sf fieldElement
	sf.mod = a.mod
	sf.SetUint64(s)
	return f.Mul(a, &sf)
}

// Negate sets f = -a mod p and returns f.
func (f *fieldElement) Negate(a *fieldElement) *fieldElement {
	var zero fieldElement
	zero.mod = a.mod
	return f.Sub(&zero, a)
}

// Inverse sets f = a^-1 mod p using the constant-time modular inverse
// supplied by the big-integer collaborator and returns f. The result is
// zero if a is zero, matching safenum's documented convention.
func (f *fieldElement) Inverse(a *fieldElement) *fieldElement {
	f.mod = a.mod
	f.n.ModInverse(&a.n, f.mod)
	return f
}

// Sqrt sets f to a square root of a modulo p, choosing an arbitrary one of
// the two roots, and reports whether a square root exists. Finding a
// modular square root is not performed in constant time: it is only ever
// called on the public x-coordinate of a point being decoded, never on
// secret material, mirroring cronokirby/safenum's own elliptic.go, which
// reaches for math/big's Tonelli-Shanks implementation (big.Int.ModSqrt)
// for exactly this reason rather than reimplementing it.
func (f *fieldElement) Sqrt(a *fieldElement) bool {
	aBig := new(big.Int).SetBytes(a.n.Bytes())
	pBig := new(big.Int).SetBytes(a.mod.Nat().Bytes())
	root := new(big.Int).ModSqrt(aBig, pBig)
	if root == nil {
		return false
	}
	f.mod = a.mod
	f.n.SetBytes(root.Bytes())
	return true
}

// condAssign overwrites f with other's value when choose == 1, and leaves f
// unchanged when choose == 0, without taking a data-dependent branch. It
// delegates to safenum.Nat's own constant-time conditional assignment,
// which is implemented as an additive mask over limbs rather than a
// conditional jump.
func (f *fieldElement) condAssign(other *fieldElement, choose uint) {
	f.n.CondAssign(choose, &other.n)
}

// randFieldElementBlind returns a field element drawn uniformly from
// [1, p) for use as a Z-coordinate blinding factor (spec.md §4.3). It is
// not used for anything that, by itself, needs to be constant-time: the
// randomness source is the bottleneck, not the rejection sampling loop.
func randFieldElementBlind(mod *safenum.Modulus) (*fieldElement, error) {
	byteLen := (mod.BitLen() + 7) / 8
	buf := make([]byte, byteLen)
	for {
		if _, err := rand.Read(buf); err != nil {
			return nil, newError(ErrRandomNumberGenerationFailed, err.Error())
		}
		var candidate fieldElement
		candidate.mod = mod
		candidate.n.SetBytes(buf)
		if candidate.n.CmpMod(mod) >= 0 || candidate.IsZero() {
			continue
		}
		return &candidate, nil
	}
}
