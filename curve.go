// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"math/big"

	"github.com/cronokirby/safenum"
)

// encodingForm selects the default SEC1 octet-string form a Curve prefers
// when a caller does not request one explicitly.
type encodingForm byte

const (
	// FormCompressed requests SEC1 compressed encoding (lead byte 0x02/0x03).
	FormCompressed encodingForm = iota
	// FormUncompressed requests SEC1 uncompressed encoding (lead byte 0x04).
	FormUncompressed
	// FormHybrid requests SEC1 hybrid encoding (lead byte 0x06/0x07).
	FormHybrid
)

// Curve is a short-Weierstrass elliptic curve y² = x³ + ax + b over a prime
// field GF(p), together with a distinguished generator G of prime order n
// and cofactor h. It is the group object spec.md §4.4 describes.
//
// Public parameters (p, a, b, n, h) are kept as *big.Int alongside the
// safenum.Modulus/field-element representations used internally for
// arithmetic: curve construction and comparison are not timing-sensitive
// (the parameters are public), so the same split the teacher's own
// CurveParams makes between big.Int-held public parameters and fieldVal-held
// internal fast-path values is preserved here, just against safenum instead
// of the teacher's bespoke fixed-width field type.
type Curve struct {
	P *big.Int
	A *big.Int
	B *big.Int

	fieldMod *safenum.Modulus
	aField   *fieldElement
	bField   *fieldElement

	G *Point

	N        *big.Int
	orderMod *safenum.Modulus
	H        *big.Int

	NID  int
	Seed []byte
	Form encodingForm
}

// NewCurve constructs a Curve from its field and equation parameters. It
// validates p ≥ 3 odd, 0 ≤ a, b < p, and that the discriminant
// 4a³ + 27b² mod p is nonzero. The returned curve has no generator set; call
// SetGenerator before using any operation that needs G or n.
func NewCurve(p, a, b *big.Int) (*Curve, error) {
	if p.Sign() <= 0 || p.Cmp(big.NewInt(3)) < 0 || p.Bit(0) == 0 {
		return nil, newError(ErrInvalidField, "field modulus must be an odd prime >= 3")
	}
	if a.Sign() < 0 || a.Cmp(p) >= 0 {
		return nil, newError(ErrInvalidField, "coefficient a out of range [0, p)")
	}
	if b.Sign() < 0 || b.Cmp(p) >= 0 {
		return nil, newError(ErrInvalidField, "coefficient b out of range [0, p)")
	}

	mod := modulusFromBig(p)

	c := &Curve{
		P:        new(big.Int).Set(p),
		A:        new(big.Int).Set(a),
		B:        new(big.Int).Set(b),
		fieldMod: mod,
		aField:   newFieldElement(mod).SetBytes(a.Bytes()),
		bField:   newFieldElement(mod).SetBytes(b.Bytes()),
		Form:     FormUncompressed,
	}

	if err := c.checkDiscriminant(); err != nil {
		return nil, err
	}
	return c, nil
}

// checkDiscriminant verifies 4a³ + 27b² ≢ 0 (mod p).
func (c *Curve) checkDiscriminant() error {
	p := c.P
	a3 := new(big.Int).Exp(c.A, big.NewInt(3), p)
	term1 := new(big.Int).Mul(big.NewInt(4), a3)
	b2 := new(big.Int).Mul(c.B, c.B)
	term2 := new(big.Int).Mul(big.NewInt(27), b2)
	disc := new(big.Int).Add(term1, term2)
	disc.Mod(disc, p)
	if disc.Sign() == 0 {
		return newError(ErrDiscriminantIsZero, "4a^3 + 27b^2 is zero mod p")
	}
	return nil
}

// modulusFromBig converts a public, big.Int-held modulus into the
// safenum.Modulus representation used for the constant-time arithmetic
// inside field elements and scalars.
func modulusFromBig(x *big.Int) *safenum.Modulus {
	var nat safenum.Nat
	nat.SetBytes(x.Bytes())
	return safenum.ModulusFromNat(nat)
}

// bitLenBig returns the bit length of a non-negative big.Int, matching the
// "bit-length(x)" notation used throughout spec.md.
func bitLenBig(x *big.Int) int {
	return x.BitLen()
}

// SetGenerator installs the generator G and subgroup order n on the curve,
// inferring or validating the cofactor h per spec.md §4.4.
//
//   - hOpt == nil or zero: the cofactor is inferred. If
//     bit-length(n) <= (bit-length(p)+1)/2 + 3, h is left 0 ("unknown").
//     Otherwise h = floor((p + 1 + n/2) / n), rejected if its bit length
//     exceeds bit-length(p)+1 (the Hasse bound).
//   - hOpt provided and nonzero: accepted if positive, rejected if negative.
func (c *Curve) SetGenerator(gx, gy *big.Int, n *big.Int, hOpt *big.Int) error {
	if gx == nil || gy == nil {
		return newError(ErrUndefinedGenerator, "generator coordinates must be non-nil")
	}
	if n.Cmp(big.NewInt(1)) <= 0 {
		return newError(ErrInvalidGroupOrder, "order must be > 1")
	}
	if bitLenBig(n) > bitLenBig(c.P)+1 {
		return newError(ErrInvalidGroupOrder, "bit-length(n) exceeds bit-length(p)+1")
	}

	g := newPoint(c)
	gField := newFieldElement(c.fieldMod).SetBytes(gx.Bytes())
	gyField := newFieldElement(c.fieldMod).SetBytes(gy.Bytes())
	if err := g.SetAffine(c, gField, gyField); err != nil {
		return err
	}

	c.G = g
	c.N = new(big.Int).Set(n)
	c.orderMod = modulusFromBig(n)

	switch {
	case hOpt != nil && hOpt.Sign() != 0:
		if hOpt.Sign() < 0 {
			return newError(ErrUnknownCofactor, "supplied cofactor is negative")
		}
		c.H = new(big.Int).Set(hOpt)
	case bitLenBig(n) <= (bitLenBig(c.P)+1)/2+3:
		c.H = big.NewInt(0)
	default:
		// h = floor((p + 1 + n/2) / n)
		half := new(big.Int).Rsh(n, 1)
		num := new(big.Int).Add(c.P, big.NewInt(1))
		num.Add(num, half)
		h := new(big.Int).Div(num, n)
		if bitLenBig(h) > bitLenBig(c.P)+1 {
			return newError(ErrInvalidGroupOrder, "inferred cofactor exceeds the Hasse bound")
		}
		c.H = h
	}
	return nil
}

// Check verifies the curve's structural invariants: discriminant nonzero, G
// on the curve, and n·G = O.
func (c *Curve) Check() error {
	if err := c.checkDiscriminant(); err != nil {
		return err
	}
	if c.G == nil || c.N == nil {
		return newError(ErrUndefinedGenerator, "curve has no generator set")
	}
	if !c.G.IsOnCurve() {
		return newError(ErrPointIsNotOnCurve, "generator is not on the curve")
	}
	var r Point
	r.X, r.Y, r.Z = newFieldElement(c.fieldMod), newFieldElement(c.fieldMod), newFieldElement(c.fieldMod)
	r.curve = c
	if err := c.MulDoubleNonCT(&r, c.N, nil, nil); err != nil {
		return err
	}
	if !r.IsAtInfinity() {
		return newError(ErrInvalidGroupOrder, "n*G is not the identity")
	}
	return nil
}

// Cmp compares two curves parameter-wise: field modulus, then (if both have
// a nonzero NID) NID, then (p, a, b), then generators by point comparison,
// then (n, h). Returns 0 if equal, 1 if distinct, or an error.
func (c *Curve) Cmp(other *Curve) (int, error) {
	if c.P.Cmp(other.P) != 0 {
		return 1, nil
	}
	if c.NID != 0 && other.NID != 0 {
		if c.NID != other.NID {
			return 1, nil
		}
	}
	if c.A.Cmp(other.A) != 0 || c.B.Cmp(other.B) != 0 {
		return 1, nil
	}
	if (c.G == nil) != (other.G == nil) {
		return 1, nil
	}
	if c.G != nil {
		eq, err := c.G.Cmp(other.G)
		if err != nil {
			return -1, err
		}
		if eq != 0 {
			return 1, nil
		}
	}
	if c.N == nil || other.N == nil {
		if c.N != other.N {
			return 1, nil
		}
	} else if c.N.Cmp(other.N) != 0 {
		return 1, nil
	}
	if c.H == nil || other.H == nil {
		if c.H != other.H {
			return 1, nil
		}
	} else if c.H.Cmp(other.H) != 0 {
		return 1, nil
	}
	return 0, nil
}

// Equal is a boolean convenience wrapper around Cmp.
func (c *Curve) Equal(other *Curve) bool {
	eq, err := c.Cmp(other)
	return err == nil && eq == 0
}

// Dup returns a deep, independent copy of c. There is exactly one copy path
// (field parameters, generator point, and order/cofactor are all copied
// here in a single pass), resolving spec.md §9's "idempotent EC_GROUP_copy"
// open question: calling Dup again on the result, or comparing a Dup'd
// curve against its source with Equal, never re-triggers a second
// field-level copy because there is only ever one.
func (c *Curve) Dup() *Curve {
	nc := &Curve{
		P:        new(big.Int).Set(c.P),
		A:        new(big.Int).Set(c.A),
		B:        new(big.Int).Set(c.B),
		fieldMod: c.fieldMod,
		aField:   c.aField.Clone(),
		bField:   c.bField.Clone(),
		NID:      c.NID,
		Form:     c.Form,
	}
	if c.Seed != nil {
		nc.Seed = append([]byte(nil), c.Seed...)
	}
	if c.G != nil {
		nc.G = c.G.Clone()
		nc.G.curve = nc
	}
	if c.N != nil {
		nc.N = new(big.Int).Set(c.N)
		nc.orderMod = c.orderMod
	}
	if c.H != nil {
		nc.H = new(big.Int).Set(c.H)
	}
	return nc
}

// byteLen returns the minimal number of bytes needed to hold the field
// modulus, i.e. ⌈log2(p)/8⌉ rounded up to a whole byte, used throughout
// SEC1 encoding/decoding length checks.
func (c *Curve) byteLen() int {
	return (bitLenBig(c.P) + 7) / 8
}

// orderByteLen is the analogous byte length for the subgroup order n.
func (c *Curve) orderByteLen() int {
	return (bitLenBig(c.N) + 7) / 8
}
