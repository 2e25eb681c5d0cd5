// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import "math/big"

// Point is a point on an elliptic curve, stored in Jacobian projective
// coordinates (X, Y, Z) representing the affine point (X/Z², Y/Z³). The
// identity element (point at infinity) is represented by Z = 0, in which
// case X and Y are not meaningful.
//
// Unlike the teacher's secp256k1-specific JacobianPoint, the doubling and
// addition formulas here do not assume a = 0; they fold in the aZ⁴ term so
// that the same Point type serves every short-Weierstrass curve the Curve
// object can represent.
type Point struct {
	X, Y, Z *fieldElement
	curve   *Curve
}

// newPoint allocates a Point at infinity bound to curve.
func newPoint(curve *Curve) *Point {
	mod := curve.fieldMod
	return &Point{
		X:     newFieldElement(mod).SetUint64(0),
		Y:     newFieldElement(mod).SetUint64(1),
		Z:     newFieldElement(mod).SetUint64(0),
		curve: curve,
	}
}

// Curve returns the group P is defined over.
func (p *Point) Curve() *Curve { return p.curve }

// IsAtInfinity reports whether p is the identity element.
func (p *Point) IsAtInfinity() bool {
	return p.Z.IsZero()
}

// SetToInfinity sets p to the identity element of its curve.
func (p *Point) SetToInfinity() *Point {
	p.X.SetUint64(0)
	p.Y.SetUint64(1)
	p.Z.SetUint64(0)
	return p
}

// Set copies other into p. Both must belong to the same curve, or p adopts
// other's curve if p was freshly allocated against the same field.
func (p *Point) Set(other *Point) *Point {
	p.curve = other.curve
	p.X.Set(other.X)
	p.Y.Set(other.Y)
	p.Z.Set(other.Z)
	return p
}

// Clone returns a fresh Point with the same coordinates and curve as p.
func (p *Point) Clone() *Point {
	np := newPoint(p.curve)
	return np.Set(p)
}

// requireSameCurve fails with ErrIncompatibleObjects when a and b are not
// points of the same group.
func requireSameCurve(a, b *Point) error {
	if a.curve != b.curve {
		return newError(ErrIncompatibleObjects, "points belong to different curves")
	}
	return nil
}

// IsOnCurve reports whether p satisfies the affine curve equation
// y² = x³ + ax + b, expressed directly in Jacobian form as
// Y² = X³ + a·X·Z⁴ + b·Z⁶. Infinity is always on the curve.
func (p *Point) IsOnCurve() bool {
	if p.IsAtInfinity() {
		return true
	}
	c := p.curve
	// lhs = Y^2
	lhs := newFieldElement(c.fieldMod).Square(p.Y)

	// rhs = X^3 + a*X*Z^4 + b*Z^6
	x3 := newFieldElement(c.fieldMod).Square(p.X)
	x3.Mul(x3, p.X)

	z2 := newFieldElement(c.fieldMod).Square(p.Z)
	z4 := newFieldElement(c.fieldMod).Square(z2)
	z6 := newFieldElement(c.fieldMod).Mul(z4, z2)

	aTerm := newFieldElement(c.fieldMod).Mul(c.aField, p.X)
	aTerm.Mul(aTerm, z4)

	bTerm := newFieldElement(c.fieldMod).Mul(c.bField, z6)

	rhs := newFieldElement(c.fieldMod).Add(x3, aTerm)
	rhs.Add(rhs, bTerm)

	return lhs.Equal(rhs)
}

// Negate sets p = -a, i.e. the reflection of a across the x-axis
// (Y ← -Y mod p). The identity negates to itself.
func (p *Point) Negate(a *Point) *Point {
	p.curve = a.curve
	p.X.Set(a.X)
	p.Z.Set(a.Z)
	p.Y.Negate(a.Y)
	return p
}

// Invert is an alias for Negate matching the spec's "invert(P): P ← −P"
// naming; it mutates p in place.
func (p *Point) Invert() *Point {
	return p.Negate(p)
}

// Double sets p = 2*a using the generic Jacobian doubling formula for
// short-Weierstrass curves with arbitrary a (not assuming a = 0 or a = -3,
// unlike the teacher's secp256k1-only fast paths, since this engine must
// serve curves such as the NIST P-* family whose a = p-3 but is not treated
// specially here, and arbitrary caller-constructed curves whose a is
// neither 0 nor -3). If a is the identity, p becomes the identity.
//
// Formulas (Bernstein–Lange, "dbl-2007-bl", generalized with the aZ⁴ term):
//
//	XX = X1²
//	YY = Y1²
//	YYYY = YY²
//	ZZ = Z1²
//	S = 2*((X1+YY)² - XX - YYYY)
//	M = 3*XX + a*ZZ²
//	T = M² - 2*S
//	X3 = T
//	Y3 = M*(S-T) - 8*YYYY
//	Z3 = (Y1+Z1)² - YY - ZZ
func (p *Point) Double(a *Point) *Point {
	if a.IsAtInfinity() {
		return p.Set(a)
	}
	mod := a.curve.fieldMod

	xx := newFieldElement(mod).Square(a.X)
	yy := newFieldElement(mod).Square(a.Y)
	yyyy := newFieldElement(mod).Square(yy)
	zz := newFieldElement(mod).Square(a.Z)

	xPlusYY := newFieldElement(mod).Add(a.X, yy)
	s := newFieldElement(mod).Square(xPlusYY)
	s.Sub(s, xx)
	s.Sub(s, yyyy)
	s.MulInt(s, 2)

	zz2 := newFieldElement(mod).Square(zz)
	aZZ2 := newFieldElement(mod).Mul(a.curve.aField, zz2)
	m := newFieldElement(mod).MulInt(xx, 3)
	m.Add(m, aZZ2)

	t := newFieldElement(mod).Square(m)
	twoS := newFieldElement(mod).MulInt(s, 2)
	t.Sub(t, twoS)

	y3 := newFieldElement(mod).Sub(s, t)
	y3.Mul(y3, m)
	eightYYYY := newFieldElement(mod).MulInt(yyyy, 8)
	y3.Sub(y3, eightYYYY)

	yPlusZ := newFieldElement(mod).Add(a.Y, a.Z)
	z3 := newFieldElement(mod).Square(yPlusZ)
	z3.Sub(z3, yy)
	z3.Sub(z3, zz)

	p.curve = a.curve
	p.X.Set(t)
	p.Y.Set(y3)
	p.Z.Set(z3)
	return p
}

// Add sets p = a + b in Jacobian coordinates, dispatching to Double when
// a == b, returning the identity when a == -b, and handling either operand
// being the identity directly. a and b must share a curve; if they do not,
// Add returns ErrIncompatibleObjects and leaves p unchanged, matching the
// result-or-error convention every other operation in this package follows
// (mismatched curves are caller-reachable, e.g. two points decoded from
// attacker-supplied SEC1 octets, so this cannot be a panic).
//
// Uses the generic "add-2007-bl" formulas (no assumption on a or on Z1/Z2
// being 1), generalizing the teacher's addZ1AndZ2EqualsOne / addGeneric
// split into a single path; callers on the hot wNAF/constant-time loops
// that know one operand is affine (Z = 1) still benefit because the
// formulas below degenerate correctly when Z2 = 1 without a special case.
func (p *Point) Add(a, b *Point) error {
	if err := requireSameCurve(a, b); err != nil {
		return err
	}
	if a.IsAtInfinity() {
		p.Set(b)
		return nil
	}
	if b.IsAtInfinity() {
		p.Set(a)
		return nil
	}

	mod := a.curve.fieldMod

	z1z1 := newFieldElement(mod).Square(a.Z)
	z2z2 := newFieldElement(mod).Square(b.Z)

	u1 := newFieldElement(mod).Mul(a.X, z2z2)
	u2 := newFieldElement(mod).Mul(b.X, z1z1)

	z1Cubed := newFieldElement(mod).Mul(a.Z, z1z1)
	z2Cubed := newFieldElement(mod).Mul(b.Z, z2z2)

	s1 := newFieldElement(mod).Mul(a.Y, z2Cubed)
	s2 := newFieldElement(mod).Mul(b.Y, z1Cubed)

	if u1.Equal(u2) {
		if !s1.Equal(s2) {
			// A = -B: result is the identity.
			p.curve = a.curve
			p.SetToInfinity()
			return nil
		}
		// A == B: fall through to doubling.
		p.Double(a)
		return nil
	}

	h := newFieldElement(mod).Sub(u2, u1)
	i := newFieldElement(mod).MulInt(h, 2)
	i.Square(i)
	j := newFieldElement(mod).Mul(h, i)

	r := newFieldElement(mod).Sub(s2, s1)
	r.MulInt(r, 2)

	v := newFieldElement(mod).Mul(u1, i)

	x3 := newFieldElement(mod).Square(r)
	x3.Sub(x3, j)
	twoV := newFieldElement(mod).MulInt(v, 2)
	x3.Sub(x3, twoV)

	y3 := newFieldElement(mod).Sub(v, x3)
	y3.Mul(y3, r)
	twoS1J := newFieldElement(mod).MulInt(s1, 2)
	twoS1J.Mul(twoS1J, j)
	y3.Sub(y3, twoS1J)

	zSum := newFieldElement(mod).Add(a.Z, b.Z)
	z3 := newFieldElement(mod).Square(zSum)
	z3.Sub(z3, z1z1)
	z3.Sub(z3, z2z2)
	z3.Mul(z3, h)

	p.curve = a.curve
	p.X.Set(x3)
	p.Y.Set(y3)
	p.Z.Set(z3)
	return nil
}

// MakeAffine normalizes p so that Z = 1 (or leaves it the identity), using
// a single modular inversion.
func (p *Point) MakeAffine() *Point {
	if p.IsAtInfinity() || p.Z.Equal(newFieldElement(p.curve.fieldMod).SetUint64(1)) {
		return p
	}
	mod := p.curve.fieldMod
	zInv := newFieldElement(mod).Inverse(p.Z)
	zInv2 := newFieldElement(mod).Square(zInv)
	zInv3 := newFieldElement(mod).Mul(zInv2, zInv)

	p.X.Mul(p.X, zInv2)
	p.Y.Mul(p.Y, zInv3)
	p.Z.SetUint64(1)
	return p
}

// PointsMakeAffine normalizes every point in pts to Z = 1 using the
// Montgomery batch-inversion trick, performing exactly one field inversion
// regardless of len(pts). Points already at infinity are left untouched.
// This grounds spec.md §4.1's points_make_affine contract and underlies the
// odd-multiples table normalization in the wNAF path (§4.5 step 4).
func PointsMakeAffine(pts []*Point) {
	if len(pts) == 0 {
		return
	}
	var mod = pts[0].curve.fieldMod

	// Collect indices of non-infinity points needing normalization.
	idx := make([]int, 0, len(pts))
	for i, pt := range pts {
		if !pt.IsAtInfinity() {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return
	}
	if len(idx) == 1 {
		pts[idx[0]].MakeAffine()
		return
	}

	// prefix[i] = Z_0 * Z_1 * ... * Z_i
	prefix := make([]*fieldElement, len(idx))
	prefix[0] = pts[idx[0]].Z.Clone()
	for i := 1; i < len(idx); i++ {
		prefix[i] = newFieldElement(mod).Mul(prefix[i-1], pts[idx[i]].Z)
	}

	// Single inversion of the full product.
	inv := newFieldElement(mod).Inverse(prefix[len(prefix)-1])

	// Walk backward, peeling off each Z and recovering its inverse.
	for i := len(idx) - 1; i >= 0; i-- {
		var zInv *fieldElement
		if i == 0 {
			zInv = inv
		} else {
			zInv = newFieldElement(mod).Mul(inv, prefix[i-1])
			inv.Mul(inv, pts[idx[i]].Z)
		}
		pt := pts[idx[i]]
		zInv2 := newFieldElement(mod).Square(zInv)
		zInv3 := newFieldElement(mod).Mul(zInv2, zInv)
		pt.X.Mul(pt.X, zInv2)
		pt.Y.Mul(pt.Y, zInv3)
		pt.Z.SetUint64(1)
	}
}

// GetAffine reads the affine coordinates of p, failing with
// ErrPointAtInfinity if p is the identity.
func (p *Point) GetAffine() (x, y *fieldElement, err error) {
	if p.IsAtInfinity() {
		return nil, nil, newError(ErrPointAtInfinity, "point at infinity has no affine coordinates")
	}
	clone := p.Clone()
	clone.MakeAffine()
	return clone.X, clone.Y, nil
}

// SetAffine sets p to (x, y, 1), rejecting the assignment if the resulting
// point is not on the curve.
func (p *Point) SetAffine(curve *Curve, x, y *fieldElement) error {
	p.curve = curve
	p.X.Set(x)
	p.Y.Set(y)
	p.Z.SetUint64(1)
	if !p.IsOnCurve() {
		return newError(ErrPointIsNotOnCurve, "affine point does not satisfy the curve equation")
	}
	return nil
}

// SetCompressed sets p to the point with affine x-coordinate x whose
// y-coordinate's least-significant bit equals yBit, failing if x³+ax+b is
// not a quadratic residue mod p.
func (p *Point) SetCompressed(curve *Curve, x *fieldElement, yBit bool) error {
	mod := curve.fieldMod
	rhs := newFieldElement(mod).Square(x)
	rhs.Mul(rhs, x)
	aTerm := newFieldElement(mod).Mul(curve.aField, x)
	rhs.Add(rhs, aTerm)
	rhs.Add(rhs, curve.bField)

	y := newFieldElement(mod)
	if !y.Sqrt(rhs) {
		return newError(ErrInvalidEncoding, "x does not correspond to a point on the curve")
	}
	if y.IsOdd() != yBit {
		y.Negate(y)
		if y.IsOdd() != yBit {
			// y = 0 is its own negation and has no odd counterpart.
			return newError(ErrInvalidEncoding, "no y with the requested parity for x")
		}
	}
	return p.SetAffine(curve, x, y)
}

// GetJacobian reads p's raw Jacobian projective coordinates (X, Y, Z) as
// big.Int values, with no normalization to affine form and no on-curve
// check. This is the low-level escape hatch for callers that need to
// inspect or serialize the projective representation directly rather than
// go through GetAffine.
func (p *Point) GetJacobian() (x, y, z *big.Int) {
	n := p.curve.byteLen()
	x = new(big.Int).SetBytes(p.X.Bytes(n))
	y = new(big.Int).SetBytes(p.Y.Bytes(n))
	z = new(big.Int).SetBytes(p.Z.Bytes(n))
	return x, y, z
}

// SetJacobian sets p's raw Jacobian projective coordinates to (x, y, z) on
// curve, with no on-curve check (unlike SetAffine, which does check): the
// triple (x, y, z) is trusted verbatim as already representing a valid
// projective point, for callers that deliberately work in
// projective form (e.g. reconstructing an intermediate value from a
// checkpoint rather than from an encoded affine point).
func (p *Point) SetJacobian(curve *Curve, x, y, z *big.Int) {
	p.curve = curve
	mod := curve.fieldMod
	if p.X == nil {
		p.X = newFieldElement(mod)
	}
	if p.Y == nil {
		p.Y = newFieldElement(mod)
	}
	if p.Z == nil {
		p.Z = newFieldElement(mod)
	}
	p.X.SetBytes(x.Bytes())
	p.Y.SetBytes(y.Bytes())
	p.Z.SetBytes(z.Bytes())
}

// Cmp compares A and B as affine points, returning 0 if they represent the
// same point (both infinity counts as equal), 1 if distinct, or an error if
// they belong to different curves.
func (p *Point) Cmp(other *Point) (int, error) {
	if err := requireSameCurve(p, other); err != nil {
		return -1, err
	}
	if p.IsAtInfinity() && other.IsAtInfinity() {
		return 0, nil
	}
	if p.IsAtInfinity() != other.IsAtInfinity() {
		return 1, nil
	}
	// Cross-multiply to avoid inversions: X1*Z2^2 == X2*Z1^2 and
	// Y1*Z2^3 == Y2*Z1^3.
	mod := p.curve.fieldMod
	z1z1 := newFieldElement(mod).Square(p.Z)
	z2z2 := newFieldElement(mod).Square(other.Z)
	lhsX := newFieldElement(mod).Mul(p.X, z2z2)
	rhsX := newFieldElement(mod).Mul(other.X, z1z1)
	if !lhsX.Equal(rhsX) {
		return 1, nil
	}
	z1Cubed := newFieldElement(mod).Mul(p.Z, z1z1)
	z2Cubed := newFieldElement(mod).Mul(other.Z, z2z2)
	lhsY := newFieldElement(mod).Mul(p.Y, z2Cubed)
	rhsY := newFieldElement(mod).Mul(other.Y, z1Cubed)
	if !lhsY.Equal(rhsY) {
		return 1, nil
	}
	return 0, nil
}

// Equal is a boolean convenience wrapper around Cmp.
func (p *Point) Equal(other *Point) bool {
	c, err := p.Cmp(other)
	return err == nil && c == 0
}
