// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"testing"
)

func TestPointAddCommutesAndMatchesDouble(t *testing.T) {
	curve := P256()
	g := curve.G

	var twoG Point
	twoG.X, twoG.Y, twoG.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	twoG.curve = curve
	twoG.Double(g)

	var gPlusG Point
	gPlusG.X, gPlusG.Y, gPlusG.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	gPlusG.curve = curve
	if err := gPlusG.Add(g, g); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if !twoG.Equal(&gPlusG) {
		t.Fatalf("Double(G) != Add(G,G)")
	}

	var threeG1, threeG2 Point
	threeG1.X, threeG1.Y, threeG1.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	threeG1.curve = curve
	if err := threeG1.Add(&twoG, g); err != nil {
		t.Fatalf("Add: %v", err)
	}

	threeG2.X, threeG2.Y, threeG2.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	threeG2.curve = curve
	if err := threeG2.Add(g, &twoG); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if !threeG1.Equal(&threeG2) {
		t.Fatalf("Add is not commutative: Add(2G,G) != Add(G,2G)")
	}
}

func TestPointAddIdentity(t *testing.T) {
	curve := P256()
	g := curve.G
	inf := newPoint(curve)

	var sum Point
	sum.X, sum.Y, sum.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	sum.curve = curve
	if err := sum.Add(g, inf); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !sum.Equal(g) {
		t.Fatalf("Add(G, O) != G")
	}

	if err := sum.Add(inf, g); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !sum.Equal(g) {
		t.Fatalf("Add(O, G) != G")
	}
}

func TestPointAddNegationIsInfinity(t *testing.T) {
	curve := P256()
	g := curve.G
	var negG Point
	negG.X, negG.Y, negG.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	negG.Negate(g)

	var sum Point
	sum.X, sum.Y, sum.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	sum.curve = curve
	if err := sum.Add(g, &negG); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !sum.IsAtInfinity() {
		t.Fatalf("Add(P, -P) did not produce the identity")
	}
}

func TestPointGeneratorIsOnCurve(t *testing.T) {
	for _, tc := range []struct {
		name  string
		curve func() *Curve
	}{
		{"P224", P224},
		{"P256", P256},
		{"P384", P384},
		{"P521", P521},
		{"Secp256k1", Secp256k1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := tc.curve()
			if !c.G.IsOnCurve() {
				t.Fatalf("generator for %s is reportedly not on its own curve", tc.name)
			}
		})
	}
}

func TestPointsMakeAffineMatchesIndividualMakeAffine(t *testing.T) {
	curve := P256()
	g := curve.G

	pts := make([]*Point, 4)
	acc := newPoint(curve)
	acc.Set(g)
	for i := range pts {
		pts[i] = acc.Clone()
		var next Point
		next.X, next.Y, next.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
		next.curve = curve
		if err := next.Add(acc, g); err != nil {
			t.Fatalf("Add: %v", err)
		}
		acc = &next
	}

	expected := make([]*Point, len(pts))
	for i, p := range pts {
		expected[i] = p.Clone()
		expected[i].MakeAffine()
	}

	PointsMakeAffine(pts)

	one := newFieldElement(curve.fieldMod).SetUint64(1)
	for i := range pts {
		if !pts[i].Equal(expected[i]) {
			t.Fatalf("batch-affine point %d disagrees with individually-normalized point", i)
		}
		if !pts[i].Z.Equal(one) {
			t.Fatalf("batch-affine point %d has Z != 1", i)
		}
	}
}

func TestPointIncompatibleCurvesRejected(t *testing.T) {
	p256 := P256()
	secp := Secp256k1()
	if err := requireSameCurve(p256.G, secp.G); err == nil {
		t.Fatalf("requireSameCurve accepted points from different curves")
	}
}

func TestPointSetCompressedRoundTrip(t *testing.T) {
	curve := P256()
	x, y, err := curve.G.GetAffine()
	if err != nil {
		t.Fatalf("GetAffine: %v", err)
	}
	var p Point
	p.X, p.Y, p.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	if err := p.SetCompressed(curve, x, y.IsOdd()); err != nil {
		t.Fatalf("SetCompressed: %v", err)
	}
	if !p.Equal(curve.G) {
		t.Fatalf("SetCompressed(x, parity(y)) did not recover G")
	}
}

func TestPointJacobianRoundTrip(t *testing.T) {
	curve := P256()
	g := curve.G

	x, y, z := g.GetJacobian()

	var p Point
	p.SetJacobian(curve, x, y, z)
	if !p.Equal(g) {
		t.Fatalf("SetJacobian(GetJacobian(G)) != G")
	}

	var twoG Point
	twoG.X, twoG.Y, twoG.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	twoG.curve = curve
	twoG.Double(g)

	x2, y2, z2 := twoG.GetJacobian()
	var p2 Point
	p2.SetJacobian(curve, x2, y2, z2)
	if !p2.Equal(&twoG) {
		t.Fatalf("SetJacobian(GetJacobian(2G)) != 2G")
	}
	if p2.Equal(g) {
		t.Fatalf("2G round-tripped through Jacobian coordinates unexpectedly equals G")
	}
}
