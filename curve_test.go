// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"math/big"
	"testing"
)

func TestCurveRejectsZeroDiscriminant(t *testing.T) {
	// y^2 = x^3, a singular curve (4*0^3 + 27*0^2 = 0).
	p := big.NewInt(23)
	a := big.NewInt(0)
	b := big.NewInt(0)
	if _, err := NewCurve(p, a, b); err == nil {
		t.Fatalf("NewCurve accepted a curve with a zero discriminant")
	}
}

func TestCurveRejectsEvenModulus(t *testing.T) {
	p := big.NewInt(24)
	a := big.NewInt(1)
	b := big.NewInt(1)
	if _, err := NewCurve(p, a, b); err == nil {
		t.Fatalf("NewCurve accepted an even field modulus")
	}
}

func TestCurveBuiltinsPassCheck(t *testing.T) {
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
			if err := tc.curve().Check(); err != nil {
				t.Fatalf("Check: %v", err)
			}
		})
	}
}

func TestCurveBuiltinSingletonsShareIdentity(t *testing.T) {
	a := P256()
	b := P256()
	if a != b {
		t.Fatalf("P256() returned distinct pointers across calls; points derived from each would be spuriously incompatible")
	}

	// A point obtained from one call must combine freely with a point
	// obtained from a separate call to the same builtin accessor.
	var sum Point
	sum.X, sum.Y, sum.Z = newFieldElement(a.fieldMod), newFieldElement(a.fieldMod), newFieldElement(a.fieldMod)
	sum.curve = a
	if err := sum.Add(a.G, b.G); err != nil { // would fail with ErrIncompatibleObjects if pointers differed
		t.Fatalf("Add: %v", err)
	}
}

func TestCurveCofactorInferenceUnknownBelowThreshold(t *testing.T) {
	// A toy curve whose order is small enough relative to p that bit-length(n) <=
	// (bit-length(p)+1)/2 + 3 holds, so the cofactor must come back "unknown" (0).
	p := big.NewInt(631)
	a := big.NewInt(1)
	b := big.NewInt(3)
	curve, err := NewCurve(p, a, b)
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	// bit-length(p) = 10, threshold = (10+1)/2+3 = 8. Pick n with bit-length <= 8.
	gx := big.NewInt(4)
	gy := big.NewInt(273) // 273^2 = 71 = 4^3 + 4 + 3 (mod 631)
	n := big.NewInt(211) // bit-length 8, a small prime near p/3
	if err := curve.SetGenerator(gx, gy, n, nil); err != nil {
		t.Skipf("toy curve generator did not validate: %v", err)
	}
	if curve.H.Sign() != 0 {
		t.Fatalf("expected inferred cofactor 0 (unknown) below the Hasse threshold, got %v", curve.H)
	}
}

func TestCurveExplicitCofactorAccepted(t *testing.T) {
	p256 := P256()
	if p256.H.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("P256 cofactor should be 1, got %v", p256.H)
	}
}

func TestCurveDupIsIndependent(t *testing.T) {
	c := P256()
	d := c.Dup()
	if !c.Equal(d) {
		t.Fatalf("Dup'd curve does not compare equal to its source")
	}
	d.N = big.NewInt(12345)
	if c.N.Cmp(big.NewInt(12345)) == 0 {
		t.Fatalf("mutating the Dup'd curve's N affected the original")
	}
}

func TestCurveCmpDetectsDifferentCurves(t *testing.T) {
	eq, err := P256().Cmp(Secp256k1())
	if err != nil {
		t.Fatalf("Cmp: %v", err)
	}
	if eq == 0 {
		t.Fatalf("P256 and Secp256k1 compared equal")
	}
}
