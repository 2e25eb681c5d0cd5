// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"math/big"
	"testing"
)

func TestScalarBitsMSBFirstPadsWithLeadingZeros(t *testing.T) {
	m := big.NewInt(5) // 0b101
	bits := scalarBitsMSBFirst(m, 8)
	if len(bits) != 8 {
		t.Fatalf("len(bits) = %d, want 8", len(bits))
	}
	want := []uint{0, 0, 0, 0, 0, 1, 0, 1}
	for i := range want {
		if bits[i] != want[i] {
			t.Fatalf("bits[%d] = %d, want %d (full: %v)", i, bits[i], want[i], bits)
		}
	}
}

func TestMulGeneratorCTMatchesRepeatedAddition(t *testing.T) {
	curve := P256()
	g := curve.G

	for _, k := range []int64{0, 1, 2, 3, 4, 5, 17, 255} {
		var viaCT Point
		viaCT.X, viaCT.Y, viaCT.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
		viaCT.curve = curve
		if err := curve.MulGeneratorCT(&viaCT, big.NewInt(k)); err != nil {
			t.Fatalf("MulGeneratorCT(%d): %v", k, err)
		}

		acc := newPoint(curve)
		acc.SetToInfinity()
		for i := int64(0); i < k; i++ {
			var next Point
			next.X, next.Y, next.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
			next.curve = curve
			if err := next.Add(acc, g); err != nil {
				t.Fatalf("Add: %v", err)
			}
			acc = &next
		}

		if !viaCT.Equal(acc) {
			t.Fatalf("MulGeneratorCT(%d) disagrees with repeated addition", k)
		}
	}
}

func TestMulSingleCTOnArbitraryPoint(t *testing.T) {
	curve := P256()
	var twoG Point
	twoG.X, twoG.Y, twoG.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	twoG.curve = curve
	twoG.Double(curve.G)

	var r Point
	r.X, r.Y, r.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	r.curve = curve
	if err := curve.MulSingleCT(&r, big.NewInt(3), &twoG); err != nil {
		t.Fatalf("MulSingleCT: %v", err)
	}

	var expected Point
	expected.X, expected.Y, expected.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	expected.curve = curve
	if err := curve.MulGeneratorCT(&expected, big.NewInt(6)); err != nil {
		t.Fatalf("MulGeneratorCT: %v", err)
	}

	if !r.Equal(&expected) {
		t.Fatalf("MulSingleCT(3, 2G) != MulGeneratorCT(6)")
	}
}

func TestCondCopyPointSelectsByChooseBit(t *testing.T) {
	curve := P256()
	dst := newPoint(curve)
	dst.SetToInfinity()

	src := curve.G.Clone()

	condCopyPoint(dst, src, 0)
	if !dst.IsAtInfinity() {
		t.Fatalf("condCopyPoint with choose=0 modified dst")
	}

	condCopyPoint(dst, src, 1)
	if !dst.Equal(src) {
		t.Fatalf("condCopyPoint with choose=1 did not copy src into dst")
	}
}
