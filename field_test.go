// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"math/big"
	"testing"
)

func testModulus() *fieldElement {
	p := big.NewInt(0).SetBytes(P256().P.Bytes())
	return newFieldElement(modulusFromBig(p))
}

func TestFieldArithmeticConsistency(t *testing.T) {
	mod := modulusFromBig(P256().P)

	a := newFieldElement(mod).SetUint64(123456789)
	b := newFieldElement(mod).SetUint64(987654321)

	sum := newFieldElement(mod).Add(a, b)
	diff := newFieldElement(mod).Sub(sum, b)
	if !diff.Equal(a) {
		t.Fatalf("(a+b)-b != a")
	}

	prod := newFieldElement(mod).Mul(a, b)
	inv := newFieldElement(mod).Inverse(b)
	recovered := newFieldElement(mod).Mul(prod, inv)
	if !recovered.Equal(a) {
		t.Fatalf("(a*b)*b^-1 != a")
	}

	sq := newFieldElement(mod).Square(a)
	manual := newFieldElement(mod).Mul(a, a)
	if !sq.Equal(manual) {
		t.Fatalf("Square(a) != a*a")
	}
}

func TestFieldSqrtRoundTrip(t *testing.T) {
	mod := modulusFromBig(P256().P)
	x := newFieldElement(mod).SetUint64(4)
	root := newFieldElement(mod)
	if !root.Sqrt(x) {
		t.Fatalf("Sqrt(4) reported no root")
	}
	sq := newFieldElement(mod).Square(root)
	if !sq.Equal(x) {
		t.Fatalf("Sqrt(4)^2 != 4")
	}
}

func TestFieldIsOddMatchesLSB(t *testing.T) {
	mod := modulusFromBig(P256().P)
	even := newFieldElement(mod).SetUint64(10)
	odd := newFieldElement(mod).SetUint64(11)
	if even.IsOdd() {
		t.Fatalf("10 reported odd")
	}
	if !odd.IsOdd() {
		t.Fatalf("11 reported even")
	}
}

func TestFieldBytesRoundTrip(t *testing.T) {
	mod := modulusFromBig(P256().P)
	v := newFieldElement(mod).SetUint64(0xdeadbeef)
	encoded := v.Bytes(32)
	if len(encoded) != 32 {
		t.Fatalf("Bytes(32) returned %d bytes", len(encoded))
	}
	decoded := newFieldElement(mod).SetBytes(encoded)
	if !decoded.Equal(v) {
		t.Fatalf("round trip through Bytes/SetBytes changed the value")
	}
}
