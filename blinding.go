// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

// BlindCoordinates re-randomizes p's Jacobian Z coordinate by a fresh
// random nonzero λ, replacing (X, Y, Z) with (λ²X, λ³Y, λZ). This is the
// optional hook spec.md §4.3 describes: it is a pure transformation that
// never changes the affine point p represents (X/Z², Y/Z³ and X'/Z'²,
// Y'/Z'³ are equal by construction), and it is a no-op by default — callers
// decide when to invoke it, typically once before a secret-dependent scalar
// multiplication loop such as MulGeneratorCT or MulSingleCT.
//
// Blinding the identity is a no-op: the identity has no meaningful Z to
// randomize.
func (p *Point) BlindCoordinates() error {
	if p.IsAtInfinity() {
		return nil
	}
	lambda, err := randFieldElementBlind(p.curve.fieldMod)
	if err != nil {
		return err
	}
	lambda2 := newFieldElement(p.curve.fieldMod).Square(lambda)
	lambda3 := newFieldElement(p.curve.fieldMod).Mul(lambda2, lambda)

	p.X.Mul(p.X, lambda2)
	p.Y.Mul(p.Y, lambda3)
	p.Z.Mul(p.Z, lambda)
	return nil
}
