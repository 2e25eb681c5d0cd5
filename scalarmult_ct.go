// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import "math/big"

// scalarBitsMSBFirst returns the bits of the canonical big-endian
// representation of m, padded with leading zero bits up to exactly
// bitLen bits, most-significant bit first. Padding with leading zeros
// rather than truncating is what lets the constant-time multipliers run a
// fixed number of iterations regardless of m's true magnitude.
func scalarBitsMSBFirst(m *big.Int, bitLen int) []uint {
	bits := make([]uint, bitLen)
	for i := 0; i < bitLen; i++ {
		// bit (bitLen-1-i) from the top maps to position i
		bitIndex := bitLen - 1 - i
		bits[i] = uint(m.Bit(bitIndex))
	}
	return bits
}

// MulGeneratorCT computes r = m·G with a schedule independent of m's value,
// per spec.md §4.6. The loop always runs bitLen(n)+1 iterations regardless
// of m's true magnitude, and every iteration both doubles and
// unconditionally computes a candidate addition, selecting between "keep
// the doubled value" and "add G" via a constant-time conditional copy
// rather than a branch.
func (c *Curve) MulGeneratorCT(r *Point, m *big.Int) error {
	if c.G == nil {
		return newError(ErrUndefinedGenerator, "curve has no generator set")
	}
	return c.mulSingleCT(r, m, c.G)
}

// MulSingleCT computes r = m·P for an arbitrary point P with the same
// constant-time discipline as MulGeneratorCT.
func (c *Curve) MulSingleCT(r *Point, m *big.Int, p *Point) error {
	if p == nil {
		return newError(ErrPointAtInfinity, "nil base point")
	}
	return c.mulSingleCT(r, m, p)
}

// mulSingleCT implements the shared constant-time double-and-always-add
// ladder used by both exported entry points. The iteration count is fixed
// at bit-length(n)+1, matching the ECDSA driver's requirement (§4.7) that
// the scalar fed to this routine be homogenized to that length so its true
// magnitude never affects the number of loop iterations.
func (c *Curve) mulSingleCT(r *Point, m *big.Int, base *Point) error {
	if c.N == nil {
		return newError(ErrUndefinedOrder, "curve has no order set")
	}
	iterations := bitLenBig(c.N) + 1
	bits := scalarBitsMSBFirst(m, iterations)

	acc := newPoint(c)
	acc.SetToInfinity()

	for _, bit := range bits {
		acc.Double(acc)

		sum := newPoint(c)
		if err := sum.Add(acc, base); err != nil {
			return err
		}

		// Constant-time select: acc <- bit ? sum : acc. Both branches were
		// computed unconditionally above; only the final field-by-field
		// copy depends on bit, and it touches the same memory locations
		// regardless of bit's value.
		condCopyPoint(acc, sum, bit)
	}

	r.curve = c
	r.Set(acc)
	return nil
}

// condCopyPoint overwrites dst with src's coordinates when choose == 1, and
// leaves dst unchanged when choose == 0, without branching on choose. This
// is the "memory-access-agnostic" conditional copy spec.md §9's third open
// question calls out: the selection itself is branch-free via an additive
// mask, but see signSetup in signature.go for the surrounding k/k′/k″
// selection, which is a branch.
func condCopyPoint(dst, src *Point, choose uint) {
	dst.X.condAssign(src.X, choose)
	dst.Y.condAssign(src.Y, choose)
	dst.Z.condAssign(src.Z, choose)
}
