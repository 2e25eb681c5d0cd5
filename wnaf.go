// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import "math/big"

// wnafWindowBits picks the wNAF window width as a function of a scalar's
// bit length, matching the thresholds in the original OpenSSL-derived
// ec_window_bits (original_source/ec_mult.c) and spec.md §4.5 step 1.
func wnafWindowBits(bitLen int) uint {
	switch {
	case bitLen >= 2000:
		return 6
	case bitLen >= 800:
		return 5
	case bitLen >= 300:
		return 4
	case bitLen >= 70:
		return 3
	case bitLen >= 20:
		return 2
	default:
		return 1
	}
}

// computeWNAF returns the wNAF digit sequence for a non-negative scalar s
// using window width w, least-significant digit first. Digits are in
// {0, ±1, ±3, …, ±(2^w−1)}; at most one of any w+1 consecutive digits is
// nonzero. This follows ec_compute_wNAF in original_source/ec_mult.c.
func computeWNAF(s *big.Int, w uint) []int32 {
	digits := make([]int32, 0, s.BitLen()+2)
	c := new(big.Int).Set(s)
	window := int64(1) << (w + 1)
	halfWindow := window / 2

	for c.Sign() > 0 {
		var digit int32
		if c.Bit(0) == 1 {
			mod := new(big.Int).And(c, big.NewInt(window-1))
			d := mod.Int64()
			if d >= halfWindow {
				d -= window
			}
			digit = int32(d)
			c.Sub(c, big.NewInt(d))
		}
		digits = append(digits, digit)
		c.Rsh(c, 1)
	}
	return digits
}

// buildOddMultiples constructs T[0..L-1] = {B, 3B, 5B, ..., (2L-1)B} for
// L = 2^(w-1), per spec.md §4.5 step 3.
func buildOddMultiples(base *Point, w uint) []*Point {
	l := 1 << (w - 1)
	table := make([]*Point, l)
	table[0] = base.Clone()
	if l == 1 {
		return table
	}
	doubled := newPoint(base.curve)
	doubled.Double(base)
	for i := 1; i < l; i++ {
		next := newPoint(base.curve)
		_ = next.Add(table[i-1], doubled) // table[i-1] and doubled share base.curve by construction
		table[i] = next
	}
	return table
}

// MulDoubleNonCT computes r = m·G + n·P using interleaved wNAF, where G is
// the curve's generator. Either scalar may be nil to omit its term
// entirely. This is spec.md §4.5's mul_double_nonct; it is variable-time
// and must only be used where the scalars are public, such as ECDSA
// verification.
func (c *Curve) MulDoubleNonCT(r *Point, m, n *big.Int, p *Point) error {
	type term struct {
		scalar *big.Int
		base   *Point
		w      uint
		table  []*Point
		digits []int32
	}

	var terms []*term
	if m != nil && m.Sign() != 0 {
		if c.G == nil {
			return newError(ErrUndefinedGenerator, "curve has no generator set")
		}
		mAbs := new(big.Int).Abs(m)
		t := &term{scalar: m, base: c.G, w: wnafWindowBits(mAbs.BitLen())}
		t.table = buildOddMultiples(c.G, t.w)
		t.digits = computeWNAF(mAbs, t.w)
		if m.Sign() < 0 {
			negateWNAF(t.digits)
		}
		terms = append(terms, t)
	}
	if n != nil && n.Sign() != 0 {
		if p == nil {
			return newError(ErrPointAtInfinity, "scalar n given without a point P")
		}
		nAbs := new(big.Int).Abs(n)
		t := &term{scalar: n, base: p, w: wnafWindowBits(nAbs.BitLen())}
		t.table = buildOddMultiples(p, t.w)
		t.digits = computeWNAF(nAbs, t.w)
		if n.Sign() < 0 {
			negateWNAF(t.digits)
		}
		terms = append(terms, t)
	}

	r.curve = c
	r.SetToInfinity()
	if len(terms) == 0 {
		return nil
	}

	// Batched affine normalization of the union of both odd-multiples
	// tables (spec.md §4.5 step 4): collect every table's points into one
	// slice so PointsMakeAffine performs exactly one field inversion.
	var allPoints []*Point
	for _, t := range terms {
		allPoints = append(allPoints, t.table...)
	}
	PointsMakeAffine(allPoints)

	maxLen := 0
	for _, t := range terms {
		if len(t.digits) > maxLen {
			maxLen = len(t.digits)
		}
	}

	// rIsInverted tracks whether r currently holds the negation of the
	// logical accumulator, so that sign flips across terms can be absorbed
	// lazily instead of negating r on every change (spec.md §4.5 step 5).
	rIsInverted := false

	for k := maxLen - 1; k >= 0; k-- {
		r.Double(r)
		for _, t := range terms {
			if k >= len(t.digits) {
				continue
			}
			d := t.digits[k]
			if d == 0 {
				continue
			}
			idx := d
			neg := false
			if idx < 0 {
				idx = -idx
				neg = true
			}
			addend := t.table[(idx-1)/2]
			wantInverted := neg
			if wantInverted != rIsInverted {
				r.Invert()
				rIsInverted = !rIsInverted
			}
			if err := r.Add(r, addend); err != nil {
				return err
			}
		}
	}
	if rIsInverted {
		r.Invert()
	}
	return nil
}

// negateWNAF negates every digit in a wNAF digit sequence in place, used
// when the original scalar was negative.
func negateWNAF(digits []int32) {
	for i := range digits {
		digits[i] = -digits[i]
	}
}
