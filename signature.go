// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"crypto/rand"
	"math/big"
)

// maxSignIterations bounds the outer retry loop in Sign, matching
// ECDSA_MAX_SIGN_ITERATIONS in original_source/ecdsa.c and spec.md §4.7/§7.
const maxSignIterations = 32

// signSetupState names the states of ECDSA signing's inner retry state
// machine (spec.md §4.8): NEED_K before a nonce has produced a nonzero r,
// HAVE_K_AND_R once r is known but s has not yet been computed, and HAVE_S
// once the signature is complete.
type signSetupState int

const (
	stateNeedK signSetupState = iota
	stateHaveKAndR
	stateHaveS
)

// Signature is an ECDSA signature (r, s) with 1 <= r, s < n.
type Signature struct {
	R *big.Int
	S *big.Int
}

// Bytes DER-encodes the signature as SEQUENCE{INTEGER r, INTEGER s}.
func (sig *Signature) Bytes() ([]byte, error) {
	return encodeDERSignature(sig.R, sig.S)
}

// ParseSignature parses a DER-encoded signature without performing the
// byte-exact re-encoding check; use VerifyDER for the full verify(bytes)
// contract that spec.md §4.7 requires.
func ParseSignature(der []byte) (*Signature, error) {
	r, s, err := decodeDERSignature(der)
	if err != nil {
		return nil, err
	}
	return &Signature{R: r, S: s}, nil
}

// signSetupResult carries the outputs of one sign_setup attempt: the
// affine x-coordinate reduced mod n (r) and the nonce's constant-time
// modular inverse (kinv), plus the raw nonce k itself so it can be zeroized
// by the caller once s has been computed.
type signSetupResult struct {
	k    *big.Int
	r    *scalar
	kinv *scalar
}

// signSetup implements spec.md §4.7 step 1: draw a random nonce k uniformly
// in [1, n-1], mask its bit length to homogenize it to bit-length(n)+1 by
// computing both k+n and k+2n and keeping whichever has that exact bit
// length, compute kG via the constant-time generator multiplier, and derive
// r = x(kG) mod n. If r turns out to be zero, the caller must retry.
//
// The k/k′/k″ masking follows ecdsa_sign_setup in
// original_source/ecdsa.c: both candidates are computed unconditionally,
// and the choice between them is a branch on the bit length of k+n. That
// selection is not memory-access-agnostic: which candidate is kept depends
// on k (spec.md §9's third open question).
func signSetup(curve *Curve) (*signSetupResult, error) {
	n := curve.N
	nBitLen := bitLenBig(n)

	one := big.NewInt(1)
	nMinus1 := new(big.Int).Sub(n, one)

	kRaw, err := randBigIntInInterval(one, nMinus1)
	if err != nil {
		return nil, err
	}

	// Compute k' = k+n and k'' = k+2n unconditionally; select whichever has
	// bit-length exactly nBitLen+1. This prevents the constant-time
	// multiplier's fixed-length loop (bit-length(n)+1 iterations) from ever
	// being handed a k shorter than that length, which would otherwise leak
	// k's true bit length through which iterations are no-ops.
	kPrime := new(big.Int).Add(kRaw, n)
	kDoublePrime := new(big.Int).Add(kPrime, n)

	var k *big.Int
	switch {
	case bitLenBig(kPrime) == nBitLen+1:
		k = kPrime
	case bitLenBig(kDoublePrime) == nBitLen+1:
		k = kDoublePrime
	default:
		// Unreachable: n < 2^nBitLen, so whenever k+n is shorter than
		// nBitLen+1 bits, k+2n = (k+n)+n lies in (2^nBitLen, 2^(nBitLen+1)).
		// Sign returns this error to its caller without retrying.
		return nil, newError(ErrInvalidGroupOrder, "neither k+n nor k+2n reached the masked bit length")
	}

	var kG Point
	kG.X, kG.Y, kG.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	if err := curve.MulGeneratorCT(&kG, k); err != nil {
		return nil, err
	}
	if kG.IsAtInfinity() {
		return nil, newError(ErrPointAtInfinity, "kG is the identity")
	}
	x, _, err := kG.GetAffine()
	if err != nil {
		return nil, err
	}
	zeroizeBigInt(k)
	xBig := new(big.Int).SetBytes(x.Bytes(curve.byteLen()))
	r := scalarFromBig(curve.orderMod, xBig)
	if r.IsZero() {
		zeroizeBigInt(kRaw)
		zeroizeBigInt(k)
		return nil, nil // signals "retry, r == 0" to the caller
	}

	kScalar := scalarFromBig(curve.orderMod, kRaw)
	kinv := newScalar(curve.orderMod).Inverse(kScalar)
	kScalar.Zero()

	return &signSetupResult{k: kRaw, r: r, kinv: kinv}, nil
}

// Sign produces an ECDSA signature over digest H using private key x on
// curve, per spec.md §4.7. H is converted to an integer of at most
// bit-length(n) bits by HashToScalar inside Sign. It retries internally up to
// maxSignIterations times on r == 0 or s == 0.
func Sign(curve *Curve, h []byte, x *big.Int) (*Signature, error) {
	if bitLenBig(curve.N) < 80 {
		return nil, newError(ErrInvalidGroupOrder, "order too small for ECDSA (bit-length(n) < 80)")
	}
	e := HashToScalar(curve, h)

	state := stateNeedK
	for i := 0; i < maxSignIterations; i++ {
		switch state {
		case stateNeedK:
			setup, err := signSetup(curve)
			if err != nil {
				return nil, err
			}
			if setup == nil {
				continue // r == 0, draw a fresh internally-generated k
			}
			state = stateHaveKAndR

			s, ok, err := computeS(curve, e, x, setup.r, setup.kinv)
			zeroizeBigInt(setup.k)
			setup.kinv.Zero()
			if err != nil {
				return nil, err
			}
			if !ok {
				// s == 0 with an internally-generated (k, r): retry is
				// allowed, so fall back to NEED_K for the next iteration.
				state = stateNeedK
				continue
			}
			state = stateHaveS
			return &Signature{R: setup.r.ToBig(), S: s.ToBig()}, nil
		}
	}
	return nil, newError(ErrWrongCurveParameters, "exceeded maximum sign iterations")
}

// SignWithSetup signs using a caller-supplied (k, r) pair instead of
// generating them internally (spec.md §9, "caller-supplied (k, r) for
// signing"). If the resulting s is zero, this fails with
// ErrNeedNewSetupValues rather than silently regenerating (k, r), since the
// caller asked for these specific values.
func SignWithSetup(curve *Curve, h []byte, x *big.Int, k, r *big.Int) (*Signature, error) {
	e := HashToScalar(curve, h)
	kScalar := scalarFromBig(curve.orderMod, k)
	kinv := newScalar(curve.orderMod).Inverse(kScalar)
	kScalar.Zero()
	defer kinv.Zero()

	rScalar := scalarFromBig(curve.orderMod, r)
	s, ok, err := computeS(curve, e, x, rScalar, kinv)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newError(ErrNeedNewSetupValues, "caller-supplied (k, r) produced s == 0")
	}
	return &Signature{R: r, S: s.ToBig()}, nil
}

// computeS implements spec.md §4.7 step 2: draw a fresh blinding factor
// b in [1, n-1], compute binv, and fold it into
// s = binv * ((b*e + b*x*r) * kinv) mod n. Multiplying numerator and
// denominator of (e + xr)/k by b decorrelates the timing of the modular
// inverse from the secret key x: without blinding, kinv's inversion
// timing would be a function of k alone, but the multiplication by xr
// afterward would otherwise be the only secret-dependent step timing
// analysis could target.
func computeS(curve *Curve, e *scalar, x *big.Int, r, kinv *scalar) (s *scalar, ok bool, err error) {
	n := curve.N

	one := big.NewInt(1)
	nMinus1 := new(big.Int).Sub(n, one)
	bBig, err := randBigIntInInterval(one, nMinus1)
	if err != nil {
		return nil, false, err
	}
	defer zeroizeBigInt(bBig)

	b := scalarFromBig(curve.orderMod, bBig)
	defer b.Zero()
	binv := newScalar(curve.orderMod).Inverse(b)
	defer binv.Zero()

	xScalar := scalarFromBig(curve.orderMod, x)

	be := newScalar(curve.orderMod).Mul(b, e)
	bx := newScalar(curve.orderMod).Mul(b, xScalar)
	bxr := newScalar(curve.orderMod).Mul(bx, r)

	sum := newScalar(curve.orderMod).Add(be, bxr)
	sum.Mul(sum, kinv)
	sum.Mul(sum, binv)

	if sum.IsZero() {
		return nil, false, nil
	}
	return sum, true, nil
}

// Verify checks an ECDSA signature over digest H against public key Q on
// curve, per spec.md §4.7's Verify steps.
func Verify(curve *Curve, h []byte, sig *Signature, q *Point) (bool, error) {
	n := curve.N
	one := big.NewInt(1)
	if sig.R.Cmp(one) < 0 || sig.R.Cmp(n) >= 0 {
		return false, nil
	}
	if sig.S.Cmp(one) < 0 || sig.S.Cmp(n) >= 0 {
		return false, nil
	}

	e := HashToScalar(curve, h)

	sScalar := scalarFromBig(curve.orderMod, sig.S)
	sinv := newScalar(curve.orderMod).Inverse(sScalar)

	rScalar := scalarFromBig(curve.orderMod, sig.R)

	uScalar := newScalar(curve.orderMod).Mul(e, sinv)
	vScalar := newScalar(curve.orderMod).Mul(rScalar, sinv)
	u := uScalar.ToBig()
	v := vScalar.ToBig()

	var r Point
	r.X, r.Y, r.Z = newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod), newFieldElement(curve.fieldMod)
	if err := curve.MulDoubleNonCT(&r, u, v, q); err != nil {
		return false, err
	}
	if r.IsAtInfinity() {
		return false, nil
	}

	x, _, err := r.GetAffine()
	if err != nil {
		return false, err
	}
	xBig := new(big.Int).SetBytes(x.Bytes(curve.byteLen()))
	xScalar := scalarFromBig(curve.orderMod, xBig)

	return xScalar.Equal(rScalar), nil
}

// VerifyDER decodes sig per spec.md §4.7's byte-exact re-encoding
// requirement, rejecting any signature whose canonical re-encoding does not
// match the input byte-for-byte, then verifies it.
func VerifyDER(curve *Curve, h []byte, sig []byte, q *Point) (bool, error) {
	r, s, err := verifyDERRoundTrip(sig)
	if err != nil {
		return false, nil
	}
	return Verify(curve, h, &Signature{R: r, S: s}, q)
}

// HashToScalar converts digest H to an integer e per spec.md §4.7's common
// step: bin2bn(H) right-shifted by max(0, 8*len(H) - bit-length(n)) so that
// e has at most bit-length(n) bits, then reduces it modulo the order.
func HashToScalar(curve *Curve, h []byte) *scalar {
	e := new(big.Int).SetBytes(h)
	excess := 8*len(h) - bitLenBig(curve.N)
	if excess > 0 {
		e.Rsh(e, uint(excess))
	}
	return scalarFromBig(curve.orderMod, e)
}

// randBigIntInInterval draws a uniform random big.Int in [lo, hi] by
// rejection sampling, matching bn_rand_interval's approach in
// original_source/ecdsa.c: read bit-length(hi) bits and reject any draw
// outside the target range rather than using modular reduction, which
// would bias the distribution.
func randBigIntInInterval(lo, hi *big.Int) (*big.Int, error) {
	hiBits := bitLenBig(hi)
	byteLen := (hiBits + 7) / 8
	buf := make([]byte, byteLen)
	for {
		if _, err := rand.Read(buf); err != nil {
			return nil, newError(ErrRandomNumberGenerationFailed, err.Error())
		}
		buf[0] &= byte(0xff >> uint(8*byteLen-hiBits))
		candidate := new(big.Int).SetBytes(buf)
		if candidate.Cmp(lo) >= 0 && candidate.Cmp(hi) <= 0 {
			return candidate, nil
		}
	}
}

// zeroizeBigInt sets x to zero; the words of x's previous backing array are
// not overwritten. big.Int does not expose a documented zeroing API, so this
// sets the value to 0 via the public API; callers additionally drop every reference to the original
// value immediately afterward so it becomes collectible. This is the
// practical limit of secret scrubbing spec.md §7 asks for in a language
// whose big-integer type does not guarantee in-place zeroing.
func zeroizeBigInt(x *big.Int) {
	if x == nil {
		return
	}
	x.SetInt64(0)
}
