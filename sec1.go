// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

// SEC1 lead bytes, per spec.md §4.2.
const (
	sec1Infinity     = 0x00
	sec1CompressedEven = 0x02
	sec1CompressedOdd  = 0x03
	sec1Uncompressed = 0x04
	sec1HybridEven   = 0x06
	sec1HybridOdd    = 0x07
)

// Point2Oct encodes p in the requested SEC1 form, returning the encoded
// octet string. Identity always encodes to the single byte 0x00 regardless
// of the requested form; requesting FormCompressed/Uncompressed/Hybrid for a
// non-identity point works as documented, but asking to encode a
// non-identity point "as identity" is not an expressible request through
// this API (there is no form value for it) — callers who need that check
// call IsAtInfinity themselves, matching spec.md's note that such a request
// must fail.
func Point2Oct(p *Point, form encodingForm) ([]byte, error) {
	if p.IsAtInfinity() {
		return []byte{sec1Infinity}, nil
	}

	x, y, err := p.GetAffine()
	if err != nil {
		return nil, err
	}
	byteLen := p.curve.byteLen()
	xBytes := x.Bytes(byteLen)

	switch form {
	case FormCompressed:
		lead := byte(sec1CompressedEven)
		if y.IsOdd() {
			lead = sec1CompressedOdd
		}
		out := make([]byte, 0, 1+byteLen)
		out = append(out, lead)
		out = append(out, xBytes...)
		return out, nil
	case FormUncompressed:
		yBytes := y.Bytes(byteLen)
		out := make([]byte, 0, 1+2*byteLen)
		out = append(out, sec1Uncompressed)
		out = append(out, xBytes...)
		out = append(out, yBytes...)
		return out, nil
	case FormHybrid:
		lead := byte(sec1HybridEven)
		if y.IsOdd() {
			lead = sec1HybridOdd
		}
		yBytes := y.Bytes(byteLen)
		out := make([]byte, 0, 1+2*byteLen)
		out = append(out, lead)
		out = append(out, xBytes...)
		out = append(out, yBytes...)
		return out, nil
	default:
		return nil, newErrorf(ErrNotImplemented, "unknown encoding form %d", form)
	}
}

// Point2OctInto is the fixed-buffer variant of Point2Oct matching spec.md
// §6's "point2oct(form, …) returning required length (if buffer null) or
// written length" contract: when dst is nil, it returns the required length
// only; otherwise it writes into dst and fails with ErrBufferTooSmall if
// dst is not large enough.
func Point2OctInto(p *Point, form encodingForm, dst []byte) (int, error) {
	encoded, err := Point2Oct(p, form)
	if err != nil {
		return 0, err
	}
	if dst == nil {
		return len(encoded), nil
	}
	if len(dst) < len(encoded) {
		return 0, newError(ErrBufferTooSmall, "destination buffer too small for encoded point")
	}
	copy(dst, encoded)
	return len(encoded), nil
}

// Oct2Point decodes buf into a newly allocated point bound to curve.
// Decoding performs the full structural validation spec.md §4.2/§8 requires:
// lead byte must be one of {0x00, 0x02, 0x03, 0x04, 0x06, 0x07}; length must
// match the form exactly; for compressed/hybrid forms the y-bit must be
// consistent; the resulting point (or identity) must lie on the curve.
func Oct2Point(curve *Curve, buf []byte) (*Point, error) {
	if len(buf) == 0 {
		return nil, newError(ErrInvalidEncoding, "empty octet string")
	}
	byteLen := curve.byteLen()
	lead := buf[0]

	switch lead {
	case sec1Infinity:
		if len(buf) != 1 {
			return nil, newError(ErrInvalidEncoding, "identity encoding must be exactly one byte")
		}
		return newPoint(curve), nil

	case sec1CompressedEven, sec1CompressedOdd:
		if len(buf) != 1+byteLen {
			return nil, newError(ErrInvalidEncoding, "compressed point has wrong length")
		}
		x := newFieldElement(curve.fieldMod).SetBytes(buf[1:])
		yBit := lead == sec1CompressedOdd
		p := newPoint(curve)
		if err := p.SetCompressed(curve, x, yBit); err != nil {
			return nil, err
		}
		return p, nil

	case sec1Uncompressed:
		if len(buf) != 1+2*byteLen {
			return nil, newError(ErrInvalidEncoding, "uncompressed point has wrong length")
		}
		x := newFieldElement(curve.fieldMod).SetBytes(buf[1 : 1+byteLen])
		y := newFieldElement(curve.fieldMod).SetBytes(buf[1+byteLen:])
		p := newPoint(curve)
		if err := p.SetAffine(curve, x, y); err != nil {
			return nil, err
		}
		return p, nil

	case sec1HybridEven, sec1HybridOdd:
		if len(buf) != 1+2*byteLen {
			return nil, newError(ErrInvalidEncoding, "hybrid point has wrong length")
		}
		x := newFieldElement(curve.fieldMod).SetBytes(buf[1 : 1+byteLen])
		y := newFieldElement(curve.fieldMod).SetBytes(buf[1+byteLen:])
		wantOdd := lead == sec1HybridOdd
		if y.IsOdd() != wantOdd {
			return nil, newError(ErrInvalidEncoding, "hybrid parity bit disagrees with embedded y")
		}
		p := newPoint(curve)
		if err := p.SetAffine(curve, x, y); err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, newErrorf(ErrInvalidEncoding, "lead byte 0x%02x is not a valid SEC1 form", lead)
	}
}
