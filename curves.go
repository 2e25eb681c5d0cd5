// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"math/big"
	"sync"
)

// Opaque NID tags for the built-in curve set (spec.md §3's "nid is an
// opaque tag; do not enumerate" — these constants exist only so that each
// built-in curve carries a distinct tag, not for callers to switch on).
const (
	NIDP224 = 1 + iota
	NIDP256
	NIDP384
	NIDP521
	NIDSecp256k1
)

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("ecprime: invalid built-in curve constant")
	}
	return n
}

func mustNewCurve(pHex, aHex, bHex, gxHex, gyHex, nHex string, h int64, nid int) *Curve {
	p := mustHex(pHex)
	a := mustHex(aHex)
	b := mustHex(bHex)
	c, err := NewCurve(p, a, b)
	if err != nil {
		panic(err)
	}
	gx := mustHex(gxHex)
	gy := mustHex(gyHex)
	n := mustHex(nHex)
	var hb *big.Int
	if h != 0 {
		hb = big.NewInt(h)
	}
	if err := c.SetGenerator(gx, gy, n, hb); err != nil {
		panic(err)
	}
	c.NID = nid
	c.Form = FormUncompressed
	return c
}

var (
	p224Once sync.Once
	p224     *Curve

	p256Once sync.Once
	p256     *Curve

	p384Once sync.Once
	p384     *Curve

	p521Once sync.Once
	p521     *Curve

	secp256k1Once sync.Once
	secp256k1     *Curve
)

// P224 returns the NIST P-224 curve, constructing it on first use.
func P224() *Curve {
	p224Once.Do(func() {
		p224 = mustNewCurve(
			"ffffffffffffffffffffffffffffffff000000000000000000000001",
			"fffffffffffffffffffffffffffffffefffffffffffffffffffffffe",
			"b4050a850c04b3abf54132565044b0b7d7bfd8ba270b39432355ffb4",
			"b70e0cbd6bb4bf7f321390b94a03c1d356c21122343280d6115c1d21",
			"bd376388b5f723fb4c22dfe6cd4375a05a07476444d5819985007e34",
			"ffffffffffffffffffffffffffff16a2e0b8f03e13dd29455c5c2a3d",
			1, NIDP224,
		)
	})
	return p224
}

// P256 returns the NIST P-256 curve, constructing it on first use.
func P256() *Curve {
	p256Once.Do(func() {
		p256 = mustNewCurve(
			"ffffffff00000001000000000000000000000000ffffffffffffffffffffffff",
			"ffffffff00000001000000000000000000000000fffffffffffffffffffffffc",
			"5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b",
			"6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296",
			"4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5",
			"ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551",
			1, NIDP256,
		)
	})
	return p256
}

// P384 returns the NIST P-384 curve, constructing it on first use.
func P384() *Curve {
	p384Once.Do(func() {
		p384 = mustNewCurve(
			"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000ffffffff",
			"fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeffffffff0000000000000000fffffffc",
			"b3312fa7e23ee7e4988e056be3f82d19181d9c6efe8141120314088f5013875ac656398d8a2ed19d2a85c8edd3ec2aef",
			"aa87ca22be8b05378eb1c71ef320ad746e1d3b628ba79b9859f741e082542a385502f25dbf55296c3a545e3872760ab7",
			"3617de4a96262c6f5d9e98bf9292dc29f8f41dbd289a147ce9da3113b5f0b8c00a60b1ce1d7e819d7a431d7c90ea0e5f",
			"ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973",
			1, NIDP384,
		)
	})
	return p384
}

// P521 returns the NIST P-521 curve, constructing it on first use.
func P521() *Curve {
	p521Once.Do(func() {
		p521 = mustNewCurve(
			"01ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
			"01fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffc",
			"0051953eb9618e1c9a1f929a21a0b68540eea2da725b99b315f3b8b489918ef109e156193951ec7e937b1652c0bd3bb1bf073573df883d2c34f1ef451fd46b503f00",
			"00c6858e06b70404e9cd9e3ecb662395b4429c648139053fb521f828af606b4d3dbaa14b5e77efe75928fe1dc127a2ffa8de3348b3c1856a429bf97e7e31c2e5bd66",
			"011839296a789a3bc0045c8a5fb42c7d1bd998f54449579b446817afbd17273e662c97ee72995ef42640c550b9013fad0761353c7086a272c24088be94769fd16650",
			"01fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffa51868783bf2f966b7fcc0148f709a5d03bb5c9b8899c47aebb6fb71e91386409",
			1, NIDP521,
		)
	})
	return p521
}

// Secp256k1 returns the Koblitz curve secp256k1 (used by Bitcoin and
// similar systems), constructing it on first use.
func Secp256k1() *Curve {
	secp256k1Once.Do(func() {
		secp256k1 = mustNewCurve(
			"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
			"0",
			"7",
			"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
			"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
			"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
			1, NIDSecp256k1,
		)
	})
	return secp256k1
}
