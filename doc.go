// Copyright (c) 2015-2020 The Decred developers
// Copyright 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ecprime implements elliptic-curve arithmetic over prime fields for
// short-Weierstrass curves y² = x³ + ax + b, together with ECDSA signing and
// verification built on top of it.
//
// Points are represented internally in Jacobian projective coordinates and
// all group law is implemented there; affine coordinates are only produced
// at the edges (SEC1 encoding, ECDSA's r value). Two scalar multiplication
// strategies are provided: a variable-time width-w NAF double-scalar
// multiplication suited to signature verification, and a constant-time
// single-scalar multiplication suited to signing and key generation, where
// the scalar must not leak through timing.
//
// A small built-in set of curves is provided (the NIST P-224/256/384/521
// curves and the Koblitz curve secp256k1); callers may also construct their
// own curve with NewCurve and SetGenerator.
//
// References:
//
//	[SEC1]:  Standards for Efficient Cryptography 1, version 2.0
//	[GECC]:  Guide to Elliptic Curve Cryptography (Hankerson, Menezes, Vanstone)
//	[FIPS186-5]: Digital Signature Standard, section 6.4
package ecprime
