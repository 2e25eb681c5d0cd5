// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecprime

import (
	"bytes"
	"math/big"
	"testing"
)

func TestDEREncodeDecodeRoundTrip(t *testing.T) {
	r := big.NewInt(123456789)
	s := big.NewInt(987654321)

	der, err := encodeDERSignature(r, s)
	if err != nil {
		t.Fatalf("encodeDERSignature: %v", err)
	}
	gotR, gotS, err := decodeDERSignature(der)
	if err != nil {
		t.Fatalf("decodeDERSignature: %v", err)
	}
	if gotR.Cmp(r) != 0 || gotS.Cmp(s) != 0 {
		t.Fatalf("decoded (%v, %v) != encoded (%v, %v)", gotR, gotS, r, s)
	}
}

func TestDEREncodesHighBitIntegerWithPadByte(t *testing.T) {
	// An integer whose top byte has its high bit set must be padded with a
	// leading 0x00 to keep the DER INTEGER non-negative.
	r := new(big.Int).SetBytes([]byte{0xFF, 0x01})
	s := big.NewInt(1)
	der, err := encodeDERSignature(r, s)
	if err != nil {
		t.Fatalf("encodeDERSignature: %v", err)
	}
	// r is encoded as INTEGER, length 3, 0x00 pad, then 0xFF 0x01.
	if !bytes.Equal(der[2:6], []byte{0x02, 0x03, 0x00, 0xFF}) {
		t.Fatalf("high-bit integer r not encoded with a 0x00 pad byte: %x", der)
	}
	gotR, gotS, err := decodeDERSignature(der)
	if err != nil {
		t.Fatalf("decodeDERSignature: %v", err)
	}
	if gotR.Cmp(r) != 0 || gotS.Cmp(s) != 0 {
		t.Fatalf("round trip through a high-bit integer failed")
	}
}

func TestDERRejectsTrailingGarbage(t *testing.T) {
	der, err := encodeDERSignature(big.NewInt(1), big.NewInt(2))
	if err != nil {
		t.Fatalf("encodeDERSignature: %v", err)
	}
	withGarbage := append(append([]byte(nil), der...), 0xFF)
	if _, _, err := decodeDERSignature(withGarbage); err == nil {
		t.Fatalf("decodeDERSignature accepted trailing garbage")
	}
}

func TestVerifyDERRoundTripRejectsCorruptedLength(t *testing.T) {
	der, err := encodeDERSignature(big.NewInt(5), big.NewInt(6))
	if err != nil {
		t.Fatalf("encodeDERSignature: %v", err)
	}
	// Corrupt the length byte of the outer SEQUENCE to claim one extra byte
	// without actually providing DER-valid content for it, which should be
	// rejected either by decode or by the re-encoding mismatch check.
	corrupted := append([]byte(nil), der...)
	corrupted[1]++
	corrupted = append(corrupted, 0x00)
	if _, _, err := verifyDERRoundTrip(corrupted); err == nil {
		t.Fatalf("verifyDERRoundTrip accepted a corrupted length field")
	}
}
