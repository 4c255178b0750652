// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package abi

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestAddressToTargetPadding(t *testing.T) {
	address := [AddressSize]byte{}
	for i := range address {
		address[i] = 0xAB
	}

	target := AddressToTarget(address)

	if !bytes.Equal(target[:12], make([]byte, 12)) {
		t.Errorf("upper 12 bytes = %x, want zeros", target[:12])
	}
	if !bytes.Equal(target[12:], address[:]) {
		t.Errorf("lower 20 bytes = %x, want the address", target[12:])
	}
	if !IsPaddedAddress(target) {
		t.Error("IsPaddedAddress rejected its own output")
	}
}

func TestIsPaddedAddressRejectsHighBytes(t *testing.T) {
	var word [WordSize]byte
	word[11] = 0x01
	if IsPaddedAddress(word) {
		t.Error("accepted a word with a nonzero high byte")
	}
}

func TestWordToUint64(t *testing.T) {
	var word [WordSize]byte
	word[WordSize-1] = 0x2A

	value, ok := WordToUint64(word[:])
	if !ok || value != 42 {
		t.Errorf("WordToUint64 = (%d, %v), want (42, true)", value, ok)
	}

	// A bit above 64 bits must not fit.
	word[WordSize-9] = 0x01
	if _, ok := WordToUint64(word[:]); ok {
		t.Error("accepted a value wider than 64 bits")
	}

	// Wrong length.
	if _, ok := WordToUint64(word[:31]); ok {
		t.Error("accepted a short word")
	}
}

func TestCallPayloadEmptyCalldata(t *testing.T) {
	payload := EncodeCallPayload(1_000_000, nil)

	if len(payload) != CallHeaderSize {
		t.Fatalf("payload length = %d, want %d", len(payload), CallHeaderSize)
	}
	if !ValidCallPayload(payload) {
		t.Fatal("ValidCallPayload rejected an encoded payload")
	}

	value, ok := CallValue(payload)
	if !ok || value != 1_000_000 {
		t.Errorf("CallValue = (%d, %v), want (1000000, true)", value, ok)
	}

	// Offset word is fixed at 64.
	if payload[63] != 64 {
		t.Errorf("offset byte = %d, want 64", payload[63])
	}
	// Length word is zero.
	if !bytes.Equal(payload[64:96], make([]byte, 32)) {
		t.Errorf("length word = %x, want zeros", payload[64:96])
	}
}

func TestCallPayloadWithCalldata(t *testing.T) {
	calldata := []byte{0x51, 0xcf, 0xf8, 0xd9, 0x01, 0x02}
	payload := EncodeCallPayload(0, calldata)

	// 6 bytes pad to one 32-byte word.
	if len(payload) != CallHeaderSize+32 {
		t.Fatalf("payload length = %d, want %d", len(payload), CallHeaderSize+32)
	}
	if !ValidCallPayload(payload) {
		t.Fatal("ValidCallPayload rejected an encoded payload")
	}
	if payload[95] != byte(len(calldata)) {
		t.Errorf("declared calldata length = %d, want %d", payload[95], len(calldata))
	}
	if !bytes.Equal(payload[96:96+len(calldata)], calldata) {
		t.Errorf("calldata = %x, want %x", payload[96:96+len(calldata)], calldata)
	}
	if !bytes.Equal(payload[96+len(calldata):], make([]byte, 32-len(calldata))) {
		t.Error("calldata padding is not zero")
	}
}

func TestValidCallPayloadRejectsMalformed(t *testing.T) {
	valid := EncodeCallPayload(5, []byte{0x01})

	short := valid[:CallHeaderSize-1]
	if ValidCallPayload(short) {
		t.Error("accepted a payload shorter than the header")
	}

	badOffset := bytes.Clone(valid)
	badOffset[63] = 32
	if ValidCallPayload(badOffset) {
		t.Error("accepted a payload with a wrong offset word")
	}

	badLength := bytes.Clone(valid)
	badLength[95] = 200
	if ValidCallPayload(badLength) {
		t.Error("accepted a payload whose declared length mismatches its size")
	}

	truncated := valid[:len(valid)-1]
	if ValidCallPayload(truncated) {
		t.Error("accepted a truncated payload")
	}
}

func TestValidCallPayloadRejectsWrappingLength(t *testing.T) {
	// Declared lengths near 2^64 round to small values if the padding
	// arithmetic is allowed to wrap; 2^64-17 rounds to 0, which would
	// make a bare 96-byte payload look well-formed.
	payload := EncodeCallPayload(0, nil)
	binary.BigEndian.PutUint64(payload[3*WordSize-8:3*WordSize], ^uint64(0)-16)
	if ValidCallPayload(payload) {
		t.Error("accepted a payload whose declared length wraps the padding arithmetic")
	}

	// Same wrap with trailing calldata bytes present.
	withBody := EncodeCallPayload(0, make([]byte, 32))
	binary.BigEndian.PutUint64(withBody[3*WordSize-8:3*WordSize], ^uint64(0)-16)
	if ValidCallPayload(withBody) {
		t.Error("accepted a padded payload whose declared length wraps")
	}

	// A declared length larger than the available calldata must not
	// validate even when it does not wrap.
	oversold := EncodeCallPayload(0, make([]byte, 32))
	binary.BigEndian.PutUint64(oversold[3*WordSize-8:3*WordSize], 64)
	if ValidCallPayload(oversold) {
		t.Error("accepted a payload declaring more calldata than it carries")
	}
}

func TestTransferPayloadRoundtrip(t *testing.T) {
	var token, to [AddressSize]byte
	for i := range token {
		token[i] = 0x11
		to[i] = 0x22
	}

	payload := EncodeTransferPayload(token, to, 500)

	if len(payload) != TransferPayloadSize {
		t.Fatalf("payload length = %d, want %d", len(payload), TransferPayloadSize)
	}
	if !ValidTransferPayload(payload) {
		t.Fatal("ValidTransferPayload rejected an encoded payload")
	}

	gotToken, ok := TransferToken(payload)
	if !ok || gotToken != AddressToTarget(token) {
		t.Errorf("TransferToken = (%x, %v)", gotToken, ok)
	}
	amount, ok := TransferAmount(payload)
	if !ok || amount != 500 {
		t.Errorf("TransferAmount = (%d, %v), want (500, true)", amount, ok)
	}
}

func TestValidTransferPayloadRejectsMalformed(t *testing.T) {
	var token, to [AddressSize]byte
	valid := EncodeTransferPayload(token, to, 1)

	if ValidTransferPayload(valid[:95]) {
		t.Error("accepted a 95-byte payload")
	}
	if ValidTransferPayload(append(bytes.Clone(valid), 0x00)) {
		t.Error("accepted a 97-byte payload")
	}

	badToken := bytes.Clone(valid)
	badToken[0] = 0x01
	if ValidTransferPayload(badToken) {
		t.Error("accepted an unpadded token word")
	}

	badRecipient := bytes.Clone(valid)
	badRecipient[32] = 0x01
	if ValidTransferPayload(badRecipient) {
		t.Error("accepted an unpadded recipient word")
	}
}

func TestTransferAmountOverflowRejected(t *testing.T) {
	var token, to [AddressSize]byte
	payload := EncodeTransferPayload(token, to, 1)
	// Set a bit above the 64-bit range of the amount word.
	payload[2*WordSize] = 0x01

	if _, ok := TransferAmount(payload); ok {
		t.Error("accepted an amount wider than 64 bits")
	}
}
