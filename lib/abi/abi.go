// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package abi

import "encoding/binary"

// WordSize is the EVM ABI word size.
const WordSize = 32

// AddressSize is the size of an on-chain address.
const AddressSize = 20

// CallHeaderSize is the fixed header of a CALL payload: value word,
// calldata offset word, calldata length word. Calldata follows,
// zero-padded to a 32-byte boundary.
const CallHeaderSize = 96

// TransferPayloadSize is the exact size of a TRANSFER_ERC20 payload:
// token word, recipient word, amount word.
const TransferPayloadSize = 96

// callDataOffset is the only valid calldata offset in a CALL payload:
// the calldata length word starts 64 bytes into the payload.
const callDataOffset = 64

// AddressToTarget left-pads a 20-byte address into a 32-byte target
// word: upper 12 bytes zero, lower 20 bytes the address.
func AddressToTarget(address [AddressSize]byte) [WordSize]byte {
	var target [WordSize]byte
	copy(target[WordSize-AddressSize:], address[:])
	return target
}

// IsPaddedAddress reports whether a 32-byte word is a validly
// left-padded address: the upper 12 bytes must all be zero.
func IsPaddedAddress(word [WordSize]byte) bool {
	for _, b := range word[:WordSize-AddressSize] {
		if b != 0 {
			return false
		}
	}
	return true
}

// WordToUint64 reads a big-endian 256-bit ABI word as a uint64. The
// second return is false when the value does not fit in 64 bits.
func WordToUint64(word []byte) (uint64, bool) {
	if len(word) != WordSize {
		return 0, false
	}
	for _, b := range word[:WordSize-8] {
		if b != 0 {
			return 0, false
		}
	}
	return binary.BigEndian.Uint64(word[WordSize-8:]), true
}

// EncodeCallPayload builds a CALL payload: abi.encode(uint256 value,
// bytes calldata). Calldata is zero-padded to a 32-byte boundary.
func EncodeCallPayload(value uint64, calldata []byte) []byte {
	paddedLength := (len(calldata) + WordSize - 1) / WordSize * WordSize
	payload := make([]byte, CallHeaderSize+paddedLength)

	// Word 0: value.
	binary.BigEndian.PutUint64(payload[WordSize-8:WordSize], value)
	// Word 1: offset of the calldata length word (always 64).
	payload[2*WordSize-1] = callDataOffset
	// Word 2: calldata length.
	binary.BigEndian.PutUint64(payload[3*WordSize-8:3*WordSize], uint64(len(calldata)))
	copy(payload[CallHeaderSize:], calldata)
	return payload
}

// ValidCallPayload reports whether a payload has the CALL shape: at
// least the 96-byte header, offset word equal to 64, and a total
// length matching the declared calldata length rounded up to a word
// boundary. Declared lengths exceeding the bytes actually present are
// rejected before the rounding, so the word-boundary arithmetic cannot
// wrap.
func ValidCallPayload(payload []byte) bool {
	if len(payload) < CallHeaderSize {
		return false
	}
	offset, ok := WordToUint64(payload[WordSize : 2*WordSize])
	if !ok || offset != callDataOffset {
		return false
	}
	calldataLength, ok := WordToUint64(payload[2*WordSize : 3*WordSize])
	if !ok || calldataLength > uint64(len(payload)-CallHeaderSize) {
		return false
	}
	paddedLength := (calldataLength + WordSize - 1) / WordSize * WordSize
	return uint64(len(payload)) == CallHeaderSize+paddedLength
}

// CallValue extracts the value word from a CALL payload. The second
// return is false for payloads shorter than the header or values
// exceeding 64 bits.
func CallValue(payload []byte) (uint64, bool) {
	if len(payload) < CallHeaderSize {
		return 0, false
	}
	return WordToUint64(payload[:WordSize])
}

// EncodeTransferPayload builds a TRANSFER_ERC20 payload:
// abi.encode(address token, address to, uint256 amount).
func EncodeTransferPayload(token, to [AddressSize]byte, amount uint64) []byte {
	payload := make([]byte, TransferPayloadSize)
	copy(payload[WordSize-AddressSize:WordSize], token[:])
	copy(payload[2*WordSize-AddressSize:2*WordSize], to[:])
	binary.BigEndian.PutUint64(payload[3*WordSize-8:], amount)
	return payload
}

// ValidTransferPayload reports whether a payload has the
// TRANSFER_ERC20 shape: exactly 96 bytes with both address words
// validly left-padded.
func ValidTransferPayload(payload []byte) bool {
	if len(payload) != TransferPayloadSize {
		return false
	}
	var token, to [WordSize]byte
	copy(token[:], payload[:WordSize])
	copy(to[:], payload[WordSize:2*WordSize])
	return IsPaddedAddress(token) && IsPaddedAddress(to)
}

// TransferToken extracts the token word from a TRANSFER_ERC20 payload.
// The word is returned as-is (left-padded address); the second return
// is false for wrongly-sized payloads.
func TransferToken(payload []byte) ([WordSize]byte, bool) {
	var token [WordSize]byte
	if len(payload) != TransferPayloadSize {
		return token, false
	}
	copy(token[:], payload[:WordSize])
	return token, true
}

// TransferAmount extracts the amount word from a TRANSFER_ERC20
// payload. The second return is false for wrongly-sized payloads or
// amounts exceeding 64 bits.
func TransferAmount(payload []byte) (uint64, bool) {
	if len(payload) != TransferPayloadSize {
		return 0, false
	}
	return WordToUint64(payload[2*WordSize : 3*WordSize])
}
