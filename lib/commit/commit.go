// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package commit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// EmptyOutputCommitment is the SHA-256 of the empty action set's
// encoding (four zero bytes). Every journal whose proposal was
// rejected by constraint enforcement carries exactly this value as its
// action commitment. The constant is protocol-fixed; a test verifies
// it against a fresh computation.
var EmptyOutputCommitment = [32]byte{
	0xdf, 0x3f, 0x61, 0x98, 0x04, 0xa9, 0x2f, 0xdb, 0x40, 0x57, 0x19, 0x2d, 0xc4, 0x3d, 0xd7, 0x48,
	0xea, 0x77, 0x8a, 0xdc, 0x52, 0xbc, 0x49, 0x8c, 0xe8, 0x05, 0x24, 0xc0, 0x14, 0xb8, 0x11, 0x19,
}

// Sum computes the SHA-256 digest of raw bytes. This is the only hash
// function the protocol uses for commitments.
func Sum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// InputCommitment encodes the input record canonically and hashes it.
// The kernel itself hashes the raw input bytes it was handed; since
// decode enforces exact canonical form, the two are always identical.
func InputCommitment(record *wire.InputRecord) ([32]byte, error) {
	encoded, err := record.Encode()
	if err != nil {
		return [32]byte{}, fmt.Errorf("encoding input record: %w", err)
	}
	return Sum(encoded), nil
}

// ActionCommitment canonicalizes the action set, encodes it, and
// hashes the result. Any two permutations of the same actions produce
// the same commitment.
func ActionCommitment(set wire.ActionSet) ([32]byte, error) {
	canonical := Canonicalize(set)
	encoded, err := canonical.Encode()
	if err != nil {
		return [32]byte{}, fmt.Errorf("encoding action set: %w", err)
	}
	return Sum(encoded), nil
}

// FormatCommitment returns the hex-encoded string form of a
// commitment. This is the canonical format used in manifests,
// receipts, and log output.
func FormatCommitment(digest [32]byte) string {
	return hex.EncodeToString(digest[:])
}

// ParseCommitment parses a 64-character hex string into a 32-byte
// commitment.
func ParseCommitment(hexString string) ([32]byte, error) {
	var digest [32]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing commitment: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("commitment is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
