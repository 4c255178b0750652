// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Verikernel's standard CBOR encoding
// configuration.
//
// Verikernel uses three serialization formats with a clear boundary:
//
//   - The fixed little-endian wire format (lib/wire) for everything a
//     proof commits to: input records, journals, action sets. CBOR is
//     never used inside the proving boundary.
//   - JSON/JSONC for operator-authored files: bundle manifests and CLI
//     output.
//   - CBOR for host-side machine state: execution receipts and their
//     on-disk store.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every host package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes, which matters because receipts are content-addressed by the
// hash of their encoding.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
package codec
