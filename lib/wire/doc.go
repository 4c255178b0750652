// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements the canonical binary codec for the kernel
// protocol's record types: the input record, the journal record,
// actions and action sets, and the state snapshot.
//
// The encoding is consensus-critical. Any two conforming
// implementations must produce identical bytes for identical values,
// and the on-chain verifier parses journal bytes with the exact
// layouts defined here. All integers are little-endian. Variable-length
// byte fields carry a 4-byte length prefix; lists carry a 4-byte count
// followed by each element's encoding concatenated.
//
// # Decode Contract
//
// Decoding consumes exactly the number of bytes the structure implies.
// A single trailing byte fails with [ErrInvalidLength] — silent
// tolerance of extra bytes would break encoding injectivity and with
// it the commitment scheme. Truncated input fails with
// [ErrUnexpectedEndOfInput]. Version fields must equal
// [ProtocolVersion] and [KernelVersion]; anything else fails with a
// *[VersionError].
//
// # Record Sizes
//
// The journal record has no variable-length fields and is always
// [JournalSize] (209) bytes. The input record is a 144-byte fixed
// header plus the length-prefixed opaque payload, so an empty payload
// encodes to 148 bytes. The state snapshot is always
// [StateSnapshotSize] (36) bytes.
package wire
