// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package receipt records completed kernel invocations on the host
// side. A receipt bundles the journal bytes, the prover's seal, and
// the host's own metadata (agent name, timestamps) into one
// content-addressed record.
//
// Receipts are encoded with deterministic CBOR (lib/codec), so the
// same logical receipt always produces identical bytes, and addressed
// by a domain-separated BLAKE3 keyed hash of that encoding. The store
// keeps each receipt as a small framed file: a one-byte compression
// tag, the uncompressed size, and the (possibly compressed) encoding.
//
// Nothing in this package is inside the proving boundary: receipts are
// host bookkeeping, not protocol state. The journal bytes inside a
// receipt remain the only externally-trusted artifact.
package receipt
