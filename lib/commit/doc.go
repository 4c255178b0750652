// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package commit computes the protocol's cryptographic commitments:
// SHA-256 over canonically-encoded bytes, producing the 32-byte values
// the settlement layer trusts.
//
// The action commitment is only ever computed over the canonical form
// of an action set — a deterministic reordering that makes the
// committed bytes independent of the order in which the agent emitted
// its actions. See [Canonicalize].
package commit
