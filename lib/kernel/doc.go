// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package kernel sequences one verifiable agent invocation: decode the
// input, bind the injected agent's identity, evaluate, canonicalize,
// enforce constraints, and emit the journal.
//
// The pipeline is linear with two kinds of early termination. Fatal
// errors (malformed input, version mismatch, agent code hash mismatch)
// abort the invocation with no journal. Constraint violations are
// recoverable: a journal is still produced, with a Failure status and
// the empty-output action commitment, proving the proposal was
// evaluated and rejected.
//
// Everything here is deterministic and allocation-owned: no I/O, no
// clock, no randomness, no state shared across invocations. The same
// input bytes against the same agent and constraint set always yield
// byte-identical journals.
package kernel
