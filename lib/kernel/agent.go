// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

import "github.com/verikernel-foundation/verikernel/lib/wire"

// Context carries the identity fields of the invocation into the
// agent. It mirrors the input record minus the opaque payload, which
// is handed to Evaluate separately.
type Context struct {
	ProtocolVersion   uint32
	KernelVersion     uint32
	AgentID           [32]byte
	AgentCodeHash     [32]byte
	ConstraintSetHash [32]byte
	InputRoot         [32]byte
	ExecutionNonce    uint64
}

// Agent is the injection point for decision logic. One concrete agent
// is linked into each kernel binary; the interface keeps the pipeline
// generic across agents, not to support runtime plugin loading.
//
// Evaluate must be pure: the same context and inputs always produce
// the same action set, with no ambient clock, randomness, or I/O. The
// kernel canonicalizes and enforces the result; the agent does not
// need to emit actions in any particular order.
type Agent interface {
	// CodeHash returns the build-time identity commitment to the
	// agent's logic. The kernel refuses to run when the input record
	// names a different hash.
	CodeHash() [32]byte

	// Evaluate maps the invocation context and the opaque agent inputs
	// to a proposed action set.
	Evaluate(ctx Context, opaqueInputs []byte) wire.ActionSet
}

// contextFromInput copies the identity fields out of a decoded input
// record.
func contextFromInput(record *wire.InputRecord) Context {
	return Context{
		ProtocolVersion:   record.ProtocolVersion,
		KernelVersion:     record.KernelVersion,
		AgentID:           record.AgentID,
		AgentCodeHash:     record.AgentCodeHash,
		ConstraintSetHash: record.ConstraintSetHash,
		InputRoot:         record.InputRoot,
		ExecutionNonce:    record.ExecutionNonce,
	}
}
