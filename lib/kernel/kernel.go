// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"errors"
	"fmt"

	"github.com/verikernel-foundation/verikernel/lib/commit"
	"github.com/verikernel-foundation/verikernel/lib/constraint"
	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// ErrAgentCodeHashMismatch is returned when the input record names a
// different agent than the one linked into the kernel. A proof must
// never claim a different agent ran than the one that actually did.
var ErrAgentCodeHashMismatch = errors.New("agent code hash mismatch")

// Execute runs one full kernel invocation and returns the encoded
// 209-byte journal.
//
// Fatal conditions (malformed input bytes, version mismatch, agent
// code hash mismatch) return a nil journal and an error; the proving
// environment treats these as total failure. A constraint violation is
// not an error: the journal comes back with StatusFailure and the
// empty-output action commitment.
func Execute(inputBytes []byte, agent Agent, set constraint.Set) ([]byte, error) {
	input, err := wire.DecodeInput(inputBytes)
	if err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}

	if input.AgentCodeHash != agent.CodeHash() {
		return nil, fmt.Errorf("%w: input %s, linked agent %s",
			ErrAgentCodeHashMismatch,
			commit.FormatCommitment(input.AgentCodeHash),
			commit.FormatCommitment(agent.CodeHash()))
	}

	// Decode enforces exact canonical form, so hashing the raw bytes
	// is identical to re-encoding and hashing.
	inputCommitment := commit.Sum(inputBytes)

	proposed := agent.Evaluate(contextFromInput(&input), input.OpaqueAgentInputs)
	canonical := commit.Canonicalize(proposed)

	journal := wire.JournalRecord{
		ProtocolVersion:   input.ProtocolVersion,
		KernelVersion:     input.KernelVersion,
		AgentID:           input.AgentID,
		AgentCodeHash:     input.AgentCodeHash,
		ConstraintSetHash: input.ConstraintSetHash,
		InputRoot:         input.InputRoot,
		ExecutionNonce:    input.ExecutionNonce,
		InputCommitment:   inputCommitment,
	}

	if violation := constraint.Enforce(&input, &canonical, &set); violation != nil {
		journal.ExecutionStatus = wire.StatusFailure
		journal.ActionCommitment = commit.EmptyOutputCommitment
	} else {
		encoded, err := canonical.Encode()
		if err != nil {
			// Unreachable after enforcement: the engine already bounds
			// action count and payload sizes.
			return nil, fmt.Errorf("encoding canonical action set: %w", err)
		}
		journal.ExecutionStatus = wire.StatusSuccess
		journal.ActionCommitment = commit.Sum(encoded)
	}

	journalBytes, err := journal.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding journal: %w", err)
	}
	return journalBytes, nil
}
