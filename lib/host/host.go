// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package host drives kernel invocations from outside the proving
// boundary: it builds input records from a loaded bundle, hands them
// to a prover, verifies the returned journal against the input it
// sent, and records a receipt.
//
// Everything here may do I/O and log; nothing here is replayed inside
// the proving environment.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/verikernel-foundation/verikernel/lib/bundle"
	"github.com/verikernel-foundation/verikernel/lib/commit"
	"github.com/verikernel-foundation/verikernel/lib/constraint"
	"github.com/verikernel-foundation/verikernel/lib/prove"
	"github.com/verikernel-foundation/verikernel/lib/receipt"
	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// ErrJournalMismatch is returned when the prover's journal does not
// mirror the input record it was given. Any mismatch means the proof,
// whatever it attests to, is not about this invocation.
var ErrJournalMismatch = errors.New("journal does not match input")

// InputParams are the per-invocation values the caller chooses; the
// identity fields come from the bundle and the constraint set.
type InputParams struct {
	// InputRoot commits to the externally-gathered inputs (market
	// data, state snapshot sources). The kernel records it; binding it
	// to OpaqueInputs is the settlement layer's job.
	InputRoot [32]byte

	// ExecutionNonce must be strictly increasing per agent.
	ExecutionNonce uint64

	// OpaqueInputs is the agent-specific input payload. When the
	// constraint set activates drawdown or cooldown, the 36-byte state
	// snapshot must be its prefix.
	OpaqueInputs []byte
}

// BuildInput assembles and encodes the input record for one invocation
// of the bundle's agent under the given constraint set.
func BuildInput(b *bundle.Bundle, set constraint.Set, params InputParams) ([]byte, error) {
	record := wire.InputRecord{
		ProtocolVersion:   wire.ProtocolVersion,
		KernelVersion:     wire.KernelVersion,
		AgentID:           b.AgentID,
		AgentCodeHash:     b.AgentCodeHash,
		ConstraintSetHash: set.Hash(),
		InputRoot:         params.InputRoot,
		ExecutionNonce:    params.ExecutionNonce,
		OpaqueAgentInputs: params.OpaqueInputs,
	}
	encoded, err := record.Encode()
	if err != nil {
		return nil, fmt.Errorf("building input: %w", err)
	}
	return encoded, nil
}

// VerifyJournal decodes the journal and checks it against the input
// bytes the prover was given: every identity field must mirror the
// input, and the input commitment must equal the hash of the exact
// input bytes. Returns the decoded journal on success.
//
// This does not verify the seal; seal verification belongs to the
// proving backend's verifier contract.
func VerifyJournal(journalBytes, inputBytes []byte) (*wire.JournalRecord, error) {
	journal, err := wire.DecodeJournal(journalBytes)
	if err != nil {
		return nil, fmt.Errorf("decoding journal: %w", err)
	}
	input, err := wire.DecodeInput(inputBytes)
	if err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}

	switch {
	case journal.AgentID != input.AgentID:
		return nil, fmt.Errorf("%w: agent_id", ErrJournalMismatch)
	case journal.AgentCodeHash != input.AgentCodeHash:
		return nil, fmt.Errorf("%w: agent_code_hash", ErrJournalMismatch)
	case journal.ConstraintSetHash != input.ConstraintSetHash:
		return nil, fmt.Errorf("%w: constraint_set_hash", ErrJournalMismatch)
	case journal.InputRoot != input.InputRoot:
		return nil, fmt.Errorf("%w: input_root", ErrJournalMismatch)
	case journal.ExecutionNonce != input.ExecutionNonce:
		return nil, fmt.Errorf("%w: execution_nonce", ErrJournalMismatch)
	}

	if journal.InputCommitment != commit.Sum(inputBytes) {
		return nil, fmt.Errorf("%w: input_commitment", ErrJournalMismatch)
	}
	return &journal, nil
}

// Config wires one host pipeline together.
type Config struct {
	// Bundle supplies the agent identity and the proving binary.
	Bundle *bundle.Bundle

	// Prover produces (journal, seal) from the binary and input bytes.
	Prover prove.Prover

	// ConstraintSet is the policy enforced during execution. Its hash
	// is bound into every input this host builds.
	ConstraintSet constraint.Set

	// Receipts, when non-nil, stores a receipt for every completed
	// invocation.
	Receipts *receipt.Store

	// Logger receives operational messages. If nil, a default stderr
	// logger is used.
	Logger *slog.Logger
}

// Result is one completed, verified invocation.
type Result struct {
	Journal      *wire.JournalRecord
	JournalBytes []byte
	Seal         []byte

	// ReceiptHash addresses the stored receipt; zero when the host has
	// no receipt store.
	ReceiptHash receipt.Hash
}

// Run executes one invocation end to end: build the input, prove,
// verify the journal against the input, and record a receipt.
func Run(ctx context.Context, config Config, params InputParams) (*Result, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	inputBytes, err := BuildInput(config.Bundle, config.ConstraintSet, params)
	if err != nil {
		return nil, err
	}

	logger.Info("proving invocation",
		"agent", config.Bundle.Manifest.AgentName,
		"nonce", params.ExecutionNonce,
		"input_bytes", len(inputBytes))

	journalBytes, seal, err := config.Prover.Prove(ctx, config.Bundle.Binary, inputBytes)
	if err != nil {
		return nil, fmt.Errorf("proving: %w", err)
	}

	journal, err := VerifyJournal(journalBytes, inputBytes)
	if err != nil {
		return nil, err
	}

	logger.Info("invocation complete",
		"agent", config.Bundle.Manifest.AgentName,
		"nonce", params.ExecutionNonce,
		"status", journal.ExecutionStatus.String(),
		"action_commitment", commit.FormatCommitment(journal.ActionCommitment))

	result := &Result{Journal: journal, JournalBytes: journalBytes, Seal: seal}

	if config.Receipts != nil {
		record := receipt.New(config.Bundle.Manifest.AgentName, journal, journalBytes, seal, time.Now().Unix())
		hash, err := config.Receipts.Put(record)
		if err != nil {
			return nil, fmt.Errorf("storing receipt: %w", err)
		}
		result.ReceiptHash = hash
		logger.Info("receipt stored", "receipt", receipt.FormatHash(hash))
	}

	return result, nil
}
