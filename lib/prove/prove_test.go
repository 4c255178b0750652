// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package prove

import (
	"bytes"
	"context"
	"testing"

	"github.com/verikernel-foundation/verikernel/lib/abi"
	"github.com/verikernel-foundation/verikernel/lib/constraint"
	"github.com/verikernel-foundation/verikernel/lib/kernel"
	"github.com/verikernel-foundation/verikernel/lib/wire"
)

type fixedAgent struct {
	codeHash [32]byte
}

func (a *fixedAgent) CodeHash() [32]byte {
	return a.codeHash
}

func (a *fixedAgent) Evaluate(_ kernel.Context, _ []byte) wire.ActionSet {
	return wire.ActionSet{Actions: []wire.Action{{
		ActionType: wire.ActionTypeCall,
		Target:     abi.AddressToTarget([20]byte{0x22}),
		Payload:    abi.EncodeCallPayload(1, nil),
	}}}
}

func testInputBytes(t *testing.T, codeHash [32]byte) []byte {
	t.Helper()
	record := wire.InputRecord{
		ProtocolVersion: wire.ProtocolVersion,
		KernelVersion:   wire.KernelVersion,
		AgentCodeHash:   codeHash,
		ExecutionNonce:  1,
	}
	encoded, err := record.Encode()
	if err != nil {
		t.Fatalf("encoding input: %v", err)
	}
	return encoded
}

func TestLocalProverMatchesDirectExecution(t *testing.T) {
	agent := &fixedAgent{codeHash: [32]byte{0xAA}}
	prover := &LocalProver{Agent: agent, ConstraintSet: constraint.Default()}
	inputBytes := testInputBytes(t, agent.codeHash)

	journal, seal, err := prover.Prove(context.Background(), nil, inputBytes)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(seal) != 0 {
		t.Errorf("local prover produced a seal of %d bytes", len(seal))
	}

	direct, err := kernel.Execute(inputBytes, agent, constraint.Default())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Equal(journal, direct) {
		t.Error("local proving and direct execution disagree")
	}
}

func TestLocalProverPropagatesFatalErrors(t *testing.T) {
	agent := &fixedAgent{codeHash: [32]byte{0xAA}}
	prover := &LocalProver{Agent: agent, ConstraintSet: constraint.Default()}

	// Input names a different agent: fatal, no journal.
	inputBytes := testInputBytes(t, [32]byte{0xEE})
	journal, _, err := prover.Prove(context.Background(), nil, inputBytes)
	if err == nil {
		t.Fatal("mismatched code hash proved without error")
	}
	if journal != nil {
		t.Error("fatal error still returned journal bytes")
	}
}

func TestLocalProverHonorsCancellation(t *testing.T) {
	agent := &fixedAgent{codeHash: [32]byte{0xAA}}
	prover := &LocalProver{Agent: agent, ConstraintSet: constraint.Default()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := prover.Prove(ctx, nil, testInputBytes(t, agent.codeHash)); err == nil {
		t.Error("cancelled context proved without error")
	}
}
