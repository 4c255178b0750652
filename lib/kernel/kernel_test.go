// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package kernel

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/verikernel-foundation/verikernel/lib/abi"
	"github.com/verikernel-foundation/verikernel/lib/commit"
	"github.com/verikernel-foundation/verikernel/lib/constraint"
	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// testAgent is a fixed-output agent for pipeline tests.
type testAgent struct {
	codeHash [32]byte
	actions  []wire.Action
}

func (a *testAgent) CodeHash() [32]byte {
	return a.codeHash
}

func (a *testAgent) Evaluate(_ Context, _ []byte) wire.ActionSet {
	return wire.ActionSet{Actions: a.actions}
}

// contextAgent records the context it was evaluated with.
type contextAgent struct {
	codeHash [32]byte
	seen     Context
	opaque   []byte
}

func (a *contextAgent) CodeHash() [32]byte {
	return a.codeHash
}

func (a *contextAgent) Evaluate(ctx Context, opaqueInputs []byte) wire.ActionSet {
	a.seen = ctx
	a.opaque = bytes.Clone(opaqueInputs)
	return wire.ActionSet{}
}

func encodeInput(t *testing.T, record wire.InputRecord) []byte {
	t.Helper()
	encoded, err := record.Encode()
	if err != nil {
		t.Fatalf("encoding input: %v", err)
	}
	return encoded
}

func baseInput(codeHash [32]byte) wire.InputRecord {
	return wire.InputRecord{
		ProtocolVersion:   wire.ProtocolVersion,
		KernelVersion:     wire.KernelVersion,
		AgentID:           [32]byte{0x42},
		AgentCodeHash:     codeHash,
		ConstraintSetHash: [32]byte{0xBB},
		InputRoot:         [32]byte{0xCC},
		ExecutionNonce:    1,
	}
}

// A deposit/withdraw CALL pair against the all-permissive set
// succeeds, and the action commitment equals an independent
// computation over the canonicalized pair.
func TestExecuteSuccess(t *testing.T) {
	target := abi.AddressToTarget([20]byte{0x22})
	deposit := wire.Action{
		ActionType: wire.ActionTypeCall,
		Target:     target,
		Payload:    abi.EncodeCallPayload(1_000_000, nil),
	}
	withdraw := wire.Action{
		ActionType: wire.ActionTypeCall,
		Target:     target,
		Payload:    abi.EncodeCallPayload(0, []byte{0x51, 0xcf, 0xf8, 0xd9}),
	}

	agent := &testAgent{codeHash: [32]byte{0xAA}, actions: []wire.Action{deposit, withdraw}}
	inputBytes := encodeInput(t, baseInput(agent.codeHash))

	journalBytes, err := Execute(inputBytes, agent, constraint.Default())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	journal, err := wire.DecodeJournal(journalBytes)
	if err != nil {
		t.Fatalf("DecodeJournal: %v", err)
	}
	if journal.ExecutionStatus != wire.StatusSuccess {
		t.Fatalf("status = %v, want success", journal.ExecutionStatus)
	}

	// Identity fields mirror the input.
	input, err := wire.DecodeInput(inputBytes)
	if err != nil {
		t.Fatal(err)
	}
	if journal.AgentID != input.AgentID || journal.AgentCodeHash != input.AgentCodeHash ||
		journal.ConstraintSetHash != input.ConstraintSetHash || journal.InputRoot != input.InputRoot ||
		journal.ExecutionNonce != input.ExecutionNonce {
		t.Error("journal identity fields do not mirror the input")
	}

	if journal.InputCommitment != commit.Sum(inputBytes) {
		t.Error("input commitment does not cover the raw input bytes")
	}

	// Independent action commitment over the same pair.
	want, err := commit.ActionCommitment(wire.ActionSet{Actions: []wire.Action{deposit, withdraw}})
	if err != nil {
		t.Fatal(err)
	}
	if journal.ActionCommitment != want {
		t.Errorf("action commitment = %x, want %x", journal.ActionCommitment, want)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	agent := &testAgent{
		codeHash: [32]byte{0x01},
		actions: []wire.Action{{
			ActionType: wire.ActionTypeCall,
			Target:     abi.AddressToTarget([20]byte{0x33}),
			Payload:    abi.EncodeCallPayload(7, nil),
		}},
	}
	record := baseInput(agent.codeHash)
	record.OpaqueAgentInputs = []byte{1, 2, 3}
	inputBytes := encodeInput(t, record)

	var first []byte
	for run := 0; run < 3; run++ {
		journalBytes, err := Execute(inputBytes, agent, constraint.Default())
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if first == nil {
			first = journalBytes
			continue
		}
		if !bytes.Equal(journalBytes, first) {
			t.Fatalf("run %d produced different journal bytes", run)
		}
	}
}

func TestExecuteCodeHashMismatchIsFatal(t *testing.T) {
	agent := &testAgent{codeHash: [32]byte{0xAA}}
	record := baseInput(agent.codeHash)
	record.AgentCodeHash = [32]byte{0xEE}
	inputBytes := encodeInput(t, record)

	journalBytes, err := Execute(inputBytes, agent, constraint.Default())
	if !errors.Is(err, ErrAgentCodeHashMismatch) {
		t.Fatalf("got %v, want ErrAgentCodeHashMismatch", err)
	}
	if journalBytes != nil {
		t.Error("fatal abort still produced journal bytes")
	}
}

func TestExecuteMalformedInputIsFatal(t *testing.T) {
	agent := &testAgent{codeHash: [32]byte{0xAA}}

	if _, err := Execute(nil, agent, constraint.Default()); err == nil {
		t.Error("empty input executed")
	}

	valid := encodeInput(t, baseInput(agent.codeHash))
	if _, err := Execute(append(valid, 0x00), agent, constraint.Default()); err == nil {
		t.Error("trailing byte executed")
	}

	badVersion := bytes.Clone(valid)
	badVersion[0] = 9
	if _, err := Execute(badVersion, agent, constraint.Default()); err == nil {
		t.Error("bad protocol version executed")
	}
}

func TestExecuteViolationProducesFailureJournal(t *testing.T) {
	// An unknown action type is rejected by enforcement; the journal
	// must still come back, with the empty-output commitment.
	agent := &testAgent{
		codeHash: [32]byte{0xAA},
		actions:  []wire.Action{{ActionType: 0x7F}},
	}
	inputBytes := encodeInput(t, baseInput(agent.codeHash))

	journalBytes, err := Execute(inputBytes, agent, constraint.Default())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	journal, err := wire.DecodeJournal(journalBytes)
	if err != nil {
		t.Fatalf("DecodeJournal: %v", err)
	}
	if journal.ExecutionStatus != wire.StatusFailure {
		t.Errorf("status = %v, want failure", journal.ExecutionStatus)
	}
	if journal.ActionCommitment != commit.EmptyOutputCommitment {
		t.Errorf("action commitment = %x, want the empty-output constant", journal.ActionCommitment)
	}
	if journal.InputCommitment != commit.Sum(inputBytes) {
		t.Error("failure journal lost the input commitment")
	}
}

func TestExecuteRejectsWrappingCalldataLength(t *testing.T) {
	// An adversarial agent emitting a 96-byte CALL payload that
	// declares 2^64-17 bytes of calldata must not get a success
	// journal: the shape check rejects it before commitment.
	payload := abi.EncodeCallPayload(0, nil)
	binary.BigEndian.PutUint64(payload[3*abi.WordSize-8:3*abi.WordSize], ^uint64(0)-16)

	agent := &testAgent{
		codeHash: [32]byte{0xAA},
		actions: []wire.Action{{
			ActionType: wire.ActionTypeCall,
			Target:     abi.AddressToTarget([20]byte{0x22}),
			Payload:    payload,
		}},
	}
	inputBytes := encodeInput(t, baseInput(agent.codeHash))

	journalBytes, err := Execute(inputBytes, agent, constraint.Default())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	journal, err := wire.DecodeJournal(journalBytes)
	if err != nil {
		t.Fatalf("DecodeJournal: %v", err)
	}
	if journal.ExecutionStatus != wire.StatusFailure {
		t.Errorf("status = %v, want failure", journal.ExecutionStatus)
	}
	if journal.ActionCommitment != commit.EmptyOutputCommitment {
		t.Error("rejected proposal still committed actions")
	}
}

func TestExecuteBuildsContextFromInput(t *testing.T) {
	agent := &contextAgent{codeHash: [32]byte{0xAA}}
	record := baseInput(agent.codeHash)
	record.ExecutionNonce = 77
	record.OpaqueAgentInputs = []byte{5, 6}
	inputBytes := encodeInput(t, record)

	if _, err := Execute(inputBytes, agent, constraint.Default()); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := Context{
		ProtocolVersion:   wire.ProtocolVersion,
		KernelVersion:     wire.KernelVersion,
		AgentID:           record.AgentID,
		AgentCodeHash:     record.AgentCodeHash,
		ConstraintSetHash: record.ConstraintSetHash,
		InputRoot:         record.InputRoot,
		ExecutionNonce:    77,
	}
	if agent.seen != want {
		t.Errorf("context = %+v, want %+v", agent.seen, want)
	}
	if !bytes.Equal(agent.opaque, record.OpaqueAgentInputs) {
		t.Errorf("opaque inputs = %x, want %x", agent.opaque, record.OpaqueAgentInputs)
	}
}

func TestExecuteCanonicalizesBeforeCommitting(t *testing.T) {
	// Two agents emitting the same actions in opposite order must
	// produce identical journals.
	a := wire.Action{ActionType: wire.ActionTypeCall, Target: abi.AddressToTarget([20]byte{0x01}), Payload: abi.EncodeCallPayload(1, nil)}
	b := wire.Action{ActionType: wire.ActionTypeCall, Target: abi.AddressToTarget([20]byte{0x02}), Payload: abi.EncodeCallPayload(2, nil)}

	forward := &testAgent{codeHash: [32]byte{0xAA}, actions: []wire.Action{a, b}}
	reverse := &testAgent{codeHash: [32]byte{0xAA}, actions: []wire.Action{b, a}}
	inputBytes := encodeInput(t, baseInput(forward.codeHash))

	journalForward, err := Execute(inputBytes, forward, constraint.Default())
	if err != nil {
		t.Fatal(err)
	}
	journalReverse, err := Execute(inputBytes, reverse, constraint.Default())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(journalForward, journalReverse) {
		t.Error("authored order leaked into the journal")
	}
}
