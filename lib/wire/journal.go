// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "fmt"

// JournalSize is the fixed encoded size of a journal record:
// 4+4+32+32+32+32+8+32+32+1. The journal has no variable-length
// fields, so any other length fails decode outright.
const JournalSize = 209

// ExecutionStatus is the one-byte outcome of a kernel invocation.
// 0x00 is reserved/invalid so that uninitialized memory can never be
// read as a valid status; 0x03–0xFF are reserved for future use.
type ExecutionStatus uint8

const (
	// StatusSuccess means the agent's proposal passed constraint
	// enforcement and the action commitment covers the canonical
	// action set.
	StatusSuccess ExecutionStatus = 0x01

	// StatusFailure means constraint enforcement rejected the proposal.
	// The journal is still valid; its action commitment is the empty
	// action set constant.
	StatusFailure ExecutionStatus = 0x02
)

// Valid reports whether the status is one of the two defined values.
func (s ExecutionStatus) Valid() bool {
	return s == StatusSuccess || s == StatusFailure
}

// String returns "success", "failure", or the hex byte for anything
// undefined.
func (s ExecutionStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("invalid(0x%02x)", uint8(s))
	}
}

// JournalRecord is the sole externally-trusted output of one kernel
// invocation. The identity fields mirror the input record; the two
// commitments bind the proof to the exact input bytes consumed and
// the exact canonical action set approved.
type JournalRecord struct {
	ProtocolVersion   uint32
	KernelVersion     uint32
	AgentID           [32]byte
	AgentCodeHash     [32]byte
	ConstraintSetHash [32]byte
	InputRoot         [32]byte
	ExecutionNonce    uint64
	InputCommitment   [32]byte
	ActionCommitment  [32]byte
	ExecutionStatus   ExecutionStatus
}

// Encode returns the fixed 209-byte canonical encoding.
func (r *JournalRecord) Encode() ([]byte, error) {
	if r.ProtocolVersion != ProtocolVersion {
		return nil, &VersionError{Field: "protocol version", Expected: ProtocolVersion, Actual: r.ProtocolVersion}
	}
	if r.KernelVersion != KernelVersion {
		return nil, &VersionError{Field: "kernel version", Expected: KernelVersion, Actual: r.KernelVersion}
	}
	if !r.ExecutionStatus.Valid() {
		return nil, &StatusError{Status: byte(r.ExecutionStatus)}
	}

	buf := make([]byte, 0, JournalSize)
	buf = appendUint32(buf, r.ProtocolVersion)
	buf = appendUint32(buf, r.KernelVersion)
	buf = appendBytes32(buf, r.AgentID)
	buf = appendBytes32(buf, r.AgentCodeHash)
	buf = appendBytes32(buf, r.ConstraintSetHash)
	buf = appendBytes32(buf, r.InputRoot)
	buf = appendUint64(buf, r.ExecutionNonce)
	buf = appendBytes32(buf, r.InputCommitment)
	buf = appendBytes32(buf, r.ActionCommitment)
	buf = append(buf, byte(r.ExecutionStatus))
	return buf, nil
}

// DecodeJournal decodes a journal record. The input must be exactly
// JournalSize bytes.
func DecodeJournal(data []byte) (JournalRecord, error) {
	var record JournalRecord
	if len(data) < JournalSize {
		return record, ErrUnexpectedEndOfInput
	}
	if len(data) > JournalSize {
		return record, fmt.Errorf("%w: journal is %d bytes, want %d", ErrInvalidLength, len(data), JournalSize)
	}

	c := newCursor(data)

	protocolVersion, err := c.uint32()
	if err != nil {
		return record, err
	}
	if protocolVersion != ProtocolVersion {
		return record, &VersionError{Field: "protocol version", Expected: ProtocolVersion, Actual: protocolVersion}
	}
	kernelVersion, err := c.uint32()
	if err != nil {
		return record, err
	}
	if kernelVersion != KernelVersion {
		return record, &VersionError{Field: "kernel version", Expected: KernelVersion, Actual: kernelVersion}
	}

	record.ProtocolVersion = protocolVersion
	record.KernelVersion = kernelVersion
	if record.AgentID, err = c.bytes32(); err != nil {
		return JournalRecord{}, err
	}
	if record.AgentCodeHash, err = c.bytes32(); err != nil {
		return JournalRecord{}, err
	}
	if record.ConstraintSetHash, err = c.bytes32(); err != nil {
		return JournalRecord{}, err
	}
	if record.InputRoot, err = c.bytes32(); err != nil {
		return JournalRecord{}, err
	}
	if record.ExecutionNonce, err = c.uint64(); err != nil {
		return JournalRecord{}, err
	}
	if record.InputCommitment, err = c.bytes32(); err != nil {
		return JournalRecord{}, err
	}
	if record.ActionCommitment, err = c.bytes32(); err != nil {
		return JournalRecord{}, err
	}

	statusByte, err := c.byte()
	if err != nil {
		return JournalRecord{}, err
	}
	record.ExecutionStatus = ExecutionStatus(statusByte)
	if !record.ExecutionStatus.Valid() {
		return JournalRecord{}, &StatusError{Status: statusByte}
	}

	if err := c.finish(); err != nil {
		return JournalRecord{}, err
	}
	return record, nil
}
