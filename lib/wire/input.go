// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "fmt"

// Protocol constants. These values are consensus-critical: they bind
// proofs to a specific wire format generation and execution semantics,
// and the settlement layer rejects journals carrying anything else.
const (
	// ProtocolVersion is the wire format generation.
	ProtocolVersion uint32 = 1

	// KernelVersion declares which execution semantics are being proven.
	KernelVersion uint32 = 1

	// MaxAgentInputBytes caps the opaque agent input payload.
	MaxAgentInputBytes = 64_000

	// InputHeaderSize is the fixed portion of an input record encoding:
	// two version words, four 32-byte identity fields, and the nonce.
	InputHeaderSize = 4 + 4 + 32 + 32 + 32 + 32 + 8

	// MinInputSize is the encoding of an input record with an empty
	// opaque payload: the fixed header plus the 4-byte length prefix.
	MinInputSize = InputHeaderSize + 4
)

// InputRecord carries the identity and execution parameters for one
// kernel invocation. It is constructed once per invocation from
// caller-supplied bytes and never mutated after decode.
//
// ExecutionNonce must be strictly increasing across invocations for a
// given agent — that ordering is enforced by the settlement layer, not
// here; the kernel only records the nonce faithfully into the journal.
type InputRecord struct {
	ProtocolVersion   uint32
	KernelVersion     uint32
	AgentID           [32]byte
	AgentCodeHash     [32]byte
	ConstraintSetHash [32]byte
	InputRoot         [32]byte
	ExecutionNonce    uint64

	// OpaqueAgentInputs is agent-specific input data, at most
	// MaxAgentInputBytes. When drawdown or cooldown policy is active,
	// a 36-byte state snapshot is carried as its prefix.
	OpaqueAgentInputs []byte
}

// Encode returns the canonical encoding of the input record. Encoding
// a record with mismatched versions or an oversized opaque payload
// fails rather than producing bytes no conforming decoder would accept.
func (r *InputRecord) Encode() ([]byte, error) {
	if r.ProtocolVersion != ProtocolVersion {
		return nil, &VersionError{Field: "protocol version", Expected: ProtocolVersion, Actual: r.ProtocolVersion}
	}
	if r.KernelVersion != KernelVersion {
		return nil, &VersionError{Field: "kernel version", Expected: KernelVersion, Actual: r.KernelVersion}
	}
	if len(r.OpaqueAgentInputs) > MaxAgentInputBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(r.OpaqueAgentInputs), MaxAgentInputBytes)
	}

	buf := make([]byte, 0, MinInputSize+len(r.OpaqueAgentInputs))
	buf = appendUint32(buf, r.ProtocolVersion)
	buf = appendUint32(buf, r.KernelVersion)
	buf = appendBytes32(buf, r.AgentID)
	buf = appendBytes32(buf, r.AgentCodeHash)
	buf = appendBytes32(buf, r.ConstraintSetHash)
	buf = appendBytes32(buf, r.InputRoot)
	buf = appendUint64(buf, r.ExecutionNonce)
	buf = appendVarBytes(buf, r.OpaqueAgentInputs)
	return buf, nil
}

// DecodeInput decodes an input record, consuming the entire byte
// sequence. Version fields are validated against the protocol
// constants as part of decoding.
func DecodeInput(data []byte) (InputRecord, error) {
	var record InputRecord
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
		return InputRecord{}, err
	}
	if record.AgentCodeHash, err = c.bytes32(); err != nil {
		return InputRecord{}, err
	}
	if record.ConstraintSetHash, err = c.bytes32(); err != nil {
		return InputRecord{}, err
	}
	if record.InputRoot, err = c.bytes32(); err != nil {
		return InputRecord{}, err
	}
	if record.ExecutionNonce, err = c.uint64(); err != nil {
		return InputRecord{}, err
	}
	if record.OpaqueAgentInputs, err = c.varBytes(MaxAgentInputBytes, ErrInputTooLarge); err != nil {
		return InputRecord{}, err
	}
	if err := c.finish(); err != nil {
		return InputRecord{}, err
	}
	return record, nil
}
