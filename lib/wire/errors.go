// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"
)

// Sentinel decode/encode errors. Size-limit errors are wrapped with
// fmt.Errorf so messages carry the offending size; match them with
// errors.Is.
var (
	// ErrUnexpectedEndOfInput means the byte sequence ended before the
	// structure was fully decoded.
	ErrUnexpectedEndOfInput = errors.New("wire: unexpected end of input")

	// ErrInvalidLength means the byte sequence was longer than the
	// structure it encodes — trailing bytes are never ignored.
	ErrInvalidLength = errors.New("wire: encoding has trailing bytes")

	// ErrInputTooLarge means an input record's opaque agent inputs
	// exceed MaxAgentInputBytes.
	ErrInputTooLarge = errors.New("wire: opaque agent inputs too large")

	// ErrTooManyActions means an action set's count exceeds
	// MaxActionsPerOutput.
	ErrTooManyActions = errors.New("wire: too many actions")

	// ErrActionPayloadTooLarge means an action's payload exceeds
	// MaxActionPayloadBytes.
	ErrActionPayloadTooLarge = errors.New("wire: action payload too large")
)

// VersionError reports a protocol or kernel version field that does
// not equal the fixed constant for this protocol generation.
type VersionError struct {
	// Field names the version field that failed ("protocol version",
	// "kernel version", or "snapshot version").
	Field string

	// Expected is the fixed constant the field must equal.
	Expected uint32

	// Actual is the value found on the wire.
	Actual uint32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("wire: %s is %d, want %d", e.Field, e.Actual, e.Expected)
}

// StatusError reports an execution status byte outside the valid
// {0x01, 0x02} range. 0x00 is reserved so uninitialized memory can
// never be read as a successful execution.
type StatusError struct {
	// Status is the invalid byte found on the wire.
	Status byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wire: invalid execution status byte 0x%02x", e.Status)
}
