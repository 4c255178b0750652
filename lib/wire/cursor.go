// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
)

// cursor is a bounds-checked little-endian reader over a byte slice.
// Every read advances the position; a read past the end fails with
// ErrUnexpectedEndOfInput and leaves the position unchanged. After a
// full decode, finish verifies that the structure consumed every byte.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

// remaining returns the number of unread bytes.
func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) uint32() (uint32, error) {
	if c.remaining() < 4 {
		return 0, ErrUnexpectedEndOfInput
	}
	value := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return value, nil
}

func (c *cursor) uint64() (uint64, error) {
	if c.remaining() < 8 {
		return 0, ErrUnexpectedEndOfInput
	}
	value := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return value, nil
}

func (c *cursor) byte() (byte, error) {
	if c.remaining() < 1 {
		return 0, ErrUnexpectedEndOfInput
	}
	value := c.data[c.pos]
	c.pos++
	return value, nil
}

func (c *cursor) bytes32() ([32]byte, error) {
	var value [32]byte
	if c.remaining() < 32 {
		return value, ErrUnexpectedEndOfInput
	}
	copy(value[:], c.data[c.pos:c.pos+32])
	c.pos += 32
	return value, nil
}

// varBytes reads a 4-byte length prefix followed by that many bytes.
// The length is checked against limit before any allocation; the
// returned slice is a copy, never an alias into the input.
func (c *cursor) varBytes(limit int, limitErr error) ([]byte, error) {
	length, err := c.uint32()
	if err != nil {
		return nil, err
	}
	if int64(length) > int64(limit) {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", limitErr, length, limit)
	}
	if c.remaining() < int(length) {
		return nil, ErrUnexpectedEndOfInput
	}
	data := make([]byte, length)
	copy(data, c.data[c.pos:c.pos+int(length)])
	c.pos += int(length)
	return data, nil
}

// finish fails with ErrInvalidLength if any byte was left unconsumed.
func (c *cursor) finish() error {
	if c.pos != len(c.data) {
		return fmt.Errorf("%w: %d of %d bytes consumed", ErrInvalidLength, c.pos, len(c.data))
	}
	return nil
}

// Append-style writers. Encoding cannot fail at this level; size and
// version validation happens in each record's Encode before any byte
// is written.

func appendUint32(buf []byte, value uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, value)
}

func appendUint64(buf []byte, value uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, value)
}

func appendBytes32(buf []byte, value [32]byte) []byte {
	return append(buf, value[:]...)
}

func appendVarBytes(buf []byte, data []byte) []byte {
	buf = appendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}
