// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// StateSnapshotVersion is the only accepted snapshot version.
const StateSnapshotVersion uint32 = 1

// StateSnapshotSize is the fixed encoded size: 4+8+8+8+8.
const StateSnapshotSize = 36

// StateSnapshot is the externally-supplied equity and timestamp
// context consulted by the drawdown and cooldown checks. When that
// policy is active, the snapshot is carried as the leading 36 bytes of
// an input record's opaque agent inputs.
type StateSnapshot struct {
	Version         uint32
	LastExecutionTS uint64
	CurrentTS       uint64
	CurrentEquity   uint64
	PeakEquity      uint64
}

// Encode returns the fixed 36-byte encoding.
func (s *StateSnapshot) Encode() []byte {
	buf := make([]byte, 0, StateSnapshotSize)
	buf = appendUint32(buf, s.Version)
	buf = appendUint64(buf, s.LastExecutionTS)
	buf = appendUint64(buf, s.CurrentTS)
	buf = appendUint64(buf, s.CurrentEquity)
	buf = appendUint64(buf, s.PeakEquity)
	return buf
}

// DecodeStateSnapshot decodes a standalone snapshot; the input must be
// exactly StateSnapshotSize bytes.
func DecodeStateSnapshot(data []byte) (StateSnapshot, error) {
	snapshot, err := DecodeStateSnapshotPrefix(data)
	if err != nil {
		return StateSnapshot{}, err
	}
	if len(data) != StateSnapshotSize {
		return StateSnapshot{}, ErrInvalidLength
	}
	return snapshot, nil
}

// DecodeStateSnapshotPrefix decodes a snapshot from the leading bytes
// of data, ignoring anything after the 36-byte snapshot. This is the
// form the constraint engine uses on opaque agent inputs, where the
// snapshot is a prefix followed by agent-specific data.
func DecodeStateSnapshotPrefix(data []byte) (StateSnapshot, error) {
	if len(data) < StateSnapshotSize {
		return StateSnapshot{}, ErrUnexpectedEndOfInput
	}

	c := newCursor(data[:StateSnapshotSize])
	var snapshot StateSnapshot
	var err error
	if snapshot.Version, err = c.uint32(); err != nil {
		return StateSnapshot{}, err
	}
	if snapshot.Version != StateSnapshotVersion {
		return StateSnapshot{}, &VersionError{Field: "snapshot version", Expected: StateSnapshotVersion, Actual: snapshot.Version}
	}
	if snapshot.LastExecutionTS, err = c.uint64(); err != nil {
		return StateSnapshot{}, err
	}
	if snapshot.CurrentTS, err = c.uint64(); err != nil {
		return StateSnapshot{}, err
	}
	if snapshot.CurrentEquity, err = c.uint64(); err != nil {
		return StateSnapshot{}, err
	}
	if snapshot.PeakEquity, err = c.uint64(); err != nil {
		return StateSnapshot{}, err
	}
	return snapshot, nil
}
