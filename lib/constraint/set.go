// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package constraint

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/verikernel-foundation/verikernel/lib/commit"
	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// SetVersion is the only accepted constraint set version.
const SetVersion uint32 = 1

// MaxDrawdownBpsLimit is the upper bound on a set's drawdown limit:
// 10,000 basis points = 100%, which disables the check.
const MaxDrawdownBpsLimit = 10_000

// EncodedSetSize is the fixed canonical encoding size of a constraint
// set: 4+8+4+4+4+4+32.
const EncodedSetSize = 60

// Set is a safety policy for agent proposals. A specific set is bound
// to an invocation through the constraint_set_hash field of the input
// record; computing and verifying that binding is the caller's job
// (see Hash), not the engine's.
type Set struct {
	// Version must equal SetVersion.
	Version uint32

	// MaxPositionNotional caps the economic value a single action may
	// move, in base units.
	MaxPositionNotional uint64

	// MaxLeverageBps caps per-action notional relative to current
	// equity, in basis points.
	MaxLeverageBps uint32

	// MaxDrawdownBps caps the decline from peak equity, in basis
	// points. 10,000 disables the check.
	MaxDrawdownBps uint32

	// CooldownSeconds is the minimum time between executions. Zero
	// disables the check.
	CooldownSeconds uint32

	// MaxActionsPerOutput caps the action count. Must not exceed the
	// protocol hard cap of 64.
	MaxActionsPerOutput uint32

	// AllowedAssetID restricts actions to a single asset. All zeros
	// allows every asset.
	AllowedAssetID [32]byte
}

// Default returns the all-permissive constraint set: no position or
// asset restrictions, 10x leverage, drawdown and cooldown disabled,
// action count at the protocol cap.
func Default() Set {
	return Set{
		Version:             SetVersion,
		MaxPositionNotional: math.MaxUint64,
		MaxLeverageBps:      100_000,
		MaxDrawdownBps:      MaxDrawdownBpsLimit,
		CooldownSeconds:     0,
		MaxActionsPerOutput: wire.MaxActionsPerOutput,
	}
}

// Validate checks the set's own invariants: the fixed version, the
// protocol hard cap on actions, and the 100% bound on drawdown.
func (s *Set) Validate() error {
	if s.Version != SetVersion {
		return fmt.Errorf("constraint set version is %d, want %d", s.Version, SetVersion)
	}
	if s.MaxActionsPerOutput > wire.MaxActionsPerOutput {
		return fmt.Errorf("max_actions_per_output is %d, protocol cap is %d", s.MaxActionsPerOutput, wire.MaxActionsPerOutput)
	}
	if s.MaxDrawdownBps > MaxDrawdownBpsLimit {
		return fmt.Errorf("max_drawdown_bps is %d, cap is %d", s.MaxDrawdownBps, MaxDrawdownBpsLimit)
	}
	return nil
}

// Encode returns the fixed 60-byte little-endian canonical encoding.
// This is the byte form the constraint_set_hash binding covers.
func (s *Set) Encode() []byte {
	buf := make([]byte, 0, EncodedSetSize)
	buf = binary.LittleEndian.AppendUint32(buf, s.Version)
	buf = binary.LittleEndian.AppendUint64(buf, s.MaxPositionNotional)
	buf = binary.LittleEndian.AppendUint32(buf, s.MaxLeverageBps)
	buf = binary.LittleEndian.AppendUint32(buf, s.MaxDrawdownBps)
	buf = binary.LittleEndian.AppendUint32(buf, s.CooldownSeconds)
	buf = binary.LittleEndian.AppendUint32(buf, s.MaxActionsPerOutput)
	buf = append(buf, s.AllowedAssetID[:]...)
	return buf
}

// Hash returns the SHA-256 commitment of the canonical encoding. The
// settlement layer compares this against the input record's
// constraint_set_hash to verify the right policy was enforced.
func (s *Set) Hash() [32]byte {
	return commit.Sum(s.Encode())
}
