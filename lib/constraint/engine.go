// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package constraint

import (
	"math/bits"

	"github.com/verikernel-foundation/verikernel/lib/abi"
	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// Enforce validates a canonicalized action set against a constraint
// set and the state snapshot carried in the input's opaque bytes.
// It returns nil on acceptance or the first violation found. The
// proposal is never modified.
//
// The function is pure: no I/O, no clock, no randomness. The current
// timestamp used by the cooldown check comes from the snapshot, which
// the input root commits to externally.
func Enforce(input *wire.InputRecord, canonical *wire.ActionSet, set *Set) *Violation {
	// 1. The policy itself must be well-formed. A bad policy is a
	// configuration fault, reported globally rather than pinned on an
	// action.
	if set.Validate() != nil {
		return global(InvalidConstraintSet)
	}

	// 2. Output structure.
	if len(canonical.Actions) > int(set.MaxActionsPerOutput) {
		return global(InvalidOutputStructure)
	}
	for index := range canonical.Actions {
		if len(canonical.Actions[index].Payload) > wire.MaxActionPayloadBytes {
			return at(InvalidOutputStructure, index)
		}
	}

	// 3. Per-action type and payload shape.
	for index := range canonical.Actions {
		if v := validateActionShape(&canonical.Actions[index], index); v != nil {
			return v
		}
	}

	// 4. Drawdown and cooldown, when the policy activates them. The
	// snapshot rides as the prefix of the opaque agent inputs; the
	// default permissive set never looks at it.
	var snapshot *wire.StateSnapshot
	if set.CooldownSeconds > 0 || set.MaxDrawdownBps < MaxDrawdownBpsLimit {
		decoded, err := wire.DecodeStateSnapshotPrefix(input.OpaqueAgentInputs)
		if err != nil {
			return global(InvalidStateSnapshot)
		}
		snapshot = &decoded

		if v := checkDrawdown(snapshot, set); v != nil {
			return v
		}
		if v := checkCooldown(snapshot, set); v != nil {
			return v
		}
	}

	// 5. Per-action economic checks, in canonical order.
	for index := range canonical.Actions {
		if v := checkActionEconomics(&canonical.Actions[index], index, set, snapshot); v != nil {
			return v
		}
	}

	return nil
}

// validateActionShape checks that the action type is executable and
// its payload matches the type's ABI convention.
func validateActionShape(action *wire.Action, index int) *Violation {
	switch action.ActionType {
	case wire.ActionTypeCall:
		if !abi.IsPaddedAddress(action.Target) {
			return at(InvalidActionPayload, index)
		}
		if !abi.ValidCallPayload(action.Payload) {
			return at(InvalidActionPayload, index)
		}
		return nil

	case wire.ActionTypeTransferERC20:
		if !abi.ValidTransferPayload(action.Payload) {
			return at(InvalidActionPayload, index)
		}
		return nil

	case wire.ActionTypeNoOp:
		if len(action.Payload) != 0 {
			return at(InvalidActionPayload, index)
		}
		return nil

	default:
		return at(UnknownActionType, index)
	}
}

// checkDrawdown verifies equity has not declined from its peak by more
// than the policy allows. drawdown_bps = (peak - current) * 10000 / peak.
func checkDrawdown(snapshot *wire.StateSnapshot, set *Set) *Violation {
	if set.MaxDrawdownBps >= MaxDrawdownBpsLimit {
		return nil
	}
	if snapshot.PeakEquity == 0 {
		// A drawdown policy against zero peak equity is meaningless;
		// the snapshot cannot be trusted.
		return global(InvalidStateSnapshot)
	}

	decline := snapshot.PeakEquity - min(snapshot.CurrentEquity, snapshot.PeakEquity)
	// 128-bit multiply: decline * 10000 can exceed 64 bits.
	if u128GreaterThan(mul128(decline, MaxDrawdownBpsLimit), mul128(uint64(set.MaxDrawdownBps), snapshot.PeakEquity)) {
		return global(DrawdownExceeded)
	}
	return nil
}

// checkCooldown verifies enough time has passed since the last
// execution.
func checkCooldown(snapshot *wire.StateSnapshot, set *Set) *Violation {
	if set.CooldownSeconds == 0 {
		return nil
	}
	requiredTS, carry := addCheck(snapshot.LastExecutionTS, uint64(set.CooldownSeconds))
	if carry {
		// A last-execution timestamp near the uint64 ceiling is not a
		// plausible clock value; reject the snapshot.
		return global(InvalidStateSnapshot)
	}
	if snapshot.CurrentTS < requiredTS {
		return global(CooldownNotElapsed)
	}
	return nil
}

// checkActionEconomics applies the position, leverage, and asset
// whitelist checks to one action, using the notional and asset decoded
// from its payload. No-ops move no value and are skipped.
func checkActionEconomics(action *wire.Action, index int, set *Set, snapshot *wire.StateSnapshot) *Violation {
	var notional uint64
	var asset [32]byte
	switch action.ActionType {
	case wire.ActionTypeCall:
		value, ok := abi.CallValue(action.Payload)
		if !ok {
			// Value exceeds 64 bits: larger than any expressible cap.
			return at(PositionTooLarge, index)
		}
		notional = value
		asset = action.Target

	case wire.ActionTypeTransferERC20:
		amount, ok := abi.TransferAmount(action.Payload)
		if !ok {
			return at(PositionTooLarge, index)
		}
		notional = amount
		asset, _ = abi.TransferToken(action.Payload)

	default:
		return nil
	}

	if notional > set.MaxPositionNotional {
		return at(PositionTooLarge, index)
	}

	// Leverage needs equity context; without an active snapshot the
	// check cannot be evaluated and is skipped.
	if snapshot != nil && notional > 0 {
		if snapshot.CurrentEquity == 0 {
			return at(LeverageTooHigh, index)
		}
		// notional / equity > max_bps / 10000, compared in 128 bits.
		if u128GreaterThan(mul128(notional, MaxDrawdownBpsLimit), mul128(uint64(set.MaxLeverageBps), snapshot.CurrentEquity)) {
			return at(LeverageTooHigh, index)
		}
	}

	if set.AllowedAssetID != [32]byte{} && asset != set.AllowedAssetID {
		return at(AssetNotWhitelisted, index)
	}
	return nil
}

// u128 is an unsigned 128-bit product.
type u128 struct {
	hi, lo uint64
}

func mul128(a, b uint64) u128 {
	hi, lo := bits.Mul64(a, b)
	return u128{hi: hi, lo: lo}
}

func u128GreaterThan(a, b u128) bool {
	if a.hi != b.hi {
		return a.hi > b.hi
	}
	return a.lo > b.lo
}

// addCheck adds two uint64 values and reports overflow.
func addCheck(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry != 0
}
