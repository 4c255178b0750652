// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package constraint

import "fmt"

// Reason identifies which constraint was violated. The numeric codes
// are stable protocol values and must not be renumbered.
type Reason uint8

const (
	// InvalidOutputStructure means the proposal's shape is wrong:
	// too many actions for the policy, or an oversized payload.
	InvalidOutputStructure Reason = 0x01

	// UnknownActionType means an action's type is not one of the
	// protocol-recognized executable types.
	UnknownActionType Reason = 0x02

	// AssetNotWhitelisted means an action touches an asset outside the
	// policy's allowed asset.
	AssetNotWhitelisted Reason = 0x03

	// PositionTooLarge means an action's notional exceeds the policy's
	// position cap.
	PositionTooLarge Reason = 0x04

	// LeverageTooHigh means an action's notional relative to current
	// equity exceeds the policy's leverage cap.
	LeverageTooHigh Reason = 0x05

	// DrawdownExceeded means equity has declined from its peak by more
	// basis points than the policy allows.
	DrawdownExceeded Reason = 0x06

	// CooldownNotElapsed means not enough time has passed since the
	// last execution.
	CooldownNotElapsed Reason = 0x07

	// InvalidStateSnapshot means the drawdown/cooldown policy is
	// active but the state snapshot is missing, malformed, or
	// internally inconsistent.
	InvalidStateSnapshot Reason = 0x08

	// InvalidConstraintSet means the constraint set itself is
	// misconfigured. This is a policy fault, not an agent fault.
	InvalidConstraintSet Reason = 0x09

	// InvalidActionPayload means an action's payload does not match
	// the required shape for its type.
	InvalidActionPayload Reason = 0x0A
)

// String returns the reason's name.
func (r Reason) String() string {
	switch r {
	case InvalidOutputStructure:
		return "invalid output structure"
	case UnknownActionType:
		return "unknown action type"
	case AssetNotWhitelisted:
		return "asset not whitelisted"
	case PositionTooLarge:
		return "position too large"
	case LeverageTooHigh:
		return "leverage too high"
	case DrawdownExceeded:
		return "drawdown exceeded"
	case CooldownNotElapsed:
		return "cooldown not elapsed"
	case InvalidStateSnapshot:
		return "invalid state snapshot"
	case InvalidConstraintSet:
		return "invalid constraint set"
	case InvalidActionPayload:
		return "invalid action payload"
	default:
		return fmt.Sprintf("unknown(0x%02x)", uint8(r))
	}
}

// Violation is the single first violation the engine found.
type Violation struct {
	// Reason identifies the failed check.
	Reason Reason

	// ActionIndex is the position of the violating action in the
	// canonical (sorted) order, or -1 for global violations
	// (structure, snapshot, policy misconfiguration).
	ActionIndex int
}

// Violation implements error so callers can log or wrap it; the
// kernel converts it into a Failure journal rather than propagating.
func (v *Violation) Error() string {
	if v.ActionIndex < 0 {
		return fmt.Sprintf("constraint violation: %s", v.Reason)
	}
	return fmt.Sprintf("constraint violation: %s (action %d)", v.Reason, v.ActionIndex)
}

// global builds a violation not attributable to a single action.
func global(reason Reason) *Violation {
	return &Violation{Reason: reason, ActionIndex: -1}
}

// at builds a violation attributed to the action at the given
// canonical index.
func at(reason Reason, index int) *Violation {
	return &Violation{Reason: reason, ActionIndex: index}
}
