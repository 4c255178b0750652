// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import "fmt"

// Action type identifiers. The tag space is open, but only these
// values are executable by the settlement vault; the constraint engine
// rejects anything else. The numeric values match the on-chain output
// parser and must never change.
const (
	// ActionTypeCall is a generic contract call. Payload is the
	// ABI encoding of (uint256 value, bytes calldata); the target
	// holds a left-padded 20-byte address.
	ActionTypeCall uint32 = 0x00000002

	// ActionTypeTransferERC20 transfers ERC20 tokens. Payload is the
	// ABI encoding of (address token, address to, uint256 amount),
	// exactly 96 bytes.
	ActionTypeTransferERC20 uint32 = 0x00000003

	// ActionTypeNoOp is a placeholder action with an empty payload.
	// The vault skips it.
	ActionTypeNoOp uint32 = 0x00000004
)

// Action limits. MaxActionsPerOutput is the protocol hard cap; a
// constraint set may lower the effective limit but never raise it.
const (
	MaxActionPayloadBytes = 16_384
	MaxActionsPerOutput   = 64

	// actionHeaderSize is the fixed portion of an action encoding:
	// type word, target, payload length prefix.
	actionHeaderSize = 4 + 32 + 4
)

// Action is one proposed on-chain-executable operation. Actions carry
// no ordering semantics of their own: only the canonical order derived
// by the commit package is ever committed.
type Action struct {
	ActionType uint32

	// Target is a 32-byte target identifier. For on-chain action types
	// it holds a 20-byte address left-padded with 12 zero bytes.
	Target [32]byte

	// Payload is action-specific data shaped per ActionType, at most
	// MaxActionPayloadBytes.
	Payload []byte
}

// ActionSet is an ordered list of at most MaxActionsPerOutput actions.
// The authored order is agent-chosen and not semantically meaningful.
type ActionSet struct {
	Actions []Action
}

// Encode returns the canonical encoding: a 4-byte count followed by
// each action's encoding concatenated. It encodes the actions in the
// order they appear — canonicalization is the commit package's job.
func (s *ActionSet) Encode() ([]byte, error) {
	if len(s.Actions) > MaxActionsPerOutput {
		return nil, fmt.Errorf("%w: %d actions, limit %d", ErrTooManyActions, len(s.Actions), MaxActionsPerOutput)
	}

	size := 4
	for i := range s.Actions {
		if len(s.Actions[i].Payload) > MaxActionPayloadBytes {
			return nil, fmt.Errorf("%w: action %d payload is %d bytes, limit %d",
				ErrActionPayloadTooLarge, i, len(s.Actions[i].Payload), MaxActionPayloadBytes)
		}
		size += actionHeaderSize + len(s.Actions[i].Payload)
	}

	buf := make([]byte, 0, size)
	buf = appendUint32(buf, uint32(len(s.Actions)))
	for i := range s.Actions {
		action := &s.Actions[i]
		buf = appendUint32(buf, action.ActionType)
		buf = appendBytes32(buf, action.Target)
		buf = appendVarBytes(buf, action.Payload)
	}
	return buf, nil
}

// DecodeActionSet decodes an action set, consuming the entire byte
// sequence.
func DecodeActionSet(data []byte) (ActionSet, error) {
	c := newCursor(data)

	count, err := c.uint32()
	if err != nil {
		return ActionSet{}, err
	}
	if count > MaxActionsPerOutput {
		return ActionSet{}, fmt.Errorf("%w: %d actions, limit %d", ErrTooManyActions, count, MaxActionsPerOutput)
	}

	set := ActionSet{Actions: make([]Action, 0, count)}
	for i := uint32(0); i < count; i++ {
		var action Action
		if action.ActionType, err = c.uint32(); err != nil {
			return ActionSet{}, err
		}
		if action.Target, err = c.bytes32(); err != nil {
			return ActionSet{}, err
		}
		if action.Payload, err = c.varBytes(MaxActionPayloadBytes, ErrActionPayloadTooLarge); err != nil {
			return ActionSet{}, err
		}
		set.Actions = append(set.Actions, action)
	}

	if err := c.finish(); err != nil {
		return ActionSet{}, err
	}
	return set, nil
}
