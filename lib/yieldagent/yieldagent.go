// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package yieldagent is the reference agent: deposit native value into
// a yield source, then withdraw it back to the vault. It exists to
// exercise the full kernel pipeline end to end and to document the
// agent contract by example.
package yieldagent

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/verikernel-foundation/verikernel/lib/abi"
	"github.com/verikernel-foundation/verikernel/lib/kernel"
	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// InputSize is the exact opaque input this agent accepts: vault
// address, yield source address, transfer amount.
const InputSize = 20 + 20 + 8

// withdrawSelector is keccak256("withdraw(address)")[:4].
var withdrawSelector = [4]byte{0x51, 0xcf, 0xf8, 0xd9}

// codeHashSeed is the build identity the agent commits to. In a real
// deployment this is the hash of the proving-environment binary; the
// reference agent derives it from a fixed version string so tests and
// the host pipeline agree on one value.
const codeHashSeed = "verikernel/yieldagent/v1"

// Agent implements the kernel agent contract for the yield strategy.
// The zero value is ready to use.
type Agent struct{}

var _ kernel.Agent = Agent{}

// CodeHash returns the agent's build identity commitment.
func (Agent) CodeHash() [32]byte {
	return sha256.Sum256([]byte(codeHashSeed))
}

// Evaluate proposes two CALL actions against the yield source: a
// deposit carrying the transfer amount with empty calldata, and a
// zero-value withdraw(vault) call. Inputs of the wrong size produce an
// empty set; constraint enforcement decides whether that is acceptable.
//
// Input layout: vault address [0:20], yield source address [20:40],
// transfer amount as little-endian u64 [40:48].
func (Agent) Evaluate(_ kernel.Context, opaqueInputs []byte) wire.ActionSet {
	if len(opaqueInputs) != InputSize {
		return wire.ActionSet{}
	}

	var vault, yieldSource [abi.AddressSize]byte
	copy(vault[:], opaqueInputs[0:20])
	copy(yieldSource[:], opaqueInputs[20:40])
	amount := binary.LittleEndian.Uint64(opaqueInputs[40:48])

	target := abi.AddressToTarget(yieldSource)

	deposit := wire.Action{
		ActionType: wire.ActionTypeCall,
		Target:     target,
		Payload:    abi.EncodeCallPayload(amount, nil),
	}
	withdraw := wire.Action{
		ActionType: wire.ActionTypeCall,
		Target:     target,
		Payload:    abi.EncodeCallPayload(0, withdrawCalldata(vault)),
	}

	return wire.ActionSet{Actions: []wire.Action{deposit, withdraw}}
}

// withdrawCalldata encodes withdraw(address): the 4-byte selector
// followed by the left-padded depositor address.
func withdrawCalldata(depositor [abi.AddressSize]byte) []byte {
	calldata := make([]byte, 0, 4+abi.WordSize)
	calldata = append(calldata, withdrawSelector[:]...)
	padded := abi.AddressToTarget(depositor)
	calldata = append(calldata, padded[:]...)
	return calldata
}

// BuildInput assembles the 48-byte opaque input for this agent.
func BuildInput(vault, yieldSource [abi.AddressSize]byte, amount uint64) []byte {
	input := make([]byte, 0, InputSize)
	input = append(input, vault[:]...)
	input = append(input, yieldSource[:]...)
	input = binary.LittleEndian.AppendUint64(input, amount)
	return input
}
