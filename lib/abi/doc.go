// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package abi implements the fixed payload conventions for on-chain
// executable actions: left-padded 20-byte addresses inside 32-byte
// words, the 96-byte CALL payload header (uint256 value, bytes
// calldata), and the 96-byte TRANSFER_ERC20 payload (address token,
// address to, uint256 amount).
//
// Word-level integers follow the EVM ABI and are big-endian, unlike
// the protocol wire format. Reads that extract economic values reject
// anything that does not fit in 64 bits — the constraint engine
// compares them against uint64 policy limits, and a larger value
// always exceeds the limit.
package abi
