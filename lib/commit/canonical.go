// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package commit

import (
	"bytes"
	"slices"

	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// Canonicalize returns a copy of the action set sorted into canonical
// order: ascending by action type, then by target bytes
// lexicographically. The sort is stable, so actions with equal
// (type, target) keep their authored relative order — duplicate pairs
// with different payloads are legal, and their committed order must
// still be deterministic.
//
// The input set is never mutated; every caller owns its values
// exclusively and the kernel must not share state across invocations.
func Canonicalize(set wire.ActionSet) wire.ActionSet {
	canonical := wire.ActionSet{Actions: slices.Clone(set.Actions)}
	slices.SortStableFunc(canonical.Actions, compareActions)
	return canonical
}

// compareActions orders by (action_type, target). Payload is
// deliberately excluded: the tie-break for equal keys is authored
// order, provided by the stable sort.
func compareActions(a, b wire.Action) int {
	if a.ActionType != b.ActionType {
		if a.ActionType < b.ActionType {
			return -1
		}
		return 1
	}
	return bytes.Compare(a.Target[:], b.Target[:])
}
