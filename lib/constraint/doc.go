// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package constraint implements the safety-policy enforcement engine.
// It accepts or rejects a canonicalized action set against a
// constraint set and an externally-supplied state snapshot, returning
// the first violation found — it never modifies the proposal and never
// accumulates multiple violations.
//
// Check order is fixed: constraint-set validity, then output
// structure, then per-action type and payload shape, then the global
// drawdown/cooldown checks against the state snapshot, then the
// per-action economic checks (position size, leverage, asset
// whitelist). First failure wins.
//
// A violation's action index refers to the position in the canonical
// (sorted) action order, not the order the agent emitted — the engine
// only ever sees canonicalized sets, and the committed order is the
// canonical one.
package constraint
