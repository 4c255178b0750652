// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle loads and verifies agent bundles: a manifest plus the
// proving-environment binary it commits to. A loaded bundle supplies
// the identity triple the host needs to build inputs — agent ID, agent
// code hash, and the raw binary bytes handed to the prover.
//
// Manifests are authored as JSONC (JSON extended with comments and
// trailing commas); hashes are 64-character hex strings.
package bundle
