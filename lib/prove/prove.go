// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

// Package prove abstracts the proving backend. The kernel itself never
// sees this interface; hosts use it to obtain a journal plus a seal
// attesting that the journal was produced by the named binary.
package prove

import (
	"context"
	"fmt"

	"github.com/verikernel-foundation/verikernel/lib/constraint"
	"github.com/verikernel-foundation/verikernel/lib/kernel"
)

// Prover turns a proving-environment binary and input bytes into a
// journal and a seal. Implementations may call remote proving
// services; the binary bytes identify the exact guest program.
type Prover interface {
	// Prove executes the binary over the input bytes inside the proving
	// environment and returns the journal it committed plus the seal.
	// Fatal kernel errors surface as errors with no journal.
	Prove(ctx context.Context, binary, inputBytes []byte) (journal, seal []byte, err error)
}

// LocalProver runs the kernel natively instead of inside a proving
// environment. The journal is bit-identical to what a real prover
// would commit, but the seal is empty: there is no cryptographic
// attestation, only deterministic re-execution. Intended for tests and
// development hosts.
type LocalProver struct {
	// Agent is the decision logic linked into the notional binary.
	Agent kernel.Agent

	// ConstraintSet is the policy enforced during execution.
	ConstraintSet constraint.Set
}

var _ Prover = (*LocalProver)(nil)

// Prove executes the kernel in-process. The binary bytes are ignored;
// the linked Agent stands in for the guest program.
func (p *LocalProver) Prove(ctx context.Context, _, inputBytes []byte) ([]byte, []byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	journal, err := kernel.Execute(inputBytes, p.Agent, p.ConstraintSet)
	if err != nil {
		return nil, nil, fmt.Errorf("local execution: %w", err)
	}
	return journal, nil, nil
}
