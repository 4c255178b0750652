// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package constraint

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// setFile is the YAML form of a constraint set. Absent fields take the
// permissive defaults, so an operator writing a policy only states the
// limits they mean to impose.
type setFile struct {
	Version             *uint32 `yaml:"version"`
	MaxPositionNotional *uint64 `yaml:"max_position_notional"`
	MaxLeverageBps      *uint32 `yaml:"max_leverage_bps"`
	MaxDrawdownBps      *uint32 `yaml:"max_drawdown_bps"`
	CooldownSeconds     *uint32 `yaml:"cooldown_seconds"`
	MaxActionsPerOutput *uint32 `yaml:"max_actions_per_output"`
	AllowedAssetID      string  `yaml:"allowed_asset_id"`
}

// Parse decodes a YAML constraint set. Fields not present keep the
// Default values; allowed_asset_id is a 64-character hex string (or
// empty for no restriction). The resulting set is validated.
func Parse(data []byte) (Set, error) {
	var file setFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Set{}, fmt.Errorf("parsing constraint set: %w", err)
	}

	set := Default()
	if file.Version != nil {
		set.Version = *file.Version
	}
	if file.MaxPositionNotional != nil {
		set.MaxPositionNotional = *file.MaxPositionNotional
	}
	if file.MaxLeverageBps != nil {
		set.MaxLeverageBps = *file.MaxLeverageBps
	}
	if file.MaxDrawdownBps != nil {
		set.MaxDrawdownBps = *file.MaxDrawdownBps
	}
	if file.CooldownSeconds != nil {
		set.CooldownSeconds = *file.CooldownSeconds
	}
	if file.MaxActionsPerOutput != nil {
		set.MaxActionsPerOutput = *file.MaxActionsPerOutput
	}
	if file.AllowedAssetID != "" {
		decoded, err := hex.DecodeString(file.AllowedAssetID)
		if err != nil {
			return Set{}, fmt.Errorf("parsing allowed_asset_id: %w", err)
		}
		if len(decoded) != len(set.AllowedAssetID) {
			return Set{}, fmt.Errorf("allowed_asset_id is %d bytes, want %d", len(decoded), len(set.AllowedAssetID))
		}
		copy(set.AllowedAssetID[:], decoded)
	}

	if err := set.Validate(); err != nil {
		return Set{}, err
	}
	return set, nil
}

// Load reads and parses a YAML constraint set file.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("reading constraint set: %w", err)
	}
	set, err := Parse(data)
	if err != nil {
		return Set{}, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
