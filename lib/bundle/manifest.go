// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// FormatVersion is the manifest format this package reads.
const FormatVersion = "1"

// Manifest is the on-disk description of an agent bundle. It is
// self-contained: everything needed to verify the binary offline is in
// the manifest itself.
type Manifest struct {
	// FormatVersion of the manifest file, currently "1".
	FormatVersion string `json:"format_version"`

	// AgentName is the human-readable agent name, e.g. "yield-agent".
	AgentName string `json:"agent_name"`

	// AgentVersion is the agent's semantic version.
	AgentVersion string `json:"agent_version"`

	// AgentID is the 32-byte agent identifier, hex-encoded.
	AgentID string `json:"agent_id"`

	// ProtocolVersion and KernelVersion the agent was built against.
	ProtocolVersion uint32 `json:"protocol_version"`
	KernelVersion   uint32 `json:"kernel_version"`

	// AgentCodeHash is the build-time identity commitment to the
	// agent's logic, hex-encoded. Inputs built from this bundle carry
	// it, and the kernel refuses to run under any other value.
	AgentCodeHash string `json:"agent_code_hash"`

	// BinaryPath is the path of the proving-environment binary,
	// relative to the manifest file.
	BinaryPath string `json:"binary_path"`

	// BinarySHA256 is the hex-encoded SHA-256 of the binary file.
	BinarySHA256 string `json:"binary_sha256"`

	// Inputs and ActionsProfile are human-readable descriptions of the
	// agent's input format and the actions it emits.
	Inputs         string `json:"inputs,omitempty"`
	ActionsProfile string `json:"actions_profile,omitempty"`

	// Notes holds free-form comments.
	Notes string `json:"notes,omitempty"`
}

// ParseManifest strips JSONC comments and trailing commas from data,
// unmarshals the manifest, and checks its structural invariants:
// format version, non-empty identity fields, well-formed hex hashes,
// and protocol/kernel versions this codebase implements.
func ParseManifest(data []byte) (*Manifest, error) {
	stripped := jsonc.ToJSON(data)

	var manifest Manifest
	if err := json.Unmarshal(stripped, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// ReadManifest reads and parses a JSONC manifest file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return manifest, nil
}

func (m *Manifest) validate() error {
	if m.FormatVersion != FormatVersion {
		return fmt.Errorf("manifest format version is %q, want %q", m.FormatVersion, FormatVersion)
	}
	if m.AgentName == "" {
		return fmt.Errorf("manifest has no agent_name")
	}
	if m.BinaryPath == "" {
		return fmt.Errorf("manifest has no binary_path")
	}
	if m.ProtocolVersion != wire.ProtocolVersion {
		return fmt.Errorf("manifest protocol version is %d, this kernel implements %d", m.ProtocolVersion, wire.ProtocolVersion)
	}
	if m.KernelVersion != wire.KernelVersion {
		return fmt.Errorf("manifest kernel version is %d, this kernel implements %d", m.KernelVersion, wire.KernelVersion)
	}
	if _, err := m.agentID(); err != nil {
		return err
	}
	if _, err := m.agentCodeHash(); err != nil {
		return err
	}
	if _, err := m.binarySHA256(); err != nil {
		return err
	}
	return nil
}
