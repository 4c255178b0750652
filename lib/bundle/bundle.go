// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/verikernel-foundation/verikernel/lib/commit"
)

// Bundle is a loaded, verified agent bundle. All hash fields have been
// checked against the binary on disk; the binary bytes are held in
// memory so the prover receives exactly what was verified.
type Bundle struct {
	Manifest *Manifest

	// AgentID and AgentCodeHash are the decoded identity fields.
	AgentID       [32]byte
	AgentCodeHash [32]byte

	// Binary is the raw proving-environment binary.
	Binary []byte
}

// Load reads the manifest at manifestPath, loads the binary it names,
// and verifies the binary's SHA-256 against the manifest. The binary
// path is resolved relative to the manifest's directory.
func Load(manifestPath string) (*Bundle, error) {
	manifest, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	binaryPath := manifest.BinaryPath
	if !filepath.IsAbs(binaryPath) {
		binaryPath = filepath.Join(filepath.Dir(manifestPath), binaryPath)
	}

	binary, err := os.ReadFile(binaryPath)
	if err != nil {
		return nil, fmt.Errorf("reading binary %s: %w", binaryPath, err)
	}

	wantBinaryHash, err := manifest.binarySHA256()
	if err != nil {
		return nil, err
	}
	if gotBinaryHash := sha256.Sum256(binary); gotBinaryHash != wantBinaryHash {
		return nil, fmt.Errorf("binary %s hash is %s, manifest says %s",
			binaryPath, commit.FormatCommitment(gotBinaryHash), manifest.BinarySHA256)
	}

	agentID, err := manifest.agentID()
	if err != nil {
		return nil, err
	}
	agentCodeHash, err := manifest.agentCodeHash()
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Manifest:      manifest,
		AgentID:       agentID,
		AgentCodeHash: agentCodeHash,
		Binary:        binary,
	}, nil
}

// HashBinary computes the SHA-256 digest of the binary at path,
// streamed in chunks to keep memory usage constant. Used by packaging
// tooling when writing manifests.
func HashBinary(path string) ([32]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return [32]byte{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return [32]byte{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

func (m *Manifest) agentID() ([32]byte, error) {
	digest, err := commit.ParseCommitment(m.AgentID)
	if err != nil {
		return digest, fmt.Errorf("manifest agent_id: %w", err)
	}
	return digest, nil
}

func (m *Manifest) agentCodeHash() ([32]byte, error) {
	digest, err := commit.ParseCommitment(m.AgentCodeHash)
	if err != nil {
		return digest, fmt.Errorf("manifest agent_code_hash: %w", err)
	}
	return digest, nil
}

func (m *Manifest) binarySHA256() ([32]byte, error) {
	digest, err := commit.ParseCommitment(m.BinarySHA256)
	if err != nil {
		return digest, fmt.Errorf("manifest binary_sha256: %w", err)
	}
	return digest, nil
}
