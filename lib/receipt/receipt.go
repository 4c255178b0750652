// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package receipt

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/verikernel-foundation/verikernel/lib/codec"
	"github.com/verikernel-foundation/verikernel/lib/wire"
)

// Hash is a 32-byte BLAKE3 digest addressing a receipt.
type Hash [32]byte

// receiptDomainKey is the BLAKE3 keyed-hash domain for receipt
// addressing. A fixed constant — changing it invalidates every stored
// receipt address. The byte values are the ASCII domain name,
// zero-padded to 32 bytes, so the key is inspectable in hex dumps.
var receiptDomainKey = [32]byte{
	'v', 'e', 'r', 'i', 'k', 'e', 'r', 'n', 'e', 'l', '.',
	'r', 'e', 'c', 'e', 'i', 'p', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Receipt is one completed invocation: the journal the prover
// committed, the seal attesting to it, and host-side metadata. Binary
// fields are raw bytes, not hex — CBOR carries byte strings natively.
type Receipt struct {
	// AgentName is the human-readable name from the bundle manifest.
	AgentName string `cbor:"agent_name"`

	// AgentID and ExecutionNonce identify the invocation; they mirror
	// the journal for indexing without decoding it.
	AgentID        []byte `cbor:"agent_id"`
	ExecutionNonce uint64 `cbor:"execution_nonce"`

	// Status is the journal's execution status string.
	Status string `cbor:"status"`

	// Journal is the encoded 209-byte journal record.
	Journal []byte `cbor:"journal"`

	// Seal is the proving backend's attestation. Empty for local
	// (unproven) execution.
	Seal []byte `cbor:"seal,omitempty"`

	// CreatedAt is the host wall-clock time in Unix seconds. This is
	// host metadata only; nothing inside the proving boundary ever
	// reads a clock.
	CreatedAt int64 `cbor:"created_at"`
}

// New builds a receipt from a decoded journal and its raw bytes.
func New(agentName string, journal *wire.JournalRecord, journalBytes, seal []byte, createdAt int64) *Receipt {
	return &Receipt{
		AgentName:      agentName,
		AgentID:        append([]byte(nil), journal.AgentID[:]...),
		ExecutionNonce: journal.ExecutionNonce,
		Status:         journal.ExecutionStatus.String(),
		Journal:        append([]byte(nil), journalBytes...),
		Seal:           append([]byte(nil), seal...),
		CreatedAt:      createdAt,
	}
}

// Encode returns the deterministic CBOR encoding of the receipt.
func (r *Receipt) Encode() ([]byte, error) {
	data, err := codec.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding receipt: %w", err)
	}
	return data, nil
}

// Decode parses a CBOR-encoded receipt.
func Decode(data []byte) (*Receipt, error) {
	var r Receipt
	if err := codec.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding receipt: %w", err)
	}
	return &r, nil
}

// ID returns the receipt's content address: the receipt-domain BLAKE3
// keyed hash of the deterministic encoding.
func (r *Receipt) ID() (Hash, error) {
	encoded, err := r.Encode()
	if err != nil {
		return Hash{}, err
	}
	return hashReceipt(encoded), nil
}

// FormatHash returns the hex string form of a receipt hash.
func FormatHash(hash Hash) string {
	return hex.EncodeToString(hash[:])
}

// ParseHash parses a 64-character hex string into a receipt hash.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing receipt hash: %w", err)
	}
	if len(decoded) != 32 {
		return hash, fmt.Errorf("receipt hash is %d bytes, want 32", len(decoded))
	}
	copy(hash[:], decoded)
	return hash, nil
}

// hashReceipt computes the receipt-domain BLAKE3 keyed hash.
func hashReceipt(data []byte) Hash {
	// NewKeyed requires exactly 32 bytes, which the fixed domain key
	// guarantees, so the error path is unreachable.
	hasher, err := blake3.NewKeyed(receiptDomainKey[:])
	if err != nil {
		panic("receipt: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
