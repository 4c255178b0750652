// Copyright 2026 The Verikernel Authors
// SPDX-License-Identifier: Apache-2.0

package receipt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// storeHeaderSize is the framed file header: 1-byte compression tag
// plus u32 little-endian uncompressed size.
const storeHeaderSize = 5

// receiptExtension is the file suffix for stored receipts.
const receiptExtension = ".receipt"

// maxEncodedReceiptSize bounds the uncompressed size a framed header
// may declare. A receipt is a fixed-size journal plus a seal and a
// little metadata; even remote proving seals stay far under this. The
// bound keeps a corrupt or hostile header from forcing a huge
// allocation before the content hash is ever checked.
const maxEncodedReceiptSize = 16 << 20

// ErrNotFound is returned by Get when no receipt exists under the
// given hash.
var ErrNotFound = errors.New("receipt not found")

// Store keeps receipts on disk, one framed file per receipt, named by
// the hex content address. Writes go through a temp file and rename,
// so a crashed write never leaves a partial receipt behind.
type Store struct {
	dir string

	// preferred is the compression tried first on Put; incompressible
	// receipts fall back to CompressionNone.
	preferred CompressionTag
}

// Open opens (creating if needed) a receipt store rooted at dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating receipt store: %w", err)
	}
	return &Store{dir: dir, preferred: CompressionZstd}, nil
}

// Put writes the receipt and returns its content address. Putting the
// same receipt twice is a no-op returning the same hash.
func (s *Store) Put(r *Receipt) (Hash, error) {
	encoded, err := r.Encode()
	if err != nil {
		return Hash{}, err
	}
	if len(encoded) > maxEncodedReceiptSize {
		return Hash{}, fmt.Errorf("receipt is %d bytes, limit %d", len(encoded), maxEncodedReceiptSize)
	}
	hash := hashReceipt(encoded)

	path := s.path(hash)
	if _, err := os.Stat(path); err == nil {
		return hash, nil
	}

	tag := s.preferred
	compressed, err := compress(encoded, tag)
	if errors.Is(err, errIncompressible) {
		tag = CompressionNone
		compressed = encoded
	} else if err != nil {
		return Hash{}, err
	}

	framed := make([]byte, 0, storeHeaderSize+len(compressed))
	framed = append(framed, byte(tag))
	framed = binary.LittleEndian.AppendUint32(framed, uint32(len(encoded)))
	framed = append(framed, compressed...)

	temp, err := os.CreateTemp(s.dir, "receipt-*")
	if err != nil {
		return Hash{}, fmt.Errorf("creating receipt temp file: %w", err)
	}
	tempPath := temp.Name()
	if _, err := temp.Write(framed); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return Hash{}, fmt.Errorf("writing receipt: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return Hash{}, fmt.Errorf("closing receipt temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return Hash{}, fmt.Errorf("placing receipt: %w", err)
	}
	return hash, nil
}

// Get loads the receipt stored under hash. The loaded encoding is
// re-hashed and verified against the address before decoding.
func (s *Store) Get(hash Hash) (*Receipt, error) {
	framed, err := os.ReadFile(s.path(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, FormatHash(hash))
	}
	if err != nil {
		return nil, fmt.Errorf("reading receipt: %w", err)
	}
	if len(framed) < storeHeaderSize {
		return nil, fmt.Errorf("receipt %s: file is %d bytes, header needs %d",
			FormatHash(hash), len(framed), storeHeaderSize)
	}

	tag := CompressionTag(framed[0])
	uncompressedSize := int(binary.LittleEndian.Uint32(framed[1:storeHeaderSize]))
	if uncompressedSize > maxEncodedReceiptSize {
		return nil, fmt.Errorf("receipt %s: header declares %d bytes, limit %d",
			FormatHash(hash), uncompressedSize, maxEncodedReceiptSize)
	}
	encoded, err := decompress(framed[storeHeaderSize:], tag, uncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("receipt %s: %w", FormatHash(hash), err)
	}

	if hashReceipt(encoded) != hash {
		return nil, fmt.Errorf("receipt %s: content does not match address", FormatHash(hash))
	}
	return Decode(encoded)
}

// List returns the hashes of every stored receipt, in no particular
// order. Files that do not look like receipts are skipped.
func (s *Store) List() ([]Hash, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing receipt store: %w", err)
	}

	var hashes []Hash
	for _, entry := range entries {
		name, isReceipt := strings.CutSuffix(entry.Name(), receiptExtension)
		if entry.IsDir() || !isReceipt {
			continue
		}
		hash, err := ParseHash(name)
		if err != nil {
			continue
		}
		hashes = append(hashes, hash)
	}
	return hashes, nil
}

func (s *Store) path(hash Hash) string {
	return filepath.Join(s.dir, FormatHash(hash)+receiptExtension)
}
