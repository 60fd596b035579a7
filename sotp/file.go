// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package sotp

import (
	"crypto/aes"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/xts"
)

// minSectorSize is the XTS block size: xts.Cipher only encrypts whole 16-byte
// blocks, so the length-prefixed payload is zero-padded up to a multiple of
// it, with the true length recorded in the stored header.
const minSectorSize = 16

var fileSalt = []byte("github.com/lwm2m-embedded/go-lwm2m/sotp/file")

// FileStore is a Store backed by one file per slot, encrypted with AES-XTS
// and integrity-checked with a SHA-256 digest, grounded on the same
// PBKDF2-derived-key/XTS-cipher construction as an encrypting SQLite VFS in
// a sibling package.
type FileStore struct {
	dir    string
	cipher *xts.Cipher
}

// NewFileStore derives an AES-256 XTS key from secret via PBKDF2-SHA512 (10k
// iterations, matching the sibling construction) and returns a FileStore
// rooted at dir, which must already exist.
func NewFileStore(dir, secret string) (*FileStore, error) {
	key := pbkdf2.Key([]byte(secret), fileSalt, 10_000, 64, sha512.New)
	cipher, err := xts.NewCipher(aes.NewCipher, key)
	if err != nil {
		return nil, fmt.Errorf("sotp: building xts cipher: %w", err)
	}
	return &FileStore{dir: dir, cipher: cipher}, nil
}

func (f *FileStore) path(slot Slot) string {
	return filepath.Join(f.dir, fmt.Sprintf("slot-%d.bin", uint32(slot)))
}

// Store implements Store. The file is created with O_EXCL so concurrent
// writers racing for the same slot never both succeed.
func (f *FileStore) Store(slot Slot, data []byte) error {
	plain := make([]byte, sectorLen(len(data)))
	binary.BigEndian.PutUint32(plain[:4], uint32(len(data)))
	copy(plain[4:], data)

	cipherText := make([]byte, len(plain))
	f.cipher.Encrypt(cipherText, plain, uint64(slot))

	sum := sha256.Sum256(data)

	fh, err := os.OpenFile(f.path(slot), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ErrAlreadyWritten
		}
		return fmt.Errorf("sotp: creating slot file: %w", err)
	}
	defer fh.Close()

	if _, err := fh.Write(sum[:]); err != nil {
		return fmt.Errorf("sotp: writing checksum: %w", err)
	}
	if _, err := fh.Write(cipherText); err != nil {
		return fmt.Errorf("sotp: writing ciphertext: %w", err)
	}
	return nil
}

// Retrieve implements Store.
func (f *FileStore) Retrieve(slot Slot) ([]byte, error) {
	raw, err := os.ReadFile(f.path(slot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotWritten
		}
		return nil, fmt.Errorf("sotp: reading slot file: %w", err)
	}
	if len(raw) < sha256.Size+minSectorSize {
		return nil, ErrIntegrity
	}
	wantSum, cipherText := raw[:sha256.Size], raw[sha256.Size:]

	plain := make([]byte, len(cipherText))
	f.cipher.Decrypt(plain, cipherText, uint64(slot))

	n := binary.BigEndian.Uint32(plain[:4])
	if int(n) > len(plain)-4 {
		return nil, ErrIntegrity
	}
	data := plain[4 : 4+n]

	gotSum := sha256.Sum256(data)
	if subtle.ConstantTimeCompare(gotSum[:], wantSum) != 1 {
		return nil, ErrIntegrity
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Written implements Store.
func (f *FileStore) Written(slot Slot) bool {
	_, err := os.Stat(f.path(slot))
	return err == nil
}

func sectorLen(n int) int {
	total := n + 4
	if rem := total % minSectorSize; rem != 0 {
		total += minSectorSize - rem
	}
	return total
}

