// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package sotp

import (
	"fmt"

	"github.com/google/go-tpm/tpm2"
	"github.com/google/go-tpm/tpm2/transport"
)

// nvAttr grants owner-authenticated read/write and denies everything else,
// so a slot is only reachable through this process's TPM session, mirroring
// the access policy a sibling package uses for its own NV indices.
var nvAttr = tpm2.TPMANV{
	OwnerRead:  true,
	OwnerWrite: true,
}

// baseNVIndex is added to a Slot to compute its NV handle, keeping SOTP
// slots out of the reserved platform/manufacturer ranges.
const baseNVIndex = 0x01800000

// TPMStore is a Store backed by TPM 2.0 NV indices: each slot maps to
// baseNVIndex+slot, defined on first Store and never redefined, which is
// what gives SOTP its at-most-once guarantee in hardware.
type TPMStore struct {
	tpm transport.TPMCloser
}

// NewTPMStore opens path (typically "/dev/tpmrm0": prefer the kernel
// resource manager device over talking to the TPM directly) and returns a
// Store backed by it.
func NewTPMStore(path string) (*TPMStore, error) {
	t, err := transport.OpenTPM(path)
	if err != nil {
		return nil, fmt.Errorf("sotp: opening TPM device: %w", err)
	}
	return &TPMStore{tpm: t}, nil
}

// NewTPMStoreForTransport wraps an already-open transport, bypassing device
// discovery — used to run TPMStore against an in-process simulator in tests.
func NewTPMStoreForTransport(t transport.TPMCloser) *TPMStore {
	return &TPMStore{tpm: t}
}

// Close releases the underlying TPM device handle.
func (s *TPMStore) Close() error { return s.tpm.Close() }

func (s *TPMStore) handle(slot Slot) tpm2.TPMHandle {
	return tpm2.TPMHandle(baseNVIndex + uint32(slot))
}

// Written implements Store.
func (s *TPMStore) Written(slot Slot) bool {
	_, err := (tpm2.NVReadPublic{NVIndex: s.handle(slot)}).Execute(s.tpm)
	return err == nil
}

// Store implements Store: it fails with ErrAlreadyWritten if the NV index
// is already defined, rather than silently overwriting it.
func (s *TPMStore) Store(slot Slot, data []byte) error {
	if s.Written(slot) {
		return ErrAlreadyWritten
	}
	nv := s.handle(slot)

	def := tpm2.NVDefineSpace{
		AuthHandle: tpm2.TPMRHOwner,
		PublicInfo: tpm2.New2B(tpm2.TPMSNVPublic{
			NVIndex:    nv,
			NameAlg:    tpm2.TPMAlgSHA256,
			Attributes: nvAttr,
			DataSize:   uint16(len(data)),
		}),
	}
	if _, err := def.Execute(s.tpm); err != nil {
		return fmt.Errorf("sotp: TPM2_NV_DefineSpace: %w", err)
	}

	nvPublic := tpm2.TPMSNVPublic{
		NVIndex:    nv,
		NameAlg:    tpm2.TPMAlgSHA256,
		Attributes: nvAttr,
		DataSize:   uint16(len(data)),
	}
	nvName, err := tpm2.NVName(&nvPublic)
	if err != nil {
		return fmt.Errorf("sotp: computing NV index name: %w", err)
	}

	write := tpm2.NVWrite{
		AuthHandle: tpm2.AuthHandle{Handle: tpm2.TPMRHOwner, Auth: tpm2.PasswordAuth(nil)},
		NVIndex:    tpm2.NamedHandle{Handle: nv, Name: *nvName},
		Data:       tpm2.TPM2BMaxNVBuffer{Buffer: data},
	}
	if _, err := write.Execute(s.tpm); err != nil {
		return fmt.Errorf("sotp: TPM2_NV_Write: %w", err)
	}
	return nil
}

// Retrieve implements Store.
func (s *TPMStore) Retrieve(slot Slot) ([]byte, error) {
	nv := s.handle(slot)

	readPubRsp, err := (tpm2.NVReadPublic{NVIndex: nv}).Execute(s.tpm)
	if err != nil {
		return nil, ErrNotWritten
	}
	nvPublic, err := readPubRsp.NVPublic.Contents()
	if err != nil {
		return nil, fmt.Errorf("sotp: reading NV public contents: %w", err)
	}
	nvName, err := tpm2.NVName(nvPublic)
	if err != nil {
		return nil, fmt.Errorf("sotp: computing NV index name: %w", err)
	}

	read := tpm2.NVRead{
		AuthHandle: tpm2.AuthHandle{Handle: tpm2.TPMRHOwner, Auth: tpm2.PasswordAuth(nil)},
		NVIndex:    tpm2.NamedHandle{Handle: nv, Name: *nvName},
		Size:       nvPublic.DataSize,
	}
	readRsp, err := read.Execute(s.tpm)
	if err != nil {
		return nil, fmt.Errorf("sotp: TPM2_NV_Read: %w", err)
	}
	return readRsp.Data.Buffer, nil
}
