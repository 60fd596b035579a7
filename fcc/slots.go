// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package fcc

import (
	"errors"
	"fmt"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
	"github.com/lwm2m-embedded/go-lwm2m/sotp"
)

// SOTP slot catalog: the one-time items a factory tool burns before the
// device ever talks to a server.
const (
	SlotRandomSeed     sotp.Slot = iota // entropy seed, checked by EntropyInitialized
	SlotRootOfTrust                     // device root-of-trust key material
	SlotTrustedTimeSrvId                // derived trusted-CA id (legacy slot name, not time-related)
	SlotFactoryDone                     // 1 byte, 0/1: device permanently disabled from re-provisioning
)

// SetEntropy programs the random-seed slot. It fails if entropy has already
// been set, mirroring the original client's refusal to let a device be
// reseeded after manufacturing.
func SetEntropy(buf []byte) error {
	store, err := currentStore()
	if err != nil {
		return err
	}
	if err := store.Store(SlotRandomSeed, buf); err != nil {
		if errors.Is(err, sotp.ErrAlreadyWritten) {
			return &lwm2m.Error{Kind: lwm2m.KindEntropyError, Op: "set_entropy", Err: err}
		}
		return err
	}
	return nil
}

// SetRootOfTrust programs the root-of-trust slot, once.
func SetRootOfTrust(buf []byte) error {
	store, err := currentStore()
	if err != nil {
		return err
	}
	if err := store.Store(SlotRootOfTrust, buf); err != nil {
		if errors.Is(err, sotp.ErrAlreadyWritten) {
			return &lwm2m.Error{Kind: lwm2m.KindRoTError, Op: "set_root_of_trust", Err: err}
		}
		return err
	}
	return nil
}

// IsFactoryDisabled reports whether FactoryDisable has previously been
// called. A never-written slot means the device is not disabled.
func IsFactoryDisabled() (bool, error) {
	store, err := currentStore()
	if err != nil {
		return false, err
	}
	data, err := store.Retrieve(SlotFactoryDone)
	if errors.Is(err, sotp.ErrNotWritten) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(data) != 1 || (data[0] != 0 && data[0] != 1) {
		return false, fmt.Errorf("fcc: corrupt factory-disabled flag")
	}
	return data[0] == 1, nil
}

// FactoryDisable permanently marks the device as having left the factory
// floor: subsequent calls return an error rather than silently succeeding,
// since the slot can only be written once.
func FactoryDisable() error {
	store, err := currentStore()
	if err != nil {
		return err
	}
	if err := store.Store(SlotFactoryDone, []byte{1}); err != nil {
		if errors.Is(err, sotp.ErrAlreadyWritten) {
			return &lwm2m.Error{Kind: lwm2m.KindFactoryDisabledError, Op: "factory_disable", Err: err}
		}
		return err
	}
	return nil
}

// EntropyInitialized reports whether SetEntropy has been called.
func EntropyInitialized() (bool, error) {
	store, err := currentStore()
	if err != nil {
		return false, err
	}
	return store.Written(SlotRandomSeed), nil
}
