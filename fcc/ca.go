// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package fcc

import (
	"crypto/sha256"
	"errors"
	"sync"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
	"github.com/lwm2m-embedded/go-lwm2m/sotp"
)

// CertIDSize is the length, in bytes, of a trusted-CA id: the low bytes of
// a SHA-256 digest over the certificate's raw DER bytes, matching the
// original client's PAL_CERT_ID_SIZE-length attribute.
const CertIDSize = 16

// caIDCache memoizes CertID by certificate bytes so repeated bootstrap or
// LwM2M server CA lookups during one verification run don't re-hash
// identical certificate blobs (the original client caches this per-session
// under fcc_trust_ca_cert_id_set).
var (
	caIDCacheMu sync.Mutex
	caIDCache   = make(map[string][CertIDSize]byte)
)

// CertID derives the trusted-CA id for certDER, memoized across calls with
// identical input.
func CertID(certDER []byte) [CertIDSize]byte {
	key := string(certDER)

	caIDCacheMu.Lock()
	defer caIDCacheMu.Unlock()
	if id, ok := caIDCache[key]; ok {
		return id
	}

	digest := sha256.Sum256(certDER)
	var id [CertIDSize]byte
	copy(id[:], digest[:CertIDSize])
	caIDCache[key] = id
	return id
}

// StoreTrustedCaID derives certDER's id via CertID and burns it into the
// TrustedTimeSrvId slot. Per the original client's one-shot
// fcc_trust_ca_cert_id_set, the slot is written at most once: a later call,
// even with an identical certificate, fails with a CaError rather than
// silently returning the previously stored id.
func StoreTrustedCaID(certDER []byte) ([CertIDSize]byte, error) {
	store, err := currentStore()
	if err != nil {
		return [CertIDSize]byte{}, err
	}
	id := CertID(certDER)
	if err := store.Store(SlotTrustedTimeSrvId, id[:]); err != nil {
		if errors.Is(err, sotp.ErrAlreadyWritten) {
			return [CertIDSize]byte{}, &lwm2m.Error{Kind: lwm2m.KindCaError, Op: "store_trusted_ca_id", Err: err}
		}
		return [CertIDSize]byte{}, err
	}
	return id, nil
}

// TrustedCaID returns the previously stored trusted-CA id, if the
// TrustedTimeSrvId slot has been programmed.
func TrustedCaID() ([CertIDSize]byte, bool, error) {
	store, err := currentStore()
	if err != nil {
		return [CertIDSize]byte{}, false, err
	}
	data, err := store.Retrieve(SlotTrustedTimeSrvId)
	if errors.Is(err, sotp.ErrNotWritten) {
		return [CertIDSize]byte{}, false, nil
	}
	if err != nil {
		return [CertIDSize]byte{}, false, err
	}
	var id [CertIDSize]byte
	copy(id[:], data)
	return id, true, nil
}
