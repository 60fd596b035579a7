// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package fcc

import (
	"fmt"
	"sync"

	"github.com/lwm2m-embedded/go-lwm2m/sotp"
)

// process-wide initialization state: at most one store session (Init to
// Finalize) is open at a time, mirroring the original client's single
// g_is_fcc_initialized flag rather than a per-instance one, since the slots
// are themselves process-wide hardware/file state. The number of Verifier
// values is not limited.
var (
	lifecycleMu   sync.Mutex
	initialized   bool
	activeStore   sotp.Store
	sessionClosed = true
)

// Init prepares the process for a factory-configuration session: it is a
// no-op if already initialized, matching the original client's idempotent
// fcc_init.
func Init(store sotp.Store) error {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()
	if initialized {
		return nil
	}
	activeStore = store
	initialized = true
	sessionClosed = false
	return nil
}

// Finalize tears down the session started by Init. It is an error to call
// Finalize without a prior Init.
func Finalize() error {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()
	if !initialized {
		return fmt.Errorf("fcc: not initialized")
	}
	activeStore = nil
	initialized = false
	sessionClosed = true
	return nil
}

// IsSessionFinished reports whether Finalize has been called since the last
// Init (or Init was never called).
func IsSessionFinished() bool {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()
	return sessionClosed
}

func currentStore() (sotp.Store, error) {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()
	if !initialized {
		return nil, fmt.Errorf("fcc: not initialized")
	}
	return activeStore, nil
}
