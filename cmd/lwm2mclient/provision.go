// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log/slog"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
	"github.com/lwm2m-embedded/go-lwm2m/fcc"
	"github.com/lwm2m-embedded/go-lwm2m/internal/lwm2mtest"
	"github.com/lwm2m-embedded/go-lwm2m/sotp"
)

var provisionFlags = flag.NewFlagSet("provision", flag.ContinueOnError)

var (
	storeDir    string
	storeSecret string
	tpmPath     string
)

func init() {
	provisionFlags.StringVar(&storeDir, "dir", "", "Directory `path` for the encrypted file-backed credential store")
	provisionFlags.StringVar(&storeSecret, "secret", "", "Passphrase protecting the file-backed credential store")
	provisionFlags.StringVar(&tpmPath, "tpm", "", "TPM character `device` (e.g. /dev/tpmrm0); when set, overrides -dir/-secret")
}

func openStore() (sotp.Store, error) {
	switch {
	case tpmPath != "":
		return sotp.NewTPMStore(tpmPath)
	case storeDir != "" && storeSecret != "":
		return sotp.NewFileStore(storeDir, storeSecret)
	default:
		slog.Warn("no durable store configured, using in-memory store (credentials will not survive process restart)")
		return sotp.NewMemoryStore(), nil
	}
}

// provision runs the one-time factory credential sweep: seed entropy if not
// already burned, then run the pre-operational verification sequence against
// a sample object tree. The root-of-trust slot is not programmed here.
func provision() error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}

	if err := fcc.Init(store); err != nil {
		return fmt.Errorf("fcc init: %w", err)
	}
	defer func() {
		if err := fcc.Finalize(); err != nil {
			slog.Error("fcc finalize failed", "error", err)
		}
	}()

	if ok, err := fcc.EntropyInitialized(); err != nil {
		return fmt.Errorf("check entropy: %w", err)
	} else if !ok {
		seed := make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			return fmt.Errorf("generate entropy seed: %w", err)
		}
		if err := fcc.SetEntropy(seed); err != nil {
			return fmt.Errorf("set entropy: %w", err)
		}
		slog.Info("entropy seed programmed")
	}

	tree := lwm2mtest.NewTree()
	v := fcc.NewVerifier(tree)
	if err := v.Verify(); err != nil {
		for _, f := range v.Output.Findings() {
			slog.Warn(f.String())
		}
		return fmt.Errorf("verification failed: %w", err)
	}

	for _, f := range v.Output.Findings() {
		slog.Warn(f.String())
	}
	slog.Info("device configuration verified")

	if _, stored, err := fcc.TrustedCaID(); err != nil {
		return fmt.Errorf("check trusted CA id: %w", err)
	} else if !stored {
		sec, ok := tree.Object(lwm2m.SecurityObjectID)
		if !ok {
			return nil
		}
		inst, ok := sec.Instance(0)
		if !ok {
			return nil
		}
		r, ok := inst.Resource(lwm2m.ByID(3))
		if !ok {
			return nil
		}
		val, err := r.GetValue()
		if err != nil || val.IsNone() {
			return nil
		}
		if _, err := fcc.StoreTrustedCaID(val.Opaque()); err != nil {
			return fmt.Errorf("store trusted CA id: %w", err)
		}
		slog.Info("trusted CA id programmed")
	}
	return nil
}
