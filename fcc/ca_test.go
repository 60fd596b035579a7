// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package fcc_test

import (
	"errors"
	"testing"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
	"github.com/lwm2m-embedded/go-lwm2m/fcc"
	"github.com/lwm2m-embedded/go-lwm2m/sotp"
)

func TestCertIDDeterministic(t *testing.T) {
	cert := []byte("pretend this is a DER-encoded certificate")

	id1 := fcc.CertID(cert)
	id2 := fcc.CertID(cert)
	if id1 != id2 {
		t.Fatalf("CertID not deterministic: %x != %x", id1, id2)
	}

	other := fcc.CertID([]byte("a different certificate entirely"))
	if id1 == other {
		t.Fatal("expected different certificates to hash to different ids")
	}

	if len(id1) != fcc.CertIDSize {
		t.Fatalf("CertID length = %d, want %d", len(id1), fcc.CertIDSize)
	}
}

func TestStoreTrustedCaIDAtMostOnce(t *testing.T) {
	store := sotp.NewMemoryStore()
	if err := fcc.Init(store); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = fcc.Finalize() })

	cert := []byte("pretend this is a DER-encoded certificate")
	want := fcc.CertID(cert)

	got, err := fcc.StoreTrustedCaID(cert)
	if err != nil {
		t.Fatalf("StoreTrustedCaID: %v", err)
	}
	if got != want {
		t.Fatalf("StoreTrustedCaID = %x, want %x", got, want)
	}

	if _, err := fcc.StoreTrustedCaID(cert); err == nil {
		t.Fatal("expected second StoreTrustedCaID to fail")
	} else {
		var lerr *lwm2m.Error
		if !errors.As(err, &lerr) || lerr.Kind != lwm2m.KindCaError {
			t.Fatalf("expected KindCaError, got %v", err)
		}
	}

	stored, ok, err := fcc.TrustedCaID()
	if err != nil || !ok {
		t.Fatalf("TrustedCaID after store = %v, %v, %v", stored, ok, err)
	}
	if stored != want {
		t.Fatalf("TrustedCaID = %x, want %x", stored, want)
	}
}

func TestOutputInfoAccumulates(t *testing.T) {
	var out fcc.OutputInfo
	out.Add(fcc.SeverityWarning, "step_a", "first warning")
	out.Add(fcc.SeverityError, "step_b", "fatal thing")

	if !out.HasErrors() {
		t.Fatal("expected HasErrors true after an error-severity finding")
	}
	if len(out.Findings()) != 2 {
		t.Fatalf("Findings() length = %d, want 2", len(out.Findings()))
	}

	out.Reset()
	if len(out.Findings()) != 0 || out.HasErrors() {
		t.Fatal("expected Reset to clear findings")
	}
}
