// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package report_test

import (
	"testing"
	"time"

	"github.com/lwm2m-embedded/go-lwm2m/report"
)

func TestNewHasDefaults(t *testing.T) {
	h := report.New()
	if h.PMin != report.DefaultPMin {
		t.Fatalf("PMin = %s, want %s", h.PMin, report.DefaultPMin)
	}
	if h.PMax != 0 {
		t.Fatalf("PMax = %s, want 0", h.PMax)
	}
}

func TestFirstTickAlwaysFires(t *testing.T) {
	h := report.New()
	now := time.Unix(1000, 0)
	if !h.Tick(now, 10, true, false) {
		t.Fatal("expected first Tick to fire")
	}
}

func TestTickRespectsPMin(t *testing.T) {
	h := report.New()
	start := time.Unix(1000, 0)
	h.Tick(start, 10, true, false)

	if h.Tick(start.Add(500*time.Millisecond), 999, true, true) {
		t.Fatal("expected Tick within pmin to be suppressed")
	}
	if !h.Tick(start.Add(2*time.Second), 999, true, true) {
		t.Fatal("expected Tick after pmin with a change to fire")
	}
}

func TestTickPMaxForcesFire(t *testing.T) {
	h := report.New()
	if err := h.SetAttributes("pmax=5", 10, true); err != nil {
		t.Fatalf("SetAttributes: %v", err)
	}
	start := time.Unix(1000, 0)
	h.Tick(start, 10, true, false)

	if h.Tick(start.Add(2*time.Second), 10, true, false) {
		t.Fatal("expected no fire before pmax elapses with no change")
	}
	if !h.Tick(start.Add(6*time.Second), 10, true, false) {
		t.Fatal("expected pmax-forced fire")
	}
}

func TestTickGTBoundary(t *testing.T) {
	h := report.New()
	if err := h.SetAttributes("gt=20", 10, true); err != nil {
		t.Fatalf("SetAttributes: %v", err)
	}
	start := time.Unix(1000, 0)
	h.Tick(start, 10, true, false)

	later := start.Add(2 * time.Second)
	if h.Tick(later, 15, true, false) {
		t.Fatal("expected no fire: value still below gt")
	}
	later = later.Add(2 * time.Second)
	if !h.Tick(later, 25, true, false) {
		t.Fatal("expected fire: value crossed gt boundary")
	}
}

func TestTickSTBoundary(t *testing.T) {
	h := report.New()
	if err := h.SetAttributes("st=5", 10, true); err != nil {
		t.Fatalf("SetAttributes: %v", err)
	}
	start := time.Unix(1000, 0)
	h.Tick(start, 10, true, false)

	later := start.Add(2 * time.Second)
	if h.Tick(later, 12, true, false) {
		t.Fatal("expected no fire: change below st")
	}
	later = later.Add(2 * time.Second)
	if !h.Tick(later, 16, true, false) {
		t.Fatal("expected fire: change at or above st")
	}
}

func TestSetAttributesRejectsMalformed(t *testing.T) {
	h := report.New()
	if err := h.SetAttributes("pmin=abc", 0, false); err == nil {
		t.Fatal("expected error for non-numeric pmin")
	}
	// Attributes must be untouched after a failed parse.
	if h.PMin != report.DefaultPMin {
		t.Fatalf("PMin mutated after failed SetAttributes: %s", h.PMin)
	}
}

func TestSetAttributesRejectsPMinBelowMinimum(t *testing.T) {
	h := report.New()
	if err := h.SetAttributes("pmin=0.1", 0, false); err == nil {
		t.Fatal("expected error for pmin below minimum")
	}
}

func TestSetAttributesRejectsPMaxBelowPMin(t *testing.T) {
	h := report.New()
	if err := h.SetAttributes("pmin=10&pmax=5", 0, false); err == nil {
		t.Fatal("expected error for pmax < pmin")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	h := report.New()
	if err := h.SetAttributes("pmin=10&gt=5", 0, true); err != nil {
		t.Fatalf("SetAttributes: %v", err)
	}
	h.Reset()
	if h.PMin != report.DefaultPMin || h.PMax != 0 {
		t.Fatalf("Reset did not restore defaults: pmin=%s pmax=%s", h.PMin, h.PMax)
	}
	if !h.Tick(time.Unix(2000, 0), 0, false, false) {
		t.Fatal("expected first Tick after Reset to fire")
	}
}
