// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

// Package report implements the LwM2M observation-attribute state machine
// (pmin/pmax/gt/lt/st) described by §4.5 of the specification. It has no
// dependency on the object tree: the tree calls [Handler.Tick] with whatever
// it knows about the current value, and Handler decides whether a
// notification should fire. This keeps the report/lwm2m import direction
// one-way, since a Resource lazily owns a *Handler.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default and minimum pmin, per §4.5.
const (
	DefaultPMin = 1 * time.Second
	MinPMin     = 1 * time.Second
)

// Handler tracks one observable node's notification attributes and decides,
// on each tick, whether a notification should be sent.
type Handler struct {
	PMin time.Duration
	PMax time.Duration // 0 disables the pmax-forced-fire rule

	hasGT bool
	gt    float64
	hasLT bool
	lt    float64
	hasST bool
	st    float64

	lastSent     time.Time
	hasLastSent  bool
	lastValue    float64
	hasLastValue bool
	runningMin   float64
	runningMax   float64
}

// New returns a Handler with default attributes: pmin=1s, pmax disabled, no
// gt/lt/st.
func New() *Handler {
	return &Handler{PMin: DefaultPMin}
}

// Reset restores default attributes (pmin=1s, pmax disabled, no gt/lt/st) and
// forgets the last sent value and time, so the next Tick fires.
func (h *Handler) Reset() {
	h.PMin, h.PMax = DefaultPMin, 0
	h.hasGT, h.hasLT, h.hasST = false, false, false
	h.hasLastSent, h.hasLastValue = false, false
}

// SetAttributes parses a PUT observation-attribute query string of the form
// "pmin=5&pmax=60&gt=20&lt=80&st=5". current/isNumeric seed the running
// min/max for gt/lt evaluation, per §4.5's "initialize running min/max from
// the current value" rule. On any parse failure the handler's previous
// attributes are left untouched and an error is returned.
func (h *Handler) SetAttributes(query string, current float64, isNumeric bool) error {
	next := *h // shallow copy to mutate and swap in atomically on success

	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			return fmt.Errorf("malformed attribute %q", part)
		}
		f, err := strconv.ParseFloat(val, 64)
		switch key {
		case "pmin":
			if err != nil {
				return fmt.Errorf("invalid pmin: %w", err)
			}
			d := time.Duration(f * float64(time.Second))
			if d < MinPMin {
				return fmt.Errorf("pmin must be >= %s", MinPMin)
			}
			next.PMin = d
		case "pmax":
			if err != nil {
				return fmt.Errorf("invalid pmax: %w", err)
			}
			d := time.Duration(f * float64(time.Second))
			if d != 0 && d < next.PMin {
				return fmt.Errorf("pmax must be >= pmin or 0")
			}
			next.PMax = d
		case "gt":
			if err != nil {
				return fmt.Errorf("invalid gt: %w", err)
			}
			next.hasGT, next.gt = true, f
		case "lt":
			if err != nil {
				return fmt.Errorf("invalid lt: %w", err)
			}
			next.hasLT, next.lt = true, f
		case "st":
			if err != nil {
				return fmt.Errorf("invalid st: %w", err)
			}
			if f <= 0 {
				return fmt.Errorf("st must be > 0")
			}
			next.hasST, next.st = true, f
		default:
			return fmt.Errorf("unknown attribute %q", key)
		}
	}

	if isNumeric {
		next.runningMin, next.runningMax = current, current
	}
	*h = next
	return nil
}

// Tick evaluates the triggering rule in §4.5 for one shared wall-clock tick
// and returns whether a notification should fire. changed reports whether
// the resource's value mutated since the last call; numeric/value carry the
// current value for gt/lt/st evaluation when the resource type is numeric.
func (h *Handler) Tick(now time.Time, value float64, isNumeric, changed bool) bool {
	if !h.hasLastSent {
		h.lastSent = now
		h.hasLastSent = true
		h.lastValue, h.hasLastValue = value, isNumeric
		if isNumeric {
			h.runningMin, h.runningMax = value, value
		}
		return true
	}

	elapsed := now.Sub(h.lastSent)
	if elapsed < h.PMin {
		return false
	}

	meaningful := changed
	if isNumeric && (h.hasGT || h.hasLT || h.hasST) {
		meaningful = h.meaningfulChange(value)
	}

	forced := h.PMax != 0 && elapsed >= h.PMax
	fire := meaningful || forced
	if fire {
		h.lastSent = now
		if isNumeric {
			h.lastValue, h.hasLastValue = value, true
			if value < h.runningMin {
				h.runningMin = value
			}
			if value > h.runningMax {
				h.runningMax = value
			}
		}
	}
	return fire
}

// meaningfulChange implements "crossed gt/lt boundary OR |value-last_sent| >= st".
func (h *Handler) meaningfulChange(value float64) bool {
	if h.hasGT && crossedBoundary(h.runningMax, value, h.gt) {
		return true
	}
	if h.hasLT && crossedBoundary(value, h.runningMin, h.lt) {
		return true
	}
	if h.hasST && h.hasLastValue && abs(value-h.lastValue) >= h.st {
		return true
	}
	return false
}

// crossedBoundary reports whether boundary lies strictly between prior and
// current (inclusive of current), i.e. the value crossed it going up.
func crossedBoundary(prior, current, boundary float64) bool {
	return prior < boundary && current >= boundary
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
