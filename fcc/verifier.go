// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package fcc

import (
	"fmt"
	"time"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
)

// Verifier runs the pre-bootstrap sanity sweep against a populated object
// tree, short-circuiting on the first hard failure but accumulating
// non-fatal findings in Output along the way.
type Verifier struct {
	Tree   *lwm2m.Tree
	Output OutputInfo

	// Now is called to get the current time for the time-synchronization
	// check; defaults to time.Now if nil. Tests override it to exercise an
	// unsynchronized clock deterministically.
	Now func() time.Time
}

// NewVerifier returns a Verifier over tree.
func NewVerifier(tree *lwm2m.Tree) *Verifier {
	return &Verifier{Tree: tree}
}

func (v *Verifier) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

// Verify runs every check in order, matching
// fcc_verify_device_configured_4mbed_cloud's sequence: entropy, time sync,
// bootstrap mode, device general info, device metadata, security objects,
// firmware integrity. It stops at the first step that returns an error;
// prior steps' findings remain in v.Output. Per the accumulator invariant, a
// non-nil error always leaves at least one SeverityError Finding in Output.
func (v *Verifier) Verify() error {
	v.Output.Reset()

	ok, err := EntropyInitialized()
	if err != nil {
		v.Output.Add(SeverityError, "entropy", err.Error())
		return fmt.Errorf("fcc: checking entropy: %w", err)
	}
	if !ok {
		v.Output.Add(SeverityError, "entropy", "entropy not initialized")
		return fmt.Errorf("fcc: entropy not initialized")
	}

	if err := v.checkTimeSynchronization(); err != nil {
		return err
	}

	useBootstrap, err := v.bootstrapMode()
	if err != nil {
		return err
	}

	if err := v.checkDeviceGeneralInfo(); err != nil {
		return err
	}
	if err := v.checkDeviceMetaData(); err != nil {
		return err
	}
	if err := v.checkSecurityObjects(useBootstrap); err != nil {
		return err
	}
	if err := v.checkFirmwareUpdateIntegrity(); err != nil {
		return err
	}

	return nil
}

// checkTimeSynchronization requires the device clock to read no earlier than
// 2020-01-01 00:00 UTC, a coarse sanity check
// standing in for the original client's platform-clock call: a device that
// has never synchronized reports an obviously-wrong epoch.
func (v *Verifier) checkTimeSynchronization() error {
	if v.now().Before(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		v.Output.Add(SeverityError, "time_synchronization", "device clock not synchronized")
		return fmt.Errorf("fcc: device clock not synchronized")
	}
	return nil
}

// bootstrapMode reads the Security object's Bootstrap-Server resource
// (0/0/1) to decide whether this device provisions via a bootstrap server
// or a directly configured LwM2M server.
func (v *Verifier) bootstrapMode() (bool, error) {
	const step = "bootstrap_mode"
	obj, ok := v.Tree.Object(lwm2m.SecurityObjectID)
	if !ok {
		v.Output.Add(SeverityError, step, "security object missing")
		return false, fmt.Errorf("fcc: security object missing")
	}
	inst, ok := obj.Instance(0)
	if !ok {
		v.Output.Add(SeverityError, step, "security object instance 0 missing")
		return false, fmt.Errorf("fcc: security object instance 0 missing")
	}
	r, ok := inst.Resource(lwm2m.ByID(1))
	if !ok {
		v.Output.Add(SeverityError, step, "bootstrap-server resource missing")
		return false, fmt.Errorf("fcc: bootstrap-server resource missing")
	}
	val, err := r.GetValue()
	if err != nil {
		v.Output.Add(SeverityError, step, fmt.Sprintf("reading bootstrap-server resource: %v", err))
		return false, fmt.Errorf("fcc: reading bootstrap-server resource: %w", err)
	}
	return val.Boolean(), nil
}

// checkDeviceGeneralInfo validates the Device object's identity resources
// are present and non-empty: Manufacturer (3/0/0), Model Number (3/0/1),
// Serial Number (3/0/2).
func (v *Verifier) checkDeviceGeneralInfo() error {
	return v.requireNonEmptyStrings("device_general_info", lwm2m.DeviceObjectID, 0, 0, 1, 2)
}

// checkDeviceMetaData validates Device Type (3/0/17) and Hardware Version
// (3/0/18), logging a warning rather than failing when they're absent,
// since they're informational rather than load-bearing for bootstrap.
func (v *Verifier) checkDeviceMetaData() error {
	const step = "device_meta_data"
	obj, ok := v.Tree.Object(lwm2m.DeviceObjectID)
	if !ok {
		v.Output.Add(SeverityError, step, "device object missing")
		return fmt.Errorf("fcc: device object missing")
	}
	inst, ok := obj.Instance(0)
	if !ok {
		v.Output.Add(SeverityError, step, "device object instance 0 missing")
		return fmt.Errorf("fcc: device object instance 0 missing")
	}
	for _, rid := range []uint16{17, 18} {
		r, ok := inst.Resource(lwm2m.ByID(rid))
		if !ok {
			v.Output.Add(SeverityWarning, step, fmt.Sprintf("resource %d/0/%d not present", lwm2m.DeviceObjectID, rid))
			continue
		}
		val, err := r.GetValue()
		if err != nil || val.String() == "" {
			v.Output.Add(SeverityWarning, step, fmt.Sprintf("resource %d/0/%d empty", lwm2m.DeviceObjectID, rid))
		}
	}
	return nil
}

// checkSecurityObjects requires the bootstrap (or LwM2M) server URI and
// public-key material to be present, depending on useBootstrap.
func (v *Verifier) checkSecurityObjects(useBootstrap bool) error {
	const step = "security_objects"
	obj, ok := v.Tree.Object(lwm2m.SecurityObjectID)
	if !ok {
		v.Output.Add(SeverityError, step, "security object missing")
		return fmt.Errorf("fcc: security object missing")
	}
	inst, ok := obj.Instance(0)
	if !ok {
		v.Output.Add(SeverityError, step, "security object instance 0 missing")
		return fmt.Errorf("fcc: security object instance 0 missing")
	}
	// Server URI (0/0/0) and public key (0/0/3) are required regardless of
	// bootstrap mode; only their meaning (bootstrap vs. LwM2M server)
	// differs, which the caller already resolved via useBootstrap.
	for _, rid := range []uint16{0, 3} {
		r, ok := inst.Resource(lwm2m.ByID(rid))
		if !ok {
			v.Output.Add(SeverityError, step, fmt.Sprintf("security resource %d/0/%d missing (bootstrap=%v)", lwm2m.SecurityObjectID, rid, useBootstrap))
			return fmt.Errorf("fcc: security resource %d/0/%d missing (bootstrap=%v)", lwm2m.SecurityObjectID, rid, useBootstrap)
		}
		val, err := r.GetValue()
		if err != nil {
			v.Output.Add(SeverityError, step, fmt.Sprintf("reading security resource %d/0/%d: %v", lwm2m.SecurityObjectID, rid, err))
			return fmt.Errorf("fcc: reading security resource %d/0/%d: %w", lwm2m.SecurityObjectID, rid, err)
		}
		if val.IsNone() {
			v.Output.Add(SeverityError, step, fmt.Sprintf("security resource %d/0/%d not set", lwm2m.SecurityObjectID, rid))
			return fmt.Errorf("fcc: security resource %d/0/%d not set", lwm2m.SecurityObjectID, rid)
		}
	}
	return nil
}

// checkFirmwareUpdateIntegrity requires the Firmware object's Update Result
// (5/0/5) not to report an integrity failure: only the value 3 fails the
// check; every other Update Result value passes.
func (v *Verifier) checkFirmwareUpdateIntegrity() error {
	const step = "firmware_update_integrity"
	obj, ok := v.Tree.Object(lwm2m.FirmwareObjectID)
	if !ok {
		// Firmware Update is an optional object; its absence is not fatal.
		v.Output.Add(SeverityWarning, step, "firmware object not present")
		return nil
	}
	inst, ok := obj.Instance(0)
	if !ok {
		v.Output.Add(SeverityWarning, step, "firmware object instance 0 not present")
		return nil
	}
	r, ok := inst.Resource(lwm2m.ByID(5))
	if !ok {
		v.Output.Add(SeverityWarning, step, "update result resource not present")
		return nil
	}
	val, err := r.GetValue()
	if err != nil {
		v.Output.Add(SeverityError, step, fmt.Sprintf("reading firmware update result: %v", err))
		return fmt.Errorf("fcc: reading firmware update result: %w", err)
	}
	const updateFailed = 3 // OMA Firmware Update Result: 3 = "Firmware update failed"
	if val.Integer() == updateFailed {
		v.Output.Add(SeverityError, step, "last firmware update failed, device left inconsistent")
		return fmt.Errorf("fcc: last firmware update failed, device left inconsistent")
	}
	return nil
}

func (v *Verifier) requireNonEmptyStrings(step string, objID lwm2m.ObjectID, instID uint16, resIDs ...uint16) error {
	obj, ok := v.Tree.Object(objID)
	if !ok {
		v.Output.Add(SeverityError, step, fmt.Sprintf("object %d missing", objID))
		return fmt.Errorf("fcc: %s: object %d missing", step, objID)
	}
	inst, ok := obj.Instance(instID)
	if !ok {
		v.Output.Add(SeverityError, step, fmt.Sprintf("object %d instance %d missing", objID, instID))
		return fmt.Errorf("fcc: %s: object %d instance %d missing", step, objID, instID)
	}
	for _, rid := range resIDs {
		r, ok := inst.Resource(lwm2m.ByID(rid))
		if !ok {
			v.Output.Add(SeverityError, step, fmt.Sprintf("resource %d/%d/%d missing", objID, instID, rid))
			return fmt.Errorf("fcc: %s: resource %d/%d/%d missing", step, objID, instID, rid)
		}
		val, err := r.GetValue()
		if err != nil {
			v.Output.Add(SeverityError, step, fmt.Sprintf("reading resource %d/%d/%d: %v", objID, instID, rid, err))
			return fmt.Errorf("fcc: %s: reading resource %d/%d/%d: %w", step, objID, instID, rid, err)
		}
		if val.String() == "" {
			v.Output.Add(SeverityError, step, fmt.Sprintf("resource %d/%d/%d empty", objID, instID, rid))
			return fmt.Errorf("fcc: %s: resource %d/%d/%d empty", step, objID, instID, rid)
		}
	}
	return nil
}
