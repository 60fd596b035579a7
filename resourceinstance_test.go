// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m_test

import (
	"context"
	"testing"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
)

func TestResourceInstanceSetValueTypeMismatchFails(t *testing.T) {
	tree := lwm2m.NewTree()
	dev, _ := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	inst, _ := dev.CreateObjectInstance(0)
	r, _ := inst.CreateDynamicResource(lwm2m.ByID(11), lwm2m.TypeInteger, false, true)
	ri, err := r.CreateResourceInstance(0, lwm2m.NewIntegerValue(0))
	if err != nil {
		t.Fatalf("CreateResourceInstance: %v", err)
	}

	if err := ri.SetValue(context.Background(), lwm2m.NewStringValue("oops")); err == nil {
		t.Fatal("expected SetValue with mismatched type to fail")
	}
}

func TestResourceInstanceSetValueNotifiesParentHandler(t *testing.T) {
	tree := lwm2m.NewTree()
	dev, _ := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	inst, _ := dev.CreateObjectInstance(0)
	r, _ := inst.CreateDynamicResource(lwm2m.ByID(11), lwm2m.TypeInteger, false, true)
	ri, err := r.CreateResourceInstance(0, lwm2m.NewIntegerValue(0))
	if err != nil {
		t.Fatalf("CreateResourceInstance: %v", err)
	}

	h := &recordingHandler{}
	inst.SetHandler(h)

	if err := ri.SetValue(context.Background(), lwm2m.NewIntegerValue(9)); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if h.updated != 1 {
		t.Fatalf("ValueUpdated called %d times, want 1", h.updated)
	}
	if ri.Value().Integer() != 9 {
		t.Fatalf("Value() = %d, want 9", ri.Value().Integer())
	}
}

func TestResourceInstanceInheritsParentAttributes(t *testing.T) {
	tree := lwm2m.NewTree()
	dev, _ := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	inst, _ := dev.CreateObjectInstance(0)
	r, _ := inst.CreateDynamicResource(lwm2m.ByID(11), lwm2m.TypeInteger, false, true)
	ri, err := r.CreateResourceInstance(0, lwm2m.NewIntegerValue(0))
	if err != nil {
		t.Fatalf("CreateResourceInstance: %v", err)
	}

	if ri.Operation() != r.Operation() {
		t.Fatalf("ResourceInstance.Operation() = %v, want %v", ri.Operation(), r.Operation())
	}
	if ri.Parent() != r {
		t.Fatal("Parent() did not return the owning Resource")
	}
}

func TestRemoveResourceInstanceLeavesResourceEmpty(t *testing.T) {
	tree := lwm2m.NewTree()
	dev, _ := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	inst, _ := dev.CreateObjectInstance(0)
	r, _ := inst.CreateDynamicResource(lwm2m.ByID(11), lwm2m.TypeInteger, false, true)
	if _, err := r.CreateResourceInstance(0, lwm2m.NewIntegerValue(0)); err != nil {
		t.Fatalf("CreateResourceInstance: %v", err)
	}

	if !r.RemoveResourceInstance(0) {
		t.Fatal("expected RemoveResourceInstance to report true")
	}
	if len(r.Instances()) != 0 {
		t.Fatalf("Instances() = %d, want 0", len(r.Instances()))
	}
	if _, err := tree.FindPath("3/0/11"); err != nil {
		t.Fatalf("expected resource 3/0/11 to still resolve, got err %v", err)
	}
}
