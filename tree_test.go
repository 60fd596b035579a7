// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m_test

import (
	"context"
	"errors"
	"testing"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
)

func TestCreateObjectDuplicateFails(t *testing.T) {
	tree := lwm2m.NewTree()
	if _, err := tree.CreateObject(lwm2m.DeviceObjectID, "Device"); err != nil {
		t.Fatalf("CreateObject: %v", err)
	}
	_, err := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	if !errors.Is(err, &lwm2m.Error{Kind: lwm2m.KindItemAlreadyExists}) {
		t.Fatalf("expected KindItemAlreadyExists, got %v", err)
	}
}

func TestFindPathResolvesEachLevel(t *testing.T) {
	tree := lwm2m.NewTree()
	dev, err := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	if err != nil {
		t.Fatalf("CreateObject: %v", err)
	}
	inst, err := dev.CreateObjectInstance(0)
	if err != nil {
		t.Fatalf("CreateObjectInstance: %v", err)
	}
	res, err := inst.CreateDynamicResource(lwm2m.ByID(11), lwm2m.TypeInteger, false, true)
	if err != nil {
		t.Fatalf("CreateDynamicResource: %v", err)
	}
	ri, err := res.CreateResourceInstance(0, lwm2m.NewIntegerValue(7))
	if err != nil {
		t.Fatalf("CreateResourceInstance: %v", err)
	}

	cases := []struct {
		path string
		want any
	}{
		{"3", dev},
		{"3/0", inst},
		{"3/0/11", res},
		{"3/0/11/0", ri},
	}
	for _, c := range cases {
		got, err := tree.FindPath(c.path)
		if err != nil {
			t.Fatalf("FindPath(%q): %v", c.path, err)
		}
		if got != c.want {
			t.Fatalf("FindPath(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestFindPathNotFound(t *testing.T) {
	tree := lwm2m.NewTree()
	if _, err := tree.FindPath("99/0/0"); err == nil {
		t.Fatal("expected error for unknown object")
	}
}

func TestRemoveObjectInstanceDeletesSubtree(t *testing.T) {
	tree := lwm2m.NewTree()
	dev, _ := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	if _, err := dev.CreateObjectInstance(0); err != nil {
		t.Fatalf("CreateObjectInstance: %v", err)
	}
	if !dev.RemoveObjectInstance(0) {
		t.Fatal("expected RemoveObjectInstance to report true")
	}
	if _, ok := dev.Instance(0); ok {
		t.Fatal("expected instance 0 to be gone")
	}
}

func TestResourceValueXORInstances(t *testing.T) {
	tree := lwm2m.NewTree()
	dev, _ := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	inst, _ := dev.CreateObjectInstance(0)

	single, err := inst.CreateDynamicResource(lwm2m.ByID(1), lwm2m.TypeString, false, false)
	if err != nil {
		t.Fatalf("CreateDynamicResource: %v", err)
	}
	if err := single.SetValue(context.Background(), lwm2m.NewStringValue("hi")); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	multi, err := inst.CreateDynamicResource(lwm2m.ByID(2), lwm2m.TypeInteger, false, true)
	if err != nil {
		t.Fatalf("CreateDynamicResource(multi): %v", err)
	}
	if _, err := multi.GetValue(); err == nil {
		t.Fatal("expected GetValue on multi-instance resource to fail")
	}
	if err := multi.SetValue(context.Background(), lwm2m.NewIntegerValue(1)); err == nil {
		t.Fatal("expected SetValue on multi-instance resource to fail")
	}
}

func TestStaticResourceRejectsWrite(t *testing.T) {
	tree := lwm2m.NewTree()
	dev, _ := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	inst, _ := dev.CreateObjectInstance(0)
	r, err := inst.CreateStaticResource(lwm2m.ByID(0), lwm2m.TypeString, lwm2m.NewStringValue("Acme"), false)
	if err != nil {
		t.Fatalf("CreateStaticResource: %v", err)
	}
	if err := r.SetValue(context.Background(), lwm2m.NewStringValue("other")); err == nil {
		t.Fatal("expected SetValue on static resource to fail")
	}
}
