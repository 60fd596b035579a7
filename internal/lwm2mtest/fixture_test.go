// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2mtest

import (
	"testing"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
)

func TestNewTreeBuildsExpectedObjects(t *testing.T) {
	tree := NewTree()

	for _, id := range []lwm2m.ObjectID{
		lwm2m.SecurityObjectID,
		lwm2m.DeviceObjectID,
		lwm2m.FirmwareObjectID,
		lwm2m.ConnectivityMonitorObjectID,
	} {
		if _, ok := tree.Object(id); !ok {
			t.Fatalf("expected object %d present", id)
		}
	}

	node, err := tree.FindPath("3/0/9")
	if err != nil {
		t.Fatalf("FindPath(3/0/9): %v", err)
	}
	r, ok := node.(*lwm2m.Resource)
	if !ok {
		t.Fatalf("3/0/9 resolved to %T, want *lwm2m.Resource", node)
	}
	val, err := r.GetValue()
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if val.Integer() != 87 {
		t.Fatalf("battery level = %d, want 87", val.Integer())
	}
}
