// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

// Package lwm2mtest builds a small, representative object tree (Security,
// Device, Firmware, Connectivity Monitor) shared by the dispatcher and codec
// tests so each doesn't have to hand-roll its own fixture.
package lwm2mtest

import (
	"context"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
)

// NewTree builds a tree with one instance each of Security (0), Device (3),
// Firmware (5), and Connectivity Monitor (4), populated with representative
// resources of the String, Integer, Boolean and Opaque value types, both
// single- and multi-instance.
func NewTree() *lwm2m.Tree {
	tree := lwm2m.NewTree()

	mustCreate(tree)

	return tree
}

func mustCreate(tree *lwm2m.Tree) {
	ctx := context.Background()

	sec, err := tree.CreateObject(lwm2m.SecurityObjectID, "Security")
	must(err)
	secInst, err := sec.CreateObjectInstance(0)
	must(err)
	must1(secInst.CreateStaticResource(lwm2m.ByID(0), lwm2m.TypeString, lwm2m.NewStringValue("coaps://example.org:5684"), false))
	must1(secInst.CreateStaticResource(lwm2m.ByID(1), lwm2m.TypeBoolean, lwm2m.NewBooleanValue(false), false))
	must1(secInst.CreateStaticResource(lwm2m.ByID(3), lwm2m.TypeOpaque, lwm2m.NewOpaqueValue([]byte{0xDE, 0xAD, 0xBE, 0xEF}), false))

	dev, err := tree.CreateObject(lwm2m.DeviceObjectID, "Device")
	must(err)
	devInst, err := dev.CreateObjectInstance(0)
	must(err)
	must1(devInst.CreateStaticResource(lwm2m.ByID(0), lwm2m.TypeString, lwm2m.NewStringValue("Acme Corp"), false))
	must1(devInst.CreateStaticResource(lwm2m.ByID(1), lwm2m.TypeString, lwm2m.NewStringValue("Widget 3000"), false))
	must1(devInst.CreateStaticResource(lwm2m.ByID(2), lwm2m.TypeString, lwm2m.NewStringValue("SN-00001"), false))
	reboot, err := devInst.CreateDynamicResource(lwm2m.ByID(4), lwm2m.TypeOpaque, false, false)
	must(err)
	reboot.SetExecuteFunc(func(ctx context.Context, args lwm2m.ExecuteArgs) ([]byte, error) {
		return nil, nil
	})
	battery, err := devInst.CreateDynamicResource(lwm2m.ByID(9), lwm2m.TypeInteger, true, false)
	must(err)
	must(battery.SetValue(ctx, lwm2m.NewIntegerValue(87)))
	errCodes, err := devInst.CreateDynamicResource(lwm2m.ByID(11), lwm2m.TypeInteger, false, true)
	must(err)
	must1(errCodes.CreateResourceInstance(0, lwm2m.NewIntegerValue(0)))
	must1(devInst.CreateStaticResource(lwm2m.ByID(17), lwm2m.TypeString, lwm2m.NewStringValue("widget"), false))
	must1(devInst.CreateStaticResource(lwm2m.ByID(18), lwm2m.TypeString, lwm2m.NewStringValue("rev-b"), false))

	fw, err := tree.CreateObject(lwm2m.FirmwareObjectID, "Firmware")
	must(err)
	fwInst, err := fw.CreateObjectInstance(0)
	must(err)
	pkgURI, err := fwInst.CreateDynamicResource(lwm2m.ByID(1), lwm2m.TypeString, false, false)
	must(err)
	must(pkgURI.SetValue(ctx, lwm2m.NewStringValue("")))
	update, err := fwInst.CreateDynamicResource(lwm2m.ByID(2), lwm2m.TypeOpaque, false, false)
	must(err)
	update.SetDelayedResponse(true)
	update.SetExecuteFunc(func(ctx context.Context, args lwm2m.ExecuteArgs) ([]byte, error) {
		return nil, nil
	})
	must1(fwInst.CreateStaticResource(lwm2m.ByID(3), lwm2m.TypeInteger, lwm2m.NewIntegerValue(0), false))
	must1(fwInst.CreateStaticResource(lwm2m.ByID(5), lwm2m.TypeInteger, lwm2m.NewIntegerValue(0), false))

	conn, err := tree.CreateObject(lwm2m.ConnectivityMonitorObjectID, "ConnectivityMonitor")
	must(err)
	connInst, err := conn.CreateObjectInstance(0)
	must(err)
	rssi, err := connInst.CreateDynamicResource(lwm2m.ByID(2), lwm2m.TypeInteger, true, false)
	must(err)
	must(rssi.SetValue(ctx, lwm2m.NewIntegerValue(-62)))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func must1[T any](v T, err error) T {
	must(err)
	return v
}
