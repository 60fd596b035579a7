// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import "context"

// ResourceInstance is a leaf of a multi-instance Resource. It never owns
// children; its parent owns it exclusively and it holds a non-owning
// back-reference to that parent, per the parent-back-reference design note.
type ResourceInstance struct {
	baseNode
	parent *Resource
	value  Value
}

// Parent returns the owning Resource.
func (ri *ResourceInstance) Parent() *Resource { return ri.parent }

// Value returns the instance's current value.
func (ri *ResourceInstance) Value() Value { return ri.value }

// SetValue validates v's type against the parent resource's declared type and
// replaces the instance's value.
func (ri *ResourceInstance) SetValue(ctx context.Context, v Value) error {
	if v.Type() != ri.parent.valueType {
		return newErr(KindInvalidType, "set_value", ri.path, nil)
	}
	if v.exceedsLength(MaxValueLength) {
		return newErr(KindOutOfMemory, "set_value", ri.path, nil)
	}
	ri.value = v
	ri.markChanged()
	ri.parent.markChanged()
	ri.parent.notifyHandler(func(h ObservationHandler) { h.ValueUpdated(ctx, ri) })
	return nil
}

func newResourceInstance(parent *Resource, id uint16) *ResourceInstance {
	ri := &ResourceInstance{parent: parent}
	ri.hasID, ri.id = true, id
	ri.path = joinPath(parent.path, ri.Key())
	ri.operation = parent.operation
	ri.contentType = parent.contentType
	ri.obsLevel = parent.obsLevel
	return ri
}
