// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import "context"

// ObjectInstance is the second level of the object tree. It owns the
// ObservationHandler pointer used by every Resource and ResourceInstance in
// its subtree (§4.3): Resource and ResourceInstance delegate rather than
// storing their own handler.
type ObjectInstance struct {
	baseNode
	parent    *Object
	resources []*Resource
	handler   ObservationHandler
}

// Parent returns the owning Object.
func (oi *ObjectInstance) Parent() *Object { return oi.parent }

// Resources returns the instance's child resources.
func (oi *ObjectInstance) Resources() []*Resource { return oi.resources }

// SetHandler installs the ObservationHandler collaborator used by this
// instance's whole subtree.
func (oi *ObjectInstance) SetHandler(h ObservationHandler) { oi.handler = h }

// Handler returns the installed ObservationHandler, or nil.
func (oi *ObjectInstance) Handler() ObservationHandler { return oi.handler }

func (oi *ObjectInstance) notifyHandler(fn func(ObservationHandler)) {
	if oi.handler != nil {
		fn(oi.handler)
	}
}

// Resource looks up a direct child resource by key (id preferred over name).
func (oi *ObjectInstance) Resource(key nodeKey) (*Resource, bool) {
	for _, r := range oi.resources {
		if key.matches(&r.baseNode) {
			return r, true
		}
	}
	return nil, false
}

// CreateStaticResource adds a GET-only resource whose value never changes
// via PUT (§4.1). value must match valueType.
func (oi *ObjectInstance) CreateStaticResource(key nodeKey, valueType ValueType, value Value, multi bool) (*Resource, error) {
	if err := oi.checkSiblingFree(key, "create_static_resource"); err != nil {
		return nil, err
	}
	r := newResource(oi, key, valueType, multi)
	r.static = true
	r.operation = OpGet
	if !multi {
		if value.Type() != valueType {
			return nil, newErr(KindInvalidType, "create_static_resource", r.path, nil)
		}
		if value.exceedsLength(MaxValueLength) {
			return nil, newErr(KindOutOfMemory, "create_static_resource", r.path, nil)
		}
		r.value = value
	}
	oi.resources = append(oi.resources, r)
	oi.markChanged()
	return r, nil
}

// CreateDynamicResource adds a GET/PUT-capable resource with no initial
// value, defaulting to operations {GET, PUT} per §4.1.
func (oi *ObjectInstance) CreateDynamicResource(key nodeKey, valueType ValueType, observable, multi bool) (*Resource, error) {
	if err := oi.checkSiblingFree(key, "create_dynamic_resource"); err != nil {
		return nil, err
	}
	r := newResource(oi, key, valueType, multi)
	r.operation = OpGet | OpPut
	r.observable = observable
	oi.resources = append(oi.resources, r)
	oi.markChanged()
	return r, nil
}

// RemoveResource deletes a direct child resource by key.
func (oi *ObjectInstance) RemoveResource(key nodeKey) bool {
	for i, r := range oi.resources {
		if key.matches(&r.baseNode) {
			oi.notifyHandler(func(h ObservationHandler) { h.ResourceToBeDeleted(context.Background(), r) })
			oi.resources = append(oi.resources[:i], oi.resources[i+1:]...)
			oi.markChanged()
			return true
		}
	}
	return false
}

func (oi *ObjectInstance) checkSiblingFree(key nodeKey, op string) error {
	for _, r := range oi.resources {
		if (key.hasID && r.hasID && key.id == r.id) || (key.hasName && r.hasName && key.name == r.name) {
			return newErr(KindItemAlreadyExists, op, oi.path, nil)
		}
	}
	return nil
}

func newObjectInstance(parent *Object, id uint16) *ObjectInstance {
	oi := &ObjectInstance{parent: parent}
	oi.hasID, oi.id = true, id
	oi.path = joinPath(parent.path, oi.Key())
	oi.operation = parent.operation
	return oi
}
