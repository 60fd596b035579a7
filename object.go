// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import "context"

// Object is the top level of the object tree, owned by a Tree.
type Object struct {
	baseNode
	tree      *Tree
	instances []*ObjectInstance
}

// Instances returns the object's child instances.
func (o *Object) Instances() []*ObjectInstance { return o.instances }

// Instance looks up a child instance by id.
func (o *Object) Instance(id uint16) (*ObjectInstance, bool) {
	for _, oi := range o.instances {
		if oi.id == id {
			return oi, true
		}
	}
	return nil, false
}

// CreateObjectInstance inserts a new instance under this object. Fails with
// KindItemAlreadyExists on a duplicate id, per §4.1.
func (o *Object) CreateObjectInstance(id uint16) (*ObjectInstance, error) {
	if _, ok := o.Instance(id); ok {
		return nil, newErr(KindItemAlreadyExists, "create_object_instance", o.path, nil)
	}
	oi := newObjectInstance(o, id)
	o.instances = append(o.instances, oi)
	o.markChanged()
	return oi, nil
}

// RemoveObjectInstance deletes an instance and its subtree, in-order
// (children before parent), per the recursive-destruction lifecycle rule.
func (o *Object) RemoveObjectInstance(id uint16) bool {
	for i, oi := range o.instances {
		if oi.id == id {
			for _, r := range oi.resources {
				oi.notifyHandler(func(h ObservationHandler) { h.ResourceToBeDeleted(context.Background(), r) })
			}
			o.instances = append(o.instances[:i], o.instances[i+1:]...)
			o.markChanged()
			return true
		}
	}
	return false
}
