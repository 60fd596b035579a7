// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

// Tree owns the root Objects of an LwM2M object tree. The application
// builds it at boot; this package never persists it (explicit Non-goal).
type Tree struct {
	objects []*Object
}

// NewTree returns an empty Tree.
func NewTree() *Tree { return &Tree{} }

// Objects returns the tree's root objects.
func (t *Tree) Objects() []*Object { return t.objects }

// Object looks up a root object by id.
func (t *Tree) Object(id ObjectID) (*Object, bool) {
	for _, o := range t.objects {
		if o.hasID && ObjectID(o.id) == id {
			return o, true
		}
	}
	return nil, false
}

// CreateObject inserts a new root object. name is optional; id is always the
// canonical key for objects. Fails with KindItemAlreadyExists on a
// duplicate id, per §4.1.
func (t *Tree) CreateObject(id ObjectID, name string) (*Object, error) {
	if _, ok := t.Object(id); ok {
		return nil, newErr(KindItemAlreadyExists, "create_object", "", nil)
	}
	o := &Object{tree: t}
	o.hasID, o.id = true, uint16(id)
	if name != "" {
		o.hasName, o.name = true, name
	}
	o.path = o.Key()
	o.operation = OpGet | OpPut | OpPost | OpDelete
	t.objects = append(t.objects, o)
	return o, nil
}

// FindPath resolves a canonical "<obj>/<inst>/<res>[/<resInst>]" path to the
// most specific node it names, walking ordered sibling sequences (O(depth)
// per §4.1's invariant). The returned value is one of *Object,
// *ObjectInstance, *Resource, or *ResourceInstance.
func (t *Tree) FindPath(path string) (any, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, newErr(KindNotFound, "find_path", path, nil)
	}

	obj, ok := t.Object(ObjectID(segs[0]))
	if !ok {
		return nil, newErr(KindNotFound, "find_path", path, nil)
	}
	if len(segs) == 1 {
		return obj, nil
	}

	inst, ok := obj.Instance(segs[1])
	if !ok {
		return nil, newErr(KindNotFound, "find_path", path, nil)
	}
	if len(segs) == 2 {
		return inst, nil
	}

	res, ok := inst.Resource(ByID(segs[2]))
	if !ok {
		return nil, newErr(KindNotFound, "find_path", path, nil)
	}
	if len(segs) == 3 {
		return res, nil
	}

	ri, ok := res.Instance(segs[3])
	if !ok {
		return nil, newErr(KindNotFound, "find_path", path, nil)
	}
	return ri, nil
}
