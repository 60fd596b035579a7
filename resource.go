// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"context"
	"strconv"

	"github.com/lwm2m-embedded/go-lwm2m/coap"
	"github.com/lwm2m-embedded/go-lwm2m/report"
)

// ExecuteFunc implements a Resource's POST (execute) behavior.
type ExecuteFunc func(ctx context.Context, args ExecuteArgs) ([]byte, error)

// ExecuteArgs bundles the parameters passed to a Resource's execute
// callback: object/resource name, the owning object instance id, and the
// request payload. Supplemented from the original client, which splits the
// payload into ';'-delimited positional arguments for resources that accept
// more than one (e.g. Firmware Update's install arguments).
type ExecuteArgs struct {
	ObjectName       string
	ResourceName     string
	ObjectInstanceID uint16
	Argument         []byte
}

// Split parses Argument as a ';'-delimited list of positional arguments, the
// convention used by multi-argument execute resources.
func (a ExecuteArgs) Split() []string {
	if len(a.Argument) == 0 {
		return nil
	}
	out := []string{}
	start := 0
	arg := string(a.Argument)
	for i := 0; i < len(arg); i++ {
		if arg[i] == ';' {
			out = append(out, arg[start:i])
			start = i + 1
		}
	}
	out = append(out, arg[start:])
	return out
}

// Resource is the third level of the object tree. It either owns a single
// value (single-instance) or a non-empty set of ResourceInstances
// (multi-instance), never both — the has-value XOR has-instances invariant
// from §8.
type Resource struct {
	baseNode
	parent *ObjectInstance

	valueType    ValueType
	multiInstance bool
	static        bool // GET-only: PUT yields MethodNotAllowed

	value     Value           // used when !multiInstance
	instances []*ResourceInstance

	delayedResponse bool
	delayedToken    []byte

	execute ExecuteFunc

	report *report.Handler // lazily created on first attribute PUT
}

// Report returns the resource's lazily-created observation-attribute
// handler, creating it with default attributes if this is the first access.
func (r *Resource) Report() *report.Handler {
	if r.report == nil {
		r.report = report.New()
	}
	return r.report
}

// Parent returns the owning ObjectInstance.
func (r *Resource) Parent() *ObjectInstance { return r.parent }

// ValueType returns the resource's declared leaf type.
func (r *Resource) ValueType() ValueType { return r.valueType }

// MultiInstance reports whether this resource may carry ResourceInstance
// children.
func (r *Resource) MultiInstance() bool { return r.multiInstance }

// Static reports whether the resource is GET-only.
func (r *Resource) Static() bool { return r.static }

// Value returns the resource's own value. Only meaningful when
// !MultiInstance(); returns the zero Value otherwise.
func (r *Resource) Value() Value { return r.value }

// Instances returns the resource's child instances in creation order. Empty for a
// single-instance resource.
func (r *Resource) Instances() []*ResourceInstance { return r.instances }

// Instance looks up a child by instance id.
func (r *Resource) Instance(id uint16) (*ResourceInstance, bool) {
	for _, ri := range r.instances {
		if ri.id == id {
			return ri, true
		}
	}
	return nil, false
}

// SetValue replaces the resource's own value, validated against ValueType.
// Setting a single-instance resource's value clears any existing value, per
// §4.1's tie-break policy; it is an error to call this on a multi-instance
// resource (use CreateResourceInstance + ResourceInstance.SetValue instead).
func (r *Resource) SetValue(ctx context.Context, v Value) error {
	if r.static {
		return newErr(KindMethodNotAllowed, "set_value", r.path, nil)
	}
	if r.multiInstance {
		return newErr(KindInvalidParameter, "set_value", r.path, nil)
	}
	if v.Type() != r.valueType {
		return newErr(KindInvalidType, "set_value", r.path, nil)
	}
	if v.exceedsLength(MaxValueLength) {
		return newErr(KindOutOfMemory, "set_value", r.path, nil)
	}
	r.value = v
	r.markChanged()
	r.notifyHandler(func(h ObservationHandler) { h.ValueUpdated(ctx, r) })
	return nil
}

// GetValue returns the resource's own value (single-instance only).
func (r *Resource) GetValue() (Value, error) {
	if r.multiInstance {
		return Value{}, newErr(KindInvalidParameter, "get_value", r.path, nil)
	}
	return r.value, nil
}

// CreateResourceInstance adds a child instance. Only the owning resource may
// construct its children, per the lifecycle rule in §3.
func (r *Resource) CreateResourceInstance(id uint16, v Value) (*ResourceInstance, error) {
	if !r.multiInstance {
		return nil, newErr(KindInvalidParameter, "create_resource_instance", r.path, nil)
	}
	if v.Type() != r.valueType {
		return nil, newErr(KindInvalidType, "create_resource_instance", r.path, nil)
	}
	if v.exceedsLength(MaxValueLength) {
		return nil, newErr(KindOutOfMemory, "create_resource_instance", r.path, nil)
	}
	if _, ok := r.Instance(id); ok {
		return nil, newErr(KindItemAlreadyExists, "create_resource_instance", r.path, nil)
	}
	ri := newResourceInstance(r, id)
	ri.value = v
	r.instances = append(r.instances, ri)
	r.markChanged()
	return ri, nil
}

// RemoveResourceInstance deletes a child instance by id. Removing the last
// instance leaves the resource empty rather than deleting the resource
// itself, per §4.1.
func (r *Resource) RemoveResourceInstance(id uint16) bool {
	for i, ri := range r.instances {
		if ri.id == id {
			r.notifyHandler(func(h ObservationHandler) { h.ResourceToBeDeleted(context.Background(), ri) })
			r.instances = append(r.instances[:i], r.instances[i+1:]...)
			r.markChanged()
			return true
		}
	}
	return false
}

// SetDelayedResponse configures whether POST returns a provisional response
// and defers the real one to a later FinishDelayedResponse call (§4.2 POST
// step 4).
func (r *Resource) SetDelayedResponse(delayed bool) { r.delayedResponse = delayed }

// FinishDelayedResponse sends the deferred response for a delayed-response
// Resource, once the application's own asynchronous execute work has
// completed. err is the outcome of that work: nil sends Changed, otherwise
// the response code is derived from err the same way a synchronous execute
// failure would be. The core never calls this itself; it is the explicit
// hook §4.2 step 4 leaves to the application.
func (r *Resource) FinishDelayedResponse(ctx context.Context, err error) {
	code := coap.Changed
	if err != nil {
		code = codeForError(err)
	}
	r.notifyHandler(func(h ObservationHandler) { h.SendDelayedResponse(ctx, r, code) })
}

// DelayedResponse reports whether delayed-response mode is enabled.
func (r *Resource) DelayedResponse() bool { return r.delayedResponse }

// SetExecuteFunc registers the callback invoked by POST (execute), delayed or
// not, and enables the POST operation on the resource.
func (r *Resource) SetExecuteFunc(fn ExecuteFunc) { r.execute = fn; r.operation |= OpPost }

func (r *Resource) notifyHandler(fn func(ObservationHandler)) {
	if r.parent != nil {
		r.parent.notifyHandler(fn)
	}
}

func newResource(parent *ObjectInstance, key nodeKey, valueType ValueType, multi bool) *Resource {
	r := &Resource{parent: parent, valueType: valueType, multiInstance: multi}
	key.apply(&r.baseNode)
	r.path = joinPath(parent.path, r.Key())
	return r
}

// nodeKey identifies a child by numeric id, by name, or both; numeric id is
// canonical when both are present (§3).
type nodeKey struct {
	id      uint16
	hasID   bool
	name    string
	hasName bool
}

// ByID builds a nodeKey from a numeric id.
func ByID(id uint16) nodeKey { return nodeKey{id: id, hasID: true} }

// ByName builds a nodeKey from a textual name.
func ByName(name string) nodeKey { return nodeKey{name: name, hasName: true} }

// ByIDAndName builds a nodeKey carrying both; id remains canonical for
// lookups.
func ByIDAndName(id uint16, name string) nodeKey {
	return nodeKey{id: id, hasID: true, name: name, hasName: true}
}

func (k nodeKey) apply(b *baseNode) {
	b.id, b.hasID = k.id, k.hasID
	b.name, b.hasName = k.name, k.hasName
}

func (k nodeKey) matches(b *baseNode) bool {
	if k.hasID && b.hasID {
		return k.id == b.id
	}
	if k.hasName && b.hasName {
		return k.name == b.name
	}
	return false
}

func (k nodeKey) string() string {
	if k.hasID {
		return strconv.FormatUint(uint64(k.id), 10)
	}
	return k.name
}
