// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"context"

	"github.com/lwm2m-embedded/go-lwm2m/coap"
	"github.com/lwm2m-embedded/go-lwm2m/tlv"
)

// handlePost implements §4.2's POST processing: on a Resource it executes
// the registered ExecuteFunc, either synchronously or, when
// Resource.DelayedResponse is set, acknowledging immediately and delivering
// the real result later through SendDelayedResponse (§4.2 step 4). On an
// Object it creates a new ObjectInstance from the TLV payload; on an
// ObjectInstance it applies a partial update (fields not present in the
// payload are left untouched, unlike PUT which is a full replace).
func (d *Dispatcher) handlePost(ctx context.Context, h coap.Header) coap.Response {
	target, err := d.tree.FindPath(h.Path)
	if err != nil {
		return coap.Response{Code: codeForError(err), Token: h.Token}
	}
	node, ok := target.(Node)
	if !ok {
		return coap.Response{Code: coap.NotFound, Token: h.Token}
	}
	if !node.Operation().Has(OpPost) {
		return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
	}

	switch n := target.(type) {
	case *Resource:
		return d.handleExecute(ctx, h, n)
	case *ObjectInstance:
		if err := DecodeTLVIntoObjectInstance(ctx, n, h.Payload); err != nil {
			return coap.Response{Code: codeForError(err), Token: h.Token}
		}
		return coap.Response{Code: coap.Changed, Token: h.Token}
	case *Object:
		return d.handleCreate(ctx, h, n)
	default:
		return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
	}
}

func (d *Dispatcher) handleExecute(ctx context.Context, h coap.Header, r *Resource) coap.Response {
	if r.execute == nil {
		return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
	}
	args := ExecuteArgs{
		ObjectName:       r.parent.parent.Name(),
		ResourceName:     r.Name(),
		ObjectInstanceID: r.parent.ID(),
		Argument:         h.Payload,
	}

	if r.delayedResponse {
		// The execute callback only kicks off the resource's own asynchronous
		// work (e.g. flashing a firmware image) and must return without
		// blocking; the core never waits for or drives that work itself. The
		// real result reaches the peer later, when the application calls
		// Resource.FinishDelayedResponse once its own work completes.
		if _, err := r.execute(ctx, args); err != nil {
			return coap.Response{Code: codeForError(err), Token: h.Token}
		}
		r.delayedToken = h.Token
		return coap.Response{Code: coap.Changed, Token: h.Token}
	}

	payload, err := r.execute(ctx, args)
	if err != nil {
		return coap.Response{Code: codeForError(err), Token: h.Token}
	}
	return coap.Response{Code: coap.Changed, Token: h.Token, Payload: payload}
}

// handleCreate implements LwM2M Create: the payload is one ObjectInstance
// TLV field naming the new instance id and its initial resource values.
func (d *Dispatcher) handleCreate(ctx context.Context, h coap.Header, o *Object) coap.Response {
	fields, err := tlv.Unmarshal(h.Payload)
	if err != nil || len(fields) != 1 || fields[0].Type != tlv.EntityObjectInstance {
		return coap.Response{Code: coap.BadRequest, Token: h.Token}
	}
	if _, exists := o.Instance(fields[0].ID); exists {
		return coap.Response{Code: coap.BadRequest, Token: h.Token}
	}
	oi, err := o.CreateObjectInstance(fields[0].ID)
	if err != nil {
		return coap.Response{Code: codeForError(err), Token: h.Token}
	}
	if err := DecodeTLVIntoObjectInstance(ctx, oi, fields[0].Value); err != nil {
		return coap.Response{Code: codeForError(err), Token: h.Token}
	}
	return coap.Response{Code: coap.Changed, Token: h.Token}
}

// handleDelete removes an ObjectInstance addressed by path, per §4.2.
func (d *Dispatcher) handleDelete(ctx context.Context, h coap.Header) coap.Response {
	target, err := d.tree.FindPath(h.Path)
	if err != nil {
		return coap.Response{Code: codeForError(err), Token: h.Token}
	}
	oi, ok := target.(*ObjectInstance)
	if !ok {
		return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
	}
	if !oi.Operation().Has(OpDelete) {
		return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
	}
	if !oi.parent.RemoveObjectInstance(oi.id) {
		return coap.Response{Code: coap.NotFound, Token: h.Token}
	}
	return coap.Response{Code: coap.Changed, Token: h.Token}
}
