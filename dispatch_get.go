// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"context"

	"github.com/lwm2m-embedded/go-lwm2m/coap"
	"github.com/lwm2m-embedded/go-lwm2m/report"
)

// handleGet implements §4.2's GET processing: resolve the path, negotiate a
// response content-format against Accept, optionally start or stop an
// observation, and serialize the resolved node.
func (d *Dispatcher) handleGet(ctx context.Context, h coap.Header) coap.Response {
	target, err := d.tree.FindPath(h.Path)
	if err != nil {
		return coap.Response{Code: codeForError(err), Token: h.Token}
	}

	node, ok := target.(Node)
	if !ok {
		return coap.Response{Code: coap.NotFound, Token: h.Token}
	}
	if !node.Operation().Has(OpGet) {
		return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
	}

	format := node.ContentType()
	if h.HasAccept {
		if !h.Accept.Supported() {
			return coap.Response{Code: coap.NotAcceptable, Token: h.Token}
		}
		format = h.Accept
	} else if format != coap.ContentFormatTLV {
		// Plain text can only render a single scalar value; a multi-instance
		// resource (or a container node) always aggregates as TLV (§4.2 GET
		// step 6) regardless of the node's stored content-type preference.
		if canPlainText(target) {
			format = coap.ContentFormatPlainText
		} else {
			format = coap.ContentFormatTLV
		}
	}

	var payload []byte
	if format == coap.ContentFormatPlainText {
		payload, err = plainTextPayload(target)
	} else {
		payload, err = EncodeTLV(target)
	}
	if err != nil {
		return coap.Response{Code: codeForError(err), Token: h.Token}
	}

	resp := coap.Response{
		Code:          coap.Content,
		ContentFormat: format,
		HasContentFmt: true,
		Token:         h.Token,
		Payload:       payload,
	}
	if age := node.MaxAge(); age != 0 && age != coap.DefaultMaxAge {
		resp.MaxAge, resp.HasMaxAge = age, true
	}

	if h.HasObserve {
		if h.Observe == 0 {
			if !node.Observable() {
				return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
			}
			d.startObservation(h.Path, h.Token, node)
			resp.Observe, resp.HasObserve = nextObserveSeq(), true
		} else if h.Observe == 1 {
			d.stopObservation(h.Path)
		}
	}

	return resp
}

// canPlainText reports whether target can be rendered as a single plain-text
// scalar: only single-instance Resources and ResourceInstances have one
// value; Objects, ObjectInstances, and multi-instance Resources do not.
func canPlainText(target any) bool {
	switch n := target.(type) {
	case *Resource:
		return !n.multiInstance
	case *ResourceInstance:
		return true
	default:
		return false
	}
}

// plainTextPayload renders target's bare value as ASCII, valid only for
// single-instance Resources and ResourceInstances.
func plainTextPayload(target any) ([]byte, error) {
	switch n := target.(type) {
	case *Resource:
		if n.multiInstance {
			return nil, newErr(KindNotAcceptable, "get_plain_text", n.path, nil)
		}
		return []byte(n.value.PlainText()), nil
	case *ResourceInstance:
		return []byte(n.value.PlainText()), nil
	default:
		return nil, newErr(KindNotAcceptable, "get_plain_text", "", nil)
	}
}

func (d *Dispatcher) startObservation(path string, token []byte, node Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	o, ok := d.observations[path]
	if !ok {
		o = &observation{path: path, handler: report.New()}
		d.observations[path] = o
	}
	level := nodeObservationLevel(node)
	o.token = token
	o.level = level
	o.node = node
	setObservationLevelPropagated(node, level)
}

// nodeObservationLevel reports the observation scope implied by node's own
// kind, the level that Observe=0 registers when the request targets node
// directly (§4.3).
func nodeObservationLevel(node Node) ObservationLevel {
	switch node.(type) {
	case *Object:
		return ObserveObject
	case *ObjectInstance:
		return ObserveObjectInstance
	case *Resource:
		return ObserveResource
	case *ResourceInstance:
		return ObserveResourceInstance
	default:
		return ObserveNone
	}
}

func (d *Dispatcher) stopObservation(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.observations, path)
}

// setObservationLevelPropagated applies level to node and, for container
// nodes, to every descendant, per §4.3's "observation level propagates
// downward" invariant.
func setObservationLevelPropagated(node Node, level ObservationLevel) {
	switch n := node.(type) {
	case *Object:
		n.setObservationLevel(level)
		for _, oi := range n.instances {
			setObservationLevelPropagated(oi, level)
		}
	case *ObjectInstance:
		n.setObservationLevel(level)
		for _, r := range n.resources {
			setObservationLevelPropagated(r, level)
		}
	case *Resource:
		n.setObservationLevel(level)
		for _, ri := range n.instances {
			ri.setObservationLevel(level)
		}
	case *ResourceInstance:
		n.setObservationLevel(level)
	}
}
