// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"context"
	"sync"
	"time"

	"github.com/lwm2m-embedded/go-lwm2m/coap"
	"github.com/lwm2m-embedded/go-lwm2m/report"
)

// Sender is the transport collaborator a Dispatcher uses to push
// notifications and delayed responses that aren't replies to the inbound
// request currently being handled.
type Sender interface {
	Send(ctx context.Context, resp coap.Response)
}

// Dispatcher routes inbound CoAP requests against a Tree and bridges the
// tree's ObservationHandler callbacks to a Sender, implementing the request
// processing described by §4.2/§4.3. One Dispatcher should own exactly one
// Tree: it installs itself as every ObjectInstance's handler via Attach.
type Dispatcher struct {
	tree   *Tree
	sender Sender

	mu           sync.Mutex
	observations map[string]*observation
}

type observation struct {
	path    string
	token   []byte
	level   ObservationLevel
	node    Node // the node the Observe option was set on
	handler *report.Handler
}

// NewDispatcher returns a Dispatcher that serves tree and pushes
// notifications/delayed responses through sender.
func NewDispatcher(tree *Tree, sender Sender) *Dispatcher {
	d := &Dispatcher{tree: tree, sender: sender, observations: make(map[string]*observation)}
	d.Attach()
	return d
}

// Attach installs d as the ObservationHandler for every ObjectInstance
// currently in the tree. Call it again after adding object instances at
// runtime.
func (d *Dispatcher) Attach() {
	for _, o := range d.tree.Objects() {
		for _, oi := range o.Instances() {
			oi.SetHandler(d)
		}
	}
}

// Handle routes h by method to the matching handler and returns the response
// to send back on the same exchange. Observe/notify side effects are pushed
// separately through the Sender.
func (d *Dispatcher) Handle(ctx context.Context, h coap.Header) coap.Response {
	switch h.Code {
	case coap.GET:
		return d.handleGet(ctx, h)
	case coap.PUT:
		return d.handlePut(ctx, h)
	case coap.POST:
		return d.handlePost(ctx, h)
	case coap.DELETE:
		return d.handleDelete(ctx, h)
	default:
		return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
	}
}

// Tick drives the report handlers of every currently active observation,
// firing ObservationToBeSent through the Sender for any that are due. The
// caller supplies now so tests can drive the clock deterministically and so
// a single shared ticker governs every observation, per §4.5.
func (d *Dispatcher) Tick(ctx context.Context, now time.Time) {
	d.mu.Lock()
	obs := make([]*observation, 0, len(d.observations))
	for _, o := range d.observations {
		obs = append(obs, o)
	}
	d.mu.Unlock()

	for _, o := range obs {
		d.tickOne(ctx, now, o)
	}
}

func (d *Dispatcher) tickOne(ctx context.Context, now time.Time, o *observation) {
	value, numeric := float64(0), false
	if r, ok := o.node.(*Resource); ok && !r.multiInstance {
		value, numeric = r.value.Numeric()
	} else if ri, ok := o.node.(*ResourceInstance); ok {
		value, numeric = ri.value.Numeric()
	}
	if o.handler.Tick(now, value, numeric, o.node.Changed()) {
		d.sender.Send(ctx, d.buildNotification(o))
		if c, ok := o.node.(interface{ clearChanged() }); ok {
			c.clearChanged()
		}
	}
}

func (d *Dispatcher) buildNotification(o *observation) coap.Response {
	target, err := d.tree.FindPath(o.path)
	if err != nil {
		return coap.Response{Code: coap.NotFound, Token: o.token}
	}
	payload, err := EncodeTLV(target)
	if err != nil {
		return coap.Response{Code: codeForError(err), Token: o.token}
	}
	return coap.Response{
		Code:          coap.Content,
		ContentFormat: coap.ContentFormatTLV,
		HasContentFmt: true,
		Observe:       nextObserveSeq(),
		HasObserve:    true,
		Token:         o.token,
		Payload:       payload,
	}
}

var (
	observeSeqMu  sync.Mutex
	observeSeqNum uint32
)

// nextObserveSeq returns a strictly increasing Observe option value, per RFC
// 7641's ordering requirement.
func nextObserveSeq() uint32 {
	observeSeqMu.Lock()
	defer observeSeqMu.Unlock()
	observeSeqNum++
	return observeSeqNum
}

// ObservationToBeSent implements ObservationHandler: it is the tree's own
// notification trigger (e.g. from a threshold evaluated elsewhere); the
// Dispatcher forwards it verbatim rather than re-deciding via report.Handler.
func (d *Dispatcher) ObservationToBeSent(ctx context.Context, node Node, token []byte, level ObservationLevel, sendObject bool) {
	var target any = node
	if sendObject {
		target, _ = d.tree.FindPath(node.Path())
	}
	payload, err := EncodeTLV(target)
	if err != nil {
		return
	}
	d.sender.Send(ctx, coap.Response{
		Code:          coap.Content,
		ContentFormat: coap.ContentFormatTLV,
		HasContentFmt: true,
		Observe:       nextObserveSeq(),
		HasObserve:    true,
		Token:         token,
		Payload:       payload,
	})
}

// SendDelayedResponse implements ObservationHandler.
func (d *Dispatcher) SendDelayedResponse(ctx context.Context, resource *Resource, code ResponseCode) {
	d.sender.Send(ctx, coap.Response{Code: code, Token: resource.delayedToken})
}

// ResourceToBeDeleted implements ObservationHandler: it drops any active
// observation rooted at node's path.
func (d *Dispatcher) ResourceToBeDeleted(ctx context.Context, node Node) {
	d.mu.Lock()
	delete(d.observations, node.Path())
	d.mu.Unlock()
}

// ValueUpdated implements ObservationHandler. The report-handler triggering
// itself happens on Tick; ValueUpdated only needs to mark the node dirty,
// which SetValue already did before calling here, so there is nothing
// further to do beyond being a valid no-op implementation of the interface.
func (d *Dispatcher) ValueUpdated(ctx context.Context, node Node) {}
