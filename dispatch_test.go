// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m_test

import (
	"context"
	"sync"
	"testing"
	"time"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
	"github.com/lwm2m-embedded/go-lwm2m/coap"
	"github.com/lwm2m-embedded/go-lwm2m/internal/lwm2mtest"
)

// recordingSender collects every Response pushed outside the request/reply
// flow, so tests can assert on Observe notifications and delayed responses.
type recordingSender struct {
	mu   sync.Mutex
	sent []coap.Response
}

func (s *recordingSender) Send(ctx context.Context, resp coap.Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, resp)
}

func (s *recordingSender) all() []coap.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]coap.Response, len(s.sent))
	copy(out, s.sent)
	return out
}

func newTestDispatcher() (*lwm2m.Dispatcher, *recordingSender) {
	tree := lwm2mtest.NewTree()
	sender := &recordingSender{}
	return lwm2m.NewDispatcher(tree, sender), sender
}

func TestDispatchGetPlainText(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Handle(context.Background(), coap.Header{
		Code:          coap.GET,
		Path:          "3/0/0",
		Accept:        coap.ContentFormatPlainText,
		HasAccept:     true,
		Token:         []byte{1},
	})
	if resp.Code != coap.Content {
		t.Fatalf("Code = %v, want Content", resp.Code)
	}
	if string(resp.Payload) != "Acme Corp" {
		t.Fatalf("Payload = %q, want %q", resp.Payload, "Acme Corp")
	}
}

func TestDispatchGetPlainTextDefault(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Handle(context.Background(), coap.Header{Code: coap.GET, Path: "3/0/9", Token: []byte{2}})
	if resp.Code != coap.Content {
		t.Fatalf("Code = %v, want Content", resp.Code)
	}
	if !resp.HasContentFmt || resp.ContentFormat != coap.ContentFormatPlainText {
		t.Fatalf("expected default plain-text content-format, got %v (has=%v)", resp.ContentFormat, resp.HasContentFmt)
	}
}

func TestDispatchGetMultiInstanceDefaultsToTLV(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Handle(context.Background(), coap.Header{Code: coap.GET, Path: "3/0/11", Token: []byte{21}})
	if resp.Code != coap.Content {
		t.Fatalf("Code = %v, want Content", resp.Code)
	}
	if !resp.HasContentFmt || resp.ContentFormat != coap.ContentFormatTLV {
		t.Fatalf("expected multi-instance resource to default to TLV, got %v (has=%v)", resp.ContentFormat, resp.HasContentFmt)
	}
}

func TestDispatchGetNotFound(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Handle(context.Background(), coap.Header{Code: coap.GET, Path: "99/0/0", Token: []byte{3}})
	if resp.Code != coap.NotFound {
		t.Fatalf("Code = %v, want NotFound", resp.Code)
	}
}

func TestDispatchPutPlainText(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Handle(context.Background(), coap.Header{
		Code:          coap.PUT,
		Path:          "5/0/1",
		Payload:       []byte("http://example.org/fw.bin"),
		ContentFormat: coap.ContentFormatPlainText,
		HasContentFmt: true,
		Token:         []byte{4},
	})
	if resp.Code != coap.Changed {
		t.Fatalf("Code = %v, want Changed", resp.Code)
	}

	get := d.Handle(context.Background(), coap.Header{
		Code: coap.GET, Path: "5/0/1", Accept: coap.ContentFormatPlainText, HasAccept: true,
	})
	if string(get.Payload) != "http://example.org/fw.bin" {
		t.Fatalf("Payload = %q after PUT", get.Payload)
	}
}

func TestDispatchPutFirmwareURITooLong(t *testing.T) {
	d, _ := newTestDispatcher()
	long := make([]byte, lwm2m.FirmwarePackageURIMaxLength+1)
	for i := range long {
		long[i] = 'a'
	}
	resp := d.Handle(context.Background(), coap.Header{
		Code:          coap.PUT,
		Path:          "5/0/1",
		Payload:       long,
		ContentFormat: coap.ContentFormatPlainText,
		HasContentFmt: true,
	})
	if resp.Code != coap.NotAcceptable {
		t.Fatalf("Code = %v, want NotAcceptable", resp.Code)
	}
}

func TestDispatchPutStaticResourceRejected(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Handle(context.Background(), coap.Header{
		Code:          coap.PUT,
		Path:          "3/0/0",
		Payload:       []byte("New Name"),
		ContentFormat: coap.ContentFormatPlainText,
		HasContentFmt: true,
	})
	if resp.Code != coap.MethodNotAllowed {
		t.Fatalf("Code = %v, want MethodNotAllowed", resp.Code)
	}
}

func TestDispatchPutAttributeWrite(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Handle(context.Background(), coap.Header{
		Code:    coap.PUT,
		Path:    "3/0/9",
		Queries: []string{"pmin=2", "pmax=60"},
	})
	if resp.Code != coap.Changed {
		t.Fatalf("Code = %v, want Changed", resp.Code)
	}
}

func TestDispatchExecuteImmediate(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Handle(context.Background(), coap.Header{Code: coap.POST, Path: "3/0/4", Token: []byte{9}})
	if resp.Code != coap.Changed {
		t.Fatalf("Code = %v, want Changed", resp.Code)
	}
}

func TestDispatchExecuteDelayed(t *testing.T) {
	tree := lwm2mtest.NewTree()
	sender := &recordingSender{}
	d := lwm2m.NewDispatcher(tree, sender)

	resp := d.Handle(context.Background(), coap.Header{Code: coap.POST, Path: "5/0/2", Token: []byte{10}})
	if resp.Code != coap.Changed {
		t.Fatalf("immediate response Code = %v, want Changed", resp.Code)
	}
	if len(sender.all()) != 0 {
		t.Fatal("expected no response pushed through Sender before the application finishes")
	}

	fw, _ := tree.Object(lwm2m.FirmwareObjectID)
	fwInst, _ := fw.Instance(0)
	update, _ := fwInst.Resource(lwm2m.ByID(2))
	update.FinishDelayedResponse(context.Background(), nil)

	sent := sender.all()
	if len(sent) != 1 {
		t.Fatalf("expected exactly one delayed response, got %d", len(sent))
	}
	if sent[0].Code != coap.Changed {
		t.Fatalf("delayed response Code = %v, want Changed", sent[0].Code)
	}
	if string(sent[0].Token) != string([]byte{10}) {
		t.Fatalf("delayed response token = %v, want %v", sent[0].Token, []byte{10})
	}
}

func TestDispatchDeleteObjectInstance(t *testing.T) {
	tree := lwm2mtest.NewTree()
	dev, _ := tree.Object(lwm2m.DeviceObjectID)
	if _, err := dev.CreateObjectInstance(1); err != nil {
		t.Fatalf("CreateObjectInstance: %v", err)
	}
	sender := &recordingSender{}
	d := lwm2m.NewDispatcher(tree, sender)

	resp := d.Handle(context.Background(), coap.Header{Code: coap.DELETE, Path: "3/1"})
	if resp.Code != coap.Changed && resp.Code != coap.Content {
		t.Fatalf("unexpected delete response code %v", resp.Code)
	}
	if _, ok := dev.Instance(1); ok {
		t.Fatal("expected instance 1 to be removed")
	}
}

func TestDispatchObserveAndTick(t *testing.T) {
	d, sender := newTestDispatcher()
	get := d.Handle(context.Background(), coap.Header{
		Code: coap.GET, Path: "3/0/9", Observe: 0, HasObserve: true, Token: []byte{20},
	})
	if get.Code != coap.Content || !get.HasObserve {
		t.Fatalf("expected Observe-start response to carry Observe option, got %+v", get)
	}

	now := time.Now()
	d.Tick(context.Background(), now)
	if len(sender.all()) == 0 {
		t.Fatal("expected first Tick after Observe start to fire a notification")
	}

	before := len(sender.all())
	d.Tick(context.Background(), now.Add(100*time.Millisecond))
	if len(sender.all()) != before {
		t.Fatal("expected no additional notification within pmin with no change")
	}
}

func TestDispatchObserveStartOnNonObservable(t *testing.T) {
	d, _ := newTestDispatcher()
	resp := d.Handle(context.Background(), coap.Header{
		Code: coap.GET, Path: "3/0/0", Observe: 0, HasObserve: true,
	})
	if resp.Code != coap.MethodNotAllowed {
		t.Fatalf("Code = %v, want MethodNotAllowed for observing a non-observable resource", resp.Code)
	}
}
