// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package main

import (
	"bytes"
	"context"
	"flag"
	"log/slog"
	"sync"
	"time"

	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/mux"
	"github.com/plgd-dev/go-coap/v3/net"
	coapoptions "github.com/plgd-dev/go-coap/v3/options"
	"github.com/plgd-dev/go-coap/v3/udp"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
	coapmodel "github.com/lwm2m-embedded/go-lwm2m/coap"
	"github.com/lwm2m-embedded/go-lwm2m/internal/lwm2mtest"
)

var serveFlags = flag.NewFlagSet("serve", flag.ContinueOnError)

var (
	listenAddr string
	tickPeriod time.Duration
)

func init() {
	serveFlags.StringVar(&listenAddr, "addr", ":5683", "UDP `address` to listen on")
	serveFlags.DurationVar(&tickPeriod, "tick", time.Second, "Observation evaluation `period`")
}

// connSender adapts the connection of the most recently served request into
// a [lwm2m.Sender] for server-initiated notifications sent outside the
// request/response flow (pmin/pmax/gt/lt/st triggered Observe reports). This
// single-peer bookkeeping is enough for a demonstration client talking to one
// LwM2M server at a time; a multi-peer deployment would key this by the
// client address instead.
type connSender struct {
	mu   sync.Mutex
	conn mux.Conn
}

func (s *connSender) track(conn mux.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

func (s *connSender) Send(ctx context.Context, resp coapmodel.Response) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		slog.Warn("dropping notification, no active peer connection", "code", resp.Code)
		return
	}

	msg := conn.AcquireMessage(ctx)
	defer conn.ReleaseMessage(msg)
	msg.SetCode(resp.Code)
	msg.SetToken(resp.Token)
	msg.SetBody(bytes.NewReader(resp.Payload))
	if resp.HasContentFmt {
		msg.SetContentFormat(message.MediaType(resp.ContentFormat))
	}
	if resp.HasObserve {
		msg.SetObserve(resp.Observe)
	}
	if err := conn.WriteMessage(msg); err != nil {
		slog.Error("failed to send notification", "error", err)
	}
}

func serve() error {
	tree := lwm2mtest.NewTree()
	sender := &connSender{}
	dispatcher := lwm2m.NewDispatcher(tree, sender)

	handler := mux.HandlerFunc(func(w mux.ResponseWriter, r *mux.Message) {
		sender.track(w.Conn())
		hdr, err := coapmodel.FromMessage(r.Message)
		if err != nil {
			slog.Error("failed to decode request", "error", err)
			return
		}
		resp := dispatcher.Handle(r.Context(), hdr)
		if err := writeResponse(w, resp); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	go func() {
		ticker := time.NewTicker(tickPeriod)
		defer ticker.Stop()
		for now := range ticker.C {
			dispatcher.Tick(context.Background(), now)
		}
	}()

	l, err := net.NewListenUDP("udp", listenAddr)
	if err != nil {
		return err
	}
	defer l.Close()

	s := udp.NewServer(coapoptions.WithMux(handler))
	defer s.Stop()

	slog.Info("lwm2m client listening", "addr", listenAddr)
	return s.Serve(l)
}

func writeResponse(w mux.ResponseWriter, resp coapmodel.Response) error {
	msg := w.Conn().AcquireMessage(w.Conn().Context())
	defer w.Conn().ReleaseMessage(msg)
	msg.SetCode(resp.Code)
	msg.SetToken(resp.Token)
	msg.SetBody(bytes.NewReader(resp.Payload))
	if resp.HasContentFmt {
		msg.SetContentFormat(message.MediaType(resp.ContentFormat))
	}
	if resp.HasObserve {
		msg.SetObserve(resp.Observe)
	}
	return w.Conn().WriteMessage(msg)
}
