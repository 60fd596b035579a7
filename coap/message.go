// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package coap

import (
	"io"

	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/pool"
)

// FromMessage adapts a decoded go-coap pool.Message into a [Header]. This is
// the one place this package reaches past the header-struct boundary
// described in the package doc comment: go-coap has already done the
// byte-level framing by the time a *pool.Message exists, so pulling method
// code, options, and payload out of it is model-layer work, not wire-layer
// work. Transports that don't use go-coap construct a Header directly.
func FromMessage(msg *pool.Message) (Header, error) {
	h := Header{Code: msg.Code()}

	if token := msg.Token(); len(token) > 0 {
		h.Token = append([]byte(nil), token...)
	}

	if path, err := msg.Options().Path(); err == nil {
		h.Path = path
	}
	if queries, err := msg.Options().Queries(); err == nil {
		h.Queries = queries
	}
	if obs, err := msg.Options().Observe(); err == nil {
		h.Observe, h.HasObserve = obs, true
	}
	if mt, err := msg.ContentFormat(); err == nil {
		h.ContentFormat, h.HasContentFmt = ContentFormat(mt), true
	}
	if accept, err := msg.Options().GetUint32(message.Accept); err == nil {
		h.Accept, h.HasAccept = ContentFormat(accept), true
	}

	if msg.Body() != nil {
		body, err := io.ReadAll(msg.Body())
		if err != nil {
			return Header{}, err
		}
		h.Payload = body
	}

	return h, nil
}
