// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package coap

import "github.com/plgd-dev/go-coap/v3/message/codes"

// Code is a CoAP method or response code. It is a type alias for the
// upstream library's Code so header values round-trip through this package
// without a conversion at the boundary.
type Code = codes.Code

// Request method codes.
const (
	GET    = codes.GET
	PUT    = codes.PUT
	POST   = codes.POST
	DELETE = codes.DELETE
)

// Response codes emitted by the dispatcher, per §6 of the specification.
const (
	Changed               = codes.Changed
	Content               = codes.Content
	BadRequest            = codes.BadRequest
	NotFound              = codes.NotFound
	MethodNotAllowed      = codes.MethodNotAllowed
	NotAcceptable         = codes.NotAcceptable
	RequestEntityTooLarge = codes.RequestEntityTooLarge
	UnsupportedMediaType  = codes.UnsupportedMediaType
)
