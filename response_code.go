// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import "github.com/lwm2m-embedded/go-lwm2m/coap"

// responseCodeFor maps a Kind to its CoAP response code, per the
// deserializer-error mapping table in §6: None -> 2.04, NotFound -> 4.04,
// NotAllowed -> 4.05, NotValid -> 4.00, OutOfMemory -> 4.13, NotAccepted ->
// 4.06. Kinds outside that table fall back to BadRequest.
func responseCodeFor(kind Kind) coap.Code {
	switch kind {
	case KindNotFound, KindItemNotExist:
		return coap.NotFound
	case KindMethodNotAllowed:
		return coap.MethodNotAllowed
	case KindNotAllowed:
		return coap.MethodNotAllowed
	case KindInvalidType, KindInvalidLength, KindInvalidValue, KindInvalidParameter, KindBadRequest:
		return coap.BadRequest
	case KindOutOfMemory:
		return coap.RequestEntityTooLarge
	case KindUnsupportedContentFormat:
		return coap.UnsupportedMediaType
	case KindNotAcceptable, KindNotAccepted:
		return coap.NotAcceptable
	default:
		return coap.BadRequest
	}
}

// codeForError extracts a Kind from err, defaulting to KindUnknown's mapping
// when err is not one of our own *Error values.
func codeForError(err error) coap.Code {
	if e, ok := err.(*Error); ok {
		return responseCodeFor(e.Kind)
	}
	return coap.BadRequest
}
