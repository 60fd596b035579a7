// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package coap

// ContentFormat identifies the wire encoding of a resource payload.
type ContentFormat uint16

// Content-format codes consumed by the dispatcher's Accept/Content-Format
// negotiation (§6).
const (
	ContentFormatPlainText ContentFormat = 0
	ContentFormatOpaque    ContentFormat = 42
	ContentFormatTLVLegacy ContentFormat = 99
	ContentFormatTLV       ContentFormat = 11542
	ContentFormatJSON      ContentFormat = 11543
)

// Supported reports whether the dispatcher knows how to render this format.
func (f ContentFormat) Supported() bool {
	switch f {
	case ContentFormatPlainText, ContentFormatOpaque, ContentFormatTLVLegacy, ContentFormatTLV, ContentFormatJSON:
		return true
	default:
		return false
	}
}

// IsTLV reports whether f is one of the two TLV content-format codes.
func (f ContentFormat) IsTLV() bool {
	return f == ContentFormatTLV || f == ContentFormatTLVLegacy
}

// DefaultMaxAge is the CoAP RFC 7252 default max-age. The dispatcher omits
// the Max-Age option when a node's max_age equals this value.
const DefaultMaxAge = 60
