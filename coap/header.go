// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package coap

// BlockInfo is a pass-through marker for Block1/Block2 state. The byte-level
// blockwise transfer mechanics (reassembly, retransmission) belong to a
// transport collaborator. The dispatcher does not read these fields and does
// not set them on the Responses it builds.
type BlockInfo struct {
	// Present is false when the exchange carried no Block1/Block2 option.
	Present bool
	Num     uint32
	More    bool
	Size    uint16
}

// Header is one inbound CoAP request, already framed and decoded by a
// transport collaborator. Uri-Path has been joined into Path; Uri-Query
// entries are kept unparsed since PUT's observation-attribute handling
// parses them itself.
type Header struct {
	Code    Code
	Path    string
	Queries []string
	Token   []byte
	Payload []byte

	Accept        ContentFormat
	HasAccept     bool
	ContentFormat ContentFormat
	HasContentFmt bool

	// Observe holds the raw Observe option value: 0 = start, 1 = stop.
	Observe    uint32
	HasObserve bool

	Block1 BlockInfo
	Block2 BlockInfo
}

// Response is the outbound CoAP message the dispatcher produces for a
// Header.
type Response struct {
	Code          Code
	ContentFormat ContentFormat
	HasContentFmt bool
	MaxAge        uint32
	HasMaxAge     bool
	Observe       uint32
	HasObserve    bool
	Token         []byte
	Payload       []byte

	Block1 BlockInfo
	Block2 BlockInfo
}
