// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import "github.com/lwm2m-embedded/go-lwm2m/coap"

// MaxObjectPathName is the largest canonical path string this package will
// build or accept, matching the original client's MAX_OBJECT_PATH_NAME.
const MaxObjectPathName = 268

// MaxValueLength is the largest String/Opaque resource value accepted
// outside of a blockwise transfer.
const MaxValueLength = 256

// MaxNameLength bounds a node's textual name.
const MaxNameLength = 64

// ObjectID is the OMA LwM2M object-id catalog used throughout the tests and
// the factory verifier.
type ObjectID uint16

// Named object ids from the OMA LwM2M registry.
const (
	SecurityObjectID            ObjectID = 0
	ServerObjectID              ObjectID = 1
	AccessControlObjectID       ObjectID = 2
	DeviceObjectID              ObjectID = 3
	ConnectivityMonitorObjectID ObjectID = 4
	FirmwareObjectID            ObjectID = 5
	LocationObjectID            ObjectID = 6
	ConnectivityStatisticsID    ObjectID = 7
)

// ContentFormat identifies the wire encoding of a resource payload. It is an
// alias of the coap package's type so node attributes and CoAP headers share
// one representation without introducing an import cycle (coap has no
// dependency on this package).
type ContentFormat = coap.ContentFormat

// Content-format codes, re-exported from the coap package for convenience.
const (
	ContentFormatPlainText = coap.ContentFormatPlainText
	ContentFormatOpaque    = coap.ContentFormatOpaque
	ContentFormatTLVLegacy = coap.ContentFormatTLVLegacy
	ContentFormatTLV       = coap.ContentFormatTLV
	ContentFormatJSON      = coap.ContentFormatJSON
)

// DefaultMaxAge is the CoAP RFC 7252 default max-age. The dispatcher omits
// the Max-Age option when a node's max_age equals this value.
const DefaultMaxAge = coap.DefaultMaxAge

// FirmwarePackageURIMaxLength is the length cap on the Firmware Package URI
// resource (5/0/1), distinct from the general MaxValueLength.
const FirmwarePackageURIMaxLength = 255
