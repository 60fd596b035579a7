// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

// Package lwm2m implements the core of an embedded LwM2M client: an
// in-memory object tree (Object, ObjectInstance, Resource, ResourceInstance)
// and a CoAP request dispatcher that serves GET/PUT/POST against it.
//
// The tree is built by the application at boot ([Tree.CreateObject] and its
// sibling factory methods); this package never persists it. Binary (TLV)
// encoding lives in the tlv subpackage, observation attribute evaluation
// lives in the report subpackage, and the one-time factory credential store
// plus its pre-operational verifier live in the sotp and fcc subpackages.
//
// Network transport and CoAP framing are both external to this package: a
// [coap.Header] is the boundary, carrying the already-parsed method, options, and
// payload for one request.
package lwm2m
