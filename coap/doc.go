// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

// Package coap defines the CoAP-facing types the dispatcher speaks: request
// and response headers, method/response codes, and the option numbers used
// for content negotiation and observation. It deliberately stops at the
// model layer — byte-level (de)framing of a UDP/DTLS datagram into one of
// these headers is a transport collaborator's job, consumed the same way
// github.com/absmach/mproxy's CoAP parser consumes this same upstream
// library: to interpret codes and options, not to read wire bytes itself.
package coap
