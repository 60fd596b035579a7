// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

// Package tlv implements the OMA LwM2M Type-Length-Value binary container
// (content-format 11542, and its legacy alias 99) described by §4.4 of the
// specification. It works at the level of untyped Fields — entity type, id,
// and raw value bytes — leaving the mapping to/from typed Resource values to
// the caller, so this package has no dependency on the object tree.
package tlv
