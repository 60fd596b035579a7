// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

// Package fcc implements factory configuration verification: a pre-bootstrap
// sanity sweep over entropy, clock, device identity, security objects, and
// firmware integrity, backed by a SOTP store for the one-time items (§5 of
// the specification). It accumulates findings in an OutputInfo rather than
// failing on the first warning, short-circuiting only on a hard error.
package fcc
