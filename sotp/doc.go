// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

// Package sotp implements Secure One-Time-Programmable credential storage:
// a small set of numbered slots, each writable exactly once and readable any
// number of times thereafter, backed by one of several hardware or
// software-emulated stores (§5 of the specification).
package sotp
