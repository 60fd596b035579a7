// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"strconv"
	"strings"
)

// splitPath parses "<object-id>/<instance-id>/<resource-id>[/<resource-instance-id>]"
// into up to four decimal segments, per the path grammar in §6.
func splitPath(path string) ([]uint16, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, nil
	}
	if len(path) > MaxObjectPathName {
		return nil, newErr(KindBadRequest, "split_path", path, nil)
	}
	parts := strings.Split(path, "/")
	if len(parts) > 4 {
		return nil, newErr(KindBadRequest, "split_path", path, nil)
	}
	segs := make([]uint16, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return nil, newErr(KindBadRequest, "split_path", path, err)
		}
		segs = append(segs, uint16(n))
	}
	return segs, nil
}
