// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package tlv

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeInt renders i as the minimal two's-complement big-endian byte
// sequence. A zero value with omitZero set encodes as an empty slice, which
// this package's Open Question decision (§5 of SPEC_FULL.md) treats as
// "absent" on decode, not "present with value 0".
func EncodeInt(i int64, omitZero bool) []byte {
	if i == 0 && omitZero {
		return nil
	}
	// Minimal-length two's complement: start at 1 byte and grow until the
	// sign-extended value round-trips.
	for n := 1; n <= 8; n++ {
		shift := uint(64 - 8*n)
		if (i<<shift)>>shift == i {
			buf := make([]byte, n)
			v := uint64(i)
			for b := n - 1; b >= 0; b-- {
				buf[b] = byte(v)
				v >>= 8
			}
			return buf
		}
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(i))
	return buf
}

// DecodeInt parses a minimal two's-complement big-endian integer. A
// zero-length value decodes as (0, false): "absent", per the Open Question
// decision.
func DecodeInt(b []byte) (int64, bool, error) {
	if len(b) == 0 {
		return 0, false, nil
	}
	if len(b) > 8 {
		return 0, false, fmt.Errorf("%w: integer length %d", ErrMalformed, len(b))
	}
	var v int64
	if b[0]&0x80 != 0 {
		v = -1
	}
	for _, byt := range b {
		v = v<<8 | int64(byt)
	}
	return v, true, nil
}

// EncodeFloat renders f as a 4-byte (if it round-trips through float32) or
// 8-byte IEEE-754 big-endian value.
func EncodeFloat(f float64) []byte {
	if f32 := float32(f); float64(f32) == f {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, math.Float32bits(f32))
		return buf
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(f))
	return buf
}

// DecodeFloat parses a 4- or 8-byte IEEE-754 big-endian float.
func DecodeFloat(b []byte) (float64, error) {
	switch len(b) {
	case 4:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case 8:
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	default:
		return 0, fmt.Errorf("%w: float length %d", ErrMalformed, len(b))
	}
}

// EncodeBool renders a boolean as a single byte, 0 or 1.
func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBool parses a single-byte boolean.
func DecodeBool(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, fmt.Errorf("%w: boolean length %d", ErrMalformed, len(b))
	}
	return b[0] != 0, nil
}

// EncodeTime renders an epoch-seconds time as an integer encoding.
func EncodeTime(epochSeconds uint64) []byte {
	return EncodeInt(int64(epochSeconds), false)
}

// DecodeTime parses an integer-encoded epoch-seconds time.
func DecodeTime(b []byte) (uint64, error) {
	v, _, err := DecodeInt(b)
	return uint64(v), err
}

// EncodeObjectLink renders an object-id:instance-id pair as 2+2 big-endian
// bytes.
func EncodeObjectLink(objectID, instanceID uint16) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint16(buf[0:2], objectID)
	binary.BigEndian.PutUint16(buf[2:4], instanceID)
	return buf
}

// DecodeObjectLink parses a 4-byte object-link value.
func DecodeObjectLink(b []byte) (objectID, instanceID uint16, err error) {
	if len(b) != 4 {
		return 0, 0, fmt.Errorf("%w: objlink length %d", ErrMalformed, len(b))
	}
	return binary.BigEndian.Uint16(b[0:2]), binary.BigEndian.Uint16(b[2:4]), nil
}
