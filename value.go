// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"fmt"
	"strconv"
)

// ValueType identifies the variant held by a [Value].
type ValueType int

// Resource value variants, per §3 of the specification.
const (
	TypeNone ValueType = iota
	TypeString
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeOpaque
	TypeTime
	TypeObjectLink
)

func (t ValueType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeOpaque:
		return "opaque"
	case TypeTime:
		return "time"
	case TypeObjectLink:
		return "objlink"
	default:
		return "none"
	}
}

// ObjectLink pairs an object id with an instance id, the wire shape of a
// LwM2M Objlnk resource.
type ObjectLink struct {
	ObjectID   uint16
	InstanceID uint16
}

func (l ObjectLink) String() string {
	return fmt.Sprintf("%d:%d", l.ObjectID, l.InstanceID)
}

// Value is a tagged union over the resource value types defined by §3. The
// zero Value is TypeNone: "no value set yet".
type Value struct {
	typ    ValueType
	str    string
	i      int64
	f      float64
	b      bool
	opaque []byte
	t      uint64 // epoch seconds, for TypeTime
	link   ObjectLink
}

// Type reports which variant v holds.
func (v Value) Type() ValueType { return v.typ }

// IsNone reports whether no value has been set.
func (v Value) IsNone() bool { return v.typ == TypeNone }

// NewStringValue constructs a String value. Length against MaxValueLength is
// enforced where the value is written into the tree (Resource.SetValue,
// ResourceInstance.SetValue, CreateStaticResource), not here, so a value can
// still be freely constructed and passed around before that check runs.
func NewStringValue(s string) Value { return Value{typ: TypeString, str: s} }

// NewIntegerValue constructs an Integer value.
func NewIntegerValue(i int64) Value { return Value{typ: TypeInteger, i: i} }

// NewFloatValue constructs a Float value.
func NewFloatValue(f float64) Value { return Value{typ: TypeFloat, f: f} }

// NewBooleanValue constructs a Boolean value.
func NewBooleanValue(b bool) Value { return Value{typ: TypeBoolean, b: b} }

// NewOpaqueValue constructs an Opaque value, copying data.
func NewOpaqueValue(data []byte) Value {
	buf := make([]byte, len(data))
	copy(buf, data)
	return Value{typ: TypeOpaque, opaque: buf}
}

// NewTimeValue constructs a Time value from epoch seconds.
func NewTimeValue(epochSeconds uint64) Value { return Value{typ: TypeTime, t: epochSeconds} }

// NewObjectLinkValue constructs an ObjectLink value.
func NewObjectLinkValue(link ObjectLink) Value { return Value{typ: TypeObjectLink, link: link} }

// String returns the String variant's contents, or "" if v is not a String.
func (v Value) String() string { return v.str }

// Integer returns the Integer variant's contents, or 0 if v is not an Integer.
func (v Value) Integer() int64 { return v.i }

// Float returns the Float variant's contents, or 0 if v is not a Float.
func (v Value) Float() float64 { return v.f }

// Boolean returns the Boolean variant's contents, or false if v is not a Boolean.
func (v Value) Boolean() bool { return v.b }

// Opaque returns the Opaque variant's contents, or nil if v is not Opaque.
func (v Value) Opaque() []byte { return v.opaque }

// Time returns the Time variant's epoch seconds, or 0 if v is not a Time.
func (v Value) Time() uint64 { return v.t }

// ObjectLink returns the ObjectLink variant's contents.
func (v Value) ObjectLink() ObjectLink { return v.link }

// Numeric reports the value as a float64 for numeric resources (Integer,
// Float, Time), used by the report handler's gt/lt/st evaluation. The second
// return is false for non-numeric types.
func (v Value) Numeric() (float64, bool) {
	switch v.typ {
	case TypeInteger:
		return float64(v.i), true
	case TypeFloat:
		return v.f, true
	case TypeTime:
		return float64(v.t), true
	default:
		return 0, false
	}
}

// exceedsLength reports whether a String or Opaque value's byte length is
// over max; other variants have no variable-length wire representation and
// never exceed it.
func (v Value) exceedsLength(max int) bool {
	switch v.typ {
	case TypeString:
		return len(v.str) > max
	case TypeOpaque:
		return len(v.opaque) > max
	default:
		return false
	}
}

// PlainText renders v as the ASCII payload used by the dispatcher's
// plain-text GET response and by PUT's plain-text decode path.
func (v Value) PlainText() string {
	switch v.typ {
	case TypeString:
		return v.str
	case TypeInteger:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeBoolean:
		if v.b {
			return "1"
		}
		return "0"
	case TypeOpaque:
		return string(v.opaque)
	case TypeTime:
		return strconv.FormatUint(v.t, 10)
	case TypeObjectLink:
		return v.link.String()
	default:
		return ""
	}
}

// ParsePlainText decodes the ASCII rendering of typ from s. Used by the
// dispatcher's PUT plain-text path.
func ParsePlainText(typ ValueType, s string) (Value, error) {
	switch typ {
	case TypeString:
		return NewStringValue(s), nil
	case TypeInteger:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, newErr(KindInvalidValue, "parse_plain_text", "", err)
		}
		return NewIntegerValue(i), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, newErr(KindInvalidValue, "parse_plain_text", "", err)
		}
		return NewFloatValue(f), nil
	case TypeBoolean:
		switch s {
		case "1", "true":
			return NewBooleanValue(true), nil
		case "0", "false":
			return NewBooleanValue(false), nil
		default:
			return Value{}, newErr(KindInvalidValue, "parse_plain_text", "", fmt.Errorf("invalid boolean %q", s))
		}
	case TypeOpaque:
		return NewOpaqueValue([]byte(s)), nil
	case TypeTime:
		t, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Value{}, newErr(KindInvalidValue, "parse_plain_text", "", err)
		}
		return NewTimeValue(t), nil
	default:
		return Value{}, newErr(KindInvalidType, "parse_plain_text", "", fmt.Errorf("unsupported type %s", typ))
	}
}
