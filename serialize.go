// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"context"
	"fmt"

	"github.com/lwm2m-embedded/go-lwm2m/tlv"
)

// valueBytes renders v's payload as the raw bytes tlv.Field.Value expects,
// per the type-to-wire mapping in §3.
func valueBytes(v Value) ([]byte, error) {
	switch v.Type() {
	case TypeString:
		return []byte(v.String()), nil
	case TypeInteger:
		return tlv.EncodeInt(v.Integer(), false), nil
	case TypeFloat:
		return tlv.EncodeFloat(v.Float()), nil
	case TypeBoolean:
		return tlv.EncodeBool(v.Boolean()), nil
	case TypeOpaque:
		return v.Opaque(), nil
	case TypeTime:
		return tlv.EncodeTime(v.Time()), nil
	case TypeObjectLink:
		link := v.ObjectLink()
		return tlv.EncodeObjectLink(link.ObjectID, link.InstanceID), nil
	default:
		return nil, newErr(KindInvalidType, "value_bytes", "", fmt.Errorf("unset value"))
	}
}

// decodeValue parses raw TLV value bytes into a Value of the given type.
func decodeValue(typ ValueType, data []byte) (Value, error) {
	switch typ {
	case TypeString:
		return NewStringValue(string(data)), nil
	case TypeInteger:
		i, _, err := tlv.DecodeInt(data)
		if err != nil {
			return Value{}, newErr(KindInvalidValue, "decode_value", "", err)
		}
		return NewIntegerValue(i), nil
	case TypeFloat:
		f, err := tlv.DecodeFloat(data)
		if err != nil {
			return Value{}, newErr(KindInvalidValue, "decode_value", "", err)
		}
		return NewFloatValue(f), nil
	case TypeBoolean:
		b, err := tlv.DecodeBool(data)
		if err != nil {
			return Value{}, newErr(KindInvalidValue, "decode_value", "", err)
		}
		return NewBooleanValue(b), nil
	case TypeOpaque:
		return NewOpaqueValue(data), nil
	case TypeTime:
		t, err := tlv.DecodeTime(data)
		if err != nil {
			return Value{}, newErr(KindInvalidValue, "decode_value", "", err)
		}
		return NewTimeValue(t), nil
	case TypeObjectLink:
		objID, instID, err := tlv.DecodeObjectLink(data)
		if err != nil {
			return Value{}, newErr(KindInvalidValue, "decode_value", "", err)
		}
		return NewObjectLinkValue(ObjectLink{ObjectID: objID, InstanceID: instID}), nil
	default:
		return Value{}, newErr(KindInvalidType, "decode_value", "", fmt.Errorf("unsupported type %s", typ))
	}
}

// resourceInstanceFields returns ri's TLV representation as a single
// ResourceInstance field.
func resourceInstanceFields(ri *ResourceInstance) (tlv.Field, error) {
	b, err := valueBytes(ri.value)
	if err != nil {
		return tlv.Field{}, err
	}
	return tlv.Field{Type: tlv.EntityResourceInstance, ID: ri.id, Value: b}, nil
}

// resourceFields returns r's TLV representation: for a single-instance
// resource, one Resource field carrying the raw value; for a multi-instance
// resource, one MultiResource field nesting all its instances.
func resourceFields(r *Resource) (tlv.Field, error) {
	if !r.multiInstance {
		b, err := valueBytes(r.value)
		if err != nil {
			return tlv.Field{}, err
		}
		return tlv.Field{Type: tlv.EntityResource, ID: r.id, Value: b}, nil
	}
	inner := make([]tlv.Field, 0, len(r.instances))
	for _, ri := range r.instances {
		f, err := resourceInstanceFields(ri)
		if err != nil {
			return tlv.Field{}, err
		}
		inner = append(inner, f)
	}
	nested, err := tlv.Marshal(inner)
	if err != nil {
		return tlv.Field{}, err
	}
	return tlv.Field{Type: tlv.EntityMultiResource, ID: r.id, Value: nested}, nil
}

// objectInstanceFields returns oi's TLV representation as a single
// ObjectInstance field nesting all its resources.
func objectInstanceFields(oi *ObjectInstance) (tlv.Field, error) {
	inner := make([]tlv.Field, 0, len(oi.resources))
	for _, r := range oi.resources {
		f, err := resourceFields(r)
		if err != nil {
			return tlv.Field{}, err
		}
		inner = append(inner, f)
	}
	nested, err := tlv.Marshal(inner)
	if err != nil {
		return tlv.Field{}, err
	}
	return tlv.Field{Type: tlv.EntityObjectInstance, ID: oi.id, Value: nested}, nil
}

// EncodeTLV renders target — an *Object, *ObjectInstance, *Resource, or
// *ResourceInstance — as the TLV payload returned by a GET on its path
// (§4.4). A single-instance Resource or a ResourceInstance serializes as its
// bare value with no envelope; everything above that nests per the entity
// hierarchy.
func EncodeTLV(target any) ([]byte, error) {
	switch n := target.(type) {
	case *Object:
		fields := make([]tlv.Field, 0, len(n.instances))
		for _, oi := range n.instances {
			f, err := objectInstanceFields(oi)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		return tlv.Marshal(fields)
	case *ObjectInstance:
		fields := make([]tlv.Field, 0, len(n.resources))
		for _, r := range n.resources {
			f, err := resourceFields(r)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		return tlv.Marshal(fields)
	case *Resource:
		if !n.multiInstance {
			return valueBytes(n.value)
		}
		fields := make([]tlv.Field, 0, len(n.instances))
		for _, ri := range n.instances {
			f, err := resourceInstanceFields(ri)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		return tlv.Marshal(fields)
	case *ResourceInstance:
		return valueBytes(n.value)
	default:
		return nil, newErr(KindInvalidParameter, "encode_tlv", "", fmt.Errorf("unsupported node type %T", target))
	}
}

// applyResourceField writes a single TLV field's decoded value into the
// target resource: a ResourceInstance field updates (or creates) the matching
// child; a Resource field with a single-instance resource replaces its value.
func applyResourceField(ctx context.Context, r *Resource, f tlv.Field) error {
	switch f.Type {
	case tlv.EntityResourceInstance:
		v, err := decodeValue(r.valueType, f.Value)
		if err != nil {
			return err
		}
		if ri, ok := r.Instance(f.ID); ok {
			return ri.SetValue(ctx, v)
		}
		_, err = r.CreateResourceInstance(f.ID, v)
		return err
	default:
		v, err := decodeValue(r.valueType, f.Value)
		if err != nil {
			return err
		}
		return r.SetValue(ctx, v)
	}
}

// DecodeTLVIntoResource applies a PUT payload addressed at a Resource. When
// the resource is multi-instance, data is expected to be the flat
// ResourceInstance sequence produced by EncodeTLV; for a single-instance
// resource it's the bare value.
func DecodeTLVIntoResource(ctx context.Context, r *Resource, data []byte) error {
	if !r.multiInstance {
		v, err := decodeValue(r.valueType, data)
		if err != nil {
			return err
		}
		return r.SetValue(ctx, v)
	}
	fields, err := tlv.Unmarshal(data)
	if err != nil {
		return newErr(KindInvalidValue, "decode_tlv", r.path, err)
	}
	for _, f := range fields {
		if err := applyResourceField(ctx, r, f); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTLVIntoObjectInstance applies a PUT payload addressed at an
// ObjectInstance: each top-level field names a Resource or MultiResource by
// id, whose value/nested fields are applied to the matching child.
func DecodeTLVIntoObjectInstance(ctx context.Context, oi *ObjectInstance, data []byte) error {
	fields, err := tlv.Unmarshal(data)
	if err != nil {
		return newErr(KindInvalidValue, "decode_tlv", oi.path, err)
	}
	for _, f := range fields {
		r, ok := oi.Resource(ByID(f.ID))
		if !ok {
			return newErr(KindNotFound, "decode_tlv", oi.path, nil)
		}
		switch f.Type {
		case tlv.EntityMultiResource:
			if err := DecodeTLVIntoResource(ctx, r, f.Value); err != nil {
				return err
			}
		default:
			if err := applyResourceField(ctx, r, f); err != nil {
				return err
			}
		}
	}
	return nil
}
