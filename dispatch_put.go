// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"context"
	"strings"

	"github.com/lwm2m-embedded/go-lwm2m/coap"
)

// handlePut implements §4.2's PUT processing: a request carrying Uri-Query
// parameters and no recognized value payload writes observation attributes
// (§4.5) on the addressed Resource; otherwise it replaces the addressed
// node's value(s) from the request payload, decoded per Content-Format.
func (d *Dispatcher) handlePut(ctx context.Context, h coap.Header) coap.Response {
	target, err := d.tree.FindPath(h.Path)
	if err != nil {
		return coap.Response{Code: codeForError(err), Token: h.Token}
	}
	node, ok := target.(Node)
	if !ok {
		return coap.Response{Code: coap.NotFound, Token: h.Token}
	}
	if !node.Operation().Has(OpPut) {
		return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
	}

	if len(h.Queries) > 0 && len(h.Payload) == 0 {
		return d.handleAttributeWrite(h, target)
	}

	if err := d.writeValue(ctx, h, target); err != nil {
		return coap.Response{Code: codeForError(err), Token: h.Token}
	}
	return coap.Response{Code: coap.Changed, Token: h.Token}
}

// handleAttributeWrite applies a pmin/pmax/gt/lt/st query string to the
// addressed Resource's report.Handler, per §4.5. Only Resources carry
// observation attributes; any other target is rejected.
func (d *Dispatcher) handleAttributeWrite(h coap.Header, target any) coap.Response {
	r, ok := target.(*Resource)
	if !ok {
		return coap.Response{Code: coap.MethodNotAllowed, Token: h.Token}
	}
	query := strings.Join(h.Queries, "&")
	current, numeric := float64(0), false
	if !r.multiInstance {
		current, numeric = r.value.Numeric()
	}
	if err := r.Report().SetAttributes(query, current, numeric); err != nil {
		return coap.Response{Code: coap.BadRequest, Token: h.Token}
	}
	return coap.Response{Code: coap.Changed, Token: h.Token}
}

// isFirmwarePackageURI reports whether r is Firmware Update's Package URI
// resource (5/0/1), the one resource in the catalog with its own length cap
// distinct from MaxValueLength.
func isFirmwarePackageURI(r *Resource) bool {
	return r.hasID && r.id == 1 &&
		r.parent != nil && r.parent.parent != nil &&
		r.parent.parent.hasID && ObjectID(r.parent.parent.id) == FirmwareObjectID
}

// writeValue decodes h.Payload per Content-Format and applies it to target.
func (d *Dispatcher) writeValue(ctx context.Context, h coap.Header, target any) error {
	format := h.ContentFormat
	if !h.HasContentFmt {
		format = coap.ContentFormatTLV
	}

	switch n := target.(type) {
	case *ObjectInstance:
		if format.IsTLV() {
			return DecodeTLVIntoObjectInstance(ctx, n, h.Payload)
		}
		return newErr(KindUnsupportedContentFormat, "put", n.path, nil)
	case *Resource:
		if n.static {
			return newErr(KindMethodNotAllowed, "put", n.path, nil)
		}
		if isFirmwarePackageURI(n) && len(h.Payload) > FirmwarePackageURIMaxLength {
			return newErr(KindNotAccepted, "put", n.path, nil)
		}
		if format == coap.ContentFormatPlainText && !n.multiInstance {
			v, err := ParsePlainText(n.valueType, string(h.Payload))
			if err != nil {
				return err
			}
			return n.SetValue(ctx, v)
		}
		if format.IsTLV() {
			return DecodeTLVIntoResource(ctx, n, h.Payload)
		}
		if format == coap.ContentFormatOpaque && n.valueType == TypeOpaque && !n.multiInstance {
			return n.SetValue(ctx, NewOpaqueValue(h.Payload))
		}
		return newErr(KindUnsupportedContentFormat, "put", n.path, nil)
	case *ResourceInstance:
		if format == coap.ContentFormatPlainText {
			v, err := ParsePlainText(n.parent.valueType, string(h.Payload))
			if err != nil {
				return err
			}
			return n.SetValue(ctx, v)
		}
		v, err := decodeValue(n.parent.valueType, h.Payload)
		if err != nil {
			return err
		}
		return n.SetValue(ctx, v)
	default:
		return newErr(KindMethodNotAllowed, "put", "", nil)
	}
}
