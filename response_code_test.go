// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"errors"
	"testing"

	"github.com/lwm2m-embedded/go-lwm2m/coap"
)

func TestResponseCodeForMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want coap.Code
	}{
		{KindNotFound, coap.NotFound},
		{KindItemNotExist, coap.NotFound},
		{KindMethodNotAllowed, coap.MethodNotAllowed},
		{KindNotAllowed, coap.MethodNotAllowed},
		{KindInvalidType, coap.BadRequest},
		{KindOutOfMemory, coap.RequestEntityTooLarge},
		{KindUnsupportedContentFormat, coap.UnsupportedMediaType},
		{KindNotAcceptable, coap.NotAcceptable},
		{KindNotAccepted, coap.NotAcceptable},
		{KindUnknown, coap.BadRequest},
	}
	for _, c := range cases {
		if got := responseCodeFor(c.kind); got != c.want {
			t.Errorf("responseCodeFor(%v) = %v, want %v", c.kind, got, c.want)
		}
	}
}

func TestCodeForErrorNonLwM2MError(t *testing.T) {
	if got := codeForError(errors.New("boom")); got != coap.BadRequest {
		t.Fatalf("codeForError(generic error) = %v, want BadRequest", got)
	}
}
