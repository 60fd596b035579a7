// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m_test

import (
	"context"

	lwm2m "github.com/lwm2m-embedded/go-lwm2m"
)

// recordingHandler is a minimal ObservationHandler fake shared by the
// object/objectinstance/resourceinstance tests to assert that mutations
// notify the installed handler the expected number of times.
type recordingHandler struct {
	sent    int
	deleted int
	updated int
}

func (h *recordingHandler) ObservationToBeSent(ctx context.Context, node lwm2m.Node, token []byte, level lwm2m.ObservationLevel, sendObject bool) {
	h.sent++
}

func (h *recordingHandler) SendDelayedResponse(ctx context.Context, resource *lwm2m.Resource, code lwm2m.ResponseCode) {
}

func (h *recordingHandler) ResourceToBeDeleted(ctx context.Context, node lwm2m.Node) {
	h.deleted++
}

func (h *recordingHandler) ValueUpdated(ctx context.Context, node lwm2m.Node) {
	h.updated++
}
