// SPDX-FileCopyrightText: (C) 2024 Intel Corporation
// SPDX-License-Identifier: Apache 2.0

package lwm2m

import (
	"context"

	"github.com/lwm2m-embedded/go-lwm2m/coap"
)

// ResponseCode is the CoAP response code delivered with a delayed response,
// re-exported from the coap package so callers implementing
// ObservationHandler don't need to import it directly.
type ResponseCode = coap.Code

// ObservationHandler is the external collaborator the dispatcher calls into
// for everything observation- and execution-adjacent that crosses the
// network boundary. The core stores the handler on the owning ObjectInstance;
// Resource and ResourceInstance delegate to their parent's handler (§4.3).
type ObservationHandler interface {
	// ObservationToBeSent is called when the report handler decides a
	// notification should go out for node, addressed with the previously
	// registered token. sendObject is true when the observation was
	// registered at the Object/ObjectInstance level and the whole subtree
	// should be serialized, rather than just node's own value.
	ObservationToBeSent(ctx context.Context, node Node, token []byte, level ObservationLevel, sendObject bool)

	// SendDelayedResponse emits a separate CoAP message for resource's
	// stored delayed-response token.
	SendDelayedResponse(ctx context.Context, resource *Resource, code ResponseCode)

	// ResourceToBeDeleted is called immediately before a resource is
	// removed from the tree, so the handler can clean up any outstanding
	// observation/token state.
	ResourceToBeDeleted(ctx context.Context, node Node)

	// ValueUpdated is called after any successful value mutation.
	ValueUpdated(ctx context.Context, node Node)
}

// Node is the common, read-only contract shared by Object, ObjectInstance,
// Resource, and ResourceInstance, dispatched on by the report handler and
// the observation handler without needing the concrete type.
type Node interface {
	Name() string
	HasName() bool
	ID() uint16
	HasID() bool
	Path() string
	Operation() Operation
	Observable() bool
	ObservationLevel() ObservationLevel
	ContentType() ContentFormat
	MaxAge() uint32
	Changed() bool
}
