package interfaces

import (
	"context"

	domaintypes "pogo/internal/domain/types"
)

// Transport performs one network exchange. It serialises the envelope, posts it to
// url and decodes the answer; it never interprets the status code.
type Transport interface {
	RoundTrip(
		ctx context.Context,
		url string,
		envelope domaintypes.RequestEnvelope,
	) (domaintypes.ResponseEnvelope, error)
}
