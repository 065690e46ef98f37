// Package transport provides the HTTP implementation of domain.Transport.
//
// An envelope is serialised to protobuf wire format and POSTed as the raw
// request body; the response body is decoded back into a response envelope.
// The transport never looks at the envelope status code. It only classifies
// failures of the exchange itself:
//
//   - the request could not be sent (dial, TLS, timeout, cancellation):
//     domain.ErrConnect
//   - the server answered with a non-200 status or the body could not be read:
//     domain.ErrServer
//   - the body is empty or not a valid response envelope: domain.ErrResponseDecode
//
// TLS certificates are verified unless InsecureSkipVerify is set explicitly.
package transport
