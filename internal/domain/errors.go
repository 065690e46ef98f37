package domain

import "errors"

// Classified failures of a session call. Returned errors wrap one of these; match
// with errors.Is.
var (
	// ErrConnect is returned when the service could not be reached at all.
	ErrConnect = errors.New("could not connect to servers")
	// ErrResponseDecode is returned when the body is not a valid response envelope.
	ErrResponseDecode = errors.New("malformed response envelope")
	// ErrServer covers any other transport failure and an exhausted retry budget.
	ErrServer = errors.New("server error")
	// ErrProtocolMismatch is returned when a response lacks the expected entries.
	ErrProtocolMismatch = errors.New("expected response not returned")
	// ErrResponseParse is returned when a default payload fails to decode.
	ErrResponseParse = errors.New("error parsing response, malformed response")
	// ErrRateLimited is returned for status 52.
	ErrRateLimited = errors.New("request frequency exceeds rate limit")
	// ErrBanSuspected is returned for status 3.
	ErrBanSuspected = errors.New("possible ban or bad parameters passed in")
	// ErrInventoryUninitialized is returned by accessors read before their value
	// has been populated.
	ErrInventoryUninitialized = errors.New("value not initialized; fetch with defaults first")
)
