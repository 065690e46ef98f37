// Package session runs the client side of the RPC session protocol.
//
// A Session owns the auth ticket, the active endpoint and the decoded default
// payloads of one logged-in identity. Each call builds an envelope (auth info
// on the very first call, ticket plus signature afterwards), posts it through
// a domain.Transport and classifies the response status:
//
//   - 53 with no returns: the endpoint is not warmed up yet. The call is
//     rebuilt and re-sent to the endpoint the response named, a bounded number
//     of times with backoff in between.
//   - 52: rate limited.
//   - 3: bad parameters or, more likely, a banned account. The session is
//     marked degraded and refuses further calls.
//   - anything else: success.
//
// When defaults are requested the four auxiliary sub-requests (hatched eggs,
// inventory, badges, settings) ride along and their answers are decoded into
// the session. Accessors return domain.ErrInventoryUninitialized until that
// has happened.
//
// A Session is not safe for concurrent use; one call must complete before the
// next starts.
package session
