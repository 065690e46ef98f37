// Package signature builds the per-request signature attached to authenticated
// envelopes.
//
// The record binds the auth ticket, the reported position and the exact batch:
// two location digests, one digest per sub-request, a fresh 32-byte nonce, the
// current time and the time since session start, plus a fixed sentinel. The
// serialised record is handed to a pluggable domain.Signer whose algorithm is
// opaque here.
//
// Without a signer the engine returns no signature instead of failing; the
// session warns once at construction that the service may reject or blank its
// answers.
package signature
