// Package payload encodes and decodes the sub-request payloads the session engine
// understands itself: the profile fetched at bootstrap and the four default
// responses (hatched eggs, inventory delta, awarded badges, settings).
//
// Every other payload stays opaque bytes owned by the caller. Encode* functions
// exist for the stub server and tests.
package payload
