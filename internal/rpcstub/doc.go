// Package rpcstub is an in-memory stand-in for the remote RPC service, used by
// the rpcstub binary during development and by end-to-end tests.
//
// Protocol behaviour
//
//   - A request carrying auth info is a bootstrap: the answer is status 53 with
//     no returns, a fresh auth ticket and the api host to use from then on.
//   - A request carrying a known ticket gets WarmupRedirects further 53 answers,
//     then status 1 with one return per sub-request, built from the canned
//     payloads in Config. Unknown request types get an empty return.
//   - An unknown ticket, or a missing or invalid signature when SignerKey is
//     set, is answered with status 3.
//   - SetMode switches every answer to a ban (3) or a rate limit (52).
//
// HTTP API
//
//	POST /plfe/rpc  bootstrap endpoint
//	POST /rpc       api endpoint
//	GET  /metrics   Prometheus metrics of the stub
//
// All state is held in memory and lost on process exit.
package rpcstub
