// Command rpcstub runs the in-memory stub of the RPC service over HTTPS with a
// self-signed certificate.
//
// Point a client at https://<addr>/plfe/rpc with TLS verification disabled.
// Pass the same hex signer key the client uses with --signer-key to have
// unsigned or badly signed requests answered with status 3.
package main
