// Package crypto exposes the primitives the session engine needs around signing.
//
// Contents
//
//   - Seeded xxhash64 digests binding location and request bytes to the auth
//     ticket (HashLocation, HashRequests)
//   - Fresh 32-byte session nonces (SessionHash)
//   - A reference signer sealing the signature record with XChaCha20-Poly1305
//     under an HKDF-derived key (AEADSigner)
//   - Short fingerprints for logging tokens and tickets (Fingerprint)
//
// # Notes
//
// The hashes are not a security boundary; they only let the service check that a
// signature was produced for this ticket, position and batch. The secrecy of the
// signature rests on the signer.
package crypto
