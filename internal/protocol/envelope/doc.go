// Package envelope is the binary codec for the service's request envelope,
// response envelope and signature record.
//
// All three are protobuf wire-format messages. Only the fields the session engine
// reads or writes are modelled; anything else in a response is skipped.
//
// # Credentials
//
// A request carries exactly one credential: auth info (field 10) on the
// bootstrap call, or the auth ticket (field 11) afterwards. MarshalRequest takes
// the domain.Credential union, so both can never be encoded together, and
// UnmarshalRequest rejects input that carries both with ErrBothCredentials.
//
// # Signature
//
// The signed blob travels inside a platform request (field 6) of type 6. The
// record that gets signed is encoded by MarshalSignature.
package envelope
