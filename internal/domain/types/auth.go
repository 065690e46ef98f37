package types

// AuthTicket is the opaque, server-issued credential of an established session.
type AuthTicket struct {
	Start             []byte `json:"start"`
	ExpireTimestampMs uint64 `json:"expire_timestamp_ms"`
	End               []byte `json:"end"`
}

// Empty reports whether the ticket carries no start field. The service sends an
// empty ticket when it does not want the client to replace its current one.
func (t AuthTicket) Empty() bool { return len(t.Start) == 0 }

// AuthInfo identifies the caller on the bootstrap request, before any ticket exists.
type AuthInfo struct {
	Provider Provider `json:"provider"`
	Token    string   `json:"token"`
	TokenTag int32    `json:"token_tag"`
}

// Credential is either Unauthenticated or Authenticated. An envelope carries
// exactly one of them.
type Credential interface {
	isCredential()
}

// Unauthenticated carries provider identity and access token. Only the very first
// envelope of a session uses it.
type Unauthenticated struct {
	Info AuthInfo
}

// Authenticated carries the ticket issued by the service.
type Authenticated struct {
	Ticket AuthTicket
}

func (Unauthenticated) isCredential() {}
func (Authenticated) isCredential()   {}
