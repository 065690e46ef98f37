package types

// SubRequest is one unit of work inside a batch.
type SubRequest struct {
	Type    RequestType
	Payload []byte
}

// RequestBatch is an ordered list of sub-requests. Response returns correlate with
// it by position.
type RequestBatch []SubRequest

// RequestEnvelope is the outbound container for one network call.
type RequestEnvelope struct {
	StatusCode  StatusCode
	RequestID   uint64
	Requests    RequestBatch
	Location    Coordinates
	Auth        Credential
	Signature   []byte // nil when unsigned
	ClientBuild int64
}

// ResponseEnvelope is what the service answers with.
type ResponseEnvelope struct {
	StatusCode StatusCode
	RequestID  uint64
	APIURL     string
	AuthTicket *AuthTicket
	Returns    [][]byte
	Error      string
}

// SignatureRecord is the per-request proof handed to the external signer. It is
// recomputed for every envelope and never stored.
type SignatureRecord struct {
	TimestampSinceStart uint64
	LocationHash1       uint64
	LocationHash2       uint64
	SessionHash         []byte
	Timestamp           uint64
	RequestHashes       []uint64
	Sentinel            int64
}
