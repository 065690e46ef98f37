package types

import "strconv"

// RequestType tags a sub-request inside an envelope.
type RequestType int32

// Request types used by the session engine. The remote service knows many more;
// callers may send any value.
const (
	RequestTypeMethodUnset        RequestType = 0
	RequestTypePlayerUpdate       RequestType = 1
	RequestTypeGetPlayer          RequestType = 2
	RequestTypeGetInventory       RequestType = 4
	RequestTypeDownloadSettings   RequestType = 5
	RequestTypeGetMapObjects      RequestType = 106
	RequestTypeGetHatchedEggs     RequestType = 126
	RequestTypeCheckAwardedBadges RequestType = 129
)

var requestTypeNames = map[RequestType]string{
	RequestTypeMethodUnset:        "METHOD_UNSET",
	RequestTypePlayerUpdate:       "PLAYER_UPDATE",
	RequestTypeGetPlayer:          "GET_PLAYER",
	RequestTypeGetInventory:       "GET_INVENTORY",
	RequestTypeDownloadSettings:   "DOWNLOAD_SETTINGS",
	RequestTypeGetMapObjects:      "GET_MAP_OBJECTS",
	RequestTypeGetHatchedEggs:     "GET_HATCHED_EGGS",
	RequestTypeCheckAwardedBadges: "CHECK_AWARDED_BADGES",
}

// String returns the symbolic name of the request type.
func (t RequestType) String() string {
	if name, ok := requestTypeNames[t]; ok {
		return name
	}
	return "REQUEST_TYPE_" + strconv.Itoa(int(t))
}

// StatusCode is the envelope-level status reported by the service.
type StatusCode int32

const (
	// StatusUnknown is the zero value; the service never sends it on purpose.
	StatusUnknown StatusCode = 0
	// StatusOK is a plain success.
	StatusOK StatusCode = 1
	// StatusOKWithEndpoint is a success that may carry a new api url. Outbound
	// envelopes use it as their status placeholder.
	StatusOKWithEndpoint StatusCode = 2
	// StatusBadRequest means malformed parameters or, more often, a banned account.
	StatusBadRequest StatusCode = 3
	// StatusRateLimited means the account sends requests too frequently.
	StatusRateLimited StatusCode = 52
	// StatusRedirect means the endpoint is not warmed up yet; with zero returns
	// the whole call must be repeated against the new endpoint.
	StatusRedirect StatusCode = 53
)

var statusNames = map[StatusCode]string{
	StatusUnknown:        "UNKNOWN",
	StatusOK:             "OK",
	StatusOKWithEndpoint: "OK_RPC_URL_IN_RESPONSE",
	StatusBadRequest:     "BAD_REQUEST",
	StatusRateLimited:    "RATE_LIMITED",
	StatusRedirect:       "REDIRECT",
}

// Known reports whether the code is one of the classified status codes.
func (c StatusCode) Known() bool {
	_, ok := statusNames[c]
	return ok && c != StatusUnknown
}

// String returns the symbolic name, or the number for unclassified codes.
func (c StatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// Coordinates is a latitude/longitude/altitude triple.
type Coordinates struct {
	Latitude  float64 `json:"latitude" toml:"latitude"`
	Longitude float64 `json:"longitude" toml:"longitude"`
	Altitude  float64 `json:"altitude" toml:"altitude"`
}

// Provider names the identity provider that issued an access token.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderPTC    Provider = "ptc"
)

// String returns the string form of the provider.
func (p Provider) String() string { return string(p) }

// Phase is the lifecycle position of a session.
type Phase int

const (
	PhaseFresh Phase = iota
	PhaseBootstrapping
	PhaseAuthenticated
	PhaseEndpointMigrated
	PhaseDegraded
)

// String returns a lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseFresh:
		return "fresh"
	case PhaseBootstrapping:
		return "bootstrapping"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseEndpointMigrated:
		return "endpoint-migrated"
	case PhaseDegraded:
		return "degraded"
	default:
		return "phase-" + strconv.Itoa(int(p))
	}
}
