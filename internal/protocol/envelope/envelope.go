package envelope

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"pogo/internal/domain"
	"pogo/internal/protocol/wirefmt"
)

// Field numbers of the request envelope.
const (
	reqStatusCode      protowire.Number = 1
	reqRequestID       protowire.Number = 3
	reqRequests        protowire.Number = 4
	reqPlatformRequest protowire.Number = 6
	reqLatitude        protowire.Number = 7
	reqLongitude       protowire.Number = 8
	reqAltitude        protowire.Number = 9
	reqAuthInfo        protowire.Number = 10
	reqAuthTicket      protowire.Number = 11
	reqClientBuild     protowire.Number = 12
)

// Field numbers of the response envelope.
const (
	resStatusCode protowire.Number = 1
	resRequestID  protowire.Number = 2
	resAPIURL     protowire.Number = 3
	resAuthTicket protowire.Number = 7
	resReturns    protowire.Number = 100
	resError      protowire.Number = 101
)

// platformSignatureType marks the platform request that carries the signature.
const platformSignatureType = 6

var (
	// ErrBothCredentials is returned when decoding an envelope that carries both
	// auth info and an auth ticket.
	ErrBothCredentials = errors.New("envelope carries both auth info and auth ticket")
	// ErrNoCredential is returned when encoding an envelope without credential.
	ErrNoCredential = errors.New("envelope has no credential")
)

// MarshalRequest encodes a request envelope.
func MarshalRequest(env domain.RequestEnvelope) ([]byte, error) {
	var b []byte
	b = wirefmt.AppendInt64(b, reqStatusCode, int64(env.StatusCode))
	b = wirefmt.AppendVarint(b, reqRequestID, env.RequestID)
	for _, r := range env.Requests {
		b = wirefmt.AppendMessage(b, reqRequests, marshalSubRequest(r))
	}
	if len(env.Signature) > 0 {
		b = wirefmt.AppendMessage(b, reqPlatformRequest, marshalPlatformSignature(env.Signature))
	}
	b = wirefmt.AppendDouble(b, reqLatitude, env.Location.Latitude)
	b = wirefmt.AppendDouble(b, reqLongitude, env.Location.Longitude)
	b = wirefmt.AppendDouble(b, reqAltitude, env.Location.Altitude)

	switch cred := env.Auth.(type) {
	case domain.Unauthenticated:
		b = wirefmt.AppendMessage(b, reqAuthInfo, marshalAuthInfo(cred.Info))
	case domain.Authenticated:
		b = wirefmt.AppendMessage(b, reqAuthTicket, MarshalTicket(cred.Ticket))
	case nil:
		return nil, ErrNoCredential
	default:
		return nil, fmt.Errorf("unsupported credential %T", cred)
	}

	b = wirefmt.AppendInt64(b, reqClientBuild, env.ClientBuild)
	return b, nil
}

// UnmarshalRequest decodes a request envelope.
func UnmarshalRequest(b []byte) (domain.RequestEnvelope, error) {
	var (
		env    domain.RequestEnvelope
		info   *domain.AuthInfo
		ticket *domain.AuthTicket
	)
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == reqStatusCode && f.IsVarint():
			env.StatusCode = domain.StatusCode(f.Int32())
		case f.Num == reqRequestID && f.IsVarint():
			env.RequestID = f.Uint64()
		case f.Num == reqRequests && f.IsBytes():
			r, err := unmarshalSubRequest(f.Message())
			if err != nil {
				return err
			}
			env.Requests = append(env.Requests, r)
		case f.Num == reqPlatformRequest && f.IsBytes():
			sig, err := unmarshalPlatformSignature(f.Message())
			if err != nil {
				return err
			}
			if sig != nil {
				env.Signature = sig
			}
		case f.Num == reqLatitude && f.IsFixed64():
			env.Location.Latitude = f.Double()
		case f.Num == reqLongitude && f.IsFixed64():
			env.Location.Longitude = f.Double()
		case f.Num == reqAltitude && f.IsFixed64():
			env.Location.Altitude = f.Double()
		case f.Num == reqAuthInfo && f.IsBytes():
			ai, err := unmarshalAuthInfo(f.Message())
			if err != nil {
				return err
			}
			info = &ai
		case f.Num == reqAuthTicket && f.IsBytes():
			t, err := UnmarshalTicket(f.Message())
			if err != nil {
				return err
			}
			ticket = &t
		case f.Num == reqClientBuild && f.IsVarint():
			env.ClientBuild = f.Int64()
		}
		return nil
	})
	if err != nil {
		return domain.RequestEnvelope{}, err
	}
	switch {
	case info != nil && ticket != nil:
		return domain.RequestEnvelope{}, ErrBothCredentials
	case info != nil:
		env.Auth = domain.Unauthenticated{Info: *info}
	case ticket != nil:
		env.Auth = domain.Authenticated{Ticket: *ticket}
	}
	return env, nil
}

// MarshalResponse encodes a response envelope.
func MarshalResponse(env domain.ResponseEnvelope) []byte {
	var b []byte
	b = wirefmt.AppendInt64(b, resStatusCode, int64(env.StatusCode))
	b = wirefmt.AppendVarint(b, resRequestID, env.RequestID)
	b = wirefmt.AppendString(b, resAPIURL, env.APIURL)
	if env.AuthTicket != nil {
		b = wirefmt.AppendMessage(b, resAuthTicket, MarshalTicket(*env.AuthTicket))
	}
	for _, r := range env.Returns {
		b = wirefmt.AppendMessage(b, resReturns, r)
	}
	b = wirefmt.AppendString(b, resError, env.Error)
	return b
}

// UnmarshalResponse decodes a response envelope.
func UnmarshalResponse(b []byte) (domain.ResponseEnvelope, error) {
	var env domain.ResponseEnvelope
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == resStatusCode && f.IsVarint():
			env.StatusCode = domain.StatusCode(f.Int32())
		case f.Num == resRequestID && f.IsVarint():
			env.RequestID = f.Uint64()
		case f.Num == resAPIURL && f.IsBytes():
			env.APIURL = f.String()
		case f.Num == resAuthTicket && f.IsBytes():
			t, err := UnmarshalTicket(f.Message())
			if err != nil {
				return err
			}
			env.AuthTicket = &t
		case f.Num == resReturns && f.IsBytes():
			env.Returns = append(env.Returns, f.Bytes())
		case f.Num == resError && f.IsBytes():
			env.Error = f.String()
		}
		return nil
	})
	if err != nil {
		return domain.ResponseEnvelope{}, err
	}
	return env, nil
}

// MarshalTicket encodes an auth ticket. The same bytes feed the signature hashes.
func MarshalTicket(t domain.AuthTicket) []byte {
	var b []byte
	b = wirefmt.AppendBytes(b, 1, t.Start)
	b = wirefmt.AppendVarint(b, 2, t.ExpireTimestampMs)
	b = wirefmt.AppendBytes(b, 3, t.End)
	return b
}

// UnmarshalTicket decodes an auth ticket.
func UnmarshalTicket(b []byte) (domain.AuthTicket, error) {
	var t domain.AuthTicket
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == 1 && f.IsBytes():
			t.Start = f.Bytes()
		case f.Num == 2 && f.IsVarint():
			t.ExpireTimestampMs = f.Uint64()
		case f.Num == 3 && f.IsBytes():
			t.End = f.Bytes()
		}
		return nil
	})
	return t, err
}

// MarshalSubRequest encodes one sub-request. Request hashes are computed over
// these bytes.
func MarshalSubRequest(r domain.SubRequest) []byte { return marshalSubRequest(r) }

func marshalSubRequest(r domain.SubRequest) []byte {
	var b []byte
	b = wirefmt.AppendInt64(b, 1, int64(r.Type))
	b = wirefmt.AppendBytes(b, 2, r.Payload)
	return b
}

func unmarshalSubRequest(b []byte) (domain.SubRequest, error) {
	var r domain.SubRequest
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == 1 && f.IsVarint():
			r.Type = domain.RequestType(f.Int32())
		case f.Num == 2 && f.IsBytes():
			r.Payload = f.Bytes()
		}
		return nil
	})
	return r, err
}

func marshalAuthInfo(ai domain.AuthInfo) []byte {
	var token []byte
	token = wirefmt.AppendString(token, 1, ai.Token)
	token = wirefmt.AppendInt64(token, 2, int64(ai.TokenTag))

	var b []byte
	b = wirefmt.AppendString(b, 1, ai.Provider.String())
	b = wirefmt.AppendMessage(b, 2, token)
	return b
}

func unmarshalAuthInfo(b []byte) (domain.AuthInfo, error) {
	var ai domain.AuthInfo
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == 1 && f.IsBytes():
			ai.Provider = domain.Provider(f.String())
		case f.Num == 2 && f.IsBytes():
			return wirefmt.Walk(f.Message(), func(tf wirefmt.Field) error {
				switch {
				case tf.Num == 1 && tf.IsBytes():
					ai.Token = tf.String()
				case tf.Num == 2 && tf.IsVarint():
					ai.TokenTag = tf.Int32()
				}
				return nil
			})
		}
		return nil
	})
	return ai, err
}

func marshalPlatformSignature(sig []byte) []byte {
	var inner []byte
	inner = wirefmt.AppendBytes(inner, 1, sig)

	var b []byte
	b = wirefmt.AppendInt64(b, 1, platformSignatureType)
	b = wirefmt.AppendMessage(b, 2, inner)
	return b
}

// unmarshalPlatformSignature returns nil when the platform request is not a
// signature carrier.
func unmarshalPlatformSignature(b []byte) ([]byte, error) {
	var (
		typ int64
		sig []byte
	)
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == 1 && f.IsVarint():
			typ = f.Int64()
		case f.Num == 2 && f.IsBytes():
			return wirefmt.Walk(f.Message(), func(sf wirefmt.Field) error {
				if sf.Num == 1 && sf.IsBytes() {
					sig = sf.Bytes()
				}
				return nil
			})
		}
		return nil
	})
	if err != nil || typ != platformSignatureType {
		return nil, err
	}
	return sig, nil
}
