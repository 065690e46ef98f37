package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"pogo/internal/domain"
	"pogo/internal/protocol/envelope"
)

const (
	// DefaultUserAgent is what the official client sends.
	DefaultUserAgent = "Niantic App"
	// DefaultTimeout bounds one exchange when no timeout is configured.
	DefaultTimeout = 30 * time.Second
	// ContentType labels the binary envelope body.
	ContentType = "application/x-protobuf"
	// DefaultMaxBodyBytes caps how much of a response body is read.
	DefaultMaxBodyBytes = 16 << 20
)

// Options configures NewHTTP.
type Options struct {
	Timeout            time.Duration
	UserAgent          string
	InsecureSkipVerify bool
	MaxBodyBytes       int64
	Logger             zerolog.Logger
}

// HTTP posts envelopes over HTTPS.
type HTTP struct {
	HTTP         *http.Client
	UserAgent    string
	MaxBodyBytes int64
	log          zerolog.Logger
}

// NewHTTP builds a transport with its own client.
func NewHTTP(opts Options) *HTTP {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-in
		opts.Logger.Warn().Msg("TLS certificate verification disabled")
	}
	return NewHTTPWithClient(&http.Client{Transport: base, Timeout: timeout}, opts)
}

// NewHTTPWithClient wraps an existing client. Timeout and InsecureSkipVerify
// are ignored; the client carries its own.
func NewHTTPWithClient(c *http.Client, opts Options) *HTTP {
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &HTTP{HTTP: c, UserAgent: ua, MaxBodyBytes: maxBody, log: opts.Logger}
}

// RoundTrip posts env to url and decodes the answer.
func (t *HTTP) RoundTrip(
	ctx context.Context,
	url string,
	env domain.RequestEnvelope,
) (domain.ResponseEnvelope, error) {
	body, err := envelope.MarshalRequest(env)
	if err != nil {
		return domain.ResponseEnvelope{}, fmt.Errorf("%w: encode request: %w", domain.ErrServer, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.ResponseEnvelope{}, fmt.Errorf("%w: build request: %w", domain.ErrConnect, err)
	}
	req.Header.Set("User-Agent", t.UserAgent)
	req.Header.Set("Content-Type", ContentType)

	t.log.Debug().
		Str("url", url).
		Uint64("request_id", env.RequestID).
		Int("requests", len(env.Requests)).
		Int("bytes", len(body)).
		Msg("post envelope")

	resp, err := t.HTTP.Do(req)
	if err != nil {
		return domain.ResponseEnvelope{}, fmt.Errorf("%w: post %s: %w", domain.ErrConnect, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return domain.ResponseEnvelope{}, fmt.Errorf("%w: post %s: %s", domain.ErrServer, url, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, t.MaxBodyBytes+1))
	if err != nil {
		return domain.ResponseEnvelope{}, fmt.Errorf("%w: read body: %w", domain.ErrServer, err)
	}
	if int64(len(raw)) > t.MaxBodyBytes {
		return domain.ResponseEnvelope{}, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrServer, t.MaxBodyBytes)
	}
	if len(raw) == 0 {
		return domain.ResponseEnvelope{}, fmt.Errorf("%w: empty body", domain.ErrResponseDecode)
	}

	out, err := envelope.UnmarshalResponse(raw)
	if err != nil {
		return domain.ResponseEnvelope{}, fmt.Errorf("%w: %w", domain.ErrResponseDecode, err)
	}
	t.log.Debug().
		Uint64("request_id", out.RequestID).
		Stringer("status", out.StatusCode).
		Int("returns", len(out.Returns)).
		Msg("response envelope")
	return out, nil
}

var _ domain.Transport = (*HTTP)(nil)
