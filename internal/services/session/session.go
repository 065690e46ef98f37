package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pogo/internal/crypto"
	"pogo/internal/domain"
	"pogo/internal/location"
	"pogo/internal/observability"
	"pogo/internal/protocol/payload"
	"pogo/internal/protocol/signature"
	"pogo/internal/transport"
	"pogo/internal/util/clock"
	"pogo/internal/util/rpcid"
)

const (
	// BootstrapURL receives the first, unauthenticated call of every session.
	BootstrapURL = "https://pgorelease.nianticlabs.com/plfe/rpc"
	// ClientBuild is the build constant every envelope carries.
	ClientBuild = 741
	// TokenTag accompanies the access token in the bootstrap auth info.
	TokenTag = 59
	// DefaultMaxRetries caps redirect retries per call.
	DefaultMaxRetries = 3
)

const (
	noLocationNotice = "limited functionality: no location provided, requests will not be signed"
	noSignerNotice   = "no request signer configured: requests may return blank or fail altogether"
	banNotice        = "this account may have been banned; the session is unusable from here on"
)

var (
	// ErrNoAuth is returned by New without an auth session.
	ErrNoAuth = errors.New("session requires an auth session")
	// ErrAlreadyBootstrapped is returned by Bootstrap once a ticket is held.
	ErrAlreadyBootstrapped = errors.New("session already holds an auth ticket")
)

// Session is one authenticated conversation with the service. Not safe for
// concurrent use.
type Session struct {
	id           uuid.UUID
	auth         domain.AuthSession
	loc          domain.Location
	transport    domain.Transport
	engine       *signature.Engine
	sigOpts      []signature.Option
	ids          *rpcid.Allocator
	newView      domain.InventoryViewFunc
	log          zerolog.Logger
	metrics      *observability.Metrics
	bootstrapURL string
	maxRetries   int
	backoff      BackoffConfig
	sleep        func(context.Context, time.Duration) error
	rng          *rand.Rand

	phase    domain.Phase
	ticket   *domain.AuthTicket
	endpoint string
	startMs  uint64
	state    *state
}

// New prepares a session without any I/O. loc may be nil, which behaves like a
// no-op location.
func New(auth domain.AuthSession, loc domain.Location, opts ...Option) (*Session, error) {
	if auth == nil {
		return nil, ErrNoAuth
	}
	if loc == nil {
		loc = location.NewNoop()
	}
	s := &Session{
		id:           uuid.New(),
		auth:         auth,
		loc:          loc,
		ids:          rpcid.Global(),
		newView:      payload.NewInventory,
		log:          log.Logger,
		bootstrapURL: BootstrapURL,
		maxRetries:   DefaultMaxRetries,
		backoff:      DefaultBackoff(),
		sleep:        sleepContext,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		phase:        domain.PhaseFresh,
		startMs:      clock.NowMs(),
		state:        &state{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("session", s.id.String()).Logger()
	if s.transport == nil {
		s.transport = transport.NewHTTP(transport.Options{Logger: s.log})
	}
	s.engine = signature.New(auth.Signer(), s.sigOpts...)

	if s.loc.IsNoop() {
		s.log.Warn().Msg(noLocationNotice)
	}
	if !s.engine.Enabled() {
		s.log.Warn().Msg(noSignerNotice)
	}
	if exp, ok := auth.(interface{ Expired(time.Time) bool }); ok && exp.Expired(time.Now()) {
		s.log.Warn().Str("provider", auth.Provider().String()).Msg("access token has expired")
	}
	return s, nil
}

// Open creates a session and bootstraps it against the bootstrap endpoint.
func Open(ctx context.Context, auth domain.AuthSession, loc domain.Location, opts ...Option) (*Session, error) {
	s, err := New(auth, loc, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := s.Bootstrap(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// FormatEndpoint turns the host the service names into the endpoint URL.
func FormatEndpoint(host string) string {
	host = strings.TrimPrefix(strings.TrimPrefix(host, "https://"), "http://")
	host = strings.TrimSuffix(strings.TrimSuffix(host, "/"), "/rpc")
	return "https://" + host + "/rpc"
}

// ID returns the session correlation id used in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Coordinates returns the location the next envelope will report.
func (s *Session) Coordinates() domain.Coordinates { return s.loc.Coordinates() }

// SetCoordinates moves the session's location.
func (s *Session) SetCoordinates(latitude, longitude float64) {
	s.loc.SetCoordinates(latitude, longitude)
}

// Snapshot summarises the session for display. It holds no secrets.
func (s *Session) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Endpoint:          s.endpoint,
		Phase:             s.phase.String(),
		UpdatedUnixMillis: int64(clock.NowMs()),
	}
	if s.ticket != nil {
		snap.TicketExpiresMs = s.ticket.ExpireTimestampMs
	}
	if p, err := s.Profile(); err == nil {
		snap.Username = p.Username
	}
	if inv, err := s.Inventory(); err == nil {
		snap.InventoryItems = inv.Len()
	}
	return snap
}

// String summarises the session. The access token is fingerprinted.
func (s *Session) String() string {
	c := s.loc.Coordinates()
	endpoint := s.endpoint
	if endpoint == "" {
		endpoint = "(none)"
	}
	return fmt.Sprintf("Access Token: %s\nEndpoint: %s\nLocation: %.6f, %.6f, %.1f",
		crypto.Fingerprint([]byte(s.auth.AccessToken())), endpoint, c.Latitude, c.Longitude, c.Altitude)
}
