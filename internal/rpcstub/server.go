package rpcstub

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"pogo/internal/crypto"
	"pogo/internal/domain"
	"pogo/internal/observability"
	"pogo/internal/protocol/envelope"
	"pogo/internal/protocol/payload"
	"pogo/internal/protocol/signature"
)

// Mode forces every answer to one status.
type Mode int

const (
	ModeNormal Mode = iota
	ModeBan
	ModeRateLimit
)

// Config holds the canned answers and behaviour switches.
type Config struct {
	// APIHost is returned as api_url. Empty means the Host header of the request.
	APIHost string
	// WarmupRedirects is how many 53 answers a new ticket gets before real ones.
	WarmupRedirects int
	// TicketTTL is the lifetime written into issued tickets.
	TicketTTL time.Duration
	// SignerKey, when set, makes authenticated requests require a valid signature.
	SignerKey []byte

	Profile   domain.Profile
	Eggs      domain.HatchedEggs
	Inventory domain.InventoryDelta
	Badges    domain.AwardedBadges
	Settings  domain.Settings
}

// DefaultConfig returns a config with a small canned player.
func DefaultConfig() Config {
	now := uint64(time.Now().UnixMilli())
	return Config{
		TicketTTL: 30 * time.Minute,
		Profile: domain.Profile{
			Success:             true,
			Username:            "stubtrainer",
			CreationTimestampMs: now - 86_400_000,
			Team:                1,
			MaxPokemonStorage:   250,
			MaxItemStorage:      350,
		},
		Eggs: domain.HatchedEggs{Success: true},
		Inventory: domain.InventoryDelta{
			Success:        true,
			NewTimestampMs: now,
			Items: []domain.InventoryItem{
				{ModifiedTimestampMs: now - 1000, Data: []byte("poke-ball x20")},
				{ModifiedTimestampMs: now, Data: []byte("potion x5")},
			},
		},
		Badges:   domain.AwardedBadges{Success: true},
		Settings: domain.Settings{Hash: payload.DefaultSettingsHash},
	}
}

type ticketState struct {
	redirectsLeft int
}

// Server answers envelopes. Safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	cfg      Config
	mode     Mode
	tickets  map[string]*ticketState
	received []domain.RequestEnvelope
	opener   *crypto.AEADSigner

	log      zerolog.Logger
	metrics  *observability.Metrics
	registry *prometheus.Registry
}

// New builds a server. A SignerKey shorter than the signer minimum disables
// signature checks and is logged.
func New(cfg Config, logger zerolog.Logger) *Server {
	if cfg.TicketTTL <= 0 {
		cfg.TicketTTL = 30 * time.Minute
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		cfg:      cfg,
		tickets:  make(map[string]*ticketState),
		log:      logger,
		registry: reg,
		metrics:  observability.NewMetrics(reg),
	}
	if len(cfg.SignerKey) > 0 {
		opener, err := crypto.NewAEADSigner(cfg.SignerKey)
		if err != nil {
			logger.Warn().Err(err).Msg("signature checks disabled")
		} else {
			s.opener = opener
		}
	}
	return s
}

// Handler returns the HTTP API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /plfe/rpc", s.serveRPC)
	mux.HandleFunc("POST /rpc", s.serveRPC)
	mux.Handle("GET /metrics", observability.HandlerFor(s.registry))
	return observability.RequestLogger(s.log, s.metrics, mux)
}

// SetMode switches the forced answer.
func (s *Server) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// Received returns the envelopes decoded so far, oldest first.
func (s *Server) Received() []domain.RequestEnvelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.RequestEnvelope(nil), s.received...)
}

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	env, err := envelope.UnmarshalRequest(body)
	if err != nil {
		s.log.Warn().Err(err).Msg("undecodable envelope")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	host := s.cfg.APIHost
	if host == "" {
		host = r.Host
	}
	res := s.answer(env, host)
	_, _ = w.Write(envelope.MarshalResponse(res))
}

func (s *Server) answer(env domain.RequestEnvelope, host string) domain.ResponseEnvelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, env)

	res := domain.ResponseEnvelope{RequestID: env.RequestID}
	switch s.mode {
	case ModeBan:
		res.StatusCode = domain.StatusBadRequest
		return res
	case ModeRateLimit:
		res.StatusCode = domain.StatusRateLimited
		return res
	}

	switch cred := env.Auth.(type) {
	case domain.Unauthenticated:
		if cred.Info.Token == "" {
			res.StatusCode = domain.StatusBadRequest
			return res
		}
		ticket := s.issueTicket()
		res.StatusCode = domain.StatusRedirect
		res.APIURL = host
		res.AuthTicket = &ticket
		s.log.Info().
			Str("provider", cred.Info.Provider.String()).
			Str("ticket", crypto.TicketFingerprint(ticket)).
			Msg("issued ticket")
		return res

	case domain.Authenticated:
		st, ok := s.tickets[hex.EncodeToString(cred.Ticket.Start)]
		if !ok || !s.signatureValid(env) {
			res.StatusCode = domain.StatusBadRequest
			return res
		}
		if st.redirectsLeft > 0 {
			st.redirectsLeft--
			res.StatusCode = domain.StatusRedirect
			res.APIURL = host
			return res
		}
		res.StatusCode = domain.StatusOK
		res.Returns = s.returnsFor(env.Requests)
		return res

	default:
		res.StatusCode = domain.StatusBadRequest
		return res
	}
}

func (s *Server) issueTicket() domain.AuthTicket {
	start := make([]byte, 16)
	end := make([]byte, 16)
	_, _ = rand.Read(start)
	_, _ = rand.Read(end)
	s.tickets[hex.EncodeToString(start)] = &ticketState{redirectsLeft: s.cfg.WarmupRedirects}
	return domain.AuthTicket{
		Start:             start,
		ExpireTimestampMs: uint64(time.Now().Add(s.cfg.TicketTTL).UnixMilli()),
		End:               end,
	}
}

func (s *Server) signatureValid(env domain.RequestEnvelope) bool {
	if s.opener == nil {
		return true
	}
	raw, err := s.opener.Open(env.Signature)
	if err != nil {
		return false
	}
	rec, err := envelope.UnmarshalSignature(raw)
	if err != nil {
		return false
	}
	return rec.Sentinel == signature.Sentinel && len(rec.RequestHashes) == len(env.Requests)
}

func (s *Server) returnsFor(reqs domain.RequestBatch) [][]byte {
	out := make([][]byte, len(reqs))
	for i, r := range reqs {
		switch r.Type {
		case domain.RequestTypeGetPlayer:
			out[i] = payload.EncodeProfile(s.cfg.Profile)
		case domain.RequestTypeGetHatchedEggs:
			out[i] = payload.EncodeHatchedEggs(s.cfg.Eggs)
		case domain.RequestTypeGetInventory:
			out[i] = payload.EncodeInventory(s.cfg.Inventory)
		case domain.RequestTypeCheckAwardedBadges:
			out[i] = payload.EncodeBadges(s.cfg.Badges)
		case domain.RequestTypeDownloadSettings:
			out[i] = payload.EncodeSettings(s.cfg.Settings)
		default:
			out[i] = []byte{}
		}
	}
	return out
}
