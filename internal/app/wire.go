package app

import (
	"os"

	"github.com/rs/zerolog"

	"pogo/internal/config"
	"pogo/internal/domain"
	"pogo/internal/observability"
	"pogo/internal/services/identity"
	"pogo/internal/store"
	"pogo/internal/transport"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Credentials domain.CredentialStore
	Snapshots   domain.SnapshotStore
	Identity    *identity.Service
	Transport   domain.Transport
	Metrics     *observability.Metrics
	Log         zerolog.Logger

	runtime config.Config
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := os.MkdirAll(cfg.Runtime.Home, 0o700); err != nil {
		return nil, err
	}

	// File-based stores
	credStore := store.NewCredentialFileStore(cfg.Runtime.Home)
	snapStore := store.NewSnapshotFileStore(cfg.Runtime.Home)

	// Transport (uses the provided HTTP client when given)
	topts := transport.Options{
		Timeout:            cfg.Runtime.Timeout,
		UserAgent:          cfg.Runtime.UserAgent,
		InsecureSkipVerify: cfg.Runtime.InsecureSkipVerify,
		Logger:             cfg.Logger,
	}
	var tr *transport.HTTP
	if cfg.HTTP != nil {
		tr = transport.NewHTTPWithClient(cfg.HTTP, topts)
	} else {
		tr = transport.NewHTTP(topts)
	}

	metrics := observability.Default()
	if cfg.Registerer != nil {
		metrics = observability.NewMetrics(cfg.Registerer)
	}

	return &Wire{
		Credentials: credStore,
		Snapshots:   snapStore,
		Identity:    identity.New(credStore),
		Transport:   tr,
		Metrics:     metrics,
		Log:         cfg.Logger,
		runtime:     cfg.Runtime,
	}, nil
}
