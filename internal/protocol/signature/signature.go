package signature

import (
	"fmt"

	"pogo/internal/crypto"
	"pogo/internal/domain"
	"pogo/internal/protocol/envelope"
	"pogo/internal/util/clock"
	"pogo/internal/util/memzero"
)

// Sentinel is the fixed value the service expects in the last record field.
const Sentinel int64 = -8537042734809897855

// Engine decides whether an envelope gets signed and produces the signature.
type Engine struct {
	signer domain.Signer
	now    func() uint64
	nonce  func() ([]byte, error)
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces the millisecond clock.
func WithClock(now func() uint64) Option { return func(e *Engine) { e.now = now } }

// WithNonce replaces the session nonce source.
func WithNonce(nonce func() ([]byte, error)) Option { return func(e *Engine) { e.nonce = nonce } }

// New returns an engine around signer, which may be nil.
func New(signer domain.Signer, opts ...Option) *Engine {
	e := &Engine{signer: signer, now: clock.NowMs, nonce: crypto.SessionHash}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enabled reports whether a signer is configured.
func (e *Engine) Enabled() bool { return e.signer != nil }

// Sign returns the signed blob for batch, or nil when the envelope must go out
// unsigned: no ticket yet, no-op location, or no signer configured.
func (e *Engine) Sign(
	ticket *domain.AuthTicket,
	loc domain.Location,
	batch domain.RequestBatch,
	startMs uint64,
) ([]byte, error) {
	if ticket == nil || loc == nil || loc.IsNoop() || e.signer == nil {
		return nil, nil
	}
	rec, err := e.Record(*ticket, loc.Coordinates(), batch, startMs)
	if err != nil {
		return nil, err
	}
	raw := envelope.MarshalSignature(rec)
	defer memzero.ZeroAll(raw, rec.SessionHash)

	sig, err := e.signer.Sign(raw)
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}
	return sig, nil
}

// Record assembles the unsigned signature record.
func (e *Engine) Record(
	ticket domain.AuthTicket,
	at domain.Coordinates,
	batch domain.RequestBatch,
	startMs uint64,
) (domain.SignatureRecord, error) {
	ticketBytes := envelope.MarshalTicket(ticket)
	bound, unbound := crypto.HashLocation(ticketBytes, at)

	encoded := make([][]byte, len(batch))
	for i, r := range batch {
		encoded[i] = envelope.MarshalSubRequest(r)
	}

	nonce, err := e.nonce()
	if err != nil {
		return domain.SignatureRecord{}, fmt.Errorf("session nonce: %w", err)
	}

	now := e.now()
	return domain.SignatureRecord{
		TimestampSinceStart: clock.ElapsedMs(now, startMs),
		LocationHash1:       bound,
		LocationHash2:       unbound,
		SessionHash:         nonce,
		Timestamp:           now,
		RequestHashes:       crypto.HashRequests(ticketBytes, encoded),
		Sentinel:            Sentinel,
	}, nil
}
