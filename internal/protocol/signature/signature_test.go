package signature_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pogo/internal/crypto"
	"pogo/internal/domain"
	"pogo/internal/location"
	"pogo/internal/protocol/envelope"
	"pogo/internal/protocol/signature"
)

var ticket = &domain.AuthTicket{Start: []byte("start"), ExpireTimestampMs: 1, End: []byte("end")}

func batch() domain.RequestBatch {
	return domain.RequestBatch{{Type: domain.RequestTypeGetPlayer}, {Type: domain.RequestTypeGetInventory}}
}

type echoSigner struct{ calls int }

func (s *echoSigner) Sign(record []byte) ([]byte, error) {
	s.calls++
	return append([]byte(nil), record...), nil
}

func TestSign_SkipsWithoutTicketLocationOrSigner(t *testing.T) {
	here := location.NewFixed(40, -74, 10)
	signer := &echoSigner{}
	eng := signature.New(signer)

	sig, err := eng.Sign(nil, here, batch(), 0)
	require.NoError(t, err)
	require.Nil(t, sig)

	sig, err = eng.Sign(ticket, location.NewNoop(), batch(), 0)
	require.NoError(t, err)
	require.Nil(t, sig)

	sig, err = signature.New(nil).Sign(ticket, here, batch(), 0)
	require.NoError(t, err)
	require.Nil(t, sig)
	require.Zero(t, signer.calls)
	require.False(t, signature.New(nil).Enabled())
}

func TestSign_RecordContents(t *testing.T) {
	signer := &echoSigner{}
	eng := signature.New(signer,
		signature.WithClock(func() uint64 { return 10_000 }),
		signature.WithNonce(func() ([]byte, error) { return bytes.Repeat([]byte{7}, 32), nil }),
	)
	here := location.NewFixed(40, -74, 10)

	sig, err := eng.Sign(ticket, here, batch(), 4_000)
	require.NoError(t, err)
	require.Equal(t, 1, signer.calls)

	rec, err := envelope.UnmarshalSignature(sig)
	require.NoError(t, err)
	require.Equal(t, uint64(10_000), rec.Timestamp)
	require.Equal(t, uint64(6_000), rec.TimestampSinceStart)
	require.Equal(t, signature.Sentinel, rec.Sentinel)
	require.Len(t, rec.RequestHashes, 2)
	require.Equal(t, bytes.Repeat([]byte{7}, 32), rec.SessionHash)

	bound, unbound := crypto.HashLocation(envelope.MarshalTicket(*ticket), here.Coordinates())
	require.Equal(t, bound, rec.LocationHash1)
	require.Equal(t, unbound, rec.LocationHash2)
}

func TestSign_NonDeterministicWithRealNonce(t *testing.T) {
	signer, err := crypto.NewAEADSigner(bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)
	eng := signature.New(signer, signature.WithClock(func() uint64 { return 1 }))
	here := location.NewFixed(1, 2, 3)

	a, err := eng.Sign(ticket, here, batch(), 0)
	require.NoError(t, err)
	b, err := eng.Sign(ticket, here, batch(), 0)
	require.NoError(t, err)
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)

	recA, err := signer.Open(a)
	require.NoError(t, err)
	recB, err := signer.Open(b)
	require.NoError(t, err)
	require.NotEqual(t, recA, recB, "records differ by their session nonce")
}

type failingSigner struct{}

func (failingSigner) Sign([]byte) ([]byte, error) { return nil, errors.New("hsm offline") }

func TestSign_SignerErrorPropagates(t *testing.T) {
	_, err := signature.New(failingSigner{}).Sign(ticket, location.NewFixed(1, 1, 1), batch(), 0)
	require.ErrorContains(t, err, "hsm offline")
}
