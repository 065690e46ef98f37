package envelope

import (
	"google.golang.org/protobuf/encoding/protowire"

	"pogo/internal/domain"
	"pogo/internal/protocol/wirefmt"
)

// Field numbers of the signature record.
const (
	sigTimestampSinceStart protowire.Number = 2
	sigLocationHash1       protowire.Number = 10
	sigLocationHash2       protowire.Number = 20
	sigSessionHash         protowire.Number = 22
	sigTimestamp           protowire.Number = 23
	sigRequestHash         protowire.Number = 24
	sigSentinel            protowire.Number = 25
)

// MarshalSignature encodes the record handed to the signer.
func MarshalSignature(rec domain.SignatureRecord) []byte {
	var b []byte
	b = wirefmt.AppendVarint(b, sigTimestampSinceStart, rec.TimestampSinceStart)
	b = wirefmt.AppendVarint(b, sigLocationHash1, rec.LocationHash1)
	b = wirefmt.AppendVarint(b, sigLocationHash2, rec.LocationHash2)
	b = wirefmt.AppendBytes(b, sigSessionHash, rec.SessionHash)
	b = wirefmt.AppendVarint(b, sigTimestamp, rec.Timestamp)
	b = wirefmt.AppendPackedVarints(b, sigRequestHash, rec.RequestHashes)
	b = wirefmt.AppendInt64(b, sigSentinel, rec.Sentinel)
	return b
}

// UnmarshalSignature decodes a signature record.
func UnmarshalSignature(b []byte) (domain.SignatureRecord, error) {
	var rec domain.SignatureRecord
	err := wirefmt.Walk(b, func(f wirefmt.Field) error {
		switch {
		case f.Num == sigTimestampSinceStart && f.IsVarint():
			rec.TimestampSinceStart = f.Uint64()
		case f.Num == sigLocationHash1 && f.IsVarint():
			rec.LocationHash1 = f.Uint64()
		case f.Num == sigLocationHash2 && f.IsVarint():
			rec.LocationHash2 = f.Uint64()
		case f.Num == sigSessionHash && f.IsBytes():
			rec.SessionHash = f.Bytes()
		case f.Num == sigTimestamp && f.IsVarint():
			rec.Timestamp = f.Uint64()
		case f.Num == sigRequestHash:
			hs, err := f.Varints()
			if err != nil {
				return err
			}
			rec.RequestHashes = append(rec.RequestHashes, hs...)
		case f.Num == sigSentinel && f.IsVarint():
			rec.Sentinel = f.Int64()
		}
		return nil
	})
	if err != nil {
		return domain.SignatureRecord{}, err
	}
	return rec, nil
}
