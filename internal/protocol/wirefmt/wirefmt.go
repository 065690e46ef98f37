// Package wirefmt holds the small field-level helpers the envelope and payload
// codecs share on top of protowire.
//
// Messages are read with Walk, which yields every top-level field already
// consumed, and written with the Append* helpers. Unknown fields and fields
// with an unexpected wire type are skipped, matching protobuf parsing rules.
package wirefmt

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed is wrapped by every decode failure.
var ErrMalformed = errors.New("malformed wire message")

// Field is one decoded top-level field.
type Field struct {
	Num  protowire.Number
	Type protowire.Type

	raw   uint64 // varint, fixed32 or fixed64 value
	bytes []byte // length-delimited value
}

// Walk calls fn for each field of msg in wire order.
func Walk(msg []byte, fn func(Field) error) error {
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return fmt.Errorf("%w: tag: %v", ErrMalformed, protowire.ParseError(n))
		}
		msg = msg[n:]

		f := Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			f.raw, n = protowire.ConsumeVarint(msg)
		case protowire.Fixed64Type:
			f.raw, n = protowire.ConsumeFixed64(msg)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(msg)
			f.raw = uint64(v)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(msg)
		default:
			n = protowire.ConsumeFieldValue(num, typ, msg)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
		}
		msg = msg[n:]

		if typ == protowire.StartGroupType {
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// IsVarint reports whether the field was encoded as a varint.
func (f Field) IsVarint() bool { return f.Type == protowire.VarintType }

// IsBytes reports whether the field was length-delimited.
func (f Field) IsBytes() bool { return f.Type == protowire.BytesType }

// IsFixed64 reports whether the field was a 64-bit fixed value.
func (f Field) IsFixed64() bool { return f.Type == protowire.Fixed64Type }

// Uint64 returns the raw scalar value.
func (f Field) Uint64() uint64 { return f.raw }

// Int64 returns the scalar as a two's complement int64.
func (f Field) Int64() int64 { return int64(f.raw) }

// Int32 returns the scalar truncated to int32, as protobuf does for int32 fields.
func (f Field) Int32() int32 { return int32(f.raw) }

// Bool returns the scalar as a bool.
func (f Field) Bool() bool { return f.raw != 0 }

// Double returns a fixed64 field as float64.
func (f Field) Double() float64 { return math.Float64frombits(f.raw) }

// Bytes returns a copy of a length-delimited value.
func (f Field) Bytes() []byte {
	if f.bytes == nil {
		return nil
	}
	return append([]byte(nil), f.bytes...)
}

// String returns a length-delimited value as a string.
func (f Field) String() string { return string(f.bytes) }

// Message returns the embedded message bytes without copying.
func (f Field) Message() []byte { return f.bytes }

// Varints decodes a repeated varint field that may be packed or not.
func (f Field) Varints() ([]uint64, error) {
	if f.IsVarint() {
		return []uint64{f.raw}, nil
	}
	if !f.IsBytes() {
		return nil, fmt.Errorf("%w: field %d: not a varint list", ErrMalformed, f.Num)
	}
	b := f.bytes
	out := make([]uint64, 0, len(b))
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, f.Num, protowire.ParseError(n))
		}
		out = append(out, v)
		b = b[n:]
	}
	return out, nil
}

// Fixed64s decodes a repeated fixed64 field that may be packed or not.
func (f Field) Fixed64s() ([]uint64, error) {
	if f.IsFixed64() {
		return []uint64{f.raw}, nil
	}
	if !f.IsBytes() || len(f.bytes)%8 != 0 {
		return nil, fmt.Errorf("%w: field %d: not a fixed64 list", ErrMalformed, f.Num)
	}
	b := f.bytes
	out := make([]uint64, 0, len(b)/8)
	for len(b) > 0 {
		v, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: field %d: %v", ErrMalformed, f.Num, protowire.ParseError(n))
		}
		out = append(out, v)
		b = b[n:]
	}
	return out, nil
}

// Int32s is Varints narrowed to int32.
func (f Field) Int32s() ([]int32, error) {
	vs, err := f.Varints()
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(vs))
	for i, v := range vs {
		out[i] = int32(v)
	}
	return out, nil
}

// AppendVarint appends a varint field, omitting zero values.
func AppendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// AppendInt64 appends a signed varint field, omitting zero values.
func AppendInt64(b []byte, num protowire.Number, v int64) []byte {
	return AppendVarint(b, num, uint64(v))
}

// AppendBool appends a bool field, omitting false.
func AppendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	return AppendVarint(b, num, 1)
}

// AppendDouble appends a double field, omitting zero values.
func AppendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// AppendBytes appends a length-delimited field, omitting empty values.
func AppendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	return AppendMessage(b, num, v)
}

// AppendString appends a string field, omitting empty values.
func AppendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// AppendMessage appends an embedded message, even when it is empty.
func AppendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// AppendPackedVarints appends a packed repeated varint field.
func AppendPackedVarints(b []byte, num protowire.Number, vs []uint64) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, v)
	}
	return AppendMessage(b, num, packed)
}

// AppendPackedInt32s appends a packed repeated int32 field.
func AppendPackedInt32s(b []byte, num protowire.Number, vs []int32) []byte {
	if len(vs) == 0 {
		return b
	}
	wide := make([]uint64, len(vs))
	for i, v := range vs {
		wide[i] = uint64(int64(v))
	}
	return AppendPackedVarints(b, num, wide)
}

// AppendPackedFixed64s appends a packed repeated fixed64 field.
func AppendPackedFixed64s(b []byte, num protowire.Number, vs []uint64) []byte {
	if len(vs) == 0 {
		return b
	}
	packed := make([]byte, 0, 8*len(vs))
	for _, v := range vs {
		packed = protowire.AppendFixed64(packed, v)
	}
	return AppendMessage(b, num, packed)
}
