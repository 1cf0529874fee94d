package core

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// TLVType tags the scalar/composite kind of a TLV-framed value.
type TLVType byte

const (
	TLVNull TLVType = iota
	TLVBoolean
	TLVUint
	TLVInt
	TLVFloat
	TLVString
	TLVBytes
	TLVArray
	TLVMap
)

// tlvHeaderLen is the 1-byte type tag plus the big-endian 4-byte length.
const tlvHeaderLen = 5

// EncodeTLV frames v as type-tag + big-endian-uint32-length + value bytes,
// recursively for ARRAY/MAP. Type selection on encode uses UINT for
// non-negative integers, INT for negative, FLOAT for non-integer numerics.
func EncodeTLV(v interface{}) ([]byte, error) {
	typ, payload, err := tlvPayload(v)
	if err != nil {
		return nil, err
	}
	return frameTLV(typ, payload), nil
}

func frameTLV(typ TLVType, payload []byte) []byte {
	out := make([]byte, tlvHeaderLen+len(payload))
	out[0] = byte(typ)
	binary.BigEndian.PutUint32(out[1:5], uint32(len(payload)))
	copy(out[5:], payload)
	return out
}

func tlvPayload(v interface{}) (TLVType, []byte, error) {
	switch t := v.(type) {
	case nil:
		return TLVNull, nil, nil
	case bool:
		if t {
			return TLVBoolean, []byte{1}, nil
		}
		return TLVBoolean, []byte{0}, nil
	case []byte:
		return TLVBytes, t, nil
	case string:
		return TLVString, []byte(t), nil
	case int:
		return tlvInteger(int64(t))
	case int32:
		return tlvInteger(int64(t))
	case int64:
		return tlvInteger(t)
	case uint:
		return TLVUint, trimLeadingZeros(bigEndianUint(uint64(t))), nil
	case uint64:
		return TLVUint, trimLeadingZeros(bigEndianUint(t)), nil
	case float32:
		return tlvFloat(float64(t))
	case float64:
		return tlvFloat(t)
	case []interface{}:
		var buf []byte
		for _, e := range t {
			enc, err := EncodeTLV(e)
			if err != nil {
				return 0, nil, err
			}
			buf = append(buf, enc...)
		}
		return TLVArray, buf, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var buf []byte
		for _, k := range keys {
			kEnc, err := EncodeTLV(k)
			if err != nil {
				return 0, nil, err
			}
			vEnc, err := EncodeTLV(t[k])
			if err != nil {
				return 0, nil, err
			}
			buf = append(buf, kEnc...)
			buf = append(buf, vEnc...)
		}
		return TLVMap, buf, nil
	default:
		return 0, nil, fmt.Errorf("core: tlv: unsupported type %T", v)
	}
}

func tlvInteger(n int64) (TLVType, []byte, error) {
	if n >= 0 {
		return TLVUint, trimLeadingZeros(bigEndianUint(uint64(n))), nil
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(n))
	return TLVInt, b, nil
}

func tlvFloat(f float64) (TLVType, []byte, error) {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return tlvInteger(int64(f))
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, math.Float64bits(f))
	return TLVFloat, b, nil
}

func bigEndianUint(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// trimLeadingZeros strips leading zero bytes, leaving an empty slice for
// zero itself.
func trimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

// DecodeTLV reads one TLV-framed value from b, returning the decoded value
// and the number of bytes consumed. It rejects any length that would run
// off the end of b.
func DecodeTLV(b []byte) (interface{}, int, error) {
	if len(b) < tlvHeaderLen {
		return nil, 0, fmt.Errorf("core: tlv: truncated header")
	}
	typ := TLVType(b[0])
	length := int(binary.BigEndian.Uint32(b[1:5]))
	if length < 0 || tlvHeaderLen+length > len(b) {
		return nil, 0, fmt.Errorf("core: tlv: length %d exceeds buffer", length)
	}
	payload := b[tlvHeaderLen : tlvHeaderLen+length]
	consumed := tlvHeaderLen + length

	v, err := decodeTLVPayload(typ, payload)
	if err != nil {
		return nil, 0, err
	}
	return v, consumed, nil
}

func decodeTLVPayload(typ TLVType, payload []byte) (interface{}, error) {
	switch typ {
	case TLVNull:
		return nil, nil
	case TLVBoolean:
		if len(payload) != 1 {
			return nil, fmt.Errorf("core: tlv: bad boolean length %d", len(payload))
		}
		return payload[0] != 0, nil
	case TLVUint:
		var padded [8]byte
		if len(payload) > 8 {
			return nil, fmt.Errorf("core: tlv: uint too long")
		}
		copy(padded[8-len(payload):], payload)
		return binary.BigEndian.Uint64(padded[:]), nil
	case TLVInt:
		if len(payload) != 8 {
			return nil, fmt.Errorf("core: tlv: bad int length %d", len(payload))
		}
		return int64(binary.BigEndian.Uint64(payload)), nil
	case TLVFloat:
		if len(payload) != 8 {
			return nil, fmt.Errorf("core: tlv: bad float length %d", len(payload))
		}
		return math.Float64frombits(binary.BigEndian.Uint64(payload)), nil
	case TLVString:
		return string(payload), nil
	case TLVBytes:
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, nil
	case TLVArray:
		var arr []interface{}
		off := 0
		for off < len(payload) {
			v, n, err := DecodeTLV(payload[off:])
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
			off += n
		}
		return arr, nil
	case TLVMap:
		m := make(map[string]interface{})
		off := 0
		for off < len(payload) {
			kv, n, err := DecodeTLV(payload[off:])
			if err != nil {
				return nil, err
			}
			off += n
			key, ok := kv.(string)
			if !ok {
				return nil, fmt.Errorf("core: tlv: map key not a string")
			}
			vv, n2, err := DecodeTLV(payload[off:])
			if err != nil {
				return nil, err
			}
			off += n2
			m[key] = vv
		}
		return m, nil
	default:
		return nil, fmt.Errorf("core: tlv: unknown type tag %d", typ)
	}
}
