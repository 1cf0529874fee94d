package core

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	sha256simd "github.com/minio/sha256-simd"
	"github.com/mr-tron/base58"
)

// Encoding identifies a digest encoding scheme understood by the identifier
// core: lowercase hex, Base58 (Bitcoin alphabet), or Base64URL without
// padding.
type Encoding string

const (
	EncodingHex            Encoding = "hex"
	EncodingBase58         Encoding = "base58"
	EncodingBase64URLNoPad Encoding = "base64url-nopad"
)

// Digest computes SHA-256 over exact bytes. sha256-simd produces digests
// identical to crypto/sha256 with hardware acceleration where available; the
// content-addressing stack (go-cid/go-multihash) already pulls it in.
func Digest(data []byte) [32]byte {
	return sha256simd.Sum256(data)
}

// Encode renders digest bytes under the requested encoding.
func Encode(digest []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingHex:
		return hex.EncodeToString(digest), nil
	case EncodingBase58:
		return base58.Encode(digest), nil
	case EncodingBase64URLNoPad:
		return base64.RawURLEncoding.EncodeToString(digest), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}
}

// Decode reverses Encode for a known encoding.
func Decode(encoded string, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingHex:
		b, err := hex.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIdentifierMalformed, err)
		}
		return b, nil
	case EncodingBase58:
		b, err := base58.Decode(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIdentifierMalformed, err)
		}
		return b, nil
	case EncodingBase64URLNoPad:
		b, err := base64.RawURLEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIdentifierMalformed, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}
}

// DetectEncoding guesses the encoding of an already-encoded digest string by
// alphabet and length, used by identifier parsing when the caller does not
// carry the encoding out of band. 32-byte SHA-256 digests
// hex-encode to exactly 64 lowercase hex characters; base64url-nopad encodes
// to 43 characters (no '=' padding, alphabet includes '-'/'_'); base58
// (Bitcoin alphabet, no 0/O/I/l) is the fallback.
func DetectEncoding(encoded string) Encoding {
	if len(encoded) == 64 && isHex(encoded) {
		return EncodingHex
	}
	if containsAny(encoded, "-_") || len(encoded) == 43 {
		return EncodingBase64URLNoPad
	}
	return EncodingBase58
}

func isHex(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

func containsAny(s, chars string) bool {
	for _, c := range chars {
		for _, r := range s {
			if r == c {
				return true
			}
		}
	}
	return false
}
