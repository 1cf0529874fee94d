package core

import (
	"errors"
	"fmt"
)

// TextWatermarkCodec embeds and extracts a WatermarkPayload in natural
// language text while preserving readability. It is stateless; callers
// sharing one instance across goroutines serialize their own access.
type TextWatermarkCodec struct {
	SpaceOptions SpaceOptions
}

// NewTextWatermarkCodec returns a codec using the default space-channel
// substitution (U+00A0).
func NewTextWatermarkCodec() *TextWatermarkCodec {
	return &TextWatermarkCodec{}
}

// Embed writes payload into text using the selected channel, returning the
// rewritten text. Characters at positions the channel does not treat as
// candidates are left untouched.
func (c *TextWatermarkCodec) Embed(text string, payload WatermarkPayload, ch Channel) (string, error) {
	bits, err := payloadToBits(payload)
	if err != nil {
		return "", err
	}

	switch ch {
	case ChannelSpaces:
		if countSpaceCandidates(text) < len(bits) {
			return "", ErrInsufficientCarrierCapacity
		}
		out, _, err := embedSpaces(text, bits, c.SpaceOptions)
		return out, err

	case ChannelPunctuation:
		if countPunctuationCandidates(text) < len(bits) {
			return "", ErrInsufficientCarrierCapacity
		}
		out, _, err := embedPunctuation(text, bits)
		return out, err

	case ChannelSynonyms:
		if countSynonymCandidates(text) < len(bits) {
			return "", ErrInsufficientCarrierCapacity
		}
		out, _, err := embedSynonyms(text, bits)
		return out, err

	case ChannelCombined:
		return c.embedCombined(text, bits)

	default:
		return "", fmt.Errorf("core: watermark: unknown channel %q", ch)
	}
}

// embedCombined splits bits at the midpoint, embedding the prefix via the
// space channel and the suffix via the punctuation channel applied to the
// already-rewritten text.
func (c *TextWatermarkCodec) embedCombined(text string, bits []byte) (string, error) {
	mid := len(bits) / 2
	prefix, suffix := bits[:mid], bits[mid:]

	if countSpaceCandidates(text) < len(prefix) {
		return "", ErrInsufficientCarrierCapacity
	}
	stage1, _, err := embedSpaces(text, prefix, c.SpaceOptions)
	if err != nil {
		return "", err
	}

	if countPunctuationCandidates(stage1) < len(suffix) {
		return "", ErrInsufficientCarrierCapacity
	}
	stage2, _, err := embedPunctuation(stage1, suffix)
	if err != nil {
		return "", err
	}
	return stage2, nil
}

// Extract walks text for the given channel and attempts to reconstruct a
// WatermarkPayload. A reconstruction failure (too few bits, or JSON parse
// failure) is reported via ErrNotFound, a predicate rather than a fault;
// callers distinguish "not present" from a real error with
// errors.Is(err, ErrNotFound).
func (c *TextWatermarkCodec) Extract(text string, ch Channel) (WatermarkPayload, error) {
	var bits []byte
	switch ch {
	case ChannelSpaces:
		bits = extractSpaces(text)
		if err := requireBitLen(bits, 32); err != nil {
			return WatermarkPayload{}, err
		}
	case ChannelPunctuation:
		bits = extractPunctuation(text)
		if err := requireBitLen(bits, 32); err != nil {
			return WatermarkPayload{}, err
		}
	case ChannelSynonyms:
		bits = extractSynonyms(text)
		if err := requireBitLen(bits, 24); err != nil {
			return WatermarkPayload{}, err
		}
	case ChannelCombined:
		return c.extractCombined(text)
	default:
		return WatermarkPayload{}, fmt.Errorf("core: watermark: unknown channel %q", ch)
	}
	return bitsToPayload(bits)
}

// extractCombined recovers the space-channel bits and the punctuation-
// channel bits independently and concatenates them in embed order.
//
// extractSpaces/extractPunctuation return one bit per *candidate position*
// in the whole text, not just the positions embedCombined actually used;
// a carrier with more candidates than the split required would otherwise
// contribute trailing zero bits from untouched candidates into the middle
// of the concatenation. The 16-bit length header (always written into the
// leading space bits, since embedCombined's prefix is never empty for a
// real payload) names the payload's total bit count, so the true midpoint
// can be recomputed and each channel's recovery trimmed to exactly the
// bits embedCombined consumed from it.
func (c *TextWatermarkCodec) extractCombined(text string) (WatermarkPayload, error) {
	spaceBits := extractSpaces(text)
	punctBits := extractPunctuation(text)
	if err := requireBitLen(spaceBits, 16); err != nil {
		return WatermarkPayload{}, err
	}

	header := bitsToBytes(spaceBits[:16])
	n := int(header[0])<<8 | int(header[1])
	total := 16 + 8*n
	mid := total / 2
	suffixLen := total - mid

	if len(spaceBits) < mid || len(punctBits) < suffixLen {
		return WatermarkPayload{}, ErrNotFound
	}
	bits := append(append([]byte{}, spaceBits[:mid]...), punctBits[:suffixLen]...)
	return bitsToPayload(bits)
}

// Verify decodes text under ch and reports whether the recovered payload
// matches (expectedDID, expectedMetadataHash). A decode failure (ErrNotFound)
// is treated as verified-false, not an error.
func (c *TextWatermarkCodec) Verify(text string, ch Channel, expectedDID, expectedMetadataHash string) (bool, error) {
	payload, err := c.Extract(text, ch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return VerifyWatermark(payload, expectedDID, expectedMetadataHash), nil
}
