package core

import "fmt"

// WatermarkStrategy is the capability interface every per-format watermark
// implementation satisfies. Only the text strategy carries an algorithm (see
// TextWatermarkCodec); image, audio, and ai-model strategies are declared as
// slots with the same contract.
type WatermarkStrategy interface {
	// Embed writes payload into resource, returning the modified resource.
	Embed(resource []byte, payload WatermarkPayload, options map[string]interface{}) ([]byte, error)
	// Extract attempts to recover a payload from resource. A resource
	// carrying no recoverable payload returns ErrNotFound, not an error.
	Extract(resource []byte, options map[string]interface{}) (WatermarkPayload, error)
	// Verify reports whether resource's embedded payload matches the
	// expected (did, metadataHash).
	Verify(resource []byte, expectedDID, expectedMetadataHash string, options map[string]interface{}) (bool, error)
	// Strength names the strategy's claimed robustness tier, used by callers
	// choosing among strategies for a given resource type.
	Strength() string
}

// unimplementedStrategy backs the image/audio/ai-model slots. No algorithm
// is defined for non-text media yet; every method surfaces
// ErrStrategyUnimplemented explicitly rather than silently no-opping, so
// callers cannot mistake "unimplemented" for "no watermark present".
type unimplementedStrategy struct {
	resourceType ResourceType
}

// NewImageWatermarkStrategy returns the declared (unimplemented) slot for
// image resources.
func NewImageWatermarkStrategy() WatermarkStrategy { return unimplementedStrategy{ResourceImage} }

// NewAudioWatermarkStrategy returns the declared (unimplemented) slot for
// audio resources.
func NewAudioWatermarkStrategy() WatermarkStrategy { return unimplementedStrategy{ResourceAudio} }

// NewAIModelWatermarkStrategy returns the declared (unimplemented) slot for
// ai-model resources. Whether a parameter-space embed can be paired with a
// deterministic extract is still an open design question, so no algorithm is
// implemented here.
func NewAIModelWatermarkStrategy() WatermarkStrategy { return unimplementedStrategy{ResourceAIModel} }

func (u unimplementedStrategy) Embed([]byte, WatermarkPayload, map[string]interface{}) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrStrategyUnimplemented, u.resourceType)
}

func (u unimplementedStrategy) Extract([]byte, map[string]interface{}) (WatermarkPayload, error) {
	return WatermarkPayload{}, fmt.Errorf("%w: %s", ErrStrategyUnimplemented, u.resourceType)
}

func (u unimplementedStrategy) Verify([]byte, string, string, map[string]interface{}) (bool, error) {
	return false, fmt.Errorf("%w: %s", ErrStrategyUnimplemented, u.resourceType)
}

func (u unimplementedStrategy) Strength() string { return "unimplemented" }

// textStrategyAdapter wraps TextWatermarkCodec to satisfy WatermarkStrategy
// over []byte resources (UTF-8 text), so callers can treat all resource
// types uniformly through the WatermarkStrategy interface when desired.
type textStrategyAdapter struct {
	codec   *TextWatermarkCodec
	channel Channel
}

// NewTextWatermarkStrategy adapts a TextWatermarkCodec/Channel pair to the
// WatermarkStrategy interface.
func NewTextWatermarkStrategy(codec *TextWatermarkCodec, ch Channel) WatermarkStrategy {
	return textStrategyAdapter{codec: codec, channel: ch}
}

func (t textStrategyAdapter) Embed(resource []byte, payload WatermarkPayload, _ map[string]interface{}) ([]byte, error) {
	out, err := t.codec.Embed(string(resource), payload, t.channel)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (t textStrategyAdapter) Extract(resource []byte, _ map[string]interface{}) (WatermarkPayload, error) {
	return t.codec.Extract(string(resource), t.channel)
}

func (t textStrategyAdapter) Verify(resource []byte, expectedDID, expectedMetadataHash string, _ map[string]interface{}) (bool, error) {
	return t.codec.Verify(string(resource), t.channel, expectedDID, expectedMetadataHash)
}

func (t textStrategyAdapter) Strength() string { return "text:" + string(t.channel) }
