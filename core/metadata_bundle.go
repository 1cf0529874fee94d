package core

import (
	"fmt"
	"strings"
	"time"

	logrus "github.com/sirupsen/logrus"
)

// MetadataBundle is the ordered composition of up to five layers bound to
// an identifier. Missing layers are permitted; the bundle is a sparse
// composition, not a fixed record. It owns its layers; discarding a bundle
// releases them.
type MetadataBundle struct {
	ID        string
	CharClass string // "model-card" | "data-sheet" | "" for characteristics validation
	layers    map[LayerTag]*Layer
	logger    *logrus.Logger
}

// NewMetadataBundle creates an empty bundle for the given identifier. logger
// may be nil; mutation logging is best-effort.
func NewMetadataBundle(id string, logger *logrus.Logger) *MetadataBundle {
	return &MetadataBundle{
		ID:     id,
		layers: make(map[LayerTag]*Layer),
		logger: logger,
	}
}

func (b *MetadataBundle) logf(format string, args ...interface{}) {
	if b.logger != nil {
		b.logger.Debugf(format, args...)
	}
}

// SetLayer replaces the contents of the named layer wholesale.
func (b *MetadataBundle) SetLayer(tag LayerTag, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	b.layers[tag] = &Layer{Tag: tag, Data: data, UpdatedAt: time.Now().UTC()}
	b.logf("metadata: bundle %s set layer %s", b.ID, tag)
}

// GetLayer returns the named layer and whether it is present.
func (b *MetadataBundle) GetLayer(tag LayerTag) (*Layer, bool) {
	l, ok := b.layers[tag]
	return l, ok
}

// RemoveLayer drops the named layer, if present.
func (b *MetadataBundle) RemoveLayer(tag LayerTag) {
	delete(b.layers, tag)
	b.logf("metadata: bundle %s removed layer %s", b.ID, tag)
}

// UpdateField sets a dot-path field within the named layer, creating
// missing intermediate objects as needed. The layer is created if absent.
func (b *MetadataBundle) UpdateField(tag LayerTag, dotPath string, value interface{}) error {
	l, ok := b.layers[tag]
	if !ok {
		l = &Layer{Tag: tag, Data: map[string]interface{}{}}
		b.layers[tag] = l
	}
	segs := strings.Split(dotPath, ".")
	if len(segs) == 0 || segs[0] == "" {
		return fmt.Errorf("core: metadata: empty dot path")
	}
	setDotPath(l.Data, segs, value)
	l.UpdatedAt = time.Now().UTC()
	b.logf("metadata: bundle %s updated %s.%s", b.ID, tag, dotPath)
	return nil
}

func setDotPath(m map[string]interface{}, segs []string, value interface{}) {
	if len(segs) == 1 {
		m[segs[0]] = value
		return
	}
	next, ok := m[segs[0]].(map[string]interface{})
	if !ok {
		next = map[string]interface{}{}
		m[segs[0]] = next
	}
	setDotPath(next, segs[1:], value)
}

// ValidateLayer checks the named layer's required-field invariant. A
// missing layer is not an error, it is simply absent.
func (b *MetadataBundle) ValidateLayer(tag LayerTag) error {
	l, ok := b.layers[tag]
	if !ok {
		return nil
	}
	return l.validate(b.CharClass)
}

// ValidateAll checks every present layer, returning the first failure
// encountered in layer-table order (identity, provenance, characteristics,
// lineage, rights).
func (b *MetadataBundle) ValidateAll() error {
	for _, tag := range []LayerTag{LayerIdentity, LayerProvenance, LayerCharacteristics, LayerLineage, LayerRights} {
		if err := b.ValidateLayer(tag); err != nil {
			return err
		}
	}
	return nil
}

// SelectiveView returns a document containing only the requested layer
// tags, plus the identity layer if present (always included as context).
// Absent layers are omitted entirely, never emitted as null.
func (b *MetadataBundle) SelectiveView(tags ...LayerTag) map[string]interface{} {
	want := make(map[LayerTag]bool, len(tags)+1)
	for _, t := range tags {
		want[t] = true
	}
	want[LayerIdentity] = true

	out := map[string]interface{}{}
	if idLayer, ok := b.layers[LayerIdentity]; ok && want[LayerIdentity] {
		for k, v := range idLayer.Data {
			out[k] = v
		}
	}
	for tag := range want {
		if tag == LayerIdentity {
			continue
		}
		if l, ok := b.layers[tag]; ok {
			out[standardTagFor(tag, b.CharClass)] = l.Data
		}
	}
	return out
}

// formatTimestamp renders t as ISO-8601 UTC with millisecond precision.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
