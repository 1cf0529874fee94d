package core

import "time"

// LayerTag identifies one of the five metadata bundle layers.
type LayerTag string

const (
	LayerIdentity        LayerTag = "identity"
	LayerProvenance      LayerTag = "provenance"
	LayerCharacteristics LayerTag = "characteristics"
	LayerLineage         LayerTag = "lineage"
	LayerRights          LayerTag = "rights"
)

// standardTagFor returns the external vocabulary tag for a layer: did for
// identity, c2pa for provenance, the characteristics sub-kind (model-card,
// data-sheet, or general), prov for lineage, odrl-like for rights.
func standardTagFor(tag LayerTag, charClass string) string {
	switch tag {
	case LayerIdentity:
		return "did"
	case LayerProvenance:
		return "c2pa"
	case LayerCharacteristics:
		if charClass == "" {
			return "general"
		}
		return charClass
	case LayerLineage:
		return "prov"
	case LayerRights:
		return "odrl-like"
	default:
		return string(tag)
	}
}

// Layer is one named slot in the hierarchical metadata bundle: a standard
// tag, a key-value data tree, and an updated-at timestamp.
type Layer struct {
	Tag       LayerTag
	Data      map[string]interface{}
	UpdatedAt time.Time
}

// Extensions returns (and lazily creates) the layer's open "extensions" map
// reserved for forward-compatible unknown fields.
func (l *Layer) Extensions() map[string]interface{} {
	ext, _ := l.Data["extensions"].(map[string]interface{})
	if ext == nil {
		ext = map[string]interface{}{}
		l.Data["extensions"] = ext
	}
	return ext
}

// validate checks a layer's required-field invariant. charClass is the
// caller-declared characteristics sub-kind ("model-card", "data-sheet", or
// "" for general).
func (l *Layer) validate(charClass string) error {
	switch l.Tag {
	case LayerIdentity:
		return requireNonEmptyStrings(l.Data, ErrInvalidIdentityLayer, "id", "controller")

	case LayerProvenance:
		claim, _ := l.Data["claim"].(map[string]interface{})
		if len(claim) == 0 {
			if s, ok := l.Data["claim"].(string); !ok || s == "" {
				return &LayerValidationError{Kind: ErrInvalidProvenanceLayer, Fields: []string{"claim"}}
			}
		}
		if sig, ok := l.Data["signature"].(map[string]interface{}); ok {
			if _, hasValue := sig["value"]; !hasValue {
				return &LayerValidationError{Kind: ErrInvalidProvenanceLayer, Fields: []string{"signature.value"}}
			}
		}
		return nil

	case LayerCharacteristics:
		rt, _ := l.Data["resourceType"].(string)
		if rt == "" {
			return &LayerValidationError{Kind: ErrInvalidCharacteristicsLayer, Fields: []string{"resourceType"}}
		}
		switch charClass {
		case "model-card", "data-sheet":
			return requireNonEmptyStrings(l.Data, ErrInvalidCharacteristicsLayer, "name", "description")
		}
		return nil

	case LayerLineage:
		entity := nonEmptyMap(l.Data["entity"])
		activity := nonEmptyMap(l.Data["activity"])
		agent := nonEmptyMap(l.Data["agent"])
		if !entity && !activity && !agent {
			return &LayerValidationError{Kind: ErrInvalidLineageLayer, Fields: []string{"entity", "activity", "agent"}}
		}
		return nil

	case LayerRights:
		license, _ := l.Data["license"].(map[string]interface{})
		var missing []string
		if license == nil {
			missing = append(missing, "license")
		} else {
			if s, _ := license["type"].(string); s == "" {
				missing = append(missing, "license.type")
			}
			if s, _ := license["url"].(string); s == "" {
				missing = append(missing, "license.url")
			}
		}
		if len(missing) > 0 {
			return &LayerValidationError{Kind: ErrInvalidRightsLayer, Fields: missing}
		}
		return nil

	default:
		return nil
	}
}

func requireNonEmptyStrings(data map[string]interface{}, kind error, fields ...string) error {
	var missing []string
	for _, f := range fields {
		s, _ := data[f].(string)
		if s == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &LayerValidationError{Kind: kind, Fields: missing}
	}
	return nil
}

func nonEmptyMap(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	return ok && len(m) > 0
}
