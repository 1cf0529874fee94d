package core

import (
	"errors"
	"testing"
)

func TestIdentityLayerValidation(t *testing.T) {
	l := &Layer{Tag: LayerIdentity, Data: map[string]interface{}{"id": "did:asset:text:abc"}}
	err := l.validate("")
	var lverr *LayerValidationError
	if !errors.As(err, &lverr) {
		t.Fatalf("expected LayerValidationError for missing controller, got %v", err)
	}
	if !errors.Is(err, ErrInvalidIdentityLayer) {
		t.Fatalf("expected ErrInvalidIdentityLayer kind, got %v", lverr.Kind)
	}

	l.Data["controller"] = "did:asset:text:abc"
	if err := l.validate(""); err != nil {
		t.Fatalf("expected valid layer, got %v", err)
	}
}

func TestProvenanceLayerValidation(t *testing.T) {
	l := &Layer{Tag: LayerProvenance, Data: map[string]interface{}{}}
	if err := l.validate(""); !errors.Is(err, ErrInvalidProvenanceLayer) {
		t.Fatalf("expected ErrInvalidProvenanceLayer, got %v", err)
	}

	l.Data["claim"] = map[string]interface{}{"assertions": []interface{}{}}
	if err := l.validate(""); err != nil {
		t.Fatalf("expected valid layer with claim map, got %v", err)
	}

	l.Data["signature"] = map[string]interface{}{"alg": "ed25519"}
	if err := l.validate(""); !errors.Is(err, ErrInvalidProvenanceLayer) {
		t.Fatalf("expected error for signature missing value, got %v", err)
	}
}

func TestCharacteristicsLayerValidation(t *testing.T) {
	l := &Layer{Tag: LayerCharacteristics, Data: map[string]interface{}{}}
	if err := l.validate(""); !errors.Is(err, ErrInvalidCharacteristicsLayer) {
		t.Fatalf("expected error for missing resourceType, got %v", err)
	}

	l.Data["resourceType"] = string(ResourceAIModel)
	if err := l.validate(""); err != nil {
		t.Fatalf("expected valid general characteristics layer, got %v", err)
	}

	if err := l.validate("model-card"); !errors.Is(err, ErrInvalidCharacteristicsLayer) {
		t.Fatalf("expected error for model-card missing name/description, got %v", err)
	}

	l.Data["name"] = "n"
	l.Data["description"] = "d"
	if err := l.validate("model-card"); err != nil {
		t.Fatalf("expected valid model-card layer, got %v", err)
	}
}

func TestLineageLayerValidation(t *testing.T) {
	l := &Layer{Tag: LayerLineage, Data: map[string]interface{}{}}
	if err := l.validate(""); !errors.Is(err, ErrInvalidLineageLayer) {
		t.Fatalf("expected error for empty lineage layer, got %v", err)
	}

	l.Data["entity"] = map[string]interface{}{"id": "x"}
	if err := l.validate(""); err != nil {
		t.Fatalf("expected valid lineage layer with entity present, got %v", err)
	}
}

func TestRightsLayerValidation(t *testing.T) {
	l := &Layer{Tag: LayerRights, Data: map[string]interface{}{}}
	if err := l.validate(""); !errors.Is(err, ErrInvalidRightsLayer) {
		t.Fatalf("expected error for missing license, got %v", err)
	}

	l.Data["license"] = map[string]interface{}{"type": "CC-BY-4.0"}
	if err := l.validate(""); !errors.Is(err, ErrInvalidRightsLayer) {
		t.Fatalf("expected error for missing license.url, got %v", err)
	}

	l.Data["license"] = map[string]interface{}{"type": "CC-BY-4.0", "url": "https://example.com"}
	if err := l.validate(""); err != nil {
		t.Fatalf("expected valid rights layer, got %v", err)
	}
}

func TestLayerExtensionsLazilyCreated(t *testing.T) {
	l := &Layer{Tag: LayerIdentity, Data: map[string]interface{}{}}
	ext := l.Extensions()
	ext["custom"] = "value"
	if got := l.Data["extensions"].(map[string]interface{})["custom"]; got != "value" {
		t.Fatalf("expected extension to persist into layer data, got %v", got)
	}
}

func TestStandardTagFor(t *testing.T) {
	cases := map[LayerTag]string{
		LayerIdentity:        "did",
		LayerProvenance:      "c2pa",
		LayerCharacteristics: "general",
		LayerLineage:         "prov",
		LayerRights:          "odrl-like",
	}
	for tag, want := range cases {
		if got := standardTagFor(tag, ""); got != want {
			t.Fatalf("tag %s: expected %q, got %q", tag, want, got)
		}
	}
	if got := standardTagFor(LayerCharacteristics, "model-card"); got != "model-card" {
		t.Fatalf("expected charClass override, got %q", got)
	}
}
