package core

import "testing"

func TestBuildCanonicalAttributesRequiredFieldsMissing(t *testing.T) {
	_, err := BuildCanonicalAttributes(ResourceText, map[string]interface{}{
		"mime_type": "text/plain",
	})
	if err == nil {
		t.Fatal("expected error for missing required attribute")
	}
}

func TestBuildCanonicalAttributesOptionalFieldsPassThrough(t *testing.T) {
	attrs, err := BuildCanonicalAttributes(ResourceText, map[string]interface{}{
		"content_hash": "abc",
		"mime_type":    "text/plain",
		"charset":      "utf-8",
		"language":     "en",
		"extra_field":  "kept",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attrs["language"] != "en" {
		t.Fatalf("expected optional field to survive, got %v", attrs)
	}
	if attrs["extra_field"] != "kept" {
		t.Fatalf("expected unnamed field to pass through, got %v", attrs)
	}
}

func TestBuildCanonicalAttributesUnsupportedResourceType(t *testing.T) {
	_, err := BuildCanonicalAttributes(ResourceType("bogus"), map[string]interface{}{})
	if err == nil {
		t.Fatal("expected error for unsupported resource type")
	}
}

func TestBuildCanonicalAttributesRawContentHashedWithBlake3(t *testing.T) {
	attrs, err := BuildCanonicalAttributes(ResourceText, map[string]interface{}{
		"content_hash": []byte("raw bytes"),
		"mime_type":    "text/plain",
		"charset":      "utf-8",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	hash, ok := attrs["content_hash"].(string)
	if !ok || len(hash) != 64 {
		t.Fatalf("expected 64-char hex blake3 digest, got %v", attrs["content_hash"])
	}
}

func TestDigestAttributesDeterministic(t *testing.T) {
	attrs := map[string]interface{}{
		"content_hash": "abc",
		"mime_type":    "text/plain",
		"charset":      "utf-8",
	}
	d1, err := DigestAttributes(ResourceText, attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d2, err := DigestAttributes(ResourceText, attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d1 != d2 {
		t.Fatal("expected identical digests for identical attribute input")
	}
}

func TestDigestAttributesOrderIndependent(t *testing.T) {
	a := map[string]interface{}{"content_hash": "abc", "mime_type": "text/plain", "charset": "utf-8"}
	b := map[string]interface{}{"charset": "utf-8", "content_hash": "abc", "mime_type": "text/plain"}
	d1, err := DigestAttributes(ResourceText, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d2, err := DigestAttributes(ResourceText, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d1 != d2 {
		t.Fatal("expected digest independent of input key order")
	}
}

func TestIsSupportedResourceType(t *testing.T) {
	if !IsSupportedResourceType(ResourceAIModel) {
		t.Fatal("expected ai-model to be supported")
	}
	if IsSupportedResourceType(ResourceType("nope")) {
		t.Fatal("expected unknown type to be unsupported")
	}
}

func TestGenericResourceHasNoRequiredFields(t *testing.T) {
	attrs, err := BuildCanonicalAttributes(ResourceGeneric, map[string]interface{}{
		"anything": "goes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attrs["anything"] != "goes" {
		t.Fatalf("expected free-form field to survive, got %v", attrs)
	}
}
