package core

import (
	"strings"
	"testing"
	"time"
)

func textAttrs() map[string]interface{} {
	return map[string]interface{}{
		"content_hash": "abc123",
		"mime_type":    "text/plain",
		"charset":      "utf-8",
	}
}

func TestDeriveIdentifierDeterministic(t *testing.T) {
	a, err := DeriveIdentifier("", ResourceText, textAttrs(), "", EncodingBase58)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	b, err := DeriveIdentifier("", ResourceText, textAttrs(), "", EncodingBase58)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if a.String() != b.String() {
		t.Fatalf("expected identical identifiers, got %q vs %q", a.String(), b.String())
	}
	if !strings.HasPrefix(a.String(), "did:asset:text:") {
		t.Fatalf("expected default method/resource-type prefix, got %q", a.String())
	}
}

func TestDeriveIdentifierWithOwnerTag(t *testing.T) {
	id, err := DeriveIdentifier("asset", ResourceText, textAttrs(), "alice", EncodingHex)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	if id.OwnerTag == "" || len(id.OwnerTag) != 8 {
		t.Fatalf("expected 8-hex-digit owner tag, got %q", id.OwnerTag)
	}
	if !strings.HasSuffix(id.String(), id.OwnerTag) {
		t.Fatalf("expected identifier to end with owner tag, got %q", id.String())
	}
}

func TestParseIdentifierRoundTrip(t *testing.T) {
	id, err := DeriveIdentifier("asset", ResourceAIModel, map[string]interface{}{
		"model_hash":           "h",
		"architecture":         "transformer",
		"parameters":           int64(7000000000),
		"training_dataset_ref": "ds-1",
	}, "bob", EncodingBase64URLNoPad)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	parsed, err := ParseIdentifier(id.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Method != id.Method || parsed.ResourceType != id.ResourceType || parsed.OwnerTag != id.OwnerTag {
		t.Fatalf("expected round trip to preserve tuple, got %+v vs %+v", parsed, id)
	}
	if string(parsed.Digest) != string(id.Digest) {
		t.Fatal("expected round trip to preserve digest bytes")
	}
}

func TestParseIdentifierMalformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-did",
		"did:asset",
		"did::text:abc",
	}
	for _, s := range cases {
		if _, err := ParseIdentifier(s); err == nil {
			t.Fatalf("expected error parsing %q", s)
		}
	}
}

func TestParseIdentifierBadOwnerTag(t *testing.T) {
	_, err := ParseIdentifier("did:asset:text:deadbeef:nothex")
	if err == nil {
		t.Fatal("expected error for malformed owner tag")
	}
}

func TestExternalIDBridgeDeterministic(t *testing.T) {
	a, err := ExternalIDBridge("asset", ResourceGeneric, "isbn", "978-0-13-468599-1", EncodingHex)
	if err != nil {
		t.Fatalf("bridge: %v", err)
	}
	b, err := ExternalIDBridge("asset", ResourceGeneric, "isbn", "978-0-13-468599-1", EncodingHex)
	if err != nil {
		t.Fatalf("bridge: %v", err)
	}
	if a.String() != b.String() {
		t.Fatal("expected deterministic bridge identifiers")
	}

	c, err := ExternalIDBridge("asset", ResourceGeneric, "isbn", "different", EncodingHex)
	if err != nil {
		t.Fatalf("bridge: %v", err)
	}
	if a.String() == c.String() {
		t.Fatal("expected different external ids to yield different identifiers")
	}
}

func TestSynthesizeIdentityDocument(t *testing.T) {
	id, err := DeriveIdentifier("", ResourceDataset, map[string]interface{}{
		"data_hash":    "h",
		"record_count": int64(100),
		"schema_ref":   "schema-1",
	}, "", EncodingBase58)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	doc := SynthesizeIdentityDocument(id, "", "z6Mk...", now)

	if doc.Context[0] != didContextV1 {
		t.Fatalf("expected first context entry %q, got %q", didContextV1, doc.Context[0])
	}
	if doc.Controller != doc.ID {
		t.Fatalf("expected controller to default to id, got %q", doc.Controller)
	}
	if len(doc.VerificationMethod) != 1 {
		t.Fatalf("expected one verification method, got %d", len(doc.VerificationMethod))
	}
	found := false
	for _, svc := range doc.Service {
		if strings.HasSuffix(svc.ID, "#explore") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected dataset resource type to include #explore service endpoint")
	}
	if doc.Created != "2026-01-01T00:00:00.000Z" {
		t.Fatalf("unexpected created timestamp %q", doc.Created)
	}
}
