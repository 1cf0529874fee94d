package core

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMethod is the method tag used when callers do not specify one.
const DefaultMethod = "asset"

// Identifier is the parsed form of a
// `did:<method>:<resource-type>:<encoded-id>[:<owner-tag>]` string.
type Identifier struct {
	Method       string
	ResourceType ResourceType
	Digest       []byte
	Encoding     Encoding
	OwnerTag     string // 8 hex digits, empty if absent
}

// String renders the canonical form of the identifier.
func (id Identifier) String() string {
	enc, err := Encode(id.Digest, id.Encoding)
	if err != nil {
		enc = ""
	}
	s := fmt.Sprintf("did:%s:%s:%s", id.Method, id.ResourceType, enc)
	if id.OwnerTag != "" {
		s += ":" + id.OwnerTag
	}
	return s
}

// ownerTag returns the 8-hex-digit prefix of SHA-256(owner).
func ownerTag(owner string) string {
	h := Digest([]byte(owner))
	enc, _ := Encode(h[:], EncodingHex)
	return enc[:8]
}

// DeriveIdentifier computes the content digest for (resourceType, attrs) and
// assembles the full identifier string. It is a pure function: two
// invocations with identical inputs yield byte-identical identifiers.
func DeriveIdentifier(method string, rt ResourceType, attrs map[string]interface{}, owner string, enc Encoding) (Identifier, error) {
	if method == "" {
		method = DefaultMethod
	}
	digest, err := DigestAttributes(rt, attrs)
	if err != nil {
		return Identifier{}, err
	}
	id := Identifier{
		Method:       method,
		ResourceType: rt,
		Digest:       digest[:],
		Encoding:     enc,
	}
	if owner != "" {
		id.OwnerTag = ownerTag(owner)
	}
	// Validate the encoding eagerly so DeriveIdentifier fails fast instead of
	// producing an identifier whose String() silently drops the digest.
	if _, err := Encode(id.Digest, enc); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// ParseIdentifier decompresses an identifier string back into its
// (method, resourceType, digest, ownerTag) tuple. The digest encoding is
// auto-detected via DetectEncoding.
func ParseIdentifier(s string) (Identifier, error) {
	segs := strings.Split(s, ":")
	if len(segs) < 4 || segs[0] != "did" {
		return Identifier{}, fmt.Errorf("%w: %q", ErrIdentifierMalformed, s)
	}
	method := segs[1]
	rt := ResourceType(segs[2])
	encodedDigest := segs[3]
	if method == "" || rt == "" || encodedDigest == "" {
		return Identifier{}, fmt.Errorf("%w: %q", ErrIdentifierMalformed, s)
	}

	enc := DetectEncoding(encodedDigest)
	digest, err := Decode(encodedDigest, enc)
	if err != nil {
		return Identifier{}, err
	}

	id := Identifier{
		Method:       method,
		ResourceType: rt,
		Digest:       digest,
		Encoding:     enc,
	}
	if len(segs) >= 5 && segs[4] != "" {
		if !isHex(segs[4]) || len(segs[4]) != 8 {
			return Identifier{}, fmt.Errorf("%w: bad owner tag %q", ErrIdentifierMalformed, segs[4])
		}
		id.OwnerTag = segs[4]
	}
	return id, nil
}

// ExternalIDBridge derives a stable identifier for an external system's
// (idType, externalId) pair. The digest is SHA256("{idType}:{externalId}"),
// so every caller holding the same pair derives the same identifier without
// needing the resource's content.
func ExternalIDBridge(method string, rt ResourceType, idType, externalID string, enc Encoding) (Identifier, error) {
	if method == "" {
		method = DefaultMethod
	}
	stream := fmt.Sprintf("%s:%s", idType, externalID)
	digest := Digest([]byte(stream))
	id := Identifier{
		Method:       method,
		ResourceType: rt,
		Digest:       digest[:],
		Encoding:     enc,
	}
	if _, err := Encode(id.Digest, enc); err != nil {
		return Identifier{}, err
	}
	return id, nil
}

// VerificationMethod is one entry in an identity document's
// verificationMethod array.
type VerificationMethod struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Controller string `json:"controller"`
	PublicKey  string `json:"publicKeyMultibase"`
}

// ServiceEndpoint is one entry in an identity document's service array.
type ServiceEndpoint struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// IdentityDocument is the structured identity document synthesized for an
// identifier at creation time: verification keys, authentication references,
// and service endpoints under a fixed @context.
type IdentityDocument struct {
	Context            []string             `json:"@context"`
	ID                 string               `json:"id"`
	Controller         string               `json:"controller"`
	VerificationMethod []VerificationMethod `json:"verificationMethod,omitempty"`
	Authentication     []string             `json:"authentication,omitempty"`
	AssertionMethod    []string             `json:"assertionMethod,omitempty"`
	Service            []ServiceEndpoint    `json:"service,omitempty"`
	Created            string               `json:"created"`
	Updated            string               `json:"updated"`
}

const didContextV1 = "https://www.w3.org/ns/did/v1"

// standardServiceTypesFor returns the service-endpoint fragments every
// identifier gets, plus the per-resource-type additions (#mcp for ai-model,
// #explore for dataset, #execute for code).
func standardServiceTypesFor(rt ResourceType) []string {
	svcs := []string{"#metadata", "#watermark", "#provenance", "#c2pa"}
	switch rt {
	case ResourceAIModel:
		svcs = append(svcs, "#mcp")
	case ResourceDataset:
		svcs = append(svcs, "#explore")
	case ResourceCode:
		svcs = append(svcs, "#execute")
	}
	return svcs
}

// SynthesizeIdentityDocument builds the identity document for id. If
// publicKeyMultibase is empty, no placeholder key is invented: callers must
// supply a real public key; an empty verification-method list is valid since
// the verificationMethod field is optional.
func SynthesizeIdentityDocument(id Identifier, controller, publicKeyMultibase string, now time.Time) IdentityDocument {
	doc := IdentityDocument{
		Context:    []string{didContextV1},
		ID:         id.String(),
		Controller: controller,
		Created:    formatTimestamp(now),
		Updated:    formatTimestamp(now),
	}
	if controller == "" {
		doc.Controller = doc.ID
	}

	if publicKeyMultibase != "" {
		vmID := doc.ID + "#key-1"
		doc.VerificationMethod = []VerificationMethod{{
			ID:         vmID,
			Type:       "Ed25519VerificationKey2020",
			Controller: doc.Controller,
			PublicKey:  publicKeyMultibase,
		}}
		doc.Authentication = []string{vmID}
		doc.AssertionMethod = []string{vmID}
	}

	for _, frag := range standardServiceTypesFor(id.ResourceType) {
		doc.Service = append(doc.Service, ServiceEndpoint{
			ID:              doc.ID + frag,
			Type:            strings.TrimPrefix(frag, "#") + "Service",
			ServiceEndpoint: doc.ID + frag,
		})
	}
	return doc
}
