package core

import (
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

// ResourceType is the closed enum of resource types an identifier can tag.
type ResourceType string

const (
	ResourceText            ResourceType = "text"
	ResourceImage           ResourceType = "image"
	ResourceAudio           ResourceType = "audio"
	ResourceVideo           ResourceType = "video"
	ResourceAIModel         ResourceType = "ai-model"
	ResourceDataset         ResourceType = "dataset"
	ResourceCode            ResourceType = "code"
	ResourceGeneric         ResourceType = "generic"
	ResourceExecutionStruct ResourceType = "execution-structure"
)

// attributeSet declares the canonical required and optional fields
// contributing to a resource type's identifier digest.
type attributeSet struct {
	Required []string
	Optional []string
}

// canonicalAttributeSets is the registry of per-resource-type canonical
// attribute declarations. "generic" and "execution-structure" have no
// domain-specific required fields beyond the caller-supplied attribute map
// itself.
var canonicalAttributeSets = map[ResourceType]attributeSet{
	ResourceText: {
		Required: []string{"content_hash", "mime_type", "charset"},
		Optional: []string{"encoding", "language", "format"},
	},
	ResourceImage: {
		Required: []string{"content_hash", "mime_type", "dimensions"},
	},
	ResourceAudio: {
		Required: []string{"content_hash", "mime_type", "duration", "sample_rate"},
	},
	ResourceVideo: {
		Required: []string{"content_hash", "mime_type", "duration", "dimensions"},
	},
	ResourceAIModel: {
		Required: []string{"model_hash", "architecture", "parameters", "training_dataset_ref"},
	},
	ResourceDataset: {
		Required: []string{"data_hash", "record_count", "schema_ref"},
	},
	ResourceCode: {
		Required: []string{"code_hash", "language", "version"},
	},
	ResourceGeneric:         {},
	ResourceExecutionStruct: {},
}

// IsSupportedResourceType reports whether rt has a declared canonical
// attribute set.
func IsSupportedResourceType(rt ResourceType) bool {
	_, ok := canonicalAttributeSets[rt]
	return ok
}

// rawContentHashFields names the fields whose values, when supplied as raw
// []byte content rather than a precomputed string hash, are digested
// directly with blake3 instead of being canonicalized as JSON. blake3 is
// used here (distinct from the SHA-256 identifier digest in Digest) purely
// as a fast content-hash function for potentially large raw payloads.
var rawContentHashFields = map[string]bool{
	"content_hash": true,
	"model_hash":   true,
	"data_hash":    true,
	"code_hash":    true,
}

// BuildCanonicalAttributes validates attrs against the declared required set
// for rt and returns the field map that will be fed to canonical JSON for
// digesting. Any rawContentHashFields entry whose value is []byte is
// replaced by its hex-encoded blake3 hash. Fields absent from attrs are
// omitted entirely (never inserted as null/empty).
func BuildCanonicalAttributes(rt ResourceType, attrs map[string]interface{}) (map[string]interface{}, error) {
	set, ok := canonicalAttributeSets[rt]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedResourceType, rt)
	}

	out := make(map[string]interface{}, len(attrs)+1)
	for _, field := range set.Required {
		v, present := attrs[field]
		if !present || isEmptyValue(normalizeAttrValue(field, v)) {
			return nil, fmt.Errorf("%w: %q requires %q", ErrMissingRequiredAttribute, rt, field)
		}
		out[field] = normalizeAttrValue(field, v)
	}
	for _, field := range set.Optional {
		if v, present := attrs[field]; present {
			out[field] = normalizeAttrValue(field, v)
		}
	}
	// Pass through any additional caller-supplied fields not named by the
	// declared set (e.g. a "generic" resource's free-form attributes), so
	// the digest still reflects the full attribute input.
	for k, v := range attrs {
		if _, known := out[k]; known {
			continue
		}
		if isDeclaredField(set, k) {
			continue
		}
		out[k] = normalizeAttrValue(k, v)
	}
	return out, nil
}

func isDeclaredField(set attributeSet, field string) bool {
	for _, f := range set.Required {
		if f == field {
			return true
		}
	}
	for _, f := range set.Optional {
		if f == field {
			return true
		}
	}
	return false
}

// normalizeAttrValue converts raw []byte values into a canonicalizable
// string: content-hash fields become their hex-encoded blake3 digest, any
// other []byte is hex-encoded as supplied. Non-byte values pass through
// unchanged.
func normalizeAttrValue(field string, v interface{}) interface{} {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	if rawContentHashFields[field] {
		sum := blake3.Sum256(b)
		return hex.EncodeToString(sum[:])
	}
	return hex.EncodeToString(b)
}

// DigestAttributes computes the identifier digest for (rt, attrs):
// SHA-256 over the canonical JSON of the validated attribute map plus the
// resourceType field itself.
func DigestAttributes(rt ResourceType, attrs map[string]interface{}) ([32]byte, error) {
	fields, err := BuildCanonicalAttributes(rt, attrs)
	if err != nil {
		return [32]byte{}, err
	}
	fields["resourceType"] = string(rt)
	tree := omitEmptyFields(fields)
	b, err := CanonicalJSON(tree)
	if err != nil {
		return [32]byte{}, err
	}
	return Digest(b), nil
}
