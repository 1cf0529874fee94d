package core

import "errors"

// Sentinel error kinds surfaced by the identifier, watermark, metadata and
// graph subsystems. Callers type-switch or errors.Is against these; internal
// helpers never swallow them.
var (
	// ErrUnsupportedResourceType is returned when a resource type has no
	// declared canonical attribute set.
	ErrUnsupportedResourceType = errors.New("core: unsupported resource type")
	// ErrUnsupportedEncoding is returned for an unrecognized digest encoding.
	ErrUnsupportedEncoding = errors.New("core: unsupported encoding")
	// ErrUnsupportedRelationshipType is returned for a graph edge type outside
	// the closed RELATIONSHIP_TYPES vocabulary.
	ErrUnsupportedRelationshipType = errors.New("core: unsupported relationship type")
	// ErrUnsupportedEntityType is returned for a graph node type outside the
	// closed ENTITY_TYPES vocabulary.
	ErrUnsupportedEntityType = errors.New("core: unsupported entity type")
	// ErrMissingRequiredAttribute is returned when a resource type's required
	// canonical attribute is absent from the input.
	ErrMissingRequiredAttribute = errors.New("core: missing required attribute")
	// ErrInsufficientCarrierCapacity is returned by watermark embed when the
	// selected channel has fewer candidate positions than payload bits.
	ErrInsufficientCarrierCapacity = errors.New("core: insufficient carrier capacity")
	// ErrNotFound is a predicate, not a failure: watermark extract could not
	// reconstruct any valid payload.
	ErrNotFound = errors.New("core: not found")
	// ErrNodeNotFound is returned by graph operations referencing an absent node.
	ErrNodeNotFound = errors.New("core: node not found")
	// ErrIdentifierMalformed is returned by identifier decode on parse failure.
	ErrIdentifierMalformed = errors.New("core: identifier malformed")
	// ErrInvalidIdentityLayer, ...Provenance..., ...Characteristics...,
	// ...Lineage..., ...Rights... are returned by layer validation, paired
	// with the field list via *LayerValidationError.
	ErrInvalidIdentityLayer        = errors.New("core: invalid identity layer")
	ErrInvalidProvenanceLayer      = errors.New("core: invalid provenance layer")
	ErrInvalidCharacteristicsLayer = errors.New("core: invalid characteristics layer")
	ErrInvalidLineageLayer         = errors.New("core: invalid lineage layer")
	ErrInvalidRightsLayer          = errors.New("core: invalid rights layer")
	// ErrSerializationUnsupported is returned when a declared serialization
	// format has no implementation.
	ErrSerializationUnsupported = errors.New("core: serialization format unsupported")
	// ErrStrategyUnimplemented is returned by the non-text watermark slots
	// (image, audio, ai-model); only the text strategy carries an algorithm.
	ErrStrategyUnimplemented = errors.New("core: watermark strategy unimplemented")
)

// LayerValidationError wraps one of the Invalid*Layer sentinels with the
// specific missing/invalid field names.
type LayerValidationError struct {
	Kind   error
	Fields []string
}

func (e *LayerValidationError) Error() string {
	msg := e.Kind.Error()
	for i, f := range e.Fields {
		if i == 0 {
			msg += ": " + f
		} else {
			msg += ", " + f
		}
	}
	return msg
}

func (e *LayerValidationError) Unwrap() error { return e.Kind }

// Result is the structured outcome returned by registration/verify style
// entry points and boundary APIs built on them.
type Result struct {
	OK        bool   `json:"ok"`
	ErrorKind string `json:"errorKind,omitempty"`
	Details   string `json:"details,omitempty"`
}

// NewFailure builds a Result from an error, tagging it with the name of the
// sentinel kind it wraps (e.g. "NotFound"), or "Unknown". A nil error yields
// an OK Result.
func NewFailure(err error) Result {
	if err == nil {
		return Result{OK: true}
	}
	return Result{OK: false, ErrorKind: errorKindOf(err), Details: err.Error()}
}

func errorKindOf(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedResourceType):
		return "UnsupportedResourceType"
	case errors.Is(err, ErrUnsupportedEncoding):
		return "UnsupportedEncoding"
	case errors.Is(err, ErrUnsupportedRelationshipType):
		return "UnsupportedRelationshipType"
	case errors.Is(err, ErrUnsupportedEntityType):
		return "UnsupportedEntityType"
	case errors.Is(err, ErrMissingRequiredAttribute):
		return "MissingRequiredAttribute"
	case errors.Is(err, ErrInsufficientCarrierCapacity):
		return "InsufficientCarrierCapacity"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrNodeNotFound):
		return "NodeNotFound"
	case errors.Is(err, ErrIdentifierMalformed):
		return "IdentifierMalformed"
	case errors.Is(err, ErrInvalidIdentityLayer):
		return "InvalidIdentityLayer"
	case errors.Is(err, ErrInvalidProvenanceLayer):
		return "InvalidProvenanceLayer"
	case errors.Is(err, ErrInvalidCharacteristicsLayer):
		return "InvalidCharacteristicsLayer"
	case errors.Is(err, ErrInvalidLineageLayer):
		return "InvalidLineageLayer"
	case errors.Is(err, ErrInvalidRightsLayer):
		return "InvalidRightsLayer"
	case errors.Is(err, ErrSerializationUnsupported):
		return "SerializationUnsupported"
	case errors.Is(err, ErrStrategyUnimplemented):
		return "StrategyUnimplemented"
	default:
		return "Unknown"
	}
}
