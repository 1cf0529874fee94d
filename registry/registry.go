// Package registry is an in-memory stand-in for the distributed-ledger /
// off-chain-blob-storage registry that the core library hands integrated
// metadata off to. It is not part of the content-addressed core itself; it
// exists so the core's emitted (identifier, integratedMetadata,
// metadataHash) tuple has somewhere real to land, shaped like a gateway
// that pins content on IPFS or Arweave.
package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	mh "github.com/multiformats/go-multihash"
	logrus "github.com/sirupsen/logrus"

	"assetprov/core"
)

// ContentID is the registry's content-addressed handle for a registered
// resource: an IPFS CIDv1 derived from the same digest bytes the core
// embedded in the resource's identifier.
type ContentID struct {
	CID     string
	Encoded string // multibase (base32) rendering of the CID bytes
}

// Transaction records one registration: the content id, the metadata hash,
// and when the registration landed.
type Transaction struct {
	ID           string
	Identifier   string
	ContentID    ContentID
	MetadataHash string
	RegisteredAt time.Time
}

// Verification is the result of looking a previously registered resource
// back up.
type Verification struct {
	Found        bool
	MetadataHash string
	RegisteredAt time.Time
}

// Registry is an in-memory implementation of the core's external
// collaborator interface. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	records map[string]*record
	logger  *logrus.Logger
}

type record struct {
	tx       Transaction
	metadata map[string]interface{}
}

// New constructs an empty Registry. logger may be nil.
func New(logger *logrus.Logger) *Registry {
	return &Registry{records: make(map[string]*record), logger: logger}
}

func (r *Registry) logf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debugf(format, args...)
	}
}

// deriveContentID converts an identifier's digest bytes into an IPFS CIDv1.
// The digest is already computed by core.DigestAttributes, so the bytes are
// wrapped in a multihash directly rather than re-hashed.
func deriveContentID(digest []byte) (ContentID, error) {
	encodedMH, err := mh.Encode(digest, mh.SHA2_256)
	if err != nil {
		return ContentID{}, fmt.Errorf("registry: multihash encode: %w", err)
	}
	c := cid.NewCidV1(cid.Raw, encodedMH)
	encoded, err := multibase.Encode(multibase.Base32, c.Bytes())
	if err != nil {
		return ContentID{}, fmt.Errorf("registry: multibase encode: %w", err)
	}
	return ContentID{CID: c.String(), Encoded: encoded}, nil
}

// Register stores integratedMetadata under identifier, deriving a content
// id from the identifier's digest and a metadata hash via core.MetadataHash.
// ownerRef is recorded for audit but not otherwise interpreted.
func (r *Registry) Register(ctx context.Context, id core.Identifier, integratedMetadata map[string]interface{}, ownerRef string) (Transaction, error) {
	select {
	case <-ctx.Done():
		return Transaction{}, ctx.Err()
	default:
	}

	contentID, err := deriveContentID(id.Digest)
	if err != nil {
		return Transaction{}, err
	}
	metadataHash, err := core.MetadataHash(integratedMetadata)
	if err != nil {
		return Transaction{}, fmt.Errorf("registry: metadata hash: %w", err)
	}

	tx := Transaction{
		ID:           uuid.NewString(),
		Identifier:   id.String(),
		ContentID:    contentID,
		MetadataHash: metadataHash,
		RegisteredAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.records[id.String()] = &record{tx: tx, metadata: integratedMetadata}
	r.mu.Unlock()

	r.logf("registry: registered %s as %s (owner=%s)", id.String(), contentID.CID, ownerRef)
	return tx, nil
}

// Get retrieves a previously registered resource's metadata and a
// verification record.
func (r *Registry) Get(identifier string) (map[string]interface{}, Verification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[identifier]
	if !ok {
		return nil, Verification{Found: false}, core.ErrNotFound
	}
	return rec.metadata, Verification{
		Found:        true,
		MetadataHash: rec.tx.MetadataHash,
		RegisteredAt: rec.tx.RegisteredAt,
	}, nil
}

// Verify recomputes integratedMetadata's hash and compares it against the
// hash recorded at registration time, detecting post-registration tampering.
func (r *Registry) Verify(identifier string, integratedMetadata map[string]interface{}) (bool, error) {
	_, v, err := r.Get(identifier)
	if err != nil {
		return false, err
	}
	hash, err := core.MetadataHash(integratedMetadata)
	if err != nil {
		return false, err
	}
	return hash == v.MetadataHash, nil
}
