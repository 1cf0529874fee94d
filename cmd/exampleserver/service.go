package main

import (
	"context"
	"fmt"
	"sync"

	"assetprov/core"
	"assetprov/registry"
)

// ResourceService wraps the in-process core library and registry behind the
// small set of read/write operations the example server's HTTP API exposes.
type ResourceService struct {
	mu      sync.RWMutex
	reg     *registry.Registry
	docs    map[string]*core.MetadataBundle
	ids     map[string]core.Identifier
	g       *core.Graph
	metrics *core.IdentifierMetrics
}

// NewResourceService constructs a service backed by the given registry and
// graph. metrics may be nil.
func NewResourceService(reg *registry.Registry, g *core.Graph, metrics *core.IdentifierMetrics) *ResourceService {
	return &ResourceService{
		reg:     reg,
		docs:    make(map[string]*core.MetadataBundle),
		ids:     make(map[string]core.Identifier),
		g:       g,
		metrics: metrics,
	}
}

// DeriveIdentifier derives and records a bundle for a new resource.
func (s *ResourceService) DeriveIdentifier(rt core.ResourceType, attrs map[string]interface{}, owner string) (core.Identifier, error) {
	id, err := core.DeriveIdentifier(core.DefaultMethod, rt, attrs, owner, core.EncodingBase58)
	if err != nil {
		return core.Identifier{}, err
	}
	s.metrics.ObserveDerived(rt)
	s.mu.Lock()
	s.docs[id.String()] = core.NewMetadataBundle(id.String(), nil)
	s.ids[id.String()] = id
	s.mu.Unlock()
	return id, nil
}

// Bundle returns the metadata bundle for a previously derived identifier.
func (s *ResourceService) Bundle(id string) (*core.MetadataBundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return b, nil
}

// Register hands a derived resource's integrated metadata to the registry,
// returning the resulting transaction.
func (s *ResourceService) Register(ctx context.Context, id, ownerRef string) (registry.Transaction, error) {
	s.mu.RLock()
	parsed, ok := s.ids[id]
	b := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return registry.Transaction{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return s.reg.Register(ctx, parsed, b.IntegratedView(), ownerRef)
}

// Info summarizes the service's in-memory state.
func (s *ResourceService) Info() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"resources": len(s.docs),
		"nodes":     s.g.NodeCount(),
		"edges":     s.g.EdgeCount(),
	}
}
