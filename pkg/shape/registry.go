package shape

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Registry holds named shape descriptors registered programmatically (the
// mechanism by which entity catalogs publish their types, including records
// carrying custom decode hooks) and caches schema-document compilations.
// Compiled shapes are keyed by the xxhash of the document bytes in an LRU, so
// repeated compilation of the same schema is free.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	names   map[string]*Shape
	schemas *lru.Cache[uint64, *Shape]
}

// NewRegistry creates a Registry whose schema cache holds up to cacheSize
// compiled documents.
//
// Parameters:
//
//	cacheSize int: Maximum number of cached schema compilations.
//
// Returns:
//
//	*Registry: The new registry.
//	error: An error when the cache cannot be constructed.
func NewRegistry(cacheSize int) (*Registry, error) {
	cache, err := lru.New[uint64, *Shape](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Registry{
		names:   make(map[string]*Shape),
		schemas: cache,
	}, nil
}

// Register binds a name to a shape descriptor. Later registrations of the
// same name replace earlier ones.
func (r *Registry) Register(name string, s *Shape) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[name] = s
}

// Lookup resolves a registered name.
//
// Returns:
//
//	*Shape: The registered shape, if any.
//	bool: True when the name is registered.
func (r *Registry) Lookup(name string) (*Shape, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.names[name]
	return s, ok
}

// Scope returns a snapshot of the registered names as a Scope usable for
// resolving delayed references during decoding. Registrations made after the
// call are not reflected in the snapshot.
func (r *Registry) Scope() *Scope {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sc := NewScope(nil)
	for name, s := range r.names {
		sc.Define(name, s)
	}
	return sc
}

// CompileJSONSchema derives a shape from a JSON Schema document, consulting
// the compilation cache first.
//
// Parameters:
//
//	doc []byte: The JSON Schema document bytes.
//
// Returns:
//
//	*Shape: The derived (possibly cached) shape.
//	error: A parse error for malformed documents.
func (r *Registry) CompileJSONSchema(doc []byte) (*Shape, error) {
	key := xxhash.Sum64(doc)
	if s, ok := r.schemas.Get(key); ok {
		return s, nil
	}
	s, err := FromJSONSchema(doc)
	if err != nil {
		return nil, err
	}
	r.schemas.Add(key, s)
	return s, nil
}

// CompileYAMLExample infers a shape from an example YAML/JSON instance
// document, consulting the compilation cache first. The cache is shared with
// CompileJSONSchema; keys are content hashes, and schema documents and
// example documents do not collide in practice.
func (r *Registry) CompileYAMLExample(doc []byte) (*Shape, error) {
	key := xxhash.Sum64(doc)
	if s, ok := r.schemas.Get(key); ok {
		return s, nil
	}
	s, err := FromYAMLExample(doc)
	if err != nil {
		return nil, err
	}
	r.schemas.Add(key, s)
	return s, nil
}
