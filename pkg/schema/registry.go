package schema

import (
	"fmt"
	"sync"

	"github.com/mesh-intelligence/ldmark/pkg/types"
)

// AllTypes registers a transform that applies to every schema type.
const AllTypes = "*"

// Constructor builds a fresh generator instance.
type Constructor func() types.Generator

// Transform post-processes a generated document. It may modify doc in place
// or return a replacement; returning nil keeps doc.
type Transform func(doc *types.Document, e *types.Entity) *types.Document

// Registry maps schema type names to generator constructors. Build one per
// process with NewDefaultRegistry and pass it to whatever needs generators.
// Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	order      []string
	ctors      map[string]Constructor
	transforms map[string][]Transform
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ctors:      make(map[string]Constructor),
		transforms: make(map[string][]Transform),
	}
}

// NewDefaultRegistry returns a registry seeded with the built-in types.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterBuiltins(r)
	return r
}

// Register maps typeName to ctor, replacing any existing mapping. A replaced
// type keeps its position in TypeNames.
func (r *Registry) Register(typeName string, ctor Constructor) {
	if ctor == nil {
		panic("schema: nil constructor for " + typeName)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ctors[typeName]; !ok {
		r.order = append(r.order, typeName)
	}
	r.ctors[typeName] = ctor
}

// Unregister removes typeName. Idempotent. Transforms added for the type
// stay registered and apply again if the type is registered later.
func (r *Registry) Unregister(typeName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ctors[typeName]; !ok {
		return
	}
	delete(r.ctors, typeName)
	for i, name := range r.order {
		if name == typeName {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// IsRegistered reports whether typeName has a constructor.
func (r *Registry) IsRegistered(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[typeName]
	return ok
}

// TypeNames returns the registered type names in registration order.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AddTransform appends fn to the transforms run after Generate for
// typeName, or for every type when typeName is AllTypes. Type-specific
// transforms run before AllTypes transforms, each in the order added.
func (r *Registry) AddTransform(typeName string, fn Transform) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transforms[typeName] = append(r.transforms[typeName], fn)
}

// Create instantiates the generator for typeName. Returns an error wrapping
// types.ErrTypeNotFound when the type is not registered.
func (r *Registry) Create(typeName string) (types.Generator, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[typeName]
	var chain []Transform
	if ok {
		chain = append(chain, r.transforms[typeName]...)
		if typeName != AllTypes {
			chain = append(chain, r.transforms[AllTypes]...)
		}
	}
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrTypeNotFound, typeName)
	}
	g := ctor()
	if len(chain) == 0 {
		return g, nil
	}
	return &transformed{Generator: g, chain: chain}, nil
}

// DocumentForEntity generates the typeName document for e. An unregistered
// type yields an empty document rather than an error.
func (r *Registry) DocumentForEntity(typeName string, e *types.Entity) *types.Document {
	g, err := r.Create(typeName)
	if err != nil {
		return types.NewDocument()
	}
	return g.Generate(e)
}

// transformed runs a transform chain over the wrapped generator's output.
type transformed struct {
	types.Generator
	chain []Transform
}

func (t *transformed) Generate(e *types.Entity) *types.Document {
	doc := t.Generator.Generate(e)
	for _, fn := range t.chain {
		if out := fn(doc, e); out != nil {
			doc = out
		}
	}
	return doc
}

// RegisterBuiltins registers every built-in schema type on r.
func RegisterBuiltins(r *Registry) {
	r.Register(TypeProduct, NewProduct)
	r.Register(TypeService, NewService)
	r.Register(TypeOrganization, NewOrganization)
	r.Register(TypeLocalBusiness, NewLocalBusiness)
	r.Register(TypePerson, NewPerson)
	r.Register(TypeEvent, NewEvent)
	r.Register(TypeArticle, NewArticle)
	r.Register(TypeRecipe, NewRecipe)
	r.Register(TypeFAQPage, NewFAQPage)
}
