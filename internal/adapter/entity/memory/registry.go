// Package mementity is an in-process entity registry. The streaming engine
// registers zone markers and spawned gameplay entities here; hosts embedding a
// real ECS supply their own ports.EntitySystem instead.
package mementity

import (
	"sync"

	"github.com/google/uuid"

	"driftworld/internal/app/ports"
	"driftworld/internal/domain/world"
)

type record struct {
	kind       world.EntityKind
	components map[world.ComponentKind]world.Component
}

type Registry struct {
	mu       sync.RWMutex
	entities map[ports.EntityID]*record
}

func NewRegistry() *Registry {
	return &Registry{entities: make(map[ports.EntityID]*record)}
}

func (r *Registry) CreateEntity(kind world.EntityKind) (ports.EntityID, error) {
	id := ports.EntityID(uuid.NewString())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entities[id] = &record{
		kind:       kind,
		components: make(map[world.ComponentKind]world.Component),
	}
	return id, nil
}

func (r *Registry) AddComponent(id ports.EntityID, c world.Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.entities[id]
	if !ok {
		return ports.ErrNotFound
	}
	rec.components[c.ComponentKind()] = c
	return nil
}

// Component returns the component of the given kind attached to an entity.
func (r *Registry) Component(id ports.EntityID, kind world.ComponentKind) (world.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.entities[id]
	if !ok {
		return nil, false
	}
	c, ok := rec.components[kind]
	return c, ok
}

// Kind returns an entity's kind.
func (r *Registry) Kind(id ports.EntityID) (world.EntityKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.entities[id]
	if !ok {
		return "", false
	}
	return rec.kind, true
}

// Remove drops entities the host has despawned. Unknown ids are ignored.
func (r *Registry) Remove(ids ...ports.EntityID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.entities, id)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// CountByKind tallies live entities per kind, for the ops surface.
func (r *Registry) CountByKind() map[world.EntityKind]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[world.EntityKind]int)
	for _, rec := range r.entities {
		out[rec.kind]++
	}
	return out
}

var _ ports.EntitySystem = (*Registry)(nil)
