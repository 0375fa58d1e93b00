// Package memstore is an in-memory store.Store implementation for
// tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/pantrylab/ingrid/pkg/ingrid/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu         sync.RWMutex
	foodGroups []string
	nodes      map[string]store.Node
	children   map[string][]string
	parents    map[string][]string
	aliases    map[string][]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		nodes:    make(map[string]store.Node),
		children: make(map[string][]string),
		parents:  make(map[string][]string),
		aliases:  make(map[string][]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SeedHierarchy replaces all stored data.
func (s *Store) SeedHierarchy(ctx context.Context, h store.Hierarchy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.foodGroups = append([]string(nil), h.FoodGroups...)
	sort.Strings(s.foodGroups)

	s.nodes = make(map[string]store.Node, len(h.Nodes))
	for _, n := range h.Nodes {
		s.nodes[n.Name] = n
	}

	s.children = make(map[string][]string)
	s.parents = make(map[string][]string)
	for _, e := range h.Edges {
		s.children[e.Parent] = append(s.children[e.Parent], e.Child)
		s.parents[e.Child] = append(s.parents[e.Child], e.Parent)
	}
	for _, m := range []map[string][]string{s.children, s.parents} {
		for k := range m {
			sort.Strings(m[k])
		}
	}

	s.aliases = make(map[string][]string)
	for _, a := range h.Aliases {
		s.aliases[a.IngredientName] = append(s.aliases[a.IngredientName], a.AliasName)
	}
	for k := range s.aliases {
		sort.Strings(s.aliases[k])
	}

	return nil
}

// GetNode returns a node by name.
func (s *Store) GetNode(ctx context.Context, name string) (store.Node, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[name]
	return n, ok, nil
}

// ListFoodGroups returns all food groups, sorted.
func (s *Store) ListFoodGroups(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.foodGroups...), nil
}

// ListChildren returns the children of a parent, sorted.
func (s *Store) ListChildren(ctx context.Context, parent string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.children[parent]...), nil
}

// ListParents returns the parents of a child, sorted.
func (s *Store) ListParents(ctx context.Context, child string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.parents[child]...), nil
}

// ListAliases returns the aliases of an ingredient, sorted.
func (s *Store) ListAliases(ctx context.Context, ingredient string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.aliases[ingredient]...), nil
}

// CountNodes returns the number of stored nodes.
func (s *Store) CountNodes(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.nodes)), nil
}
