// Package store defines persistence for finalized hierarchies. The
// batch pipeline writes once; the store exists so the seeded result
// can be queried by downstream consumers.
package store

import "context"

// Node is a finalized ingredient record.
type Node struct {
	Name      string
	FoodGroup string
	Depth     int
}

// Edge is a parent-child relationship record.
type Edge struct {
	Parent string
	Child  string
}

// Alias maps an alternate name onto an ingredient.
type Alias struct {
	AliasName      string
	IngredientName string
}

// Hierarchy is the full payload of one finalization run.
type Hierarchy struct {
	FoodGroups []string
	Nodes      []Node
	Edges      []Edge
	Aliases    []Alias
}

// Store persists and queries a finalized hierarchy.
type Store interface {
	Close() error

	// SeedHierarchy replaces any previously stored hierarchy with the
	// given one, atomically.
	SeedHierarchy(ctx context.Context, h Hierarchy) error

	GetNode(ctx context.Context, name string) (Node, bool, error)
	ListFoodGroups(ctx context.Context) ([]string, error)
	ListChildren(ctx context.Context, parent string) ([]string, error)
	ListParents(ctx context.Context, child string) ([]string, error)
	ListAliases(ctx context.Context, ingredient string) ([]string, error)
	CountNodes(ctx context.Context) (int64, error)
}
