// Package sqlite persists finalized hierarchies to a SQLite database,
// the seeding target for downstream recipe services.
package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/pantrylab/ingrid/pkg/ingrid/store"
)

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode and foreign keys enabled
// and initializes the hierarchy schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS food_groups (
	name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS ingredients (
	name TEXT PRIMARY KEY,
	food_group TEXT NOT NULL REFERENCES food_groups(name),
	hierarchy_depth INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ingredient_parents (
	parent_name TEXT NOT NULL REFERENCES ingredients(name) ON DELETE CASCADE,
	child_name TEXT NOT NULL REFERENCES ingredients(name) ON DELETE CASCADE,
	PRIMARY KEY(parent_name, child_name)
);

CREATE TABLE IF NOT EXISTS aliases (
	alias_name TEXT NOT NULL,
	ingredient_name TEXT NOT NULL REFERENCES ingredients(name) ON DELETE CASCADE,
	PRIMARY KEY(alias_name, ingredient_name)
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SeedHierarchy replaces any stored hierarchy in a single transaction.
func (s *sqliteStore) SeedHierarchy(ctx context.Context, h store.Hierarchy) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"aliases", "ingredient_parents", "ingredients", "food_groups"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	for _, fg := range h.FoodGroups {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO food_groups (name) VALUES (?)", fg); err != nil {
			return err
		}
	}

	for _, n := range h.Nodes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO ingredients (name, food_group, hierarchy_depth) VALUES (?, ?, ?)",
			n.Name, n.FoodGroup, n.Depth); err != nil {
			return err
		}
	}

	for _, e := range h.Edges {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO ingredient_parents (parent_name, child_name) VALUES (?, ?)",
			e.Parent, e.Child); err != nil {
			return err
		}
	}

	for _, a := range h.Aliases {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO aliases (alias_name, ingredient_name) VALUES (?, ?)",
			a.AliasName, a.IngredientName); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetNode returns a node by name.
func (s *sqliteStore) GetNode(ctx context.Context, name string) (store.Node, bool, error) {
	var n store.Node
	err := s.db.QueryRowContext(ctx,
		"SELECT name, food_group, hierarchy_depth FROM ingredients WHERE name = ?",
		name).Scan(&n.Name, &n.FoodGroup, &n.Depth)
	if err == sql.ErrNoRows {
		return store.Node{}, false, nil
	}
	if err != nil {
		return store.Node{}, false, err
	}
	return n, true, nil
}

// ListFoodGroups returns all food groups, sorted.
func (s *sqliteStore) ListFoodGroups(ctx context.Context) ([]string, error) {
	return s.listStrings(ctx, "SELECT name FROM food_groups ORDER BY name")
}

// ListChildren returns the children of a parent, sorted.
func (s *sqliteStore) ListChildren(ctx context.Context, parent string) ([]string, error) {
	return s.listStrings(ctx,
		"SELECT child_name FROM ingredient_parents WHERE parent_name = ? ORDER BY child_name",
		parent)
}

// ListParents returns the parents of a child, sorted.
func (s *sqliteStore) ListParents(ctx context.Context, child string) ([]string, error) {
	return s.listStrings(ctx,
		"SELECT parent_name FROM ingredient_parents WHERE child_name = ? ORDER BY parent_name",
		child)
}

// ListAliases returns the aliases of an ingredient, sorted.
func (s *sqliteStore) ListAliases(ctx context.Context, ingredient string) ([]string, error) {
	return s.listStrings(ctx,
		"SELECT alias_name FROM aliases WHERE ingredient_name = ? ORDER BY alias_name",
		ingredient)
}

// CountNodes returns the number of stored nodes.
func (s *sqliteStore) CountNodes(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ingredients").Scan(&n)
	return n, err
}

func (s *sqliteStore) listStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
