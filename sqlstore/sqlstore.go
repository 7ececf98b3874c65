// Package sqlstore implements the rights.Store contract against a
// PostgreSQL policy store with a generic object/attribute/relationship
// schema (see migrations/).
//
// Every query is fully parameterized; caller-supplied identifiers are never
// interpolated into query text. The three rule-matching strategies run as a
// single composite query so membership and rule predicates observe one
// consistent snapshot.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/samber/lo"

	rights "github.com/idmops/resultant-rights"
)

// Querier is the subset of database/sql methods the store uses.
// Satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a read-only PostgreSQL implementation of rights.Store.
type Store struct {
	q Querier
}

// New creates a store over the given database handle.
func New(q Querier) *Store {
	return &Store{q: q}
}

const existsQuery = `SELECT EXISTS (SELECT 1 FROM objects WHERE object_id = $1)`

// ResolveByGUID reports whether an object with the given id exists.
func (s *Store) ResolveByGUID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := s.q.QueryRowContext(ctx, existsQuery, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("resolve by guid: %w", err)
	}
	return exists, nil
}

// accountQuery joins the account-name and domain attributes. LIMIT 2 is
// enough to detect ambiguity without scanning every match.
const accountQuery = `
SELECT o.object_id, o.object_type, o.display_name
FROM objects o
JOIN object_values an ON an.object_id = o.object_id
	AND an.attribute_key = 'AccountName' AND an.string_value = $2
JOIN object_values dom ON dom.object_id = o.object_id
	AND dom.attribute_key = 'Domain' AND dom.string_value = $1
ORDER BY o.object_id
LIMIT 2`

// ResolveByAccount resolves a (domain, account) pair to exactly one object.
func (s *Store) ResolveByAccount(ctx context.Context, domain, account string) (rights.ObjectRef, error) {
	rows, err := s.q.QueryContext(ctx, accountQuery, domain, account)
	if err != nil {
		return rights.ObjectRef{}, fmt.Errorf("resolve by account: %w", err)
	}
	return scanOneObject(rows)
}

const attributeQuery = `
SELECT o.object_id, o.object_type, o.display_name
FROM objects o
JOIN object_values v ON v.object_id = o.object_id
	AND v.attribute_key = $2 AND v.string_value = $3
WHERE o.object_type = $1
ORDER BY o.object_id
LIMIT 2`

// ResolveByAttribute resolves an arbitrary object-type, attribute and value
// lookup to exactly one object.
func (s *Store) ResolveByAttribute(ctx context.Context, objectType, attribute, value string) (rights.ObjectRef, error) {
	rows, err := s.q.QueryContext(ctx, attributeQuery, objectType, attribute, value)
	if err != nil {
		return rights.ObjectRef{}, fmt.Errorf("resolve by attribute: %w", err)
	}
	return scanOneObject(rows)
}

// scanOneObject enforces the single-match contract: zero rows is
// ErrObjectNotFound and a second row is ErrAmbiguousIdentifier.
func scanOneObject(rows *sql.Rows) (rights.ObjectRef, error) {
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return rights.ObjectRef{}, err
		}
		return rights.ObjectRef{}, rights.ErrObjectNotFound
	}

	var obj rights.ObjectRef
	if err := rows.Scan(&obj.ID, &obj.Type, &obj.DisplayName); err != nil {
		return rights.ObjectRef{}, err
	}
	if rows.Next() {
		return rights.ObjectRef{}, rights.ErrAmbiguousIdentifier
	}
	return obj, rows.Err()
}

const setsQuery = `
SELECT DISTINCT s.object_id, s.display_name
FROM computed_members cm
JOIN objects s ON s.object_id = cm.set_id AND s.object_type = 'Set'
WHERE cm.member_id = $1
ORDER BY s.display_name, s.object_id`

// SetsContaining returns the Sets with a ComputedMember relationship to the
// given object, ordered by name.
func (s *Store) SetsContaining(ctx context.Context, id uuid.UUID) ([]rights.SetRef, error) {
	rows, err := s.q.QueryContext(ctx, setsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("sets containing: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sets := []rights.SetRef{}
	for rows.Next() {
		var set rights.SetRef
		if err := rows.Scan(&set.ID, &set.Name); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

const attributeNamesQuery = `
SELECT attribute_key, display_name
FROM attribute_types
WHERE attribute_key = ANY ($1)`

// AttributeNames resolves attribute keys to display names. Keys without
// metadata are absent from the result.
func (s *Store) AttributeNames(ctx context.Context, keys []string) (map[string]string, error) {
	rows, err := s.q.QueryContext(ctx, attributeNamesQuery, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("attribute names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := make(map[string]string, len(keys))
	for rows.Next() {
		var key, name string
		if err := rows.Scan(&key, &name); err != nil {
			return nil, err
		}
		names[key] = name
	}
	return names, rows.Err()
}

func uuidStrings(ids []uuid.UUID) []string {
	return lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() })
}
