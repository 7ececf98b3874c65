package testutil

import (
	"context"
	"database/sql"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
)

// Fixtures inserts policy store rows for integration tests.
type Fixtures struct {
	db  *sql.DB
	ctx context.Context
}

// NewFixtures creates a Fixtures instance over a migrated store database.
func NewFixtures(ctx context.Context, db *sql.DB) *Fixtures {
	return &Fixtures{db: db, ctx: ctx}
}

// CreateObject inserts an object and returns its id.
func (f *Fixtures) CreateObject(objectType, displayName string) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	_, err := f.db.ExecContext(f.ctx,
		`INSERT INTO objects (object_id, object_type, display_name) VALUES ($1, $2, $3)`,
		id, objectType, displayName)
	return id, err
}

// CreateSet inserts a Set object.
func (f *Fixtures) CreateSet(name string) (uuid.UUID, error) {
	return f.CreateObject("Set", name)
}

// AddMember materializes membership of member in set.
func (f *Fixtures) AddMember(setID, memberID uuid.UUID) error {
	_, err := f.db.ExecContext(f.ctx,
		`INSERT INTO computed_members (set_id, member_id) VALUES ($1, $2)`,
		setID, memberID)
	return err
}

// SetStringValue sets a string-valued attribute on an object.
func (f *Fixtures) SetStringValue(objectID uuid.UUID, key, value string) error {
	_, err := f.db.ExecContext(f.ctx,
		`INSERT INTO object_values (object_id, attribute_key, string_value) VALUES ($1, $2, $3)`,
		objectID, key, value)
	return err
}

// SetReferenceValue sets a reference-valued attribute on an object.
func (f *Fixtures) SetReferenceValue(objectID uuid.UUID, key string, ref uuid.UUID) error {
	_, err := f.db.ExecContext(f.ctx,
		`INSERT INTO object_values (object_id, attribute_key, reference_value) VALUES ($1, $2, $3)`,
		objectID, key, ref)
	return err
}

// AddAttributeType registers display-name metadata for an attribute key.
func (f *Fixtures) AddAttributeType(key, displayName string) error {
	_, err := f.db.ExecContext(f.ctx,
		`INSERT INTO attribute_types (attribute_key, display_name) VALUES ($1, $2)`,
		key, displayName)
	return err
}

// Rule describes one policy rule row. Zero-value set references and an
// empty RelativeAttribute insert NULL. Rules default to an active
// Request-type granting rule; set Inactive to insert a non-granting row.
type Rule struct {
	Name              string
	RuleType          string
	Inactive          bool
	PrincipalSet      uuid.UUID
	ResourceCurrent   uuid.UUID
	ResourceFinal     uuid.UUID
	RelativeAttribute string
	Operations        []string
	Scope             []string
}

// CreateRule inserts a policy rule and returns its id.
func (f *Fixtures) CreateRule(r Rule) (uuid.UUID, error) {
	id := uuid.Must(uuid.NewV4())
	if r.RuleType == "" {
		r.RuleType = "Request"
	}
	_, err := f.db.ExecContext(f.ctx, `
		INSERT INTO policy_rules (
			rule_id, display_name, rule_type, grant_right,
			principal_set, resource_current_set, resource_final_set,
			principal_relative_attribute, operations, attribute_scope
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, r.Name, r.RuleType, !r.Inactive,
		nullUUID(r.PrincipalSet), nullUUID(r.ResourceCurrent), nullUUID(r.ResourceFinal),
		nullString(r.RelativeAttribute),
		textArray(r.Operations), textArray(r.Scope),
	)
	return id, err
}

func nullUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// textArray never sends NULL: the array columns are NOT NULL.
func textArray(ss []string) any {
	if ss == nil {
		ss = []string{}
	}
	return pq.Array(ss)
}
