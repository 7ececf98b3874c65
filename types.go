package rights

import "github.com/gofrs/uuid/v5"

// Well-known built-in identities present in every store. The CLI falls back
// to these when no requestor or target is supplied.
const (
	// BuiltinAdministratorID is the built-in administrator account.
	BuiltinAdministratorID = "7fb2b853-24f0-4498-9534-4e10589723c4"

	// BuiltinSyncAccountID is the built-in synchronization account.
	BuiltinSyncAccountID = "fb89aefa-5ea1-47f1-8890-abe7797d6497"
)

// AllAttributes is the rendered attribute name for rows produced by a rule
// whose attribute scope is empty, meaning the rule grants on every attribute
// of the target's type.
const AllAttributes = "All Attributes"

// ObjectRef identifies an object in the policy store.
type ObjectRef struct {
	ID          uuid.UUID
	Type        string
	DisplayName string
}

// SetRef identifies a Set object the store has materialized membership for.
type SetRef struct {
	ID   uuid.UUID
	Name string
}

// Identity is a fully resolved side of a rights resolution: the canonical
// object id, a display name, and the Sets the object is a member of.
type Identity struct {
	ID   uuid.UUID
	Name string
	Sets []SetRef
}

// RightsRecord is one resolved grant: a single (rule, action, attribute)
// row between the requestor and the target.
type RightsRecord struct {
	Requestor string
	Target    string
	Rule      string
	Action    Action
	Attribute string
}
