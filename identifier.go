package rights

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
)

// IdentifierKind classifies a raw identifier string.
type IdentifierKind int

const (
	// KindGUID is a well-formed GUID literal, used directly as the
	// canonical id without a store query.
	KindGUID IdentifierKind = iota

	// KindAccount is a [domain\]account name resolved through the store's
	// account-name index.
	KindAccount

	// KindTriplet is a type<sep>attribute<sep>value lookup.
	KindTriplet
)

// Identifier is a classified identifier string. Only the fields belonging to
// Kind are populated.
type Identifier struct {
	Kind IdentifierKind

	GUID uuid.UUID

	Domain  string
	Account string

	ObjectType string
	Attribute  string
	Value      string
}

// ParseIdentifier classifies raw into one of the three identifier shapes.
// Classification is total and mutually exclusive: a GUID literal, then a
// separator-delimited triplet, then an account name with an optional
// domain\ prefix. Anything else fails with ErrUnrecognizedIdentifier.
func ParseIdentifier(raw, sep string) (Identifier, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	if raw == "" {
		return Identifier{}, fmt.Errorf("%w: empty identifier", ErrUnrecognizedIdentifier)
	}

	if id, err := uuid.FromString(raw); err == nil {
		return Identifier{Kind: KindGUID, GUID: id}, nil
	}

	if strings.Contains(raw, sep) {
		parts := strings.Split(raw, sep)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return Identifier{}, fmt.Errorf("%w: %q is not a type%sattribute%svalue triplet", ErrUnrecognizedIdentifier, raw, sep, sep)
		}
		return Identifier{
			Kind:       KindTriplet,
			ObjectType: parts[0],
			Attribute:  parts[1],
			Value:      parts[2],
		}, nil
	}

	switch parts := strings.Split(raw, `\`); len(parts) {
	case 1:
		return Identifier{Kind: KindAccount, Account: parts[0]}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			break
		}
		return Identifier{Kind: KindAccount, Domain: parts[0], Account: parts[1]}, nil
	}

	return Identifier{}, fmt.Errorf("%w: %q", ErrUnrecognizedIdentifier, raw)
}

// resolveIdentity maps a raw identifier to a canonical store object.
// Semantic failures (not found, ambiguous) pass through as-is; any other
// store failure is wrapped in ErrStoreQuery.
func (r *Resolver) resolveIdentity(ctx context.Context, side Side, raw string) (Identity, error) {
	ident, err := ParseIdentifier(raw, r.separator)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w", side, err)
	}

	switch ident.Kind {
	case KindGUID:
		exists, err := r.store.ResolveByGUID(ctx, ident.GUID)
		if err != nil {
			return Identity{}, fmt.Errorf("%s: %w: %v", side, ErrStoreQuery, err)
		}
		if !exists {
			return Identity{}, fmt.Errorf("%s %q: %w", side, raw, ErrObjectNotFound)
		}
		return Identity{ID: ident.GUID, Name: ident.GUID.String()}, nil

	case KindAccount:
		domain := ident.Domain
		if domain == "" {
			domain = r.domain
		}
		obj, err := r.store.ResolveByAccount(ctx, domain, ident.Account)
		return identityFrom(side, raw, obj, err)

	case KindTriplet:
		obj, err := r.store.ResolveByAttribute(ctx, ident.ObjectType, ident.Attribute, ident.Value)
		return identityFrom(side, raw, obj, err)
	}

	// Unreachable: ParseIdentifier only produces the three kinds above.
	return Identity{}, fmt.Errorf("%s %q: %w", side, raw, ErrUnrecognizedIdentifier)
}

func identityFrom(side Side, raw string, obj ObjectRef, err error) (Identity, error) {
	switch {
	case errors.Is(err, ErrObjectNotFound), errors.Is(err, ErrAmbiguousIdentifier):
		return Identity{}, fmt.Errorf("%s %q: %w", side, raw, err)
	case err != nil:
		return Identity{}, fmt.Errorf("%s: %w: %v", side, ErrStoreQuery, err)
	}
	name := obj.DisplayName
	if name == "" {
		name = obj.ID.String()
	}
	return Identity{ID: obj.ID, Name: name}, nil
}
