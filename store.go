package rights

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Strategy identifies which matching arm produced a candidate rule.
type Strategy string

const (
	// StrategyCurrentSet matches a rule whose principal set contains the
	// requestor and whose resource-current set contains the target.
	StrategyCurrentSet Strategy = "current-set"

	// StrategyFinalSet matches a rule whose principal set contains the
	// requestor and whose resource-final set contains the target. Only the
	// Create operation is grantable through this arm.
	StrategyFinalSet Strategy = "final-set"

	// StrategyRelative matches a rule where the target carries a
	// reference-valued attribute, named by the rule, whose value is the
	// requestor, and whose resource-current set contains the target.
	StrategyRelative Strategy = "relative"
)

// MatchInput carries both canonical ids and both set collections into the
// store's composite rule-matching query.
type MatchInput struct {
	RequestorID     uuid.UUID
	TargetID        uuid.UUID
	RequestorSetIDs []uuid.UUID
	TargetSetIDs    []uuid.UUID
}

// RuleMatch is one candidate rule returned by the store, before operation
// restriction and attribute expansion. The same rule may appear once per
// strategy that matched it.
type RuleMatch struct {
	Strategy       Strategy
	RuleID         uuid.UUID
	RuleName       string
	Operations     []Action
	AttributeScope []string
}

// Store is the query contract the resolver requires of the policy store.
// All access is read-only; implementations must take fully parameterized
// inputs and never interpolate caller strings into query text.
//
// The rule matching performed by MatchRules should be a single composite
// query so set membership and rule predicates observe one consistent
// snapshot of the store.
type Store interface {
	// ResolveByGUID reports whether an object with the given id exists.
	ResolveByGUID(ctx context.Context, id uuid.UUID) (bool, error)

	// ResolveByAccount resolves a (domain, account) pair through the store's
	// account-name index. Returns ErrObjectNotFound when nothing matches and
	// ErrAmbiguousIdentifier when more than one object does.
	ResolveByAccount(ctx context.Context, domain, account string) (ObjectRef, error)

	// ResolveByAttribute resolves an arbitrary object-type, attribute and
	// value lookup with the same cardinality contract as ResolveByAccount.
	ResolveByAttribute(ctx context.Context, objectType, attribute, value string) (ObjectRef, error)

	// SetsContaining returns the Sets holding a ComputedMember relationship
	// to the given object. Implementations must not return duplicate set ids.
	SetsContaining(ctx context.Context, id uuid.UUID) ([]SetRef, error)

	// MatchRules evaluates the three matching strategies against active
	// rules and returns every candidate with its strategy discriminator.
	MatchRules(ctx context.Context, in MatchInput) ([]RuleMatch, error)

	// AttributeNames resolves attribute keys to human-readable display
	// names. Keys without metadata may be absent from the result.
	AttributeNames(ctx context.Context, keys []string) (map[string]string, error)
}
