package rights

import (
	"context"
	"fmt"
)

// DefaultSeparator delimits the parts of a triplet identifier.
const DefaultSeparator = ":"

// Resolver computes the effective rights between a requestor and a target.
// Resolvers are lightweight and safe to create per invocation; they hold no
// state beyond the store handle and identifier options.
type Resolver struct {
	store     Store
	separator string
	domain    string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSeparator sets the separator character used when classifying triplet
// identifiers. Defaults to ":".
func WithSeparator(sep string) Option {
	return func(r *Resolver) {
		if sep != "" {
			r.separator = sep
		}
	}
}

// WithDefaultDomain sets the domain assumed for account identifiers given
// without a domain\ prefix.
func WithDefaultDomain(domain string) Option {
	return func(r *Resolver) {
		r.domain = domain
	}
}

// NewResolver creates a resolver over the given store.
func NewResolver(store Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:     store,
		separator: DefaultSeparator,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is a completed rights resolution.
type Result struct {
	Requestor Identity
	Target    Identity
	Records   []RightsRecord
}

// Resolve determines every grant the requestor holds on the target.
//
// Both identifiers are resolved to canonical ids, both set memberships are
// computed, and one composite store query evaluates the three matching
// strategies. The matched rules are expanded per operation and attribute,
// deduplicated, decorated with attribute display names, and returned sorted
// by (rule, action, attribute). Zero matched rules is a valid, empty result,
// not an error.
func (r *Resolver) Resolve(ctx context.Context, requestor, target string) (*Result, error) {
	req, err := r.resolveIdentity(ctx, SideRequestor, requestor)
	if err != nil {
		return nil, err
	}
	tgt, err := r.resolveIdentity(ctx, SideTarget, target)
	if err != nil {
		return nil, err
	}

	if req.Sets, err = r.memberships(ctx, SideRequestor, req.ID); err != nil {
		return nil, err
	}
	if tgt.Sets, err = r.memberships(ctx, SideTarget, tgt.ID); err != nil {
		return nil, err
	}

	matches, err := r.store.MatchRules(ctx, MatchInput{
		RequestorID:     req.ID,
		TargetID:        tgt.ID,
		RequestorSetIDs: setIDs(req.Sets),
		TargetSetIDs:    setIDs(tgt.Sets),
	})
	if err != nil {
		return nil, fmt.Errorf("matching rules: %w: %v", ErrStoreQuery, err)
	}

	names := map[string]string{}
	if keys := scopeKeys(matches); len(keys) > 0 {
		if names, err = r.store.AttributeNames(ctx, keys); err != nil {
			return nil, fmt.Errorf("attribute metadata: %w: %v", ErrStoreQuery, err)
		}
	}

	return &Result{
		Requestor: req,
		Target:    tgt,
		Records:   expandMatches(matches, names, req.Name, tgt.Name),
	}, nil
}
