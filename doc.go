// Package rights resolves the effective access grants between a requesting
// identity and a target resource in an identity-management policy store.
//
// The store models everything as objects with attributes and relationships:
// identities, resources, named Sets with materialized membership, and
// management policy rules that grant operations on attributes. Given a
// (requestor, target) pair the resolver determines which active rules apply,
// via which matching strategy, and what each rule grants:
//
//	store := sqlstore.New(db)
//	resolver := rights.NewResolver(store)
//	result, err := resolver.Resolve(ctx, "CONTOSO\\alice", "Person:AccountName:bob")
//
// Every resolution is a read-only snapshot: the resolver holds no state
// across invocations and never writes to the store.
package rights
