// Package main provides the resultant-rights CLI.
//
// resultant-rights resolves the effective access grants between a
// requesting identity and a target resource in an identity-management
// policy store:
//
//	resultant-rights --requestor 'CONTOSO\alice' --target 'Person:AccountName:bob' --summary
//
// Each run opens a short-lived store connection, resolves both identifiers,
// computes both set memberships, evaluates the policy rules in one composite
// query, and prints the result in raw, full-table, or summary form.
package main

func main() {
	Execute()
}
