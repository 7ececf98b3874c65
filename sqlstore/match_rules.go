package sqlstore

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	rights "github.com/idmops/resultant-rights"
)

// matchRulesQuery evaluates the three matching strategies over active rules
// (ruleType Request with grantRight) in a single round trip. Each arm tags
// its rows with a strategy discriminator:
//
//   - current-set: principal set among the requestor's sets, resource
//     current set among the target's sets.
//   - final-set: principal set among the requestor's sets, resource final
//     set among the target's sets.
//   - relative: the target carries the rule's principal-relative reference
//     attribute valued with the requestor, and the rule's resource current
//     set contains the target via the ComputedMember index directly.
//
// $1 requestor id, $2 target id, $3 requestor set ids, $4 target set ids.
const matchRulesQuery = `
SELECT 'current-set' AS strategy, r.rule_id, r.display_name, r.operations, r.attribute_scope
FROM policy_rules r
WHERE r.rule_type = 'Request' AND r.grant_right
	AND r.principal_set = ANY ($3::uuid[])
	AND r.resource_current_set = ANY ($4::uuid[])
UNION ALL
SELECT 'final-set', r.rule_id, r.display_name, r.operations, r.attribute_scope
FROM policy_rules r
WHERE r.rule_type = 'Request' AND r.grant_right
	AND r.principal_set = ANY ($3::uuid[])
	AND r.resource_final_set = ANY ($4::uuid[])
UNION ALL
SELECT 'relative', r.rule_id, r.display_name, r.operations, r.attribute_scope
FROM policy_rules r
JOIN object_values ov ON ov.object_id = $2
	AND ov.attribute_key = r.principal_relative_attribute
	AND ov.reference_value = $1
JOIN computed_members cm ON cm.set_id = r.resource_current_set
	AND cm.member_id = $2
WHERE r.rule_type = 'Request' AND r.grant_right
ORDER BY strategy, display_name`

// MatchRules runs the composite strategy query and returns every candidate
// rule with its strategy discriminator.
func (s *Store) MatchRules(ctx context.Context, in rights.MatchInput) ([]rights.RuleMatch, error) {
	rows, err := s.q.QueryContext(ctx, matchRulesQuery,
		in.RequestorID,
		in.TargetID,
		pq.Array(uuidStrings(in.RequestorSetIDs)),
		pq.Array(uuidStrings(in.TargetSetIDs)),
	)
	if err != nil {
		return nil, fmt.Errorf("match rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	matches := []rights.RuleMatch{}
	for rows.Next() {
		var (
			m     rights.RuleMatch
			ops   pq.StringArray
			scope pq.StringArray
		)
		if err := rows.Scan(&m.Strategy, &m.RuleID, &m.RuleName, &ops, &scope); err != nil {
			return nil, err
		}
		if m.Operations, err = actionsFromStrings(ops); err != nil {
			return nil, fmt.Errorf("rule %q: %w", m.RuleName, err)
		}
		m.AttributeScope = scope
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func actionsFromStrings(ss []string) ([]rights.Action, error) {
	actions := make([]rights.Action, 0, len(ss))
	for _, s := range ss {
		a, err := rights.ParseAction(s)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}
