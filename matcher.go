package rights

import (
	"sort"

	"github.com/samber/lo"
)

// Operations grantable through current-set matching. Create is reserved for
// final-set matching, where the target's membership is evaluated against the
// set it would belong to after the pending change.
var currentSetActions = []Action{ActionAdd, ActionDelete, ActionModify, ActionRead, ActionRemove}

// allowedOperations restricts a candidate rule's declared operations
// according to the strategy that matched it.
func allowedOperations(m RuleMatch) []Action {
	switch m.Strategy {
	case StrategyCurrentSet:
		return lo.Filter(m.Operations, func(op Action, _ int) bool {
			return lo.Contains(currentSetActions, op)
		})
	case StrategyFinalSet:
		// Create only, even if the rule declares other operations.
		if lo.Contains(m.Operations, ActionCreate) {
			return []Action{ActionCreate}
		}
		return nil
	case StrategyRelative:
		// No operation filter. A rule declaring no operations still
		// produces one unattributed match.
		if len(m.Operations) == 0 {
			return []Action{ActionUnspecified}
		}
		return m.Operations
	}
	return nil
}

// expandMatches turns candidate rules into RightsRecord rows: one row per
// allowed operation per attribute in scope, with an empty scope collapsing
// to a single "All Attributes" row per operation. The union over all
// strategies is deduplicated on the (rule, action, attribute) triple and
// sorted by (rule, action, attribute), with actions in declaration order
// (Create, Read, Modify, Delete, Add, Remove).
//
// names carries attribute display-name metadata; this step only decorates,
// it never filters. A key without metadata renders as the key itself.
func expandMatches(matches []RuleMatch, names map[string]string, requestor, target string) []RightsRecord {
	type rowKey struct {
		rule      string
		action    Action
		attribute string
	}

	seen := make(map[rowKey]struct{})
	records := []RightsRecord{}
	emit := func(rule string, action Action, attribute string) {
		k := rowKey{rule, action, attribute}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		records = append(records, RightsRecord{
			Requestor: requestor,
			Target:    target,
			Rule:      rule,
			Action:    action,
			Attribute: attribute,
		})
	}

	for _, m := range matches {
		for _, op := range allowedOperations(m) {
			if len(m.AttributeScope) == 0 {
				emit(m.RuleName, op, AllAttributes)
				continue
			}
			for _, key := range m.AttributeScope {
				emit(m.RuleName, op, attributeDisplay(names, key))
			}
		}
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		if ra, rb := a.Action.rank(), b.Action.rank(); ra != rb {
			return ra < rb
		}
		if a.Action != b.Action {
			return a.Action < b.Action
		}
		return a.Attribute < b.Attribute
	})
	return records
}

func attributeDisplay(names map[string]string, key string) string {
	if name, ok := names[key]; ok && name != "" {
		return name
	}
	return key
}

// scopeKeys collects the distinct attribute keys referenced by the matches,
// for a single metadata lookup.
func scopeKeys(matches []RuleMatch) []string {
	return lo.Uniq(lo.FlatMap(matches, func(m RuleMatch, _ int) []string {
		return m.AttributeScope
	}))
}
