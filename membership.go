package rights

import (
	"context"
	"fmt"
	"sort"

	"github.com/gofrs/uuid/v5"
)

// memberships returns the Sets the object is a materialized member of,
// deduplicated by set id and sorted by name for deterministic presentation.
// An object belonging to no sets is a fatal precondition failure: neither
// set-based matching strategy can ever match without set context.
func (r *Resolver) memberships(ctx context.Context, side Side, id uuid.UUID) ([]SetRef, error) {
	sets, err := r.store.SetsContaining(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s sets: %w: %v", side, ErrStoreQuery, err)
	}

	seen := make(map[uuid.UUID]struct{}, len(sets))
	out := make([]SetRef, 0, len(sets))
	for _, s := range sets {
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}

	if len(out) == 0 {
		return nil, &NoSetsError{Side: side}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func setIDs(sets []SetRef) []uuid.UUID {
	ids := make([]uuid.UUID, len(sets))
	for i, s := range sets {
		ids[i] = s.ID
	}
	return ids
}
