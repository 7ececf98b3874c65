package rights

import "fmt"

// Action is an operation a policy rule can grant on a target.
type Action string

const (
	ActionCreate Action = "Create"
	ActionRead   Action = "Read"
	ActionModify Action = "Modify"
	ActionDelete Action = "Delete"
	ActionAdd    Action = "Add"
	ActionRemove Action = "Remove"
)

// ActionUnspecified labels the single row produced by a matched rule that
// declares no operations. It is a presentation placeholder, never a stored
// operation name, so ParseAction rejects it.
const ActionUnspecified Action = "Unspecified"

// Declaration order doubles as presentation order.
var allActions = []Action{
	ActionCreate,
	ActionRead,
	ActionModify,
	ActionDelete,
	ActionAdd,
	ActionRemove,
}

// rank orders actions for presentation. Anything outside the declared set,
// including ActionUnspecified, sorts after it.
func (a Action) rank() int {
	for i, known := range allActions {
		if a == known {
			return i
		}
	}
	return len(allActions)
}

// ParseAction converts a stored operation name into an Action.
func ParseAction(s string) (Action, error) {
	for _, a := range allActions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}
