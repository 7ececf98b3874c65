package rights

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes of a rights resolution. A resolution
// either completes fully or fails with one of these; no partial result is
// ever produced. Permission denial is not an error: a requestor with no
// matching rules yields an empty record collection.
var (
	// ErrUnrecognizedIdentifier is returned when an identifier string is
	// neither a GUID, a [domain\]account name, nor a
	// type<sep>attribute<sep>value triplet.
	ErrUnrecognizedIdentifier = errors.New("rights: unrecognized identifier format")

	// ErrObjectNotFound is returned when an identifier query matches no
	// object in the store.
	ErrObjectNotFound = errors.New("rights: object not found")

	// ErrAmbiguousIdentifier is returned when an account or attribute
	// identifier matches more than one object. The resolver never picks an
	// arbitrary match.
	ErrAmbiguousIdentifier = errors.New("rights: identifier matches more than one object")

	// ErrStoreQuery wraps any underlying store failure. Store failures are
	// fatal for the run; there are no retries.
	ErrStoreQuery = errors.New("rights: store query failed")
)

// Side names which half of a resolution an error refers to.
type Side string

const (
	SideRequestor Side = "requestor"
	SideTarget    Side = "target"
)

// NoSetsError reports that one side of the resolution is not a member of any
// Set. This is a fatal precondition: set-based matching cannot produce any
// result without set context, so the resolution aborts before rule matching.
type NoSetsError struct {
	Side Side
}

func (e *NoSetsError) Error() string {
	return fmt.Sprintf("rights: %s is not a member of any set", e.Side)
}

// IsNotFoundErr returns true if err is or wraps ErrObjectNotFound.
func IsNotFoundErr(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsAmbiguousErr returns true if err is or wraps ErrAmbiguousIdentifier.
func IsAmbiguousErr(err error) bool {
	return errors.Is(err, ErrAmbiguousIdentifier)
}

// IsNoSetsErr returns true if err is or wraps a NoSetsError.
func IsNoSetsErr(err error) bool {
	var e *NoSetsError
	return errors.As(err, &e)
}

// IsStoreQueryErr returns true if err is or wraps ErrStoreQuery.
func IsStoreQueryErr(err error) bool {
	return errors.Is(err, ErrStoreQuery)
}
