package domain

import (
	"fmt"

	"domain-manager/core/foreman"
)

// ReferenceNotFoundError reports a referenced organization, location, or
// smart proxy name that resolved to no remote resource.
type ReferenceNotFoundError struct {
	// Resource is the collection the name was searched in.
	Resource foreman.ResourceType
	// Name is the reference that failed to resolve.
	Name string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s %q", e.Resource.Singular(), e.Name)
}

// OperationError reports a failed remote call. It wraps the underlying
// client error so the remote system's message is preserved verbatim.
type OperationError struct {
	// Op is the failing operation (search, get, create, update, delete).
	Op string
	// Resource describes the resource the operation targeted.
	Resource string
	// Err is the underlying client error.
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("could not %s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
