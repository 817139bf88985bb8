package domain

import (
	"context"
	"fmt"

	"domain-manager/core/foreman"
)

// resolvedReferences holds the remote ids of the names a desired state refers
// to. References are resolved fresh on every reconciliation; nothing is cached.
type resolvedReferences struct {
	organizationIDs []int
	locationIDs     []int
	dnsID           int
	hasDNSProxy     bool
}

// resolveReferences translates every referenced organization, location, and
// dns proxy name into its remote id. Any name with zero matches is a hard
// stop; no mutation may run after a resolution failure.
func (r *Reconciler) resolveReferences(ctx context.Context, desired *DesiredState) (*resolvedReferences, error) {
	refs := &resolvedReferences{}

	if desired.Organizations != nil {
		ids, err := r.resolveNames(ctx, foreman.Organizations, desired.Organizations)
		if err != nil {
			return nil, err
		}
		refs.organizationIDs = ids
	}

	if desired.Locations != nil {
		ids, err := r.resolveNames(ctx, foreman.Locations, desired.Locations)
		if err != nil {
			return nil, err
		}
		refs.locationIDs = ids
	}

	if desired.DNSProxy != "" {
		ids, err := r.resolveNames(ctx, foreman.SmartProxies, []string{desired.DNSProxy})
		if err != nil {
			return nil, err
		}
		refs.dnsID = ids[0]
		refs.hasDNSProxy = true
	}

	return refs, nil
}

// resolveNames looks up each name in the given collection and returns the ids
// in input order.
func (r *Reconciler) resolveNames(ctx context.Context, resource foreman.ResourceType, names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		record, err := r.client.Search(ctx, resource, map[string]string{"name": name})
		if err != nil {
			return nil, &OperationError{
				Op:       "search",
				Resource: fmt.Sprintf("%s %q", resource.Singular(), name),
				Err:      err,
			}
		}
		if record == nil {
			return nil, &ReferenceNotFoundError{Resource: resource, Name: name}
		}
		ids = append(ids, record.ID())
	}
	return ids, nil
}
