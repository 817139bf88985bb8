package domain

import (
	"context"
	"fmt"

	"domain-manager/core/foreman"

	"go.uber.org/zap"
)

// Reconciler converges a single named domain to its desired state with at
// most one mutating API call per invocation. Each invocation is stateless;
// the reconciler holds no data between runs.
type Reconciler struct {
	client foreman.Client
	log    *zap.Logger
}

// NewReconciler creates a reconciler backed by the given Foreman client.
func NewReconciler(client foreman.Client, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{client: client, log: log}
}

// Reconcile fetches the current state of the desired domain, resolves all
// referenced names, and issues the single mutation needed to converge (or
// none if state already matches). With opts.DryRun the planned action is
// reported and no mutation runs.
func (r *Reconciler) Reconcile(ctx context.Context, desired *DesiredState, opts Options) (*Result, error) {
	if err := desired.Validate(); err != nil {
		return nil, err
	}

	current, err := r.fetchCurrent(ctx, desired.Name)
	if err != nil {
		return nil, err
	}

	refs, err := r.resolveReferences(ctx, desired)
	if err != nil {
		return nil, err
	}

	fields := assembleFields(desired, refs)

	switch {
	case current == nil && desired.State == StatePresent:
		if opts.DryRun {
			return &Result{Changed: true, Action: ActionCreate}, nil
		}
		return r.create(ctx, desired, fields)

	case current == nil:
		// Absent and already gone
		return &Result{Changed: false, Action: ActionNone}, nil

	case desired.State == StateAbsent:
		if opts.DryRun {
			return &Result{Changed: true, Action: ActionDelete, Domain: current}, nil
		}
		return r.delete(ctx, desired, current)

	case !matchesDesired(desired, refs, current):
		if opts.DryRun {
			return &Result{Changed: true, Action: ActionUpdate, Domain: current}, nil
		}
		return r.update(ctx, desired, current, fields)

	default:
		return &Result{Changed: false, Action: ActionNone, Domain: current}, nil
	}
}

// fetchCurrent looks the domain up by name and, when found, fetches the full
// record by id. Search results are partial projections, so the explicit get
// guarantees all comparable fields are present.
func (r *Reconciler) fetchCurrent(ctx context.Context, name string) (*Domain, error) {
	record, err := r.client.Search(ctx, foreman.Domains, map[string]string{"name": name})
	if err != nil {
		return nil, &OperationError{Op: "get", Resource: fmt.Sprintf("domain %q", name), Err: err}
	}
	if record == nil {
		return nil, nil
	}

	full, err := r.client.Get(ctx, foreman.Domains, record.ID())
	if err != nil {
		return nil, &OperationError{Op: "get", Resource: fmt.Sprintf("domain %q", name), Err: err}
	}
	return newDomain(full), nil
}

func (r *Reconciler) create(ctx context.Context, desired *DesiredState, fields foreman.Record) (*Result, error) {
	r.log.Info("Creating domain", zap.String("name", desired.Name))

	record, err := r.client.Create(ctx, foreman.Domains, fields)
	if err != nil {
		return nil, &OperationError{Op: "create", Resource: fmt.Sprintf("domain %q", desired.Name), Err: err}
	}
	return &Result{Changed: true, Action: ActionCreate, Domain: newDomain(record)}, nil
}

func (r *Reconciler) update(ctx context.Context, desired *DesiredState, current *Domain, fields foreman.Record) (*Result, error) {
	r.log.Info("Updating domain", zap.String("name", desired.Name), zap.Int("id", current.ID))

	record, err := r.client.Update(ctx, foreman.Domains, current.ID, fields)
	if err != nil {
		return nil, &OperationError{Op: "update", Resource: fmt.Sprintf("domain %q", desired.Name), Err: err}
	}
	return &Result{Changed: true, Action: ActionUpdate, Domain: newDomain(record)}, nil
}

func (r *Reconciler) delete(ctx context.Context, desired *DesiredState, current *Domain) (*Result, error) {
	r.log.Info("Deleting domain", zap.String("name", desired.Name), zap.Int("id", current.ID))

	record, err := r.client.Delete(ctx, foreman.Domains, current.ID)
	if err != nil {
		return nil, &OperationError{Op: "delete", Resource: fmt.Sprintf("domain %q", desired.Name), Err: err}
	}
	return &Result{Changed: true, Action: ActionDelete, Domain: newDomain(record)}, nil
}

// assembleFields builds the full write payload for create and update calls.
// Updates always carry the entire field set, never a partial patch.
func assembleFields(desired *DesiredState, refs *resolvedReferences) foreman.Record {
	fields := foreman.Record{
		"name":     desired.Name,
		"fullname": desired.Fullname,
	}
	if desired.Organizations != nil {
		fields["organization_ids"] = refs.organizationIDs
	}
	if desired.Locations != nil {
		fields["location_ids"] = refs.locationIDs
	}
	if refs.hasDNSProxy {
		fields["dns_id"] = refs.dnsID
	}
	return fields
}

// matchesDesired reports whether the current remote record already matches
// the desired state. Name and fullname compare by exact string equality;
// organization and location ids compare as sets, and only when the desired
// state manages them (non-nil list). dns_id is assembled into write payloads
// but takes no part in this comparison, so a changed dns proxy alone never
// triggers an update.
// TODO: confirm with the Foreman team whether dns_id should participate in
// change detection.
func matchesDesired(desired *DesiredState, refs *resolvedReferences, current *Domain) bool {
	if current.Name != desired.Name {
		return false
	}
	if current.Fullname != desired.Fullname {
		return false
	}
	if desired.Organizations != nil && !sameIDSet(refs.organizationIDs, current.OrganizationIDs) {
		return false
	}
	if desired.Locations != nil && !sameIDSet(refs.locationIDs, current.LocationIDs) {
		return false
	}
	return true
}

// sameIDSet compares two id lists as sets; order and duplicates are irrelevant.
func sameIDSet(a, b []int) bool {
	setA := make(map[int]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}
	setB := make(map[int]struct{}, len(b))
	for _, id := range b {
		setB[id] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for id := range setA {
		if _, ok := setB[id]; !ok {
			return false
		}
	}
	return true
}
