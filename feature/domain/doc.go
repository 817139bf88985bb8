// Package domain converges a single Foreman DNS domain record to a declared
// desired state.
//
// One reconciliation reads the desired state, resolves every referenced
// organization, location, and dns proxy name to its remote id, fetches the
// current record by name, diffs the comparable fields, and issues at most one
// mutating API call:
//
//   - not found and state=present: create with the full field set
//   - found and state=absent: delete by id
//   - found, state=present, fields differ: update with the full field set
//   - otherwise: no-op
//
// Reference resolution failures and remote call failures are both fatal for
// the invocation; there are no retries and no rollback. The remote system's
// error message is preserved on the way up.
//
// # Usage
//
//	r := domain.NewReconciler(client, log)
//	result, err := r.Reconcile(ctx, desired, domain.Options{})
package domain
