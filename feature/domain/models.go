package domain

import (
	"fmt"

	"domain-manager/core/foreman"
)

// State declares whether a domain should exist on the Foreman server.
type State string

const (
	// StatePresent means the domain must exist with the desired fields.
	StatePresent State = "present"
	// StateAbsent means the domain must not exist.
	StateAbsent State = "absent"
)

// DesiredState describes the target configuration of a single domain.
type DesiredState struct {
	// Name is the domain name and the sole lookup key (e.g. "example.com").
	Name string

	// Fullname is the human-readable description of the domain.
	Fullname string

	// DNSProxy is the name of the smart proxy serving DNS for this domain.
	// Empty means no proxy is assigned.
	DNSProxy string

	// Organizations lists the names of organizations the domain belongs to.
	// A nil slice leaves organization assignment unmanaged; an empty non-nil
	// slice manages it as an empty set.
	Organizations []string

	// Locations lists the names of locations the domain belongs to.
	// Nil-vs-empty semantics match Organizations.
	Locations []string

	// State declares whether the domain should exist.
	State State
}

// Validate checks that the desired state is well formed.
func (d *DesiredState) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("domain name must not be empty")
	}
	if d.State != StatePresent && d.State != StateAbsent {
		return fmt.Errorf("state must be %q or %q, got %q", StatePresent, StateAbsent, d.State)
	}
	return nil
}

// Domain is the typed view of a Foreman domain record.
type Domain struct {
	// ID is the remote identifier of the domain.
	ID int `json:"id"`

	// Name is the domain name.
	Name string `json:"name"`

	// Fullname is the description of the domain.
	Fullname string `json:"fullname"`

	// DNSID is the id of the smart proxy serving DNS, 0 if none.
	DNSID int `json:"dns_id"`

	// OrganizationIDs are the ids of assigned organizations.
	OrganizationIDs []int `json:"organization_ids"`

	// LocationIDs are the ids of assigned locations.
	LocationIDs []int `json:"location_ids"`
}

// newDomain builds a typed domain view from a generic Foreman record.
func newDomain(record foreman.Record) *Domain {
	if record == nil {
		return nil
	}
	return &Domain{
		ID:              record.ID(),
		Name:            record.Name(),
		Fullname:        record.String("fullname"),
		DNSID:           record.Int("dns_id"),
		OrganizationIDs: record.IntSlice("organization_ids"),
		LocationIDs:     record.IntSlice("location_ids"),
	}
}

// Action identifies the mutation a reconciliation performed or would perform.
type Action string

const (
	// ActionNone means the remote state already matches the desired state.
	ActionNone Action = "none"
	// ActionCreate means the domain was (or would be) created.
	ActionCreate Action = "create"
	// ActionUpdate means the domain was (or would be) updated in place.
	ActionUpdate Action = "update"
	// ActionDelete means the domain was (or would be) deleted.
	ActionDelete Action = "delete"
)

// Result is the outcome of a single reconciliation.
type Result struct {
	// Changed reports whether a mutation was (or, in dry-run, would be) issued.
	Changed bool `json:"changed"`

	// Action is the mutation performed or planned.
	Action Action `json:"action"`

	// Domain is the resulting remote record: the created/updated record, the
	// record as found for no-op runs, or nil when the domain does not exist.
	Domain *Domain `json:"domain"`
}

// Options controls reconcile behavior.
type Options struct {
	// DryRun computes the planned action without issuing any mutation.
	DryRun bool
}
