package domain

import (
	"context"
	"fmt"
	"testing"

	"domain-manager/core/foreman"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeForeman is an in-memory stand-in for the remote system. Unlike the
// testify mock it carries state across calls, which lets tests drive the
// reconciler through full converge-then-verify cycles.
type fakeForeman struct {
	nextID    int
	domains   map[int]foreman.Record
	refs      map[foreman.ResourceType]map[string]int
	mutations int
}

func newFakeForeman() *fakeForeman {
	return &fakeForeman{
		nextID:  100,
		domains: make(map[int]foreman.Record),
		refs: map[foreman.ResourceType]map[string]int{
			foreman.Organizations: {},
			foreman.Locations:     {},
			foreman.SmartProxies:  {},
		},
	}
}

func (f *fakeForeman) addReference(resource foreman.ResourceType, name string, id int) {
	f.refs[resource][name] = id
}

func (f *fakeForeman) Search(ctx context.Context, resource foreman.ResourceType, filter map[string]string) (foreman.Record, error) {
	name := filter["name"]
	if resource == foreman.Domains {
		for id, record := range f.domains {
			if record.Name() == name {
				// Partial projection, as search responses are
				return foreman.Record{"id": float64(id), "name": name}, nil
			}
		}
		return nil, nil
	}
	if id, ok := f.refs[resource][name]; ok {
		return foreman.Record{"id": float64(id), "name": name}, nil
	}
	return nil, nil
}

func (f *fakeForeman) Get(ctx context.Context, resource foreman.ResourceType, id int) (foreman.Record, error) {
	record, ok := f.domains[id]
	if !ok {
		return nil, &foreman.APIError{StatusCode: 404, Message: fmt.Sprintf("Resource domain not found by id '%d'", id)}
	}
	return record, nil
}

func (f *fakeForeman) Create(ctx context.Context, resource foreman.ResourceType, fields foreman.Record) (foreman.Record, error) {
	f.mutations++
	id := f.nextID
	f.nextID++
	record := roundTrip(fields)
	record["id"] = float64(id)
	f.domains[id] = record
	return record, nil
}

func (f *fakeForeman) Update(ctx context.Context, resource foreman.ResourceType, id int, fields foreman.Record) (foreman.Record, error) {
	f.mutations++
	if _, ok := f.domains[id]; !ok {
		return nil, &foreman.APIError{StatusCode: 404, Message: fmt.Sprintf("Resource domain not found by id '%d'", id)}
	}
	record := roundTrip(fields)
	record["id"] = float64(id)
	f.domains[id] = record
	return record, nil
}

func (f *fakeForeman) Delete(ctx context.Context, resource foreman.ResourceType, id int) (foreman.Record, error) {
	f.mutations++
	record, ok := f.domains[id]
	if !ok {
		return nil, &foreman.APIError{StatusCode: 404, Message: fmt.Sprintf("Resource domain not found by id '%d'", id)}
	}
	delete(f.domains, id)
	return record, nil
}

// roundTrip normalizes stored values the way a JSON decode would, so typed id
// slices come back as []any of float64 like real API responses.
func roundTrip(fields foreman.Record) foreman.Record {
	record := foreman.Record{}
	for key, value := range fields {
		if ids, ok := value.([]int); ok {
			items := make([]any, 0, len(ids))
			for _, id := range ids {
				items = append(items, float64(id))
			}
			record[key] = items
			continue
		}
		if n, ok := value.(int); ok {
			record[key] = float64(n)
			continue
		}
		record[key] = value
	}
	return record
}

// TestReconcile_Idempotence tests that running the same desired state twice
// against an unchanged remote yields changed=false on the second run.
func TestReconcile_Idempotence(t *testing.T) {
	remote := newFakeForeman()
	remote.addReference(foreman.Organizations, "Torchlight", 3)
	remote.addReference(foreman.Locations, "Cardiff", 4)
	remote.addReference(foreman.Locations, "London", 5)

	desired := &DesiredState{
		Name:          "example.com",
		Fullname:      "Example domain",
		Organizations: []string{"Torchlight"},
		Locations:     []string{"Cardiff", "London"},
		State:         StatePresent,
	}

	r := NewReconciler(remote, nil)

	first, err := r.Reconcile(context.Background(), desired, Options{})
	require.NoError(t, err)
	assert.True(t, first.Changed)
	assert.Equal(t, ActionCreate, first.Action)
	assert.Equal(t, 1, remote.mutations)

	second, err := r.Reconcile(context.Background(), desired, Options{})
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, ActionNone, second.Action)
	assert.Equal(t, 1, remote.mutations)
	require.NotNil(t, second.Domain)
	assert.Equal(t, first.Domain.ID, second.Domain.ID)
}

// TestReconcile_ConvergeLifecycle drives a domain through create, update,
// and delete against the stateful fake.
func TestReconcile_ConvergeLifecycle(t *testing.T) {
	remote := newFakeForeman()
	r := NewReconciler(remote, nil)
	ctx := context.Background()

	created, err := r.Reconcile(ctx, &DesiredState{
		Name:     "example.com",
		Fullname: "Example domain",
		State:    StatePresent,
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, ActionCreate, created.Action)

	updated, err := r.Reconcile(ctx, &DesiredState{
		Name:     "example.com",
		Fullname: "Renamed",
		State:    StatePresent,
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, updated.Action)
	assert.Equal(t, created.Domain.ID, updated.Domain.ID)
	assert.Equal(t, "Renamed", updated.Domain.Fullname)

	deleted, err := r.Reconcile(ctx, &DesiredState{
		Name:  "example.com",
		State: StateAbsent,
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, ActionDelete, deleted.Action)

	gone, err := r.Reconcile(ctx, &DesiredState{
		Name:  "example.com",
		State: StateAbsent,
	}, Options{})
	require.NoError(t, err)
	assert.False(t, gone.Changed)
	assert.Equal(t, 3, remote.mutations)
}
