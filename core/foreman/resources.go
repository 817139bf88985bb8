package foreman

import "domain-manager/core/utils"

// ResourceType identifies a Foreman API v2 resource collection.
// The value is the plural path segment used in API URLs.
type ResourceType string

const (
	// Domains is the DNS domain resource collection.
	Domains ResourceType = "domains"
	// Organizations is the organization resource collection.
	Organizations ResourceType = "organizations"
	// Locations is the location resource collection.
	Locations ResourceType = "locations"
	// SmartProxies is the smart proxy resource collection (DNS, DHCP, TFTP capsules).
	SmartProxies ResourceType = "smart_proxies"
)

// singularNames maps each collection to the root element name Foreman expects
// to wrap write payloads in, e.g. {"domain": {...}} for POST /api/v2/domains.
var singularNames = map[ResourceType]string{
	Domains:       "domain",
	Organizations: "organization",
	Locations:     "location",
	SmartProxies:  "smart_proxy",
}

// Singular returns the root element name for write payloads of this resource.
func (r ResourceType) Singular() string {
	return singularNames[r]
}

// Record is a generic Foreman resource representation.
// The remote system owns the schema; accessors normalize the loosely typed
// JSON values into concrete Go types.
type Record map[string]any

// ID returns the numeric identifier of the record, or 0 if absent.
func (r Record) ID() int {
	return r.Int("id")
}

// Name returns the name field of the record.
func (r Record) Name() string {
	return r.String("name")
}

// String returns the named field as a string.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}

// Int returns the named field as an int.
func (r Record) Int(key string) int {
	v, ok := r[key]
	if !ok || v == nil {
		return 0
	}
	return utils.ToInt(v)
}

// IntSlice returns the named field as a slice of ints.
// It returns nil when the field is absent or not an array.
func (r Record) IntSlice(key string) []int {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, utils.ToInt(item))
	}
	return out
}
