package sso

import (
	"fmt"
	"sort"
)

// Catalog is an immutable, ordered view over the parsed SSO profiles.
// It is loaded once per run and read-only afterwards, so every query is
// safe for concurrent use.
type Catalog struct {
	profiles []Profile
}

// NewCatalog validates every record and keeps the original order.
// Duplicate account and role pairs are legal (the same pair can exist in
// two regions); an invalid record fails construction outright rather
// than being patched or skipped.
func NewCatalog(profiles []Profile) (*Catalog, error) {
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid profile record: %w", err)
		}
	}

	return &Catalog{profiles: append([]Profile(nil), profiles...)}, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

// Profiles returns a copy of the records in catalog order.
func (c *Catalog) Profiles() []Profile {
	return append([]Profile(nil), c.profiles...)
}

// AccountNames returns the unique account names, sorted ascending for
// deterministic display.
func (c *Catalog) AccountNames() []string {
	seen := make(map[string]bool, len(c.profiles))
	var names []string
	for _, p := range c.profiles {
		if !seen[p.AccountName] {
			seen[p.AccountName] = true
			names = append(names, p.AccountName)
		}
	}

	sort.Strings(names)
	return names
}

// RolesForAccount returns the unique role names of records whose account
// name matches exactly (case-sensitive), sorted ascending.
func (c *Catalog) RolesForAccount(accountName string) []string {
	seen := make(map[string]bool)
	var roles []string
	for _, p := range c.profiles {
		if p.AccountName != accountName {
			continue
		}
		if !seen[p.RoleName] {
			seen[p.RoleName] = true
			roles = append(roles, p.RoleName)
		}
	}

	sort.Strings(roles)
	return roles
}

// ProfilesFor returns every record matching both the account and role
// exactly, in catalog order so disambiguation numbering stays stable.
func (c *Catalog) ProfilesFor(accountName, roleName string) []Profile {
	var out []Profile
	for _, p := range c.profiles {
		if p.AccountName == accountName && p.RoleName == roleName {
			out = append(out, p)
		}
	}

	return out
}

// ByName returns the record with the given profile name.
func (c *Catalog) ByName(name string) (Profile, bool) {
	for _, p := range c.profiles {
		if p.Name == name {
			return p, true
		}
	}

	return Profile{}, false
}
