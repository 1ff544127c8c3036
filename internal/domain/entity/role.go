// Package entity contains the core business objects of the project.
package entity

import (
	"encoding/json"
	"slices"
	"strings"
)

// Role is a named permission set. Roles are read-only for this service.
type Role struct {
	ID          int64
	Name        string
	Permissions Permissions
}

// Permissions maps a resource name to the set of actions allowed on it.
type Permissions map[string]map[string]struct{}

// NewPermissions builds a mapping from resource -> action list.
func NewPermissions(grants map[string][]string) Permissions {
	perms := make(Permissions, len(grants))
	for resource, actions := range grants {
		set := make(map[string]struct{}, len(actions))
		for _, action := range actions {
			set[action] = struct{}{}
		}
		perms[resource] = set
	}

	return perms
}

// ParsePermissions decodes the stored JSON payload of a role.
// An absent payload yields an empty mapping; a malformed one yields an empty
// mapping and ok=false.
func ParsePermissions(raw string) (perms Permissions, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return Permissions{}, true
	}

	var grants map[string][]string
	if err := json.Unmarshal([]byte(raw), &grants); err != nil {
		return Permissions{}, false
	}

	return NewPermissions(grants), true
}

// Contains is an exact resource/action lookup. No wildcards, no inheritance.
func (p Permissions) Contains(resource, action string) bool {
	actions, ok := p[resource]
	if !ok {
		return false
	}
	_, ok = actions[action]

	return ok
}

// Grants returns the mapping as sorted action lists.
func (p Permissions) Grants() map[string][]string {
	grants := make(map[string][]string, len(p))
	for resource, set := range p {
		actions := make([]string, 0, len(set))
		for action := range set {
			actions = append(actions, action)
		}
		slices.Sort(actions)
		grants[resource] = actions
	}

	return grants
}

// MarshalJSON renders the mapping in its stored form, {"users":["read"]}.
func (p Permissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Grants())
}

// UnmarshalJSON accepts the stored form. Unlike ParsePermissions it reports malformed input.
func (p *Permissions) UnmarshalJSON(data []byte) error {
	var grants map[string][]string
	if err := json.Unmarshal(data, &grants); err != nil {
		return err
	}
	*p = NewPermissions(grants)

	return nil
}
