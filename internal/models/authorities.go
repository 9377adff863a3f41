package models

// Authority constants define all permission strings in the system.
// Downstream authorization checks these against the authorities claim
// carried by the access token.
const (
	AuthorityUserRead   = "user:read"
	AuthorityUserCreate = "user:create"
	AuthorityUserUpdate = "user:update"
	AuthorityUserDelete = "user:delete"

	AuthorityBugRead   = "bug:read"
	AuthorityBugCreate = "bug:create"
	AuthorityBugUpdate = "bug:update"
	AuthorityBugDelete = "bug:delete"
)

// Role names
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// roleAuthorities maps each role to the authorities it grants. Roles are
// fixed product data; changing them is a code change, not a runtime edit.
var roleAuthorities = map[string][]string{
	RoleUser: {
		AuthorityUserRead,
		AuthorityBugRead,
		AuthorityBugCreate,
	},
	RoleManager: {
		AuthorityUserRead,
		AuthorityBugRead,
		AuthorityBugCreate,
		AuthorityBugUpdate,
		AuthorityBugDelete,
	},
	RoleAdmin: {
		AuthorityUserRead,
		AuthorityUserCreate,
		AuthorityUserUpdate,
		AuthorityUserDelete,
		AuthorityBugRead,
		AuthorityBugCreate,
		AuthorityBugUpdate,
		AuthorityBugDelete,
	},
}

// AuthoritiesForRole returns a copy of the authority set granted by role.
// Unknown roles grant nothing.
func AuthoritiesForRole(role string) []string {
	granted, ok := roleAuthorities[role]
	if !ok {
		return nil
	}
	out := make([]string, len(granted))
	copy(out, granted)
	return out
}

// ValidRole checks if a role name exists
func ValidRole(role string) bool {
	_, ok := roleAuthorities[role]
	return ok
}

// HasAuthority checks if an authorities slice contains the required authority
func HasAuthority(authorities []string, required string) bool {
	for _, a := range authorities {
		if a == required {
			return true
		}
	}
	return false
}
