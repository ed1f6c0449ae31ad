package domain

type Role string

const (
	// RoleUser is assigned to every account at registration.
	RoleUser Role = "user"
	// RoleModerator can reach moderator-gated routes.
	RoleModerator Role = "moderator"
	// RoleAdmin passes every role check and is the only role allowed to change roles.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleModerator) || r == string(RoleAdmin)
}

// Satisfies applies the two-branch role rule: admin passes any check,
// every other role must equal required exactly. There is no ranking, so
// a moderator never satisfies an admin check.
func (r Role) Satisfies(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}
