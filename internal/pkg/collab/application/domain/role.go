package collab

// Role expresses a participant's authority within a session.
// Hierarchy: host > admin > editor > viewer.
type Role string

const (
	RoleHost   Role = "host"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// roleAuthority orders roles; a higher value means more authority.
// Unknown roles rank 0, below every valid role.
var roleAuthority = map[Role]int{
	RoleHost:   4,
	RoleAdmin:  3,
	RoleEditor: 2,
	RoleViewer: 1,
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleAuthority[r]
	return ok
}

// Authority returns the numeric rank of the role.
func (r Role) Authority() int {
	return roleAuthority[r]
}

// Description summarizes what the role is allowed to do.
func (r Role) Description() string {
	switch r {
	case RoleHost:
		return "Full control. Can edit, comment, manage users, and control the session."
	case RoleAdmin:
		return "Can edit code, comment, kick editors/viewers, and change their roles."
	case RoleEditor:
		return "Can edit code and add comments."
	case RoleViewer:
		return "Can only view code and add comments."
	default:
		return "Unknown role."
	}
}
