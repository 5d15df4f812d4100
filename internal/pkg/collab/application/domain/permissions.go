package collab

// Permission checks are pure predicates over roles, evaluated on every
// mutating inbound message before any state change. A failing check must
// leave the session untouched.

// CanEdit reports whether the role may modify files.
// Host, Admin, and Editor can edit.
func CanEdit(role Role) bool {
	return role == RoleHost || role == RoleAdmin || role == RoleEditor
}

// CanComment reports whether the role may add comments.
// Every valid role can comment, including Viewer.
func CanComment(role Role) bool {
	return role.Valid()
}

// CanKick reports whether kicker may remove target from the session.
// Nobody can kick the Host; the Host can kick anyone; an Admin can kick
// roles strictly below Admin.
func CanKick(kicker, target Role) bool {
	if target == RoleHost {
		return false
	}
	if kicker == RoleHost {
		return true
	}
	return kicker == RoleAdmin && target.Authority() < RoleAdmin.Authority()
}

// CanChangeRole reports whether changer may move a participant from
// targetCurrent to newRole. Host is not transferable: it can never be
// assigned, and the Host's own role can never be changed. The Host can
// assign any other role; an Admin may only shuffle Editor/Viewer among
// themselves.
func CanChangeRole(changer, targetCurrent, newRole Role) bool {
	if newRole == RoleHost || targetCurrent == RoleHost {
		return false
	}
	if !newRole.Valid() {
		return false
	}
	if changer == RoleHost {
		return true
	}
	if changer == RoleAdmin {
		return targetCurrent.Authority() < RoleAdmin.Authority() &&
			newRole.Authority() < RoleAdmin.Authority()
	}
	return false
}

// CanManageSession reports whether the role controls session-level
// operations. Reserved for the Host.
func CanManageSession(role Role) bool {
	return role == RoleHost
}
