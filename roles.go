package auth

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	default:
		return false
	}
}

// ParseRole parses a string into a UserRole. Anything that is not an exact
// match of the four known roles comes back as the empty role with ok=false;
// unknown roles never gain capabilities.
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	if !IsValidRole(role) {
		return "", false
	}
	return role, true
}

// CanManageSchool checks if this role can administer school-wide records
func CanManageSchool(r UserRole) bool {
	switch r {
	case RoleAdmin:
		return true
	default:
		return false
	}
}

// CanTeach checks if this role carries class/subject scoping
func CanTeach(r UserRole) bool {
	switch r {
	case RoleTeacher:
		return true
	default:
		return false
	}
}

// IsElevated checks if this role is staff rather than a student or parent
func IsElevated(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleTeacher:
		return true
	default:
		return false
	}
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleAdmin,
		RoleTeacher,
		RoleStudent,
		RoleParent,
	}
}
