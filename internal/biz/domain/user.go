package domain

// Role is an organizational role in the reporting hierarchy
type Role string

const (
	RoleExecutive  Role = "Executive"
	RolePM         Role = "PM"
	RoleSupervisor Role = "Supervisor"
	RoleUnknown    Role = ""
)

// ParseRole maps a directory role string to a Role.
// Anything outside the known hierarchy (including "Unassigned") maps to RoleUnknown.
func ParseRole(s string) Role {
	switch s {
	case "Executive":
		return RoleExecutive
	case "PM":
		return RolePM
	case "Supervisor":
		return RoleSupervisor
	default:
		return RoleUnknown
	}
}

// User represents a directory entry
type User struct {
	ID        int64
	Name      string
	Role      Role
	Phone     string
	ManagerID int64
}
