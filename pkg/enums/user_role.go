package enums

// UserRole mirrors the roles the upstream auth service assigns.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleStaff    UserRole = "staff"
	UserRoleCustomer UserRole = "customer"
)

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	switch u {
	case UserRoleAdmin, UserRoleStaff, UserRoleCustomer:
		return true
	}
	return false
}
