package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, including deactivation
	RoleManager  Role = "manager"  // Can manage employees and reports
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID                     string
	Email                  string
	FirstName              string
	LastName               string
	PasswordHash           string
	EmployeeIdentifier     string
	PhoneNumber            *string
	Role                   Role
	IsActive               bool
	IsEmailVerified        bool
	EmailVerifiedAt        *time.Time
	RefreshTokenHash       *string
	RefreshTokenExpiresAt  *time.Time
	PasswordResetTokenHash *string
	PasswordResetExpiresAt *time.Time
	LastLoginAt            *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanManageEmployees checks if user can create and list employees
func (u *User) CanManageEmployees() bool {
	return u.IsManager()
}

// ValidRoles lists the assignable roles.
func ValidRoles() []string {
	return []string{string(RoleAdmin), string(RoleManager), string(RoleEmployee)}
}
