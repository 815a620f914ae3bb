package domain

import "time"

// Role enumerates the partnership program roles.
type Role string

const (
	RoleReseller Role = "reseller"
	RoleAdmin    Role = "admin"
	RoleShipper  Role = "shipper"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleReseller, RoleAdmin, RoleShipper:
		return true
	}
	return false
}

// UserStatus represents the verification state of an account.
type UserStatus string

const (
	UserStatusUnverified UserStatus = "unverified"
	UserStatusVerified   UserStatus = "verified"
)

// User is an account in the partnership program, keyed by email.
type User struct {
	Email        string
	PasswordHash string
	Name         string
	Address      string
	Contact      string
	Status       UserStatus
	Role         Role
	CreatedAt    time.Time
}

// Capabilities are the stock-management permissions granted to a role.
type Capabilities struct {
	CanAdd    bool
	CanEdit   bool
	CanDelete bool
}

var roleCapabilities = map[Role]Capabilities{
	RoleAdmin:    {CanAdd: true, CanEdit: true, CanDelete: true},
	RoleReseller: {},
	RoleShipper:  {},
}

// CapabilitiesForRole resolves a role's stock permissions.
func CapabilitiesForRole(role Role) Capabilities {
	return roleCapabilities[role]
}
