// Package permission describes owner level access checks. A principal
// holds READ or ALL access on an owner key; ALL implies READ. The admin
// role holds ALL on every owner.
package permission

import (
	"candlepin/internal/shared/constants"
)

type Access string

const (
	AccessRead Access = constants.AccessRead
	AccessAll  Access = constants.AccessAll
)

// RoleAdmin is granted ALL on every owner.
const RoleAdmin = "admin"

// AnyOwner matches every owner key in a policy.
const AnyOwner = "*"

type PermissionEnforcer interface {
	// Enforce reports whether principal may act on ownerKey with access.
	Enforce(principal string, ownerKey string, access Access) (bool, error)
	GrantOwnerAccess(principal string, ownerKey string, access Access) error
	RevokeOwnerAccess(principal string, ownerKey string, access Access) error
	AddRoleForPrincipal(principal string, role string) error
	LoadPolicy() error
}
