package permission

import (
	"fmt"

	"candlepin/internal/domain/permission"
	"candlepin/internal/shared/logger"
)

// InitAdminPrincipals assigns the admin role to each configured principal.
func InitAdminPrincipals(enforcer permission.PermissionEnforcer, principals []string, log logger.Interface) error {
	for _, principal := range principals {
		if principal == "" {
			continue
		}
		if err := enforcer.AddRoleForPrincipal(principal, permission.RoleAdmin); err != nil {
			return fmt.Errorf("failed to grant admin role to %s: %w", principal, err)
		}
	}

	log.Infow("admin principals initialized", "count", len(principals))
	return nil
}
