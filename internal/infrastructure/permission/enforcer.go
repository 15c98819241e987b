package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"candlepin/internal/domain/permission"
	"candlepin/internal/shared/constants"
	"candlepin/internal/shared/logger"
)

var _ permission.PermissionEnforcer = (*Enforcer)(nil)

// ownerAccessModel grants a request when the subject (directly or through
// a role) holds a policy on the owner, or on every owner, whose action is
// ALL or equals the requested action.
const ownerAccessModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "ALL" || r.act == p.act)
`

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds a casbin enforcer persisting policies through gorm.
// modelPath overrides the built-in owner access model when not empty.
func NewEnforcer(db *gorm.DB, modelPath string, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", constants.TableCasbinRules)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	var m model.Model
	if modelPath != "" {
		m, err = model.NewModelFromFile(modelPath)
	} else {
		m, err = model.NewModelFromString(ownerAccessModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	e := &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}
	if err := e.ensureAdminPolicy(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Enforcer) ensureAdminPolicy() error {
	if _, err := e.enforcer.AddPolicy(permission.RoleAdmin, permission.AnyOwner, string(permission.AccessAll)); err != nil {
		return fmt.Errorf("failed to add admin policy: %w", err)
	}
	return nil
}

func (e *Enforcer) Enforce(principal string, ownerKey string, access permission.Access) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(principal, ownerKey, string(access))
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "principal", principal, "owner", ownerKey, "access", access)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// GrantOwnerAccess is idempotent; the adapter persists the policy
// immediately.
func (e *Enforcer) GrantOwnerAccess(principal string, ownerKey string, access permission.Access) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(principal, ownerKey, string(access)); err != nil {
		e.logger.Errorw("failed to add policy", "error", err, "principal", principal, "owner", ownerKey)
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return nil
}

func (e *Enforcer) RevokeOwnerAccess(principal string, ownerKey string, access permission.Access) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemovePolicy(principal, ownerKey, string(access)); err != nil {
		e.logger.Errorw("failed to remove policy", "error", err, "principal", principal, "owner", ownerKey)
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	return nil
}

func (e *Enforcer) AddRoleForPrincipal(principal string, role string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddRoleForUser(principal, role); err != nil {
		e.logger.Errorw("failed to add role", "error", err, "principal", principal, "role", role)
		return fmt.Errorf("failed to add role: %w", err)
	}
	return nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
