package rbac

import "go-roster/internal/domain"

// Aliased to the shared domain types so Service satisfies the
// middleware's RBACService interface directly.
type EnforceRequest = domain.EnforceRequest

type EnforceResponse = domain.EnforceResponse

type RoleResponse = domain.RoleResponse

type PermissionResponse = domain.PermissionResponse

type UpsertRoleRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permission_ids"`
}
