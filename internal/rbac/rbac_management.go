package rbac

import (
	"errors"

	rbacerrors "go-roster/internal/rbac/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Role management. Writes go straight to the role tables; the enforcer
// reloads policy on the next Enforce, so no explicit cache bust is needed.

func (s *service) ListRoles(companyID string) ([]RoleResponse, error) {
	rows, err := s.repo.ListRoles(companyID)
	if err != nil {
		return nil, err
	}

	out := make([]RoleResponse, 0, len(rows))
	for _, row := range rows {
		resp, err := s.mapRole(&row)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *service) GetRole(companyID, id string) (RoleResponse, error) {
	row, err := s.findCompanyRole(companyID, id)
	if err != nil {
		return RoleResponse{}, err
	}
	return s.mapRole(row)
}

func (s *service) CreateRole(companyID string, req UpsertRoleRequest) (RoleResponse, error) {
	if _, err := s.repo.GetRoleByName(companyID, req.Name); err == nil {
		return RoleResponse{}, rbacerrors.ErrRoleNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RoleResponse{}, err
	}

	row := &RoleRow{
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(row); err != nil {
		return RoleResponse{}, err
	}
	if len(req.PermissionIDs) > 0 {
		if err := s.repo.UpdateRolePermissions(row.ID, req.PermissionIDs); err != nil {
			return RoleResponse{}, err
		}
	}

	s.logger.Info("role created",
		zap.String("company_id", companyID),
		zap.String("role_id", row.ID),
		zap.String("name", row.Name),
	)
	return s.mapRole(row)
}

func (s *service) UpdateRole(companyID, id string, req UpsertRoleRequest) (RoleResponse, error) {
	row, err := s.findCompanyRole(companyID, id)
	if err != nil {
		return RoleResponse{}, err
	}

	if req.Name != row.Name {
		if _, err := s.repo.GetRoleByName(companyID, req.Name); err == nil {
			return RoleResponse{}, rbacerrors.ErrRoleNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResponse{}, err
		}
	}

	row.Name = req.Name
	row.Description = req.Description
	if err := s.repo.UpdateRole(row); err != nil {
		return RoleResponse{}, err
	}
	if err := s.repo.UpdateRolePermissions(row.ID, req.PermissionIDs); err != nil {
		return RoleResponse{}, err
	}

	s.logger.Info("role updated",
		zap.String("company_id", companyID),
		zap.String("role_id", row.ID),
	)
	return s.mapRole(row)
}

func (s *service) DeleteRole(companyID, id string) error {
	if _, err := s.findCompanyRole(companyID, id); err != nil {
		return err
	}
	if err := s.repo.DeleteRole(id); err != nil {
		return err
	}
	s.logger.Info("role deleted",
		zap.String("company_id", companyID),
		zap.String("role_id", id),
	)
	return nil
}

func (s *service) ListPermissions() ([]PermissionResponse, error) {
	rows, err := s.repo.ListPermissions()
	if err != nil {
		return nil, err
	}

	out := make([]PermissionResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, PermissionResponse{
			ID:       p.ID,
			Resource: p.Resource,
			Action:   p.Action,
			Label:    p.Label,
			Category: p.Category,
		})
	}
	return out, nil
}

// findCompanyRole refuses cross-tenant access by id.
func (s *service) findCompanyRole(companyID, id string) (*RoleRow, error) {
	row, err := s.repo.GetRoleByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rbacerrors.ErrRoleNotFound
		}
		return nil, err
	}
	if row.CompanyID != companyID {
		return nil, rbacerrors.ErrRoleNotFound
	}
	return row, nil
}

func (s *service) mapRole(row *RoleRow) (RoleResponse, error) {
	perms, err := s.repo.GetPermissionsByRoleID(row.ID)
	if err != nil {
		return RoleResponse{}, err
	}

	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Resource+":"+p.Action)
	}
	return RoleResponse{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Permissions: names,
	}, nil
}
