package rbac

import (
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// =========================================
// Mock Repository
// =========================================

type mockRepo struct{}

func (m *mockRepo) GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error) {
	return []EmployeeRoleRow{
		{
			EmployeeID: "emp-1",
			RoleID:     "role-owner",
		},
	}, nil
}

func (m *mockRepo) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{
			RoleID:   "role-owner",
			Resource: "employee",
			Action:   "read",
		},
	}, nil
}

func (m *mockRepo) ListRoles(companyID string) ([]RoleRow, error) {
	return []RoleRow{{ID: "role-owner", CompanyID: companyID, Name: "owner"}}, nil
}

func (m *mockRepo) GetRoleByID(id string) (*RoleRow, error) {
	return &RoleRow{ID: id, CompanyID: "company-1", Name: "owner"}, nil
}

func (m *mockRepo) GetRoleByName(companyID, name string) (*RoleRow, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepo) CreateRole(role *RoleRow) error {
	role.ID = "role-new"
	return nil
}

func (m *mockRepo) UpdateRole(role *RoleRow) error { return nil }

func (m *mockRepo) DeleteRole(id string) error { return nil }

func (m *mockRepo) ListPermissions() ([]PermissionRow, error) {
	return []PermissionRow{{ID: "perm-1", Resource: "employee", Action: "read"}}, nil
}

func (m *mockRepo) GetPermissionsByRoleID(roleID string) ([]PermissionRow, error) {
	return []PermissionRow{{ID: "perm-1", Resource: "employee", Action: "read"}}, nil
}

func (m *mockRepo) UpdateRolePermissions(roleID string, permIDs []string) error {
	return nil
}

// =========================================
// Helper: Test Enforcer
// =========================================

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

// =========================================
// TEST: Load + Enforce
// =========================================

func TestRBACService_Enforce(t *testing.T) {
	repo := &mockRepo{}
	enforcer := newTestEnforcer(t)

	service := NewService(repo, enforcer)

	err := service.LoadCompanyPolicy("company-1")
	assert.NoError(t, err)

	// Should allow
	allowed, err := service.Enforce(EnforceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Resource:   "employee",
		Action:     "read",
	})

	assert.NoError(t, err)
	assert.True(t, allowed)

	// Should deny
	denied, err := service.Enforce(EnforceRequest{
		EmployeeID: "emp-1",
		CompanyID:  "company-1",
		Resource:   "schedule",
		Action:     "approve",
	})

	assert.NoError(t, err)
	assert.False(t, denied)
}

func TestRBACService_RoleManagement(t *testing.T) {
	service := NewService(&mockRepo{}, newTestEnforcer(t))

	roles, err := service.ListRoles("company-1")
	assert.NoError(t, err)
	assert.Len(t, roles, 1)
	assert.Equal(t, []string{"employee:read"}, roles[0].Permissions)

	created, err := service.CreateRole("company-1", UpsertRoleRequest{Name: "scheduler"})
	assert.NoError(t, err)
	assert.Equal(t, "role-new", created.ID)

	assert.NoError(t, service.DeleteRole("company-1", "role-owner"))
}
