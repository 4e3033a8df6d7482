package tenant

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope restricts a query to one company. Applied with db.Scopes(...).
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// LocationScope is the opaque filter the roster engine receives. Which
// boutiques a caller may touch is decided by the external scope resolver;
// this core never widens or narrows it on its own.
type LocationScope struct {
	CompanyID   string
	BoutiqueIDs []uuid.UUID
}

func (s LocationScope) Contains(boutiqueID uuid.UUID) bool {
	for _, id := range s.BoutiqueIDs {
		if id == boutiqueID {
			return true
		}
	}
	return false
}

// Resolver is the adapter for the external multi-tenant scope service.
//go:generate mockgen -source=scope.go -destination=mock/scope_resolver_mock.go -package=mock
type Resolver interface {
	ResolveScope(ctx context.Context, companyID, actorID string) (LocationScope, error)
}

// boutiqueResolver grants access to every boutique of the caller's company.
// Deployments with region/group restrictions swap in their own Resolver.
type boutiqueResolver struct {
	db *gorm.DB
}

func NewBoutiqueResolver(db *gorm.DB) Resolver {
	return &boutiqueResolver{db: db}
}

func (r *boutiqueResolver) ResolveScope(ctx context.Context, companyID, actorID string) (LocationScope, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("boutiques").
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Pluck("id", &ids).Error
	if err != nil {
		return LocationScope{}, err
	}
	return LocationScope{CompanyID: companyID, BoutiqueIDs: ids}, nil
}
