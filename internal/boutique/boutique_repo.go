package boutique

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/boutique_repo_mock.go -package=mock . Repository
type Repository interface {
	Create(ctx context.Context, b *Boutique) error
	FindByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*Boutique, error)
	FindByCodeAndCompany(ctx context.Context, companyID uuid.UUID, code string) (*Boutique, error)
	FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]Boutique, error)
	Update(ctx context.Context, b *Boutique) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Boutique) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*Boutique, error) {
	var b Boutique
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByCodeAndCompany(ctx context.Context, companyID uuid.UUID, code string) (*Boutique, error) {
	var b Boutique
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND code = ?", companyID, code).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]Boutique, error) {
	var list []Boutique
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("code ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, b *Boutique) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&Boutique{}, "id = ?", id).Error
}
