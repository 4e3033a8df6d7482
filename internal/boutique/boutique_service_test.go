package boutique_test

import (
	"context"
	"testing"

	"go-roster/internal/boutique"
	boutiqueerrors "go-roster/internal/boutique/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeBoutiqueRepository struct {
	CreateFunc               func(ctx context.Context, b *boutique.Boutique) error
	FindByIDAndCompanyFunc   func(ctx context.Context, companyID, id uuid.UUID) (*boutique.Boutique, error)
	FindByCodeAndCompanyFunc func(ctx context.Context, companyID uuid.UUID, code string) (*boutique.Boutique, error)
	FindAllByCompanyFunc     func(ctx context.Context, companyID uuid.UUID) ([]boutique.Boutique, error)
	UpdateFunc               func(ctx context.Context, b *boutique.Boutique) error
	DeleteFunc               func(ctx context.Context, companyID, id uuid.UUID) error
}

func (f *fakeBoutiqueRepository) Create(ctx context.Context, b *boutique.Boutique) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, b)
	}
	return nil
}

func (f *fakeBoutiqueRepository) FindByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*boutique.Boutique, error) {
	if f.FindByIDAndCompanyFunc != nil {
		return f.FindByIDAndCompanyFunc(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBoutiqueRepository) FindByCodeAndCompany(ctx context.Context, companyID uuid.UUID, code string) (*boutique.Boutique, error) {
	if f.FindByCodeAndCompanyFunc != nil {
		return f.FindByCodeAndCompanyFunc(ctx, companyID, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBoutiqueRepository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]boutique.Boutique, error) {
	if f.FindAllByCompanyFunc != nil {
		return f.FindAllByCompanyFunc(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeBoutiqueRepository) Update(ctx context.Context, b *boutique.Boutique) error {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, b)
	}
	return nil
}

func (f *fakeBoutiqueRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, companyID, id)
	}
	return nil
}

type recordingInvalidator struct {
	calls [][]uuid.UUID
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, companyID string, boutiqueIDs ...uuid.UUID) error {
	r.calls = append(r.calls, boutiqueIDs)
	return nil
}

func TestBoutiqueService_Create(t *testing.T) {
	companyID := uuid.New()

	t.Run("creates with default timezone", func(t *testing.T) {
		repo := &fakeBoutiqueRepository{
			CreateFunc: func(ctx context.Context, b *boutique.Boutique) error {
				b.ID = uuid.New()
				return nil
			},
		}
		svc := boutique.NewService(repo, &recordingInvalidator{}, zap.NewNop())

		resp, err := svc.Create(context.Background(), companyID.String(), boutique.CreateBoutiqueRequest{
			Name: "Orchard Road",
			Code: "SG01",
		})

		assert.NoError(t, err)
		assert.Equal(t, "SG01", resp.Code)
		assert.Equal(t, "UTC", resp.Timezone)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := &fakeBoutiqueRepository{
			FindByCodeAndCompanyFunc: func(ctx context.Context, _ uuid.UUID, code string) (*boutique.Boutique, error) {
				return &boutique.Boutique{Code: code}, nil
			},
		}
		svc := boutique.NewService(repo, &recordingInvalidator{}, zap.NewNop())

		_, err := svc.Create(context.Background(), companyID.String(), boutique.CreateBoutiqueRequest{
			Name: "Orchard Road",
			Code: "SG01",
		})

		assert.ErrorIs(t, err, boutiqueerrors.ErrBoutiqueCodeTaken)
	})

	t.Run("rejects malformed company id", func(t *testing.T) {
		svc := boutique.NewService(&fakeBoutiqueRepository{}, &recordingInvalidator{}, zap.NewNop())

		_, err := svc.Create(context.Background(), "not-a-uuid", boutique.CreateBoutiqueRequest{
			Name: "Orchard Road",
			Code: "SG01",
		})

		assert.ErrorIs(t, err, boutiqueerrors.ErrInvalidCompanyID)
	})
}

func TestBoutiqueService_Update(t *testing.T) {
	companyID := uuid.New()
	boutiqueID := uuid.New()

	existing := func() *boutique.Boutique {
		return &boutique.Boutique{
			ID:        boutiqueID,
			CompanyID: companyID,
			Name:      "Orchard Road",
			Code:      "SG01",
			Timezone:  "Asia/Singapore",
			IsActive:  true,
		}
	}

	t.Run("deactivation invalidates coverage", func(t *testing.T) {
		repo := &fakeBoutiqueRepository{
			FindByIDAndCompanyFunc: func(ctx context.Context, _, _ uuid.UUID) (*boutique.Boutique, error) {
				return existing(), nil
			},
		}
		invalidator := &recordingInvalidator{}
		svc := boutique.NewService(repo, invalidator, zap.NewNop())

		inactive := false
		resp, err := svc.Update(context.Background(), companyID.String(), boutiqueID.String(), boutique.UpdateBoutiqueRequest{
			IsActive: &inactive,
		})

		assert.NoError(t, err)
		assert.False(t, resp.IsActive)
		assert.Len(t, invalidator.calls, 1)
		assert.Equal(t, []uuid.UUID{boutiqueID}, invalidator.calls[0])
	})

	t.Run("rename keeps coverage untouched", func(t *testing.T) {
		repo := &fakeBoutiqueRepository{
			FindByIDAndCompanyFunc: func(ctx context.Context, _, _ uuid.UUID) (*boutique.Boutique, error) {
				return existing(), nil
			},
		}
		invalidator := &recordingInvalidator{}
		svc := boutique.NewService(repo, invalidator, zap.NewNop())

		resp, err := svc.Update(context.Background(), companyID.String(), boutiqueID.String(), boutique.UpdateBoutiqueRequest{
			Name: "Marina Bay",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Marina Bay", resp.Name)
		assert.Empty(t, invalidator.calls)
	})

	t.Run("missing boutique", func(t *testing.T) {
		svc := boutique.NewService(&fakeBoutiqueRepository{}, &recordingInvalidator{}, zap.NewNop())

		_, err := svc.Update(context.Background(), companyID.String(), boutiqueID.String(), boutique.UpdateBoutiqueRequest{
			Name: "Marina Bay",
		})

		assert.ErrorIs(t, err, boutiqueerrors.ErrBoutiqueNotFound)
	})
}

func TestBoutiqueService_Delete(t *testing.T) {
	companyID := uuid.New()
	boutiqueID := uuid.New()

	t.Run("deletes and invalidates coverage", func(t *testing.T) {
		deleted := false
		repo := &fakeBoutiqueRepository{
			FindByIDAndCompanyFunc: func(ctx context.Context, _, _ uuid.UUID) (*boutique.Boutique, error) {
				return &boutique.Boutique{ID: boutiqueID, CompanyID: companyID}, nil
			},
			DeleteFunc: func(ctx context.Context, _, _ uuid.UUID) error {
				deleted = true
				return nil
			},
		}
		invalidator := &recordingInvalidator{}
		svc := boutique.NewService(repo, invalidator, zap.NewNop())

		err := svc.Delete(context.Background(), companyID.String(), boutiqueID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.Len(t, invalidator.calls, 1)
	})

	t.Run("missing boutique", func(t *testing.T) {
		svc := boutique.NewService(&fakeBoutiqueRepository{}, &recordingInvalidator{}, zap.NewNop())

		err := svc.Delete(context.Background(), companyID.String(), boutiqueID.String())

		assert.ErrorIs(t, err, boutiqueerrors.ErrBoutiqueNotFound)
	})
}
