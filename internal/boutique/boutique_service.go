package boutique

import (
	"context"
	"errors"

	boutiqueerrors "go-roster/internal/boutique/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CoverageInvalidator drops memoized coverage results for a boutique.
// Satisfied by the roster coverage cache.
type CoverageInvalidator interface {
	Invalidate(ctx context.Context, companyID string, boutiqueIDs ...uuid.UUID) error
}

//go:generate mockgen -destination=mock/boutique_service_mock.go -package=mock . Service
type Service interface {
	Create(ctx context.Context, companyID string, req CreateBoutiqueRequest) (BoutiqueResponse, error)
	GetAll(ctx context.Context, companyID string) ([]BoutiqueResponse, error)
	GetByID(ctx context.Context, companyID, id string) (BoutiqueResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateBoutiqueRequest) (BoutiqueResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	repo     Repository
	coverage CoverageInvalidator
	logger   *zap.Logger
}

func NewService(repo Repository, coverage CoverageInvalidator, logger ...*zap.Logger) Service {
	l := zap.L().Named("boutique.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("boutique.service")
	}
	return &service{repo: repo, coverage: coverage, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateBoutiqueRequest) (BoutiqueResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BoutiqueResponse{}, boutiqueerrors.ErrInvalidCompanyID
	}

	if _, err := s.repo.FindByCodeAndCompany(ctx, companyUUID, req.Code); err == nil {
		return BoutiqueResponse{}, boutiqueerrors.ErrBoutiqueCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return BoutiqueResponse{}, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	b := &Boutique{
		CompanyID: companyUUID,
		Name:      req.Name,
		Code:      req.Code,
		Timezone:  tz,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("create boutique failed",
			zap.String("company_id", companyID),
			zap.String("code", req.Code),
			zap.Error(err),
		)
		return BoutiqueResponse{}, err
	}

	s.logger.Info("boutique created",
		zap.String("company_id", companyID),
		zap.String("boutique_id", b.ID.String()),
		zap.String("code", b.Code),
	)
	return mapToResponse(b), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]BoutiqueResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, boutiqueerrors.ErrInvalidCompanyID
	}

	list, err := s.repo.FindAllByCompany(ctx, companyUUID)
	if err != nil {
		return nil, err
	}

	out := make([]BoutiqueResponse, 0, len(list))
	for i := range list {
		out = append(out, mapToResponse(&list[i]))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (BoutiqueResponse, error) {
	companyUUID, boutiqueUUID, err := parseIDs(companyID, id)
	if err != nil {
		return BoutiqueResponse{}, err
	}

	b, err := s.repo.FindByIDAndCompany(ctx, companyUUID, boutiqueUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BoutiqueResponse{}, boutiqueerrors.ErrBoutiqueNotFound
		}
		return BoutiqueResponse{}, err
	}
	return mapToResponse(b), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateBoutiqueRequest) (BoutiqueResponse, error) {
	companyUUID, boutiqueUUID, err := parseIDs(companyID, id)
	if err != nil {
		return BoutiqueResponse{}, err
	}

	b, err := s.repo.FindByIDAndCompany(ctx, companyUUID, boutiqueUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BoutiqueResponse{}, boutiqueerrors.ErrBoutiqueNotFound
		}
		return BoutiqueResponse{}, err
	}

	deactivated := false
	if req.Name != "" {
		b.Name = req.Name
	}
	if req.Timezone != "" {
		b.Timezone = req.Timezone
	}
	if req.IsActive != nil {
		deactivated = b.IsActive && !*req.IsActive
		b.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return BoutiqueResponse{}, err
	}

	// A deactivated boutique no longer appears in anyone's scope, so its
	// memoized coverage results are stale.
	if deactivated {
		s.invalidateCoverage(ctx, companyID, boutiqueUUID)
	}
	return mapToResponse(b), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	companyUUID, boutiqueUUID, err := parseIDs(companyID, id)
	if err != nil {
		return err
	}

	if _, err := s.repo.FindByIDAndCompany(ctx, companyUUID, boutiqueUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return boutiqueerrors.ErrBoutiqueNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, companyUUID, boutiqueUUID); err != nil {
		return err
	}

	s.invalidateCoverage(ctx, companyID, boutiqueUUID)
	s.logger.Info("boutique deleted",
		zap.String("company_id", companyID),
		zap.String("boutique_id", id),
	)
	return nil
}

func (s *service) invalidateCoverage(ctx context.Context, companyID string, boutiqueID uuid.UUID) {
	if s.coverage == nil {
		return
	}
	if err := s.coverage.Invalidate(ctx, companyID, boutiqueID); err != nil {
		s.logger.Error("invalidate coverage after boutique change failed",
			zap.String("company_id", companyID),
			zap.String("boutique_id", boutiqueID.String()),
			zap.Error(err),
		)
	}
}

func parseIDs(companyID, id string) (uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, boutiqueerrors.ErrInvalidCompanyID
	}
	boutiqueUUID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, uuid.Nil, boutiqueerrors.ErrInvalidBoutiqueID
	}
	return companyUUID, boutiqueUUID, nil
}

func mapToResponse(b *Boutique) BoutiqueResponse {
	return BoutiqueResponse{
		ID:       b.ID.String(),
		Name:     b.Name,
		Code:     b.Code,
		Timezone: b.Timezone,
		IsActive: b.IsActive,
	}
}
