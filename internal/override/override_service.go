package override

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-roster/internal/audit"
	"go-roster/internal/employee"
	overrideerrors "go-roster/internal/override/errors"
	"go-roster/internal/roster"
	"go-roster/internal/team"
	"go-roster/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EmployeeDirectory interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

type ScheduleGate interface {
	AssertScheduleEditable(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) error
}

type CoverageInvalidator interface {
	Invalidate(ctx context.Context, companyID string, boutiqueIDs ...uuid.UUID) error
}

//go:generate mockgen -source=override_service.go -destination=mock/override_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, companyID, actorID string, req UpsertOverrideRequest) (OverrideResponse, error)
	Deactivate(ctx context.Context, companyID, actorID, overrideID string) (OverrideResponse, error)
	ApplySuggestion(ctx context.Context, companyID, actorID string, req ApplySuggestionRequest) (ApplySuggestionResponse, error)
	GetActiveByDate(ctx context.Context, companyID, actorID, boutiqueID, date string) ([]OverrideResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	gate      ScheduleGate
	suggester roster.Suggester
	scopes    tenant.Resolver
	auditSink audit.Sink
	coverage  CoverageInvalidator
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	gate ScheduleGate,
	suggester roster.Suggester,
	scopes tenant.Resolver,
	auditSink audit.Sink,
	coverage CoverageInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("override.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("override.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		gate:      gate,
		suggester: suggester,
		scopes:    scopes,
		auditSink: auditSink,
		coverage:  coverage,
		logger:    l,
	}
}

func (s *service) Upsert(ctx context.Context, companyID, actorID string, req UpsertOverrideRequest) (OverrideResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return OverrideResponse{}, overrideerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return OverrideResponse{}, overrideerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return OverrideResponse{}, overrideerrors.ErrInvalidEmployeeID
	}
	if !roster.IsValidOverrideShift(req.Shift) {
		return OverrideResponse{}, overrideerrors.ErrInvalidShift
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return OverrideResponse{}, overrideerrors.ErrInvalidDateFormat
	}
	date = team.Midnight(date)

	isCover := req.Shift == roster.ShiftCoverAM || req.Shift == roster.ShiftCoverPM
	var coverBoutiqueID *uuid.UUID
	if req.CoverBoutiqueID != nil {
		if !isCover {
			return OverrideResponse{}, overrideerrors.ErrCoverBoutiqueNotAllowed
		}
		id, err := uuid.Parse(*req.CoverBoutiqueID)
		if err != nil {
			return OverrideResponse{}, overrideerrors.ErrInvalidBoutiqueID
		}
		coverBoutiqueID = &id
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OverrideResponse{}, overrideerrors.ErrEmployeeNotFound
		}
		return OverrideResponse{}, err
	}

	if err := s.gate.AssertScheduleEditable(ctx, companyID, emp.BoutiqueID, date); err != nil {
		return OverrideResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OverrideResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.LockEmployeeDate(ctx, req.EmployeeID, date); err != nil {
		return OverrideResponse{}, err
	}

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, req.EmployeeID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return OverrideResponse{}, err
	}

	// A suggestion application can flip COVER_X_AM to COVER_X_PM without
	// restating the covered boutique; inherit it from the row being replaced.
	if isCover && coverBoutiqueID == nil {
		if existing != nil && existing.CoverBoutiqueID != nil {
			coverBoutiqueID = existing.CoverBoutiqueID
		} else {
			return OverrideResponse{}, overrideerrors.ErrCoverBoutiqueRequired
		}
	}

	var before any
	var row *ShiftOverride
	if existing != nil {
		before = snapshot(*existing)
		existing.Shift = req.Shift
		existing.CoverBoutiqueID = coverBoutiqueID
		existing.Reason = req.Reason
		existing.IsActive = true
		existing.CreatedBy = actorUUID
		if err := qtx.Update(ctx, existing); err != nil {
			return OverrideResponse{}, err
		}
		row = existing
	} else {
		row = &ShiftOverride{
			ID:              uuid.New(),
			CompanyID:       companyUUID,
			EmployeeID:      employeeUUID,
			Date:            date,
			Shift:           req.Shift,
			CoverBoutiqueID: coverBoutiqueID,
			Reason:          req.Reason,
			IsActive:        true,
			CreatedBy:       actorUUID,
		}
		if err := qtx.Create(ctx, row); err != nil {
			return OverrideResponse{}, err
		}
	}

	if err := s.auditSink.WithTx(tx).Write(ctx, audit.Entry{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     "OVERRIDE_SET",
		EntityType: "shift_override",
		EntityID:   row.ID.String(),
		Before:     before,
		After:      snapshot(*row),
		Reason:     req.Reason,
		Context:    map[string]any{"employee_id": req.EmployeeID, "date": req.Date},
	}); err != nil {
		return OverrideResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OverrideResponse{}, err
	}

	s.invalidateCoverage(ctx, companyID, emp.BoutiqueID, coverBoutiqueID)

	s.logger.Info("shift override set",
		zap.String("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("shift", req.Shift),
	)
	return mapToResponse(*row), nil
}

func (s *service) Deactivate(ctx context.Context, companyID, actorID, overrideID string) (OverrideResponse, error) {
	if _, err := uuid.Parse(overrideID); err != nil {
		return OverrideResponse{}, overrideerrors.ErrInvalidOverrideID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return OverrideResponse{}, overrideerrors.ErrInvalidActorID
	}

	existing, err := s.repo.FindByIDAndCompany(ctx, companyID, overrideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OverrideResponse{}, overrideerrors.ErrOverrideNotFound
		}
		return OverrideResponse{}, err
	}
	if !existing.IsActive {
		return OverrideResponse{}, overrideerrors.ErrOverrideAlreadyRetired
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, existing.EmployeeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OverrideResponse{}, overrideerrors.ErrEmployeeNotFound
		}
		return OverrideResponse{}, err
	}

	if err := s.gate.AssertScheduleEditable(ctx, companyID, emp.BoutiqueID, existing.Date); err != nil {
		return OverrideResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OverrideResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.LockEmployeeDate(ctx, existing.EmployeeID.String(), existing.Date); err != nil {
		return OverrideResponse{}, err
	}

	before := snapshot(*existing)
	existing.IsActive = false
	existing.CreatedBy = actorUUID
	if err := qtx.Update(ctx, existing); err != nil {
		return OverrideResponse{}, err
	}

	if err := s.auditSink.WithTx(tx).Write(ctx, audit.Entry{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     "OVERRIDE_RETIRED",
		EntityType: "shift_override",
		EntityID:   existing.ID.String(),
		Before:     before,
		After:      snapshot(*existing),
		Context:    map[string]any{"employee_id": existing.EmployeeID.String()},
	}); err != nil {
		return OverrideResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OverrideResponse{}, err
	}

	s.invalidateCoverage(ctx, companyID, emp.BoutiqueID, existing.CoverBoutiqueID)

	s.logger.Info("shift override retired",
		zap.String("override_id", overrideID),
		zap.String("employee_id", existing.EmployeeID.String()),
	)
	return mapToResponse(*existing), nil
}

func (s *service) ApplySuggestion(ctx context.Context, companyID, actorID string, req ApplySuggestionRequest) (ApplySuggestionResponse, error) {
	boutiqueUUID, err := uuid.Parse(req.BoutiqueID)
	if err != nil {
		return ApplySuggestionResponse{}, overrideerrors.ErrInvalidBoutiqueID
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return ApplySuggestionResponse{}, overrideerrors.ErrInvalidDateFormat
	}

	scope := tenant.LocationScope{
		CompanyID:   companyID,
		BoutiqueIDs: []uuid.UUID{boutiqueUUID},
	}
	day, _ := time.Parse("2006-01-02", req.Date)

	result, err := s.suggester.Suggest(ctx, scope, day)
	if err != nil {
		return ApplySuggestionResponse{}, err
	}
	if result.Suggestion == nil {
		return ApplySuggestionResponse{
			Applied:     false,
			Explanation: result.Explanation,
		}, nil
	}

	resp, err := s.Upsert(ctx, companyID, actorID, UpsertOverrideRequest{
		EmployeeID: result.Suggestion.EmployeeID.String(),
		Date:       req.Date,
		Shift:      result.Suggestion.ToShift,
		Reason:     result.Explanation,
	})
	if err != nil {
		return ApplySuggestionResponse{}, err
	}

	s.logger.Info("coverage suggestion applied",
		zap.String("boutique_id", req.BoutiqueID),
		zap.String("date", req.Date),
		zap.String("employee_id", resp.EmployeeID),
		zap.String("to_shift", resp.Shift),
	)
	return ApplySuggestionResponse{
		Applied:     true,
		Explanation: result.Explanation,
		Override:    &resp,
	}, nil
}

func (s *service) GetActiveByDate(ctx context.Context, companyID, actorID, boutiqueID, date string) ([]OverrideResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, overrideerrors.ErrInvalidDateFormat
	}
	day = team.Midnight(day)

	scope, err := s.scopes.ResolveScope(ctx, companyID, actorID)
	if err != nil {
		return nil, err
	}
	if boutiqueID != "" {
		boutiqueUUID, err := uuid.Parse(boutiqueID)
		if err != nil {
			return nil, overrideerrors.ErrInvalidBoutiqueID
		}
		if !scope.Contains(boutiqueUUID) {
			return nil, overrideerrors.ErrBoutiqueNotInScope
		}
		scope = tenant.LocationScope{CompanyID: companyID, BoutiqueIDs: []uuid.UUID{boutiqueUUID}}
	}

	rows, err := s.repo.FindActiveByDate(ctx, scope, day)
	if err != nil {
		return nil, err
	}

	resp := make([]OverrideResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, nil
}

func (s *service) invalidateCoverage(ctx context.Context, companyID string, boutiqueID uuid.UUID, coverBoutiqueID *uuid.UUID) {
	boutiques := []uuid.UUID{boutiqueID}
	if coverBoutiqueID != nil && *coverBoutiqueID != boutiqueID {
		boutiques = append(boutiques, *coverBoutiqueID)
	}
	if err := s.coverage.Invalidate(ctx, companyID, boutiques...); err != nil {
		s.logger.Error("override coverage cache invalidation failed",
			zap.String("boutique_id", boutiqueID.String()),
			zap.Error(err),
		)
	}
}

func snapshot(o ShiftOverride) map[string]any {
	snap := map[string]any{
		"shift":     o.Shift,
		"reason":    o.Reason,
		"is_active": o.IsActive,
	}
	if o.CoverBoutiqueID != nil {
		snap["cover_boutique_id"] = o.CoverBoutiqueID.String()
	}
	return snap
}

func mapToResponse(o ShiftOverride) OverrideResponse {
	resp := OverrideResponse{
		ID:         o.ID.String(),
		EmployeeID: o.EmployeeID.String(),
		Date:       o.Date.Format("2006-01-02"),
		Shift:      o.Shift,
		Reason:     o.Reason,
		IsActive:   o.IsActive,
	}
	if o.CoverBoutiqueID != nil {
		v := o.CoverBoutiqueID.String()
		resp.CoverBoutiqueID = &v
	}
	return resp
}
