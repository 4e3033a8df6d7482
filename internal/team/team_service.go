package team

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-roster/internal/audit"
	"go-roster/internal/employee"
	teamerrors "go-roster/internal/team/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeDirectory is the slice of the employee repository this service
// needs: existence plus boutique lookup.
type EmployeeDirectory interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

// ScheduleGate answers whether a date may be mutated. Satisfied by the
// schedule lock service.
type ScheduleGate interface {
	AssertScheduleEditable(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) error
}

// CoverageInvalidator clears memoized coverage validations after a roster
// bucket may have changed.
type CoverageInvalidator interface {
	Invalidate(ctx context.Context, companyID string, boutiqueIDs ...uuid.UUID) error
}

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	ChangeTeam(ctx context.Context, companyID, actorID string, req ChangeTeamRequest) (ChangeTeamResponse, error)
	GetTimeline(ctx context.Context, companyID, employeeID string) ([]TimelineEntryResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeDirectory
	gate      ScheduleGate
	auditSink audit.Sink
	coverage  CoverageInvalidator
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeDirectory,
	gate ScheduleGate,
	auditSink audit.Sink,
	coverage CoverageInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		gate:      gate,
		auditSink: auditSink,
		coverage:  coverage,
		logger:    l,
	}
}

func (s *service) ChangeTeam(ctx context.Context, companyID, actorID string, req ChangeTeamRequest) (ChangeTeamResponse, error) {
	s.logger.Debug("change team requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("new_team", req.NewTeam),
		zap.String("effective_from", req.EffectiveFrom),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ChangeTeamResponse{}, teamerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ChangeTeamResponse{}, teamerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ChangeTeamResponse{}, teamerrors.ErrInvalidEmployeeID
	}
	if !IsValidTeam(req.NewTeam) {
		return ChangeTeamResponse{}, teamerrors.ErrInvalidTeam
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return ChangeTeamResponse{}, teamerrors.ErrInvalidDateFormat
	}
	effectiveFrom = Midnight(effectiveFrom)

	today := Midnight(time.Now())
	if effectiveFrom.Before(today) {
		return ChangeTeamResponse{}, teamerrors.ErrEffectiveFromInPast
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ChangeTeamResponse{}, teamerrors.ErrEmployeeNotFound
		}
		return ChangeTeamResponse{}, err
	}

	// Week lock first, then day lock, both against the target date.
	if err := s.gate.AssertScheduleEditable(ctx, companyID, emp.BoutiqueID, effectiveFrom); err != nil {
		s.logger.Warn("change team blocked by schedule lock",
			zap.String("employee_id", req.EmployeeID),
			zap.String("effective_from", req.EffectiveFrom),
			zap.Error(err),
		)
		return ChangeTeamResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("change team begin tx failed", zap.Error(err))
		return ChangeTeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Serialize on the employee so two concurrent reassignments cannot both
	// pass the "after the latest effective date" check against a stale read.
	if err := qtx.LockEmployee(ctx, req.EmployeeID); err != nil {
		s.logger.Error("change team advisory lock failed", zap.Error(err))
		return ChangeTeamResponse{}, err
	}

	timeline, err := qtx.FindTimeline(ctx, companyID, req.EmployeeID)
	if err != nil {
		return ChangeTeamResponse{}, err
	}

	var previousTeam *string
	if current, ok := timeline.TeamAsOf(today); ok {
		if current == req.NewTeam {
			return ChangeTeamResponse{}, teamerrors.ErrSameTeam
		}
		previousTeam = &current
	}

	if latest := timeline.Latest(); latest != nil && !effectiveFrom.After(latest.EffectiveFrom) {
		return ChangeTeamResponse{}, teamerrors.ErrNotAfterLastChange
	}

	assignment := &TeamAssignment{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		Team:          req.NewTeam,
		EffectiveFrom: effectiveFrom,
		Reason:        req.Reason,
		CreatedBy:     actorUUID,
	}
	if err := qtx.AppendAssignment(ctx, assignment); err != nil {
		s.logger.Error("change team append assignment failed", zap.Error(err))
		return ChangeTeamResponse{}, err
	}

	history := &TeamHistory{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		FromTeam:      previousTeam,
		ToTeam:        req.NewTeam,
		EffectiveFrom: effectiveFrom,
		Reason:        req.Reason,
		CreatedBy:     actorUUID,
	}
	if err := qtx.AppendHistory(ctx, history); err != nil {
		s.logger.Error("change team append history failed", zap.Error(err))
		return ChangeTeamResponse{}, err
	}

	if err := s.auditSink.WithTx(tx).Write(ctx, audit.Entry{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     "TEAM_REASSIGNED",
		EntityType: "team_assignment",
		EntityID:   assignment.ID.String(),
		Before:     map[string]any{"team": previousTeam},
		After:      map[string]any{"team": req.NewTeam, "effective_from": req.EffectiveFrom},
		Reason:     req.Reason,
		Context:    map[string]any{"employee_id": req.EmployeeID},
	}); err != nil {
		s.logger.Error("change team audit write failed", zap.Error(err))
		return ChangeTeamResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("change team commit failed", zap.Error(err))
		return ChangeTeamResponse{}, err
	}

	if err := s.coverage.Invalidate(ctx, companyID, emp.BoutiqueID); err != nil {
		s.logger.Error("change team coverage cache invalidation failed",
			zap.String("boutique_id", emp.BoutiqueID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("change team success",
		zap.String("employee_id", req.EmployeeID),
		zap.String("new_team", req.NewTeam),
		zap.String("effective_from", req.EffectiveFrom),
	)

	return ChangeTeamResponse{
		EmployeeID:    req.EmployeeID,
		PreviousTeam:  previousTeam,
		NewTeam:       req.NewTeam,
		EffectiveFrom: effectiveFrom.Format("2006-01-02"),
	}, nil
}

func (s *service) GetTimeline(ctx context.Context, companyID, employeeID string) ([]TimelineEntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, teamerrors.ErrInvalidEmployeeID
	}

	timeline, err := s.repo.FindTimeline(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}

	resp := make([]TimelineEntryResponse, len(timeline))
	for i, a := range timeline {
		resp[i] = TimelineEntryResponse{
			Team:          a.Team,
			EffectiveFrom: a.EffectiveFrom.Format("2006-01-02"),
			Reason:        a.Reason,
			CreatedBy:     a.CreatedBy.String(),
			CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}
