package team_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-roster/internal/audit"
	"go-roster/internal/employee"
	schedulelockerrors "go-roster/internal/schedulelock/errors"
	"go-roster/internal/team"
	teamerrors "go-roster/internal/team/errors"
	"go-roster/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTeamRepository struct {
	lockEmployeeFn     func(ctx context.Context, employeeID string) error
	appendAssignmentFn func(ctx context.Context, a *team.TeamAssignment) error
	appendHistoryFn    func(ctx context.Context, h *team.TeamHistory) error
	findTimelineFn     func(ctx context.Context, companyID, employeeID string) (team.Timeline, error)
}

func (f *fakeTeamRepository) WithTx(tx *sql.Tx) team.Repository { return f }

func (f *fakeTeamRepository) LockEmployee(ctx context.Context, employeeID string) error {
	if f.lockEmployeeFn != nil {
		return f.lockEmployeeFn(ctx, employeeID)
	}
	return nil
}

func (f *fakeTeamRepository) AppendAssignment(ctx context.Context, a *team.TeamAssignment) error {
	if f.appendAssignmentFn != nil {
		return f.appendAssignmentFn(ctx, a)
	}
	return nil
}

func (f *fakeTeamRepository) AppendHistory(ctx context.Context, h *team.TeamHistory) error {
	if f.appendHistoryFn != nil {
		return f.appendHistoryFn(ctx, h)
	}
	return nil
}

func (f *fakeTeamRepository) FindTimeline(ctx context.Context, companyID, employeeID string) (team.Timeline, error) {
	if f.findTimelineFn != nil {
		return f.findTimelineFn(ctx, companyID, employeeID)
	}
	return nil, nil
}

func (f *fakeTeamRepository) LatestEffectiveFrom(ctx context.Context, companyID, employeeID string) (*time.Time, error) {
	return nil, nil
}

func (f *fakeTeamRepository) FindAllByScope(ctx context.Context, scope tenant.LocationScope) ([]team.TeamAssignment, error) {
	return nil, nil
}

type fakeEmployeeDirectory struct {
	findFn func(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeDirectory) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findFn != nil {
		return f.findFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeScheduleGate struct {
	assertFn func(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) error
}

func (f *fakeScheduleGate) AssertScheduleEditable(ctx context.Context, companyID string, boutiqueID uuid.UUID, date time.Time) error {
	if f.assertFn != nil {
		return f.assertFn(ctx, companyID, boutiqueID, date)
	}
	return nil
}

type fakeCoverageInvalidator struct {
	invalidated [][]uuid.UUID
}

func (f *fakeCoverageInvalidator) Invalidate(ctx context.Context, companyID string, boutiqueIDs ...uuid.UUID) error {
	f.invalidated = append(f.invalidated, boutiqueIDs)
	return nil
}

type recordingAuditSink struct {
	entries []audit.Entry
}

func (s *recordingAuditSink) WithTx(tx *sql.Tx) audit.Sink { return s }

func (s *recordingAuditSink) Write(ctx context.Context, entry audit.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

type teamServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	repo     *fakeTeamRepository
	emps     *fakeEmployeeDirectory
	gate     *fakeScheduleGate
	sink     *recordingAuditSink
	coverage *fakeCoverageInvalidator
	service  team.Service
}

func setupTeamServiceTest(t *testing.T) *teamServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTeamRepository{}
	emps := &fakeEmployeeDirectory{}
	gate := &fakeScheduleGate{}
	sink := &recordingAuditSink{}
	coverage := &fakeCoverageInvalidator{}
	svc := team.NewService(db, repo, emps, gate, sink, coverage)

	return &teamServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     repo,
		emps:     emps,
		gate:     gate,
		sink:     sink,
		coverage: coverage,
		service:  svc,
	}
}

func activeEmployee(companyID, employeeID, boutiqueID uuid.UUID) *employee.Employee {
	return &employee.Employee{
		ID:               employeeID,
		CompanyID:        companyID,
		BoutiqueID:       boutiqueID,
		EmployeeNumber:   "EMP-000042",
		EmploymentStatus: employee.StatusActive,
	}
}

func TestTeamService_ChangeTeam(t *testing.T) {
	deps := setupTeamServiceTest(t)
	ctx := context.Background()

	companyID := uuid.New()
	actorID := uuid.New()
	employeeID := uuid.New()
	boutiqueID := uuid.New()
	effectiveFrom := team.Midnight(time.Now()).AddDate(0, 0, 7).Format("2006-01-02")

	deps.emps.findFn = func(ctx context.Context, cID, id string) (*employee.Employee, error) {
		assert.Equal(t, companyID.String(), cID)
		assert.Equal(t, employeeID.String(), id)
		return activeEmployee(companyID, employeeID, boutiqueID), nil
	}
	deps.repo.findTimelineFn = func(ctx context.Context, _, _ string) (team.Timeline, error) {
		return team.Timeline{{
			Team:          team.TeamA,
			EffectiveFrom: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC),
		}}, nil
	}

	var gotAssignment *team.TeamAssignment
	deps.repo.appendAssignmentFn = func(ctx context.Context, a *team.TeamAssignment) error {
		gotAssignment = a
		return nil
	}
	var gotHistory *team.TeamHistory
	deps.repo.appendHistoryFn = func(ctx context.Context, h *team.TeamHistory) error {
		gotHistory = h
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.ChangeTeam(ctx, companyID.String(), actorID.String(), team.ChangeTeamRequest{
		EmployeeID:    employeeID.String(),
		NewTeam:       team.TeamB,
		EffectiveFrom: effectiveFrom,
		Reason:        "rebalancing evening coverage",
	})

	assert.NoError(t, err)
	assert.Equal(t, team.TeamB, resp.NewTeam)
	assert.NotNil(t, resp.PreviousTeam)
	assert.Equal(t, team.TeamA, *resp.PreviousTeam)
	assert.Equal(t, effectiveFrom, resp.EffectiveFrom)

	assert.NotNil(t, gotAssignment)
	assert.Equal(t, team.TeamB, gotAssignment.Team)
	assert.NotNil(t, gotHistory)
	assert.Equal(t, team.TeamA, *gotHistory.FromTeam)

	assert.Len(t, deps.sink.entries, 1)
	assert.Equal(t, "TEAM_REASSIGNED", deps.sink.entries[0].Action)

	assert.Len(t, deps.coverage.invalidated, 1)
	assert.Equal(t, []uuid.UUID{boutiqueID}, deps.coverage.invalidated[0])
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTeamService_ChangeTeam_FirstAssignment(t *testing.T) {
	deps := setupTeamServiceTest(t)
	ctx := context.Background()

	companyID := uuid.New()
	employeeID := uuid.New()
	boutiqueID := uuid.New()

	deps.emps.findFn = func(ctx context.Context, _, _ string) (*employee.Employee, error) {
		return activeEmployee(companyID, employeeID, boutiqueID), nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.ChangeTeam(ctx, companyID.String(), uuid.New().String(), team.ChangeTeamRequest{
		EmployeeID:    employeeID.String(),
		NewTeam:       team.TeamA,
		EffectiveFrom: team.Midnight(time.Now()).Format("2006-01-02"),
		Reason:        "initial team assignment",
	})

	assert.NoError(t, err)
	assert.Nil(t, resp.PreviousTeam, "no prior history means no previous team")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTeamService_ChangeTeam_ValidationErrors(t *testing.T) {
	companyID := uuid.New()
	employeeID := uuid.New()
	boutiqueID := uuid.New()
	future := team.Midnight(time.Now()).AddDate(0, 0, 1).Format("2006-01-02")

	cases := []struct {
		name    string
		setup   func(deps *teamServiceDeps)
		req     team.ChangeTeamRequest
		wantErr error
		usesTx  bool
	}{
		{
			name: "invalid team",
			req: team.ChangeTeamRequest{
				EmployeeID: employeeID.String(), NewTeam: "C",
				EffectiveFrom: future, Reason: "x",
			},
			wantErr: teamerrors.ErrInvalidTeam,
		},
		{
			name: "bad date format",
			req: team.ChangeTeamRequest{
				EmployeeID: employeeID.String(), NewTeam: team.TeamA,
				EffectiveFrom: "31-08-2026", Reason: "x",
			},
			wantErr: teamerrors.ErrInvalidDateFormat,
		},
		{
			name: "effective date in the past",
			req: team.ChangeTeamRequest{
				EmployeeID: employeeID.String(), NewTeam: team.TeamA,
				EffectiveFrom: "2020-01-04", Reason: "x",
			},
			wantErr: teamerrors.ErrEffectiveFromInPast,
		},
		{
			name: "unknown employee",
			setup: func(deps *teamServiceDeps) {
				deps.emps.findFn = func(ctx context.Context, _, _ string) (*employee.Employee, error) {
					return nil, gorm.ErrRecordNotFound
				}
			},
			req: team.ChangeTeamRequest{
				EmployeeID: employeeID.String(), NewTeam: team.TeamA,
				EffectiveFrom: future, Reason: "x",
			},
			wantErr: teamerrors.ErrEmployeeNotFound,
		},
		{
			name: "same team is a no-op conflict",
			setup: func(deps *teamServiceDeps) {
				deps.emps.findFn = func(ctx context.Context, _, _ string) (*employee.Employee, error) {
					return activeEmployee(companyID, employeeID, boutiqueID), nil
				}
				deps.repo.findTimelineFn = func(ctx context.Context, _, _ string) (team.Timeline, error) {
					return team.Timeline{{
						Team:          team.TeamA,
						EffectiveFrom: team.Midnight(time.Now()).AddDate(0, -1, 0),
					}}, nil
				}
			},
			req: team.ChangeTeamRequest{
				EmployeeID: employeeID.String(), NewTeam: team.TeamA,
				EffectiveFrom: future, Reason: "x",
			},
			wantErr: teamerrors.ErrSameTeam,
			usesTx:  true,
		},
		{
			// Current team resolves to A (the B row is still in the
			// future), so requesting B reaches the ordering check.
			name: "not after latest scheduled change",
			setup: func(deps *teamServiceDeps) {
				deps.emps.findFn = func(ctx context.Context, _, _ string) (*employee.Employee, error) {
					return activeEmployee(companyID, employeeID, boutiqueID), nil
				}
				deps.repo.findTimelineFn = func(ctx context.Context, _, _ string) (team.Timeline, error) {
					return team.Timeline{
						{Team: team.TeamA, EffectiveFrom: team.Midnight(time.Now()).AddDate(0, -1, 0)},
						{Team: team.TeamB, EffectiveFrom: team.Midnight(time.Now()).AddDate(0, 1, 0)},
					}, nil
				}
			},
			req: team.ChangeTeamRequest{
				EmployeeID: employeeID.String(), NewTeam: team.TeamB,
				EffectiveFrom: future, Reason: "x",
			},
			wantErr: teamerrors.ErrNotAfterLastChange,
			usesTx:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			deps := setupTeamServiceTest(t)
			if tc.setup != nil {
				tc.setup(deps)
			}
			if tc.usesTx {
				deps.sqlMock.ExpectBegin()
				deps.sqlMock.ExpectRollback()
			}

			_, err := deps.service.ChangeTeam(context.Background(), companyID.String(), uuid.New().String(), tc.req)

			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, deps.sink.entries)
			assert.Empty(t, deps.coverage.invalidated)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestTeamService_ChangeTeam_BlockedBySchedule(t *testing.T) {
	deps := setupTeamServiceTest(t)
	ctx := context.Background()

	companyID := uuid.New()
	employeeID := uuid.New()
	boutiqueID := uuid.New()

	deps.emps.findFn = func(ctx context.Context, _, _ string) (*employee.Employee, error) {
		return activeEmployee(companyID, employeeID, boutiqueID), nil
	}
	deps.gate.assertFn = func(ctx context.Context, _ string, gotBoutique uuid.UUID, _ time.Time) error {
		assert.Equal(t, boutiqueID, gotBoutique)
		return schedulelockerrors.ErrWeekLocked
	}

	_, err := deps.service.ChangeTeam(ctx, companyID.String(), uuid.New().String(), team.ChangeTeamRequest{
		EmployeeID:    employeeID.String(),
		NewTeam:       team.TeamB,
		EffectiveFrom: team.Midnight(time.Now()).AddDate(0, 0, 3).Format("2006-01-02"),
		Reason:        "rebalance",
	})

	assert.ErrorIs(t, err, schedulelockerrors.ErrWeekLocked)
	assert.Empty(t, deps.sink.entries)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTimeline_TeamAsOf(t *testing.T) {
	jan3 := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	mar7 := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	timeline := team.Timeline{
		{Team: team.TeamA, EffectiveFrom: jan3},
		{Team: team.TeamB, EffectiveFrom: mar7},
	}

	cases := []struct {
		name  string
		date  time.Time
		want  string
		found bool
	}{
		{"before any assignment", jan3.AddDate(0, 0, -1), "", false},
		{"on first effective date", jan3, team.TeamA, true},
		{"between changes", mar7.AddDate(0, 0, -1), team.TeamA, true},
		{"on second effective date", mar7, team.TeamB, true},
		{"long after", mar7.AddDate(1, 0, 0), team.TeamB, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := timeline.TeamAsOf(tc.date)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
