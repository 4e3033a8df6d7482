package coveragerule_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-roster/internal/audit"
	"go-roster/internal/coveragerule"
	coveragerulerrors "go-roster/internal/coveragerule/errors"
	"go-roster/internal/roster"
	"go-roster/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRuleRepo struct {
	rules       map[string]*coveragerule.CoverageRule
	createFn    func(ctx context.Context, r *coveragerule.CoverageRule) error
	updateFn    func(ctx context.Context, r *coveragerule.CoverageRule) error
	txFindRules int
}

func ruleKey(boutiqueID *uuid.UUID, dayOfWeek int) string {
	if boutiqueID == nil {
		return string(rune('0'+dayOfWeek)) + ":global"
	}
	return string(rune('0'+dayOfWeek)) + ":" + boutiqueID.String()
}

func (f *fakeRuleRepo) WithTx(tx *sql.Tx) coveragerule.Repository {
	return &txBoundRuleRepo{f}
}

// txBoundRuleRepo records reads made through the transaction-bound repo so
// tests can tell them apart from reads on the bare repo.
type txBoundRuleRepo struct {
	*fakeRuleRepo
}

func (r *txBoundRuleRepo) FindRule(ctx context.Context, companyID string, boutiqueID *uuid.UUID, dayOfWeek int) (*coveragerule.CoverageRule, error) {
	r.txFindRules++
	return r.fakeRuleRepo.FindRule(ctx, companyID, boutiqueID, dayOfWeek)
}

func (f *fakeRuleRepo) FindRule(ctx context.Context, companyID string, boutiqueID *uuid.UUID, dayOfWeek int) (*coveragerule.CoverageRule, error) {
	if rule, ok := f.rules[ruleKey(boutiqueID, dayOfWeek)]; ok {
		return rule, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRuleRepo) FindAllByCompany(ctx context.Context, companyID string) ([]coveragerule.CoverageRule, error) {
	var out []coveragerule.CoverageRule
	for _, rule := range f.rules {
		out = append(out, *rule)
	}
	return out, nil
}

func (f *fakeRuleRepo) Create(ctx context.Context, r *coveragerule.CoverageRule) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeRuleRepo) Update(ctx context.Context, r *coveragerule.CoverageRule) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

type fakeScopeResolver struct {
	scope tenant.LocationScope
}

func (f *fakeScopeResolver) ResolveScope(ctx context.Context, companyID, actorID string) (tenant.LocationScope, error) {
	return f.scope, nil
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

type ruleServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	repo     *fakeRuleRepo
	scopes   *fakeScopeResolver
	sink     *recordingAuditSink
	coverage *fakeCoverageInvalidator
	service  coveragerule.Service
}

func setupRuleServiceTest(t *testing.T) *ruleServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeRuleRepo{rules: map[string]*coveragerule.CoverageRule{}}
	scopes := &fakeScopeResolver{}
	sink := &recordingAuditSink{}
	coverage := &fakeCoverageInvalidator{}
	svc := coveragerule.NewService(db, repo, scopes, sink, coverage)

	return &ruleServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     repo,
		scopes:   scopes,
		sink:     sink,
		coverage: coverage,
		service:  svc,
	}
}

func TestRuleService_EffectiveRule(t *testing.T) {
	companyID := uuid.New()
	boutiqueID := uuid.New()
	monday := time.Monday

	t.Run("boutique rule wins over global", func(t *testing.T) {
		deps := setupRuleServiceTest(t)
		deps.repo.rules[ruleKey(&boutiqueID, int(monday))] = &coveragerule.CoverageRule{
			MinAM: 3, MinPM: 4, Enabled: true,
		}
		deps.repo.rules[ruleKey(nil, int(monday))] = &coveragerule.CoverageRule{
			MinAM: 1, MinPM: 1, Enabled: true,
		}

		limits, err := deps.service.EffectiveRule(context.Background(), companyID.String(), &boutiqueID, monday)

		assert.NoError(t, err)
		assert.Equal(t, roster.Limits{MinAM: 3, MinPM: 4}, limits)
	})

	t.Run("disabled boutique rule falls through to global", func(t *testing.T) {
		deps := setupRuleServiceTest(t)
		deps.repo.rules[ruleKey(&boutiqueID, int(monday))] = &coveragerule.CoverageRule{
			MinAM: 3, MinPM: 4, Enabled: false,
		}
		deps.repo.rules[ruleKey(nil, int(monday))] = &coveragerule.CoverageRule{
			MinAM: 1, MinPM: 1, Enabled: true,
		}

		limits, err := deps.service.EffectiveRule(context.Background(), companyID.String(), &boutiqueID, monday)

		assert.NoError(t, err)
		assert.Equal(t, roster.Limits{MinAM: 1, MinPM: 1}, limits)
	})

	t.Run("no rows yields defaults", func(t *testing.T) {
		deps := setupRuleServiceTest(t)

		limits, err := deps.service.EffectiveRule(context.Background(), companyID.String(), &boutiqueID, monday)

		assert.NoError(t, err)
		assert.Equal(t, roster.Limits{MinAM: coveragerule.DefaultMinAM, MinPM: coveragerule.DefaultMinPM}, limits)
	})

	t.Run("nil boutique asks only for the global rule", func(t *testing.T) {
		deps := setupRuleServiceTest(t)
		deps.repo.rules[ruleKey(nil, int(monday))] = &coveragerule.CoverageRule{
			MinAM: 5, MinPM: 6, Enabled: true,
		}

		limits, err := deps.service.EffectiveRule(context.Background(), companyID.String(), nil, monday)

		assert.NoError(t, err)
		assert.Equal(t, roster.Limits{MinAM: 5, MinPM: 6}, limits)
	})
}

func TestRuleService_UpsertRule(t *testing.T) {
	deps := setupRuleServiceTest(t)
	ctx := context.Background()

	companyID := uuid.New()
	actorID := uuid.New()
	boutiqueID := uuid.New()
	boutiqueIDStr := boutiqueID.String()

	var created *coveragerule.CoverageRule
	deps.repo.createFn = func(ctx context.Context, r *coveragerule.CoverageRule) error {
		created = r
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	resp, err := deps.service.UpsertRule(ctx, companyID.String(), actorID.String(), coveragerule.UpsertRuleRequest{
		BoutiqueID: &boutiqueIDStr,
		DayOfWeek:  int(time.Monday),
		MinAM:      1,
		MinPM:      3,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.MinAM)
	assert.Equal(t, 3, resp.MinPM)
	assert.True(t, resp.Enabled)
	assert.NotNil(t, created)
	assert.Equal(t, 1, deps.repo.txFindRules)

	assert.Len(t, deps.sink.entries, 1)
	assert.Equal(t, "COVERAGE_RULE_SET", deps.sink.entries[0].Action)
	assert.Len(t, deps.coverage.invalidated, 1)
	assert.Equal(t, []uuid.UUID{boutiqueID}, deps.coverage.invalidated[0])
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRuleService_UpsertRule_GlobalInvalidatesWholeScope(t *testing.T) {
	deps := setupRuleServiceTest(t)
	ctx := context.Background()

	companyID := uuid.New()
	b1, b2 := uuid.New(), uuid.New()
	deps.scopes.scope = tenant.LocationScope{
		CompanyID:   companyID.String(),
		BoutiqueIDs: []uuid.UUID{b1, b2},
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	_, err := deps.service.UpsertRule(ctx, companyID.String(), uuid.New().String(), coveragerule.UpsertRuleRequest{
		DayOfWeek: int(time.Friday),
		MinAM:     0,
		MinPM:     2,
	})

	assert.NoError(t, err)
	assert.Len(t, deps.coverage.invalidated, 1)
	assert.ElementsMatch(t, []uuid.UUID{b1, b2}, deps.coverage.invalidated[0])
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRuleService_UpsertRule_Validation(t *testing.T) {
	deps := setupRuleServiceTest(t)

	_, err := deps.service.UpsertRule(context.Background(), uuid.New().String(), uuid.New().String(), coveragerule.UpsertRuleRequest{
		DayOfWeek: 7,
	})
	assert.ErrorIs(t, err, coveragerulerrors.ErrInvalidDayOfWeek)

	_, err = deps.service.UpsertRule(context.Background(), uuid.New().String(), uuid.New().String(), coveragerule.UpsertRuleRequest{
		DayOfWeek: 1,
		MinAM:     -1,
	})
	assert.ErrorIs(t, err, coveragerulerrors.ErrNegativeMinimum)
}
