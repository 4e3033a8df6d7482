package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"go-roster/internal/audit"
	"go-roster/internal/boutique"
	"go-roster/internal/coveragerule"
	"go-roster/internal/employee"
	"go-roster/internal/export"
	"go-roster/internal/leave"
	"go-roster/internal/messaging/kafka"
	"go-roster/internal/override"
	"go-roster/internal/rbac"
	"go-roster/internal/rbac/infra"
	"go-roster/internal/rbac/rbac_http"
	"go-roster/internal/roster"
	"go-roster/internal/schedulelock"
	"go-roster/internal/shared/counter"
	"go-roster/internal/team"
	"go-roster/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	boutiqueRepo := boutique.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	coverageRuleRepo := coveragerule.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	overrideRepo := override.NewRepository(gormDB)
	rosterRepo := roster.NewRepository(gormDB)
	scheduleLockRepo := schedulelock.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Shared Infrastructure ---
	auditSink := audit.NewGormSink(gormDB)
	coverageCache := roster.NewCoverageCache(rdb)
	scopeResolver := tenant.NewBoutiqueResolver(gormDB)

	// --- Roster Engine ---
	coverageRuleService := coveragerule.NewService(db, coverageRuleRepo, scopeResolver, auditSink, coverageCache)
	var policyStore roster.PolicyStore = coverageRuleService
	if rulesURL := os.Getenv("RULES_SERVICE_URL"); rulesURL != "" {
		policyStore = coveragerule.NewRemotePolicyStore(rulesURL, coverageRuleService)
	}
	rosterResolver := roster.NewResolver(rosterRepo, roster.StaticTeamShiftPolicy)
	coverageValidator := roster.NewValidator(rosterResolver, policyStore, coverageCache)
	coverageSuggester := roster.NewSuggester(rosterResolver, coverageValidator)

	// --- Services ---
	boutiqueService := boutique.NewService(boutiqueRepo, coverageCache)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, auditSink, coverageCache)
	rosterService := roster.NewService(scopeResolver, rosterResolver, coverageValidator, coverageSuggester)
	scheduleLockService := schedulelock.NewService(db, scheduleLockRepo, auditSink, outboxRepo)
	teamService := team.NewService(db, teamRepo, employeeRepo, scheduleLockService, auditSink, coverageCache)
	overrideService := override.NewService(db, overrideRepo, employeeRepo, scheduleLockService, coverageSuggester, scopeResolver, auditSink, coverageCache)
	exportService := export.NewService(rosterService)

	// --- Handlers ---
	boutiqueHandler := boutique.NewHandler(boutiqueService)
	coverageRuleHandler := coveragerule.NewHandler(coverageRuleService)
	employeeHandler := employee.NewHandler(employeeService)
	exportHandler := export.NewHandler(exportService)
	leaveHandler := leave.NewHandler(leaveService)
	overrideHandler := override.NewHandler(overrideService)
	rosterHandler := roster.NewHandler(rosterService)
	rbacHandler := rbac.NewHandler(rbacService)
	scheduleLockHandler := schedulelock.NewHandler(scheduleLockService)
	teamHandler := team.NewHandler(teamService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		boutique.RegisterRoutes(api, boutiqueHandler, rbacService)
		coveragerule.RegisterRoutes(api, coverageRuleHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		export.RegisterRoutes(api, exportHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		override.RegisterRoutes(api, overrideHandler, rbacService)
		roster.RegisterRoutes(api, rosterHandler, rbacService)
		schedulelock.RegisterRoutes(api, scheduleLockHandler, rbacService)
		team.RegisterRoutes(api, teamHandler, rbacService)
		rbac_http.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
