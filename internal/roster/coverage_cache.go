package roster

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go-roster/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const coverageCacheTTL = 15 * time.Minute

// CoverageCache memoizes validation results per (company, scope, date).
// Every key is indexed under each boutique in its scope so a mutation can
// invalidate by boutique without knowing which scopes were validated.
type CoverageCache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewCoverageCache(rdb *redis.Client, logger ...*zap.Logger) *CoverageCache {
	l := zap.L().Named("roster.coverage_cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("roster.coverage_cache")
	}
	return &CoverageCache{rdb: rdb, logger: l}
}

func coverageKey(scope tenant.LocationScope, date time.Time) string {
	return fmt.Sprintf("coverage:%s:%s:%s", scope.CompanyID, scopeHash(scope), date.Format("2006-01-02"))
}

func coverageIndexKey(companyID string, boutiqueID uuid.UUID) string {
	return fmt.Sprintf("coverage:index:%s:%s", companyID, boutiqueID)
}

func scopeHash(scope tenant.LocationScope) string {
	ids := make([]string, len(scope.BoutiqueIDs))
	for i, id := range scope.BoutiqueIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)
	sum := sha1.Sum([]byte(strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:8])
}

func (c *CoverageCache) Get(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]Violation, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, coverageKey(scope, date)).Result()
	if err != nil {
		return nil, false
	}
	var violations []Violation
	if err := json.Unmarshal([]byte(raw), &violations); err != nil {
		return nil, false
	}
	return violations, true
}

func (c *CoverageCache) Set(ctx context.Context, scope tenant.LocationScope, date time.Time, violations []Violation) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(violations)
	if err != nil {
		return
	}

	key := coverageKey(scope, date)
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, key, raw, coverageCacheTTL)
	for _, boutiqueID := range scope.BoutiqueIDs {
		indexKey := coverageIndexKey(scope.CompanyID, boutiqueID)
		pipe.SAdd(ctx, indexKey, key)
		pipe.Expire(ctx, indexKey, coverageCacheTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Error("failed to cache coverage result", zap.Error(err), zap.String("key", key))
	}
}

// Invalidate drops every memoized validation whose scope included any of
// the given boutiques. Called by every mutation that can change a roster
// bucket: override writes, leave transitions, team reassignment.
func (c *CoverageCache) Invalidate(ctx context.Context, companyID string, boutiqueIDs ...uuid.UUID) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	for _, boutiqueID := range boutiqueIDs {
		indexKey := coverageIndexKey(companyID, boutiqueID)
		keys, err := c.rdb.SMembers(ctx, indexKey).Result()
		if err != nil {
			return err
		}
		keys = append(keys, indexKey)
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			return err
		}
		c.logger.Debug("coverage cache invalidated",
			zap.String("boutique_id", boutiqueID.String()),
			zap.Int("keys", len(keys)-1),
		)
	}
	return nil
}
