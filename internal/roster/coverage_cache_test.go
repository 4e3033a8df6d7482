package roster_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"go-roster/internal/roster"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func testCoverageKey() (string, string) {
	sum := sha1.Sum([]byte(testBoutiqueID.String()))
	hash := hex.EncodeToString(sum[:8])
	key := fmt.Sprintf("coverage:%s:%s:%s", testCompanyID, hash, monday.Format("2006-01-02"))
	indexKey := fmt.Sprintf("coverage:index:%s:%s", testCompanyID, testBoutiqueID)
	return key, indexKey
}

func TestCoverageCache_SetAndGet(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := roster.NewCoverageCache(rdb)
	key, indexKey := testCoverageKey()

	violations := []roster.Violation{{Type: roster.ViolationMinPM, Message: "evening headcount 1 is below the required minimum 2"}}
	raw, err := json.Marshal(violations)
	assert.NoError(t, err)

	mock.ExpectTxPipeline()
	mock.ExpectSet(key, raw, 15*time.Minute).SetVal("OK")
	mock.ExpectSAdd(indexKey, key).SetVal(1)
	mock.ExpectExpire(indexKey, 15*time.Minute).SetVal(true)
	mock.ExpectTxPipelineExec()

	cache.Set(context.Background(), testScope(), monday, violations)

	mock.ExpectGet(key).SetVal(string(raw))
	got, ok := cache.Get(context.Background(), testScope(), monday)

	assert.True(t, ok)
	assert.Equal(t, violations, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoverageCache_GetMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := roster.NewCoverageCache(rdb)
	key, _ := testCoverageKey()

	mock.ExpectGet(key).RedisNil()

	_, ok := cache.Get(context.Background(), testScope(), monday)

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoverageCache_InvalidateByBoutique(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := roster.NewCoverageCache(rdb)
	key, indexKey := testCoverageKey()

	mock.ExpectSMembers(indexKey).SetVal([]string{key})
	mock.ExpectDel(key, indexKey).SetVal(2)

	err := cache.Invalidate(context.Background(), testCompanyID.String(), testBoutiqueID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
