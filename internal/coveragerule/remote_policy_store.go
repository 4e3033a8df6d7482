package coveragerule

import (
	"context"
	"fmt"
	"time"

	"go-roster/internal/roster"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RemotePolicyStore fetches effective rules from a central policy service.
// Deployments that manage coverage policy in one place point the validator
// here instead of at the local rule table; any failure falls back to the
// given local store so validation never hard-fails on policy fetch.
type RemotePolicyStore struct {
	client   *resty.Client
	fallback roster.PolicyStore
	logger   *zap.Logger
}

type remoteRuleResponse struct {
	MinAM int `json:"min_am"`
	MinPM int `json:"min_pm"`
}

func NewRemotePolicyStore(baseURL string, fallback roster.PolicyStore, logger ...*zap.Logger) *RemotePolicyStore {
	l := zap.L().Named("coveragerule.remote_store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("coveragerule.remote_store")
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(3 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond)
	return &RemotePolicyStore{client: client, fallback: fallback, logger: l}
}

func (s *RemotePolicyStore) EffectiveRule(ctx context.Context, companyID string, boutiqueID *uuid.UUID, weekday time.Weekday) (roster.Limits, error) {
	var body remoteRuleResponse
	req := s.client.R().
		SetContext(ctx).
		SetQueryParam("company_id", companyID).
		SetQueryParam("day_of_week", fmt.Sprintf("%d", int(weekday))).
		SetResult(&body)
	if boutiqueID != nil {
		req.SetQueryParam("boutique_id", boutiqueID.String())
	}

	resp, err := req.Get("/coverage-rules/effective")
	if err != nil || resp.IsError() {
		status := 0
		if resp != nil {
			status = resp.StatusCode()
		}
		s.logger.Warn("remote policy fetch failed, using local rules",
			zap.Error(err),
			zap.Int("status", status),
		)
		return s.fallback.EffectiveRule(ctx, companyID, boutiqueID, weekday)
	}

	return roster.Limits{MinAM: body.MinAM, MinPM: body.MinPM}, nil
}
