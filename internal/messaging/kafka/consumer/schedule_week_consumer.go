package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-roster/internal/events"
	"go-roster/internal/roster"
	"go-roster/internal/tenant"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CoverageWarmer is the slice of the roster engine the consumer needs:
// validating a date both checks it and memoizes the result.
type CoverageWarmer interface {
	Validate(ctx context.Context, scope tenant.LocationScope, date time.Time) ([]roster.Violation, error)
}

type CoverageInvalidator interface {
	Invalidate(ctx context.Context, companyID string, boutiqueIDs ...uuid.UUID) error
}

// ConsumeScheduleWeekLifecycle reacts to week approval events. An approved
// week is about to be read heavily by boutique displays and exports, so all
// seven days are validated up front to warm the coverage cache; remaining
// violations are logged for the ops channel. An unapproved week drops the
// boutique's cached coverage instead.
func ConsumeScheduleWeekLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	warmer CoverageWarmer,
	invalidator CoverageInvalidator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.schedule_week")
	log.Info("schedule week lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("schedule week lifecycle consumer stopped")
				return
			}
			log.Error("fetch schedule week message failed", zap.Error(err))
			continue
		}

		var event events.ScheduleWeekLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode schedule week event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := handleWeekEvent(ctx, event, warmer, invalidator, log); err != nil {
			log.Error("handle schedule week event failed",
				zap.String("event_type", event.EventType),
				zap.String("company_id", event.CompanyID),
				zap.String("boutique_id", event.BoutiqueID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit schedule week message failed", zap.Error(err))
			continue
		}
	}
}

func handleWeekEvent(
	ctx context.Context,
	event events.ScheduleWeekLifecycleEvent,
	warmer CoverageWarmer,
	invalidator CoverageInvalidator,
	log *zap.Logger,
) error {
	boutiqueID, err := uuid.Parse(event.BoutiqueID)
	if err != nil {
		// Malformed producer payload, not retryable.
		log.Warn("schedule week event has invalid boutique id",
			zap.String("boutique_id", event.BoutiqueID),
		)
		return nil
	}

	switch event.EventType {
	case events.WeekApproved:
		return warmWeekCoverage(ctx, event, boutiqueID, warmer, log)
	case events.WeekUnapproved:
		return invalidator.Invalidate(ctx, event.CompanyID, boutiqueID)
	default:
		// Lock events carry no coverage consequence.
		return nil
	}
}

func warmWeekCoverage(
	ctx context.Context,
	event events.ScheduleWeekLifecycleEvent,
	boutiqueID uuid.UUID,
	warmer CoverageWarmer,
	log *zap.Logger,
) error {
	weekStart, err := time.Parse("2006-01-02", event.WeekStart)
	if err != nil {
		log.Warn("schedule week event has invalid week start",
			zap.String("week_start", event.WeekStart),
		)
		return nil
	}

	scope := tenant.LocationScope{
		CompanyID:   event.CompanyID,
		BoutiqueIDs: []uuid.UUID{boutiqueID},
	}

	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		violations, err := warmer.Validate(ctx, scope, date)
		if err != nil {
			return err
		}
		if len(violations) > 0 {
			log.Warn("approved week carries coverage violations",
				zap.String("company_id", event.CompanyID),
				zap.String("boutique_id", event.BoutiqueID),
				zap.String("date", date.Format("2006-01-02")),
				zap.Int("violations", len(violations)),
			)
		}
	}

	log.Info("approved week coverage warmed",
		zap.String("company_id", event.CompanyID),
		zap.String("boutique_id", event.BoutiqueID),
		zap.String("week_start", event.WeekStart),
	)
	return nil
}
