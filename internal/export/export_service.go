package export

import (
	"context"
	"fmt"
	"time"

	"go-roster/internal/roster"
	rostererrors "go-roster/internal/roster/errors"
	"go-roster/internal/schedulelock"

	"go.uber.org/zap"
)

//go:generate mockgen -source=export_service.go -destination=export_service_mock.go -package=export

// WeeklyRosterFile is the rendered workbook plus its download name.
type WeeklyRosterFile struct {
	Filename string
	Content  []byte
}

type Service interface {
	WeeklyRoster(ctx context.Context, companyID, actorID, boutiqueID, date string) (WeeklyRosterFile, error)
}

type service struct {
	roster roster.Service
	logger *zap.Logger
}

func NewService(rosterService roster.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("export.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.service")
	}
	return &service{roster: rosterService, logger: l}
}

// WeeklyRoster resolves the Saturday week containing date and renders all
// seven days into one workbook. Any date inside the week selects the same
// file.
func (s *service) WeeklyRoster(ctx context.Context, companyID, actorID, boutiqueID, date string) (WeeklyRosterFile, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return WeeklyRosterFile{}, rostererrors.ErrInvalidDateFormat
	}
	weekStart := schedulelock.WeekStart(parsed)

	days := make([]DaySection, 0, 7)
	for offset := 0; offset < 7; offset++ {
		day := weekStart.AddDate(0, 0, offset).Format("2006-01-02")

		resolved, err := s.roster.ResolveRoster(ctx, companyID, actorID, boutiqueID, day)
		if err != nil {
			return WeeklyRosterFile{}, err
		}
		coverage, err := s.roster.ValidateCoverage(ctx, companyID, actorID, boutiqueID, day)
		if err != nil {
			return WeeklyRosterFile{}, err
		}

		days = append(days, DaySection{Roster: resolved, Coverage: coverage})
	}

	content, err := BuildWeeklyRosterWorkbook(days)
	if err != nil {
		s.logger.Error("build weekly roster workbook failed",
			zap.String("company_id", companyID),
			zap.String("boutique_id", boutiqueID),
			zap.Error(err),
		)
		return WeeklyRosterFile{}, err
	}

	s.logger.Info("weekly roster exported",
		zap.String("company_id", companyID),
		zap.String("boutique_id", boutiqueID),
		zap.String("week_start", weekStart.Format("2006-01-02")),
	)

	return WeeklyRosterFile{
		Filename: fmt.Sprintf("roster_%s_week_%s.xlsx", boutiqueID, weekStart.Format("2006-01-02")),
		Content:  content,
	}, nil
}
