package coveragerule

import (
	"time"

	"github.com/google/uuid"
)

// CoverageRule configures minimum headcounts for one weekday. A row with a
// nil BoutiqueID is the company-wide default; a boutique row overrides it.
type CoverageRule struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_coverage_rules_lookup"`

	BoutiqueID *uuid.UUID `gorm:"type:uuid;index:idx_coverage_rules_lookup"`
	DayOfWeek  int        `gorm:"type:smallint;not null;index:idx_coverage_rules_lookup"`

	MinAM   int  `gorm:"type:int;not null;default:0"`
	MinPM   int  `gorm:"type:int;not null;default:0"`
	Enabled bool `gorm:"not null;default:true"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CoverageRule) TableName() string {
	return "coverage_rules"
}

// Defaults applied when no rule row matches: two openers, evening floor
// comes from the validator.
const (
	DefaultMinAM = 2
	DefaultMinPM = 0
)
