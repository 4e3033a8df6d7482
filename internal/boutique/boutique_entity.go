package boutique

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Boutique struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_boutique_code"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Code      string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_boutique_code"`
	Timezone  string    `gorm:"type:varchar(50);not null;default:'UTC'"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Boutique) TableName() string {
	return "boutiques"
}
