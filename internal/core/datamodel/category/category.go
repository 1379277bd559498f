package category

import "time"

// Context values partition categories between the business and personal
// ledgers; BOTH marks a category usable in either.
const (
	ContextBusiness = "BUSINESS"
	ContextPersonal = "PERSONAL"
	ContextBoth     = "BOTH"
)

type Category struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Context   string    `gorm:"column:context;not null;default:BOTH"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
