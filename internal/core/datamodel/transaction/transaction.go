package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"

	ContextBusiness = "BUSINESS"
	ContextPersonal = "PERSONAL"

	StatusPaid    = "PAID"
	StatusPending = "PENDING"
)

// Transaction is a single ledger row owned by one user. Category is free
// text, not a foreign key. Tags attach through the transaction_tags join
// table.
type Transaction struct {
	ID          int64           `gorm:"primaryKey"`
	Label       string          `gorm:"column:label;not null"`
	Type        string          `gorm:"column:type;not null"`
	Context     string          `gorm:"column:context;not null"`
	Category    string          `gorm:"column:category;not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Date        time.Time       `gorm:"column:date;not null;index"`
	IsRecurring bool            `gorm:"column:is_recurring;not null;default:false"`
	Status      string          `gorm:"column:status;not null;default:PENDING"`
	UserID      int64           `gorm:"column:user_id;not null;index"`
	Tags        []*Tag          `gorm:"many2many:transaction_tags"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Tag rows are upserted by name on first use and never deleted automatically.
type Tag struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}
