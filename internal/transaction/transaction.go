package transaction

import (
	"errors"
	"fmt"
	"time"

	txDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/transaction"
	"github.com/shopspring/decimal"
)

// Transaction is the API-facing shape of a ledger row. Amounts serialize as
// JSON numbers, tags as a plain name list.
type Transaction struct {
	ID          int64     `json:"id"`
	Label       string    `json:"label"`
	Type        string    `json:"type"`
	Context     string    `json:"context"`
	Category    string    `json:"category"`
	Amount      Amount    `json:"amount"`
	Date        time.Time `json:"date"`
	IsRecurring bool      `json:"isRecurring"`
	Status      string    `json:"status"`
	UserID      int64     `json:"userId"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var (
	ErrNotFound         = errors.New("transaction not found")
	ErrNotOwner         = errors.New("transaction belongs to another user")
	ErrShareCodeInvalid = errors.New("invalid share code")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Amount wraps a decimal so JSON input may be a number or a numeric string
// while output is always a number.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, err
	}
	return Amount{Decimal: d}, nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	a.Decimal = d
	return nil
}

// Date accepts "2006-01-02" or RFC 3339 on input.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date: %s", s)
	}
	s = s[1 : len(s)-1]

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date: %q", s)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.RFC3339) + `"`), nil
}

func FromDataModel(row *txDatamodel.Transaction) *Transaction {
	tags := make([]string, len(row.Tags))
	for i, tag := range row.Tags {
		tags[i] = tag.Name
	}

	return &Transaction{
		ID:          row.ID,
		Label:       row.Label,
		Type:        row.Type,
		Context:     row.Context,
		Category:    row.Category,
		Amount:      NewAmount(row.Amount),
		Date:        row.Date,
		IsRecurring: row.IsRecurring,
		Status:      row.Status,
		UserID:      row.UserID,
		Tags:        tags,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*txDatamodel.Transaction) []*Transaction {
	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
