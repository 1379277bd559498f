package transaction

import (
	"strings"

	errors "github.com/frahmantamala/finance-dashboard/internal"
	"github.com/frahmantamala/finance-dashboard/internal/core/common/validation"
	txDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/transaction"
)

// TransactionDTO is the request payload for creating and replacing
// transactions. Amount accepts a number or a numeric string; date accepts
// "2006-01-02" or RFC 3339.
type TransactionDTO struct {
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Context     string   `json:"context"`
	Category    string   `json:"category"`
	Amount      Amount   `json:"amount"`
	Date        Date     `json:"date"`
	IsRecurring *bool    `json:"isRecurring,omitempty"`
	Status      string   `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (dto TransactionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("label", dto.Label).Required()
	v.Field("type", dto.Type).
		Required().
		OneOf(errors.ErrCodeInvalidType, txDatamodel.TypeIncome, txDatamodel.TypeExpense)
	v.Field("context", dto.Context).
		Required().
		OneOf(errors.ErrCodeInvalidContext, txDatamodel.ContextBusiness, txDatamodel.ContextPersonal)
	v.Field("category", dto.Category).Required()
	v.Field("amount", dto.Amount.Decimal).PositiveAmount()
	v.Field("date", dto.Date.Time).Required()
	v.Field("status", dto.Status).
		OneOf(errors.ErrCodeInvalidStatus, txDatamodel.StatusPaid, txDatamodel.StatusPending)
	return v.Validate()
}

// NormalizedStatus defaults missing statuses to PENDING.
func (dto TransactionDTO) NormalizedStatus() string {
	if dto.Status == "" {
		return txDatamodel.StatusPending
	}
	return dto.Status
}

func (dto TransactionDTO) Recurring() bool {
	return dto.IsRecurring != nil && *dto.IsRecurring
}

// NormalizedTags trims names, drops empties and dedupes while preserving
// first-seen order.
func (dto TransactionDTO) NormalizedTags() []string {
	seen := make(map[string]bool, len(dto.Tags))
	var result []string
	for _, name := range dto.Tags {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

// ListFilters are the query parameters accepted by the listing endpoint.
type ListFilters struct {
	Month   int
	Year    int
	Context string
	Type    string
}
