// Package report computes derived views over transaction lists: recency,
// per-context balances and cumulative balance series. All math runs on
// decimals so client totals match the stored amounts exactly.
package report

import (
	"sort"
	"time"

	txDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-dashboard/internal/transaction"
	"github.com/shopspring/decimal"
)

// Balances holds per-context net balances, income minus expense.
type Balances struct {
	Business decimal.Decimal `json:"business"`
	Personal decimal.Decimal `json:"personal"`
}

// SeriesPoint is one step of a cumulative balance series.
type SeriesPoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// Recent returns the n most recent transactions by date, newest first. The
// input slice is not modified.
func Recent(txs []*transaction.Transaction, n int) []*transaction.Transaction {
	sorted := make([]*transaction.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// MonthlyExpenses sums expense amounts whose date falls in ref's month.
func MonthlyExpenses(txs []*transaction.Transaction, ref time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type != txDatamodel.TypeExpense {
			continue
		}
		if tx.Date.Year() == ref.Year() && tx.Date.Month() == ref.Month() {
			total = total.Add(tx.Amount.Decimal)
		}
	}
	return total
}

// ComputeBalances nets income against expense per context.
func ComputeBalances(txs []*transaction.Transaction) Balances {
	return Balances{
		Business: BalanceByContext(txs, txDatamodel.ContextBusiness),
		Personal: BalanceByContext(txs, txDatamodel.ContextPersonal),
	}
}

func BalanceByContext(txs []*transaction.Transaction, context string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Context != context {
			continue
		}
		total = total.Add(signed(tx))
	}
	return total
}

// BalanceSeries produces a running balance over time, one point per
// transaction, oldest first. An optional context narrows the series.
func BalanceSeries(txs []*transaction.Transaction, context string) []SeriesPoint {
	filtered := make([]*transaction.Transaction, 0, len(txs))
	for _, tx := range txs {
		if context != "" && tx.Context != context {
			continue
		}
		filtered = append(filtered, tx)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})

	series := make([]SeriesPoint, 0, len(filtered))
	running := decimal.Zero
	for _, tx := range filtered {
		running = running.Add(signed(tx))
		series = append(series, SeriesPoint{Date: tx.Date, Balance: running})
	}
	return series
}

func signed(tx *transaction.Transaction) decimal.Decimal {
	if tx.Type == txDatamodel.TypeIncome {
		return tx.Amount.Decimal
	}
	return tx.Amount.Decimal.Neg()
}
