package calculation

import (
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize aggregates a deposit list into dashboard totals
func Summarize(deposits []domain.Deposit) domain.DashboardSummary {
	summary := domain.DashboardSummary{TotalMaturityValueActive: decimal.Zero}
	for _, d := range deposits {
		switch d.Status {
		case domain.StatusActive:
			summary.TotalActiveFDs++
			summary.TotalMaturityValueActive = summary.TotalMaturityValueActive.Add(d.MaturityAmount)
		case domain.StatusClosed:
			summary.TotalClosedFDs++
		}
	}
	return summary
}
