package services

import (
	"context"
	"time"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// UsageReport is the month-to-date AI spend
type UsageReport struct {
	BudgetUSD    float64
	Providers    []domain.UsageSummary
	RemainingUSD float64
	Since        time.Time
	SpentUSD     float64
}

// UsageService reports AI usage against the monthly budget
type UsageService struct {
	budgetUSD float64
	now       func() time.Time
	store     ports.UsageReporter
}

// NewUsageService creates a new UsageService
func NewUsageService(store ports.UsageReporter, budgetUSD float64) *UsageService {
	return &UsageService{
		budgetUSD: budgetUSD,
		now:       time.Now,
		store:     store,
	}
}

// MonthToDate totals usage since the first of the current month (UTC)
func (s *UsageService) MonthToDate(ctx context.Context) (UsageReport, error) {
	since := domain.MonthStart(s.now())
	summaries, err := s.store.SummarizeUsage(ctx, since)
	if err != nil {
		return UsageReport{}, err
	}

	report := UsageReport{
		BudgetUSD: s.budgetUSD,
		Providers: summaries,
		Since:     since,
	}
	for _, p := range summaries {
		report.SpentUSD += p.CostUSD
	}
	report.RemainingUSD = max(s.budgetUSD-report.SpentUSD, 0)
	return report, nil
}
