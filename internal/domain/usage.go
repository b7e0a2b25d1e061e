package domain

import "time"

// AIUsage records one call to a paid or local AI provider
type AIUsage struct {
	CostUSD      float64
	ID           int64
	InputTokens  int
	Model        string
	OutputTokens int
	Provider     string
	RepositoryID string
	Success      bool
	Timestamp    time.Time
}

// Tokens returns the total token count of the call
func (u AIUsage) Tokens() int {
	return u.InputTokens + u.OutputTokens
}

// UsageSummary aggregates AI usage for one provider
type UsageSummary struct {
	Calls    int
	CostUSD  float64
	Failures int
	Provider string
	Tokens   int
}

// MonthStart returns the first instant of t's month in UTC
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
