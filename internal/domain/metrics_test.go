package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToCommit(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	at := func(m int) time.Time { return base.Add(time.Duration(m) * time.Minute) }

	events := []Event{
		{ID: 1, Kind: EventSwitchIn, RepositoryID: "alpha", Timestamp: at(0)},
		{ID: 2, Kind: EventCommit, RepositoryID: "beta", Timestamp: at(1)},
		{ID: 3, Kind: EventSwitchIn, RepositoryID: "alpha", Timestamp: at(5)},
		{ID: 4, Kind: EventCommit, RepositoryID: "alpha", Timestamp: at(15)},
		{ID: 5, Kind: EventCommit, RepositoryID: "alpha", Timestamp: at(20)},
		{ID: 6, Kind: EventSwitchIn, RepositoryID: "beta", Timestamp: at(30)},
		{ID: 7, Kind: EventCommit, RepositoryID: "beta", Timestamp: at(32)},
	}

	got := TimeToCommit(events)

	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].RepositoryID)
	assert.Equal(t, 10*time.Minute, got[0].Elapsed)
	assert.Equal(t, "beta", got[1].RepositoryID)
	assert.Equal(t, 2*time.Minute, got[1].Elapsed)
}

func TestSummarizeLatencies(t *testing.T) {
	latencies := []CommitLatency{
		{RepositoryID: "alpha", Elapsed: 10 * time.Minute},
		{RepositoryID: "alpha", Elapsed: 30 * time.Minute},
		{RepositoryID: "alpha", Elapsed: 20 * time.Minute},
		{RepositoryID: "beta", Elapsed: 4 * time.Minute},
		{RepositoryID: "beta", Elapsed: 2 * time.Minute},
	}

	got := SummarizeLatencies(latencies)

	require.Len(t, got, 2)
	assert.Equal(t, LatencySummary{Count: 3, Max: 30 * time.Minute, Mean: 20 * time.Minute, Median: 20 * time.Minute, RepositoryID: "alpha"}, got[0])
	assert.Equal(t, LatencySummary{Count: 2, Max: 4 * time.Minute, Mean: 3 * time.Minute, Median: 3 * time.Minute, RepositoryID: "beta"}, got[1])
}
