package domain

import (
	"sort"
	"time"
)

// CommitLatency is the time from entering a repository to its next commit
type CommitLatency struct {
	CommittedAt  time.Time
	Elapsed      time.Duration
	RepositoryID string
	SwitchedAt   time.Time
}

// LatencySummary aggregates commit latencies for one repository
type LatencySummary struct {
	Count        int
	Max          time.Duration
	Mean         time.Duration
	Median       time.Duration
	RepositoryID string
}

// TimeToCommit pairs each commit with the most recent unpaired switch-in of
// the same repository. Switch-ins never followed by a commit are dropped.
func TimeToCommit(events []Event) []CommitLatency {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	pending := make(map[string]time.Time)
	var out []CommitLatency
	for _, ev := range sorted {
		switch ev.Kind {
		case EventSwitchIn:
			pending[ev.RepositoryID] = ev.Timestamp
		case EventCommit:
			start, ok := pending[ev.RepositoryID]
			if !ok {
				continue
			}
			delete(pending, ev.RepositoryID)
			out = append(out, CommitLatency{
				CommittedAt:  ev.Timestamp,
				Elapsed:      ev.Timestamp.Sub(start),
				RepositoryID: ev.RepositoryID,
				SwitchedAt:   start,
			})
		}
	}
	return out
}

// SummarizeLatencies groups latencies per repository, ordered by id
func SummarizeLatencies(latencies []CommitLatency) []LatencySummary {
	byRepo := make(map[string][]time.Duration)
	for _, l := range latencies {
		byRepo[l.RepositoryID] = append(byRepo[l.RepositoryID], l.Elapsed)
	}

	out := make([]LatencySummary, 0, len(byRepo))
	for id, ds := range byRepo {
		sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })
		var total time.Duration
		for _, d := range ds {
			total += d
		}
		median := ds[len(ds)/2]
		if len(ds)%2 == 0 {
			median = (ds[len(ds)/2-1] + ds[len(ds)/2]) / 2
		}
		out = append(out, LatencySummary{
			Count:        len(ds),
			Max:          ds[len(ds)-1],
			Mean:         total / time.Duration(len(ds)),
			Median:       median,
			RepositoryID: id,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RepositoryID < out[j].RepositoryID })
	return out
}
