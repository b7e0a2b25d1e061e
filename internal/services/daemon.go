package services

import (
	"context"
	"sync"
	"time"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/logging"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// DaemonConfig controls the auto-freeze loop
type DaemonConfig struct {
	Inactivity time.Duration
	Interval   time.Duration
}

// DaemonNotice is reported for each notable daemon action
type DaemonNotice struct {
	Err          error
	Message      string
	RepositoryID string
}

type repoActivity struct {
	frozen     bool
	lastActive time.Time
}

// DaemonService freezes repositories that have been idle for longer than
// the inactivity limit and records commit events for the time-to-commit KPI.
type DaemonService struct {
	config   DaemonConfig
	events   ports.EventWriter
	freezer  *FreezeService
	metrics  *DaemonMetrics
	mu       sync.Mutex
	now      func() time.Time
	notify   func(DaemonNotice)
	registry *domain.Registry
	source   ports.ActivitySource
	state    map[string]*repoActivity
}

// NewDaemonService creates a DaemonService over the repositories source is
// watching. notify may be nil.
func NewDaemonService(
	registry *domain.Registry,
	source ports.ActivitySource,
	freezer *FreezeService,
	events ports.EventWriter,
	config DaemonConfig,
	notify func(DaemonNotice),
) *DaemonService {
	if notify == nil {
		notify = func(DaemonNotice) {}
	}
	d := &DaemonService{
		config:   config,
		events:   events,
		freezer:  freezer,
		metrics:  NewDaemonMetrics(),
		now:      time.Now,
		notify:   notify,
		registry: registry,
		source:   source,
		state:    make(map[string]*repoActivity),
	}

	start := d.now()
	for _, id := range source.Watching() {
		d.state[id] = &repoActivity{lastActive: start}
	}
	d.metrics.WatchedRepos.Set(float64(len(d.state)))
	return d
}

// Run consumes activity and checks for idle repositories every interval
// until ctx is cancelled. It returns after the activity source has stopped.
func (d *DaemonService) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.source.Run(ctx)
	}()
	defer wg.Wait()

	ticker := time.NewTicker(d.config.Interval)
	defer ticker.Stop()

	events := d.source.Events()
	for {
		select {
		case <-ctx.Done():
			logging.Logger.Info("Daemon stopping")
			return nil
		case a, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			d.Observe(ctx, a)
		case <-ticker.C:
			d.Check(ctx)
		}
	}
}

// Observe records one activity. Any activity unfreezes the repository;
// commits are also appended to the event log.
func (d *DaemonService) Observe(ctx context.Context, a domain.Activity) {
	d.mu.Lock()
	st, ok := d.state[a.RepositoryID]
	if !ok {
		st = &repoActivity{}
		d.state[a.RepositoryID] = st
	}
	wasFrozen := st.frozen
	st.lastActive = a.Timestamp
	st.frozen = false
	d.mu.Unlock()

	d.metrics.ActivityTotal.WithLabelValues(a.RepositoryID, a.Kind.String()).Inc()
	d.metrics.LastActivity.WithLabelValues(a.RepositoryID).Set(float64(a.Timestamp.Unix()))
	if wasFrozen {
		logging.Logger.Debug("Activity detected, unfreezing", "repo_id", a.RepositoryID)
	}

	if a.Kind != domain.ActivityCommit {
		return
	}
	_, err := d.events.LogEvent(ctx, domain.Event{
		Kind:         domain.EventCommit,
		RepositoryID: a.RepositoryID,
		Timestamp:    a.Timestamp,
	})
	if err != nil {
		logging.Logger.Warn("Failed to record commit event", "repo_id", a.RepositoryID, "error", err)
		d.notify(DaemonNotice{Err: err, Message: "failed to record commit", RepositoryID: a.RepositoryID})
		return
	}
	d.metrics.CommitsTotal.WithLabelValues(a.RepositoryID).Inc()
	d.notify(DaemonNotice{Message: "commit recorded", RepositoryID: a.RepositoryID})
}

// Check freezes every repository idle for longer than the inactivity
// limit that is not already frozen. A failed freeze is retried on the
// next check.
func (d *DaemonService) Check(ctx context.Context) {
	now := d.now()

	d.mu.Lock()
	var idle []string
	for id, st := range d.state {
		if !st.frozen && now.Sub(st.lastActive) > d.config.Inactivity {
			idle = append(idle, id)
		}
	}
	d.mu.Unlock()

	for _, id := range idle {
		repo, err := d.registry.Lookup(id)
		if err != nil {
			continue
		}

		d.notify(DaemonNotice{Message: "inactive, freezing", RepositoryID: id})
		if _, err := d.freezer.Freeze(ctx, repo, domain.HumanContext{}); err != nil {
			logging.Logger.Warn("Auto-freeze failed", "repo_id", id, "error", err)
			d.metrics.FreezesTotal.WithLabelValues(id, "error").Inc()
			d.notify(DaemonNotice{Err: err, Message: "freeze failed", RepositoryID: id})
			continue
		}

		d.mu.Lock()
		// Activity that arrived during the freeze wins
		if st := d.state[id]; !st.lastActive.After(now) {
			st.frozen = true
		}
		d.mu.Unlock()

		d.metrics.FreezesTotal.WithLabelValues(id, "ok").Inc()
		d.notify(DaemonNotice{Message: "frozen", RepositoryID: id})
	}
}

// Frozen reports whether the daemon considers id frozen
func (d *DaemonService) Frozen(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.state[id]
	return ok && st.frozen
}
