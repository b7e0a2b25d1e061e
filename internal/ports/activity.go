package ports

import (
	"context"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
)

// ActivitySource streams repository activity to the daemon
type ActivitySource interface {
	// Events is closed when Run returns
	Events() <-chan domain.Activity
	// Run blocks until ctx is cancelled
	Run(ctx context.Context)
	Watching() []string
}
