package ai

import (
	"context"
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/domain"
	"github.com/ImmortalDemonGod/prime-directive/internal/ports"
)

// MockSummary is the SITREP text returned in mock mode
const MockSummary = "MOCK SITREP: Resume where you left off. NEXT STEP: review the latest diff."

// MockGenerator returns a fixed SITREP without contacting any provider
type MockGenerator struct{}

// Verify interface compliance at compile time
var _ ports.SitrepGenerator = MockGenerator{}

func (MockGenerator) Generate(ctx context.Context, req domain.SitrepRequest) domain.Outcome[string] {
	if req.Human.Objective != "" {
		return domain.Ok(fmt.Sprintf("%s Objective: %s", MockSummary, req.Human.Objective))
	}
	return domain.Ok(MockSummary)
}
