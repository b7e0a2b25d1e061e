package domain

// Outcome is a collaborator result: either a real value or a degraded
// stand-in carrying the reason it was substituted.
type Outcome[T any] struct {
	Degraded bool
	Reason   string
	Value    T
}

// Ok wraps a successful collaborator value
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Degrade wraps a fallback value used in place of a failed collaborator
func Degrade[T any](fallback T, reason string) Outcome[T] {
	return Outcome[T]{Degraded: true, Reason: reason, Value: fallback}
}
