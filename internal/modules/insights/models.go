package insights

import "time"

// Kind classifies an insight
type Kind string

const (
	KindRecommendation Kind = "recommendation"
	KindWarning        Kind = "warning"
	KindOpportunity    Kind = "opportunity"
	KindRisk           Kind = "risk"
	KindPerformance    Kind = "performance"
)

// Priority orders insights for display
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank returns the numeric ordering of a priority, higher is more urgent
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Insight is a generated, prioritized finding about the portfolio. Insights
// are immutable once created; marking one read flips the IsRead flag, it is
// never rewritten.
type Insight struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	Priority       Priority  `json:"priority"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Recommendation string    `json:"recommendation,omitempty"`
	RelatedSymbols []string  `json:"related_symbols"`
	CreatedAt      time.Time `json:"created_at"`
	IsRead         bool      `json:"is_read"`
}

// IsHighPriority reports whether the insight is high or critical priority
func (i Insight) IsHighPriority() bool {
	return i.Priority == PriorityHigh || i.Priority == PriorityCritical
}
