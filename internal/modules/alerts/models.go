package alerts

import (
	"math"
	"time"
)

// Condition is the comparison an alert watches for
type Condition string

const (
	ConditionAbove  Condition = "above"
	ConditionBelow  Condition = "below"
	ConditionEquals Condition = "equals"
)

// Valid reports whether the condition is a known comparison
func (c Condition) Valid() bool {
	switch c {
	case ConditionAbove, ConditionBelow, ConditionEquals:
		return true
	}
	return false
}

// Status is the lifecycle state of an alert
type Status string

const (
	StatusActive    Status = "active"
	StatusTriggered Status = "triggered"
	StatusCancelled Status = "cancelled"
)

// equalsTolerance is the band within which a price counts as equal to the
// target. Quotes are rounded to cents, so a cent of slack is enough.
const equalsTolerance = 0.01

// Alert is a standing price watch on one symbol. Once triggered it stays in
// the list with the fill price recorded; it does not re-arm.
type Alert struct {
	ID             string     `json:"id"`
	Symbol         string     `json:"symbol"`
	Condition      Condition  `json:"condition"`
	TargetPrice    float64    `json:"target_price"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	TriggeredAt    *time.Time `json:"triggered_at,omitempty"`
	PriceAtTrigger float64    `json:"price_at_trigger,omitempty"`
}

// ShouldTrigger reports whether the given price satisfies the alert
// condition.
func (a Alert) ShouldTrigger(price float64) bool {
	switch a.Condition {
	case ConditionAbove:
		return price >= a.TargetPrice
	case ConditionBelow:
		return price <= a.TargetPrice
	case ConditionEquals:
		return math.Abs(price-a.TargetPrice) < equalsTolerance
	}
	return false
}
