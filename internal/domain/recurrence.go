package domain

import "time"

// Recurrence describes how often a cyclical item repeats. It is a value,
// not a scheduler: nothing in this repo expands a rule into concrete
// occurrences.
type Recurrence struct {
	Frequency Frequency
	Interval  int
	Until     *time.Time
}

// Valid reports whether the rule satisfies the model constraints:
// interval at least 1 and, when present, a usable until date.
func (r *Recurrence) Valid() bool {
	if r == nil {
		return false
	}
	if r.Interval < 1 {
		return false
	}
	if r.Until != nil && r.Until.IsZero() {
		return false
	}
	return true
}

func (r *Recurrence) clone() *Recurrence {
	if r == nil {
		return nil
	}
	c := *r
	if r.Until != nil {
		u := *r.Until
		c.Until = &u
	}
	return &c
}

// DefaultRecurrence is the rule materialized when a user turns an item
// cyclical without having configured one yet.
func DefaultRecurrence() *Recurrence {
	return &Recurrence{Frequency: FreqWeekly, Interval: 1}
}
