package domain

import "time"

// Base holds the fields shared by both item kinds. ID is assigned by the
// remote collection on create and is empty for drafts.
type Base struct {
	ID         string
	Title      string
	Details    string
	Cyclical   bool
	Recurrence *Recurrence
}

// Event is a time-ranged calendar entry.
type Event struct {
	Base

	Start    time.Time
	End      time.Time
	AllDay   bool
	Category string
}

// Task is a deadline-bound calendar entry.
type Task struct {
	Base

	Deadline time.Time
	Progress Progress
	Category TaskCategory
}

// Item is the discriminated union over Event and Task. A nil Item is the
// "nothing is being edited" state; an Item with an empty id is a draft.
// Dispatch is always via Kind or a type switch on *Event / *Task.
type Item interface {
	Kind() Kind
	ItemID() string
	ItemTitle() string

	// EffectiveDate is the instant used for ordering the merged
	// sequence: start for events, deadline for tasks.
	EffectiveDate() time.Time
}

func (e *Event) Kind() Kind { return KindEvent }
func (t *Task) Kind() Kind  { return KindTask }

func (e *Event) ItemID() string {
	if e == nil {
		return ""
	}
	return e.ID
}

func (t *Task) ItemID() string {
	if t == nil {
		return ""
	}
	return t.ID
}

func (e *Event) ItemTitle() string {
	if e == nil {
		return ""
	}
	return e.Title
}

func (t *Task) ItemTitle() string {
	if t == nil {
		return ""
	}
	return t.Title
}

func (e *Event) EffectiveDate() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.Start
}

func (t *Task) EffectiveDate() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.Deadline
}

// IsEvent reports whether the item is an event (draft or persisted).
func IsEvent(it Item) bool {
	return it != nil && it.Kind() == KindEvent
}

// IsTask reports whether the item is a task (draft or persisted).
func IsTask(it Item) bool {
	return it != nil && it.Kind() == KindTask
}

// IsPersisted reports whether the item carries a remote-assigned id.
// Drafts and the absent state return false.
func IsPersisted(it Item) bool {
	return it != nil && it.ItemID() != ""
}

// Clone returns a deep copy, including the recurrence rule.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.Recurrence = e.Recurrence.clone()
	return &c
}

// Clone returns a deep copy, including the recurrence rule.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	c.Recurrence = t.Recurrence.clone()
	return &c
}

// CloneItem deep-copies an item of either kind.
func CloneItem(it Item) Item {
	switch v := it.(type) {
	case *Event:
		return v.Clone()
	case *Task:
		return v.Clone()
	default:
		return nil
	}
}
