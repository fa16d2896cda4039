package domain

import (
	"fmt"
	"time"
)

// Transport records mirror the wire format of the two remote collections:
// the same fields as the client model, with instants carried as RFC 3339
// strings. Everything else passes through unchanged.

type RecurrenceRecord struct {
	Frequency string `json:"frequency"`
	Interval  int    `json:"interval"`
	UntilDate string `json:"untilDate,omitempty"`
}

type EventRecord struct {
	ID         string            `json:"id,omitempty"`
	Title      string            `json:"title"`
	DataType   string            `json:"dataType"`
	Cyclical   bool              `json:"cyclical"`
	Details    string            `json:"details,omitempty"`
	Recurrence *RecurrenceRecord `json:"recurrence,omitempty"`
	Start      string            `json:"start"`
	End        string            `json:"end"`
	AllDay     bool              `json:"allDay"`
	Category   string            `json:"category,omitempty"`
}

type TaskRecord struct {
	ID         string            `json:"id,omitempty"`
	Title      string            `json:"title"`
	DataType   string            `json:"dataType"`
	Cyclical   bool              `json:"cyclical"`
	Details    string            `json:"details,omitempty"`
	Recurrence *RecurrenceRecord `json:"recurrence,omitempty"`
	Deadline   string            `json:"deadline"`
	Progress   string            `json:"progress"`
	Category   string            `json:"category"`
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseInstant parses an RFC 3339 wire instant.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing instant %q: %w", s, err)
	}
	return t, nil
}

func recurrenceToRecord(r *Recurrence) *RecurrenceRecord {
	if r == nil {
		return nil
	}
	rec := &RecurrenceRecord{
		Frequency: string(r.Frequency),
		Interval:  r.Interval,
	}
	if r.Until != nil {
		rec.UntilDate = formatInstant(*r.Until)
	}
	return rec
}

func recurrenceFromRecord(rec *RecurrenceRecord) (*Recurrence, error) {
	if rec == nil {
		return nil, nil
	}
	r := &Recurrence{
		Frequency: Frequency(rec.Frequency),
		Interval:  rec.Interval,
	}
	if rec.UntilDate != "" {
		until, err := ParseInstant(rec.UntilDate)
		if err != nil {
			return nil, fmt.Errorf("recurrence until date: %w", err)
		}
		r.Until = &until
	}
	return r, nil
}

// Record converts the event to its wire form.
func (e *Event) Record() EventRecord {
	return EventRecord{
		ID:         e.ID,
		Title:      e.Title,
		DataType:   string(KindEvent),
		Cyclical:   e.Cyclical,
		Details:    e.Details,
		Recurrence: recurrenceToRecord(e.Recurrence),
		Start:      formatInstant(e.Start),
		End:        formatInstant(e.End),
		AllDay:     e.AllDay,
		Category:   e.Category,
	}
}

// Record converts the task to its wire form.
func (t *Task) Record() TaskRecord {
	return TaskRecord{
		ID:         t.ID,
		Title:      t.Title,
		DataType:   string(KindTask),
		Cyclical:   t.Cyclical,
		Details:    t.Details,
		Recurrence: recurrenceToRecord(t.Recurrence),
		Deadline:   formatInstant(t.Deadline),
		Progress:   string(t.Progress),
		Category:   string(t.Category),
	}
}

// EventFromRecord converts a wire record back to the client model.
func EventFromRecord(rec EventRecord) (*Event, error) {
	start, err := ParseInstant(rec.Start)
	if err != nil {
		return nil, fmt.Errorf("event start: %w", err)
	}
	end, err := ParseInstant(rec.End)
	if err != nil {
		return nil, fmt.Errorf("event end: %w", err)
	}
	recur, err := recurrenceFromRecord(rec.Recurrence)
	if err != nil {
		return nil, err
	}
	return &Event{
		Base: Base{
			ID:         rec.ID,
			Title:      rec.Title,
			Details:    rec.Details,
			Cyclical:   rec.Cyclical,
			Recurrence: recur,
		},
		Start:    start,
		End:      end,
		AllDay:   rec.AllDay,
		Category: rec.Category,
	}, nil
}

// TaskFromRecord converts a wire record back to the client model.
func TaskFromRecord(rec TaskRecord) (*Task, error) {
	deadline, err := ParseInstant(rec.Deadline)
	if err != nil {
		return nil, fmt.Errorf("task deadline: %w", err)
	}
	recur, err := recurrenceFromRecord(rec.Recurrence)
	if err != nil {
		return nil, err
	}
	return &Task{
		Base: Base{
			ID:         rec.ID,
			Title:      rec.Title,
			Details:    rec.Details,
			Cyclical:   rec.Cyclical,
			Recurrence: recur,
		},
		Deadline: deadline,
		Progress: Progress(rec.Progress),
		Category: TaskCategory(rec.Category),
	}, nil
}
