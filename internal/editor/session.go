// Package editor owns the item currently being drafted or edited: the
// lifecycle between an interaction opening the form and a confirmed save,
// including the lossy draft-only conversion between kinds.
package editor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/matrixxonek/RPG-Planner/internal/domain"
)

var (
	// ErrNothingOpen is returned when an operation needs an open session.
	ErrNothingOpen = errors.New("no item is being edited")

	// ErrTitleRequired rejects a save with an empty or blank title.
	ErrTitleRequired = errors.New("title must not be blank")

	// ErrInvalidRecurrence rejects a save of a cyclical item whose
	// recurrence rule is missing or malformed.
	ErrInvalidRecurrence = errors.New("cyclical item needs a valid recurrence rule")

	// ErrDeleteDraft rejects deleting an item that was never persisted.
	ErrDeleteDraft = errors.New("drafts cannot be deleted")

	// ErrConfirmRequired is returned when Delete is called before the
	// confirmation step has been armed.
	ErrConfirmRequired = errors.New("delete requires confirmation")
)

// Saver is the slice of the sync store the session dispatches to.
type Saver interface {
	Create(ctx context.Context, draft domain.Item) (domain.Item, error)
	Update(ctx context.Context, item domain.Item) error
	Delete(ctx context.Context, id string, kind domain.Kind) error
}

// Session holds exactly one item under edit at a time; a nil item is the
// "no editor open" state. Like the store, it is confined to the UI loop.
type Session struct {
	store Saver
	item  domain.Item

	confirmingDelete bool
}

func NewSession(store Saver) *Session {
	return &Session{store: store}
}

// Open starts editing the given item: a draft for creation or a persisted
// item for modification. Any previous session state is dropped.
func (s *Session) Open(item domain.Item) {
	s.item = item
	s.confirmingDelete = false
}

// Close discards the session. An unsaved draft simply disappears; it never
// reached the remote collections.
func (s *Session) Close() {
	s.item = nil
	s.confirmingDelete = false
}

func (s *Session) IsOpen() bool           { return s.item != nil }
func (s *Session) Item() domain.Item      { return s.item }
func (s *Session) ConfirmingDelete() bool { return s.confirmingDelete }

// baseOf exposes the shared fields of either kind for mutation.
func baseOf(it domain.Item) *domain.Base {
	switch v := it.(type) {
	case *domain.Event:
		return &v.Base
	case *domain.Task:
		return &v.Base
	}
	return nil
}

// SetField applies one typed field update from raw form input. Date fields
// that fail to parse are discarded silently, keeping the previous value.
// Turning cyclical off also clears the recurrence rule. Fields that do not
// exist on the session item's kind are ignored.
func (s *Session) SetField(name FieldName, raw string) {
	b := baseOf(s.item)
	if b == nil {
		return
	}

	switch name {
	case FieldTitle:
		b.Title = raw
	case FieldDetails:
		b.Details = raw
	case FieldCyclical:
		b.Cyclical = parseFormBool(raw)
		if !b.Cyclical {
			b.Recurrence = nil
		}
	case FieldStart:
		if t, ok := parseFormInstant(raw); ok {
			if ev, isEvent := s.item.(*domain.Event); isEvent {
				ev.Start = t
			}
		}
	case FieldEnd:
		if t, ok := parseFormInstant(raw); ok {
			if ev, isEvent := s.item.(*domain.Event); isEvent {
				ev.End = t
			}
		}
	case FieldDeadline:
		if t, ok := parseFormInstant(raw); ok {
			if tk, isTask := s.item.(*domain.Task); isTask {
				tk.Deadline = t
			}
		}
	case FieldAllDay:
		if ev, isEvent := s.item.(*domain.Event); isEvent {
			ev.AllDay = parseFormBool(raw)
		}
	case FieldCategory:
		switch v := s.item.(type) {
		case *domain.Event:
			v.Category = raw
		case *domain.Task:
			v.Category = domain.TaskCategory(raw)
		}
	case FieldProgress:
		if tk, isTask := s.item.(*domain.Task); isTask {
			tk.Progress = domain.Progress(raw)
		}
	}
}

// SetRecurrenceField updates the recurrence rule. It only applies while
// the session item is cyclical, lazily materializing the default weekly
// rule on first touch. Interval input is clamped to a minimum of 1.
func (s *Session) SetRecurrenceField(name RecurrenceFieldName, raw string) {
	b := baseOf(s.item)
	if b == nil || !b.Cyclical {
		return
	}
	if b.Recurrence == nil {
		b.Recurrence = domain.DefaultRecurrence()
	}

	switch name {
	case RecurFrequency:
		if domain.ValidFrequencies[raw] {
			b.Recurrence.Frequency = domain.Frequency(raw)
		}
	case RecurInterval:
		if n, ok := parseFormInt(raw); ok {
			if n < 1 {
				n = 1
			}
			b.Recurrence.Interval = n
		}
	case RecurUntilDate:
		if raw == "" {
			b.Recurrence.Until = nil
			return
		}
		if t, ok := parseFormInstant(raw); ok {
			b.Recurrence.Until = &t
		}
	}
}

// SwitchKind converts the current draft to the other kind. Shared fields
// (title, details, cyclical, recurrence) carry over verbatim; the date
// anchor maps between start and deadline, with the event end synthesized
// one hour after the start. Kind-specific fields reset to fixed defaults,
// so the conversion is lossy: switching away and back does not restore
// the fields of the other kind.
//
// A no-op when the session holds a persisted item, since kind is
// immutable once an id has been assigned, or nothing at all.
func (s *Session) SwitchKind() {
	if s.item == nil || domain.IsPersisted(s.item) {
		return
	}

	switch v := s.item.(type) {
	case *domain.Event:
		s.item = &domain.Task{
			Base:     v.Base,
			Deadline: v.Start,
			Progress: domain.ProgressPlanned,
			Category: domain.CategoryMind,
		}
	case *domain.Task:
		s.item = &domain.Event{
			Base:     v.Base,
			Start:    v.Deadline,
			End:      v.Deadline.Add(time.Hour),
			AllDay:   false,
			Category: domain.DefaultEventCategory,
		}
	}
}

// Validate checks the session item without touching the remote store.
func (s *Session) Validate() error {
	b := baseOf(s.item)
	if b == nil {
		return ErrNothingOpen
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}
	if b.Cyclical && !b.Recurrence.Valid() {
		return ErrInvalidRecurrence
	}
	return nil
}

// Save validates and dispatches: create for a draft, update for a
// persisted item. On success the session clears; on remote failure it
// stays open with the item untouched, so the user can retry or cancel.
func (s *Session) Save(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if domain.IsPersisted(s.item) {
		if err := s.store.Update(ctx, s.item); err != nil {
			return err
		}
	} else {
		if _, err := s.store.Create(ctx, s.item); err != nil {
			return err
		}
	}

	s.Close()
	return nil
}

// RequestDelete arms the two-state confirmation flag. It reports whether
// the flag was armed; drafts and a closed session cannot arm it.
func (s *Session) RequestDelete() bool {
	if !domain.IsPersisted(s.item) {
		return false
	}
	s.confirmingDelete = true
	return true
}

// CancelDelete disarms the confirmation flag without closing the session.
func (s *Session) CancelDelete() {
	s.confirmingDelete = false
}

// Delete dispatches the remote delete for the session item. It refuses to
// run for drafts and before RequestDelete has armed the confirmation.
func (s *Session) Delete(ctx context.Context) error {
	if s.item == nil {
		return ErrNothingOpen
	}
	if !domain.IsPersisted(s.item) {
		return ErrDeleteDraft
	}
	if !s.confirmingDelete {
		return ErrConfirmRequired
	}

	if err := s.store.Delete(ctx, s.item.ItemID(), s.item.Kind()); err != nil {
		return err
	}

	s.Close()
	return nil
}
