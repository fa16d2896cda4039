package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matrixxonek/RPG-Planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSaver records dispatches and can simulate remote failures.
type fakeSaver struct {
	created   []domain.Item
	updated   []domain.Item
	deleted   []string
	createErr error
	updateErr error
	deleteErr error
}

func (f *fakeSaver) Create(ctx context.Context, draft domain.Item) (domain.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, draft)
	persisted := domain.CloneItem(draft)
	switch v := persisted.(type) {
	case *domain.Event:
		v.ID = "new-event"
	case *domain.Task:
		v.ID = "new-task"
	}
	return persisted, nil
}

func (f *fakeSaver) Update(ctx context.Context, item domain.Item) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, item)
	return nil
}

func (f *fakeSaver) Delete(ctx context.Context, id string, kind domain.Kind) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, string(kind)+"/"+id)
	return nil
}

func eventDraft(title string, start time.Time) *domain.Event {
	return &domain.Event{
		Base:  domain.Base{Title: title},
		Start: start,
		End:   start.Add(30 * time.Minute),
	}
}

func TestSetField_TypedUpdates(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Open(eventDraft("Meeting", time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)))

	s.SetField(FieldTitle, "Renamed")
	s.SetField(FieldDetails, "room 4")
	s.SetField(FieldCategory, "work")
	s.SetField(FieldAllDay, "true")
	s.SetField(FieldStart, "2025-09-02T08:00:00Z")

	ev := s.Item().(*domain.Event)
	assert.Equal(t, "Renamed", ev.Title)
	assert.Equal(t, "room 4", ev.Details)
	assert.Equal(t, "work", ev.Category)
	assert.True(t, ev.AllDay)
	assert.Equal(t, time.Date(2025, 9, 2, 8, 0, 0, 0, time.UTC), ev.Start)
}

func TestSetField_BadDateKeepsPreviousValue(t *testing.T) {
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession(&fakeSaver{})
	s.Open(eventDraft("Meeting", start))

	s.SetField(FieldStart, "next tuesday-ish")

	assert.Equal(t, start, s.Item().(*domain.Event).Start, "unparsable input is discarded silently")
}

func TestSetField_DatetimeLocalAccepted(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Open(eventDraft("Meeting", time.Now()))

	s.SetField(FieldEnd, "2025-09-01T16:30")

	assert.Equal(t, time.Date(2025, 9, 1, 16, 30, 0, 0, time.UTC), s.Item().(*domain.Event).End)
}

func TestSetField_CyclicalOffClearsRecurrence(t *testing.T) {
	draft := eventDraft("Gym", time.Now())
	draft.Cyclical = true
	draft.Recurrence = &domain.Recurrence{Frequency: domain.FreqDaily, Interval: 3}

	s := NewSession(&fakeSaver{})
	s.Open(draft)
	s.SetField(FieldCyclical, "false")

	ev := s.Item().(*domain.Event)
	assert.False(t, ev.Cyclical)
	assert.Nil(t, ev.Recurrence)
}

func TestSetField_WrongKindFieldIgnored(t *testing.T) {
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession(&fakeSaver{})
	s.Open(eventDraft("Meeting", start))

	// A deadline edit on an event has nowhere to land.
	s.SetField(FieldDeadline, "2025-12-01T00:00:00Z")
	ev := s.Item().(*domain.Event)
	assert.Equal(t, start, ev.Start)
}

func TestSetField_ClosedSessionIsNoOp(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.SetField(FieldTitle, "ghost")
	assert.Nil(t, s.Item())
}

func TestSetRecurrenceField_GatedOnCyclical(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Open(eventDraft("Gym", time.Now()))

	s.SetRecurrenceField(RecurInterval, "4")
	assert.Nil(t, s.Item().(*domain.Event).Recurrence, "recurrence edits only apply while cyclical")
}

func TestSetRecurrenceField_LazyDefaultRule(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Open(eventDraft("Gym", time.Now()))
	s.SetField(FieldCyclical, "true")

	s.SetRecurrenceField(RecurFrequency, "monthly")

	r := s.Item().(*domain.Event).Recurrence
	require.NotNil(t, r)
	assert.Equal(t, domain.FreqMonthly, r.Frequency)
	assert.Equal(t, 1, r.Interval, "default rule starts at weekly/1")
}

func TestSetRecurrenceField_IntervalClampedToOne(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Open(eventDraft("Gym", time.Now()))
	s.SetField(FieldCyclical, "true")

	s.SetRecurrenceField(RecurInterval, "0")
	assert.Equal(t, 1, s.Item().(*domain.Event).Recurrence.Interval)

	s.SetRecurrenceField(RecurInterval, "-7")
	assert.Equal(t, 1, s.Item().(*domain.Event).Recurrence.Interval)

	s.SetRecurrenceField(RecurInterval, "6")
	assert.Equal(t, 6, s.Item().(*domain.Event).Recurrence.Interval)

	// Unparsable input keeps the previous value.
	s.SetRecurrenceField(RecurInterval, "often")
	assert.Equal(t, 6, s.Item().(*domain.Event).Recurrence.Interval)
}

func TestSetRecurrenceField_UntilDate(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Open(eventDraft("Gym", time.Now()))
	s.SetField(FieldCyclical, "true")

	s.SetRecurrenceField(RecurUntilDate, "2026-01-31")
	r := s.Item().(*domain.Event).Recurrence
	require.NotNil(t, r.Until)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), *r.Until)

	s.SetRecurrenceField(RecurUntilDate, "")
	assert.Nil(t, s.Item().(*domain.Event).Recurrence.Until)
}

func TestSwitchKind_EventToTask(t *testing.T) {
	anchor := time.Date(2025, 9, 5, 9, 0, 0, 0, time.UTC)
	s := NewSession(&fakeSaver{})
	s.Open(&domain.Event{Base: domain.Base{Title: "X"}, Start: anchor, End: anchor.Add(2 * time.Hour)})

	s.SwitchKind()

	tk, ok := s.Item().(*domain.Task)
	require.True(t, ok)
	assert.Equal(t, "X", tk.Title)
	assert.Equal(t, anchor, tk.Deadline)
	assert.Equal(t, domain.ProgressPlanned, tk.Progress)
	assert.Equal(t, domain.CategoryMind, tk.Category)
	assert.False(t, tk.Cyclical)
}

func TestSwitchKind_RoundTripIsLossy(t *testing.T) {
	anchor := time.Date(2025, 9, 5, 9, 0, 0, 0, time.UTC)
	originalEnd := anchor.Add(2 * time.Hour)

	s := NewSession(&fakeSaver{})
	s.Open(&domain.Event{Base: domain.Base{Title: "X"}, Start: anchor, End: originalEnd, Category: "work"})

	s.SwitchKind() // event → task
	s.SwitchKind() // task → event

	ev, ok := s.Item().(*domain.Event)
	require.True(t, ok)
	assert.Equal(t, "X", ev.Title)
	assert.Equal(t, anchor, ev.Start)
	assert.Equal(t, anchor.Add(time.Hour), ev.End, "end is synthesized, not recovered")
	assert.NotEqual(t, originalEnd, ev.End)
	assert.Equal(t, domain.DefaultEventCategory, ev.Category, "category resets to the default")
	assert.False(t, ev.AllDay)
}

func TestSwitchKind_PreservesSharedFields(t *testing.T) {
	rule := &domain.Recurrence{Frequency: domain.FreqDaily, Interval: 2}
	s := NewSession(&fakeSaver{})
	s.Open(&domain.Task{
		Base:     domain.Base{Title: "Read", Details: "ch. 4", Cyclical: true, Recurrence: rule},
		Deadline: time.Date(2025, 9, 5, 20, 0, 0, 0, time.UTC),
		Progress: domain.ProgressWorkingOn,
		Category: domain.CategorySocial,
	})

	s.SwitchKind()

	ev := s.Item().(*domain.Event)
	assert.Equal(t, "Read", ev.Title)
	assert.Equal(t, "ch. 4", ev.Details)
	assert.True(t, ev.Cyclical)
	assert.Same(t, rule, ev.Recurrence, "recurrence carries over verbatim")
}

func TestSwitchKind_PersistedItemIsNoOp(t *testing.T) {
	s := NewSession(&fakeSaver{})
	s.Open(&domain.Event{Base: domain.Base{ID: "e1", Title: "Fixed"}, Start: time.Now(), End: time.Now().Add(time.Hour)})

	s.SwitchKind()

	assert.IsType(t, &domain.Event{}, s.Item(), "kind of a persisted item never changes")
}

func TestSave_BlankTitleRejectedBeforeRemote(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(saver)
	s.Open(eventDraft("   ", time.Now()))

	err := s.Save(context.Background())

	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.Empty(t, saver.created)
	assert.True(t, s.IsOpen(), "session stays open on validation failure")
}

func TestSave_CyclicalWithoutRuleRejected(t *testing.T) {
	saver := &fakeSaver{}
	draft := eventDraft("Gym", time.Now())
	draft.Cyclical = true

	s := NewSession(saver)
	s.Open(draft)

	err := s.Save(context.Background())

	assert.ErrorIs(t, err, ErrInvalidRecurrence)
	assert.Empty(t, saver.created)
	assert.Empty(t, saver.updated)
}

func TestSave_DraftDispatchesCreateAndCloses(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(saver)
	s.Open(eventDraft("New", time.Now()))

	require.NoError(t, s.Save(context.Background()))

	require.Len(t, saver.created, 1)
	assert.Empty(t, saver.updated)
	assert.False(t, s.IsOpen())
}

func TestSave_PersistedDispatchesUpdate(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(saver)
	s.Open(&domain.Task{
		Base:     domain.Base{ID: "t1", Title: "Edited"},
		Deadline: time.Now(),
		Progress: domain.ProgressCompleted,
		Category: domain.CategoryMind,
	})

	require.NoError(t, s.Save(context.Background()))

	require.Len(t, saver.updated, 1)
	assert.Empty(t, saver.created)
	assert.False(t, s.IsOpen())
}

func TestSave_RemoteFailureKeepsSessionOpen(t *testing.T) {
	saver := &fakeSaver{createErr: errors.New("503")}
	s := NewSession(saver)
	s.Open(eventDraft("New", time.Now()))

	err := s.Save(context.Background())

	require.Error(t, err)
	assert.True(t, s.IsOpen(), "the editor simply does not close")
}

func TestDelete_DraftRefused(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(saver)
	s.Open(eventDraft("Draft", time.Now()))

	assert.False(t, s.RequestDelete())

	err := s.Delete(context.Background())
	assert.ErrorIs(t, err, ErrDeleteDraft)
	assert.Empty(t, saver.deleted)
}

func TestDelete_RequiresArmedConfirmation(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(saver)
	s.Open(&domain.Task{Base: domain.Base{ID: "t1", Title: "Done with this"}, Deadline: time.Now()})

	err := s.Delete(context.Background())
	assert.ErrorIs(t, err, ErrConfirmRequired)

	require.True(t, s.RequestDelete())
	assert.True(t, s.ConfirmingDelete())

	require.NoError(t, s.Delete(context.Background()))
	assert.Equal(t, []string{"task/t1"}, saver.deleted)
	assert.False(t, s.IsOpen())
}

func TestDelete_CancelDisarms(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(saver)
	s.Open(&domain.Event{Base: domain.Base{ID: "e1", Title: "Keep"}, Start: time.Now(), End: time.Now().Add(time.Hour)})

	s.RequestDelete()
	s.CancelDelete()

	err := s.Delete(context.Background())
	assert.ErrorIs(t, err, ErrConfirmRequired)
	assert.Empty(t, saver.deleted)
}
