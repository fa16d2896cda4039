// Package store keeps the single ordered collection of calendar items the
// UI renders, synchronized with the two independently persisted remote
// collections through confirmed writes: local state changes only after the
// remote store has acknowledged the call.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/matrixxonek/RPG-Planner/internal/domain"
)

// ErrNotPersisted is returned when an operation requires a remote-assigned
// id and the item has none.
var ErrNotPersisted = errors.New("item has not been persisted")

// EventsAPI is the slice of the backend client the store needs for the
// events collection.
type EventsAPI interface {
	ListEvents(ctx context.Context) ([]domain.EventRecord, error)
	CreateEvent(ctx context.Context, rec domain.EventRecord) (domain.EventRecord, error)
	ReplaceEvent(ctx context.Context, id string, rec domain.EventRecord) error
	DeleteEvent(ctx context.Context, id string) error
}

// TasksAPI is the slice of the backend client the store needs for the
// tasks collection.
type TasksAPI interface {
	ListTasks(ctx context.Context) ([]domain.TaskRecord, error)
	CreateTask(ctx context.Context, rec domain.TaskRecord) (domain.TaskRecord, error)
	ReplaceTask(ctx context.Context, id string, rec domain.TaskRecord) error
	DeleteTask(ctx context.Context, id string) error
}

// Store aggregates the two remote collections into one sequence ordered by
// effective date. It is the only component that talks to the backend.
//
// Store is not safe for concurrent use. Correctness relies on confinement
// to the UI loop; two in-flight operations apply their local mutations in
// whatever order their confirmations arrive.
type Store struct {
	events EventsAPI
	tasks  TasksAPI
	items  []domain.Item
}

// New creates a Store over the two collection clients. The local sequence
// is empty until the first successful LoadAll.
func New(events EventsAPI, tasks TasksAPI) *Store {
	return &Store{events: events, tasks: tasks}
}

// Items returns a copy of the current ordered sequence.
func (s *Store) Items() []domain.Item {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Find returns the local item matching both id and kind, or nil. Matching
// on the pair is required: ids are generated independently per collection
// and are not globally unique.
func (s *Store) Find(id string, kind domain.Kind) domain.Item {
	for _, it := range s.items {
		if it.ItemID() == id && it.Kind() == kind {
			return it
		}
	}
	return nil
}

// LoadAll lists both collections concurrently, awaits both, and replaces
// the local sequence with the merged result sorted ascending by effective
// date (ties keep the merge order: events before tasks). The policy is
// all-or-nothing: if either list call fails, the local sequence is left
// exactly as it was.
func (s *Store) LoadAll(ctx context.Context) error {
	type eventsResult struct {
		recs []domain.EventRecord
		err  error
	}
	evCh := make(chan eventsResult, 1)
	go func() {
		recs, err := s.events.ListEvents(ctx)
		evCh <- eventsResult{recs: recs, err: err}
	}()

	taskRecs, taskErr := s.tasks.ListTasks(ctx)
	evRes := <-evCh

	if evRes.err != nil {
		return fmt.Errorf("listing events: %w", evRes.err)
	}
	if taskErr != nil {
		return fmt.Errorf("listing tasks: %w", taskErr)
	}

	merged := make([]domain.Item, 0, len(evRes.recs)+len(taskRecs))
	for _, rec := range evRes.recs {
		ev, err := domain.EventFromRecord(rec)
		if err != nil {
			return fmt.Errorf("converting event %q: %w", rec.ID, err)
		}
		merged = append(merged, ev)
	}
	for _, rec := range taskRecs {
		tk, err := domain.TaskFromRecord(rec)
		if err != nil {
			return fmt.Errorf("converting task %q: %w", rec.ID, err)
		}
		merged = append(merged, tk)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].EffectiveDate().Before(merged[j].EffectiveDate())
	})

	s.items = merged
	return nil
}

// Create routes the draft to the collection matching its kind, awaits the
// remote create, and appends the confirmed item (now carrying its assigned
// id) to the local sequence. On failure nothing is appended.
func (s *Store) Create(ctx context.Context, draft domain.Item) (domain.Item, error) {
	switch d := draft.(type) {
	case *domain.Event:
		created, err := s.events.CreateEvent(ctx, d.Record())
		if err != nil {
			return nil, fmt.Errorf("creating event: %w", err)
		}
		ev, err := domain.EventFromRecord(created)
		if err != nil {
			return nil, fmt.Errorf("converting created event: %w", err)
		}
		s.items = append(s.items, ev)
		return ev, nil

	case *domain.Task:
		created, err := s.tasks.CreateTask(ctx, d.Record())
		if err != nil {
			return nil, fmt.Errorf("creating task: %w", err)
		}
		tk, err := domain.TaskFromRecord(created)
		if err != nil {
			return nil, fmt.Errorf("converting created task: %w", err)
		}
		s.items = append(s.items, tk)
		return tk, nil

	default:
		return nil, fmt.Errorf("create: unsupported item %T", draft)
	}
}

// Update sends the full record as a replace to the collection matching the
// item's kind and, only after the remote confirms, swaps the matching
// local entry in place. The entry keeps its position; the sequence is not
// re-sorted after a date change.
func (s *Store) Update(ctx context.Context, item domain.Item) error {
	if !domain.IsPersisted(item) {
		return ErrNotPersisted
	}

	switch it := item.(type) {
	case *domain.Event:
		if err := s.events.ReplaceEvent(ctx, it.ID, it.Record()); err != nil {
			return fmt.Errorf("updating event %s: %w", it.ID, err)
		}
	case *domain.Task:
		if err := s.tasks.ReplaceTask(ctx, it.ID, it.Record()); err != nil {
			return fmt.Errorf("updating task %s: %w", it.ID, err)
		}
	default:
		return fmt.Errorf("update: unsupported item %T", item)
	}

	for i, existing := range s.items {
		if existing.ItemID() == item.ItemID() && existing.Kind() == item.Kind() {
			s.items[i] = item
			break
		}
	}
	return nil
}

// Delete removes the record from the collection for kind and, after the
// remote confirms, drops the local entry matching both id and kind.
func (s *Store) Delete(ctx context.Context, id string, kind domain.Kind) error {
	switch kind {
	case domain.KindEvent:
		if err := s.events.DeleteEvent(ctx, id); err != nil {
			return fmt.Errorf("deleting event %s: %w", id, err)
		}
	case domain.KindTask:
		if err := s.tasks.DeleteTask(ctx, id); err != nil {
			return fmt.Errorf("deleting task %s: %w", id, err)
		}
	default:
		return fmt.Errorf("delete: unsupported kind %q", kind)
	}

	for i, existing := range s.items {
		if existing.ItemID() == id && existing.Kind() == kind {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}
