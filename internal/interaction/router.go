// Package interaction classifies raw calendar gestures into the one
// action the rest of the app should take: open the editor on a fresh
// draft, open it on an existing item, or commit a drag/resize straight to
// the sync store without any editor round trip.
package interaction

import (
	"time"

	"github.com/matrixxonek/RPG-Planner/internal/domain"
)

// DraftTitle seeds the title of a slot-selection draft.
const DraftTitle = "New event"

// Payload is one raw interaction as delivered by the calendar surface.
// Which fields are set determines the shape; classification is structural,
// there is no tag.
type Payload struct {
	// Slot selection and drag/resize bounds.
	Start *time.Time
	End   *time.Time

	// Slots is the set of covered sub-slots of a selection.
	Slots []time.Time

	// ID and Kind reference an existing item that was clicked.
	ID   string
	Kind domain.Kind

	// Item is the original item of a drag or resize gesture.
	Item domain.Item
}

type ActionType int

const (
	// ActionNone is the fallthrough for payloads matching no known shape.
	ActionNone ActionType = iota

	// ActionOpenDraft opens the editor on a new event draft.
	ActionOpenDraft

	// ActionOpenEditor opens the editor on the referenced existing item.
	ActionOpenEditor

	// ActionCommitUpdate sends the updated item to the store immediately,
	// bypassing the editor.
	ActionCommitUpdate
)

// Action is the classification result. Exactly one of Draft, (ID, Kind)
// or Updated is populated, matching Type.
type Action struct {
	Type ActionType

	Draft domain.Item

	ID   string
	Kind domain.Kind

	Updated domain.Item
}

// Classify maps one payload to one action. The three shapes are tested in
// order: slot selection (start, end and covered slots, no item), existing
// item reference (id and kind), then drag/resize (an item plus new
// bounds). Anything else is no action.
func Classify(p Payload) Action {
	switch {
	case p.Item == nil && p.ID == "" && p.Start != nil && p.End != nil && len(p.Slots) > 0:
		return Action{
			Type: ActionOpenDraft,
			Draft: &domain.Event{
				Base:  domain.Base{Title: DraftTitle},
				Start: *p.Start,
				End:   *p.End,
			},
		}

	case p.Item == nil && p.ID != "" && (p.Kind == domain.KindEvent || p.Kind == domain.KindTask):
		return Action{Type: ActionOpenEditor, ID: p.ID, Kind: p.Kind}

	case p.Item != nil && (p.Start != nil || p.End != nil):
		return Action{Type: ActionCommitUpdate, Updated: reanchor(p.Item, p.Start, p.End)}
	}

	return Action{Type: ActionNone}
}

// reanchor copies the item and overwrites only its date fields. Tasks
// have a single anchor, so a drag moves the deadline to the new start.
func reanchor(item domain.Item, start, end *time.Time) domain.Item {
	updated := domain.CloneItem(item)
	switch v := updated.(type) {
	case *domain.Event:
		if start != nil {
			v.Start = *start
		}
		if end != nil {
			v.End = *end
		}
	case *domain.Task:
		if start != nil {
			v.Deadline = *start
		}
	}
	return updated
}
