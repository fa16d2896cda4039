// Package ics renders the merged item sequence as an iCalendar document.
// Events become VEVENT components and tasks become VTODO components with
// a DUE property. Recurrence rules are written as RRULE text only; no
// occurrence expansion happens here or anywhere else.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/matrixxonek/RPG-Planner/internal/domain"
)

const productID = "-//RPG-Planner//rpgplan//EN"

// Export writes the items to w as one VCALENDAR.
func Export(w io.Writer, items []domain.Item) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	now := time.Now().UTC()
	for _, it := range items {
		switch v := it.(type) {
		case *domain.Event:
			cal.Children = append(cal.Children, eventComponent(v, now))
		case *domain.Task:
			cal.Children = append(cal.Children, taskComponent(v, now))
		}
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

func eventComponent(ev *domain.Event, stamp time.Time) *ical.Component {
	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, uid(ev))
	vevent.Props.SetText(ical.PropSummary, ev.Title)
	if ev.Details != "" {
		vevent.Props.SetText(ical.PropDescription, ev.Details)
	}
	if ev.Category != "" {
		vevent.Props.SetText(ical.PropCategories, ev.Category)
	}

	if ev.AllDay {
		vevent.Props.SetDate(ical.PropDateTimeStart, ev.Start)
		vevent.Props.SetDate(ical.PropDateTimeEnd, ev.End)
	} else {
		vevent.Props.SetDateTime(ical.PropDateTimeStart, ev.Start.UTC())
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, ev.End.UTC())
	}

	if ev.Cyclical && ev.Recurrence != nil {
		setRRule(vevent.Props, ev.Recurrence)
	}

	vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	return vevent.Component
}

func taskComponent(tk *domain.Task, stamp time.Time) *ical.Component {
	vtodo := ical.NewComponent(ical.CompToDo)
	vtodo.Props.SetText(ical.PropUID, uid(tk))
	vtodo.Props.SetText(ical.PropSummary, tk.Title)
	if tk.Details != "" {
		vtodo.Props.SetText(ical.PropDescription, tk.Details)
	}
	vtodo.Props.SetText(ical.PropCategories, string(tk.Category))
	vtodo.Props.SetDateTime(ical.PropDue, tk.Deadline.UTC())

	if tk.Progress == domain.ProgressCompleted {
		vtodo.Props.SetText(ical.PropStatus, "COMPLETED")
	}

	if tk.Cyclical && tk.Recurrence != nil {
		setRRule(vtodo.Props, tk.Recurrence)
	}

	vtodo.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	return vtodo
}

// uid derives a stable component UID from the collection-scoped id.
func uid(it domain.Item) string {
	return fmt.Sprintf("%s-%s@rpgplan", it.Kind(), it.ItemID())
}

var icalFrequencies = map[domain.Frequency]string{
	domain.FreqDaily:   "DAILY",
	domain.FreqWeekly:  "WEEKLY",
	domain.FreqMonthly: "MONTHLY",
	domain.FreqYearly:  "YEARLY",
}

// setRRule writes the rule as a raw RRULE property; SetText would declare
// VALUE=TEXT and escape the semicolons between rule parts.
func setRRule(props ical.Props, r *domain.Recurrence) {
	p := ical.NewProp(ical.PropRecurrenceRule)
	p.Value = rruleText(r)
	props.Set(p)
}

// rruleText serializes a rule in RFC 5545 RRULE syntax.
func rruleText(r *domain.Recurrence) string {
	parts := []string{
		"FREQ=" + icalFrequencies[r.Frequency],
		fmt.Sprintf("INTERVAL=%d", r.Interval),
	}
	if r.Until != nil {
		parts = append(parts, "UNTIL="+r.Until.UTC().Format("20060102T150405Z"))
	}
	return strings.Join(parts, ";")
}
