package editor

import (
	"strconv"
	"time"
)

// FieldName identifies a form field accepted by SetField.
type FieldName string

const (
	FieldTitle    FieldName = "title"
	FieldDetails  FieldName = "details"
	FieldCyclical FieldName = "cyclical"
	FieldStart    FieldName = "start"
	FieldEnd      FieldName = "end"
	FieldDeadline FieldName = "deadline"
	FieldAllDay   FieldName = "allDay"
	FieldCategory FieldName = "category"
	FieldProgress FieldName = "progress"
)

// RecurrenceFieldName identifies a recurrence form field.
type RecurrenceFieldName string

const (
	RecurFrequency RecurrenceFieldName = "frequency"
	RecurInterval  RecurrenceFieldName = "interval"
	RecurUntilDate RecurrenceFieldName = "untilDate"
)

// formInstantLayouts are the accepted date input shapes, tried in order:
// full RFC 3339, the datetime-local form value, and a bare date.
var formInstantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseFormInstant(raw string) (time.Time, bool) {
	for _, layout := range formInstantLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseFormBool treats checkbox-style values ("on") as true; anything
// unparsable coerces to false.
func parseFormBool(raw string) bool {
	if raw == "on" {
		return true
	}
	b, err := strconv.ParseBool(raw)
	return err == nil && b
}

func parseFormInt(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
