package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/matrixxonek/RPG-Planner/internal/domain"
	"github.com/matrixxonek/RPG-Planner/internal/editor"
)

// saveResultMsg reports the outcome of a save dispatched to the backend.
type saveResultMsg struct {
	err error
}

// deleteResultMsg reports the outcome of a confirmed delete.
type deleteResultMsg struct {
	err error
}

const formInstantPlaceholder = "2025-06-30T18:00"

// formValues buffers raw form input before it is applied to the session
// field by field.
type formValues struct {
	title    string
	details  string
	cyclical bool

	start  string
	end    string
	allDay bool

	deadline string
	progress string
	category string

	frequency string
	interval  string
	untilDate string
}

// editorView wraps the edit session in a huh form. The form collects raw
// strings; applying them field by field leaves parse failures to the
// session's own rules.
type editorView struct {
	app    *App
	form   *huh.Form
	values *formValues
	errMsg string
}

func newEditorView(app *App) *editorView {
	v := &editorView{app: app}
	v.rebuildForm()
	return v
}

func (v *editorView) ID() ViewID { return ViewEditor }

func (v *editorView) Title() string {
	item := v.app.Session.Item()
	if item == nil {
		return "Editor"
	}
	if domain.IsPersisted(item) {
		return "Edit " + string(item.Kind())
	}
	return "New " + string(item.Kind())
}

func (v *editorView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
	item := v.app.Session.Item()
	if item != nil && !domain.IsPersisted(item) {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "switch kind")))
	}
	if item != nil && domain.IsPersisted(item) {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")))
	}
	return bindings
}

// rebuildForm seeds the value buffer from the session item and builds a
// fresh form for the item's kind.
func (v *editorView) rebuildForm() {
	item := v.app.Session.Item()
	vals := &formValues{interval: "1", frequency: string(domain.FreqWeekly)}

	var groups []*huh.Group
	switch it := item.(type) {
	case *domain.Event:
		vals.title = it.Title
		vals.details = it.Details
		vals.cyclical = it.Cyclical
		vals.start = it.Start.Format(time.RFC3339)
		vals.end = it.End.Format(time.RFC3339)
		vals.allDay = it.AllDay
		vals.category = it.Category
		groups = append(groups, baseGroup(vals), eventGroup(vals))

	case *domain.Task:
		vals.title = it.Title
		vals.details = it.Details
		vals.cyclical = it.Cyclical
		vals.deadline = it.Deadline.Format(time.RFC3339)
		vals.progress = string(it.Progress)
		vals.category = string(it.Category)
		if vals.category == "" {
			vals.category = string(domain.CategoryMind)
		}
		if vals.progress == "" {
			vals.progress = string(domain.ProgressPlanned)
		}
		groups = append(groups, baseGroup(vals), taskGroup(vals))
	}

	if item != nil {
		if r := recurrenceOf(item); r != nil {
			vals.frequency = string(r.Frequency)
			vals.interval = strconv.Itoa(r.Interval)
			if r.Until != nil {
				vals.untilDate = r.Until.Format(time.RFC3339)
			}
		}
		groups = append(groups, recurrenceGroup(vals))
	}

	v.values = vals
	v.form = huh.NewForm(groups...).WithShowHelp(false)
}

func recurrenceOf(item domain.Item) *domain.Recurrence {
	switch it := item.(type) {
	case *domain.Event:
		return it.Recurrence
	case *domain.Task:
		return it.Recurrence
	}
	return nil
}

func baseGroup(vals *formValues) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title("Title").Value(&vals.title),
		huh.NewText().Title("Details").Value(&vals.details),
		huh.NewConfirm().Title("Recurring?").Value(&vals.cyclical),
	)
}

func eventGroup(vals *formValues) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title("Start").Placeholder(formInstantPlaceholder).Value(&vals.start),
		huh.NewInput().Title("End").Placeholder(formInstantPlaceholder).Value(&vals.end),
		huh.NewConfirm().Title("All day?").Value(&vals.allDay),
		huh.NewInput().Title("Category").Value(&vals.category),
	)
}

func taskGroup(vals *formValues) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().Title("Deadline").Placeholder(formInstantPlaceholder).Value(&vals.deadline),
		huh.NewSelect[string]().Title("Progress").
			Options(huh.NewOptions(
				string(domain.ProgressPlanned),
				string(domain.ProgressWorkingOn),
				string(domain.ProgressCompleted),
			)...).
			Value(&vals.progress),
		huh.NewSelect[string]().Title("Category").
			Options(huh.NewOptions(
				string(domain.CategoryMind),
				string(domain.CategoryPhysical),
				string(domain.CategorySocial),
			)...).
			Value(&vals.category),
	)
}

func recurrenceGroup(vals *formValues) *huh.Group {
	return huh.NewGroup(
		huh.NewSelect[string]().Title("Frequency").
			Options(huh.NewOptions(
				string(domain.FreqDaily),
				string(domain.FreqWeekly),
				string(domain.FreqMonthly),
				string(domain.FreqYearly),
			)...).
			Value(&vals.frequency),
		huh.NewInput().Title("Every").Placeholder("1").Value(&vals.interval),
		huh.NewInput().Title("Until (blank for none)").
			Placeholder(formInstantPlaceholder).Value(&vals.untilDate),
	).WithHideFunc(func() bool { return !vals.cyclical })
}

// applyValues pushes the raw buffer into the session field by field.
func (v *editorView) applyValues() {
	s := v.app.Session
	vals := v.values

	s.SetField(editor.FieldTitle, vals.title)
	s.SetField(editor.FieldDetails, vals.details)
	s.SetField(editor.FieldCyclical, strconv.FormatBool(vals.cyclical))

	switch s.Item().(type) {
	case *domain.Event:
		s.SetField(editor.FieldStart, vals.start)
		s.SetField(editor.FieldEnd, vals.end)
		s.SetField(editor.FieldAllDay, strconv.FormatBool(vals.allDay))
		s.SetField(editor.FieldCategory, vals.category)
	case *domain.Task:
		s.SetField(editor.FieldDeadline, vals.deadline)
		s.SetField(editor.FieldProgress, vals.progress)
		s.SetField(editor.FieldCategory, vals.category)
	}

	if vals.cyclical {
		s.SetRecurrenceField(editor.RecurFrequency, vals.frequency)
		s.SetRecurrenceField(editor.RecurInterval, vals.interval)
		s.SetRecurrenceField(editor.RecurUntilDate, vals.untilDate)
	}
}

func (v *editorView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *editorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveResultMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			v.rebuildForm()
			return v, v.form.Init()
		}
		return v, popAndRefresh()

	case deleteResultMsg:
		if msg.err != nil {
			v.errMsg = msg.err.Error()
			return v, nil
		}
		return v, popAndRefresh()

	case tea.KeyMsg:
		session := v.app.Session

		// Any keypress other than a second ctrl+d disarms the pending
		// delete confirmation.
		if session.ConfirmingDelete() && msg.String() != "ctrl+d" {
			session.CancelDelete()
		}

		switch msg.String() {
		case "esc":
			session.Close()
			return v, popView()

		case "ctrl+k":
			v.applyValues()
			session.SwitchKind()
			v.rebuildForm()
			return v, v.form.Init()

		case "ctrl+d":
			if !session.ConfirmingDelete() {
				if session.RequestDelete() {
					return v, nil
				}
				v.errMsg = editor.ErrDeleteDraft.Error()
				return v, nil
			}
			return v, func() tea.Msg {
				return deleteResultMsg{err: session.Delete(context.Background())}
			}
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.applyValues()
		session := v.app.Session
		return v, tea.Batch(cmd, func() tea.Msg {
			return saveResultMsg{err: session.Save(context.Background())}
		})
	}

	return v, cmd
}

func (v *editorView) View() string {
	out := v.form.View()
	if v.app.Session.ConfirmingDelete() {
		out += "\n" + styleRed.Render("Press ctrl+d again to delete, any other key to keep.")
	}
	if v.errMsg != "" {
		out += "\n" + styleRed.Render(v.errMsg)
	}
	return out
}
