package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matrixxonek/RPG-Planner/internal/domain"
	"github.com/matrixxonek/RPG-Planner/internal/interaction"
)

// agendaLoadedMsg signals that the merged item sequence has been loaded.
type agendaLoadedMsg struct {
	items []domain.Item
	err   error
}

// itemCommittedMsg reports the outcome of a drag-style commit that
// bypassed the editor.
type itemCommittedMsg struct {
	err error
}

// agendaView lists every event and task in effective-date order.
type agendaView struct {
	app     *App
	items   []domain.Item
	cursor  int
	loading bool
	err     error
}

func newAgendaView(app *App) *agendaView {
	return &agendaView{app: app, loading: true}
}

func (v *agendaView) ID() ViewID    { return ViewAgenda }
func (v *agendaView) Title() string { return "Agenda" }

func (v *agendaView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("H", "L"), key.WithHelp("H/L", "move ±30m")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *agendaView) Init() tea.Cmd {
	return v.loadItems()
}

func (v *agendaView) loadItems() tea.Cmd {
	app := v.app
	return func() tea.Msg {
		ctx := context.Background()
		if err := app.Store.LoadAll(ctx); err != nil {
			return agendaLoadedMsg{err: err}
		}
		return agendaLoadedMsg{items: app.Store.Items()}
	}
}

func (v *agendaView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case agendaLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.items = msg.items
		if v.cursor >= len(v.items) {
			v.cursor = max(len(v.items)-1, 0)
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadItems()

	case itemCommittedMsg:
		if msg.err != nil {
			return v, status(styleRed.Render("Move failed: " + msg.err.Error()))
		}
		v.loading = true
		return v, tea.Batch(v.loadItems(), status(styleGreen.Render("Moved.")))

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *agendaView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case "r":
		v.loading = true
		return v, v.loadItems()

	case "enter":
		if item := v.selected(); item != nil {
			return v, v.dispatch(interaction.Payload{
				ID:   item.ItemID(),
				Kind: item.Kind(),
			})
		}

	case "n":
		// A slot selection on the next free hour.
		start := time.Now().Truncate(time.Hour).Add(time.Hour)
		end := start.Add(time.Hour)
		return v, v.dispatch(interaction.Payload{
			Start: &start,
			End:   &end,
			Slots: []time.Time{start, start.Add(30 * time.Minute)},
		})

	case "H":
		return v, v.shiftSelected(-30 * time.Minute)
	case "L":
		return v, v.shiftSelected(30 * time.Minute)
	}

	return v, nil
}

func (v *agendaView) selected() domain.Item {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return nil
	}
	return v.items[v.cursor]
}

// shiftSelected emits a drag payload moving the selected item by delta.
func (v *agendaView) shiftSelected(delta time.Duration) tea.Cmd {
	item := v.selected()
	if item == nil {
		return nil
	}

	p := interaction.Payload{Item: item}
	switch it := item.(type) {
	case *domain.Event:
		start := it.Start.Add(delta)
		end := it.End.Add(delta)
		p.Start = &start
		p.End = &end
	case *domain.Task:
		deadline := it.Deadline.Add(delta)
		p.Start = &deadline
	}
	return v.dispatch(p)
}

// dispatch routes a raw gesture through the interaction classifier and
// turns the resulting action into view navigation or a store commit.
func (v *agendaView) dispatch(p interaction.Payload) tea.Cmd {
	app := v.app
	action := interaction.Classify(p)

	switch action.Type {
	case interaction.ActionOpenDraft:
		app.Session.Open(action.Draft)
		return pushView(newEditorView(app))

	case interaction.ActionOpenEditor:
		item := app.Store.Find(action.ID, action.Kind)
		if item == nil {
			return status(styleRed.Render("Item is gone; refresh the agenda."))
		}
		app.Session.Open(domain.CloneItem(item))
		return pushView(newEditorView(app))

	case interaction.ActionCommitUpdate:
		updated := action.Updated
		return func() tea.Msg {
			return itemCommittedMsg{err: app.Store.Update(context.Background(), updated)}
		}
	}

	return nil
}

func (v *agendaView) View() string {
	if v.loading {
		return "\n  " + dim("Loading…")
	}
	if v.err != nil {
		return "\n  " + styleRed.Render("Load failed: "+v.err.Error()) +
			"\n  " + dim("r: retry")
	}
	if len(v.items) == 0 {
		return "\n  " + dim("Nothing planned. Press n to add an event.")
	}

	var b strings.Builder
	var lastDay string
	for i, item := range v.items {
		day := item.EffectiveDate().Local().Format("Mon Jan 2")
		if day != lastDay {
			fmt.Fprintf(&b, "\n  %s\n", styleBlue.Render(day))
			lastDay = day
		}

		line := renderItemLine(item)
		if i == v.cursor {
			line = styleSelected.Render("> " + line)
		} else {
			line = "  " + line
		}
		fmt.Fprintf(&b, "  %s\n", line)
	}
	return b.String()
}

func renderItemLine(item domain.Item) string {
	when := item.EffectiveDate().Local().Format("15:04")

	switch it := item.(type) {
	case *domain.Event:
		if it.AllDay {
			when = "all day"
		}
		marker := styleYellow.Render("◆")
		line := fmt.Sprintf("%s %s  %s", marker, when, it.Title)
		if it.Cyclical {
			line += " " + dim("(recurring)")
		}
		return line

	case *domain.Task:
		marker := styleGreen.Render("○")
		if it.Progress == domain.ProgressCompleted {
			marker = dim("●")
		}
		line := fmt.Sprintf("%s %s  %s %s", marker, when, it.Title, dim("["+string(it.Progress)+"]"))
		if it.Progress == domain.ProgressCompleted {
			line = dim(fmt.Sprintf("● %s  %s [completed]", when, it.Title))
		}
		if it.Cyclical {
			line += " " + dim("(recurring)")
		}
		return line
	}
	return item.ItemTitle()
}
