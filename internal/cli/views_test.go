package cli

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matrixxonek/RPG-Planner/internal/api"
	"github.com/matrixxonek/RPG-Planner/internal/domain"
	"github.com/matrixxonek/RPG-Planner/internal/editor"
	"github.com/matrixxonek/RPG-Planner/internal/store"
	"github.com/matrixxonek/RPG-Planner/internal/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	srv := httptest.NewServer(testutil.NewTestServer(t).Handler())
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL)
	syncStore := store.New(client, client)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &App{
		Store:   syncStore,
		Session: editor.NewSession(syncStore),
		Log:     logrus.NewEntry(log),
	}
}

func seedEvent(t *testing.T, app *App, title string, start time.Time) domain.Item {
	t.Helper()
	created, err := app.Store.Create(context.Background(), &domain.Event{
		Base:  domain.Base{Title: title},
		Start: start,
		End:   start.Add(time.Hour),
	})
	require.NoError(t, err)
	return created
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes a tea.Cmd synchronously and returns its message.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func loadedAgenda(t *testing.T, app *App) *agendaView {
	t.Helper()
	v := newAgendaView(app)
	msg := runCmd(t, v.Init())
	updated, _ := v.Update(msg)
	return updated.(*agendaView)
}

func TestAgenda_RendersLoadedItems(t *testing.T) {
	app := newTestApp(t)
	seedEvent(t, app, "Standup", time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))
	_, err := app.Store.Create(context.Background(), &domain.Task{
		Base:     domain.Base{Title: "Stretch"},
		Deadline: time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
		Progress: domain.ProgressCompleted,
		Category: domain.CategoryPhysical,
	})
	require.NoError(t, err)

	v := loadedAgenda(t, app)
	out := v.View()
	assert.Contains(t, out, "Standup")
	assert.Contains(t, out, "Stretch")
	assert.Contains(t, out, "completed")
}

func TestAgenda_EnterOpensEditorOnSelected(t *testing.T) {
	app := newTestApp(t)
	created := seedEvent(t, app, "Standup", time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))

	v := loadedAgenda(t, app)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := runCmd(t, cmd)

	push, ok := msg.(pushViewMsg)
	require.True(t, ok)
	assert.Equal(t, ViewEditor, push.view.ID())

	require.True(t, app.Session.IsOpen())
	assert.Equal(t, created.ItemID(), app.Session.Item().ItemID())

	// The session edits a copy, so typing never mutates the store's item
	// before the save is confirmed.
	assert.NotSame(t, app.Store.Items()[0], app.Session.Item())
}

func TestAgenda_NewKeyOpensEventDraft(t *testing.T) {
	app := newTestApp(t)
	v := loadedAgenda(t, app)

	_, cmd := v.Update(keyRunes("n"))
	msg := runCmd(t, cmd)

	push, ok := msg.(pushViewMsg)
	require.True(t, ok)
	assert.Equal(t, ViewEditor, push.view.ID())

	require.True(t, app.Session.IsOpen())
	draft, ok := app.Session.Item().(*domain.Event)
	require.True(t, ok)
	assert.Equal(t, "New event", draft.Title)
	assert.False(t, domain.IsPersisted(draft))
}

func TestAgenda_ShiftCommitsWithoutEditor(t *testing.T) {
	app := newTestApp(t)
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	seedEvent(t, app, "Standup", start)

	v := loadedAgenda(t, app)
	_, cmd := v.Update(keyRunes("L"))
	msg := runCmd(t, cmd)

	committed, ok := msg.(itemCommittedMsg)
	require.True(t, ok)
	require.NoError(t, committed.err)

	// The editor never opened; the store holds the confirmed move.
	assert.False(t, app.Session.IsOpen())
	moved := app.Store.Items()[0].(*domain.Event)
	assert.True(t, moved.Start.Equal(start.Add(30*time.Minute)))
}

func TestEditor_EscDiscardsDraft(t *testing.T) {
	app := newTestApp(t)
	app.Session.Open(&domain.Event{
		Base:  domain.Base{Title: "New event"},
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})

	v := newEditorView(app)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	msg := runCmd(t, cmd)

	_, ok := msg.(popViewMsg)
	assert.True(t, ok)
	assert.False(t, app.Session.IsOpen())
	assert.Empty(t, app.Store.Items())
}

func TestEditor_SwitchKindConvertsDraft(t *testing.T) {
	app := newTestApp(t)
	start := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	app.Session.Open(&domain.Event{
		Base:  domain.Base{Title: "New event"},
		Start: start,
		End:   start.Add(time.Hour),
	})

	v := newEditorView(app)
	updated, _ := v.Update(tea.KeyMsg{Type: tea.KeyCtrlK})
	v = updated.(*editorView)

	task, ok := app.Session.Item().(*domain.Task)
	require.True(t, ok)
	assert.True(t, task.Deadline.Equal(start))
	assert.Equal(t, "New task", v.Title())
}

func TestEditor_DeleteNeedsConfirmation(t *testing.T) {
	app := newTestApp(t)
	created := seedEvent(t, app, "Standup", time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))
	app.Session.Open(domain.CloneItem(created))

	v := newEditorView(app)

	// First ctrl+d only arms the confirmation.
	updated, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	v = updated.(*editorView)
	assert.Nil(t, cmd)
	assert.True(t, app.Session.ConfirmingDelete())
	require.Len(t, app.Store.Items(), 1)

	// Second ctrl+d dispatches the delete.
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	msg := runCmd(t, cmd)
	result, ok := msg.(deleteResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)

	assert.False(t, app.Session.IsOpen())
	assert.Empty(t, app.Store.Items())
}

func TestEditor_AnyOtherKeyDisarmsDelete(t *testing.T) {
	app := newTestApp(t)
	created := seedEvent(t, app, "Standup", time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC))
	app.Session.Open(domain.CloneItem(created))

	v := newEditorView(app)
	updated, _ := v.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	v = updated.(*editorView)
	require.True(t, app.Session.ConfirmingDelete())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, app.Session.ConfirmingDelete())
	assert.Len(t, app.Store.Items(), 1)
}

func TestEditor_DeleteRefusedForDraft(t *testing.T) {
	app := newTestApp(t)
	app.Session.Open(&domain.Event{
		Base:  domain.Base{Title: "New event"},
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})

	v := newEditorView(app)
	updated, _ := v.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	v = updated.(*editorView)

	assert.False(t, app.Session.ConfirmingDelete())
	assert.Contains(t, v.View(), "drafts cannot be deleted")
}

func TestAppModel_PushAndPopViews(t *testing.T) {
	app := newTestApp(t)
	m := newAppModel(app)

	app.Session.Open(&domain.Event{
		Base:  domain.Base{Title: "New event"},
		Start: time.Now(),
		End:   time.Now().Add(time.Hour),
	})
	editorV := newEditorView(app)
	updated, _ := m.Update(pushViewMsg{view: editorV})
	m = updated.(appModel)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, ViewEditor, m.activeView().ID())

	updated, _ = m.Update(popViewMsg{})
	m = updated.(appModel)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewAgenda, m.activeView().ID())
}
