package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to reload its data,
// typically after a mutation confirmed by the backend.
type refreshViewMsg struct{}

// statusMsg carries a transient status line shown under the active view.
type statusMsg struct {
	text string
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// popAndRefresh pops the current view and reloads the ones below it.
func popAndRefresh() tea.Cmd {
	return tea.Batch(popView(), func() tea.Msg { return refreshViewMsg{} })
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}
