package unified

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// NavigateMsg is emitted when a view wants to navigate to another view
type NavigateMsg struct {
	Target View
}

// QuitAppMsg is emitted when the entire application should quit
type QuitAppMsg struct{}

// refreshedMsg reports that a controller call started by view finished.
// Controller state is read from its snapshot; err has already been shown.
type refreshedMsg struct {
	view View
	err  error
}

// confirmMsg asks the orchestrator to open the confirm dialog. onYes runs
// only if the user accepts.
type confirmMsg struct {
	title string
	text  string
	onYes tea.Cmd
}

func navigate(target View) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Target: target} }
}

func askConfirm(title, text string, onYes tea.Cmd) tea.Cmd {
	return func() tea.Msg { return confirmMsg{title: title, text: text, onYes: onYes} }
}

// run performs a blocking controller call off the update loop.
func run(ctx context.Context, v View, fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{view: v, err: fn(ctx)}
	}
}
