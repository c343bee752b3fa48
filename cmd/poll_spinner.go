package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/maasutil/maascli/internal/domain"
)

type pollDoneMsg struct {
	node domain.Node
	err  error
}

type pollSpinnerModel struct {
	spinner spinner.Model
	label   string
	poll    tea.Cmd
	result  pollDoneMsg
	done    bool
}

func newPollSpinnerModel(label string, poll tea.Cmd) pollSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return pollSpinnerModel{
		spinner: s,
		label:   label,
		poll:    poll,
	}
}

func (m pollSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.poll)
}

func (m pollSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pollDoneMsg:
		m.done = true
		m.result = msg
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m pollSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runPollSpinner shows a spinner while the poll loop runs, then returns
// its outcome.
func runPollSpinner(ctx context.Context, output io.Writer, label string, poll func(context.Context) (domain.Node, error)) (domain.Node, error) {
	pollCmd := func() tea.Msg {
		node, err := poll(ctx)
		return pollDoneMsg{node: node, err: err}
	}

	p := tea.NewProgram(
		newPollSpinnerModel(label, pollCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return domain.Node{}, fmt.Errorf("run polling spinner: %w", err)
	}

	model, ok := finalModel.(pollSpinnerModel)
	if !ok {
		return domain.Node{}, fmt.Errorf("unexpected spinner model type %T", finalModel)
	}

	return model.result.node, model.result.err
}
