package ui

import (
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var errInterrupted = errors.New("interrupted")

type stepDoneMsg struct {
	err error
}

type stepModel struct {
	spinner spinner.Model
	title   string
	fn      func() error
	done    bool
	err     error
}

func newStepModel(title string, fn func() error) stepModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle
	return stepModel{spinner: sp, title: title, fn: fn}
}

func (m stepModel) Init() tea.Cmd {
	fn := m.fn
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return stepDoneMsg{err: fn()}
	})
}

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m stepModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// runSpinner shows a spinner next to title until fn returns.
func runSpinner(w io.Writer, title string, fn func() error) error {
	p := tea.NewProgram(newStepModel(title, fn), tea.WithOutput(w), tea.WithInput(nil))
	final, err := p.Run()
	if err != nil {
		return err
	}
	m := final.(stepModel)
	if !m.done {
		return errInterrupted
	}
	return m.err
}
