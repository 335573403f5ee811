package formatter

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type workDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return "  " + m.spinner.View() + " " + Dim(m.message) + "\n"
}

// RunWithSpinner runs work while a spinner with message animates on out.
// The spinner line is cleared once work returns.
func RunWithSpinner(out io.Writer, message string, work func() error) error {
	m := spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(StylePurple)),
		message: message,
	}
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithInput(nil), tea.WithoutSignalHandler())

	result := make(chan error, 1)
	go func() {
		result <- work()
		p.Send(workDoneMsg{})
	}()

	_, runErr := p.Run()
	if err := <-result; err != nil {
		return err
	}
	return runErr
}
