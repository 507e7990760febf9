package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModel is a single yes/no prompt. Declining is the default: enter,
// esc and 'n' all answer no, only an explicit 'y' answers yes.
type ConfirmModel struct {
	prompt    string
	Confirmed bool
	Cancelled bool
	answered  bool

	styles confirmStyles
}

type confirmStyles struct {
	prompt lipgloss.Style
	hint   lipgloss.Style
	answer lipgloss.Style
}

func NewConfirmModel(prompt string) ConfirmModel {
	InitCommonStyles(os.Stdout)
	return ConfirmModel{
		prompt: prompt,
		styles: confirmStyles{
			prompt: LabelStyle(),
			hint:   HelpStyle(),
			answer: PrimaryStyle().Bold(true),
		},
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.Confirmed = true
		m.answered = true
		return m, tea.Quit
	case "n", "N", "enter", "esc":
		m.answered = true
		return m, tea.Quit
	case "q", "ctrl+c":
		m.Cancelled = true
		m.answered = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.answered {
		answer := "no"
		if m.Confirmed {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n",
			m.styles.prompt.Render(m.prompt),
			m.styles.answer.Render(answer))
	}
	return fmt.Sprintf("%s %s",
		m.styles.prompt.Render(m.prompt),
		m.styles.hint.Render("[y/N]"))
}

// Confirm displays prompt and blocks for a yes/no answer.
func Confirm(prompt string) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(prompt))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected confirm model type %T", final)
	}
	if m.Cancelled {
		return false, &CancellationError{}
	}
	return m.Confirmed, nil
}
