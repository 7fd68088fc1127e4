// Package tui is the interactive terminal front end for the task list.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/output"
	"todo/internal/service"
	"todo/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeInput
)

// Model is the Bubble Tea model. All mutations go through svc.
type Model struct {
	svc    service.Service
	tasks  []task.Task
	counts task.Counts
	cursor int
	mode   mode
	input  textinput.Model
	status string
}

// New creates a model over svc. It starts in the input box when the list is empty.
func New(svc service.Service) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{svc: svc, input: ti}
	m.refresh(svc.Snapshot())
	if len(m.tasks) == 0 {
		m.mode = modeInput
		m.input.Focus()
	}
	return m
}

// Run starts the program on in/out and blocks until the user quits or ctx is done.
func Run(ctx context.Context, svc service.Service, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(svc),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode == modeInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := m.input.Value()
		if strings.TrimSpace(title) == "" {
			m.status = "Title cannot be empty"
			return m, nil
		}
		m.refresh(m.svc.Add(title))
		m.cursor = len(m.tasks) - 1
		m.input.SetValue("")
		m.status = "Added task"
		return m, nil
	case "esc", "tab":
		m.mode = modeList
		m.input.Blur()
		m.status = ""
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ", "enter", "x":
		if len(m.tasks) == 0 {
			return m, nil
		}
		id := m.tasks[m.cursor].ID()
		m.refresh(m.svc.Toggle(id))
		m.status = ""
	case "p":
		if m.counts.Completed == 0 {
			return m, nil
		}
		removed := m.counts.Completed
		m.refresh(m.svc.PurgeCompleted())
		m.status = fmt.Sprintf("Removed %d completed", removed)
	case "a", "i", "tab":
		m.mode = modeInput
		m.status = ""
		return m, m.input.Focus()
	}
	return m, nil
}

// refresh takes a new snapshot from the store and keeps the cursor in range.
func (m *Model) refresh(tasks []task.Task) {
	m.tasks = tasks
	m.counts = task.CountOf(tasks)
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo list"))
	b.WriteString("\n")

	for i, t := range m.tasks {
		prefix := "  "
		if m.mode == modeList && i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		title := output.NormalizeTitle(t.Title())
		if t.Completed() {
			title = doneStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, output.Checkbox(t.Completed()), title)
	}
	if len(m.tasks) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.counts.Completed > 0 {
		b.WriteString(hintStyle.Render("p: remove completed todos"))
		b.WriteString("\n")
	}
	if m.counts.Total > 0 {
		b.WriteString(countsStyle.Render(output.CountsLine(m.counts)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	if m.mode == modeInput {
		b.WriteString(helpStyle.Render("enter: add • tab/esc: list • ctrl+c: quit"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓: move • space: toggle • a: add • p: purge • q: quit"))
	}
	b.WriteString("\n")
	return b.String()
}
