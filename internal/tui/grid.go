package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/winplace/internal/ipc"
	"github.com/1broseidon/winplace/internal/placement"
)

// Controller reaches the running daemon. *ipc.Client implements it.
type Controller interface {
	Move(placement string) (*ipc.MoveData, error)
	Undo() (*ipc.UndoData, error)
}

var _ Controller = (*ipc.Client)(nil)

// gridDigits holds the keypad digit of each cell, row by row.
var gridDigits = [3][3]int{
	{7, 8, 9},
	{4, 5, 6},
	{1, 2, 3},
}

var (
	cellStyle = lipgloss.NewStyle().
			Width(16).
			Height(3).
			Align(lipgloss.Center, lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("250"))

	selectedCellStyle = cellStyle.
				BorderForeground(lipgloss.Color("62")).
				Foreground(lipgloss.Color("15")).
				Bold(true)

	lastCellStyle = cellStyle.
			BorderForeground(lipgloss.Color("42"))

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).MarginBottom(1)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

type moveDoneMsg struct {
	data *ipc.MoveData
	err  error
}

type undoDoneMsg struct {
	data *ipc.UndoData
	err  error
}

// gridModel is a 3x3 picker laid out like the numeric keypad.
type gridModel struct {
	ctrl Controller

	row, col int
	last     string
	status   string
	failed   bool
	busy     bool
}

func newGridModel(ctrl Controller) gridModel {
	return gridModel{ctrl: ctrl, row: 1, col: 1}
}

func (m gridModel) selected() placement.Placement {
	p, _ := placement.FromKeypadDigit(gridDigits[m.row][m.col])
	return p
}

// Init implements tea.Model.
func (m gridModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case moveDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.failed = true
			m.status = msg.err.Error()
			return m, nil
		}
		m.failed = false
		m.last = msg.data.Placement
		m.status = fmt.Sprintf("Moved to %s at %d,%d", msg.data.Placement, msg.data.X, msg.data.Y)
		if msg.data.Corrected {
			m.status += " (sent back to its monitor)"
		}

	case undoDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.failed = true
			m.status = msg.err.Error()
			return m, nil
		}
		m.failed = false
		m.last = ""
		m.status = fmt.Sprintf("Restored to %d,%d", msg.data.X, msg.data.Y)
	}
	return m, nil
}

func (m gridModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.row = max(m.row-1, 0)
	case "down", "j":
		m.row = min(m.row+1, 2)
	case "left", "h":
		m.col = max(m.col-1, 0)
	case "right", "l":
		m.col = min(m.col+1, 2)
	case "enter", " ":
		return m.apply()
	case "u":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.undoCmd()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.jumpTo(int(key[0] - '0'))
			return m.apply()
		}
	}
	return m, nil
}

func (m *gridModel) jumpTo(digit int) {
	for r := range gridDigits {
		for c := range gridDigits[r] {
			if gridDigits[r][c] == digit {
				m.row, m.col = r, c
				return
			}
		}
	}
}

func (m gridModel) apply() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	return m, m.moveCmd(m.selected())
}

func (m gridModel) moveCmd(p placement.Placement) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		data, err := ctrl.Move(p.String())
		return moveDoneMsg{data: data, err: err}
	}
}

func (m gridModel) undoCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		data, err := ctrl.Undo()
		return undoDoneMsg{data: data, err: err}
	}
}

// View implements tea.Model.
func (m gridModel) View() string {
	rows := make([]string, 0, len(gridDigits))
	for r := range gridDigits {
		cells := make([]string, 0, len(gridDigits[r]))
		for c, digit := range gridDigits[r] {
			p, _ := placement.FromKeypadDigit(digit)
			label := fmt.Sprintf("%d\n%s", digit, shortName(p))

			style := cellStyle
			switch {
			case r == m.row && c == m.col:
				style = selectedCellStyle
			case p.String() == m.last:
				style = lastCellStyle
			}
			cells = append(cells, style.Render(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.selected().Title()))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("Working...")
	case m.status != "" && m.failed:
		b.WriteString(errStyle.Render(m.status))
	case m.status != "":
		b.WriteString(okStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("arrows/hjkl select · enter apply · 1-9 jump and apply · u undo · q quit"))
	return b.String()
}

func shortName(p placement.Placement) string {
	return strings.TrimPrefix(p.Title(), "Move Window to the ")
}
