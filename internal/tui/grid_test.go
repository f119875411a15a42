package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/winplace/internal/ipc"
	"github.com/1broseidon/winplace/internal/placement"
)

type fakeController struct {
	moved   []string
	moveErr error
	undos   int
}

func (f *fakeController) Move(p string) (*ipc.MoveData, error) {
	f.moved = append(f.moved, p)
	if f.moveErr != nil {
		return nil, f.moveErr
	}
	return &ipc.MoveData{Placement: p, X: 10, Y: 20}, nil
}

func (f *fakeController) Undo() (*ipc.UndoData, error) {
	f.undos++
	return &ipc.UndoData{X: 1, Y: 2}, nil
}

func press(t *testing.T, m gridModel, key tea.KeyMsg) (gridModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	return next.(gridModel), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGrid_StartsOnCenterAndClampsNavigation(t *testing.T) {
	m := newGridModel(&fakeController{})
	if m.selected() != placement.Center {
		t.Fatalf("initial selection = %s", m.selected())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, runes("h"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.selected() != placement.TopLeft {
		t.Fatalf("selection = %s, want top-left", m.selected())
	}

	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, runes("l"))
	if m.selected() != placement.BottomCenter {
		t.Fatalf("selection = %s, want bottom-center", m.selected())
	}
}

func TestGrid_EnterMovesSelected(t *testing.T) {
	ctrl := &fakeController{}
	m := newGridModel(ctrl)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.busy {
		t.Fatalf("expected a move command")
	}
	next, _ := m.Update(cmd())
	m = next.(gridModel)

	if len(ctrl.moved) != 1 || ctrl.moved[0] != "center-right" {
		t.Fatalf("moved = %v", ctrl.moved)
	}
	if m.busy || m.last != "center-right" || !strings.Contains(m.status, "center-right") {
		t.Fatalf("model after move = %+v", m)
	}
}

func TestGrid_DigitJumpsAndMoves(t *testing.T) {
	ctrl := &fakeController{}
	m := newGridModel(ctrl)

	m, cmd := press(t, m, runes("3"))
	if m.selected() != placement.BottomRight || cmd == nil {
		t.Fatalf("selection = %s, cmd nil = %v", m.selected(), cmd == nil)
	}
	cmd()
	if len(ctrl.moved) != 1 || ctrl.moved[0] != "bottom-right" {
		t.Fatalf("moved = %v", ctrl.moved)
	}
}

func TestGrid_MoveErrorIsShown(t *testing.T) {
	ctrl := &fakeController{moveErr: errors.New("daemon error: no active window")}
	m := newGridModel(ctrl)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	next, _ := m.Update(cmd())
	m = next.(gridModel)
	if !m.failed || !strings.Contains(m.View(), "no active window") {
		t.Fatalf("expected error in view, status %q", m.status)
	}
}

func TestGrid_UndoAndQuit(t *testing.T) {
	ctrl := &fakeController{}
	m := newGridModel(ctrl)

	m, cmd := press(t, m, runes("u"))
	next, _ := m.Update(cmd())
	m = next.(gridModel)
	if ctrl.undos != 1 || !strings.Contains(m.status, "Restored") {
		t.Fatalf("undos=%d status=%q", ctrl.undos, m.status)
	}

	_, cmd = press(t, m, runes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestGrid_ViewShowsAllCells(t *testing.T) {
	view := newGridModel(&fakeController{}).View()
	for _, want := range []string{"Top-Left", "Center", "Bottom-Right", "Move Window to the Center"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPickOptions_KeypadOrder(t *testing.T) {
	opts := pickOptions()
	if len(opts) != 9 {
		t.Fatalf("expected 9 options, got %d", len(opts))
	}
	if opts[0].Value != placement.TopLeft || opts[4].Value != placement.Center || opts[8].Value != placement.BottomRight {
		t.Fatalf("unexpected order: %v %v %v", opts[0].Value, opts[4].Value, opts[8].Value)
	}
}
