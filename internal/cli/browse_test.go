package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgeier/knotwork/pkg/knot"
	"github.com/mgeier/knotwork/pkg/store"
)

func testRecords() []store.KnotRecord {
	return []store.KnotRecord{
		store.NewRecord("figure-eight", knot.New([]int{1, -2, 3, -4, 2, -1, 4, -3}), nil),
		store.NewRecord("trefoil", knot.New([]int{1, -2, 3, -1, 2, -3}), nil),
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKnotListModel_Navigation(t *testing.T) {
	m := newKnotListModel(testRecords())

	next, _ := m.Update(keyMsg("j"))
	m = next.(knotListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	// Does not run past the end.
	next, _ = m.Update(keyMsg("j"))
	m = next.(knotListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(knotListModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
}

func TestKnotListModel_DetailToggle(t *testing.T) {
	m := newKnotListModel(testRecords())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(knotListModel)
	if !m.ShowDetail {
		t.Error("enter should show the detail panel")
	}

	view := m.View()
	if !strings.Contains(view, "canonical") {
		t.Error("detail view should include the canonical form")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(knotListModel)
	if m.ShowDetail {
		t.Error("second enter should hide the detail panel")
	}
}

func TestKnotListModel_View(t *testing.T) {
	m := newKnotListModel(testRecords())
	view := m.View()

	for _, want := range []string{"Knot Catalog", "trefoil", "figure-eight", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestKnotListModel_Quit(t *testing.T) {
	m := newKnotListModel(testRecords())
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}
