package ticker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/etnz/casefolio"
	"github.com/google/go-cmp/cmp"
)

func testState() *casefolio.State {
	s := casefolio.NewState(nil, casefolio.Catalog{CaseNames: []string{"Fever Case", "Gallery Case", "Kilowatt Case"}})
	s.SetPrices(map[string]casefolio.Price{"Fever Case": casefolio.P(0.95), "Kilowatt Case": casefolio.P(1.1)})
	return s
}

func TestNewStrip(t *testing.T) {
	got := NewStrip(testState(), "USD")
	want := []string{"Fever Case $0.95", "Gallery Case $0.00", "Kilowatt Case $1.10"}
	var lines []string
	for _, e := range got {
		lines = append(lines, e.String())
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("NewStrip() mismatch (-want +got):\n%s", diff)
	}
	if text := got.Text(); text != strings.Join(want, separator) {
		t.Errorf("Text() = %q", text)
	}
	if NewStrip(nil, "USD") != nil {
		t.Errorf("NewStrip(nil) should be empty")
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModel(t *testing.T) {
	m := New(testState(), "USD", 0, 2)
	if m.Init() == nil {
		t.Fatal("Init() should start ticking")
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 5})
	text := NewStrip(testState(), "USD").Text()
	if m.osc.Max != len(text)-10 {
		t.Fatalf("max = %d, want %d", m.osc.Max, len(text)-10)
	}
	if got := m.Window(); got != text[:10] {
		t.Errorf("Window() = %q, want %q", got, text[:10])
	}

	m, cmd := update(t, m, tickMsg{})
	if cmd == nil {
		t.Errorf("tick should schedule the next one")
	}
	if got := m.Window(); got != text[2:12] {
		t.Errorf("Window() after tick = %q, want %q", got, text[2:12])
	}

	m, _ = update(t, m, tea.MouseMsg{Y: 0, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tickMsg{})
	if m.osc.Pos != 2 {
		t.Errorf("hovered strip moved to %d", m.osc.Pos)
	}
	m, _ = update(t, m, tea.MouseMsg{Y: 1, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tickMsg{})
	if m.osc.Pos != 4 {
		t.Errorf("position = %d, want 4", m.osc.Pos)
	}

	if _, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Errorf("q should quit")
	}
}

func TestModel_Empty(t *testing.T) {
	m := New(casefolio.NewState(nil, casefolio.Catalog{CaseNames: []string{}}), "USD", 0, 1)
	// an empty catalog is replaced by the built-in one.
	if len(m.text) == 0 {
		t.Fatal("default catalog should fill the strip")
	}

	m = Model{currency: "USD", width: 80}
	if m.Init() != nil {
		t.Errorf("empty strip should not tick")
	}
	m, cmd := update(t, m, tickMsg{})
	if cmd != nil {
		t.Errorf("empty strip should stop ticking")
	}
	if !strings.Contains(m.View(), "No prices yet.") {
		t.Errorf("View() = %q", m.View())
	}

	m, cmd = update(t, m, StateMsg{State: testState()})
	if cmd == nil || !m.ticking {
		t.Errorf("a filled strip should start ticking")
	}
}
