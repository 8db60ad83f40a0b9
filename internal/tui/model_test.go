package tui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-json-experiment/json"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/fixture"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/tutorial"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/fetch"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/navigation"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/view"
)

// fixtureSource serves the fixture data without a network round trip.
func fixtureSource(t *testing.T) fetch.SourceFunc {
	t.Helper()
	data, err := fixture.Load()
	if err != nil {
		t.Fatalf("fixture.Load: %v", err)
	}
	return func(_ context.Context, req fetch.Request) ([]byte, error) {
		switch req.URL {
		case "/users":
			return json.Marshal(data.Users)
		case "/users/7":
			u, _ := data.User(7)
			return json.Marshal(u)
		case "/users/7/todos":
			return json.Marshal(data.TodosFor(7))
		}
		return nil, &fetch.StatusError{Method: "GET", URL: req.URL, StatusCode: 404}
	}
}

func newModel(t *testing.T, path string, src fetch.Source) (*Model, *navigation.Controller, Dispatcher) {
	t.Helper()
	table := tutorial.Table()
	nav := navigation.New(table, navigation.WithInitialPath(path))
	d := NewDispatcher()
	host := view.NewHost(nav, tutorial.Registry(table), view.Deps{Source: src, Dispatcher: d})

	m := New(context.Background(), nav, host, d)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should return a command waiting for dispatches")
	}
	t.Cleanup(host.Stop)
	return m, nav, d
}

func settle(t *testing.T, m *Model, d Dispatcher) {
	t.Helper()
	select {
	case fn := <-d:
		_, cmd := m.Update(dispatchMsg{fn: fn})
		if cmd == nil {
			t.Fatal("Update should keep waiting for dispatches")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no settlement dispatched")
	}
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitShowsInitialPage(t *testing.T) {
	m, _, _ := newModel(t, "/welcome", fixtureSource(t))

	out := m.View()
	if !strings.Contains(out, "Welcome to React Router") {
		t.Errorf("View() missing heading:\n%s", out)
	}
	if !strings.Contains(out, "1/6") {
		t.Errorf("View() missing progress:\n%s", out)
	}
}

func TestTourKeys(t *testing.T) {
	m, nav, _ := newModel(t, "/welcome", fixtureSource(t))

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := nav.Current().Path; got != "/what-is-router" {
		t.Fatalf("after right: path = %q", got)
	}

	press(m, runes("n"))
	if got := nav.Current().Path; got != "/how-to-use" {
		t.Fatalf("after n: path = %q", got)
	}

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := nav.Current().Path; got != "/what-is-router" {
		t.Fatalf("after left: path = %q", got)
	}

	press(m, runes("b"))
	if got := nav.Current().Path; got != "/welcome" {
		t.Fatalf("after b: path = %q", got)
	}

	// welcome has no previous page
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := nav.Current().Path; got != "/welcome" {
		t.Errorf("left on first page: path = %q", got)
	}
}

func TestSelectAndFollowLink(t *testing.T) {
	m, nav, _ := newModel(t, "/how-to-use", fixtureSource(t))

	// links are Previous, Next
	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", m.Cursor())
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := nav.Current().Path; got != "/example" {
		t.Fatalf("path = %q, want /example", got)
	}
	if m.Cursor() != 0 {
		t.Errorf("cursor should reset after navigation, got %d", m.Cursor())
	}
}

func TestExampleItemsRendersTodos(t *testing.T) {
	m, _, d := newModel(t, "/example/7", fixtureSource(t))

	if out := m.View(); !strings.Contains(out, "Loading...") {
		t.Fatalf("View() should show loading:\n%s", out)
	}

	settle(t, m, d)

	out := m.View()
	for _, want := range []string{"Todos for Kurtis Weissnat", "completed", "Back to Example Page"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
}

func TestRetryAfterError(t *testing.T) {
	var down atomic.Bool
	down.Store(true)
	ok := fixtureSource(t)
	src := fetch.SourceFunc(func(ctx context.Context, req fetch.Request) ([]byte, error) {
		if down.Load() {
			return nil, errors.New("connection refused")
		}
		return ok(ctx, req)
	})

	m, _, d := newModel(t, "/example/7", src)
	settle(t, m, d)
	down.Store(false)

	if out := m.View(); !strings.Contains(out, "press r to retry") {
		t.Fatalf("View() should show the error:\n%s", out)
	}

	press(m, runes("r"))
	if out := m.View(); !strings.Contains(out, "Loading...") {
		t.Fatalf("retry should start loading:\n%s", out)
	}

	settle(t, m, d)
	if out := m.View(); !strings.Contains(out, "Kurtis Weissnat") {
		t.Errorf("View() after retry:\n%s", out)
	}
}

func TestNotFoundSuggestion(t *testing.T) {
	m, nav, _ := newModel(t, "/welcom", fixtureSource(t))

	if out := m.View(); !strings.Contains(out, "Did you mean /welcome?") {
		t.Fatalf("View() missing suggestion:\n%s", out)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := nav.Current().Path; got != "/welcome" {
		t.Errorf("path = %q, want /welcome", got)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newModel(t, "/", fixtureSource(t))

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestProgress(t *testing.T) {
	out := progress(3, 6, 12)
	if !strings.Contains(out, "3/6") {
		t.Errorf("progress() = %q", out)
	}
	if strings.Count(out, "━") != 12 {
		t.Errorf("progress() should be %d cells wide: %q", 12, out)
	}
}
