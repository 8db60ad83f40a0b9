// Package tui is the terminal renderer. The bubbletea program is the event
// loop: navigation, the view host and every settlement run inside Update.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/tutorial"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/navigation"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/resource"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/view"
)

const homePath = "/welcome"

// Model is the bubbletea model of the tutorial.
type Model struct {
	ctx      context.Context
	nav      *navigation.Controller
	host     *view.Host
	dispatch Dispatcher

	cursor int
	width  int
}

// New creates the model. host must be built with d as its dispatcher and is
// started by Init.
func New(ctx context.Context, nav *navigation.Controller, host *view.Host, d Dispatcher) *Model {
	return &Model{ctx: ctx, nav: nav, host: host, dispatch: d}
}

// Run starts the host, runs the program until the user quits and stops the
// host again.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	m.host.Stop()
	return err
}

func (m *Model) Init() tea.Cmd {
	m.host.Start(m.ctx)
	return m.dispatch.wait()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg.fn()
		return m, m.dispatch.wait()

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frame := m.host.Current()
	links := linksOf(frame)

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(links)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(links) {
			m.navigate(links[m.cursor].Href)
		}
	case "right", "l", "n":
		if p, ok := frame.Derived.(tutorial.Page); ok && p.Step != nil && p.Step.Next != "" {
			m.navigate(p.Step.Next)
		}
	case "left", "h", "p":
		if p, ok := frame.Derived.(tutorial.Page); ok && p.Step != nil && p.Step.Prev != "" {
			m.navigate(p.Step.Prev)
		}
	case "r":
		m.host.Retry()
	case "b":
		m.navigate(homePath)
	}
	return m, nil
}

func (m *Model) navigate(path string) {
	m.nav.Navigate(path)
	m.cursor = 0
}

// Cursor returns the index of the selected link.
func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) View() string {
	return render(m.host.Current(), m.cursor, m.width)
}

// linksOf returns the followable links of a frame, the not-found suggestion
// first.
func linksOf(f view.Frame) []tutorial.Link {
	p, ok := f.Derived.(tutorial.Page)
	if !ok {
		return nil
	}
	var links []tutorial.Link
	if p.Suggestion != "" {
		links = append(links, tutorial.Link{Label: "Did you mean " + p.Suggestion + "?", Href: p.Suggestion})
	}
	return append(links, p.Links...)
}

// Render renders a frame without a selected link, for non-interactive output.
func Render(f view.Frame) string {
	return render(f, -1, 0)
}

func render(f view.Frame, cursor, width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(f.Title))
	b.WriteString("  ")
	b.WriteString(pathStyle.Render(f.Location.URL()))
	b.WriteString("\n")

	p, _ := f.Derived.(tutorial.Page)
	if p.Step != nil && p.Step.Index > 0 {
		b.WriteString(progress(p.Step.Index, p.Step.Total, width))
		b.WriteString("\n")
	}
	if p.Heading != "" {
		b.WriteString(headingStyle.Render(p.Heading))
		b.WriteString("\n")
	}
	if p.Summary != "" {
		b.WriteString(summaryStyle.Render(p.Summary))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch f.State.Status {
	case resource.Pending:
		b.WriteString(pendingStyle.Render("Loading..."))
		b.WriteString("\n\n")
	case resource.Error:
		b.WriteString(errorStyle.Render("Error: " + f.State.Err.Error()))
		b.WriteString("\n")
		b.WriteString(summaryStyle.Render("press r to retry"))
		b.WriteString("\n\n")
	case resource.Success:
		if ut, ok := f.State.Data.(tutorial.UserTodos); ok {
			b.WriteString(renderTodos(ut))
			b.WriteString("\n")
		}
	}

	for i, l := range linksOf(f) {
		if i == cursor {
			b.WriteString(focusStyle.Render("> " + l.Label))
		} else {
			b.WriteString(linkStyle.Render("  " + l.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("←/→ tour  ↑/↓ select  enter follow  r retry  b welcome  q quit"))
	b.WriteString("\n")
	return b.String()
}

func renderTodos(ut tutorial.UserTodos) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)  %d completed, %d pending\n", ut.User.Name, ut.User.Email, ut.Completed, ut.Pending)
	for _, t := range ut.Todos {
		status := todoStyle.Render(t.Status())
		if t.Completed {
			status = doneStyle.Render(t.Status())
		}
		fmt.Fprintf(&b, "  • %s  %s\n", t.Title, status)
	}
	return b.String()
}

func progress(step, total, width int) string {
	if width <= 0 || width > 60 {
		width = 60
	}
	filled := width * step / total
	return barStyle.Render(strings.Repeat("━", filled)) +
		trackStyle.Render(strings.Repeat("━", width-filled)) +
		pathStyle.Render(fmt.Sprintf(" %d/%d", step, total))
}
