package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/loop"
)

// Dispatcher hands callbacks from fetch goroutines to the bubbletea update
// loop, which is the goroutine owning the router core in the terminal UI.
type Dispatcher chan func()

// NewDispatcher creates a dispatcher.
func NewDispatcher() Dispatcher {
	return make(Dispatcher, loop.DefaultQueueSize)
}

// Dispatch queues fn. It blocks while the queue is full.
func (d Dispatcher) Dispatch(fn func()) {
	d <- fn
}

type dispatchMsg struct{ fn func() }

// wait returns a command delivering the next queued callback as a message.
func (d Dispatcher) wait() tea.Cmd {
	return func() tea.Msg {
		return dispatchMsg{fn: <-d}
	}
}
