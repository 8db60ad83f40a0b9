package live

import (
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/navigation"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/view"
)

// Message types.
const (
	TypeHello    = "hello"
	TypeFrame    = "frame"
	TypeError    = "error"
	TypeNavigate = "navigate"
	TypeRetry    = "retry"
)

// Message is sent from the server to clients.
type Message struct {
	Type     string `json:"type" msgpack:"type"`
	ClientID string `json:"client_id,omitempty" msgpack:"client_id,omitempty"`
	Frame    *Frame `json:"frame,omitempty" msgpack:"frame,omitempty"`
	Error    string `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Frame is the wire form of a view frame.
type Frame struct {
	Seq      uint64            `json:"seq" msgpack:"seq"`
	Path     string            `json:"path" msgpack:"path"`
	Query    string            `json:"query,omitempty" msgpack:"query,omitempty"`
	View     string            `json:"view" msgpack:"view"`
	Title    string            `json:"title" msgpack:"title"`
	Pattern  string            `json:"pattern" msgpack:"pattern"`
	Fallback bool              `json:"fallback,omitempty" msgpack:"fallback,omitempty"`
	Params   map[string]string `json:"params,omitempty" msgpack:"params,omitempty"`
	Status   string            `json:"status" msgpack:"status"`
	Data     any               `json:"data,omitempty" msgpack:"data,omitempty"`
	Error    string            `json:"error,omitempty" msgpack:"error,omitempty"`
	Derived  any               `json:"derived,omitempty" msgpack:"derived,omitempty"`
}

// NewFrame converts a view frame to its wire form.
func NewFrame(f view.Frame) *Frame {
	out := &Frame{
		Seq:      f.Seq,
		Path:     f.Location.Path,
		Query:    f.Location.Query,
		View:     string(f.View),
		Title:    f.Title,
		Pattern:  f.Location.Matched.Pattern(),
		Fallback: f.Location.Matched.IsFallback(),
		Params:   f.Params,
		Status:   f.State.Status.String(),
		Data:     f.State.Data,
		Derived:  f.Derived,
	}
	if f.State.Err != nil {
		out.Error = f.State.Err.Error()
	}
	return out
}

// Command is sent from clients to the server.
type Command struct {
	Type string `json:"type" msgpack:"type"`
	Path string `json:"path,omitempty" msgpack:"path,omitempty" form:"path"`
}

// Match is the response of /api/match.
type Match struct {
	Path     string            `json:"path"`
	View     string            `json:"view"`
	Pattern  string            `json:"pattern"`
	Params   map[string]string `json:"params,omitempty"`
	Fallback bool              `json:"fallback,omitempty"`
}

func newMatch(path string, m router.MatchResult) Match {
	return Match{
		Path:     path,
		View:     string(m.View()),
		Pattern:  m.Pattern(),
		Params:   m.Params(),
		Fallback: m.IsFallback(),
	}
}

// LocationResponse is the response of /api/navigate.
type LocationResponse struct {
	Path  string `json:"path"`
	Query string `json:"query,omitempty"`
	View  string `json:"view"`
}

func newLocation(loc navigation.Location) LocationResponse {
	return LocationResponse{Path: loc.Path, Query: loc.Query, View: string(loc.View())}
}
