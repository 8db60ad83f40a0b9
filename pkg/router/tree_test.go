package router

import (
	"testing"
)

func TestRouteNodeFindChild(t *testing.T) {
	root := newRouteNode("")
	root.addChild("example")
	root.addChild("welcome")

	tests := []struct {
		segment string
		want    bool
	}{
		{"example", true},
		{"welcome", true},
		{"outro", false},
		{"", false},
	}

	for _, tt := range tests {
		child := root.findChild(tt.segment)
		got := child != nil
		if got != tt.want {
			t.Errorf("findChild(%q) = %v, want %v", tt.segment, got, tt.want)
		}
	}
}

func TestRouteNodeAddChild(t *testing.T) {
	root := newRouteNode("")

	child1 := root.addChild("example")
	if child1.segment != "example" {
		t.Errorf("segment = %q, want %q", child1.segment, "example")
	}

	child2 := root.addChild("example")
	if child1 != child2 {
		t.Error("addChild should return existing child")
	}

	if len(root.children) != 1 {
		t.Errorf("len(children) = %d, want 1", len(root.children))
	}
}

func TestRouteNodeInsertSharesParamNode(t *testing.T) {
	root := newRouteNode("")

	first := &compiledRoute{index: 0, entry: Entry{Pattern: "/users/:id", View: "user"}}
	second := &compiledRoute{index: 1, entry: Entry{Pattern: "/users/:name", View: "other"}}

	if !root.insert([]string{"users", ":id"}, first) {
		t.Fatal("first insert should succeed")
	}
	if root.insert([]string{"users", ":name"}, second) {
		t.Error("second insert with the same shape should be rejected")
	}

	users := root.findChild("users")
	if users == nil || users.paramChild == nil {
		t.Fatal("expected users node with a param child")
	}
	if !users.paramChild.isParam {
		t.Error("param child should be marked isParam")
	}
	if users.paramChild.route != first {
		t.Error("earlier entry should keep the node")
	}
}

func TestRouteNodeMatchBacktracks(t *testing.T) {
	root := newRouteNode("")

	literal := &compiledRoute{index: 0, entry: Entry{Pattern: "/users/new", View: "new-user"}, paramPos: -1}
	dynamicTodos := &compiledRoute{index: 1, entry: Entry{Pattern: "/users/:id/todos", View: "todos"}, paramName: "id", paramPos: 1}

	root.insert([]string{"users", "new"}, literal)
	root.insert([]string{"users", ":id", "todos"}, dynamicTodos)

	tests := []struct {
		path []string
		want *compiledRoute
	}{
		{[]string{"users", "new"}, literal},
		// literal "new" dead-ends, the dynamic branch takes over
		{[]string{"users", "new", "todos"}, dynamicTodos},
		{[]string{"users", "7", "todos"}, dynamicTodos},
		{[]string{"users", "7"}, nil},
		{[]string{"users", "a%2Fb", "todos"}, dynamicTodos},
		{[]string{"users", "100%", "todos"}, dynamicTodos},
		{nil, nil},
	}

	for _, tt := range tests {
		if got := root.match(tt.path); got != tt.want {
			t.Errorf("match(%v) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
