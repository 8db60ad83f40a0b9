package router

import "strings"

// routeNode is a node in the segment tree.
type routeNode struct {
	// segment is the literal segment this node matches
	segment string

	// isParam indicates this is a dynamic segment node (:id)
	isParam bool

	// route is the entry terminating at this node, if any
	route *compiledRoute

	// children are literal segment children
	children []*routeNode

	// paramChild is the dynamic segment child
	paramChild *routeNode
}

// compiledRoute is an entry prepared for matching.
type compiledRoute struct {
	index     int
	entry     Entry
	paramName string
	paramPos  int // -1 when the pattern has no dynamic segment
}

func newRouteNode(segment string) *routeNode {
	return &routeNode{segment: segment}
}

// findChild finds a child node with an exact segment match.
func (n *routeNode) findChild(segment string) *routeNode {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves a child node for the given segment.
func (n *routeNode) addChild(segment string) *routeNode {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newRouteNode(segment)
	n.children = append(n.children, child)
	return child
}

// addParamChild returns the dynamic child, creating it on first use. Patterns
// that differ only in the parameter name share the node.
func (n *routeNode) addParamChild() *routeNode {
	if n.paramChild == nil {
		n.paramChild = newRouteNode("")
		n.paramChild.isParam = true
	}
	return n.paramChild
}

// insert adds a route to the tree. It reports false when an earlier entry with
// the same shape already terminates at the node; the earlier entry keeps it.
func (n *routeNode) insert(segments []string, route *compiledRoute) bool {
	current := n
	for _, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			current = current.addParamChild()
		} else {
			current = current.addChild(seg)
		}
	}
	if current.route != nil {
		return false
	}
	current.route = route
	return true
}

// match finds the route for the given path segments. At every position a literal
// child is tried before the dynamic child, backtracking when the literal branch
// dead-ends further down.
func (n *routeNode) match(segments []string) *compiledRoute {
	if len(segments) == 0 {
		return n.route
	}

	segment := segments[0]
	remaining := segments[1:]

	if child := n.findChild(segment); child != nil {
		if route := child.match(remaining); route != nil {
			return route
		}
	}

	if n.paramChild != nil {
		if route := n.paramChild.match(remaining); route != nil {
			return route
		}
	}

	return nil
}
