// Package resource runs the data fetches a view declares and tracks their
// state.
//
// A Lifecycle belongs to one view. Each Activate or Reactivate starts a new
// instance keyed by the route params:
//
//	idle → pending → success | error
//
// The fetches of an instance run concurrently and are joined: all must succeed
// for success, and the first failure is the instance's error. Results come back
// through a loop.Dispatcher, so every state change happens on the owning
// goroutine.
//
// Fetches are never cancelled. A result whose key no longer equals the current
// key, or that arrives after the instance settled, is dropped without touching
// the state:
//
//	lc := resource.New(resource.Single[[]Todo]("/users/:id/todos"), src, loop)
//	lc.Activate(ctx, router.Params{"id": "7"})
//	lc.Reactivate(ctx, router.Params{"id": "8"}) // the id=7 result will be discarded
//
// Retrying is calling Activate again once the instance is in Error.
package resource
