package tutorial_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/fixture"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/tutorial"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/fetch"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/loop"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/navigation"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/resource"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/view"
)

func newHost(t *testing.T, path string) (*view.Host, *navigation.Controller, *loop.Queue) {
	t.Helper()

	data, err := fixture.Load()
	require.NoError(t, err)
	srv := httptest.NewServer(fixture.Router(data))
	t.Cleanup(srv.Close)

	src, err := fetch.NewHTTP(srv.URL)
	require.NoError(t, err)

	table := tutorial.Table()
	nav := navigation.New(table, navigation.WithInitialPath(path))
	q := loop.NewQueue()
	host := view.NewHost(nav, tutorial.Registry(table), view.Deps{Source: src, Dispatcher: q})
	host.Start(context.Background())
	t.Cleanup(host.Stop)

	return host, nav, q
}

func TestExampleItemsLoadsUserAndTodos(t *testing.T) {
	host, _, q := newHost(t, "/example/7")

	assert.Equal(t, resource.Pending, host.Current().State.Status)
	require.True(t, q.RunNext(5*time.Second))

	f := host.Current()
	require.Equal(t, resource.Success, f.State.Status, "err: %v", f.State.Err)

	ut, ok := f.State.Data.(tutorial.UserTodos)
	require.True(t, ok)
	assert.Equal(t, "Kurtis Weissnat", ut.User.Name)
	assert.Len(t, ut.Todos, 4)
	assert.Equal(t, len(ut.Todos), ut.Completed+ut.Pending)

	page := f.Derived.(tutorial.Page)
	assert.Equal(t, "Todos for Kurtis Weissnat", page.Heading)
}

func TestExampleItemsUnknownUserFails(t *testing.T) {
	host, _, q := newHost(t, "/example/999")

	require.True(t, q.RunNext(5*time.Second))

	f := host.Current()
	require.Equal(t, resource.Error, f.State.Status)
	assert.ErrorIs(t, f.State.Err, fetch.ErrNotFound)
}

func TestNavigatingAwayDiscardsPendingUsers(t *testing.T) {
	host, nav, q := newHost(t, "/example")
	require.Equal(t, resource.Pending, host.Current().State.Status)

	nav.Navigate("/welcome")
	assert.Equal(t, tutorial.ViewWelcome, host.Current().View)

	// the users fetch settles into a disposed lifecycle
	require.True(t, q.RunNext(5*time.Second))
	f := host.Current()
	assert.Equal(t, tutorial.ViewWelcome, f.View)
	assert.Equal(t, resource.Success, f.State.Status)
	assert.Nil(t, f.State.Data)
}
