package navigation

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/metrics"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

func newController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	table, err := router.NewTable(
		router.Entry{Pattern: "/", View: "home"},
		router.Entry{Pattern: "/users/:id", View: "user"},
		router.Entry{Pattern: "*", View: "not-found"},
	)
	require.NoError(t, err)
	return New(table, opts...)
}

func TestControllerStartsAtInitialPath(t *testing.T) {
	c := newController(t)
	assert.Equal(t, "/", c.Current().Path)
	assert.Equal(t, router.ViewID("home"), c.Current().View())

	c = newController(t, WithInitialPath("/users/3?tab=todos"))
	loc := c.Current()
	assert.Equal(t, "/users/3", loc.Path)
	assert.Equal(t, "tab=todos", loc.Query)
	assert.Equal(t, "/users/3?tab=todos", loc.URL())
	assert.Equal(t, "3", loc.Matched.Param("id"))
}

func TestNavigateReplacesLocationAndNotifies(t *testing.T) {
	c := newController(t)

	var got []Location
	c.Subscribe(func(loc Location) { got = append(got, loc) })

	loc := c.Navigate("/users/42/")

	assert.Equal(t, "/users/42", loc.Path)
	assert.Equal(t, router.ViewID("user"), loc.View())
	assert.Equal(t, router.Params{"id": "42"}, loc.Matched.Params())
	assert.Equal(t, loc, c.Current())
	require.Len(t, got, 1)
	assert.Equal(t, loc, got[0])
}

func TestNavigateUnknownPathFallsBack(t *testing.T) {
	c := newController(t)
	loc := c.Navigate("/unknown/path")

	assert.Equal(t, router.ViewID("not-found"), loc.View())
	assert.True(t, loc.Matched.IsFallback())
}

func TestNavigateInvalidPathFallsBack(t *testing.T) {
	var buf bytes.Buffer
	c := newController(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	for _, p := range []string{"/../etc", "/a\\b", "/bad%zz"} {
		loc := c.Navigate(p)
		assert.Equal(t, router.ViewID("not-found"), loc.View(), p)
	}
	assert.Contains(t, buf.String(), "invalid navigation path")
}

func TestNavigateMalformedEscapeBindsRawSegment(t *testing.T) {
	c := newController(t)

	loc := c.Navigate("/users/100%?tab=todos")
	assert.Equal(t, router.ViewID("user"), loc.View())
	assert.Equal(t, "100%", loc.Matched.Param("id"))
	assert.Equal(t, "tab=todos", loc.Query)

	loc = c.Navigate("/users/a%2Fb")
	assert.Equal(t, router.ViewID("user"), loc.View())
	assert.Equal(t, "a%2Fb", loc.Matched.Param("id"))
}

func TestNavigateIdempotent(t *testing.T) {
	c := newController(t)

	calls := 0
	c.Subscribe(func(Location) { calls++ })

	first := c.Navigate("/users/7")
	second := c.Navigate("/users/7")

	assert.Equal(t, 2, calls)
	assert.True(t, first.Matched.Equal(second.Matched))
	assert.Equal(t, first.Path, second.Path)
}

func TestSubscribersCalledInRegistrationOrder(t *testing.T) {
	c := newController(t)

	var order []int
	for i := range 5 {
		c.Subscribe(func(Location) { order = append(order, i) })
	}
	c.Navigate("/")

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	c := newController(t)

	var order []string
	var unsubB func()

	c.Subscribe(func(Location) {
		order = append(order, "a")
		unsubB()
	})
	unsubB = c.Subscribe(func(Location) { order = append(order, "b") })
	c.Subscribe(func(Location) {
		order = append(order, "c")
		c.Subscribe(func(Location) { order = append(order, "late") })
	})

	c.Navigate("/")
	assert.Equal(t, []string{"a", "b", "c"}, order, "pass uses the list as it was when it started")

	order = nil
	c.Navigate("/")
	assert.Equal(t, []string{"a", "c", "late"}, order)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	c := newController(t)

	calls := 0
	unsub := c.Subscribe(func(Location) { calls++ })
	other := 0
	c.Subscribe(func(Location) { other++ })

	unsub()
	unsub()
	c.Navigate("/")

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, other)
}

func TestCurrentFromOtherGoroutines(t *testing.T) {
	c := newController(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				loc := c.Current()
				if loc.Path == "" {
					t.Error("Current returned a zero location")
					return
				}
			}
		}()
	}
	for i := range 100 {
		if i%2 == 0 {
			c.Navigate("/users/1")
		} else {
			c.Navigate("/")
		}
	}
	wg.Wait()
}

func TestNavigateRecordsMetrics(t *testing.T) {
	m := metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))
	c := newController(t, WithMetrics(m))
	c.Navigate("/users/1")
	c.Navigate("/nope")
}

func TestDefaultController(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	c := newController(t)
	SetDefault(c)
	assert.Same(t, c, Default())
}
