package main

import (
	"bytes"
	stderrors "errors"
	"net/http/httptest"
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/errors"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/internal/fixture"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color", "--log-level=error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func fixtureAPI(t *testing.T) {
	t.Helper()
	data, err := fixture.Load()
	require.NoError(t, err)
	srv := httptest.NewServer(fixture.Router(data))
	t.Cleanup(srv.Close)
	t.Setenv("TUTORIAL_SOURCE_BASE_URL", srv.URL)
}

func TestMatchCommand(t *testing.T) {
	out, err := execute(t, "match", "/example/7", "/nope")
	require.NoError(t, err)

	assert.Contains(t, out, "example-items")
	assert.Contains(t, out, "id=7")
	assert.Contains(t, out, "not-found")
}

func TestMatchCommandList(t *testing.T) {
	out, err := execute(t, "match", "--list")
	require.NoError(t, err)

	for _, pattern := range []string{"/welcome", "/example/:id", "*"} {
		assert.Contains(t, out, pattern)
	}
}

func TestVisitCommandJSON(t *testing.T) {
	fixtureAPI(t)

	out, err := execute(t, "visit", "/example/7", "--json")
	require.NoError(t, err)

	var frame struct {
		View   string `json:"view"`
		Status string `json:"status"`
		Data   struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &frame), out)
	assert.Equal(t, "example-items", frame.View)
	assert.Equal(t, "success", frame.Status)
	assert.Equal(t, "Kurtis Weissnat", frame.Data.User.Name)
}

func TestVisitCommandFetchFailure(t *testing.T) {
	fixtureAPI(t)

	out, err := execute(t, "visit", "/example/999")
	require.Error(t, err)

	var d *errors.Diagnostic
	require.True(t, stderrors.As(err, &d))
	assert.Equal(t, errors.CodeFetchFailed, d.Code)
	assert.Contains(t, out, "Error:")
}

func TestInvalidConfigIsReported(t *testing.T) {
	t.Setenv("TUTORIAL_LIVE_CODEC", "xml")

	_, err := execute(t, "match", "/")
	require.Error(t, err)

	var d *errors.Diagnostic
	require.True(t, stderrors.As(err, &d))
	assert.Equal(t, errors.CodeConfigValue, d.Code)
	assert.Equal(t, "live.codec", d.Source)
}
