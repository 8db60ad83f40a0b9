package navigation

import (
	"testing"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
)

func TestLinkFollow(t *testing.T) {
	c := newController(t)

	loc := c.Link("/users/9").Follow()

	if loc.View() != router.ViewID("user") {
		t.Errorf("View() = %q, want %q", loc.View(), "user")
	}
	if got := c.Current().Matched.Param("id"); got != "9" {
		t.Errorf("Param(id) = %q, want %q", got, "9")
	}
}

func TestLinkActive(t *testing.T) {
	tests := []struct {
		href  string
		path  string
		exact bool
		want  bool
	}{
		{"/example", "/example", true, true},
		{"/example/", "/example", true, true},
		{"/example", "/example/7", true, false},
		{"/example", "/example/7", false, true},
		{"/example", "/examples", false, false},
		{"/", "/welcome", true, false},
		{"/", "/welcome", false, true},
	}

	for _, tt := range tests {
		l := Link{Href: tt.href}
		got := l.Active(Location{Path: tt.path}, tt.exact)
		if got != tt.want {
			t.Errorf("Link(%q).Active(%q, exact=%v) = %v, want %v", tt.href, tt.path, tt.exact, got, tt.want)
		}
	}
}

func TestLinkValidate(t *testing.T) {
	tests := []struct {
		href    string
		wantErr bool
	}{
		{"/welcome", false},
		{"/example/7?x=1", false},
		{"https://example.com", true},
		{"//evil.com", true},
		{"welcome", true},
	}

	for _, tt := range tests {
		err := Link{Href: tt.href}.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Link(%q).Validate() error = %v, wantErr %v", tt.href, err, tt.wantErr)
		}
	}
}
