package navigation

import (
	"strings"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/routepath"
)

// Link is a declarative navigation target.
type Link struct {
	Href string
	nav  Navigator
}

// NewLink creates a link that follows through nav.
func NewLink(nav Navigator, href string) Link {
	return Link{Href: href, nav: nav}
}

// Validate reports whether Href is a same-app path.
func (l Link) Validate() error {
	_, err := routepath.ValidateNavPath(l.Href)
	return err
}

// Follow navigates to the link target.
func (l Link) Follow() Location {
	return l.nav.Navigate(l.Href)
}

// Active reports whether loc is at the link target. With exact false, any
// location below the target also counts ("/example" is active at "/example/7").
func (l Link) Active(loc Location, exact bool) bool {
	href := routepath.Clean(l.Href)
	if loc.Path == href {
		return true
	}
	if exact {
		return false
	}
	if href == "/" {
		return true
	}
	return strings.HasPrefix(loc.Path, href+"/")
}
