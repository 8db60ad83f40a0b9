package tutorial

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/resource"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"
	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/view"
)

// maxSuggestDistance is the largest edit distance a not-found suggestion may
// have.
const maxSuggestDistance = 3

// Link is a navigable link shown on a page.
type Link struct {
	Label string `json:"label" msgpack:"label"`
	Href  string `json:"href" msgpack:"href"`
}

// Page is the derived state every tutorial view publishes.
type Page struct {
	Heading string `json:"heading" msgpack:"heading"`
	Summary string `json:"summary" msgpack:"summary"`

	// Step is set for tour pages.
	Step *Step `json:"step,omitempty" msgpack:"step,omitempty"`

	Links []Link `json:"links,omitempty" msgpack:"links,omitempty"`

	// Suggestion is the closest known path on the not-found page.
	Suggestion string `json:"suggestion,omitempty" msgpack:"suggestion,omitempty"`
}

// UserTodos is the joined payload of the example-items view.
type UserTodos struct {
	User      User   `json:"user" msgpack:"user"`
	Todos     []Todo `json:"todos" msgpack:"todos"`
	Completed int    `json:"completed" msgpack:"completed"`
	Pending   int    `json:"pending" msgpack:"pending"`
}

// UsersPlan fetches the user list.
func UsersPlan() resource.Plan[[]User] {
	return resource.Single[[]User]("/users")
}

// UserTodosPlan fetches a user and their todos in parallel and joins them.
func UserTodosPlan() resource.Plan[UserTodos] {
	return resource.Plan[UserTodos]{
		Fetches: []resource.Fetch{
			{URL: "/users/:id", Parse: resource.JSON[User]()},
			{URL: "/users/:id/todos", Parse: resource.JSON[[]Todo]()},
		},
		Combine: func(results []any) (UserTodos, error) {
			out := UserTodos{
				User:  results[0].(User),
				Todos: results[1].([]Todo),
			}
			for _, t := range out.Todos {
				if t.Completed {
					out.Completed++
				} else {
					out.Pending++
				}
			}
			return out, nil
		},
	}
}

// Views returns the tutorial's view definitions. Not-found suggestions are
// drawn from the literal patterns of table.
func Views(table *router.Table) []view.Definition {
	tourPage := func(id router.ViewID, title, heading, summary string) view.Definition {
		return view.Definition{
			ID:    id,
			Title: title,
			Derive: func(view.Context) any {
				return page(id, heading, summary)
			},
		}
	}

	known := literalPaths(table)

	return []view.Definition{
		tourPage(ViewHome, "Home", "React Router Tutorial",
			"Learn routing by walking through it. Start the tour when you are ready."),
		tourPage(ViewWelcome, "Welcome", "Welcome to React Router",
			"Learn routing in React by experiencing it firsthand!"),
		tourPage(ViewWhatIsRouter, "What is a Router?", "What is React Router?",
			"A router maps URL paths to views, so an app can switch pages without a full page reload."),
		tourPage(ViewHowToUse, "How to Use", "How to Use React Router",
			"Install the package, set up a router, navigate with Link and useNavigate, add dynamic routes and handle 404 errors."),
		{
			ID:    ViewExample,
			Title: "Example",
			New:   view.Data(UsersPlan()),
			Derive: func(c view.Context) any {
				p := page(ViewExample, "Example Page",
					"This is an example page demonstrating data fetching and dynamic routing.")
				users, _ := c.State.Data.([]User)
				for _, u := range users {
					p.Links = append(p.Links, Link{Label: u.Name, Href: fmt.Sprintf("/example/%d", u.ID)})
				}
				p.Links = append(p.Links, Link{Label: "Back to How to Use", Href: "/how-to-use"})
				return p
			},
		},
		{
			ID:    ViewExampleItems,
			Title: "Example Items",
			New:   view.Data(UserTodosPlan()),
			Derive: func(c view.Context) any {
				p := page(ViewExampleItems, "Example Items Page",
					"This page demonstrates dynamic routing by fetching and displaying items based on the ID in the URL.")
				if ut, ok := c.State.Data.(UserTodos); ok {
					p.Heading = fmt.Sprintf("Todos for %s", ut.User.Name)
				}
				p.Links = []Link{{Label: "Back to Example Page", Href: "/example"}}
				return p
			},
		},
		tourPage(ViewConclusion, "Conclusion", "You Did It!",
			"You now understand the fundamentals of React Router."),
		tourPage(ViewOutro, "Outro", "Congratulations!",
			"You've completed the React Router guide."),
		{
			ID:    ViewNotFound,
			Title: "Not Found",
			Derive: func(c view.Context) any {
				return Page{
					Heading:    "404 - Page Not Found",
					Summary:    "The page you are looking for does not exist.",
					Links:      []Link{{Label: "Go back to the Welcome Page", Href: "/welcome"}},
					Suggestion: Suggest(c.Location.Path, known),
				}
			},
		},
	}
}

// Registry returns a registry with every tutorial view.
func Registry(table *router.Table) *view.Registry {
	r, err := view.NewRegistry(Views(table)...)
	if err != nil {
		panic(err)
	}
	return r
}

func page(id router.ViewID, heading, summary string) Page {
	p := Page{Heading: heading, Summary: summary}
	if s, ok := StepFor(id); ok {
		p.Step = &s
		if s.Prev != "" {
			p.Links = append(p.Links, Link{Label: "Previous", Href: s.Prev})
		}
		if s.Next != "" {
			p.Links = append(p.Links, Link{Label: "Next", Href: s.Next})
		}
	}
	return p
}

// literalPaths returns the patterns of table without dynamic segments.
func literalPaths(table *router.Table) []string {
	var paths []string
	for _, e := range table.Entries() {
		if e.IsWildcard() || strings.Contains(e.Pattern, ":") || e.Pattern == "/" {
			continue
		}
		paths = append(paths, e.Pattern)
	}
	return paths
}

// Suggest returns the known path closest to path, or "" when none is within
// maxSuggestDistance edits. Ties go to the earlier path.
func Suggest(path string, known []string) string {
	path = strings.ToLower(strings.TrimRight(path, "/"))
	if path == "" {
		return ""
	}

	best, bestDist := "", maxSuggestDistance+1
	for _, k := range known {
		if d := levenshtein.ComputeDistance(path, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}
