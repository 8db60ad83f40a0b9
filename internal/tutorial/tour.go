package tutorial

import "github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/router"

// Step places a page in the guided tour.
type Step struct {
	// Index is 1-based; the home page is 0.
	Index int
	Total int

	// Prev and Next are tour paths, empty at either end.
	Prev string
	Next string
}

// tour is the page order of the guided tour.
var tour = []struct {
	view router.ViewID
	path string
}{
	{ViewWelcome, "/welcome"},
	{ViewWhatIsRouter, "/what-is-router"},
	{ViewHowToUse, "/how-to-use"},
	{ViewExample, "/example"},
	{ViewConclusion, "/conclusion"},
	{ViewOutro, "/outro"},
}

// StepFor returns the tour position of a view.
func StepFor(id router.ViewID) (Step, bool) {
	if id == ViewHome {
		return Step{Total: len(tour), Next: tour[0].path}, true
	}
	for i, t := range tour {
		if t.view != id {
			continue
		}
		s := Step{Index: i + 1, Total: len(tour)}
		if i > 0 {
			s.Prev = tour[i-1].path
		}
		if i+1 < len(tour) {
			s.Next = tour[i+1].path
		}
		return s, true
	}
	return Step{}, false
}
