package router

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/go-playground/form/v4"
)

// Params maps dynamic segment names to their values.
type Params map[string]string

// Get returns the value bound to name, or "" when absent.
func (p Params) Get(name string) string {
	return p[name]
}

// Clone returns an independent copy. The copy is never nil.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Equal reports whether both sets bind the same names to the same values.
// A nil set equals an empty one.
func (p Params) Equal(other Params) bool {
	return maps.Equal(p, other)
}

// String renders the params sorted by name ("id=7"), for logs and keys.
func (p Params) String() string {
	if len(p) == 0 {
		return ""
	}
	keys := slices.Sorted(maps.Keys(p))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+p[k])
	}
	return strings.Join(parts, ",")
}

// paramDecoder decodes params into structs tagged with `param:"name"`.
// form.Decoder caches struct metadata and is safe for concurrent use.
var paramDecoder = func() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("param")
	return d
}()

// Decode populates a struct with values from the params.
// The target must be a pointer to a struct with `param` tags:
//
//	var p struct {
//	    ID int `param:"id"`
//	}
//	err := match.Params().Decode(&p)
func (p Params) Decode(target any) error {
	if target == nil {
		return nil
	}
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	if err := paramDecoder.Decode(target, values); err != nil {
		return fmt.Errorf("decoding params: %w", err)
	}
	return nil
}
