package hurl

import "strings"

// Route is one compiled entry of a flattened tree.
type Route struct {
	// Pattern is the anchored regular expression, e.g. `^articles/(?P<id>\d+)/$`.
	Pattern string
	// Target is a View, Func or Include. Never a Tree.
	Target Target
	// Captures lists the named captures in order of appearance.
	Captures []string
	// Name is the derived route name; empty for includes.
	Name string
	// Parts is the parsed full path with resolved matchers.
	Parts []Part
}

// IsInclude reports whether the route mounts another route set.
func (r Route) IsInclude() bool {
	_, ok := r.Target.(Include)
	return ok
}

// Prefix returns the pattern without its end anchor, for matching the
// leading part of a path against an include.
func (r Route) Prefix() string {
	return strings.TrimSuffix(r.Pattern, "$")
}

// Tuple returns the (pattern, view, kwargs, name) shape used for
// registration with the dispatcher. Unset kwargs and names are nil.
func (r Route) Tuple() [4]any {
	var view any
	switch t := r.Target.(type) {
	case View:
		view = string(t)
	case Func:
		view = t.Fn
	case Include:
		view = t.Tuple()
	}
	return [4]any{r.Pattern, view, nil, nilIfEmpty(r.Name)}
}
