package hurl

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// Hurl compiles route trees. Its matcher table and settings are owned by the
// instance; do not change them while URLs or Patterns is running.
type Hurl struct {
	// Matchers is the type tag table. Register custom types directly:
	//
	//	h.Matchers["year"] = `\d{4}`
	Matchers Matchers

	// DefaultMatcher is the tag used for "<name>" parameters whose name is
	// not a registered tag.
	DefaultMatcher string

	// NamePrefix is prepended, joined by "_", to every derived route name.
	NamePrefix string

	logger *log.Logger
}

// Option configures a Hurl.
type Option func(*Hurl)

// WithNamePrefix sets the route name prefix.
func WithNamePrefix(prefix string) Option {
	return func(h *Hurl) {
		h.NamePrefix = prefix
	}
}

// WithDefaultMatcher sets the default matcher tag.
func WithDefaultMatcher(tag string) Option {
	return func(h *Hurl) {
		h.DefaultMatcher = tag
	}
}

// WithMatcher registers a matcher expression for tag.
func WithMatcher(tag, expr string) Option {
	return func(h *Hurl) {
		h.Matchers[tag] = expr
	}
}

// WithLogger logs every compiled route to l.
func WithLogger(l *log.Logger) Option {
	return func(h *Hurl) {
		h.logger = l
	}
}

// New creates a Hurl with the default matcher table.
func New(opts ...Option) *Hurl {
	h := &Hurl{
		Matchers:       DefaultMatchers(),
		DefaultMatcher: DefaultMatcherTag,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// URLs flattens tree into compiled routes, in tree order.
func (h *Hurl) URLs(tree Tree) ([]Route, error) {
	return h.Patterns("", tree)
}

// Patterns flattens tree like URLs. A non-empty viewPrefix is joined with
// "." in front of every View target.
func (h *Hurl) Patterns(viewPrefix string, tree Tree) ([]Route, error) {
	leaves, err := h.flatten(tree, nil)
	if err != nil {
		return nil, err
	}

	routes := make([]Route, 0, len(leaves))
	for _, leaf := range leaves {
		route, err := h.build(viewPrefix, leaf)
		if err != nil {
			return nil, err
		}
		if h.logger != nil {
			h.logger.Printf("registered %s -> %s (%s)", route.Pattern, TargetString(route.Target), route.Name)
		}
		routes = append(routes, route)
	}
	return routes, nil
}

// Include wraps compiled routes for mounting under another tree.
func (h *Hurl) Include(routes []Route, opts ...IncludeOption) Include {
	inc := Include{Routes: routes}
	for _, opt := range opts {
		opt(&inc)
	}
	return inc
}

// leaf is a flattened entry before anchoring and naming.
type leaf struct {
	path   string
	parts  []Part
	target Target
}

func (h *Hurl) flatten(tree Tree, trail []string) ([]leaf, error) {
	var out []leaf
	for _, e := range tree {
		path := joinTrail(trail, e.Segment)

		parts, err := h.CompileSegment(e.Segment)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", path, err)
		}

		switch t := e.Target.(type) {
		case Tree:
			children, err := h.flatten(t, append(trail[:len(trail):len(trail)], e.Segment))
			if err != nil {
				return nil, err
			}
			for _, c := range children {
				out = append(out, leaf{path: c.path, parts: joinParts(parts, c.parts), target: c.target})
			}
		case View, Func, Include:
			out = append(out, leaf{path: path, parts: parts, target: t})
		default:
			return nil, fmt.Errorf("route %q: %w", path, syntaxErr(e.Segment, -1, "missing target"))
		}
	}
	return out, nil
}

func (h *Hurl) build(viewPrefix string, l leaf) (Route, error) {
	if err := checkDuplicates(l.path, l.parts); err != nil {
		return Route{}, fmt.Errorf("route %q: %w", l.path, err)
	}

	target := l.target
	if v, ok := target.(View); ok && viewPrefix != "" {
		target = View(viewPrefix + "." + string(v))
	}

	pattern := "^$"
	if body := renderParts(l.parts); body != "" {
		pattern = "^" + body + "/$"
	}

	var captures []string
	for _, p := range l.parts {
		if p.Param && p.Name != "" {
			captures = append(captures, p.Name)
		}
	}

	return Route{
		Pattern:  pattern,
		Target:   target,
		Captures: captures,
		Name:     h.routeName(target),
		Parts:    l.parts,
	}, nil
}

// CompileSegment parses segment and resolves the matcher of every capture.
func (h *Hurl) CompileSegment(segment string) ([]Part, error) {
	parts, err := ParseSegment(segment)
	if err != nil {
		return nil, err
	}
	for i := range parts {
		if !parts[i].Param {
			continue
		}
		tag, expr, err := h.resolve(segment, parts[i])
		if err != nil {
			return nil, err
		}
		parts[i].Tag = tag
		parts[i].Matcher = expr
	}
	return parts, nil
}

// SegmentPattern compiles segment to regular expression text and returns the
// names it captures.
func (h *Hurl) SegmentPattern(segment string) (string, []string, error) {
	parts, err := h.CompileSegment(segment)
	if err != nil {
		return "", nil, err
	}
	var names []string
	for _, p := range parts {
		if p.Param && p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return renderParts(parts), names, nil
}

// resolve finds the matcher tag and expression for a capture. An explicit
// type must be registered. An implicit one falls back to the default matcher.
func (h *Hurl) resolve(segment string, p Part) (string, string, error) {
	if expr, ok := h.Matchers.Lookup(p.Type); ok {
		return p.Type, expr, nil
	}
	if !p.Implicit {
		return "", "", &UnknownMatcherError{Segment: segment, Type: p.Type}
	}
	if expr, ok := h.Matchers.Lookup(h.DefaultMatcher); ok {
		return h.DefaultMatcher, expr, nil
	}
	return "", "", &UnknownMatcherError{Segment: segment, Type: h.DefaultMatcher}
}

func (h *Hurl) routeName(t Target) string {
	var name string
	switch t := t.(type) {
	case View:
		name = t.Name()
	case Func:
		name = t.Name()
	default:
		return ""
	}
	if name == "" || h.NamePrefix == "" {
		return name
	}
	return h.NamePrefix + "_" + name
}

func joinTrail(trail []string, segment string) string {
	var parts []string
	for _, s := range append(trail[:len(trail):len(trail)], segment) {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, pathSep)
}

// IsSyntaxError reports whether err is or wraps a SyntaxError.
func IsSyntaxError(err error) bool {
	return errors.Is(err, ErrSyntax)
}

// IsUnknownMatcher reports whether err is or wraps an UnknownMatcherError.
func IsUnknownMatcher(err error) bool {
	return errors.Is(err, ErrUnknownMatcher)
}
