// Package chiroute registers compiled hurl routes on a chi router.
//
// Captures become chi regexp parameters: `^articles/(?P<id>\d+)/$` is
// registered as "/articles/{id:\d+}/". Unnamed captures are named arg0,
// arg1, ... in order.
//
// Literal text is passed to chi as plain path text, while hurl treats it as
// regular expression text. A literal such as "feed.xml" therefore matches
// only "/feed.xml/" here, although Route.Pattern also matches "/feedaxml/".
package chiroute

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/hurl/pkg/hurl"
	"github.com/go-chi/chi/v5"
)

// HandlerResolver returns the handler serving a route's target.
type HandlerResolver func(route hurl.Route) (http.Handler, error)

// Pattern converts a compiled route into a chi routing pattern.
func Pattern(route hurl.Route) string {
	var b strings.Builder
	b.WriteString("/")

	arg := 0
	for _, p := range route.Parts {
		if !p.Param {
			b.WriteString(p.Literal)
			continue
		}
		name := p.Name
		if name == "" {
			name = "arg" + strconv.Itoa(arg)
			arg++
		}
		b.WriteString("{" + name + ":" + p.Matcher + "}")
	}

	if len(route.Parts) > 0 {
		b.WriteString("/")
	}
	return b.String()
}

// MountPattern returns the chi prefix an include is mounted at.
func MountPattern(route hurl.Route) string {
	p := strings.TrimSuffix(Pattern(route), "/")
	if p == "" {
		return "/"
	}
	return p
}

// Mount registers routes on r in order. Includes are mounted as sub-routers;
// includes sharing a mount prefix share one sub-router. When two routes
// produce the same chi pattern the first one is kept.
func Mount(r chi.Router, routes []hurl.Route, resolve HandlerResolver) error {
	return newLevel(r).mount(routes, resolve)
}

// level tracks what has been registered on one router.
type level struct {
	router chi.Router
	subs   map[string]*level
	seen   map[string]bool
}

func newLevel(r chi.Router) *level {
	return &level{router: r, subs: make(map[string]*level), seen: make(map[string]bool)}
}

func (l *level) mount(routes []hurl.Route, resolve HandlerResolver) error {
	for _, route := range routes {
		if inc, ok := route.Target.(hurl.Include); ok {
			prefix := MountPattern(route)
			sub, ok := l.subs[prefix]
			if !ok {
				sub = newLevel(chi.NewRouter())
				l.subs[prefix] = sub
				l.router.Mount(prefix, sub.router)
			}
			if err := sub.mount(inc.Routes, resolve); err != nil {
				return err
			}
			continue
		}

		pattern := Pattern(route)
		if l.seen[pattern] {
			continue
		}
		h, err := resolve(route)
		if err != nil {
			return fmt.Errorf("route %s: %w", route.Pattern, err)
		}
		if h == nil {
			return fmt.Errorf("route %s: no handler for %s", route.Pattern, hurl.TargetString(route.Target))
		}
		l.router.Handle(pattern, h)
		l.seen[pattern] = true
	}
	return nil
}

// Registry resolves targets by route name or view path.
type Registry map[string]http.Handler

// Resolve looks up the handler for a route. View targets are looked up by
// their full path, then by route name. Func targets whose value is an
// http.HandlerFunc-compatible function are used directly.
func (reg Registry) Resolve(route hurl.Route) (http.Handler, error) {
	switch t := route.Target.(type) {
	case hurl.View:
		if h, ok := reg[string(t)]; ok {
			return h, nil
		}
	case hurl.Func:
		switch fn := t.Fn.(type) {
		case http.Handler:
			return fn, nil
		case func(http.ResponseWriter, *http.Request):
			return http.HandlerFunc(fn), nil
		}
	}
	if h, ok := reg[route.Name]; ok && route.Name != "" {
		return h, nil
	}
	return nil, fmt.Errorf("no handler registered for %s", hurl.TargetString(route.Target))
}
