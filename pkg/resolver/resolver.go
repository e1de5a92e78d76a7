// Package resolver matches request paths against compiled routes.
//
// It exists to debug route tables: it reports which route a path selects
// and what it captures, descending into includes the way a dispatcher
// would. It never calls a target.
package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/hurl/pkg/hurl"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of compiled patterns kept by default.
const DefaultCacheSize = 1024

// Match is the result of resolving a path.
type Match struct {
	// Route is the leaf route that matched.
	Route hurl.Route
	// Params holds named captures from every level.
	Params map[string]string
	// Args holds unnamed captures from every level, in order.
	Args []string
	// Namespaces lists the include namespaces entered, outermost first.
	Namespaces []string
}

// QualifiedName returns the route name prefixed by its namespaces,
// joined by ":".
func (m Match) QualifiedName() string {
	if m.Route.Name == "" {
		return ""
	}
	return strings.Join(append(append([]string(nil), m.Namespaces...), m.Route.Name), ":")
}

// Resolver matches paths against a route list. It is safe for concurrent use.
type Resolver struct {
	routes []hurl.Route
	cache  *lru.Cache[string, *regexp.Regexp]
}

// New creates a Resolver over routes with a compiled-pattern cache of the
// given size. A size <= 0 selects DefaultCacheSize.
func New(routes []hurl.Route, cacheSize int) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *regexp.Regexp](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create pattern cache: %w", err)
	}
	return &Resolver{routes: routes, cache: cache}, nil
}

// Resolve matches path, given without its leading "/", and reports the
// first route that selects it.
func (r *Resolver) Resolve(path string) (Match, bool, error) {
	m := Match{Params: make(map[string]string)}
	ok, err := r.resolve(r.routes, path, &m)
	if err != nil || !ok {
		return Match{}, false, err
	}
	return m, true, nil
}

func (r *Resolver) resolve(routes []hurl.Route, path string, m *Match) (bool, error) {
	for _, route := range routes {
		inc, isInclude := route.Target.(hurl.Include)

		pattern := route.Pattern
		if isInclude {
			pattern = route.Prefix()
		}
		re, err := r.compile(pattern)
		if err != nil {
			return false, err
		}

		loc := re.FindStringSubmatchIndex(path)
		if loc == nil {
			continue
		}

		saved := snapshot(m)
		collect(re, path, loc, m)

		if !isInclude {
			m.Route = route
			return true, nil
		}

		if inc.Namespace != "" {
			m.Namespaces = append(m.Namespaces, inc.Namespace)
		}
		ok, err := r.resolve(inc.Routes, path[loc[1]:], m)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		restore(m, saved)
	}
	return false, nil
}

func (r *Resolver) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := r.cache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile route pattern %q: %w", pattern, err)
	}
	r.cache.Add(pattern, re)
	return re, nil
}

// collect stores the captures of one match in m.
func collect(re *regexp.Regexp, path string, loc []int, m *Match) {
	for i, name := range re.SubexpNames() {
		if i == 0 || loc[2*i] < 0 {
			continue
		}
		value := path[loc[2*i]:loc[2*i+1]]
		if name == "" {
			m.Args = append(m.Args, value)
			continue
		}
		m.Params[name] = value
	}
}

type state struct {
	params     map[string]string
	args       int
	namespaces int
}

func snapshot(m *Match) state {
	params := make(map[string]string, len(m.Params))
	for k, v := range m.Params {
		params[k] = v
	}
	return state{params: params, args: len(m.Args), namespaces: len(m.Namespaces)}
}

func restore(m *Match, s state) {
	m.Params = s.params
	m.Args = m.Args[:s.args]
	m.Namespaces = m.Namespaces[:s.namespaces]
}

// Cached returns the number of compiled patterns in the cache.
func (r *Resolver) Cached() int {
	return r.cache.Len()
}
