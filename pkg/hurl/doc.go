// Package hurl compiles nested URL trees into flat, dispatcher-ready routes.
//
// A route tree maps path fragments to views:
//
//	h := hurl.New()
//	routes, err := h.URLs(hurl.Tree{
//	    {"articles", hurl.Tree{
//	        {"<id:int>/<id2:int>", hurl.View("news.views.details")},
//	    }},
//	})
//	// routes[0].Pattern == `^articles/(?P<id>\d+)/(?P<id2>\d+)/$`
//	// routes[0].Name    == "details"
//
// # Parameters
//
// Segments may contain parameter tokens:
//
//	<name>        capture named "name"; type "name" if registered, else the default
//	<name:type>   capture named "name" using the "type" matcher
//	<:type>       unnamed capture using the "type" matcher
//
// Matchers are regular expression fragments keyed by type tag. Every Hurl
// starts with a copy of DefaultMatchers and may register its own.
package hurl
