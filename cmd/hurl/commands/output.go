package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/hurl/pkg/chiroute"
	"github.com/abdul-hamid-achik/hurl/pkg/hurl"
)

// jsonOutput is the global flag for JSON output mode
var jsonOutput bool

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RoutesOutput represents the JSON output for the routes command
type RoutesOutput struct {
	File        string        `json:"file"`
	Routes      []RouteOutput `json:"routes"`
	TotalRoutes int           `json:"total_routes"`
}

// RouteOutput represents a single route in JSON output
type RouteOutput struct {
	Pattern   string        `json:"pattern"`
	Target    string        `json:"target"`
	Name      string        `json:"name,omitempty"`
	Captures  []string      `json:"captures,omitempty"`
	Namespace string        `json:"namespace,omitempty"`
	AppName   string        `json:"app_name,omitempty"`
	Include   []RouteOutput `json:"include,omitempty"`
}

// MatchOutput represents the JSON output for the match command
type MatchOutput struct {
	Path       string            `json:"path"`
	Matched    bool              `json:"matched"`
	Pattern    string            `json:"pattern,omitempty"`
	Target     string            `json:"target,omitempty"`
	Name       string            `json:"name,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
	Args       []string          `json:"args,omitempty"`
	Namespaces []string          `json:"namespaces,omitempty"`
}

// ChiRouteOutput represents one chi pattern in JSON output
type ChiRouteOutput struct {
	Pattern string           `json:"pattern"`
	Target  string           `json:"target"`
	Mount   bool             `json:"mount,omitempty"`
	Routes  []ChiRouteOutput `json:"routes,omitempty"`
}

// newRouteOutputs converts compiled routes, nesting include contents.
func newRouteOutputs(routes []hurl.Route) []RouteOutput {
	out := make([]RouteOutput, 0, len(routes))
	for _, r := range routes {
		ro := RouteOutput{
			Pattern:  r.Pattern,
			Target:   hurl.TargetString(r.Target),
			Name:     r.Name,
			Captures: r.Captures,
		}
		if inc, ok := r.Target.(hurl.Include); ok {
			ro.Namespace = inc.Namespace
			ro.AppName = inc.AppName
			ro.Include = newRouteOutputs(inc.Routes)
		}
		out = append(out, ro)
	}
	return out
}

// newChiOutputs converts compiled routes to chi patterns.
func newChiOutputs(routes []hurl.Route) []ChiRouteOutput {
	out := make([]ChiRouteOutput, 0, len(routes))
	for _, r := range routes {
		co := ChiRouteOutput{
			Pattern: chiroute.Pattern(r),
			Target:  hurl.TargetString(r.Target),
		}
		if inc, ok := r.Target.(hurl.Include); ok {
			co.Pattern = chiroute.MountPattern(r)
			co.Mount = true
			co.Routes = newChiOutputs(inc.Routes)
		}
		out = append(out, co)
	}
	return out
}

// countRoutes counts leaf routes, descending into includes.
func countRoutes(routes []hurl.Route) int {
	n := 0
	for _, r := range routes {
		if inc, ok := r.Target.(hurl.Include); ok {
			n += countRoutes(inc.Routes)
			continue
		}
		n++
	}
	return n
}

// printJSON outputs data as formatted JSON to stdout
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printSuccess outputs a successful JSON response
func printSuccess(data any) {
	printJSON(JSONResponse{Success: true, Data: data})
}

// printJSONError outputs an error as JSON
func printJSONError(err error) {
	printJSON(JSONResponse{Success: false, Error: err.Error()})
}
