// Package openapi describes compiled hurl routes as an OpenAPI document.
package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/hurl/pkg/hurl"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Config configures document generation.
type Config struct {
	// Title is the API title (default: "API").
	Title string

	// Version is the API version (default: "1.0.0").
	Version string

	// Description is the API description.
	Description string

	// OpenAPIVersion is the spec version (default: "3.0.3").
	OpenAPIVersion string
}

// Generator builds OpenAPI documents from routes.
type Generator struct {
	config Config
}

// NewGenerator creates a Generator, filling in config defaults.
func NewGenerator(config Config) *Generator {
	if config.Title == "" {
		config.Title = "API"
	}
	if config.Version == "" {
		config.Version = "1.0.0"
	}
	if config.OpenAPIVersion == "" {
		config.OpenAPIVersion = "3.0.3"
	}
	return &Generator{config: config}
}

// Generate creates a document with one GET operation per route. Includes
// are expanded. When two routes share a path the first one is kept, as a
// dispatcher would select it.
func (g *Generator) Generate(routes []hurl.Route) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: g.config.OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       g.config.Title,
			Version:     g.config.Version,
			Description: g.config.Description,
		},
		Paths: openapi3.NewPaths(),
	}

	g.addRoutes(doc, routes, scope{})
	return doc
}

// GenerateJSON returns the document as indented JSON.
func (g *Generator) GenerateJSON(routes []hurl.Route) ([]byte, error) {
	return json.MarshalIndent(g.Generate(routes), "", "  ")
}

// GenerateYAML returns the document as YAML.
func (g *Generator) GenerateYAML(routes []hurl.Route) ([]byte, error) {
	return yaml.Marshal(g.Generate(routes))
}

// WriteToFile writes the document in the given format ("json" or "yaml").
func (g *Generator) WriteToFile(routes []hurl.Route, path, format string) error {
	data, err := g.Marshal(routes, format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal encodes the document in the given format ("json" or "yaml").
func (g *Generator) Marshal(routes []hurl.Route, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return g.GenerateYAML(routes)
	case "json", "":
		return g.GenerateJSON(routes)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
}

// scope carries what enclosing includes contribute to a nested route.
type scope struct {
	segments   []string
	params     openapi3.Parameters
	namespaces []string
	args       int
}

func (g *Generator) addRoutes(doc *openapi3.T, routes []hurl.Route, s scope) {
	for _, route := range routes {
		local := s
		segment, params := g.pathOf(route.Parts, &local.args)
		local.segments = appendNonEmpty(s.segments, segment)
		local.params = append(append(openapi3.Parameters(nil), s.params...), params...)

		if inc, ok := route.Target.(hurl.Include); ok {
			if inc.Namespace != "" {
				local.namespaces = append(append([]string(nil), s.namespaces...), inc.Namespace)
			}
			g.addRoutes(doc, inc.Routes, local)
			continue
		}

		path := "/"
		if len(local.segments) > 0 {
			path = "/" + strings.Join(local.segments, "/") + "/"
		}
		if doc.Paths.Value(path) != nil {
			continue
		}
		doc.Paths.Set(path, &openapi3.PathItem{Get: g.buildOperation(route, local)})
	}
}

// pathOf renders parts as an OpenAPI path fragment and returns the path
// parameters it declares.
func (g *Generator) pathOf(parts []hurl.Part, args *int) (string, openapi3.Parameters) {
	var (
		b      strings.Builder
		params openapi3.Parameters
	)
	for _, p := range parts {
		if !p.Param {
			b.WriteString(p.Literal)
			continue
		}
		name := p.Name
		if name == "" {
			name = "arg" + strconv.Itoa(*args)
			*args++
		}
		b.WriteString("{" + name + "}")
		params = append(params, &openapi3.ParameterRef{Value: buildParameter(name, p)})
	}
	return b.String(), params
}

// intMatcher is the default int expression. Only captures using it are
// typed as integers; overridden matchers keep a string pattern.
var intMatcher = hurl.DefaultMatchers()["int"]

func buildParameter(name string, p hurl.Part) *openapi3.Parameter {
	schema := &openapi3.Schema{Type: &openapi3.Types{"string"}, Pattern: "^" + p.Matcher + "$"}
	if p.Matcher == intMatcher {
		schema = &openapi3.Schema{Type: &openapi3.Types{"integer"}}
	}
	return &openapi3.Parameter{
		Name:        name,
		In:          openapi3.ParameterInPath,
		Required:    true,
		Description: fmt.Sprintf("%s parameter (%s)", name, p.Tag),
		Schema:      &openapi3.SchemaRef{Value: schema},
	}
}

func (g *Generator) buildOperation(route hurl.Route, s scope) *openapi3.Operation {
	op := &openapi3.Operation{
		Summary:   hurl.TargetString(route.Target),
		Tags:      []string{"default"},
		Responses: openapi3.NewResponses(),
	}
	if len(s.namespaces) > 0 {
		op.Tags = []string{s.namespaces[0]}
	}
	if route.Name != "" {
		op.OperationID = strings.Join(append(append([]string(nil), s.namespaces...), route.Name), ":")
	}
	if len(s.params) > 0 {
		op.Parameters = s.params
		op.Responses.Set("404", &openapi3.ResponseRef{
			Value: &openapi3.Response{Description: openapi3.Ptr("Not Found")},
		})
	}
	op.Responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{Description: openapi3.Ptr("Success")},
	})
	return op
}

func appendNonEmpty(segments []string, s string) []string {
	out := append([]string(nil), segments...)
	if s != "" {
		out = append(out, s)
	}
	return out
}
