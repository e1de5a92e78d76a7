// Package routefile reads route trees from YAML files.
//
// Keys are path segments and are kept in file order. A string value is a
// view path, a mapping is a nested tree, and a value tagged !include mounts
// another route file:
//
//	articles:
//	  <id:int>/<id2:int>: news.views.details
//	  text/author:
//	    <author_id:int>: news.views.author_details
//	<id:int>/comments: !include {file: comments.yaml, namespace: comments}
package routefile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/hurl/pkg/hurl"
	"gopkg.in/yaml.v3"
)

const includeTag = "!include"

// Error reports a problem at a position in a route file.
type Error struct {
	File string
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

// Loader loads route files and compiles them with a Hurl.
type Loader struct {
	hurl    *hurl.Hurl
	loading map[string]bool
	files   []string
}

// NewLoader creates a Loader that compiles included files with h.
func NewLoader(h *hurl.Hurl) *Loader {
	return &Loader{
		hurl:    h,
		loading: make(map[string]bool),
	}
}

// Load reads the route file at path into a tree. Included files are
// compiled eagerly.
func (l *Loader) Load(path string) (hurl.Tree, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if l.loading[abs] {
		return nil, &Error{File: path, Msg: "include cycle"}
	}
	l.loading[abs] = true
	defer delete(l.loading, abs)

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read route file: %w", err)
	}
	l.files = append(l.files, abs)
	return l.parse(path, filepath.Dir(abs), data)
}

// Files returns the absolute paths of every file read so far, in load
// order.
func (l *Loader) Files() []string {
	return append([]string(nil), l.files...)
}

// Parse decodes route file contents. Includes are resolved against baseDir.
func (l *Loader) Parse(name, baseDir string, data []byte) (hurl.Tree, error) {
	return l.parse(name, baseDir, data)
}

// Routes loads path and flattens it. A non-empty viewPrefix is applied to
// every view, as with hurl.Hurl.Patterns.
func (l *Loader) Routes(path, viewPrefix string) ([]hurl.Route, error) {
	tree, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	routes, err := l.hurl.Patterns(viewPrefix, tree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return routes, nil
}

func (l *Loader) parse(name, baseDir string, data []byte) (hurl.Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(doc.Content) == 0 {
		return hurl.Tree{}, nil
	}

	d := decoder{loader: l, file: name, baseDir: baseDir}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return hurl.Tree{}, nil
	}
	return d.tree(root)
}

type decoder struct {
	loader  *Loader
	file    string
	baseDir string
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	return &Error{File: d.file, Line: n.Line, Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) tree(n *yaml.Node) (hurl.Tree, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "expected a mapping of path segments")
	}

	tree := make(hurl.Tree, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := resolveAlias(n.Content[i])
		if key.Kind != yaml.ScalarNode {
			return nil, d.errorf(key, "path segment must be a scalar")
		}
		segment := key.Value
		if key.Tag == "!!null" {
			segment = ""
		}

		target, err := d.target(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		tree = append(tree, hurl.Entry{Segment: segment, Target: target})
	}
	return tree, nil
}

func (d *decoder) target(n *yaml.Node) (hurl.Target, error) {
	if n.Tag == includeTag {
		return d.include(n)
	}

	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return d.tree(n)
	case yaml.ScalarNode:
		if n.Tag != "!!str" {
			return nil, d.errorf(n, "view must be a string, got %s", n.Tag)
		}
		return hurl.View(n.Value), nil
	default:
		return nil, d.errorf(n, "unsupported value; want a view path, a mapping or %s", includeTag)
	}
}

// includeSpec is the mapping form of an !include value.
type includeSpec struct {
	File      string `yaml:"file"`
	Namespace string `yaml:"namespace"`
	AppName   string `yaml:"app_name"`
	Prefix    string `yaml:"prefix"`
}

func (d *decoder) include(n *yaml.Node) (hurl.Target, error) {
	var spec includeSpec
	switch n.Kind {
	case yaml.ScalarNode:
		spec.File = n.Value
	case yaml.MappingNode:
		m := *n
		m.Tag = "!!map"
		if err := m.Decode(&spec); err != nil {
			return nil, d.errorf(n, "invalid include: %v", err)
		}
	default:
		return nil, d.errorf(n, "include must be a file name or a mapping")
	}
	if spec.File == "" {
		return nil, d.errorf(n, "include needs a file")
	}

	path := spec.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.baseDir, path)
	}

	routes, err := d.loader.Routes(path, spec.Prefix)
	if err != nil {
		return nil, fmt.Errorf("%s:%d: %w", d.file, n.Line, err)
	}
	return d.loader.hurl.Include(routes,
		hurl.WithNamespace(spec.Namespace),
		hurl.WithAppName(spec.AppName),
	), nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
