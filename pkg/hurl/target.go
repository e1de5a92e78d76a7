package hurl

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Target is what a tree entry points at. It is one of View, Func, Tree or
// Include.
type Target interface {
	target()
}

// View is a dotted view path such as "news.views.details".
type View string

func (View) target() {}

// Name returns the last dotted component of the view path.
func (v View) Name() string {
	s := string(v)
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Func is a view given as a Go function value.
type Func struct {
	// Fn is the function value. hurl never calls it.
	Fn any
	// Ident overrides the name derived from Fn.
	Ident string
}

func (Func) target() {}

// FuncOf wraps a function value as a target.
func FuncOf(fn any) Func {
	return Func{Fn: fn}
}

// Name returns the declared identifier of the function.
func (f Func) Name() string {
	if f.Ident != "" {
		return f.Ident
	}
	return funcName(f.Fn)
}

// funcName resolves the identifier of fn from the runtime symbol table.
// "example.com/news.(*Views).Details-fm" yields "Details".
func funcName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	name := strings.TrimSuffix(rf.Name(), "-fm")
	name = strings.TrimSuffix(name, "[...]")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Tree is an ordered list of entries. Entry order is kept in the output.
type Tree []Entry

func (Tree) target() {}

// Entry binds one path segment to a target.
type Entry struct {
	Segment string
	Target  Target
}

// Include mounts an already compiled route set under the entry's path.
type Include struct {
	Routes    []Route
	Namespace string
	AppName   string
}

func (Include) target() {}

// IncludeOption configures an Include.
type IncludeOption func(*Include)

// WithNamespace sets the instance namespace of an include.
func WithNamespace(ns string) IncludeOption {
	return func(inc *Include) {
		inc.Namespace = ns
	}
}

// WithAppName sets the application namespace of an include.
func WithAppName(name string) IncludeOption {
	return func(inc *Include) {
		inc.AppName = name
	}
}

// Tuple returns the (routes, namespace, app name) triple a dispatcher
// expects for an include, with nil for unset names.
func (inc Include) Tuple() [3]any {
	return [3]any{inc.Routes, nilIfEmpty(inc.Namespace), nilIfEmpty(inc.AppName)}
}

// TargetString describes a target for logs and CLI output.
func TargetString(t Target) string {
	switch t := t.(type) {
	case View:
		return string(t)
	case Func:
		return t.Name() + "()"
	case Include:
		s := fmt.Sprintf("include(%d routes", len(t.Routes))
		if t.Namespace != "" {
			s += ", namespace=" + t.Namespace
		}
		if t.AppName != "" {
			s += ", app_name=" + t.AppName
		}
		return s + ")"
	case Tree:
		return fmt.Sprintf("tree(%d entries)", len(t))
	default:
		return "<nil>"
	}
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
