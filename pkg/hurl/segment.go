package hurl

import (
	"regexp"
	"strings"
	"unicode"
)

// Parameter token delimiters.
const (
	paramOpen  = '<'
	paramClose = '>'
	typeSep    = ":"
	pathSep    = "/"
)

// captureNameRe matches names usable as regexp group names.
var captureNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Part is one piece of a parsed path segment: either literal text or a
// parameter capture.
type Part struct {
	// Literal is the verbatim text of a literal part.
	Literal string
	// Param marks the part as a capture.
	Param bool
	// Name is the capture name; empty for unnamed captures.
	Name string
	// Type is the matcher type tag. For "<name>" it defaults to the name.
	Type string
	// Implicit is true when the type tag was not written out and was
	// defaulted to the name.
	Implicit bool
	// Tag is the matcher tag the capture resolved to. It differs from Type
	// when an implicit type fell back to the default matcher. Set only on
	// compiled routes.
	Tag string
	// Matcher is the resolved expression. Set only on compiled routes.
	Matcher string
}

// LiteralPart returns a literal part.
func LiteralPart(text string) Part {
	return Part{Literal: text}
}

// ParamPart returns a capture part with an explicit type tag.
func ParamPart(name, typ string) Part {
	return Part{Param: true, Name: name, Type: typ}
}

// Expr renders the part as regular expression text.
func (p Part) Expr() string {
	if !p.Param {
		return p.Literal
	}
	if p.Name == "" {
		return "(" + p.Matcher + ")"
	}
	return "(?P<" + p.Name + ">" + p.Matcher + ")"
}

// ParseSegment splits a path segment into literal and parameter parts.
//
// Literal text is kept exactly as written. Inside a parameter, whitespace
// next to the delimiters and around the type separator is ignored.
func ParseSegment(segment string) ([]Part, error) {
	var (
		parts   []Part
		literal strings.Builder
		inParam bool
		start   int
	)

	for i := 0; i < len(segment); i++ {
		switch c := segment[i]; c {
		case paramOpen:
			if inParam {
				return nil, syntaxErr(segment, i, "unexpected %q inside parameter opened at offset %d", c, start)
			}
			if literal.Len() > 0 {
				parts = append(parts, LiteralPart(literal.String()))
				literal.Reset()
			}
			inParam = true
			start = i
		case paramClose:
			if !inParam {
				return nil, syntaxErr(segment, i, "%q without matching %q", c, paramOpen)
			}
			part, err := parseParam(segment, start, segment[start+1:i])
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
			inParam = false
		default:
			if !inParam {
				literal.WriteByte(c)
				continue
			}
			if c == pathSep[0] {
				return nil, syntaxErr(segment, i, "path separator inside parameter opened at offset %d", start)
			}
		}
	}

	if inParam {
		return nil, syntaxErr(segment, start, "parameter is not closed")
	}
	if literal.Len() > 0 {
		parts = append(parts, LiteralPart(literal.String()))
	}

	if err := checkDuplicates(segment, parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// parseParam interprets the body between '<' and '>'.
func parseParam(segment string, offset int, body string) (Part, error) {
	fields := strings.Split(body, typeSep)
	if len(fields) > 2 {
		return Part{}, syntaxErr(segment, offset, "more than one %q in parameter %q", typeSep, body)
	}

	name := strings.TrimSpace(fields[0])
	if strings.ContainsFunc(name, unicode.IsSpace) {
		return Part{}, syntaxErr(segment, offset, "whitespace in parameter name %q", name)
	}
	if name != "" && !captureNameRe.MatchString(name) {
		return Part{}, syntaxErr(segment, offset, "invalid parameter name %q", name)
	}

	if len(fields) == 1 {
		if name == "" {
			return Part{}, syntaxErr(segment, offset, "empty parameter")
		}
		return Part{Param: true, Name: name, Type: name, Implicit: true}, nil
	}

	typ := strings.TrimSpace(fields[1])
	if typ == "" {
		return Part{}, syntaxErr(segment, offset, "missing type after %q", typeSep)
	}
	if strings.ContainsFunc(typ, unicode.IsSpace) {
		return Part{}, syntaxErr(segment, offset, "whitespace in parameter type %q", typ)
	}
	return ParamPart(name, typ), nil
}

// checkDuplicates rejects repeated capture names. label identifies the
// segment or route in the error.
func checkDuplicates(label string, parts []Part) error {
	seen := make(map[string]bool)
	for _, p := range parts {
		if !p.Param || p.Name == "" {
			continue
		}
		if seen[p.Name] {
			return syntaxErr(label, -1, "duplicate capture name %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// joinParts joins two part lists with the path separator, leaving it out
// when either side is empty. Adjacent literals are merged.
func joinParts(parent, child []Part) []Part {
	if len(parent) == 0 {
		return append([]Part(nil), child...)
	}
	if len(child) == 0 {
		return append([]Part(nil), parent...)
	}

	out := make([]Part, 0, len(parent)+len(child)+1)
	out = append(out, parent...)
	out = appendLiteral(out, pathSep)
	for _, p := range child {
		if p.Param {
			out = append(out, p)
			continue
		}
		out = appendLiteral(out, p.Literal)
	}
	return out
}

func appendLiteral(parts []Part, text string) []Part {
	if n := len(parts); n > 0 && !parts[n-1].Param {
		parts[n-1].Literal += text
		return parts
	}
	return append(parts, LiteralPart(text))
}

// renderParts concatenates the expressions of parts.
func renderParts(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Expr())
	}
	return b.String()
}
