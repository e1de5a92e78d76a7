package hurl

// DefaultMatcherTag is the type tag used for parameters that name no type and
// whose name is not a registered type tag.
const DefaultMatcherTag = "slug"

// Matchers maps a type tag to the regular expression fragment a capture of
// that type must match.
type Matchers map[string]string

// DefaultMatchers returns a fresh copy of the built-in matcher table.
func DefaultMatchers() Matchers {
	return Matchers{
		"int":  `\d+`,
		"slug": `[\w-]+`,
		"str":  `[^/]+`,
		"uuid": `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	}
}

// Clone returns a copy of the table.
func (m Matchers) Clone() Matchers {
	out := make(Matchers, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Lookup returns the matcher registered for tag.
func (m Matchers) Lookup(tag string) (string, bool) {
	expr, ok := m[tag]
	return expr, ok
}
