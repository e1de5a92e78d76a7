package hurl

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func someView(w http.ResponseWriter, r *http.Request) {}

type articleViews struct{}

func (articleViews) Archive(w http.ResponseWriter, r *http.Request) {}

func TestURLs(t *testing.T) {
	tests := []struct {
		name string
		hurl *Hurl
		tree Tree
		want []Route
	}{
		{
			name: "simple string",
			tree: Tree{{"2003", View("2003_view")}},
			want: []Route{{Pattern: `^2003/$`, Target: View("2003_view"), Name: "2003_view"}},
		},
		{
			name: "simple named parameter",
			tree: Tree{{"<id:int>", View("news.views.details")}},
			want: []Route{{Pattern: `^(?P<id>\d+)/$`, Target: View("news.views.details"), Captures: []string{"id"}, Name: "details"}},
		},
		{
			name: "two named parameters",
			tree: Tree{{"articles", Tree{{"<id:int>/<id2:int>", View("news.views.details")}}}},
			want: []Route{{
				Pattern:  `^articles/(?P<id>\d+)/(?P<id2>\d+)/$`,
				Target:   View("news.views.details"),
				Captures: []string{"id", "id2"},
				Name:     "details",
			}},
		},
		{
			name: "slug type",
			tree: Tree{{"<id:slug>", View("news.views.details")}},
			want: []Route{{Pattern: `^(?P<id>[\w-]+)/$`, Target: View("news.views.details"), Captures: []string{"id"}, Name: "details"}},
		},
		{
			name: "custom named type",
			hurl: New(WithMatcher("year", `\d{4}`)),
			tree: Tree{{"<year:year>", View("news.views.details")}},
			want: []Route{{Pattern: `^(?P<year>\d{4})/$`, Target: View("news.views.details"), Captures: []string{"year"}, Name: "details"}},
		},
		{
			name: "type guessed from name",
			hurl: New(WithMatcher("year", `\d{4}`)),
			tree: Tree{{"<year>", View("news.views.details")}},
			want: []Route{{Pattern: `^(?P<year>\d{4})/$`, Target: View("news.views.details"), Captures: []string{"year"}, Name: "details"}},
		},
		{
			name: "default type is slug",
			tree: Tree{{"<year>", View("news.views.details")}},
			want: []Route{{Pattern: `^(?P<year>[\w-]+)/$`, Target: View("news.views.details"), Captures: []string{"year"}, Name: "details"}},
		},
		{
			name: "custom default type",
			hurl: New(WithDefaultMatcher("int")),
			tree: Tree{{"<year>", View("news.views.details")}},
			want: []Route{{Pattern: `^(?P<year>\d+)/$`, Target: View("news.views.details"), Captures: []string{"year"}, Name: "details"}},
		},
		{
			name: "empty url",
			tree: Tree{{"", View("details")}},
			want: []Route{{Pattern: `^$`, Target: View("details"), Name: "details"}},
		},
		{
			name: "empty nested url",
			tree: Tree{{"bla", Tree{{"", View("details")}}}},
			want: []Route{{Pattern: `^bla/$`, Target: View("details"), Name: "details"}},
		},
		{
			name: "empty parent",
			tree: Tree{{"", Tree{{"about", View("pages.about")}}}},
			want: []Route{{Pattern: `^about/$`, Target: View("pages.about"), Name: "about"}},
		},
		{
			name: "unnamed parameter",
			tree: Tree{{"<:int>", View("details")}},
			want: []Route{{Pattern: `^(\d+)/$`, Target: View("details"), Name: "details"}},
		},
		{
			name: "name prefix",
			hurl: New(WithNamePrefix("news")),
			tree: Tree{{"<id:int>", View("news.views.details")}},
			want: []Route{{Pattern: `^(?P<id>\d+)/$`, Target: View("news.views.details"), Captures: []string{"id"}, Name: "news_details"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.hurl
			if h == nil {
				h = New()
			}
			got, err := h.URLs(tt.tree)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Pattern, got[i].Pattern)
				assert.Equal(t, tt.want[i].Target, got[i].Target)
				assert.Equal(t, tt.want[i].Captures, got[i].Captures)
				assert.Equal(t, tt.want[i].Name, got[i].Name)
			}
		})
	}
}

func TestURLs_TreeOrder(t *testing.T) {
	h := New()
	routes, err := h.URLs(Tree{
		{"articles", Tree{
			{"<id:int>/<id2:int>", View("news.views.details")},
			{"text/author", Tree{
				{"<author_id:int>", View("news.views.author_details")},
				{"archive/<author_id:int>", View("news.views.archive")},
			}},
		}},
	})
	require.NoError(t, err)

	var got [][2]string
	for _, r := range routes {
		got = append(got, [2]string{r.Pattern, r.Name})
	}
	assert.Equal(t, [][2]string{
		{`^articles/(?P<id>\d+)/(?P<id2>\d+)/$`, "details"},
		{`^articles/text/author/(?P<author_id>\d+)/$`, "author_details"},
		{`^articles/text/author/archive/(?P<author_id>\d+)/$`, "archive"},
	}, got)
}

func TestURLs_MatcherTableMutation(t *testing.T) {
	h := New()
	h.Matchers["year"] = `\d{4}`
	h.DefaultMatcher = "int"

	routes, err := h.URLs(Tree{{"<year>/<month>", View("archive.month")}})
	require.NoError(t, err)
	assert.Equal(t, `^(?P<year>\d{4})/(?P<month>\d+)/$`, routes[0].Pattern)

	other := New()
	_, ok := other.Matchers["year"]
	assert.False(t, ok, "matcher registration must not leak between instances")
}

func TestURLs_Func(t *testing.T) {
	h := New()
	routes, err := h.URLs(Tree{
		{"2003", FuncOf(someView)},
		{"archive", FuncOf(articleViews{}.Archive)},
		{"named", Func{Fn: someView, Ident: "custom"}},
	})
	require.NoError(t, err)
	require.Len(t, routes, 3)

	assert.Equal(t, `^2003/$`, routes[0].Pattern)
	assert.Equal(t, "someView", routes[0].Name)
	assert.Equal(t, "Archive", routes[1].Name)
	assert.Equal(t, "custom", routes[2].Name)
}

func TestURLs_Include(t *testing.T) {
	h := New()
	comments, err := h.Patterns("", Tree{{"<id:int>", View("news.views.details")}})
	require.NoError(t, err)

	routes, err := h.URLs(Tree{
		{"<id:int>", Tree{
			{"", View("news.views.details")},
			{"comments", h.Include(comments, WithNamespace("comments"))},
		}},
	})
	require.NoError(t, err)
	require.Len(t, routes, 2)

	assert.Equal(t, `^(?P<id>\d+)/$`, routes[0].Pattern)
	assert.Equal(t, "details", routes[0].Name)

	assert.Equal(t, `^(?P<id>\d+)/comments/$`, routes[1].Pattern)
	assert.Equal(t, `^(?P<id>\d+)/comments/`, routes[1].Prefix())
	assert.True(t, routes[1].IsInclude())
	assert.Empty(t, routes[1].Name)

	tuple := routes[1].Tuple()
	assert.Nil(t, tuple[2])
	assert.Nil(t, tuple[3])
	inc := tuple[1].([3]any)
	assert.Equal(t, comments, inc[0])
	assert.Equal(t, "comments", inc[1])
	assert.Nil(t, inc[2])
}

func TestPatterns_ViewPrefix(t *testing.T) {
	h := New()
	routes, err := h.Patterns("news.views", Tree{{"<id:int>", View("details")}})
	require.NoError(t, err)
	assert.Equal(t, View("news.views.details"), routes[0].Target)
	assert.Equal(t, "details", routes[0].Name)
	assert.Equal(t, [4]any{`^(?P<id>\d+)/$`, "news.views.details", nil, "details"}, routes[0].Tuple())
}

func TestURLs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tree    Tree
		wantErr error
		wantMsg string
	}{
		{
			name:    "unbalanced",
			tree:    Tree{{"<:int/blog/", View("x")}},
			wantErr: ErrSyntax,
		},
		{
			name:    "unknown matcher",
			tree:    Tree{{"<id:year>", View("x")}},
			wantErr: ErrUnknownMatcher,
			wantMsg: `"year"`,
		},
		{
			name:    "nested error carries path",
			tree:    Tree{{"articles", Tree{{"<id:nope>", View("x")}}}},
			wantErr: ErrUnknownMatcher,
			wantMsg: `route "articles/<id:nope>"`,
		},
		{
			name:    "duplicate capture across segments",
			tree:    Tree{{"<id:int>", Tree{{"<id:int>", View("x")}}}},
			wantErr: ErrSyntax,
			wantMsg: "duplicate capture name",
		},
		{
			name:    "missing target",
			tree:    Tree{{"x", nil}},
			wantErr: ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().URLs(tt.tree)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestURLs_UnknownDefaultMatcher(t *testing.T) {
	h := New(WithDefaultMatcher("missing"))
	_, err := h.URLs(Tree{{"<year>", View("x")}})
	require.Error(t, err)

	var umErr *UnknownMatcherError
	require.True(t, errors.As(err, &umErr))
	assert.Equal(t, "missing", umErr.Type)
	assert.True(t, IsUnknownMatcher(err))
	assert.False(t, IsSyntaxError(err))
}

func TestSegmentPattern(t *testing.T) {
	h := New()
	pattern, names, err := h.SegmentPattern("<id:int>/x/<:slug>")
	require.NoError(t, err)
	assert.Equal(t, `(?P<id>\d+)/x/([\w-]+)`, pattern)
	assert.Equal(t, []string{"id"}, names)
}

func TestURLs_Logger(t *testing.T) {
	var buf bytes.Buffer
	h := New(WithLogger(log.New(&buf, "", 0)))
	_, err := h.URLs(Tree{{"<id:int>", View("news.views.details")}})
	require.NoError(t, err)
	assert.Equal(t, "registered ^(?P<id>\\d+)/$ -> news.views.details (details)\n", buf.String())
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "news.views.details", TargetString(View("news.views.details")))
	assert.Equal(t, "someView()", TargetString(FuncOf(someView)))
	assert.Equal(t, "include(0 routes, namespace=blog)", TargetString(Include{Namespace: "blog"}))
	assert.Equal(t, "<nil>", TargetString(nil))
}

func TestCompileSegment_ResolvedTag(t *testing.T) {
	h := New(WithMatcher("id", `\d{3}`))
	parts, err := h.CompileSegment("<id>/<year>/<n:int>")
	require.NoError(t, err)
	require.Len(t, parts, 5)

	assert.Equal(t, "id", parts[0].Tag)
	assert.Equal(t, `\d{3}`, parts[0].Matcher)
	assert.Equal(t, "year", parts[2].Type)
	assert.Equal(t, DefaultMatcherTag, parts[2].Tag)
	assert.Equal(t, `[\w-]+`, parts[2].Matcher)
	assert.Equal(t, "int", parts[4].Tag)
}
