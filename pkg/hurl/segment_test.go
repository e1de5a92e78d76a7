package hurl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Part
	}{
		{"empty", "", nil},
		{"literal", "entries", []Part{LiteralPart("entries")}},
		{"literal with slashes", "blog/authors", []Part{LiteralPart("blog/authors")}},
		{"bare name", "<year>", []Part{{Param: true, Name: "year", Type: "year", Implicit: true}}},
		{"name and type", "<id:int>", []Part{ParamPart("id", "int")}},
		{"type only", "<:int>", []Part{ParamPart("", "int")}},
		{"whitespace in parameter", "< : int   >", []Part{ParamPart("", "int")}},
		{"whitespace around name and type", "<  id :   int    >", []Part{ParamPart("id", "int")}},
		{
			name:  "literal whitespace kept",
			input: "  <id:int>  ",
			want:  []Part{LiteralPart("  "), ParamPart("id", "int"), LiteralPart("  ")},
		},
		{
			name:  "literal then parameter",
			input: "blog/<id:int>",
			want:  []Part{LiteralPart("blog/"), ParamPart("id", "int")},
		},
		{
			name:  "parameter then literal",
			input: "<:int>/blog/",
			want:  []Part{ParamPart("", "int"), LiteralPart("/blog/")},
		},
		{
			name:  "two parameters",
			input: "<id:int>/<id2:int>",
			want:  []Part{ParamPart("id", "int"), LiteralPart("/"), ParamPart("id2", "int")},
		},
		{
			name:  "two unnamed parameters",
			input: "<:int>-<:int>",
			want:  []Part{ParamPart("", "int"), LiteralPart("-"), ParamPart("", "int")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSegment(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSegment_SyntaxErrors(t *testing.T) {
	inputs := []string{
		"<:int/blog/",
		"><:int/blog/",
		"<asdf:/asdfas>",
		"<:int/>blog/",
		"int/blog>/",
		"<int/blog/",
		"<year day>",
		"<:year day>",
		"<:year:day>",
		"<>",
		"< : >",
		"<id:>",
		"<<id>>",
		"<1st>",
		"<id:int>/<id:slug>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSegment(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax), "want ErrSyntax, got %v", err)

			var synErr *SyntaxError
			require.True(t, errors.As(err, &synErr))
			assert.Equal(t, input, synErr.Segment)
		})
	}
}

func TestParseSegment_ErrorOffset(t *testing.T) {
	_, err := ParseSegment("blog/<id")
	var synErr *SyntaxError
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, 5, synErr.Offset)
	assert.Contains(t, err.Error(), "not closed")

	_, err = ParseSegment("a>")
	require.True(t, errors.As(err, &synErr))
	assert.Equal(t, 1, synErr.Offset)
}

func TestParseSegment_Deterministic(t *testing.T) {
	for _, input := range []string{"<id:int>/x/<slug>", "a<:int>b", "<year>"} {
		first, err := ParseSegment(input)
		require.NoError(t, err)
		second, err := ParseSegment(input)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestPartExpr(t *testing.T) {
	assert.Equal(t, "blog/", LiteralPart("blog/").Expr())
	assert.Equal(t, `(?P<id>\d+)`, Part{Param: true, Name: "id", Matcher: `\d+`}.Expr())
	assert.Equal(t, `(\d+)`, Part{Param: true, Matcher: `\d+`}.Expr())
}

func TestJoinParts(t *testing.T) {
	id := Part{Param: true, Name: "id", Type: "int", Matcher: `\d+`}

	assert.Equal(t, []Part{LiteralPart("bla")}, joinParts([]Part{LiteralPart("bla")}, nil))
	assert.Equal(t, []Part{id}, joinParts(nil, []Part{id}))
	assert.Equal(t,
		[]Part{LiteralPart("articles/text")},
		joinParts([]Part{LiteralPart("articles")}, []Part{LiteralPart("text")}),
	)
	assert.Equal(t,
		[]Part{id, LiteralPart("/comments")},
		joinParts([]Part{id}, []Part{LiteralPart("comments")}),
	)
}
