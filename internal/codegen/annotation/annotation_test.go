package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/modelgen/internal/schema"
)

var java = Syntax{Prefix: "@", Open: "(", Close: ")", Assign: " = ", ListOpen: "{", ListClose: "}"}

var typescript = Syntax{Prefix: "@", Open: "({ ", Close: " })", NoArgs: "()", Assign: ": ", ListOpen: "[", ListClose: "]"}

func TestForModel(t *testing.T) {
	// Test: model and key directives translate; unknown directives are dropped
	m := schema.Model{
		Name: "Post",
		Directives: []schema.Directive{
			{Name: "model"},
			{Name: "auth"},
			{Name: "key", Args: map[string]schema.Value{
				"name":   schema.StringValue("byBlog"),
				"fields": schema.ListValue("blogID", "createdAt"),
			}},
			{Name: "key", Args: map[string]schema.Value{
				"fields": schema.ListValue("title"),
			}},
		},
	}

	got := ForModel(m)
	require.Len(t, got, 3)

	assert.Equal(t, `@ModelConfig(name = "Post", pluralName = "Posts")`, got[0].Render(java))
	assert.Equal(t, `@Index(name = "byBlog", fields = {"blogID", "createdAt"})`, got[1].Render(java))
	assert.Equal(t, `@Index(name = "undefined", fields = {"title"})`, got[2].Render(java))
}

func TestForModel_NoDirectives(t *testing.T) {
	assert.Empty(t, ForModel(schema.Model{Name: "Plain"}))
}

func TestForField_Metadata(t *testing.T) {
	tests := []struct {
		name  string
		field schema.Field
		want  string
	}{
		{
			name:  "required scalar",
			field: schema.Field{Name: "title", Type: "String", Required: true},
			want:  `@ModelField(name = "title", targetType = "String", isRequired = true)`,
		},
		{
			name:  "nullable scalar",
			field: schema.Field{Name: "content", Type: "String"},
			want:  `@ModelField(name = "content", targetType = "String")`,
		},
		{
			name:  "list",
			field: schema.Field{Name: "comments", Type: "[Comment]"},
			want:  `@ModelField(name = "comments", targetType = "Comment", isArrayOrList = true)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForField(tt.field)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Render(java))
		})
	}
}

func TestForField_Connection(t *testing.T) {
	// Test: only present keys are rendered and fields is one well-formed list
	f := schema.Field{
		Name: "comments",
		Type: "[Comment]",
		Directives: []schema.Directive{
			{Name: "connection", Args: map[string]schema.Value{
				"keyName":   schema.StringValue("byPost"),
				"fields":    schema.ListValue("id", "title"),
				"limit":     schema.StringValue("10"),
				"sortField": schema.StringValue("createdAt"),
			}},
		},
	}

	got := ForField(f)
	require.Len(t, got, 2)
	assert.Equal(t, Connection, got[1].Name)

	_, hasName := got[1].Arg("name")
	assert.False(t, hasName)

	limit, ok := got[1].Arg("limit")
	require.True(t, ok)
	assert.Equal(t, KindInt, limit.Kind)
	assert.Equal(t, 10, limit.Int)

	assert.Equal(t,
		`@Connection(sortField = "createdAt", keyName = "byPost", limit = 10, fields = {"id", "title"})`,
		got[1].Render(java))
	assert.Equal(t,
		`@Connection({ sortField: "createdAt", keyName: "byPost", limit: 10, fields: ["id", "title"] })`,
		got[1].Render(typescript))
}

func TestForField_ConnectionWithoutArgs(t *testing.T) {
	f := schema.Field{Name: "post", Type: "Post", Directives: []schema.Directive{{Name: "connection"}}}

	got := ForField(f)
	require.Len(t, got, 2)
	assert.Equal(t, "@Connection", got[1].Render(java))
	assert.Equal(t, "@Connection()", got[1].Render(typescript))
}

func TestForField_NonNumericLimitIsOmitted(t *testing.T) {
	f := schema.Field{Name: "post", Type: "Post", Directives: []schema.Directive{
		{Name: "connection", Args: map[string]schema.Value{"limit": schema.StringValue("many")}},
	}}

	got := ForField(f)
	require.Len(t, got, 2)
	assert.Empty(t, got[1].Args)
}
