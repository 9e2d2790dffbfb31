package codegen

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/modelgen/internal/schema"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		Models: []schema.Model{
			{Name: "Post", Fields: []schema.Field{{Name: "title", Type: "String", Required: true}}},
			{Name: "Comment", Fields: []schema.Field{{Name: "text", Type: "String"}}},
			{Name: "Author", Fields: []schema.Field{{Name: "name", Type: "String"}}},
		},
		Enums: []schema.EnumType{
			{Name: "Status", Values: []schema.EnumValue{{Name: "ACTIVE"}}},
			{Name: "Role", Values: []schema.EnumValue{{Name: "ADMIN"}}},
		},
	}
}

func modelNames(models []schema.Model) []string {
	var names []string
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"registry", "enums", "classes"} {
		mode, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, Mode(s), mode)
	}

	_, err := ParseMode("everything")
	assert.ErrorContains(t, err, "unknown generation mode: everything")
}

func TestPass_SelectModels(t *testing.T) {
	s := testSchema()

	// Test: an empty selection means every model
	models, err := Pass{}.SelectModels(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Post", "Comment", "Author"}, modelNames(models))

	// Test: schema order wins and duplicates collapse
	models, err = Pass{Models: []string{"Author", "Post", "Author"}}.SelectModels(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Post", "Author"}, modelNames(models))

	_, err = Pass{Models: []string{"Missing"}}.SelectModels(s)
	assert.ErrorContains(t, err, `model "Missing" is not declared in the schema`)
}

func TestPass_SelectModelsExclude(t *testing.T) {
	s := testSchema()

	// Test: excluded models leave both an empty and an explicit selection
	models, err := Pass{Exclude: []string{"Comment"}}.SelectModels(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Post", "Author"}, modelNames(models))

	models, err = Pass{Models: []string{"Post", "Comment"}, Exclude: []string{"Post"}}.SelectModels(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"Comment"}, modelNames(models))

	// Test: excluding everything selects nothing rather than everything
	models, err = Pass{Models: []string{"Post"}, Exclude: []string{"Post"}}.SelectModels(s)
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestPass_SelectEnums(t *testing.T) {
	s := testSchema()

	enums, err := Pass{Enums: []string{"Role"}}.SelectEnums(s)
	require.NoError(t, err)
	require.Len(t, enums, 1)
	assert.Equal(t, "Role", enums[0].Name)

	enums, err = Pass{}.SelectEnums(s)
	require.NoError(t, err)
	assert.Len(t, enums, 2)

	_, err = Pass{Enums: []string{"Mood"}}.SelectEnums(s)
	assert.Error(t, err)
}

func TestEachModel(t *testing.T) {
	s := testSchema()
	emit := func(visited *[]string) func(schema.Model) error {
		return func(m schema.Model) error {
			*visited = append(*visited, m.Name)
			if m.Name == "Post" {
				return errors.New("boom")
			}
			return nil
		}
	}

	// Test: fail fast stops at the first failing model
	var visited []string
	err := EachModel(s.Models, false, emit(&visited))
	assert.ErrorContains(t, err, "model Post: boom")
	assert.Equal(t, []string{"Post"}, visited)

	// Test: best effort visits every model and still reports the failure
	visited = nil
	err = EachModel(s.Models, true, emit(&visited))
	assert.ErrorContains(t, err, "model Post: boom")
	assert.Equal(t, []string{"Post", "Comment", "Author"}, visited)

	visited = nil
	assert.NoError(t, EachModel(s.Models[1:], false, emit(&visited)))
}

func TestSkippedModels(t *testing.T) {
	s := testSchema()
	fail := map[string]bool{"Post": true, "Author": true}

	err := EachModel(s.Models, true, func(m schema.Model) error {
		if fail[m.Name] {
			return errors.AssertionFailedf("cannot emit %s", m.Name)
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, []string{"Post", "Author"}, SkippedModels(err))

	// Test: names survive further wrapping
	assert.Equal(t, []string{"Post", "Author"}, SkippedModels(errors.Wrap(err, "models.go")))

	assert.Empty(t, SkippedModels(nil))
	assert.Empty(t, SkippedModels(errors.New("unrelated")))
}
