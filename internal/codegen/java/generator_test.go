package java

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/schema"
)

func blogSchema() *schema.Schema {
	return &schema.Schema{
		Meta: schema.Metadata{Package: "com.example.blog"},
		Models: []schema.Model{
			{
				Name: "Post",
				Doc:  "A blog post",
				Directives: []schema.Directive{
					{Name: "model"},
					{Name: "key", Args: map[string]schema.Value{
						"name":   schema.StringValue("byTitle"),
						"fields": schema.ListValue("title"),
					}},
				},
				Fields: []schema.Field{
					{Name: "title", Type: "String", Required: true},
					{Name: "content", Type: "String"},
				},
			},
			{
				Name:       "Comment",
				Directives: []schema.Directive{{Name: "model"}},
				Fields: []schema.Field{
					{Name: "id", Type: "ID", Required: true},
					{Name: "postId", Type: "ID", Required: true},
					{Name: "text", Type: "String", Required: true},
					{Name: "createdAt", Type: "AWSDateTime"},
					{Name: "tags", Type: "[String]"},
					{Name: "status", Type: "Status"},
				},
			},
		},
		Enums: []schema.EnumType{
			{Name: "Status", Values: []schema.EnumValue{{Name: "ACTIVE"}, {Name: "INACTIVE"}}},
		},
	}
}

func generate(t *testing.T, s *schema.Schema, pass codegen.Pass) string {
	t.Helper()
	code, err := NewGenerator(codegen.Options{}).Generate(s, pass)
	require.NoError(t, err)
	return string(code)
}

func TestGenerator_Metadata(t *testing.T) {
	g := NewGenerator(codegen.Options{})
	assert.Equal(t, "java", g.Language())
	assert.Equal(t, ".java", g.FileExtension())
	assert.Equal(t, codegen.LayoutPerDeclaration, g.Layout())
}

func TestGenerator_PostClass(t *testing.T) {
	// Test: the Post scenario yields a single title step into the terminal
	result := generate(t, blogSchema(), codegen.Pass{Mode: codegen.ModeClasses, Models: []string{"Post"}})

	assert.True(t, strings.HasPrefix(result, "package com.example.blog;\n\n"))
	assert.Contains(t, result, "/** A blog post */\n"+
		"@ModelConfig(name = \"Post\", pluralName = \"Posts\")\n"+
		"@Index(name = \"byTitle\", fields = {\"title\"})\n"+
		"public final class Post implements Model {\n")

	assert.Contains(t, result, `    public static final QueryField ID = field("Post", "id");`)
	assert.Contains(t, result, `    public static final QueryField TITLE = field("Post", "title");`)
	assert.Contains(t, result, `    private final @ModelField(name = "id", targetType = "ID", isRequired = true) String id;`)
	assert.Contains(t, result, `    private final @ModelField(name = "content", targetType = "String") String content;`)

	assert.Contains(t, result, "    public interface TitleStep {\n"+
		"        BuildStep title(String title);\n"+
		"    }\n")
	assert.Contains(t, result, "    public interface BuildStep {\n"+
		"        Post build();\n"+
		"        BuildStep id(String id) throws MalformedIdentityException;\n"+
		"        BuildStep content(String content);\n"+
		"    }\n")

	assert.Contains(t, result, "    public static TitleStep builder() {\n        return new Builder();\n    }\n")
	assert.Contains(t, result, "    public static class Builder implements TitleStep, BuildStep {\n")
	assert.Contains(t, result, "            Objects.requireNonNull(title);\n")
	assert.NotContains(t, result, "Objects.requireNonNull(content);")
	assert.Contains(t, result, "String id = this.id != null ? this.id : UUID.randomUUID().toString();")
	assert.Contains(t, result, "return new Post(id, title, content);")
	assert.Contains(t, result, "private Post(String id, String title, String content) {")

	assert.Contains(t, result, "        return Objects.equals(getId(), other.getId()) &&\n"+
		"            Objects.equals(getTitle(), other.getTitle()) &&\n"+
		"            Objects.equals(getContent(), other.getContent());\n")
	assert.Contains(t, result, "            .append(getId())\n"+
		"            .append(getTitle())\n"+
		"            .append(getContent())\n"+
		"            .toString()\n"+
		"            .hashCode();\n")
}

func TestGenerator_CommentClassChain(t *testing.T) {
	// Test: the Comment scenario chains postId into text into the terminal
	result := generate(t, blogSchema(), codegen.Pass{Mode: codegen.ModeClasses, Models: []string{"Comment"}})

	assert.Contains(t, result, "public static PostIdStep builder() {")
	assert.Contains(t, result, "        TextStep postId(String postId);\n")
	assert.Contains(t, result, "        BuildStep text(String text);\n")
	assert.Contains(t, result, "public static class Builder implements PostIdStep, TextStep, BuildStep {")
	assert.Contains(t, result, "        BuildStep createdAt(OffsetDateTime createdAt);\n")
	assert.Contains(t, result, "        BuildStep tags(List<String> tags);\n")
	assert.Contains(t, result, "        BuildStep status(Status status);\n")
	assert.Contains(t, result, `@ModelField(name = "tags", targetType = "String", isArrayOrList = true) List<String> tags;`)
}

func TestGenerator_ClassMemberOrder(t *testing.T) {
	// Test: class sections are emitted in a fixed order
	result := generate(t, blogSchema(), codegen.Pass{Mode: codegen.ModeClasses, Models: []string{"Post"}})

	sections := []string{
		"public final class Post implements Model {",
		"public static final QueryField ID",
		"private final @ModelField",
		"public interface TitleStep {",
		"public interface BuildStep {",
		"public static TitleStep builder() {",
		"public static class Builder implements",
		"public String getId() {",
		"public String getContent() {",
		"private Post(",
		"public boolean equals(Object obj) {",
		"public int hashCode() {",
		"public String toString() {",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(result, section)
		require.NotEqual(t, -1, idx, "missing section %q", section)
		assert.Greater(t, idx, last, "section %q is out of order", section)
		last = idx
	}
}

func TestGenerator_Imports(t *testing.T) {
	// Test: qualified types are imported once and the header is sorted
	result := generate(t, blogSchema(), codegen.Pass{Mode: codegen.ModeClasses})

	header := result[:strings.Index(result, "/** A blog post */")]
	var imports []string
	for _, line := range strings.Split(header, "\n") {
		if strings.HasPrefix(line, "import ") {
			imports = append(imports, line)
		}
	}

	assert.Contains(t, imports, "import java.time.OffsetDateTime;")
	assert.Contains(t, imports, "import java.util.List;")
	assert.Contains(t, imports, "import dev.okra.model.annotations.Index;")
	assert.Contains(t, imports, "import static dev.okra.model.query.QueryField.field;")
	assert.NotContains(t, imports, "import dev.okra.model.annotations.Connection;")
	assert.IsIncreasing(t, imports)
	assert.Equal(t, 1, strings.Count(result, "package com.example.blog;"))
}

func TestGenerator_ConnectionImport(t *testing.T) {
	s := &schema.Schema{Models: []schema.Model{{
		Name: "Blog",
		Fields: []schema.Field{{
			Name: "posts",
			Type: "[Post]",
			Directives: []schema.Directive{{Name: "connection", Args: map[string]schema.Value{
				"keyName": schema.StringValue("byBlog"),
				"fields":  schema.ListValue("id"),
			}}},
		}},
	}}}

	result := generate(t, s, codegen.Pass{Mode: codegen.ModeClasses})
	assert.Contains(t, result, "import dev.okra.model.annotations.Connection;")
	assert.Contains(t, result, `@Connection(keyName = "byBlog", fields = {"id"}) List<Post> posts;`)
	assert.Contains(t, result, "package "+DefaultPackage+";")
}

func TestGenerator_CustomScalarAndPackage(t *testing.T) {
	s := &schema.Schema{Models: []schema.Model{{
		Name:   "Invoice",
		Fields: []schema.Field{{Name: "total", Type: "Money", Required: true}},
	}}}

	code, err := NewGenerator(codegen.Options{
		PackageName: "com.acme.billing",
		Scalars:     map[string]string{"Money": "java.math.BigDecimal"},
	}).Generate(s, codegen.Pass{Mode: codegen.ModeClasses})
	require.NoError(t, err)

	result := string(code)
	assert.Contains(t, result, "package com.acme.billing;")
	assert.Contains(t, result, "import java.math.BigDecimal;")
	assert.Contains(t, result, "BuildStep total(BigDecimal total);")
}

func TestGenerator_NoRequiredFields(t *testing.T) {
	// Test: the builder entry returns the terminal when nothing is required
	s := &schema.Schema{Models: []schema.Model{{
		Name:   "Note",
		Fields: []schema.Field{{Name: "body", Type: "String"}},
	}}}

	result := generate(t, s, codegen.Pass{Mode: codegen.ModeClasses})
	assert.Contains(t, result, "public static BuildStep builder() {")
	assert.Contains(t, result, "public static class Builder implements BuildStep {")
}

func TestGenerator_IdentitySetter(t *testing.T) {
	result := generate(t, blogSchema(), codegen.Pass{Mode: codegen.ModeClasses, Models: []string{"Post"}})

	assert.Contains(t, result, "public BuildStep id(String id) throws MalformedIdentityException {")
	assert.Contains(t, result, "if (id == null || !CANONICAL_ID.matcher(id).matches()) {")
	assert.Contains(t, result, `"model ID must be unique in the format of UUID: " + id,`)
	assert.Contains(t, result, "import java.util.regex.Pattern;")
}

func TestGenerator_PlanErrors(t *testing.T) {
	s := &schema.Schema{Models: []schema.Model{
		{Name: "Broken", Fields: []schema.Field{{Name: "build", Type: "String", Required: true}}},
		{Name: "Fine", Fields: []schema.Field{{Name: "name", Type: "String", Required: true}}},
	}}
	g := NewGenerator(codegen.Options{})

	t.Run("fail fast", func(t *testing.T) {
		code, err := g.Generate(s, codegen.Pass{Mode: codegen.ModeClasses})
		require.Error(t, err)
		assert.Nil(t, code)
		assert.True(t, errors.HasAssertionFailure(err))
		assert.Contains(t, err.Error(), "model Broken")
	})

	t.Run("best effort", func(t *testing.T) {
		// Test: the failing model is skipped and the rest is still emitted
		code, err := g.Generate(s, codegen.Pass{Mode: codegen.ModeClasses, BestEffort: true})
		require.Error(t, err)
		assert.Contains(t, string(code), "public final class Fine implements Model {")
		assert.NotContains(t, string(code), "class Broken")
	})
}

func TestGenerator_KeywordField(t *testing.T) {
	// Test: keywords are escaped wherever they become Java identifiers
	s := &schema.Schema{Models: []schema.Model{{
		Name: "Course",
		Fields: []schema.Field{
			{Name: "default", Type: "Boolean", Required: true},
			{Name: "new", Type: "String"},
		},
	}}}
	result := generate(t, s, codegen.Pass{Mode: codegen.ModeClasses})

	assert.Contains(t, result, "BuildStep default_(Boolean default_);\n")
	assert.Contains(t, result, " Boolean default_;\n")
	assert.Contains(t, result, "public BuildStep new_(String new_) {")
	assert.Contains(t, result, "public Boolean getDefault() {")
	assert.Contains(t, result, "return default_;")
	assert.Contains(t, result, `public static final QueryField NEW = field("Course", "new");`)
	assert.NotContains(t, result, " new;")
	assert.NotContains(t, result, "(String new)")
}

func TestGenerator_ReservedGetter(t *testing.T) {
	// Test: a field whose getter would override Object.getClass is rejected
	s := &schema.Schema{Models: []schema.Model{{
		Name:   "Thing",
		Fields: []schema.Field{{Name: "class", Type: "String"}},
	}}}
	_, err := NewGenerator(codegen.Options{}).Generate(s, codegen.Pass{Mode: codegen.ModeClasses})
	require.Error(t, err)
	assert.True(t, errors.HasAssertionFailure(err))
	assert.Contains(t, err.Error(), "getClass")
}

func TestGenerator_IdentityIsString(t *testing.T) {
	// Test: the identity is a String whatever type the schema declares
	s := &schema.Schema{Models: []schema.Model{{
		Name:   "Thing",
		Fields: []schema.Field{{Name: "id", Type: "Int", Required: true}, {Name: "name", Type: "String"}},
	}}}
	result := generate(t, s, codegen.Pass{Mode: codegen.ModeClasses})

	assert.Contains(t, result, "BuildStep id(String id) throws MalformedIdentityException;")
	assert.Contains(t, result, "String id = this.id != null ? this.id : UUID.randomUUID().toString();")
	assert.Contains(t, result, "public String getId() {")
	assert.NotContains(t, result, "Integer id")
}

func TestGenerator_Enums(t *testing.T) {
	s := blogSchema()
	s.Enums[0].Doc = "Publication status"

	result := generate(t, s, codegen.Pass{Mode: codegen.ModeEnums})
	assert.Equal(t, "package com.example.blog;\n\n"+
		"/** Publication status */\n"+
		"public enum Status {\n"+
		"    ACTIVE,\n"+
		"    INACTIVE\n"+
		"}\n", result)
}

func TestGenerator_Registry(t *testing.T) {
	s := blogSchema()
	result := generate(t, s, codegen.Pass{Mode: codegen.ModeRegistry})

	version, err := codegen.Version(s)
	require.NoError(t, err)

	assert.Contains(t, result, "public final class ModelRegistry implements ModelProvider {")
	assert.Contains(t, result, `private static final String MODELS_VERSION = "`+version+`";`)
	assert.Contains(t, result, "public static synchronized ModelRegistry getInstance() {")
	assert.Contains(t, result, "if (modelRegistryInstance == null) {")
	assert.Contains(t, result, "Arrays.<Class<? extends Model>>asList(Post.class, Comment.class)")
	assert.Contains(t, result, "import java.util.LinkedHashSet;")
}

func TestGenerator_RegistryNameAndSelection(t *testing.T) {
	code, err := NewGenerator(codegen.Options{RegistryName: "BlogModels"}).
		Generate(blogSchema(), codegen.Pass{Mode: codegen.ModeRegistry, Models: []string{"Comment", "Comment"}})
	require.NoError(t, err)

	result := string(code)
	assert.Contains(t, result, "public final class BlogModels implements ModelProvider {")
	assert.Contains(t, result, "asList(Comment.class)")
}

func TestGenerator_UnknownSelection(t *testing.T) {
	_, err := NewGenerator(codegen.Options{}).Generate(blogSchema(), codegen.Pass{Mode: codegen.ModeClasses, Models: []string{"Nope"}})
	assert.Error(t, err)

	_, err = NewGenerator(codegen.Options{}).Generate(blogSchema(), codegen.Pass{Mode: "everything"})
	assert.Error(t, err)
}
