package golang

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okra-platform/modelgen/internal/codegen"
	"github.com/okra-platform/modelgen/internal/schema"
)

// generatedBehavior runs inside the generated package
const generatedBehavior = `package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/modelgen/pkg/modelid"
)

const fixedID = "123e4567-e89b-12d3-a456-426614174000"

func buildPost(t *testing.T, title string) *Post {
	t.Helper()
	b, err := NewPostBuilder().Title(title).Content("World").Tags([]string{"a", "b"}).ID(fixedID)
	require.NoError(t, err)
	return b.Build()
}

func TestRoundTrip(t *testing.T) {
	post := buildPost(t, "Hello")

	assert.Equal(t, fixedID, post.ID())
	assert.Equal(t, "Hello", post.Title())
	require.NotNil(t, post.Content())
	assert.Equal(t, "World", *post.Content())
	assert.Equal(t, []string{"a", "b"}, post.Tags())
	assert.Nil(t, post.Comments())
}

func TestEqualsAndHash(t *testing.T) {
	a, b := buildPost(t, "Hello"), buildPost(t, "Hello")
	assert.True(t, a.Equals(b))
	assert.Equal(t, a.Hash(), b.Hash())

	other := buildPost(t, "Other")
	assert.False(t, a.Equals(other))
	assert.False(t, a.Equals(nil))
}

func TestMalformedID(t *testing.T) {
	b := NewPostBuilder().Title("Hello")
	_, err := b.ID("not-a-uuid")
	require.Error(t, err)
	assert.True(t, modelid.IsMalformed(err))
	assert.NoError(t, modelid.Validate(b.Build().ID()))
}

func TestSynthesizedID(t *testing.T) {
	first := NewPostBuilder().Title("a").Build()
	second := NewPostBuilder().Title("a").Build()

	assert.NoError(t, modelid.Validate(first.ID()))
	assert.NotEqual(t, first.ID(), second.ID())
	assert.False(t, first.Equals(second))
}

func TestImmutable(t *testing.T) {
	tags := []string{"a"}
	b, err := NewPostBuilder().Title("Hello").Content("World").Tags(tags).ID(fixedID)
	require.NoError(t, err)
	post := b.Build()
	hash := post.Hash()

	tags[0] = "z"
	*post.Content() = "mutated"
	post.Tags()[0] = "y"

	assert.Equal(t, "World", *post.Content())
	assert.Equal(t, []string{"a"}, post.Tags())
	assert.Equal(t, hash, post.Hash())
}

func TestCommentChain(t *testing.T) {
	post := NewPostBuilder().Title("Hello").Build()
	comment := NewCommentBuilder().PostID(post.ID()).Text("Nice").Post(post).Status(StatusACTIVE).Build()

	assert.Equal(t, post.ID(), comment.PostID())
	assert.Same(t, post, comment.Post())
	require.NotNil(t, comment.Status())
	assert.Equal(t, StatusACTIVE, *comment.Status())
	assert.Nil(t, comment.CreatedAt())
	assert.True(t, StatusACTIVE.Valid())
	assert.False(t, Status("ARCHIVED").Valid())
}

func TestRegistry(t *testing.T) {
	r := GetModelRegistry()
	assert.Same(t, r, GetModelRegistry())
	require.Len(t, r.Models(), 2)
	assert.Equal(t, "Post", r.Models()[0].Name())
	assert.Equal(t, "Comment", r.Models()[1].Name())
	assert.Equal(t, modelRegistryVersion, r.Version())
}
`

// moduleRoot walks up from the working directory to the directory holding go.mod
func moduleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "go.mod not found")
		dir = parent
	}
}

func TestGenerator_GeneratedPackageBehaves(t *testing.T) {
	// Test: the generated package compiles inside the module and its
	// builders, accessors, equality, identity checks and registry behave
	if testing.Short() {
		t.Skip("compiles a generated package")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not available")
	}

	dir, err := os.MkdirTemp(moduleRoot(t), "generated")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	s := blogSchema()
	s.Models[0].Fields = append(s.Models[0].Fields, schema.Field{Name: "tags", Type: "[String]"})

	g := NewGenerator(codegen.Options{})
	files := map[codegen.Mode]string{
		codegen.ModeClasses:  "models.go",
		codegen.ModeEnums:    "enums.go",
		codegen.ModeRegistry: "registry.go",
	}
	for mode, name := range files {
		code, err := g.Generate(s, codegen.Pass{Mode: mode})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), code, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "behavior_test.go"), []byte(generatedBehavior), 0644))

	cmd := exec.Command(goBin, "test", "-count=1", ".")
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "generated package tests failed:\n%s", out)
}
