package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnyGlob(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		globs    []string
		expected bool
	}{
		{"double star matches root file", "main.go", []string{"**/*.go"}, true},
		{"double star matches nested file", "a/b/c.go", []string{"**/*.go"}, true},
		{"extension mismatch", "a/b/c.ts", []string{"**/*.go"}, false},
		{"directory glob", "src/auth/login.ts", []string{"**/auth/**"}, true},
		{"directory glob at root", "auth/login.ts", []string{"**/auth/**"}, true},
		{"dot directory", ".github/workflows/ci.yml", []string{"**/.github/workflows/**"}, true},
		{"dockerfile anywhere", "deploy/Dockerfile", []string{"**/Dockerfile"}, true},
		{"config substring", "app/config.yaml", []string{"**/*config*.*"}, true},
		{"env files", "svc/.env.local", []string{"**/*.env*"}, true},
		{"test file heuristic", "pkg/foo_test.go", []string{"**/*test*.*"}, true},
		{"tests directory", "tests/unit/a.py", []string{"**/tests/**"}, true},
		{"no globs", "a.go", nil, false},
		{"blank glob ignored", "a.go", []string{"  "}, false},
		{"invalid glob never matches", "a.go", []string{"[", "**/*.go"}, true},
		{"only invalid glob", "a.go", []string{"["}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Any(tt.path, tt.globs))
		})
	}
}

func TestFilter(t *testing.T) {
	paths := []string{"a.go", "b.ts", "c/d.go", "README.md"}
	globs := []string{"**/*.go"}

	assert.Equal(t, []string{"a.go", "c/d.go"}, Filter(paths, globs))
	assert.Empty(t, Filter(paths, []string{"**/*.rs"}))
	assert.NotNil(t, Filter(nil, globs))
}

// Wildcards match a leading dot, so dotfiles count for globs like "**/*.env*".
func TestAnyMatchesDotfiles(t *testing.T) {
	tests := []struct {
		path  string
		glob  string
		match bool
	}{
		{".env", "**/*.env*", true},
		{"svc/.env", "**/*.env*", true},
		{".eslintrc.json", "*", true},
		{"pkg/.hidden/config.go", "**/*.go", true},
		{".github/workflows/ci.yml", "**/*.yml", true},
		{".ENV", "**/*.env*", false},
	}
	for _, tt := range tests {
		t.Run(tt.path+" "+tt.glob, func(t *testing.T) {
			assert.Equal(t, tt.match, Any(tt.path, []string{tt.glob}))
		})
	}
}

func TestValidGlob(t *testing.T) {
	assert.True(t, ValidGlob("**/*.go"))
	assert.False(t, ValidGlob("["))
}

func TestCompile(t *testing.T) {
	res := Compile([]string{`foo\d+`, `(`, `bar`})
	require.Len(t, res, 2, "invalid patterns are dropped")
	assert.Equal(t, `foo\d+`, res[0].Source)
	assert.Equal(t, "bar", res[1].String())

	assert.True(t, TestAny("foo12", res))
	assert.True(t, TestAny("xbarx", res))
	assert.False(t, TestAny("foo", res))
	assert.False(t, TestAny("anything", nil))
}

func TestCompileOnlyInvalid(t *testing.T) {
	res := Compile([]string{`[`, `(?P<`})
	assert.Empty(t, res)
	assert.False(t, TestAny("[", res))
}

func TestCompileIsCaseInsensitive(t *testing.T) {
	res := Compile([]string{"todo"})
	require.Len(t, res, 1)
	assert.True(t, TestAny("// TODO later", res))
}

func TestCompileOne(t *testing.T) {
	re, err := CompileOne(`TASK-\d+`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("see task-42"))

	_, err = CompileOne(`(`)
	assert.Error(t, err)
}
