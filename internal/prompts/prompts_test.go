package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Bands(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "python", s.Language())
	require.Len(t, s.Bands(), 4)

	tests := []struct {
		level int
		want  string
	}{
		{1, "very simple beginner"},
		{3, "very simple beginner"},
		{4, "intermediate"},
		{6, "intermediate"},
		{7, "advanced"},
		{8, "advanced"},
		{9, "expert"},
		{10, "expert"},
	}
	for _, tt := range tests {
		b, ok := s.BandFor(tt.level)
		require.True(t, ok, "level %d", tt.level)
		assert.True(t, strings.HasPrefix(b.Description, tt.want), "level %d: %q", tt.level, b.Description)
	}

	_, ok := s.BandFor(0)
	assert.False(t, ok)
	_, ok = s.BandFor(11)
	assert.False(t, ok)
}

func TestGeneration(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	r, err := s.Generation(7)
	require.NoError(t, err)

	assert.Contains(t, r.System, "10 difficulty levels (1 = very easy, 10 = expert)")
	assert.Contains(t, r.User, "The current selected level is 7.")
	assert.Contains(t, r.User, "Level 1-3: very simple beginner problems")
	assert.Contains(t, r.User, "Level 9-10: expert problems")
	assert.Contains(t, r.User, "For this request that means: advanced problems")
	assert.Contains(t, r.User, "<title>")
	assert.Contains(t, r.User, "<description>")
	assert.Contains(t, r.User, "<examples>")
	assert.Contains(t, r.User, "Do not provide the solution")

	_, err = s.Generation(11)
	assert.Error(t, err)
}

func TestEvaluation(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	r, err := s.Evaluation("<title>Two Sum</title>", "def f(): pass")
	require.NoError(t, err)

	assert.Contains(t, r.System, "programming evaluator")
	assert.Contains(t, r.User, "Problem:\n<title>Two Sum</title>")
	assert.Contains(t, r.User, "```python\ndef f(): pass\n```")
	assert.Contains(t, r.User, "score out of 20")
	assert.Contains(t, r.User, `"suggested_version"`)
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	override := `
language: go
bands:
  - {min: 1, max: 5, description: warm-ups}
  - {min: 6, max: 10, description: interview questions}
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "go", s.Language())
	b, ok := s.BandFor(6)
	require.True(t, ok)
	assert.Equal(t, "interview questions", b.Description)

	// Templates not in the override come from the embedded document.
	r, err := s.Evaluation("p", "package main")
	require.NoError(t, err)
	assert.Contains(t, r.User, "```go\npackage main\n```")
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "python", s.Language())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	base := `
language: python
levels: {min: 1, max: 10}
generation: {user: "level {{.Level}}"}
evaluation: {user: "{{.Problem}}"}
`
	tests := []struct {
		name string
		doc  string
	}{
		{"gap between bands", base + `
bands:
  - {min: 1, max: 3, description: a}
  - {min: 5, max: 10, description: b}
`},
		{"bands stop short", base + `
bands:
  - {min: 1, max: 9, description: a}
`},
		{"empty description", base + `
bands:
  - {min: 1, max: 10, description: ""}
`},
		{"bad template", `
language: python
levels: {min: 1, max: 10}
bands:
  - {min: 1, max: 10, description: all}
generation: {user: "level {{.Level"}
evaluation: {user: "{{.Problem}}"}
`},
		{"no language", `
levels: {min: 1, max: 10}
bands:
  - {min: 1, max: 10, description: all}
generation: {user: "x"}
evaluation: {user: "y"}
`},
		{"not yaml", "language: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestRender_MissingKey(t *testing.T) {
	doc := `
language: python
levels: {min: 1, max: 10}
bands:
  - {min: 1, max: 10, description: all}
generation: {user: "{{.Nope}}"}
evaluation: {user: "{{.Problem}}"}
`
	s, err := Parse([]byte(doc))
	require.NoError(t, err)

	_, err = s.Generation(3)
	assert.Error(t, err)
}
