package customizations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempToml(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "customizations.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadBasic(t *testing.T) {
	path := writeTempToml(t, `
tokens = "com.example.Tokens"
postconds = "com.example.Postconds"

[mixins.Positioned]
state = [{ type = "int", field = "line" }]
imports = ["com.example.Position"]

[custom_node_content.Expr]
body = "return eval();"
imports = ["com.example.Eval"]
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "com.example.Tokens", c.Tokens)
	assert.Equal(t, "com.example.Postconds", c.Postconds)
	require.Contains(t, c.Mixins, "Positioned")
	assert.Equal(t, "int", c.Mixins["Positioned"].State[0].Type)
	require.Contains(t, c.CustomNodeContent, "Expr")
	assert.Equal(t, "return eval();", c.CustomNodeContent["Expr"].Body)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeTempToml(t, `bogus = "nope"`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestResolveTransitiveExtends(t *testing.T) {
	c := &Customizations{
		Mixins: map[string]Mixin{
			"Base":   {State: []StateField{{Type: "int", Field: "id"}}},
			"Middle": {State: []StateField{{Type: "string", Field: "name"}}, Extends: []string{"Base"}},
			"Top":    {State: []StateField{{Type: "bool", Field: "active"}}, Extends: []string{"Middle"}},
		},
	}

	resolved, ok := c.Resolve("Top")
	require.True(t, ok)
	require.Len(t, resolved.State, 3)
	assert.Equal(t, "active", resolved.State[0].Field)
	assert.Equal(t, "name", resolved.State[1].Field)
	assert.Equal(t, "id", resolved.State[2].Field)
}

func TestResolveHandlesCycle(t *testing.T) {
	c := &Customizations{
		Mixins: map[string]Mixin{
			"A": {Extends: []string{"B"}},
			"B": {Extends: []string{"A"}},
		},
	}

	resolved, ok := c.Resolve("A")
	require.True(t, ok)
	assert.Empty(t, resolved.State)
}

func TestResolveUnknownMixin(t *testing.T) {
	c := &Customizations{Mixins: map[string]Mixin{}}
	_, ok := c.Resolve("Missing")
	assert.False(t, ok)
}
