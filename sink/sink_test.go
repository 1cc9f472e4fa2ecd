package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSinkEmitsUnderOutDir(t *testing.T) {
	outDir := t.TempDir()
	s := New(outDir, "")

	require.NoError(t, s.Emit("Foo.java", "class Foo {}"))

	body, err := os.ReadFile(filepath.Join(outDir, "Foo.java"))
	require.NoError(t, err)
	assert.Equal(t, "class Foo {}", string(body))
}

func TestFileSinkExistsGuardsSrcDir(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "Handwritten.java"), []byte("// hand-written"), 0o600))

	s := New(t.TempDir(), srcDir)
	assert.True(t, s.Exists("Handwritten.java"))
	assert.False(t, s.Exists("Generated.java"))
}

func TestMemorySinkGuardSkipsEmit(t *testing.T) {
	s := NewMemorySink()
	s.Guard("Foo.java")

	assert.True(t, s.Exists("Foo.java"))
	require.NoError(t, s.Emit("Bar.java", "body"))

	_, ok := s.Emitted("Foo.java")
	assert.False(t, ok)
	body, ok := s.Emitted("Bar.java")
	assert.True(t, ok)
	assert.Equal(t, "body", body)
}
