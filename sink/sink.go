// Package sink implements the artifact-sink capability the grammar
// compiler's Emission Adapter writes through (spec §6, "Artifact sink").
package sink

import (
	"os"
	"path/filepath"
)

// FileSink writes artifacts as files under OutDir, and treats an existing
// file under SrcDir of the same relative path as hand-written (spec §6:
// exists() guards against clobbering hand-written sources).
type FileSink struct {
	OutDir string
	SrcDir string
}

func New(outDir, srcDir string) *FileSink {
	return &FileSink{OutDir: outDir, SrcDir: srcDir}
}

func (s *FileSink) Exists(relativePath string) bool {
	if s.SrcDir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.SrcDir, relativePath))
	return err == nil
}

func (s *FileSink) Emit(artifactName, body string) error {
	if err := os.MkdirAll(s.OutDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.OutDir, artifactName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(body), 0o644)
}

// MemorySink is an in-memory ArtifactSink for tests: it never reports an
// artifact as pre-existing unless explicitly seeded via Guard, and records
// every emitted body for assertions.
type MemorySink struct {
	guarded map[string]bool
	emitted map[string]string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{guarded: map[string]bool{}, emitted: map[string]string{}}
}

// Guard marks relativePath as already hand-written, so Exists reports true
// for it and Emit will be skipped by a caller that checks Exists first.
func (s *MemorySink) Guard(relativePath string) {
	s.guarded[relativePath] = true
}

func (s *MemorySink) Exists(relativePath string) bool {
	return s.guarded[relativePath]
}

func (s *MemorySink) Emit(artifactName, body string) error {
	s.emitted[artifactName] = body
	return nil
}

func (s *MemorySink) Emitted(artifactName string) (string, bool) {
	body, ok := s.emitted[artifactName]
	return body, ok
}

func (s *MemorySink) EmittedCount() int {
	return len(s.emitted)
}
