package clangast

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeASTFile(t *testing.T, dir, rel string, body map[string]any) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	data, err := json.Marshal(body)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoad_DiscoversNestedASTFiles(t *testing.T) {
	dir := t.TempDir()
	writeASTFile(t, dir, "a.ast.json", map[string]any{
		"kind": "TranslationUnitDecl", "inner": []any{fnNode("0x1", "foo")},
	})
	writeASTFile(t, dir, "sub/b.ast.json", map[string]any{
		"kind": "TranslationUnitDecl", "inner": []any{fnNode("0x2", "bar")},
	})
	writeASTFile(t, dir, "ignored.txt", map[string]any{"kind": "TranslationUnitDecl"})

	snapshot, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, snapshot, 2)
	assert.Len(t, snapshot.Methods(), 2)
}

func TestLoad_SkipsNonTranslationUnitFiles(t *testing.T) {
	dir := t.TempDir()
	writeASTFile(t, dir, "good.ast.json", map[string]any{
		"kind": "TranslationUnitDecl", "inner": []any{fnNode("0x1", "foo")},
	})
	writeASTFile(t, dir, "bad.ast.json", map[string]any{"kind": "FunctionDecl"})

	snapshot, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	assert.Equal(t, filepath.Join(dir, "good.ast.json"), snapshot[0].FilePathname)
}

func TestLoad_FatalOnMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ast.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrJSONDecode))
}

func TestLoad_EmptyDirectoryYieldsEmptySnapshot(t *testing.T) {
	dir := t.TempDir()
	snapshot, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}
