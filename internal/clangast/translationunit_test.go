package clangast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslationUnit_RejectsNonTUKind(t *testing.T) {
	_, err := NewTranslationUnit("a.ast.json", map[string]any{"kind": "FunctionDecl"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotTranslationUnit))
}

func TestNewTranslationUnit_AcceptsTUKind(t *testing.T) {
	tu, err := NewTranslationUnit("a.ast.json", map[string]any{
		"kind": "TranslationUnitDecl",
		"inner": []any{
			fnNode("0x1", "foo"),
		},
	})
	require.NoError(t, err)
	require.Len(t, tu.FindMethods("", ""), 1)
}

func TestSnapshot_MethodsAggregatesAcrossUnits(t *testing.T) {
	tu1, err := NewTranslationUnit("a.ast.json", map[string]any{
		"kind":  "TranslationUnitDecl",
		"inner": []any{fnNode("0x1", "foo")},
	})
	require.NoError(t, err)
	tu2, err := NewTranslationUnit("b.ast.json", map[string]any{
		"kind":  "TranslationUnitDecl",
		"inner": []any{fnNode("0x2", "bar")},
	})
	require.NoError(t, err)

	snapshot := Snapshot{tu1, tu2}
	assert.Len(t, snapshot.Methods(), 2)
}
