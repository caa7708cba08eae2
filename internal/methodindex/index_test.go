package methodindex

import (
	"testing"

	"github.com/flanksource/ftg-affect/internal/clangast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func method(uid, name string) *clangast.AstNode {
	return clangast.NewAstNode("a.ast.json", map[string]any{
		"id": uid, "kind": "FunctionDecl", "name": name, "mangledName": name,
	})
}

func TestBuild_IndexesByUIDAndName(t *testing.T) {
	m1 := method("0x1", "foo")
	m2 := method("0x2", "bar")

	idx := Build([]*clangast.AstNode{m1, m2})

	require.Len(t, idx.ByUID["0x1"], 1)
	assert.Equal(t, m1, idx.ByUID["0x1"][0])
	require.Len(t, idx.ByName["foofoo"], 1)
	assert.Equal(t, m1, idx.ByName["foofoo"][0])
}

func TestBuild_DuplicateUIDsAppend(t *testing.T) {
	decl := method("0x1", "foo")
	def := method("0x1", "foo")

	idx := Build([]*clangast.AstNode{decl, def})
	assert.Len(t, idx.ByUID["0x1"], 2)
}

func TestBuild_DuplicateNameKeysAppend(t *testing.T) {
	decl := method("0x1", "foo")
	def := method("0x2", "foo")

	idx := Build([]*clangast.AstNode{decl, def})
	assert.Len(t, idx.ByName["foofoo"], 2)
}
