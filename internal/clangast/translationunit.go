package clangast

import "fmt"

// TranslationUnit wraps a single parsed *.ast.json file.
type TranslationUnit struct {
	FilePathname string
	Root         *AstNode
}

// NewTranslationUnit validates that raw is rooted at a TranslationUnitDecl
// and builds its node tree. Returns ErrNotTranslationUnit otherwise, which
// callers should treat as recoverable (skip the file, keep going).
func NewTranslationUnit(filePathname string, raw map[string]any) (*TranslationUnit, error) {
	kind, _ := raw["kind"].(string)
	if kind != "TranslationUnitDecl" {
		return nil, fmt.Errorf("%w: %s (kind=%q)", ErrNotTranslationUnit, filePathname, kind)
	}
	return &TranslationUnit{
		FilePathname: filePathname,
		Root:         NewAstNode(filePathname, raw),
	}, nil
}

// FindMethods searches this translation unit's tree for method-kind nodes
// matching the given name filters (empty string means unfiltered).
func (tu *TranslationUnit) FindMethods(displayName, mangledName string) []*AstNode {
	return tu.Root.FindMethods(displayName, mangledName)
}

// Snapshot is the set of translation units loaded from one directory tree.
// Order is unspecified and analysis never depends on it.
type Snapshot []*TranslationUnit

// Methods returns every method-kind node across all translation units in
// the snapshot.
func (s Snapshot) Methods() []*AstNode {
	var res []*AstNode
	for _, tu := range s {
		res = append(res, tu.FindMethods("", "")...)
	}
	return res
}
