// Package methodindex builds the two lookup maps the affect analyzer needs
// over a snapshot's methods: by uid and by composite name key.
package methodindex

import "github.com/flanksource/ftg-affect/internal/clangast"

// MethodIndex holds the two derived maps over a snapshot's methods.
// Duplicate uids or name keys append to the list rather than overwrite,
// since the same uid can in principle repeat across translation units and
// the same name key legitimately repeats across a declaration and its
// definition.
type MethodIndex struct {
	ByUID  map[string][]*clangast.AstNode
	ByName map[string][]*clangast.AstNode
}

// Build indexes a flat method list, as returned by Snapshot.Methods.
func Build(methods []*clangast.AstNode) *MethodIndex {
	idx := &MethodIndex{
		ByUID:  make(map[string][]*clangast.AstNode, len(methods)),
		ByName: make(map[string][]*clangast.AstNode, len(methods)),
	}
	for _, m := range methods {
		idx.ByUID[m.UID] = append(idx.ByUID[m.UID], m)
		idx.ByName[m.NameKey()] = append(idx.ByName[m.NameKey()], m)
	}
	return idx
}
