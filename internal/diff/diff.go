// Package diff computes the one-sided modified-method set between two
// snapshots' method lists.
package diff

import (
	"github.com/flanksource/ftg-affect/internal/clangast"
	"github.com/samber/lo"
)

// FindModifiedIDs returns the uid of every method in methods1 that has no
// structurally equal counterpart in methods2. The direction is one-sided by
// design: methods added in methods2 (absent from methods1) are not
// reported, since the affect analysis only ever roots its traversal in
// methods1.
//
// Complexity is O(len(methods1) * len(methods2)); acceptable for inputs in
// the thousands per spec.
func FindModifiedIDs(methods1, methods2 []*clangast.AstNode) map[string]struct{} {
	modified := make(map[string]struct{})
	for _, m := range methods1 {
		if !lo.ContainsBy(methods2, func(other *clangast.AstNode) bool {
			return m.Equal(other)
		}) {
			modified[m.UID] = struct{}{}
		}
	}
	return modified
}
