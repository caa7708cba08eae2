// Package affect implements the transitive-affect analysis: a memoized,
// cycle-safe DFS over the reachable call graph rooted at each public API,
// determining whether it transitively reaches a modified method.
package affect

import (
	"github.com/flanksource/commons/logger"
	"github.com/flanksource/ftg-affect/internal/methodindex"
	"github.com/flanksource/ftg-affect/internal/publicapi"
)

// Analyzer holds the immutable inputs (public API map, modified-id set,
// method index over snapshot 1) plus the memoization caches populated
// during Run. It is built once per run and discarded afterward; nothing
// about it is safe to share across concurrent runs.
type Analyzer struct {
	publicAPI   publicapi.Map
	modifiedIDs map[string]struct{}
	index       *methodindex.MethodIndex

	checkedMethods map[string]bool
	checkedNodes   map[string]bool
}

// New builds an Analyzer over snapshot 1's method index, the diff engine's
// modified-id set, and the loaded public-API map.
func New(publicAPI publicapi.Map, modifiedIDs map[string]struct{}, index *methodindex.MethodIndex) *Analyzer {
	return &Analyzer{
		publicAPI:      publicAPI,
		modifiedIDs:    modifiedIDs,
		index:          index,
		checkedMethods: make(map[string]bool),
		checkedNodes:   make(map[string]bool),
	}
}

// Run computes or fetches IsMethodAffected for every public API and unions
// the fuzzer labels of every affected one. It never fails: a missing index
// entry for an API just means there are no roots to traverse, so that API
// contributes nothing. It returns both the unioned fuzzer-label set and the
// count of distinct affected APIs, which are not the same number: an
// affected API can map to zero, one, or several fuzzer labels.
func (a *Analyzer) Run() (fuzzers map[string]struct{}, affectedAPIs int) {
	fuzzers = make(map[string]struct{})
	for api, labels := range a.publicAPI {
		if !a.IsMethodAffected(api) {
			continue
		}
		logger.Debugf("affect: %s is affected", api)
		affectedAPIs++
		for label := range labels {
			fuzzers[label] = struct{}{}
		}
	}
	return fuzzers, affectedAPIs
}

// IsMethodAffected resolves (memoized in checkedMethods) whether the named
// API is affected. The index lookup key is the API name concatenated with
// itself, matching only nodes whose display name and mangled name are both
// exactly the API name — i.e. extern "C" symbols, per the analyzer's
// deliberate restriction to that symbol shape.
func (a *Analyzer) IsMethodAffected(name string) bool {
	if v, ok := a.checkedMethods[name]; ok {
		return v
	}

	roots := a.index.ByName[name+name]
	uids := make(map[string]struct{}, len(roots))
	for _, node := range roots {
		uids[node.UID] = struct{}{}
	}

	v := a.areNodesAffected(uids, make(map[string]struct{}))
	a.checkedMethods[name] = v
	return v
}

// areNodesAffected is the cycle-guarded DFS over a set of uids. stack is
// the in-progress ancestor set for the current descent: a uid already on
// the stack is an in-progress cycle and is skipped rather than recursed
// into again. checkedNodes is the global memo cache, populated only after
// the recursive call for a given uid returns.
func (a *Analyzer) areNodesAffected(uids map[string]struct{}, stack map[string]struct{}) bool {
	for uid := range uids {
		if _, onStack := stack[uid]; onStack {
			continue
		}

		v, cached := a.checkedNodes[uid]
		if !cached {
			stack[uid] = struct{}{}
			v = a.isNodeAffected(uid, stack)
			delete(stack, uid)
			a.checkedNodes[uid] = v
		}

		if v {
			return true
		}
	}
	return false
}

// isNodeAffected expands a uid to every sibling node sharing its
// (display name, mangled name) pair — a declaration and its definition may
// carry distinct uids but identical names, and references scattered across
// either must be unioned to avoid false negatives. A sibling counts as
// affected if it is itself modified, or if any method it references is
// affected.
func (a *Analyzer) isNodeAffected(uid string, stack map[string]struct{}) bool {
	for _, node := range a.index.ByUID[uid] {
		if node.DisplayName() == "" || node.MangledName() == "" {
			continue
		}

		siblings := a.index.ByName[node.NameKey()]
		for _, sib := range siblings {
			if _, modified := a.modifiedIDs[sib.UID]; modified {
				return true
			}
			if a.areNodesAffected(sib.FindReferencedMethods(), stack) {
				return true
			}
		}
	}
	return false
}
