// Package clangast loads Clang -ast-dump=json translation units into a
// canonical, structurally-comparable node tree.
//
// Each node keeps only the parameters NewAstNode recognizes; every other
// JSON field is dropped at construction. This is the single place
// where the wire format is normalized, so equality and reference discovery
// downstream never have to special-case provenance (uid, file path) or
// build-sandbox noise (absolute paths baked into qualified types).
package clangast

import (
	"sort"
	"strings"
)

// commentKinds are filtered out of children at ingestion; Clang emits these
// for documentation comments attached to a decl, and they have no bearing on
// structural equality or call-graph reachability.
var commentKinds = map[string]bool{
	"FullComment":              true,
	"ParagraphComment":         true,
	"TextComment":              true,
	"InlineCommandComment":     true,
	"HTMLStartTagComment":      true,
	"HTMLEndTagComment":        true,
	"BlockCommandComment":      true,
	"ParamCommandComment":      true,
	"TParamCommandComment":     true,
	"VerbatimBlockComment":     true,
	"VerbatimBlockLineComment": true,
	"VerbatimLineComment":      true,
}

// methodKinds are the function-like declaration kinds that the affect
// analyzer treats as call-graph nodes.
var methodKinds = map[string]bool{
	"FunctionDecl":         true,
	"CXXConstructorDecl":   true,
	"CXXDestructorDecl":    true,
	"CXXMethodDecl":        true,
	"FunctionTemplateDecl": true,
}

// MethodKinds returns the recognized method-kind set, sorted. It exists so
// the CLI's --version output can report which `-ast-dump=json` node kinds
// this build recognizes, which is the part of AST-producer compatibility
// that actually changes across Clang versions.
func MethodKinds() []string {
	kinds := make([]string, 0, len(methodKinds))
	for k := range methodKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// A qualType or lvalue StringLiteral value containing buildSandboxPath is
// replaced by the empty string as a whole, so that two snapshots built in
// different sandboxes don't register as changed purely because of an
// embedded build path.
const buildSandboxPath = "/home/abuild/rpmbuild"

// AstNode is the canonical in-memory representation of one Clang AST node.
//
// Params holds the comparable fields; values are string, bool, or *AstNode
// (for a nested referencedDecl). ParamsEx holds referencedMemberDecl, which
// is read by reference discovery but excluded from equality.
type AstNode struct {
	UID          string
	Params       map[string]any
	ParamsEx     map[string]string
	Children     []*AstNode
	FilePathname string
}

// NewAstNode builds a node from a decoded JSON object, applying the
// normalization rules: id becomes UID (never a param), type is reduced to
// its qualType string, referencedDecl is parsed recursively,
// referencedMemberDecl is kept raw in ParamsEx, and inner becomes Children
// after the comment filter.
func NewAstNode(filePathname string, raw map[string]any) *AstNode {
	n := &AstNode{
		Params:       map[string]any{},
		ParamsEx:     map[string]string{},
		FilePathname: filePathname,
	}

	for k, v := range raw {
		switch k {
		case "id":
			if s, ok := v.(string); ok {
				n.UID = s
			}
		case "type":
			if m, ok := v.(map[string]any); ok {
				qt, _ := m["qualType"].(string)
				n.Params["type"] = qt
			}
		case "referencedDecl":
			if m, ok := v.(map[string]any); ok {
				n.Params["referencedDecl"] = NewAstNode(filePathname, m)
			}
		case "referencedMemberDecl":
			if s, ok := v.(string); ok {
				n.ParamsEx["referencedMemberDecl"] = s
			}
		case "inner":
			if arr, ok := v.([]any); ok {
				n.Children = parseChildren(filePathname, arr)
			}
		case "isUsed", "virtual", "isReferenced":
			if b, ok := v.(bool); ok {
				n.Params[k] = b
			}
		case "kind", "name", "mangledName", "valueCategory", "value", "opcode", "castKind":
			if s, ok := v.(string); ok {
				n.Params[k] = s
			}
		}
	}

	n.stripBuildSandboxPath()
	n.blankLiteralValue()

	return n
}

func (n *AstNode) stripBuildSandboxPath() {
	t, ok := n.Params["type"].(string)
	if ok && strings.Contains(t, buildSandboxPath) {
		n.Params["type"] = ""
	}
}

func (n *AstNode) blankLiteralValue() {
	v, ok := n.Params["value"].(string)
	if !ok || v == "" {
		return
	}
	kind := n.Kind()
	vc, _ := n.Params["valueCategory"].(string)

	switch {
	case kind == "IntegerLiteral" && vc == "rvalue":
		n.Params["value"] = ""
	case kind == "StringLiteral" && vc == "rvalue":
		n.Params["value"] = ""
	case kind == "StringLiteral" && vc == "lvalue" && strings.Contains(v, buildSandboxPath):
		n.Params["value"] = ""
	}
}

func parseChildren(filePathname string, arr []any) []*AstNode {
	children := make([]*AstNode, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		kind, _ := m["kind"].(string)
		if commentKinds[kind] {
			continue
		}
		children = append(children, NewAstNode(filePathname, m))
	}
	return children
}

// Kind returns the node's kind, or "" if absent.
func (n *AstNode) Kind() string {
	s, _ := n.Params["kind"].(string)
	return s
}

// DisplayName returns the node's name, or "" if absent.
func (n *AstNode) DisplayName() string {
	s, _ := n.Params["name"].(string)
	return s
}

// MangledName returns the node's mangledName, or "" if absent.
func (n *AstNode) MangledName() string {
	s, _ := n.Params["mangledName"].(string)
	return s
}

// IsMethod reports whether this node's kind is one of the recognized
// function-like declaration kinds.
func (n *AstNode) IsMethod() bool {
	return methodKinds[n.Kind()]
}

// NameKey is the composite key methods are indexed by: display name
// concatenated with mangled name.
func (n *AstNode) NameKey() string {
	return n.DisplayName() + n.MangledName()
}

// Equal reports structural equality: equal Params (uid, file path, and
// ParamsEx never participate) and children that pairwise match by
// existence, not by position. Two independent parses of the same JSON
// always compare equal.
func (n *AstNode) Equal(other *AstNode) bool {
	if n == nil || other == nil {
		return n == other
	}
	if !paramsEqual(n.Params, other.Params) {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for _, child := range n.Children {
		if !anyEqual(child, other.Children) {
			return false
		}
	}
	return true
}

func anyEqual(node *AstNode, candidates []*AstNode) bool {
	for _, c := range candidates {
		if node.Equal(c) {
			return true
		}
	}
	return false
}

func paramsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok {
			return false
		}
		if !valueEqual(va, vb) {
			return false
		}
	}
	return true
}

func valueEqual(va, vb any) bool {
	switch x := va.(type) {
	case string:
		y, ok := vb.(string)
		return ok && x == y
	case bool:
		y, ok := vb.(bool)
		return ok && x == y
	case *AstNode:
		y, ok := vb.(*AstNode)
		return ok && x.Equal(y)
	default:
		return false
	}
}

// FindMethods recursively searches self and descendants for method-kind
// nodes. A method-kind node is always a leaf of the search: its body is
// never examined for nested method decls, since those cannot occur in the
// Clang AST. A non-method node always recurses into its children.
//
// displayName and mangledName, if non-empty, must match exactly for a
// method to be included.
func (n *AstNode) FindMethods(displayName, mangledName string) []*AstNode {
	var res []*AstNode

	if n.IsMethod() {
		if displayName != "" && displayName != n.DisplayName() {
			return res
		}
		if mangledName != "" && mangledName != n.MangledName() {
			return res
		}
		return append(res, n)
	}

	for _, child := range n.Children {
		res = append(res, child.FindMethods(displayName, mangledName)...)
	}
	return res
}

// FindReferencedMethods walks self and all descendants, collecting the uids
// of every method reference reachable from this subtree: the uid of a
// referencedDecl whose kind is a method kind, plus every
// referencedMemberDecl raw uid, collected unconditionally since its kind is
// not stored alongside it.
func (n *AstNode) FindReferencedMethods() map[string]struct{} {
	res := make(map[string]struct{})
	n.collectReferencedMethods(res)
	return res
}

func (n *AstNode) collectReferencedMethods(res map[string]struct{}) {
	if ref, ok := n.Params["referencedDecl"].(*AstNode); ok && ref.IsMethod() {
		res[ref.UID] = struct{}{}
	}
	if uid, ok := n.ParamsEx["referencedMemberDecl"]; ok {
		res[uid] = struct{}{}
	}
	for _, child := range n.Children {
		child.collectReferencedMethods(res)
	}
}

// String renders the node tree for debugging, one line per node with an
// indentation prefix, mirroring the producer's own dump layout.
func (n *AstNode) String() string {
	var sb strings.Builder
	n.print(&sb, "|")
	return sb.String()
}

func (n *AstNode) print(sb *strings.Builder, prefix string) {
	sb.WriteString(prefix)
	sb.WriteString(" AstNode(uid: ")
	sb.WriteString(n.UID)
	sb.WriteString(", ")
	for k, v := range n.Params {
		if node, ok := v.(*AstNode); ok {
			sb.WriteString(k + ": " + node.UID + ", ")
			continue
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		writeAny(sb, v)
		sb.WriteString(", ")
	}
	for k, v := range n.ParamsEx {
		sb.WriteString(k + ": " + v + ", ")
	}
	sb.WriteString(")\n")
	for _, child := range n.Children {
		child.print(sb, prefix+"--")
	}
}

func writeAny(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case string:
		sb.WriteString(x)
	case bool:
		if x {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	}
}
