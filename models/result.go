// Package models holds the presentation-facing result types the CLI
// renders, separate from the internal analysis packages so that clicky
// struct tags never leak into the core algorithms.
package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/flanksource/clicky/api"
)

func init() {
	api.RegisterRenderFunc("fuzzer_list", RenderFuzzerList)
}

// RenderFuzzerList renders the affected-fuzzer slice one label per line,
// colored by theme severity the same way ast.RenderComplexity colors a
// numeric field: red when non-empty, muted when empty.
func RenderFuzzerList(value interface{}, field api.PrettyField, theme api.Theme) string {
	fuzzers, ok := value.([]string)
	if !ok || len(fuzzers) == 0 {
		return lipgloss.NewStyle().Foreground(theme.Muted).Render("(none)")
	}

	style := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	lines := make([]string, len(fuzzers))
	for i, f := range fuzzers {
		lines[i] = style.Render(f)
	}
	return strings.Join(lines, "\n")
}

// Summary reports the size of both snapshots and the counts that fed into
// the final affected-fuzzer set, so a CI log shows why a result looks the
// way it does without re-running with --verbose.
type Summary struct {
	TranslationUnits1 int `json:"translation_units_1" pretty:"label=TUs (Snapshot 1)"`
	TranslationUnits2 int `json:"translation_units_2" pretty:"label=TUs (Snapshot 2)"`
	Methods1          int `json:"methods_1" pretty:"label=Methods (Snapshot 1)"`
	Methods2          int `json:"methods_2" pretty:"label=Methods (Snapshot 2)"`
	ModifiedMethods   int `json:"modified_methods" pretty:"label=Modified Methods,style=text-orange-600"`
	PublicAPIs        int `json:"public_apis" pretty:"label=Public APIs"`
	AffectedAPIs      int `json:"affected_apis" pretty:"label=Affected APIs,style=text-red-600"`
	AffectedFuzzers   int `json:"affected_fuzzers" pretty:"label=Affected Fuzzers,style=text-red-600"`
}

// Result is the final output of a run: the sorted set of affected fuzzer
// labels plus the summary that explains it.
type Result struct {
	Fuzzers []string `json:"fuzzers" pretty:"label=Affected Fuzzers,render=fuzzer_list"`
	Summary Summary  `json:"summary" pretty:"label=Summary"`
}

// NewResult sorts fuzzers for reproducible CLI/CI output; the analyzer
// itself returns an unordered set. summary.AffectedAPIs must already be set
// by the caller from the analyzer's own affected-API count — it is not
// derivable from the fuzzer set here, since an affected API can map to
// zero, one, or several fuzzer labels.
func NewResult(fuzzers map[string]struct{}, summary Summary) Result {
	list := make([]string, 0, len(fuzzers))
	for f := range fuzzers {
		list = append(list, f)
	}
	sort.Strings(list)
	summary.AffectedFuzzers = len(list)
	return Result{Fuzzers: list, Summary: summary}
}

// Pretty implements clicky's pretty-printer interface for top-level
// formatting decisions (color cues on empty vs non-empty results).
func (r Result) Pretty() api.Text {
	if len(r.Fuzzers) == 0 {
		return api.Text{Content: "no fuzzers affected", Style: "text-green-600"}
	}
	return api.Text{
		Content: fmt.Sprintf("%d fuzzers affected", len(r.Fuzzers)),
		Style:   "text-red-600 font-bold",
	}
}
