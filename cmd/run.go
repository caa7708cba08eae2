package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/flanksource/clicky"
	"github.com/flanksource/commons/logger"
	"github.com/flanksource/ftg-affect/internal/affect"
	"github.com/flanksource/ftg-affect/internal/clangast"
	"github.com/flanksource/ftg-affect/internal/diff"
	"github.com/flanksource/ftg-affect/internal/methodindex"
	"github.com/flanksource/ftg-affect/internal/publicapi"
	"github.com/flanksource/ftg-affect/models"
)

// runAnalyze implements the CLI contract from SPEC_FULL.md §6: three
// positional arguments (report path, snapshot-1 dir, snapshot-2 dir),
// printing the affected-fuzzer set. A load failure (bad report, unreadable
// or malformed *.ast.json file) returns a non-nil error, which Execute turns
// into a non-zero exit; an empty affected set is a normal, zero-exit result.
// A snapshot directory that is missing or cannot be listed is not an error:
// it loads as an empty snapshot.
func runAnalyze(reportPath, snapshot1Dir, snapshot2Dir string) error {
	publicAPI, err := publicapi.Load(reportPath)
	if err != nil {
		return err
	}
	logger.Infof("loaded %d public APIs from %s", len(publicAPI), reportPath)

	snapshot1, err := clangast.Load(snapshot1Dir)
	if err != nil {
		return err
	}
	snapshot2, err := clangast.Load(snapshot2Dir)
	if err != nil {
		return err
	}

	methods1 := snapshot1.Methods()
	methods2 := snapshot2.Methods()
	logger.Infof("snapshot 1: %d translation units, %d methods", len(snapshot1), len(methods1))
	logger.Infof("snapshot 2: %d translation units, %d methods", len(snapshot2), len(methods2))

	modifiedIDs := diff.FindModifiedIDs(methods1, methods2)
	logger.Infof("%d methods modified between snapshots", len(modifiedIDs))

	index := methodindex.Build(methods1)
	analyzer := affect.New(publicAPI, modifiedIDs, index)

	if verbose {
		for api := range publicAPI {
			logger.Debugf("affect trace: %s -> affected=%v", api, analyzer.IsMethodAffected(api))
		}
	}

	fuzzers, affectedAPIs := analyzer.Run()

	summary := models.Summary{
		TranslationUnits1: len(snapshot1),
		TranslationUnits2: len(snapshot2),
		Methods1:          len(methods1),
		Methods2:          len(methods2),
		ModifiedMethods:   len(modifiedIDs),
		PublicAPIs:        len(publicAPI),
		AffectedAPIs:      affectedAPIs,
	}
	result := models.NewResult(fuzzers, summary)

	return printResult(result)
}

func printResult(result models.Result) error {
	out, closeOut, err := resolveOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	if compact {
		for _, fuzzer := range result.Fuzzers {
			fmt.Fprintln(out, fuzzer)
		}
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	formatted, err := clicky.Format(result)
	if err != nil {
		fmt.Fprintln(out, result.Fuzzers)
		return nil
	}
	fmt.Fprint(out, formatted)
	return nil
}
