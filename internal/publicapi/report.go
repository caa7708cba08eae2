// Package publicapi loads the fuzzer-generation report and filters it down
// to the API-name -> fuzzer-label mapping the affect analyzer roots its
// traversal in.
package publicapi

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
)

// Map is API name -> set of fuzzer labels.
type Map map[string]map[string]struct{}

type report struct {
	API []apiEntry `json:"API"`
}

type apiEntry struct {
	Name              string      `json:"Name"`
	Status            string      `json:"Status"`
	FuzzerBuildStatus string      `json:"FuzzerBuildStatus"`
	StatusList        []statusRow `json:"StatusList"`
}

type statusRow struct {
	Status       string `json:"Status"`
	StatusFromUT string `json:"StatusFromUT"`
}

// Load reads the report JSON at path and builds the public-API map.
//
// An entry is included iff Status == "GENERATED" and
// FuzzerBuildStatus == "SUCCESS" and Name is non-empty; its fuzzer set is
// the "<StatusFromUT>_ftgfuzz" label for every StatusList row with
// Status == "GENERATED" and a non-empty StatusFromUT. Multiple entries for
// the same Name accumulate by set union.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("publicapi: failed to read report %s: %w", path, err)
	}

	var r report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("publicapi: failed to decode report %s: %w", path, err)
	}

	result := make(Map)
	for _, entry := range r.API {
		if entry.Status != "GENERATED" || entry.FuzzerBuildStatus != "SUCCESS" || entry.Name == "" {
			continue
		}

		fuzzers := result[entry.Name]
		if fuzzers == nil {
			fuzzers = make(map[string]struct{})
			result[entry.Name] = fuzzers
		}

		labels := lo.FilterMap(entry.StatusList, func(row statusRow, _ int) (string, bool) {
			if row.Status != "GENERATED" || row.StatusFromUT == "" {
				return "", false
			}
			return row.StatusFromUT + "_ftgfuzz", true
		})
		for _, label := range labels {
			fuzzers[label] = struct{}{}
		}
	}

	return result, nil
}
