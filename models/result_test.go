package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResult_SortsFuzzerLabels(t *testing.T) {
	fuzzers := map[string]struct{}{
		"zebra_ftgfuzz": {},
		"alpha_ftgfuzz": {},
		"mid_ftgfuzz":   {},
	}

	result := NewResult(fuzzers, Summary{})
	assert.Equal(t, []string{"alpha_ftgfuzz", "mid_ftgfuzz", "zebra_ftgfuzz"}, result.Fuzzers)
}

func TestNewResult_SetsAffectedFuzzersFromFuzzerCount(t *testing.T) {
	fuzzers := map[string]struct{}{"a_ftgfuzz": {}, "b_ftgfuzz": {}}
	result := NewResult(fuzzers, Summary{PublicAPIs: 10, AffectedAPIs: 1})
	assert.Equal(t, 2, result.Summary.AffectedFuzzers)
	assert.Equal(t, 10, result.Summary.PublicAPIs)
	assert.Equal(t, 1, result.Summary.AffectedAPIs, "NewResult must not overwrite a caller-supplied AffectedAPIs")
}

func TestNewResult_EmptyFuzzerSetYieldsEmptySlice(t *testing.T) {
	result := NewResult(map[string]struct{}{}, Summary{})
	assert.Empty(t, result.Fuzzers)
	assert.Equal(t, 0, result.Summary.AffectedFuzzers)
}

func TestPretty_EmptyResultIsGreen(t *testing.T) {
	result := NewResult(map[string]struct{}{}, Summary{})
	text := result.Pretty()
	assert.Equal(t, "no fuzzers affected", text.Content)
	assert.Equal(t, "text-green-600", text.Style)
}

func TestPretty_NonEmptyResultIsRedWithCount(t *testing.T) {
	result := NewResult(map[string]struct{}{"a_ftgfuzz": {}, "b_ftgfuzz": {}}, Summary{})
	text := result.Pretty()
	assert.Equal(t, "2 fuzzers affected", text.Content)
	assert.Equal(t, "text-red-600 font-bold", text.Style)
}
