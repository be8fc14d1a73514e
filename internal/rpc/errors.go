package rpc

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/FactoryScout/internal/common"
)

var (
	// Providers reject eth_getLogs ranges that match too many logs, e.g.
	// "Query returned more than 10000 results. Try with this block range [0x7dfd25, 0x7e0fcc]."
	// or "Log response size exceeded. this block range should work: [0x7dfd25, 0x7e0fcc]".
	tooManyResultsPattern = regexp.MustCompile(`(?i)query returned more than \d+ results|log response size exceeded`)

	// suggestedRangePattern matches hex block ranges in square brackets
	suggestedRangePattern = regexp.MustCompile(`\[(0x[0-9a-fA-F]+),\s*(0x[0-9a-fA-F]+)\]`)
)

// IsTooManyResultsError checks if the error is an RPC "too many results" error.
// The provider's message is looked up in the DataError payload first, then in the error text.
// It returns the text that matched, or the DataError payload when nothing matched.
func IsTooManyResultsError(err error) (bool, string) {
	if err == nil {
		return false, ""
	}

	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		errData := fmt.Sprintf("%v", dataErr.ErrorData())
		if tooManyResultsPattern.MatchString(errData) {
			return true, errData
		}
		if tooManyResultsPattern.MatchString(err.Error()) {
			return true, err.Error()
		}
		return false, errData
	}

	if tooManyResultsPattern.MatchString(err.Error()) {
		return true, err.Error()
	}

	return false, ""
}

// ParseSuggestedBlockRange attempts to extract the suggested block range from the error message.
// Returns the suggested fromBlock and toBlock, and true if successfully parsed.
func ParseSuggestedBlockRange(err string) (fromBlock, toBlock uint64, ok bool) {
	if err == "" {
		return 0, 0, false
	}

	matches := suggestedRangePattern.FindStringSubmatch(err)

	const expectedMatches = 3 // full match + 2 groups
	if len(matches) != expectedMatches {
		return 0, 0, false
	}

	from, err1 := common.ParseBlockNumber(matches[1])
	to, err2 := common.ParseBlockNumber(matches[2])
	if err1 != nil || err2 != nil || from > to {
		return 0, 0, false
	}

	return from, to, true
}
