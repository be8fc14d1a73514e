package common

import (
	"errors"
	"strconv"
	"strings"
)

var errEmptyNumber = errors.New("empty number")

// ParseBlockNumber parses a block number given either in decimal or as 0x-prefixed hex,
// the form JSON-RPC nodes use in error messages.
func ParseBlockNumber(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyNumber
	}

	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		return strconv.ParseUint(hex, 16, 64)
	}

	return strconv.ParseUint(s, 10, 64)
}

// ToLowerWithTrim normalizes a configuration keyword.
func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
