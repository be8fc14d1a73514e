package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBlockFinality(t *testing.T) {
	tests := []struct {
		input     string
		want      BlockFinality
		wantError bool
	}{
		{input: "finalized", want: FinalityFinalized},
		{input: "safe", want: FinalitySafe},
		{input: "latest", want: FinalityLatest},
		{input: " Finalized ", want: FinalityFinalized},
		{input: "pending", wantError: true},
		{input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBlockFinality(tt.input)
			if tt.wantError {
				require.ErrorContains(t, err, "invalid block finality")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.True(t, got.IsValid())
		})
	}
}

func TestBlockFinality_ScanHead(t *testing.T) {
	tests := []struct {
		name     string
		finality BlockFinality
		head     uint64
		lag      uint64
		want     uint64
	}{
		{name: "finalized ignores lag", finality: FinalityFinalized, head: 100, lag: 10, want: 100},
		{name: "safe ignores lag", finality: FinalitySafe, head: 100, lag: 10, want: 100},
		{name: "latest without lag", finality: FinalityLatest, head: 100, want: 100},
		{name: "latest with lag", finality: FinalityLatest, head: 100, lag: 10, want: 90},
		{name: "lag beyond head saturates", finality: FinalityLatest, head: 5, lag: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.finality.ScanHead(tt.head, tt.lag))
		})
	}
}
