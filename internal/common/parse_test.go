package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBlockNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    uint64
		wantErr bool
	}{
		{input: "12345", want: 12345},
		{input: "0x1a2b", want: 0x1a2b},
		{input: "0XDEADBEEF", want: 0xDEADBEEF},
		{input: " 0x10 ", want: 16},
		{input: "0xffffffffffffffff", want: ^uint64(0)},
		{input: "0x10000000000000000", wantErr: true},
		{input: "12abc", wantErr: true},
		{input: "0xGHIJK", wantErr: true},
		{input: "0x", wantErr: true},
		{input: "", wantErr: true},
		{input: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBlockNumber(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestToLowerWithTrim(t *testing.T) {
	require.Equal(t, "uniswap_v2", ToLowerWithTrim("  UniSwap_V2 \t"))
	require.Equal(t, "", ToLowerWithTrim("   "))
}
