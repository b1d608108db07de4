package p4v

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareParamsArgs(t *testing.T) {
	full := CompareParams{
		LeftFilePath: "/tmp/a#3", LeftDisplayPath: "//depot/a#3",
		RightFilePath: "/ws/a", RightDisplayPath: "a (workspace)",
		BaseFilePath: "/tmp/a#1", BaseDisplayPath: "//depot/a#1",
	}

	tests := []struct {
		name   string
		tool   string
		params CompareParams
		want   []string
	}{
		{
			name:   "P4Merge Titles Then Base Left Right",
			tool:   `C:\Program Files\Perforce\p4merge.exe`,
			params: full,
			want: []string{
				"-nb", "//depot/a#1", "-nl", "//depot/a#3", "-nr", "a (workspace)",
				"/tmp/a#1", "/tmp/a#3", "/ws/a",
			},
		},
		{
			name:   "Beyond Compare Titles Then Left Right Base",
			tool:   "/usr/bin/bcompare",
			params: full,
			want: []string{
				"/title1=//depot/a#3", "/title2=a (workspace)", "/title3=//depot/a#1",
				"/tmp/a#3", "/ws/a", "/tmp/a#1",
			},
		},
		{
			name:   "BComp Alias Two Way",
			tool:   "BComp.exe",
			params: CompareParams{LeftFilePath: "l", RightFilePath: "r"},
			want:   []string{"l", "r"},
		},
		{
			name:   "Unknown Tool Paths Only",
			tool:   "meld",
			params: full,
			want:   []string{"/tmp/a#1", "/tmp/a#3", "/ws/a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Args(tt.tool))
		})
	}
}
