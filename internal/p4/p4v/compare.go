package p4v

import (
	"path/filepath"
	"strings"
)

// CompareParams names the files of a two- or three-way compare. Display
// paths are shown as titles by tools that support them.
type CompareParams struct {
	LeftFilePath     string
	LeftDisplayPath  string
	RightFilePath    string
	RightDisplayPath string
	BaseFilePath     string
	BaseDisplayPath  string
}

// Args builds the argument list for tool, dispatching on its base name.
// Empty values are skipped.
func (p CompareParams) Args(tool string) []string {
	var args []string
	add := func(values ...string) {
		for _, v := range values {
			if v != "" {
				args = append(args, v)
			}
		}
	}
	flag := func(name, value string) {
		if value != "" {
			args = append(args, name, value)
		}
	}

	switch toolName(tool) {
	case "p4merge":
		flag("-nb", p.BaseDisplayPath)
		flag("-nl", p.LeftDisplayPath)
		flag("-nr", p.RightDisplayPath)
		add(p.BaseFilePath, p.LeftFilePath, p.RightFilePath)
	case "bcomp", "bcompare":
		if p.LeftDisplayPath != "" {
			add("/title1=" + p.LeftDisplayPath)
		}
		if p.RightDisplayPath != "" {
			add("/title2=" + p.RightDisplayPath)
		}
		if p.BaseDisplayPath != "" {
			add("/title3=" + p.BaseDisplayPath)
		}
		add(p.LeftFilePath, p.RightFilePath, p.BaseFilePath)
	default:
		add(p.BaseFilePath, p.LeftFilePath, p.RightFilePath)
	}
	return args
}

func toolName(tool string) string {
	base := filepath.Base(strings.ReplaceAll(tool, `\`, "/"))
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
