package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"
)

const (
	CategoryDevice = "Device"
	CategoryLink   = "Link"
	CategoryOutput = "Output"
)

type CategorizedFlag interface {
	cli.Flag
	Category() string
}

func Categorize(f cli.Flag, category string) CategorizedFlag {
	return &categorizedFlag{
		Flag:     f,
		category: category,
	}
}

type categorizedFlag struct {
	cli.Flag
	category string
}

func (f *categorizedFlag) Category() string {
	return f.category
}

func formatFlags(flags []cli.Flag) string {
	var res string
	m := make(map[string][]cli.Flag)
	for _, f := range flags {
		cat := "(Uncategorized)"
		if x, ok := f.(CategorizedFlag); ok {
			if cat2 := x.Category(); cat2 != "" {
				cat = cat2
			}
		}
		m[cat] = append(m[cat], f)
	}

	var catList []string
	for c := range m {
		catList = append(catList, c)
	}
	sort.Strings(catList)

	for _, cat := range catList {
		res += fmt.Sprintf("  %s:\t\n", cat)
		for _, f := range m[cat] {
			res += fmt.Sprintf("    %s\n", f.String())
		}
		res += "  \t\n"
	}
	return res
}

// commandHelpTemplate prints the categorized flags from Description instead
// of the flat OPTIONS list.
const commandHelpTemplate = `NAME:
   {{.HelpName}} - {{.Usage}}

USAGE:
   {{.HelpName}} [command options]{{if .ArgsUsage}} {{.ArgsUsage}}{{end}}

OPTIONS:
{{.Description}}`
