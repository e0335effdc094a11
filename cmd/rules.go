package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/eigengo/quality/internal"
)

// rulesCmd: qlint rules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered rules and their default severities",
	Run: func(cmd *cobra.Command, args []string) {
		defaults := internal.DefaultRuleSeverities()

		names := make([]string, 0, len(defaults))
		for name := range defaults {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("%-28s %s\n", name, defaults[name])
		}
	},
}
