package cli

import (
	"fmt"
	"strings"

	"github.com/dshills/gitfluff/internal/preset"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in presets",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		for _, p := range preset.All() {
			fmt.Fprintf(w, "%s:\n", p.Name)
			fmt.Fprintf(w, "  %s\n", p.Description)
			fmt.Fprintf(w, "  pattern: %s\n", p.Pattern)
			fmt.Fprintf(w, "  body:    %s\n", p.BodyPolicy)
			if p.EnforceSpec {
				fmt.Fprintln(w, "  checks:  Conventional Commits structure")
			}
			if len(p.Aliases) > 0 {
				fmt.Fprintf(w, "  aliases: %s\n", strings.Join(p.Aliases, ", "))
			}
			fmt.Fprintln(w)
		}
	},
}
