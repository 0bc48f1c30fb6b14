package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"katooh/internal/llm"
	"katooh/internal/quizgen"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List known models with context windows and pricing",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%-30s  %12s  %10s  %10s\n",
			"Model", "Context", "$/M in", "$/M out")
		fmt.Println(strings.Repeat("─", 70))

		for _, id := range quizgen.KnownModels() {
			in, out := "-", "-"
			if c := llm.LookupCost(id); c != nil {
				in = fmt.Sprintf("%.2f", c.InputPerMTok)
				out = fmt.Sprintf("%.2f", c.OutputPerMTok)
			}
			fmt.Printf("%-30s  %12d  %10s  %10s\n",
				id, quizgen.ContextWindow(id), in, out)
		}

		fmt.Println()
		fmt.Println("Other model IDs work too; unknown ones get a conservative")
		fmt.Printf("%d-token budget and no cost estimate.\n", quizgen.ContextWindow("unknown"))
	},
}
