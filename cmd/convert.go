package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"katooh/internal/export"
)

var convertCmd = &cobra.Command{
	Use:   "convert <quiz.json>",
	Short: "Convert an exported quiz JSON file to a Kahoot spreadsheet",
	Long: `Convert re-validates a quiz JSON file (as written by export or the
review screen), re-applies the platform limits, and writes the shuffled
.xlsx spreadsheet. Useful after editing the JSON by hand.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		set, err := export.ReadJSON(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		if out == "" {
			out = strings.TrimSuffix(args[0], ".json") + ".xlsx"
		}

		skipped, err := writeXLSXFile(out, set)
		if err != nil {
			return err
		}
		for _, e := range skipped {
			fmt.Fprintf(os.Stderr, "warning: %v\n", e)
		}

		fmt.Printf("Wrote %d question(s) to %s\n", len(set)-len(skipped), out)
		return nil
	},
}

func init() {
	convertCmd.Flags().String("out", "", "Output .xlsx path (default: input name with .xlsx)")
}
