package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"katooh/internal/export"
	"katooh/internal/extract"
	"katooh/internal/llm"
	"katooh/internal/quizgen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz without the TUI",
	Long: `Generate a quiz from a topic or a source document and write it
straight to a Kahoot-importable .xlsx (or editable .json) file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		file, _ := cmd.Flags().GetString("file")
		count, _ := cmd.Flags().GetInt("count")
		objectives, _ := cmd.Flags().GetString("objectives")
		audience, _ := cmd.Flags().GetString("audience")
		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if topic == "" && file == "" {
			return fmt.Errorf("either --topic or --file is required")
		}
		if format != "xlsx" && format != "json" {
			return fmt.Errorf("unknown format %q (want xlsx or json)", format)
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		logger := consoleLogger(verbose)
		defer func() { _ = logger.Sync() }()

		ctx := context.Background()

		var images []llm.Image
		if file != "" {
			in, err := extract.New(logger).FromFile(file)
			if err != nil {
				return err
			}
			if in.Empty() {
				return fmt.Errorf("nothing usable extracted from %s", file)
			}
			if in.Text != "" {
				if topic != "" {
					topic += "\n\n"
				}
				topic += in.Text
			}
			images = in.Images
		}

		provider, err := llm.NewProvider(ctx, cfg, logger)
		if err != nil {
			return err
		}

		gen := quizgen.New(provider, quizgen.DefaultConfig())
		res, err := gen.Generate(ctx, quizgen.Request{
			Topic:      topic,
			Count:      count,
			Objectives: objectives,
			Audience:   audience,
			Images:     images,
		})
		if err != nil {
			return err
		}

		if n := res.Shortfall(); n > 0 {
			fmt.Fprintf(os.Stderr, "warning: got %d of %d requested questions\n",
				len(res.Questions), res.Requested)
		}

		if out == "" {
			out = "katooh-quiz." + format
		} else if !strings.HasSuffix(out, "."+format) {
			out += "." + format
		}

		switch format {
		case "json":
			if err := writeJSONFile(out, res.Questions); err != nil {
				return err
			}
		case "xlsx":
			skipped, err := writeXLSXFile(out, res.Questions)
			if err != nil {
				return err
			}
			for _, e := range skipped {
				fmt.Fprintf(os.Stderr, "warning: %v\n", e)
			}
		}

		fmt.Printf("Wrote %d question(s) to %s (model %s, %d tokens)\n",
			len(res.Questions), out, res.Model, res.Usage.TotalTokens)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("topic", "", "Topic or source text to generate questions about")
	generateCmd.Flags().String("file", "", "Source document (.txt, .md, .pdf, .docx, or an image)")
	generateCmd.Flags().Int("count", quizgen.DefaultCount, "Number of questions (1-12)")
	generateCmd.Flags().String("objectives", "", "Learning objectives, free text")
	generateCmd.Flags().String("audience", "", "Target audience, free text")
	generateCmd.Flags().String("out", "", "Output file path (default katooh-quiz.<format>)")
	generateCmd.Flags().String("format", "xlsx", "Output format: xlsx or json")
	generateCmd.Flags().String("provider", "", "Provider: openai, anthropic, gemini, openrouter")
	generateCmd.Flags().String("model", "", "Model ID (overrides the provider default)")
	generateCmd.Flags().String("api-key", "", "API key (overrides env vars)")
	generateCmd.Flags().BoolP("verbose", "v", false, "Log request details to stderr")
}

// writeJSONFile writes the quiz set to path as editable JSON.
func writeJSONFile(path string, set quizgen.QuizSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return export.WriteJSON(f, set)
}

// writeXLSXFile shuffles and writes the quiz set to path. Returns the
// per-question errors for rows that were skipped.
func writeXLSXFile(path string, set quizgen.QuizSet) ([]error, error) {
	rows, skipped := export.BuildRows(set)
	if len(rows) == 0 {
		return skipped, fmt.Errorf("no exportable questions")
	}

	f, err := os.Create(path)
	if err != nil {
		return skipped, err
	}
	defer f.Close()

	if err := export.WriteXLSX(f, rows); err != nil {
		return skipped, err
	}
	return skipped, nil
}
