package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsplice/internal/core/domain"
	"github.com/custodia-labs/docsplice/internal/core/ports/driving"
)

var generateDryRun bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Go documentation files from markdown",
	Long: `Renders every unit in the manifest and writes the generated Go files
whose contents changed. Nothing is written if any unit fails to render.

Use it from a go:generate directive:

  //go:generate go run github.com/custodia-labs/docsplice/cmd/docsplice generate`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVarP(&generateDryRun, "dry-run", "n", false, "show what would be written without writing")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return generate(cmd.Context(), cmd, s, generateDryRun)
}

func generate(ctx context.Context, cmd *cobra.Command, s *session, dryRun bool) error {
	report, err := s.generator.Generate(ctx, s.manifest, driving.GenerateOptions{DryRun: dryRun})
	if err != nil {
		return err
	}

	printReport(cmd, report)
	return nil
}

func printReport(cmd *cobra.Command, report *domain.GenerateReport) {
	st := newStyles(cmd.OutOrStdout())

	for _, f := range report.Files {
		cmd.Printf("  %s %s %s\n",
			st.outputStatus(f.Status), f.Unit.Output, st.Muted.Render("<- "+f.Unit.Source))
	}

	if report.DryRun {
		cmd.Printf("Dry run: %d file(s) would be written, %d unchanged\n", report.Written, report.Unchanged)
		return
	}
	cmd.Printf("%s %d written, %d unchanged %s\n",
		st.Title.Render("Generated:"), report.Written, report.Unchanged, st.Muted.Render("(run "+report.RunID+")"))
}
