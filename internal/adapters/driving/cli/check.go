package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify generated files match their markdown sources",
	Long: `Renders every unit and compares it with the file on disk. Exits with an
error if any output is missing, stale, or no longer carries its source text.
Run it in CI after go generate.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()

	results, err := s.generator.Check(ctx, s.manifest)
	if err != nil {
		return err
	}

	st := newStyles(cmd.OutOrStdout())
	failed := 0
	for _, r := range results {
		cmd.Printf("  %s %s\n", st.checkStatus(r.Status), r.Output)
		if !r.OK() {
			failed++
			if r.Detail != "" {
				cmd.Printf("            %s\n", st.Muted.Render(r.Detail))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d output(s) out of date, run docsplice generate: %w",
			failed, len(results), domain.ErrStale)
	}
	cmd.Printf("All %d output(s) up to date.\n", len(results))
	return nil
}
