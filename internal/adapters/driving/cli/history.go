package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent generation runs",
	Long: `Lists recorded generation results, newest first. History is kept
only when generator.history names a database file in the manifest.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of records")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.generator.History(cmd.Context(), historyLimit)
	if errors.Is(err, domain.ErrNotConfigured) {
		cmd.Println("History is disabled. Set generator.history in the manifest to enable it.")
		return nil
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Println("No generation runs recorded.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	for _, r := range records {
		cmd.Printf("  %s %s %s %s\n",
			st.Muted.Render(r.GeneratedAt.Local().Format("2006-01-02 15:04:05")),
			shortRunID(r.RunID),
			st.outputStatus(r.Status),
			r.Output)
	}
	return nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
