package cli

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the planned documentation units",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()

	units, err := s.generator.Plan(ctx, s.manifest)
	if err != nil {
		return err
	}

	if len(units) == 0 {
		cmd.Println("No units planned.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Printf("Found %d unit(s):\n\n", len(units))
	for _, u := range units {
		cmd.Printf("  %s %s\n", st.Title.Render(u.Title), st.Muted.Render("["+u.Unit.Form()+"]"))
		if u.Summary != "" {
			cmd.Printf("    %s\n", st.Muted.Render(u.Summary))
		}
		cmd.Printf("    Source:  %s\n", u.Source)
		cmd.Printf("    Output:  %s\n", u.Output)
		cmd.Printf("    Package: %s\n", u.ImportPath(s.manifest.Generator.Module))
		cmd.Println()
	}
	return nil
}
