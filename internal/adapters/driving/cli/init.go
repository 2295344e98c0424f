package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsplice/internal/core/domain"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter manifest",
	Long: `Writes a starter docsplice.toml that documents a docs package from
README.md and one package per markdown file under posts/.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing manifest")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	store, err := manifestStore()
	if err != nil {
		return err
	}
	if wiring.Starter == nil {
		return errors.New("starter manifest not configured")
	}

	if _, err := store.Load(); !errors.Is(err, domain.ErrNotFound) && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", store.Path())
	}

	if err := store.Save(wiring.Starter()); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Printf("%s %s\n", st.Success.Render("Created"), store.Path())
	cmd.Println("Edit the [[unit]] entries, then run: docsplice generate")
	return nil
}
