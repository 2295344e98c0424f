package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var previewOut string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the markdown sources as HTML pages",
	Long: `Renders every planned unit to an HTML page with an index, so the
documentation can be reviewed in a browser before it is generated.
Relative output directories resolve against the manifest's directory.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "docsplice-preview", "directory for the HTML pages")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	if wiring == nil || wiring.Outputs == nil {
		return errors.New("preview output not configured")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	pages, err := s.generator.Preview(ctx, s.manifest)
	if err != nil {
		return err
	}

	dir := previewOut
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(s.store.Dir(), dir)
	}
	out := wiring.Outputs(dir)
	for _, p := range pages {
		if err := out.WriteOutput(ctx, p.Path, p.HTML); err != nil {
			return fmt.Errorf("writing %s: %w", p.Path, err)
		}
	}

	cmd.Printf("Wrote %d page(s) to %s\n", len(pages), dir)
	cmd.Printf("Open %s\n", filepath.Join(dir, "index.html"))
	return nil
}
