package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docsplice/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate documentation when sources change",
	Long: `Generates once, then watches the markdown sources and the manifest and
regenerates after each burst of changes. The manifest is reloaded on every
run. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if wiring == nil || wiring.Watch == nil {
		return errors.New("watcher not configured")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	err = generate(cmd.Context(), cmd, s, false)
	s.Close()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching for changes (manifest %s). Press Ctrl+C to stop.\n", s.store.Path())

	err = wiring.Watch(ctx, s.store.Dir(), s.manifest, func(ctx context.Context, changed []string) error {
		for _, p := range changed {
			logger.Debug("changed: %s", p)
		}
		cmd.Printf("%d file(s) changed, regenerating\n", len(changed))

		next, err := openSession()
		if err != nil {
			return err
		}
		defer next.Close()
		return generate(ctx, cmd, next, false)
	})
	if errors.Is(err, context.Canceled) {
		cmd.Println("Stopped.")
		return nil
	}
	return err
}
