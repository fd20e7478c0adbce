package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"mideck/internal/config"
	"mideck/internal/container"
)

// cli carries the container built once the root flags are parsed.
type cli struct {
	seed      uint64
	container *container.Container
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "mideck-cli",
		Short: "Inspect the multiple-imputation deck and run its conceptual demos",
		Long: `Inspect the deck catalog, resolve navigation and run the conceptual
simulation without starting the web server.

The deck and the demo seed come from the same environment as the server
(DECK_MANIFEST, DEMO_SEED, DEMO_SEED_POLICY, LOG_LEVEL).`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
	}
	rootCmd.PersistentFlags().Uint64Var(&c.seed, "seed", 0, "Override DEMO_SEED")

	rootCmd.AddCommand(
		newPagesCmd(c),
		newNavigateCmd(c),
		newSimulateCmd(c),
		newSweepCmd(c),
		newEDFCmd(),
		newAccuracyCmd(c),
		newOutlineCmd(c),
	)
	return rootCmd
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Demo.Seed = c.seed
	}
	cfg.Metrics.Enabled = false

	ct, err := container.New(cfg)
	if err != nil {
		return err
	}
	if err := ct.Init(cmd.Context()); err != nil {
		return err
	}
	c.container = ct
	return nil
}
