package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"quantum-shift/internal/app"
	"quantum-shift/internal/config"
	"quantum-shift/internal/transport/terminal"
)

// NewPlayCmd plays a round in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var bankID string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runPlay(ctx, *configPath, bankID)
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "bank id (defaults to quiz.default_bank)")
	return cmd
}

func runPlay(ctx context.Context, configPath, bankID string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if bankID == "" {
		bankID = defaultBankID(cfg)
	}

	b, err := connectBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	banks, err := newBankRepository(cfg, b)
	if err != nil {
		return err
	}
	bank, err := banks.GetBank(ctx, bankID)
	if err != nil {
		return err
	}

	presenter := terminal.NewPresenter(os.Stdout)
	opts := append(controllerOptions(cfg), app.WithPresenter(presenter))
	ctrl, err := app.NewController(bank, opts...)
	if err != nil {
		return err
	}

	err = terminal.Run(ctx, ctrl, presenter, os.Stdin)
	if err == context.Canceled {
		return nil
	}
	return err
}
