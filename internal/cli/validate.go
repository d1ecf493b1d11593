package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"quantum-shift/internal/infra/memory"
)

// NewValidateCmd checks bank files without starting anything.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <bank.yaml>...",
		Short: "Validate question bank files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				bank, err := memory.ReadBankFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: bank %q ok, %d questions\n", path, bank.ID, bank.Len())
			}
			return nil
		},
	}
}
