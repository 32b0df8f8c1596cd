package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/reports"
	"github.com/Govind-619/MarketSphere/store"
	"github.com/spf13/cobra"
)

func newExportAttemptsCmd() *cobra.Command {
	var (
		filter store.AttemptFilter
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export-attempts",
		Short: "Export the payment attempt journal to an Excel file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return errors.New("export-attempts needs DB_HOST and DB_NAME")
			}
			db, err := config.ConnectDatabase(cfg)
			if err != nil {
				return err
			}

			attempts, _, err := store.NewAttemptJournal(db).List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			file, err := reports.AttemptsWorkbook(attempts, time.Now())
			if err != nil {
				return err
			}

			if out == "" {
				out = fmt.Sprintf("payment_attempts_%s.xlsx", time.Now().Format("20060102_150405"))
			}
			if err := file.Save(out); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d payment attempts to %s\n", len(attempts), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.OrderID, "order-id", "", "only attempts of this order")
	cmd.Flags().StringVar(&filter.SessionID, "session-id", "", "only attempts of this checkout session")
	cmd.Flags().StringVar(&filter.Outcome, "outcome", "", "committed, abandoned or failed")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default payment_attempts_<time>.xlsx)")
	return cmd
}
