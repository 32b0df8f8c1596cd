package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Govind-619/MarketSphere/checkout"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var (
		method  string
		token   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "resolve ORDER_ID",
		Short: "Resolve the payment view of one order and print it as JSON",
		Long: `Run one checkout session against the marketplace API and print its final snapshot.

Bank transfers create a fresh payment on every run.

Examples:
  marketsphere resolve ord-7f3a --method cod
  marketsphere resolve ord-7f3a --method bank_transfer --token $TOKEN`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pm, err := models.ParsePaymentMethod(method)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			factory, err := newSessionFactory(cfg, nil)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			session := factory("cli-"+uuid.NewString(), token)
			defer session.Close()

			snap, err := resolveOnce(ctx, session, args[0], pm)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(snap); err != nil {
				return err
			}
			if snap.Error != nil {
				return fmt.Errorf("%s: %s", snap.Error.Kind, snap.Error.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", string(models.PaymentMethodBankTransfer), "payment method (bank_transfer or cod)")
	cmd.Flags().StringVar(&token, "token", "", "bearer token for the marketplace API")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "how long to wait for the session")
	return cmd
}

func resolveOnce(ctx context.Context, session *checkout.Session, orderID string, method models.PaymentMethod) (checkout.Snapshot, error) {
	gen, err := session.Select(orderID, method)
	if err != nil {
		return checkout.Snapshot{}, err
	}
	snap, err := session.Wait(ctx, gen)
	if err != nil {
		return snap, fmt.Errorf("waiting for order %s: %w", orderID, err)
	}
	return snap, nil
}
