package cli

import (
	"fmt"

	"github.com/Govind-619/MarketSphere/api"
	"github.com/Govind-619/MarketSphere/checkout"
	"github.com/Govind-619/MarketSphere/config"
	"github.com/Govind-619/MarketSphere/models"
	"github.com/Govind-619/MarketSphere/qr"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newProjector(cfg *config.Config) (checkout.Projector, error) {
	template, err := qr.Parse(cfg.QRTemplate)
	if err != nil {
		return checkout.Projector{}, fmt.Errorf("invalid QR_TEMPLATE: %w", err)
	}
	return checkout.Projector{
		Admin: models.BankAccount{
			BankCode:      cfg.AdminBankCode,
			AccountNumber: cfg.AdminAccountNumber,
			AccountName:   cfg.AdminAccountName,
		},
		QR:              template,
		ReferencePrefix: cfg.ReferencePrefix,
	}, nil
}

// newSessionFactory builds sessions whose API calls carry the viewer's token.
// journal may be nil.
func newSessionFactory(cfg *config.Config, journal checkout.Journal) (checkout.SessionFactory, error) {
	projector, err := newProjector(cfg)
	if err != nil {
		return nil, err
	}
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	return func(id, token string) *checkout.Session {
		return checkout.NewSession(checkout.Options{
			ID:                id,
			Backend:           client.WithToken(token),
			Journal:           journal,
			BatchWindow:       cfg.BatchWindow,
			LookupConcurrency: cfg.LookupConcurrency,
			Projector:         projector,
		})
	}, nil
}
