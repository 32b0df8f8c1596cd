// Package qr builds image URLs for an external QR rendering service. It never
// renders images itself.
package qr

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

var placeholders = []string{"{bank}", "{account}", "{amount}", "{memo}", "{name}"}

// Template is a URL with {bank}, {account}, {amount}, {memo} and {name} placeholders.
type Template struct {
	raw string
}

// Fields feed one QR image.
type Fields struct {
	BankCode      string
	AccountNumber string
	AccountName   string
	Amount        decimal.Decimal
	Memo          string
}

// Parse validates raw. The account placeholder is required; the others are optional.
func Parse(raw string) (Template, error) {
	if raw == "" {
		return Template{}, errors.New("qr: empty template")
	}
	if !strings.Contains(raw, "{account}") {
		return Template{}, fmt.Errorf("qr: template %q has no {account} placeholder", raw)
	}
	probe := raw
	for _, p := range placeholders {
		probe = strings.ReplaceAll(probe, p, "x")
	}
	if _, err := url.Parse(probe); err != nil {
		return Template{}, fmt.Errorf("qr: invalid template %q: %v", raw, err)
	}
	return Template{raw: raw}, nil
}

func MustParse(raw string) Template {
	t, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Template) IsZero() bool { return t.raw == "" }

// URL fills the template. It returns "" when there is no account to pay into.
func (t Template) URL(f Fields) string {
	if t.raw == "" || f.AccountNumber == "" {
		return ""
	}
	amount := ""
	if f.Amount.IsPositive() {
		amount = f.Amount.Round(0).String()
	}
	r := strings.NewReplacer(
		"{bank}", url.PathEscape(f.BankCode),
		"{account}", url.PathEscape(f.AccountNumber),
		"{amount}", amount,
		"{memo}", url.QueryEscape(f.Memo),
		"{name}", url.QueryEscape(f.AccountName),
	)
	return r.Replace(t.raw)
}
