package qr

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"full template", "https://img.vietqr.io/image/{bank}-{account}-compact.png?amount={amount}&addInfo={memo}&accountName={name}", false},
		{"account only", "https://qr.example/{account}", false},
		{"empty", "", true},
		{"no account placeholder", "https://qr.example/{bank}", true},
		{"bad url", "http://[::1{account}", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTemplate_URL(t *testing.T) {
	tmpl, err := Parse("https://img.example/{bank}-{account}.png?amount={amount}&addInfo={memo}&accountName={name}")
	require.NoError(t, err)

	got := tmpl.URL(Fields{
		BankCode:      "VCB",
		AccountNumber: "0011001234567",
		AccountName:   "MARKET SPHERE",
		Amount:        decimal.RequireFromString("250000.40"),
		Memo:          "MS ORD1",
	})
	assert.Equal(t, "https://img.example/VCB-0011001234567.png?amount=250000&addInfo=MS+ORD1&accountName=MARKET+SPHERE", got)
}

func TestTemplate_URLWithoutAccount(t *testing.T) {
	tmpl := MustParse("https://qr.example/{account}")
	assert.Empty(t, tmpl.URL(Fields{BankCode: "VCB"}))
	assert.Empty(t, Template{}.URL(Fields{AccountNumber: "1"}))
	assert.True(t, Template{}.IsZero())
}

func TestTemplate_URLOmitsNonPositiveAmount(t *testing.T) {
	tmpl := MustParse("https://qr.example/{account}?amount={amount}")
	assert.Equal(t, "https://qr.example/42?amount=", tmpl.URL(Fields{AccountNumber: "42", Amount: decimal.Zero}))
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("") })
}
