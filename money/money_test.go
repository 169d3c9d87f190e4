package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transactioncloud/transactioncloud-go/money"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		wantErr        bool
		wantCode       string
		wantMinorUnits int32
	}{
		{name: "US dollar", code: "USD", wantCode: "USD", wantMinorUnits: 2},
		{name: "euro", code: "EUR", wantCode: "EUR", wantMinorUnits: 2},
		{name: "yen has no minor unit", code: "JPY", wantCode: "JPY", wantMinorUnits: 0},
		{name: "unknown code", code: "NOPE", wantErr: true},
		{name: "empty code", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur, err := money.ParseCurrency(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, cur.Code())
			assert.Equal(t, tt.wantMinorUnits, cur.MinorUnits())
		})
	}
}

func TestParse(t *testing.T) {
	usd, err := money.ParseCurrency("USD")
	require.NoError(t, err)

	m, err := money.Parse("10.3", usd)
	require.NoError(t, err)

	assert.Equal(t, "USD", m.Currency().Code())
	assert.True(t, m.Amount().Equal(decimal.RequireFromString("10.3")))
	assert.Equal(t, "10.30", m.StringFixed())
}

func TestParseInvalidAmount(t *testing.T) {
	usd, err := money.ParseCurrency("USD")
	require.NoError(t, err)

	_, err = money.Parse("ten dollars", usd)
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	usd, err := money.ParseCurrency("USD")
	require.NoError(t, err)
	eur, err := money.ParseCurrency("EUR")
	require.NoError(t, err)

	a, err := money.Parse("10.3", usd)
	require.NoError(t, err)
	b, err := money.Parse("10.30", usd)
	require.NoError(t, err)
	c, err := money.Parse("10.30", eur)
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "same value in same currency")
	assert.False(t, a.Equal(c), "same value in different currency")
}

func TestCurrencyIsZero(t *testing.T) {
	assert.True(t, money.Currency{}.IsZero())

	usd, err := money.ParseCurrency("USD")
	require.NoError(t, err)
	assert.False(t, usd.IsZero())
}
