package price

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "plain number", raw: "12500", want: 12500},
		{name: "spaced with suffix", raw: "12 500 руб.", want: 12500},
		{name: "comma decimal", raw: "1 234,56 BYN", want: 1234.56},
		{name: "dot decimal", raw: "99.90", want: 99.9},
		{name: "leading text", raw: "от 450 руб.", want: 450},
		{name: "empty", raw: "", want: 0},
		{name: "no digits", raw: "По запросу", want: 0},
		{name: "second dot ignored", raw: "12.500.50", want: 12.5},
		{name: "trailing dot", raw: "12500.", want: 12500},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12 500,50", Format(12500.5))
	assert.Equal(t, "0,00", Format(0))
	assert.Equal(t, "999,00", Format(999))
	assert.Equal(t, "1 000,00", Format(1000))
	assert.Equal(t, "1 234 567,89", Format(1234567.89))
	assert.Equal(t, "-12 500,50", Format(-12500.5))
	assert.Equal(t, "", Format(math.NaN()))
}

func TestFormatWithCurrency(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12 500,00 BYN", FormatWithCurrency("12500", "BYN", nil))
	assert.Equal(t, "По запросу", FormatWithCurrency("По запросу", "USD", nil))
	assert.Equal(t, "Цена уточняется", FormatWithCurrency("  Цена уточняется  ", "EUR", nil))
	assert.Equal(t, "", FormatWithCurrency("", "BYN", nil))

	double := func(v float64) float64 { return v * 2 }
	assert.Equal(t, "200,00 USD", FormatWithCurrency("100", "USD", double))
}

func TestFormatAmount_DefaultCurrency(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10,00 BYN", FormatAmount(10, "", nil))
	assert.Equal(t, "", FormatAmount(math.NaN(), "USD", nil))
}

func TestRaw_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var p struct {
		Price Raw `json:"price"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"price": "12 500 руб."}`), &p))
	assert.Equal(t, Raw("12 500 руб."), p.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"price": 1499.9}`), &p))
	assert.Equal(t, Raw("1499.9"), p.Price)

	require.NoError(t, json.Unmarshal([]byte(`{"price": null}`), &p))
	assert.Equal(t, Raw(""), p.Price)
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	d := Raw("12 500 руб.").Display()
	assert.Equal(t, Numeric, d.Kind)
	assert.Equal(t, 12500.0, d.Amount)

	d = Raw("По запросу").Display()
	assert.Equal(t, FreeText, d.Kind)
	assert.Equal(t, "По запросу", d.Text)

	d = Raw("").Display()
	assert.Equal(t, Numeric, d.Kind)
	assert.Equal(t, 0.0, d.Amount)
}
