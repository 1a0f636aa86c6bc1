package card

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderBillsChart(t *testing.T) {
	t.Run("should render a png", func(t *testing.T) {
		bills := []MonthlyBill{
			{Month: "2024-11", Total: decimal.RequireFromString("120.50")},
			{Month: "2024-12", Total: decimal.Zero},
			{Month: "2025-01", Total: decimal.RequireFromString("300")},
		}

		png, err := RenderBillsChart(bills, "USD")

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngSignature))
	})

	t.Run("should render when every month is zero", func(t *testing.T) {
		png, err := RenderBillsChart([]MonthlyBill{{Month: "2024-11", Total: decimal.Zero}}, "EUR")

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(png, pngSignature))
	})

	t.Run("should fail without months", func(t *testing.T) {
		_, err := RenderBillsChart(nil, "USD")

		assert.Error(t, err)
	})
}
