package server

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptonav/cryptonav/internal/models"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func TestRenderPriceChart_ProducesPNG(t *testing.T) {
	entries := []*models.PriceHistoryEntry{
		{AssetID: 1, Date: day(1), ClosePrice: dec("64000.50")},
		{AssetID: 1, Date: day(2), ClosePrice: dec("65250.00")},
		{AssetID: 1, Date: day(3), ClosePrice: dec("63100.75")},
	}

	png, err := RenderPriceChart("BTC", entries)
	require.NoError(t, err)

	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, png[:8])
}

func TestRenderPriceChart_TooFewPoints(t *testing.T) {
	entries := []*models.PriceHistoryEntry{
		{AssetID: 1, Date: day(1), ClosePrice: dec("64000")},
	}

	_, err := RenderPriceChart("BTC", entries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")
}

func TestChartPoints_FallsBackToOpenAndSorts(t *testing.T) {
	entries := []*models.PriceHistoryEntry{
		{AssetID: 1, Date: day(3), ClosePrice: dec("300")},
		{AssetID: 1, Date: day(1), OpenPrice: dec("100")}, // no close recorded
		{AssetID: 1, Date: day(2)},                        // no prices at all
	}

	points := chartPoints(entries)
	require.Len(t, points, 2)
	assert.Equal(t, day(1), points[0].Date)
	assert.InDelta(t, 100, points[0].Price, 0.001)
	assert.Equal(t, day(3), points[1].Date)
}
